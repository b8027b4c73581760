package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	InputPath  string
	OutputPath string

	// TimeWindow is kept verbatim; unrecognized names fall back to the
	// default window when resolved.
	TimeWindow          string
	CityFilter          string
	WeatherTaxonomy     string
	PlausibilityProfile string
	ClassifierCacheSize int

	LogLevel  string
	LogFormat string

	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	PushgatewayURL string
}

// LoadEnvFile loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cacheSize, err := parseCacheSize()
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid KAFKA_ENABLED")
		}
	}

	cfg := &Config{
		InputPath:           sharedcfg.EnvOrDefault("INPUT_PATH", "data/accidents.csv"),
		OutputPath:          sharedcfg.EnvOrDefault("OUTPUT_PATH", "data/accidents_features.csv"),
		TimeWindow:          sharedcfg.EnvOrDefault("TIME_WINDOW", "2016-2018"),
		CityFilter:          os.Getenv("CITY_FILTER"),
		WeatherTaxonomy:     sharedcfg.EnvOrDefault("WEATHER_TAXONOMY", "coarse"),
		PlausibilityProfile: sharedcfg.EnvOrDefault("PLAUSIBILITY_PROFILE", "core"),
		ClassifierCacheSize: cacheSize,
		LogLevel:            sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		KafkaEnabled:        kafkaEnabled,
		KafkaBrokers:        sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:      sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "accident-features"),
		PushgatewayURL:      os.Getenv("PUSHGATEWAY_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that flags may have overridden after Load.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("INPUT_PATH is required")
	}
	if c.OutputPath == "" {
		return errors.New("OUTPUT_PATH is required")
	}
	switch c.WeatherTaxonomy {
	case "coarse", "extended":
	default:
		return fmt.Errorf("invalid WEATHER_TAXONOMY %q", c.WeatherTaxonomy)
	}
	switch c.PlausibilityProfile {
	case "core", "extended":
	default:
		return fmt.Errorf("invalid PLAUSIBILITY_PROFILE %q", c.PlausibilityProfile)
	}
	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if c.KafkaSinkTopic == "" {
			return errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
		}
	}
	return nil
}

func parseCacheSize() (int, error) {
	s := os.Getenv("CLASSIFIER_CACHE_SIZE")
	if s == "" {
		return 4096, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid CLASSIFIER_CACHE_SIZE")
	}
	return n, nil
}
