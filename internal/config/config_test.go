package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/accidents.csv", cfg.InputPath)
	assert.Equal(t, "data/accidents_features.csv", cfg.OutputPath)
	assert.Equal(t, "2016-2018", cfg.TimeWindow)
	assert.Empty(t, cfg.CityFilter)
	assert.Equal(t, "coarse", cfg.WeatherTaxonomy)
	assert.Equal(t, "core", cfg.PlausibilityProfile)
	assert.Equal(t, 4096, cfg.ClassifierCacheSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "accident-features", cfg.KafkaSinkTopic)
	assert.Empty(t, cfg.PushgatewayURL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("INPUT_PATH", "/tmp/raw.csv")
	t.Setenv("OUTPUT_PATH", "/tmp/out.csv")
	t.Setenv("TIME_WINDOW", "2019-2023")
	t.Setenv("CITY_FILTER", "Boston, MA")
	t.Setenv("WEATHER_TAXONOMY", "extended")
	t.Setenv("PLAUSIBILITY_PROFILE", "extended")
	t.Setenv("CLASSIFIER_CACHE_SIZE", "128")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/raw.csv", cfg.InputPath)
	assert.Equal(t, "/tmp/out.csv", cfg.OutputPath)
	assert.Equal(t, "2019-2023", cfg.TimeWindow)
	assert.Equal(t, "Boston, MA", cfg.CityFilter)
	assert.Equal(t, "extended", cfg.WeatherTaxonomy)
	assert.Equal(t, "extended", cfg.PlausibilityProfile)
	assert.Equal(t, 128, cfg.ClassifierCacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
}

func TestLoad_UnknownWindowIsKept(t *testing.T) {
	t.Setenv("TIME_WINDOW", "1999-2000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "1999-2000", cfg.TimeWindow)
}

func TestLoad_InvalidTaxonomy(t *testing.T) {
	t.Setenv("WEATHER_TAXONOMY", "fancy")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_TAXONOMY")
}

func TestLoad_InvalidProfile(t *testing.T) {
	t.Setenv("PLAUSIBILITY_PROFILE", "strict")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLAUSIBILITY_PROFILE")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("CLASSIFIER_CACHE_SIZE", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLASSIFIER_CACHE_SIZE")
}

func TestLoad_InvalidKafkaEnabled(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "maybe")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_ENABLED")
}

func TestValidate_KafkaWithoutTopic(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.KafkaEnabled = true
	cfg.KafkaSinkTopic = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_SINK_TOPIC")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CITY_FILTER=Austin, TX\n"), 0o600))

	// Registered with t.Setenv so the variable is restored after the test.
	t.Setenv("CITY_FILTER", "")
	require.NoError(t, os.Unsetenv("CITY_FILTER"))

	require.NoError(t, LoadEnvFile(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Austin, TX", cfg.CityFilter)
}

func TestLoadEnvFile_Missing(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	require.NoError(t, LoadEnvFile(""))
}
