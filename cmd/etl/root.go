package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/accident-severity-etl/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/accident-severity-etl/internal/adapter/kafka"
	"github.com/couchcryptid/accident-severity-etl/internal/config"
	"github.com/couchcryptid/accident-severity-etl/internal/domain"
	"github.com/couchcryptid/accident-severity-etl/internal/observability"
	"github.com/couchcryptid/accident-severity-etl/internal/pipeline"
	"github.com/spf13/cobra"
)

const pushJob = "accident_etl"

type flags struct {
	envFile  string
	input    string
	output   string
	window   string
	city     string
	taxonomy string
	profile  string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Build the accident severity feature table",
		Long: `Deduplicates raw accident records, restricts them to a time window,
drops implausible readings, imputes precipitation, derives weather and
road speed features and writes a CSV with a binary severity label.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.envFile, "env-file", ".env", "optional .env file loaded before reading the environment")
	fl.StringVar(&f.input, "input", "", "raw accident CSV (INPUT_PATH)")
	fl.StringVar(&f.output, "output", "", "feature CSV to write (OUTPUT_PATH)")
	fl.StringVar(&f.window, "window", "", "year window: 2016-2018 or 2019-2023 (TIME_WINDOW)")
	fl.StringVar(&f.city, "city", "", `restrict output to one "City, ST" key (CITY_FILTER)`)
	fl.StringVar(&f.taxonomy, "taxonomy", "", "weather taxonomy: coarse or extended (WEATHER_TAXONOMY)")
	fl.StringVar(&f.profile, "profile", "", "plausibility bounds: core or extended (PLAUSIBILITY_PROFILE)")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	if err := config.LoadEnvFile(f.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}
	applyFlags(cmd, cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	settings, err := buildSettings(cfg, logger)
	if err != nil {
		return err
	}

	loaders, closeLoaders := buildLoaders(cfg, logger)
	defer closeLoaders()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(csvfile.NewReader(cfg.InputPath, logger), loaders, settings, logger, metrics)
	report, runErr := p.Run(ctx)

	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(context.WithoutCancel(ctx), cfg.PushgatewayURL, pushJob); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("pipeline failed", "error", runErr)
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows x %d columns to %s\n",
		report.OutputRows, report.OutputColumns, cfg.OutputPath)
	return nil
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.InputPath = f.input
	}
	if changed("output") {
		cfg.OutputPath = f.output
	}
	if changed("window") {
		cfg.TimeWindow = f.window
	}
	if changed("city") {
		cfg.CityFilter = f.city
	}
	if changed("taxonomy") {
		cfg.WeatherTaxonomy = f.taxonomy
	}
	if changed("profile") {
		cfg.PlausibilityProfile = f.profile
	}
}

// buildLoaders orders the sinks so the CSV file is written last: a failed
// publish leaves no output file behind.
func buildLoaders(cfg *config.Config, logger *slog.Logger) (pipeline.MultiLoader, func()) {
	var loaders pipeline.MultiLoader
	closeFn := func() {}

	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		closeFn = func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}
		loaders = append(loaders, writer)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic)
	}

	return append(loaders, csvfile.NewWriter(cfg.OutputPath, logger)), closeFn
}

func buildSettings(cfg *config.Config, logger *slog.Logger) (pipeline.Settings, error) {
	window, ok := domain.ParseTimeWindow(cfg.TimeWindow)
	if !ok {
		logger.Warn("unrecognized time window, using default",
			"requested", cfg.TimeWindow, "window", window.Name)
	}

	bounds, err := domain.BoundsForProfile(cfg.PlausibilityProfile)
	if err != nil {
		return pipeline.Settings{}, err
	}

	taxonomy := domain.WeatherTaxonomy(cfg.WeatherTaxonomy)
	grouper, err := domain.NewWeatherGrouper(taxonomy)
	if err != nil {
		return pipeline.Settings{}, err
	}

	featurizer := domain.NewFeaturizer(
		domain.NewCachedWeatherGrouper(grouper, cfg.ClassifierCacheSize),
		domain.NewCachedRoadClassifier(domain.DefaultRoadCascade(), cfg.ClassifierCacheSize),
	)

	return pipeline.Settings{
		Window:     window,
		CityFilter: cfg.CityFilter,
		Taxonomy:   taxonomy,
		Bounds:     bounds,
		Featurizer: featurizer,
	}, nil
}
