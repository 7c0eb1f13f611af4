package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/metrics"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/runtime/app"
	"github.com/de-tools/ops-atlas/pkg/server"
	"github.com/de-tools/ops-atlas/pkg/services/config"
	"github.com/de-tools/ops-atlas/pkg/services/engine"
	"github.com/de-tools/ops-atlas/pkg/services/refresh"
)

var (
	cfgPath string
	poll    []string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Ops Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the settings YAML")
	rootCmd.Flags().StringSliceVar(&poll, "poll", nil, "Stores to refresh periodically from the upstream API")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return err
	}
	analysisCfg, err := settings.AnalysisConfig()
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	eng := engine.NewEngine(analysisCfg, engine.WithRecorder(reg), engine.WithLogger(logger))
	eng.OnChange(func(ctx context.Context, s domain.Snapshot) {
		if s.State == domain.StateLoading {
			return
		}
		zerolog.Ctx(ctx).Info().
			Uint64("sequence", s.Sequence).
			Str("state", s.State.String()).
			Msg("snapshot published")
	})

	deps := server.Dependencies{
		Engine:  eng,
		Metrics: reg.Handler(),
		Logger:  logger,
	}

	fetcher, closeFetcher, err := app.NewFetcher(ctx, settings, "", reg)
	if err != nil {
		logger.Warn().Err(err).Msg("upstream not configured, refresh endpoints disabled")
	} else {
		defer closeFetcher()

		runnerCfg := refresh.DefaultRunnerConfig()
		runnerCfg.Interval = settings.Refresh.Interval
		runnerCfg.LookbackDays = settings.Upstream.LookbackDays
		refresher := refresh.NewController(fetcher, eng, runnerCfg)
		defer refresher.Stop(ctx)

		for _, store := range poll {
			if err := refresher.Start(ctx, refresh.Target{Store: store}); err != nil {
				return fmt.Errorf("failed to start refresh for %s: %w", store, err)
			}
		}
		deps.Refresher = refresher
	}

	if len(poll) > 0 && deps.Refresher == nil {
		return fmt.Errorf("--poll requires a configured upstream profile")
	}

	return server.NewWebAPI(server.Config{
		Addr:         settings.Server.Addr,
		Dependencies: deps,
	}).Start()
}
