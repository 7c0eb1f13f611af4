package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/runtime/app"
	"github.com/de-tools/ops-atlas/pkg/services/config"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

type FetchCmd struct {
	profile      string
	store        string
	date         string
	lookback     int
	settingsPath string
	out          output
	reporters    Reporters
}

func NewFetchCmd(reporters Reporters) *cobra.Command {
	fc := &FetchCmd{reporters: reporters}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a store's metrics from the upstream API and analyze them",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.profile, "profile", "", "Credential profile (defaults to upstream.profile)")
	cmd.Flags().StringVar(&fc.store, "store", "", "Store id, NNNNN-NNNNN")
	cmd.Flags().StringVar(&fc.date, "date", time.Now().Format("2006-01-02"), "Business date, YYYY-MM-DD")
	cmd.Flags().IntVar(&fc.lookback, "lookback", -1, "Lookback days for weekly baselines (defaults to upstream.lookback_days)")
	cmd.Flags().StringVar(&fc.settingsPath, "config", "", "Path to the settings YAML")
	fc.out.bind(cmd)

	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func (fc *FetchCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := config.LoadSettings(fc.settingsPath)
	if err != nil {
		return err
	}

	fetcher, closeFn, err := app.NewFetcher(ctx, settings, fc.profile, nil)
	if err != nil {
		return err
	}
	defer closeFn()

	lookback := fc.lookback
	if lookback < 0 {
		lookback = settings.Upstream.LookbackDays
	}
	env, err := fetcher.Fetch(ctx, client.Request{Store: fc.store, Date: fc.date, LookbackDays: lookback})
	if err != nil {
		return err
	}

	res, err := analyze(ctx, settings, env)
	if err != nil {
		return err
	}
	return fc.out.write(cmd.OutOrStdout(), fc.reporters, res)
}
