package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/adapters"
	"github.com/de-tools/ops-atlas/pkg/runtime/app"
	"github.com/de-tools/ops-atlas/pkg/services/config"
	"github.com/de-tools/ops-atlas/pkg/services/export"
)

type ConfigCmd struct {
	settingsPath string
	format       string
}

// NewConfigCmd prints the effective analysis configuration after defaults,
// the settings file and environment overrides are applied.
func NewConfigCmd() *cobra.Command {
	cc := &ConfigCmd{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective analysis configuration",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.settingsPath, "config", "", "Path to the settings YAML")
	cmd.Flags().StringVar(&cc.format, "format", "yaml", "Output format: yaml or json")

	return cmd
}

func (cc *ConfigCmd) run(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(cc.settingsPath)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(cc.format)
	if err != nil {
		return err
	}

	// Round-trip through the domain form so invalid names fail here.
	cfg, err := settings.AnalysisConfig()
	if err != nil {
		return err
	}
	return export.Encode(cmd.OutOrStdout(), adapters.MapAnalysisConfigDomainToApi(cfg), format)
}

type ProfilesCmd struct {
	settingsPath string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the upstream credential profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.settingsPath, "config", "", "Path to the settings YAML")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := config.LoadSettings(pc.settingsPath)
	if err != nil {
		return err
	}
	path, err := app.ProfilesPath(settings)
	if err != nil {
		return err
	}
	registry, err := config.NewRegistry(path)
	if err != nil {
		return err
	}

	names, err := registry.GetProfiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", path)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profiles in %s:\n", path)
	for _, name := range names {
		p, err := registry.GetProfile(ctx, name)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (invalid: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p.Descriptor())
	}
	return nil
}
