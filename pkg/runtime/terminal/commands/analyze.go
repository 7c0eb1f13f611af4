package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/config"
)

type AnalyzeCmd struct {
	envelopePath string
	settingsPath string
	out          output
	reporters    Reporters
}

func NewAnalyzeCmd(reporters Reporters) *cobra.Command {
	ac := &AnalyzeCmd{reporters: reporters}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a raw metrics envelope from a file",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.envelopePath, "envelope", "", "Path to the envelope JSON, or - for stdin")
	cmd.Flags().StringVar(&ac.settingsPath, "config", "", "Path to the settings YAML")
	ac.out.bind(cmd)

	_ = cmd.MarkFlagRequired("envelope")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(ac.settingsPath)
	if err != nil {
		return err
	}

	env, err := readEnvelope(cmd.InOrStdin(), ac.envelopePath)
	if err != nil {
		return err
	}

	res, err := analyze(cmd.Context(), settings, env)
	if err != nil {
		return err
	}
	return ac.out.write(cmd.OutOrStdout(), ac.reporters, res)
}

func readEnvelope(stdin io.Reader, path string) (*domain.RawResponseEnvelope, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open envelope: %w", err)
		}
		defer f.Close()
		r = f
	}

	var env domain.RawResponseEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return &env, nil
}
