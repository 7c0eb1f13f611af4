package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/config"
	"github.com/de-tools/ops-atlas/pkg/services/engine"
	"github.com/de-tools/ops-atlas/pkg/services/export"
)

type Reporter interface {
	Handle(report *domain.Report) error
}

// Reporters are the terminal renderings selectable with --format.
type Reporters struct {
	Table Reporter
	Text  Reporter
}

type output struct {
	kind   string
	format string
	chart  string
}

func (o *output) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.kind, "export", string(export.KindFull),
		"Document to print with --format json|yaml: "+kindList())
	cmd.Flags().StringVar(&o.format, "format", "table", "Output format: table, text, json or yaml")
	cmd.Flags().StringVar(&o.chart, "chart", "", "Also write an HTML chart of hourly sales to this path")
}

func (o *output) write(w io.Writer, reporters Reporters, res *domain.AnalysisResult) error {
	if err := o.render(w, reporters, res); err != nil {
		return err
	}
	if o.chart == "" {
		return nil
	}

	f, err := os.Create(o.chart)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()
	return export.RenderHourlyChart(f, res)
}

func (o *output) render(w io.Writer, reporters Reporters, res *domain.AnalysisResult) error {
	switch f := strings.ToLower(o.format); f {
	case "table", "text":
		report, err := export.ToReport(res)
		if err != nil {
			return err
		}
		if f == "text" {
			return reporters.Text.Handle(report)
		}
		return reporters.Table.Handle(report)
	}

	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}
	kind, err := export.ParseKind(o.kind)
	if err != nil {
		return err
	}
	doc, err := export.Build(kind, res)
	if err != nil {
		return err
	}
	return export.Encode(w, doc, format)
}

func kindList() string {
	kinds := export.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// analyze runs env through a fresh engine configured from settings.
func analyze(ctx context.Context, settings *config.Settings, env *domain.RawResponseEnvelope) (*domain.AnalysisResult, error) {
	cfg, err := settings.AnalysisConfig()
	if err != nil {
		return nil, err
	}

	snap := engine.NewEngine(cfg, engine.WithLogger(*zerolog.Ctx(ctx))).Accept(ctx, env)
	if snap.State != domain.StateSucceeded {
		return nil, fmt.Errorf("analysis failed: %s", snap.Reason)
	}
	for _, st := range []domain.DomainStatus{
		snap.Result.PlatformRatings.Status,
		snap.Result.StoreOperations.Status,
		snap.Result.HourlySales.Status,
	} {
		if !st.Succeeded() {
			zerolog.Ctx(ctx).Warn().Str("domain", st.Domain.String()).Str("reason", st.Reason).Msg("domain not analyzed")
		}
	}
	return snap.Result, nil
}
