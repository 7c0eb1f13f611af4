package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

var ErrNoHourlyData = errors.New("hourly sales were not analyzed")

// RenderHourlyChart writes an HTML page with sales bars and an orders line
// for the 24 hours of the business day.
func RenderHourlyChart(w io.Writer, res *domain.AnalysisResult) error {
	if res == nil {
		return ErrNoResult
	}
	m := res.HourlySales.Metrics
	if m == nil {
		return ErrNoHourlyData
	}

	labels := make([]string, 0, len(m.Hours))
	sales := make([]opts.BarData, 0, len(m.Hours))
	orders := make([]opts.LineData, 0, len(m.Hours))
	for _, h := range m.Hours {
		labels = append(labels, fmt.Sprintf("%02d:00", h.Hour))
		sales = append(sales, opts.BarData{Value: h.TotalSales})
		orders = append(orders, opts.LineData{Value: h.OrderCount})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Hourly Sales",
			Width:     "1000px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Hourly sales for store %s", res.Filtering.Store),
			Subtitle: res.Filtering.Date,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Sales"}),
	)
	bar.ExtendYAxis(opts.YAxis{Name: "Orders"})
	bar.SetXAxis(labels).AddSeries("Sales", sales)

	line := charts.NewLine()
	line.SetXAxis(labels).AddSeries("Orders", orders,
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1, Smooth: opts.Bool(true)}),
	)
	bar.Overlap(line)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
