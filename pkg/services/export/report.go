package export

import (
	"fmt"
	"time"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// ToReport flattens res into sections for the terminal reporters. Failed
// domains keep their section with the failure reason in the summary.
func ToReport(res *domain.AnalysisResult) (*domain.Report, error) {
	if res == nil {
		return nil, ErrNoResult
	}

	report := &domain.Report{
		Title:      fmt.Sprintf("Store %s operations for %s", res.Filtering.Store, res.Filtering.Date),
		Store:      res.Filtering.Store,
		Date:       res.Filtering.Date,
		Period:     lookbackPeriod(res.Filtering),
		TotalSales: res.Summary.TotalSales,
		Currency:   "USD",
	}
	if res.Summary.OverallGrade != nil {
		report.Grade = res.Summary.OverallGrade.String()
	}

	report.Sections = []domain.ReportSection{
		summarySection(res.Summary),
		platformSection(res.PlatformRatings),
		operationsSection(res.StoreOperations),
		hourlySection(res.HourlySales),
		alertsSection(res.Alerts),
	}
	return report, nil
}

func lookbackPeriod(f domain.Filtering) domain.TimePeriod {
	start, err := time.Parse(dateLayout, f.LookbackStart)
	if err != nil {
		return domain.TimePeriod{}
	}
	end, err := time.Parse(dateLayout, f.LookbackEnd)
	if err != nil || end.Before(start) {
		return domain.TimePeriod{}
	}
	return domain.TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours()/24) + 1,
	}
}

func statusSummary(s domain.DomainStatus) map[string]interface{} {
	summary := map[string]interface{}{"status": s.State.String()}
	if s.Reason != "" {
		summary["error"] = s.Reason
	}
	return summary
}

func summarySection(s domain.OverallSummary) domain.ReportSection {
	section := domain.ReportSection{
		Title: "Summary",
		Summary: map[string]interface{}{
			"domains processed": s.DomainsProcessed,
			"domains failed":    s.DomainsFailed,
			"alerts":            s.AlertCounts.Total(),
		},
		Details: []domain.ReportDetail{
			{Name: "Composite Score", Value: fmt.Sprintf("%.3f", s.CompositeScore), Description: "Weighted store operations score out of 4"},
			{Name: "Platform Score", Value: fmt.Sprintf("%.1f", s.AveragePlatformScore), Unit: "%", Description: "Average on-track share across delivery platforms"},
			{Name: "Total Sales", Value: fmt.Sprintf("%.2f", s.TotalSales), Unit: "USD"},
		},
	}
	if s.PeakSalesHour != nil {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        "Peak Hour",
			Value:       fmt.Sprintf("%02d:00", *s.PeakSalesHour),
			Description: fmt.Sprintf("%.2f in sales", s.PeakSalesAmount),
		})
	}
	for i, insight := range s.KeyInsights {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("Insight %d", i+1),
			Description: insight,
		})
	}
	return section
}

func platformSection(r domain.PlatformRatingsResult) domain.ReportSection {
	section := domain.ReportSection{Title: "Platform Ratings", Summary: statusSummary(r.Status)}
	if r.Metrics == nil {
		return section
	}
	section.Summary["average performance"] = fmt.Sprintf("%.1f%%", r.Metrics.AveragePerformance)
	section.Summary["off-track metrics"] = r.Metrics.OffTrackMetrics
	for _, p := range r.Metrics.Platforms {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        p.Platform.DisplayName(),
			Value:       fmt.Sprintf("%.1f", p.PerformancePercentage),
			Unit:        "%",
			Description: fmt.Sprintf("%s, %d of %d on track", p.PerformanceLevel, p.OnTrackCount, p.TotalApplicableMetrics),
		})
	}
	return section
}

func operationsSection(r domain.StoreOperationsResult) domain.ReportSection {
	section := domain.ReportSection{Title: "Store Operations", Summary: statusSummary(r.Status)}
	if r.Metrics == nil {
		return section
	}
	m := r.Metrics
	section.Summary["grade"] = m.OverallGrade.Grade.String()
	section.Details = []domain.ReportDetail{
		{Name: "Labor", Value: fmt.Sprintf("%.1f", m.Financial.ActualLaborPercent*100), Unit: "%", Description: fmt.Sprintf("target %.1f%%, grade %s", m.Financial.TargetLaborPercent*100, m.Financial.LaborGrade)},
		{Name: "Efficiency", Value: fmt.Sprintf("%.1f", m.Operational.EfficiencyScore), Description: "Portal, service and customer count blend"},
		{Name: "Order Accuracy", Value: fmt.Sprintf("%.1f", m.Quality.OrderAccuracy*100), Unit: "%", Description: fmt.Sprintf("grade %s", m.Quality.Grade)},
		{Name: "Waste", Value: fmt.Sprintf("%.1f", m.CostControl.WastePercent*100), Unit: "%", Description: fmt.Sprintf("cost control grade %s", m.CostControl.Grade)},
		{Name: "Cash Variance", Value: fmt.Sprintf("%.2f", m.Financial.CashVariance), Unit: "USD"},
	}
	for _, c := range m.SalesChannels.Channels {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        "Channel " + c.Channel.String(),
			Value:       fmt.Sprintf("%.2f", c.Sales),
			Unit:        "USD",
			Description: fmt.Sprintf("%.1f%% of sales, trend %s", c.Percentage, c.Trend),
		})
	}
	return section
}

func hourlySection(r domain.HourlySalesResult) domain.ReportSection {
	section := domain.ReportSection{Title: "Hourly Sales", Summary: statusSummary(r.Status)}
	if r.Metrics == nil {
		return section
	}
	s := r.Metrics.Summary
	section.Summary["active hours"] = s.ActiveHours
	section.Summary["average hourly sales"] = fmt.Sprintf("%.2f", s.AverageHourlySales)
	for _, p := range r.Metrics.Periods {
		desc := fmt.Sprintf("%02d:00-%02d:59, %d active hours", p.StartHour, p.EndHour, p.ActiveHours)
		if p.PeakHour != nil {
			desc += fmt.Sprintf(", peak %02d:00", *p.PeakHour)
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        p.Period.String(),
			Value:       fmt.Sprintf("%.2f", p.TotalSales),
			Unit:        "USD",
			Description: desc,
		})
	}
	return section
}

func alertsSection(alerts []domain.Alert) domain.ReportSection {
	counts := domain.CountAlerts(alerts)
	section := domain.ReportSection{
		Title: "Alerts",
		Summary: map[string]interface{}{
			"critical": counts.Critical,
			"error":    counts.Error,
			"warning":  counts.Warning,
			"info":     counts.Info,
		},
	}
	for _, a := range alerts {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        a.Title,
			Value:       a.Severity.String(),
			Unit:        a.Priority.String(),
			Description: a.Message,
		})
	}
	return section
}
