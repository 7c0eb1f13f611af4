package analysis

import (
	"fmt"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func summarize(res *domain.AnalysisResult) domain.OverallSummary {
	s := domain.OverallSummary{
		Store:       res.Filtering.Store,
		Date:        res.Filtering.Date,
		AlertCounts: domain.CountAlerts(res.Alerts),
	}

	for _, st := range []domain.DomainStatus{
		res.PlatformRatings.Status,
		res.StoreOperations.Status,
		res.HourlySales.Status,
	} {
		if st.Succeeded() {
			s.DomainsProcessed++
		} else {
			s.DomainsFailed++
		}
	}

	if m := res.PlatformRatings.Metrics; m != nil {
		level := m.AveragePerformanceLevel
		s.AveragePlatformScore = m.AveragePerformance
		s.PlatformLevel = &level
	}

	if m := res.StoreOperations.Metrics; m != nil {
		grade := m.OverallGrade.Grade
		s.OverallGrade = &grade
		s.CompositeScore = m.OverallGrade.Score
		s.TotalSales = m.Financial.TotalSales
		s.TopChannel = m.SalesChannels.TopChannel
	}
	if w := res.StoreOperations.Weekly; w != nil {
		dir := w.Sales.Direction
		s.SalesTrend = &dir
	}

	if m := res.HourlySales.Metrics; m != nil {
		if m.Summary.PeakSalesAmount > 0 {
			hour := m.Summary.PeakSalesHour
			s.PeakSalesHour = &hour
			s.PeakSalesAmount = m.Summary.PeakSalesAmount
		}
		if res.StoreOperations.Metrics == nil {
			s.TotalSales = m.Summary.TotalSales
		}
	}

	s.KeyInsights = insights(res, s)
	return s
}

// insights are short, deterministic headline sentences in a fixed order.
func insights(res *domain.AnalysisResult, s domain.OverallSummary) []string {
	out := []string{}

	if s.OverallGrade != nil {
		out = append(out, fmt.Sprintf("Store operations graded %s with a composite score of %.2f.", *s.OverallGrade, s.CompositeScore))
	}
	if s.PlatformLevel != nil {
		out = append(out, fmt.Sprintf("Delivery platforms average %.1f%% of metrics on track (%s).", s.AveragePlatformScore, *s.PlatformLevel))
		if m := res.PlatformRatings.Metrics; m.CriticalOffTrackMetrics > 0 {
			out = append(out, fmt.Sprintf("%d critical platform metrics are off track.", m.CriticalOffTrackMetrics))
		}
	}
	if s.TopChannel != nil {
		share := 0.0
		for _, c := range res.StoreOperations.Metrics.SalesChannels.Channels {
			if c.Channel == *s.TopChannel {
				share = c.Percentage
			}
		}
		out = append(out, fmt.Sprintf("The %s channel leads with %.1f%% of channel sales.", *s.TopChannel, share))
	}
	if w := res.StoreOperations.Weekly; w != nil {
		out = append(out, fmt.Sprintf("Sales are %s at %+.1f%% against the weekly daily average.", w.Sales.Direction, w.Sales.PercentageChange))
	}
	if s.PeakSalesHour != nil {
		out = append(out, fmt.Sprintf("Peak hour was %02d:00 with %.2f in sales.", *s.PeakSalesHour, s.PeakSalesAmount))
	}
	if n := s.AlertCounts.Critical; n > 0 {
		out = append(out, fmt.Sprintf("%d critical alerts need immediate attention.", n))
	}
	for _, st := range DomainErrors(res) {
		out = append(out, fmt.Sprintf("The %s data could not be analyzed: %s.", st.Domain, st.Reason))
	}

	return out
}
