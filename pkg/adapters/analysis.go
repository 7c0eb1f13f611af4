package adapters

import (
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func MapSnapshotDomainToApi(s domain.Snapshot) api.Snapshot {
	res := api.Snapshot{
		Sequence: s.Sequence,
		State:    s.State.String(),
		Reason:   s.Reason,
	}
	if s.Result != nil {
		r := MapAnalysisResultDomainToApi(*s.Result)
		res.Result = &r
	}
	return res
}

func MapAnalysisResultDomainToApi(r domain.AnalysisResult) api.AnalysisResult {
	return api.AnalysisResult{
		Filtering:       MapFilteringDomainToApi(r.Filtering),
		PlatformRatings: MapPlatformRatingsDomainToApi(r.PlatformRatings),
		StoreOperations: MapStoreOperationsDomainToApi(r.StoreOperations),
		HourlySales:     MapHourlySalesDomainToApi(r.HourlySales),
		Alerts:          MapAlertsDomainToApi(r.Alerts),
		Summary:         MapSummaryDomainToApi(r.Summary),
	}
}

func MapFilteringDomainToApi(f domain.Filtering) api.Filtering {
	return api.Filtering{
		Store:         f.Store,
		Date:          f.Date,
		LookbackStart: f.LookbackStart,
		LookbackEnd:   f.LookbackEnd,
	}
}

func MapDomainStatusDomainToApi(s domain.DomainStatus) api.DomainStatus {
	return api.DomainStatus{
		Domain: s.Domain.String(),
		State:  s.State.String(),
		Error:  s.Reason,
	}
}

func MapPlatformRatingsDomainToApi(r domain.PlatformRatingsResult) api.PlatformRatings {
	res := api.PlatformRatings{
		Status: MapDomainStatusDomainToApi(r.Status),
		Alerts: MapAlertsDomainToApi(r.Alerts),
	}
	if r.Metrics == nil {
		return res
	}
	m := r.Metrics
	res.AveragePerformance = m.AveragePerformance
	res.AveragePerformanceLevel = m.AveragePerformanceLevel.String()
	res.OffTrackMetrics = m.OffTrackMetrics
	res.CriticalOffTrackMetrics = m.CriticalOffTrackMetrics
	res.Platforms = make([]api.PlatformMetrics, 0, len(m.Platforms))
	for _, p := range m.Platforms {
		res.Platforms = append(res.Platforms, MapPlatformMetricsDomainToApi(p))
	}
	return res
}

func MapPlatformMetricsDomainToApi(p domain.PlatformMetrics) api.PlatformMetrics {
	res := api.PlatformMetrics{
		Platform:               p.Platform.String(),
		DisplayName:            p.DisplayName,
		OverallRating:          p.OverallRating,
		KPIs:                   make([]api.KPI, 0, len(p.KPIs)),
		OnTrackCount:           p.OnTrackCount,
		OffTrackCount:          p.OffTrackCount,
		TotalApplicableMetrics: p.TotalApplicableMetrics,
		PerformancePercentage:  p.PerformancePercentage,
		PerformanceLevel:       p.PerformanceLevel.String(),
		HasApplicableMetrics:   p.HasApplicableMetrics,
	}
	for _, k := range p.KPIs {
		res.KPIs = append(res.KPIs, api.KPI{
			Name:       k.Name,
			Label:      k.Label,
			Value:      k.Value,
			Status:     k.Status.String(),
			Unit:       k.Unit,
			IsCritical: k.IsCritical,
			Target:     k.Target,
			Trend:      k.Trend.String(),
		})
	}
	return res
}

func MapStoreOperationsDomainToApi(r domain.StoreOperationsResult) api.StoreOperations {
	res := api.StoreOperations{
		Status: MapDomainStatusDomainToApi(r.Status),
		Alerts: MapAlertsDomainToApi(r.Alerts),
	}
	if r.Weekly != nil {
		for _, t := range r.Weekly.All() {
			res.Weekly = append(res.Weekly, MapTrendAnalysisDomainToApi(t))
		}
	}
	if r.Metrics == nil {
		return res
	}
	m := r.Metrics

	res.Financial = &api.Financial{
		TotalSales:          m.Financial.TotalSales,
		RevenuePerCustomer:  m.Financial.RevenuePerCustomer,
		DigitalSalesAmount:  m.Financial.DigitalSalesAmount,
		DigitalSalesPercent: m.Financial.DigitalSalesPercent,
		CashVariance:        m.Financial.CashVariance,
		ActualLaborPercent:  m.Financial.ActualLaborPercent,
		TargetLaborPercent:  m.Financial.TargetLaborPercent,
		LaborVariance:       m.Financial.LaborVariance,
		LaborGrade:          m.Financial.LaborGrade.String(),
	}
	res.Operational = &api.Operational{
		PortalUtilization:    m.Operational.PortalUtilization,
		PortalOnTimePercent:  m.Operational.PortalOnTimePercent,
		AvgPortalTimeSeconds: m.Operational.AvgPortalTimeSeconds,
		CustomerServiceScore: m.Operational.CustomerServiceScore,
		CustomerCount:        m.Operational.CustomerCount,
		CustomerCountPercent: m.Operational.CustomerCountPercent,
		EfficiencyScore:      m.Operational.EfficiencyScore,
	}
	res.SalesChannels = &api.SalesChannels{
		Channels:   MapChannelsDomainToApi(m.SalesChannels.Channels),
		ChannelSum: m.SalesChannels.ChannelSum,
		TopSales:   m.SalesChannels.TopSales,
		DriveThru:  m.SalesChannels.DriveThru,
	}
	if top := m.SalesChannels.TopChannel; top != nil {
		res.SalesChannels.TopChannel = top.String()
	}
	res.Quality = &api.Quality{
		TotalOrders:      m.Quality.TotalOrders,
		ModifiedOrders:   m.Quality.ModifiedOrders,
		RefundedOrders:   m.Quality.RefundedOrders,
		ModificationRate: m.Quality.ModificationRate,
		RefundRate:       m.Quality.RefundRate,
		OrderAccuracy:    m.Quality.OrderAccuracy,
		Grade:            m.Quality.Grade.String(),
	}
	res.CostControl = &api.CostControl{
		TotalWaste:         m.CostControl.TotalWaste,
		WastePercent:       m.CostControl.WastePercent,
		TargetWastePercent: m.CostControl.TargetWastePercent,
		LaborWithinTarget:  m.CostControl.LaborWithinTarget,
		WasteWithinTarget:  m.CostControl.WasteWithinTarget,
		CashWithinBand:     m.CostControl.CashWithinBand,
		PassRatio:          m.CostControl.PassRatio,
		Grade:              m.CostControl.Grade.String(),
	}
	grade := api.OverallGrade{
		Grade:         m.OverallGrade.Grade.String(),
		Score:         m.OverallGrade.Score,
		Contributions: make([]api.GradeContribution, 0, len(m.OverallGrade.Contributions)),
	}
	for _, c := range m.OverallGrade.Contributions {
		grade.Contributions = append(grade.Contributions, api.GradeContribution{
			Component: c.Component,
			Score:     c.Score,
			Weight:    c.Weight,
			Weighted:  c.Weighted,
		})
	}
	res.OverallGrade = &grade
	return res
}

func MapChannelsDomainToApi(channels []domain.ChannelPerformance) []api.ChannelPerformance {
	res := make([]api.ChannelPerformance, 0, len(channels))
	for _, c := range channels {
		res = append(res, api.ChannelPerformance{
			Channel:           c.Channel.String(),
			Sales:             c.Sales,
			Percentage:        c.Percentage,
			EstimatedOrders:   c.EstimatedOrders,
			AverageOrderValue: c.AverageOrderValue,
			Trend:             c.Trend.String(),
			PerformanceLevel:  c.PerformanceLevel.String(),
		})
	}
	return res
}

func MapTrendAnalysisDomainToApi(t domain.TrendAnalysis) api.TrendAnalysis {
	return api.TrendAnalysis{
		Metric:           t.Metric,
		Current:          t.Current,
		Previous:         t.Previous,
		PercentageChange: t.PercentageChange,
		Direction:        t.Direction.String(),
		Significance:     t.Significance.String(),
		Projected:        t.Projected,
	}
}

func MapHourlySalesDomainToApi(r domain.HourlySalesResult) api.HourlySales {
	res := api.HourlySales{
		Status: MapDomainStatusDomainToApi(r.Status),
		Alerts: MapAlertsDomainToApi(r.Alerts),
	}
	if r.Metrics == nil {
		return res
	}
	m := r.Metrics

	res.Hours = make([]api.HourMetrics, 0, len(m.Hours))
	for i, h := range m.Hours {
		hm := api.HourMetrics{
			Hour:              h.Hour,
			HasRecord:         h.HasRecord,
			HasActivity:       h.HasActivity,
			TotalSales:        h.TotalSales,
			OrderCount:        h.OrderCount,
			AverageOrderValue: h.AverageOrderValue,
			DigitalPercent:    h.DigitalPercent,
		}
		if h.PrimaryChannel != nil {
			hm.PrimaryChannel = h.PrimaryChannel.String()
		}
		if i < len(m.Trends) {
			hm.Trend = m.Trends[i].Trend.String()
			hm.Deviation = m.Trends[i].Deviation
		}
		res.Hours = append(res.Hours, hm)
	}

	s := m.Summary
	res.Summary = &api.DailySalesSummary{
		TotalSales:         s.TotalSales,
		TotalOrders:        s.TotalOrders,
		AverageOrderValue:  s.AverageOrderValue,
		ActiveHours:        s.ActiveHours,
		AverageHourlySales: s.AverageHourlySales,
		PeakSalesHour:      s.PeakSalesHour,
		PeakSalesAmount:    s.PeakSalesAmount,
		SlowestActiveHour:  copyInt(s.SlowestActiveHour),
		SlowestActiveSales: s.SlowestActiveSales,
		DigitalPercent:     s.DigitalPercent,
	}
	res.Channels = MapChannelsDomainToApi(m.Channels)
	res.Periods = make([]api.PeriodAnalysis, 0, len(m.Periods))
	for _, p := range m.Periods {
		res.Periods = append(res.Periods, api.PeriodAnalysis{
			Period:            p.Period.String(),
			StartHour:         p.StartHour,
			EndHour:           p.EndHour,
			TotalSales:        p.TotalSales,
			OrderCount:        p.OrderCount,
			AverageOrderValue: p.AverageOrderValue,
			Percentage:        p.Percentage,
			ActiveHours:       p.ActiveHours,
			PeakHour:          copyInt(p.PeakHour),
		})
	}
	return res
}

func MapSummaryDomainToApi(s domain.OverallSummary) api.Summary {
	res := api.Summary{
		Store:                s.Store,
		Date:                 s.Date,
		CompositeScore:       s.CompositeScore,
		AveragePlatformScore: s.AveragePlatformScore,
		TotalSales:           s.TotalSales,
		PeakSalesHour:        copyInt(s.PeakSalesHour),
		PeakSalesAmount:      s.PeakSalesAmount,
		AlertCounts:          MapAlertCountsDomainToApi(s.AlertCounts),
		DomainsProcessed:     s.DomainsProcessed,
		DomainsFailed:        s.DomainsFailed,
		KeyInsights:          append([]string{}, s.KeyInsights...),
	}
	if s.OverallGrade != nil {
		res.OverallGrade = s.OverallGrade.String()
	}
	if s.PlatformLevel != nil {
		res.PlatformLevel = s.PlatformLevel.String()
	}
	if s.TopChannel != nil {
		res.TopChannel = s.TopChannel.String()
	}
	if s.SalesTrend != nil {
		res.SalesTrend = s.SalesTrend.String()
	}
	return res
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
