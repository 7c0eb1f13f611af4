package domain

// KPI is one tracked metric of a delivery platform scorecard.
type KPI struct {
	Name       string
	Label      string
	Value      float64
	Status     OnTrackStatus
	Unit       string
	IsCritical bool
	Target     float64
	Trend      TrendDirection
}

// PlatformMetrics is the processed scorecard of one delivery platform.
type PlatformMetrics struct {
	Platform               Platform
	DisplayName            string
	OverallRating          float64
	KPIs                   []KPI
	OnTrackCount           int
	OffTrackCount          int
	TotalApplicableMetrics int
	// PerformancePercentage is 0 when no KPI is applicable; use
	// HasApplicableMetrics to tell that apart from a 0% platform.
	PerformancePercentage float64
	PerformanceLevel      PerformanceLevel
	HasApplicableMetrics  bool
}

// PlatformRatingsMetrics groups every platform in the fixed platform order.
type PlatformRatingsMetrics struct {
	Platforms               []PlatformMetrics
	AveragePerformance      float64
	AveragePerformanceLevel PerformanceLevel
	OffTrackMetrics         int
	CriticalOffTrackMetrics int
}

type FinancialMetrics struct {
	TotalSales          float64
	RevenuePerCustomer  float64
	DigitalSalesAmount  float64
	DigitalSalesPercent float64
	CashVariance        float64
	ActualLaborPercent  float64
	TargetLaborPercent  float64
	LaborVariance       float64
	LaborGrade          Grade
}

// OperationalMetrics carries the efficiency score. The score is an unbounded
// weighted sum and can exceed 100.
type OperationalMetrics struct {
	PortalUtilization    float64
	PortalOnTimePercent  float64
	AvgPortalTimeSeconds float64
	CustomerServiceScore float64
	CustomerCount        float64
	CustomerCountPercent float64
	EfficiencyScore      float64
}

// ChannelPerformance describes one sales channel's share of the day.
type ChannelPerformance struct {
	Channel           SalesChannel
	Sales             float64
	Percentage        float64
	EstimatedOrders   float64
	AverageOrderValue float64
	Trend             TrendDirection
	PerformanceLevel  PerformanceLevel
}

// SalesChannelMetrics shares are relative to ChannelSum. TopChannel is nil
// when no channel recorded sales.
type SalesChannelMetrics struct {
	Channels   []ChannelPerformance
	ChannelSum float64
	TopChannel *SalesChannel
	TopSales   float64
	DriveThru  float64
}

type QualityMetrics struct {
	TotalOrders      float64
	ModifiedOrders   float64
	RefundedOrders   float64
	ModificationRate float64
	RefundRate       float64
	OrderAccuracy    float64
	Grade            Grade
}

type CostControlMetrics struct {
	TotalWaste         float64
	WastePercent       float64
	TargetWastePercent float64
	LaborWithinTarget  bool
	WasteWithinTarget  bool
	CashWithinBand     bool
	PassRatio          float64
	Grade              Grade
}

// GradeContribution is one weighted term of the composite grade.
type GradeContribution struct {
	Component string
	Score     float64
	Weight    float64
	Weighted  float64
}

type GradeResult struct {
	Grade         Grade
	Score         float64
	Contributions []GradeContribution
}

type StoreOperationsMetrics struct {
	Financial     FinancialMetrics
	Operational   OperationalMetrics
	SalesChannels SalesChannelMetrics
	Quality       QualityMetrics
	CostControl   CostControlMetrics
	OverallGrade  GradeResult
}

// HourMetrics is one processed hour. Hours without a raw record keep
// HasRecord false and zero values.
type HourMetrics struct {
	Hour              int
	HasRecord         bool
	HasActivity       bool
	TotalSales        float64
	OrderCount        float64
	AverageOrderValue float64
	DigitalPercent    float64
	PrimaryChannel    *SalesChannel
}

type DailySalesSummary struct {
	TotalSales         float64
	TotalOrders        float64
	AverageOrderValue  float64
	ActiveHours        int
	AverageHourlySales float64
	PeakSalesHour      int
	PeakSalesAmount    float64
	SlowestActiveHour  *int
	SlowestActiveSales float64
	DigitalPercent     float64
}

type PeriodAnalysis struct {
	Period            BusinessPeriod
	StartHour         int
	EndHour           int
	TotalSales        float64
	OrderCount        float64
	AverageOrderValue float64
	Percentage        float64
	ActiveHours       int
	PeakHour          *int
}

type HourTrendTag struct {
	Hour      int
	Deviation float64
	Trend     HourTrend
}

type HourlySalesMetrics struct {
	Hours    []HourMetrics
	Summary  DailySalesSummary
	Channels []ChannelPerformance
	Periods  []PeriodAnalysis
	Trends   []HourTrendTag
}

// TrendAnalysis compares a daily value against a weekly daily-equivalent
// baseline.
type TrendAnalysis struct {
	Metric           string
	Current          float64
	Previous         float64
	PercentageChange float64
	Direction        TrendDirection
	Significance     Significance
	// Projected extends the current change one more period.
	Projected float64
}

type WeeklyAnalysis struct {
	Sales           TrendAnalysis
	Labor           TrendAnalysis
	Customers       TrendAnalysis
	Waste           TrendAnalysis
	DigitalAdoption TrendAnalysis
}

// All returns the analyses in their fixed reporting order.
func (w WeeklyAnalysis) All() []TrendAnalysis {
	return []TrendAnalysis{w.Sales, w.Labor, w.Customers, w.Waste, w.DigitalAdoption}
}
