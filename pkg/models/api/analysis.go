package api

type Filtering struct {
	Store         string `json:"store" yaml:"store"`
	Date          string `json:"date" yaml:"date"`
	LookbackStart string `json:"lookback_start" yaml:"lookback_start"`
	LookbackEnd   string `json:"lookback_end" yaml:"lookback_end"`
}

type DomainStatus struct {
	Domain string `json:"domain" yaml:"domain"`
	State  string `json:"state" yaml:"state"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

type KPI struct {
	Name       string  `json:"name" yaml:"name"`
	Label      string  `json:"label" yaml:"label"`
	Value      float64 `json:"value" yaml:"value"`
	Status     string  `json:"status" yaml:"status"`
	Unit       string  `json:"unit" yaml:"unit"`
	IsCritical bool    `json:"is_critical" yaml:"is_critical"`
	Target     float64 `json:"target" yaml:"target"`
	Trend      string  `json:"trend" yaml:"trend"`
}

type PlatformMetrics struct {
	Platform               string  `json:"platform" yaml:"platform"`
	DisplayName            string  `json:"display_name" yaml:"display_name"`
	OverallRating          float64 `json:"overall_rating" yaml:"overall_rating"`
	KPIs                   []KPI   `json:"kpis" yaml:"kpis"`
	OnTrackCount           int     `json:"on_track_count" yaml:"on_track_count"`
	OffTrackCount          int     `json:"off_track_count" yaml:"off_track_count"`
	TotalApplicableMetrics int     `json:"total_applicable_metrics" yaml:"total_applicable_metrics"`
	PerformancePercentage  float64 `json:"performance_percentage" yaml:"performance_percentage"`
	PerformanceLevel       string  `json:"performance_level" yaml:"performance_level"`
	HasApplicableMetrics   bool    `json:"has_applicable_metrics" yaml:"has_applicable_metrics"`
}

type PlatformRatings struct {
	Status                  DomainStatus      `json:"status" yaml:"status"`
	Platforms               []PlatformMetrics `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	AveragePerformance      float64           `json:"average_performance" yaml:"average_performance"`
	AveragePerformanceLevel string            `json:"average_performance_level,omitempty" yaml:"average_performance_level,omitempty"`
	OffTrackMetrics         int               `json:"off_track_metrics" yaml:"off_track_metrics"`
	CriticalOffTrackMetrics int               `json:"critical_off_track_metrics" yaml:"critical_off_track_metrics"`
	Alerts                  []Alert           `json:"alerts" yaml:"alerts"`
}

type Financial struct {
	TotalSales          float64 `json:"total_sales" yaml:"total_sales"`
	RevenuePerCustomer  float64 `json:"revenue_per_customer" yaml:"revenue_per_customer"`
	DigitalSalesAmount  float64 `json:"digital_sales_amount" yaml:"digital_sales_amount"`
	DigitalSalesPercent float64 `json:"digital_sales_percent" yaml:"digital_sales_percent"`
	CashVariance        float64 `json:"cash_variance" yaml:"cash_variance"`
	ActualLaborPercent  float64 `json:"actual_labor_percent" yaml:"actual_labor_percent"`
	TargetLaborPercent  float64 `json:"target_labor_percent" yaml:"target_labor_percent"`
	LaborVariance       float64 `json:"labor_variance" yaml:"labor_variance"`
	LaborGrade          string  `json:"labor_grade" yaml:"labor_grade"`
}

type Operational struct {
	PortalUtilization    float64 `json:"portal_utilization" yaml:"portal_utilization"`
	PortalOnTimePercent  float64 `json:"portal_on_time_percent" yaml:"portal_on_time_percent"`
	AvgPortalTimeSeconds float64 `json:"avg_portal_time_seconds" yaml:"avg_portal_time_seconds"`
	CustomerServiceScore float64 `json:"customer_service_score" yaml:"customer_service_score"`
	CustomerCount        float64 `json:"customer_count" yaml:"customer_count"`
	CustomerCountPercent float64 `json:"customer_count_percent" yaml:"customer_count_percent"`
	EfficiencyScore      float64 `json:"efficiency_score" yaml:"efficiency_score"`
}

type ChannelPerformance struct {
	Channel           string  `json:"channel" yaml:"channel"`
	Sales             float64 `json:"sales" yaml:"sales"`
	Percentage        float64 `json:"percentage" yaml:"percentage"`
	EstimatedOrders   float64 `json:"estimated_orders" yaml:"estimated_orders"`
	AverageOrderValue float64 `json:"average_order_value" yaml:"average_order_value"`
	Trend             string  `json:"trend" yaml:"trend"`
	PerformanceLevel  string  `json:"performance_level" yaml:"performance_level"`
}

type SalesChannels struct {
	Channels   []ChannelPerformance `json:"channels" yaml:"channels"`
	ChannelSum float64              `json:"channel_sum" yaml:"channel_sum"`
	TopChannel string               `json:"top_channel,omitempty" yaml:"top_channel,omitempty"`
	TopSales   float64              `json:"top_sales" yaml:"top_sales"`
	DriveThru  float64              `json:"drive_thru" yaml:"drive_thru"`
}

type Quality struct {
	TotalOrders      float64 `json:"total_orders" yaml:"total_orders"`
	ModifiedOrders   float64 `json:"modified_orders" yaml:"modified_orders"`
	RefundedOrders   float64 `json:"refunded_orders" yaml:"refunded_orders"`
	ModificationRate float64 `json:"modification_rate" yaml:"modification_rate"`
	RefundRate       float64 `json:"refund_rate" yaml:"refund_rate"`
	OrderAccuracy    float64 `json:"order_accuracy" yaml:"order_accuracy"`
	Grade            string  `json:"grade" yaml:"grade"`
}

type CostControl struct {
	TotalWaste         float64 `json:"total_waste" yaml:"total_waste"`
	WastePercent       float64 `json:"waste_percent" yaml:"waste_percent"`
	TargetWastePercent float64 `json:"target_waste_percent" yaml:"target_waste_percent"`
	LaborWithinTarget  bool    `json:"labor_within_target" yaml:"labor_within_target"`
	WasteWithinTarget  bool    `json:"waste_within_target" yaml:"waste_within_target"`
	CashWithinBand     bool    `json:"cash_within_band" yaml:"cash_within_band"`
	PassRatio          float64 `json:"pass_ratio" yaml:"pass_ratio"`
	Grade              string  `json:"grade" yaml:"grade"`
}

type GradeContribution struct {
	Component string  `json:"component" yaml:"component"`
	Score     float64 `json:"score" yaml:"score"`
	Weight    float64 `json:"weight" yaml:"weight"`
	Weighted  float64 `json:"weighted" yaml:"weighted"`
}

type OverallGrade struct {
	Grade         string              `json:"grade" yaml:"grade"`
	Score         float64             `json:"score" yaml:"score"`
	Contributions []GradeContribution `json:"contributions" yaml:"contributions"`
}

type TrendAnalysis struct {
	Metric           string  `json:"metric" yaml:"metric"`
	Current          float64 `json:"current" yaml:"current"`
	Previous         float64 `json:"previous" yaml:"previous"`
	PercentageChange float64 `json:"percentage_change" yaml:"percentage_change"`
	Direction        string  `json:"direction" yaml:"direction"`
	Significance     string  `json:"significance" yaml:"significance"`
	Projected        float64 `json:"projected" yaml:"projected"`
}

type StoreOperations struct {
	Status        DomainStatus    `json:"status" yaml:"status"`
	Financial     *Financial      `json:"financial,omitempty" yaml:"financial,omitempty"`
	Operational   *Operational    `json:"operational,omitempty" yaml:"operational,omitempty"`
	SalesChannels *SalesChannels  `json:"sales_channels,omitempty" yaml:"sales_channels,omitempty"`
	Quality       *Quality        `json:"quality,omitempty" yaml:"quality,omitempty"`
	CostControl   *CostControl    `json:"cost_control,omitempty" yaml:"cost_control,omitempty"`
	OverallGrade  *OverallGrade   `json:"overall_grade,omitempty" yaml:"overall_grade,omitempty"`
	Weekly        []TrendAnalysis `json:"weekly,omitempty" yaml:"weekly,omitempty"`
	Alerts        []Alert         `json:"alerts" yaml:"alerts"`
}

type HourMetrics struct {
	Hour              int     `json:"hour" yaml:"hour"`
	HasRecord         bool    `json:"has_record" yaml:"has_record"`
	HasActivity       bool    `json:"has_activity" yaml:"has_activity"`
	TotalSales        float64 `json:"total_sales" yaml:"total_sales"`
	OrderCount        float64 `json:"order_count" yaml:"order_count"`
	AverageOrderValue float64 `json:"average_order_value" yaml:"average_order_value"`
	DigitalPercent    float64 `json:"digital_percent" yaml:"digital_percent"`
	PrimaryChannel    string  `json:"primary_channel,omitempty" yaml:"primary_channel,omitempty"`
	Trend             string  `json:"trend" yaml:"trend"`
	Deviation         float64 `json:"deviation" yaml:"deviation"`
}

type DailySalesSummary struct {
	TotalSales         float64 `json:"total_sales" yaml:"total_sales"`
	TotalOrders        float64 `json:"total_orders" yaml:"total_orders"`
	AverageOrderValue  float64 `json:"average_order_value" yaml:"average_order_value"`
	ActiveHours        int     `json:"active_hours" yaml:"active_hours"`
	AverageHourlySales float64 `json:"average_hourly_sales" yaml:"average_hourly_sales"`
	PeakSalesHour      int     `json:"peak_sales_hour" yaml:"peak_sales_hour"`
	PeakSalesAmount    float64 `json:"peak_sales_amount" yaml:"peak_sales_amount"`
	SlowestActiveHour  *int    `json:"slowest_active_hour,omitempty" yaml:"slowest_active_hour,omitempty"`
	SlowestActiveSales float64 `json:"slowest_active_sales" yaml:"slowest_active_sales"`
	DigitalPercent     float64 `json:"digital_percent" yaml:"digital_percent"`
}

type PeriodAnalysis struct {
	Period            string  `json:"period" yaml:"period"`
	StartHour         int     `json:"start_hour" yaml:"start_hour"`
	EndHour           int     `json:"end_hour" yaml:"end_hour"`
	TotalSales        float64 `json:"total_sales" yaml:"total_sales"`
	OrderCount        float64 `json:"order_count" yaml:"order_count"`
	AverageOrderValue float64 `json:"average_order_value" yaml:"average_order_value"`
	Percentage        float64 `json:"percentage" yaml:"percentage"`
	ActiveHours       int     `json:"active_hours" yaml:"active_hours"`
	PeakHour          *int    `json:"peak_hour,omitempty" yaml:"peak_hour,omitempty"`
}

type HourlySales struct {
	Status   DomainStatus         `json:"status" yaml:"status"`
	Hours    []HourMetrics        `json:"hours,omitempty" yaml:"hours,omitempty"`
	Summary  *DailySalesSummary   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Channels []ChannelPerformance `json:"channels,omitempty" yaml:"channels,omitempty"`
	Periods  []PeriodAnalysis     `json:"periods,omitempty" yaml:"periods,omitempty"`
	Alerts   []Alert              `json:"alerts" yaml:"alerts"`
}

type Summary struct {
	Store                string      `json:"store" yaml:"store"`
	Date                 string      `json:"date" yaml:"date"`
	OverallGrade         string      `json:"overall_grade,omitempty" yaml:"overall_grade,omitempty"`
	CompositeScore       float64     `json:"composite_score" yaml:"composite_score"`
	AveragePlatformScore float64     `json:"average_platform_score" yaml:"average_platform_score"`
	PlatformLevel        string      `json:"platform_level,omitempty" yaml:"platform_level,omitempty"`
	TotalSales           float64     `json:"total_sales" yaml:"total_sales"`
	PeakSalesHour        *int        `json:"peak_sales_hour,omitempty" yaml:"peak_sales_hour,omitempty"`
	PeakSalesAmount      float64     `json:"peak_sales_amount" yaml:"peak_sales_amount"`
	TopChannel           string      `json:"top_channel,omitempty" yaml:"top_channel,omitempty"`
	SalesTrend           string      `json:"sales_trend,omitempty" yaml:"sales_trend,omitempty"`
	AlertCounts          AlertCounts `json:"alert_counts" yaml:"alert_counts"`
	DomainsProcessed     int         `json:"domains_processed" yaml:"domains_processed"`
	DomainsFailed        int         `json:"domains_failed" yaml:"domains_failed"`
	KeyInsights          []string    `json:"key_insights" yaml:"key_insights"`
}

type AnalysisResult struct {
	Filtering       Filtering       `json:"filtering" yaml:"filtering"`
	PlatformRatings PlatformRatings `json:"platform_ratings" yaml:"platform_ratings"`
	StoreOperations StoreOperations `json:"store_operations" yaml:"store_operations"`
	HourlySales     HourlySales     `json:"hourly_sales" yaml:"hourly_sales"`
	Alerts          []Alert         `json:"alerts" yaml:"alerts"`
	Summary         Summary         `json:"summary" yaml:"summary"`
}

type Snapshot struct {
	Sequence uint64          `json:"sequence" yaml:"sequence"`
	State    string          `json:"state" yaml:"state"`
	Reason   string          `json:"reason,omitempty" yaml:"reason,omitempty"`
	Result   *AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
}

// FailureSignal reports that the upstream could not deliver an envelope.
type FailureSignal struct {
	Reason string `json:"reason"`
}

type ErrorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}
