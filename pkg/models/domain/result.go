package domain

// DomainStatus reports whether one domain of an envelope processed.
type DomainStatus struct {
	Domain AnalysisDomain
	State  ProcessingState
	Reason string
}

func (s DomainStatus) Succeeded() bool {
	return s.State == StateSucceeded
}

type PlatformRatingsResult struct {
	Status  DomainStatus
	Metrics *PlatformRatingsMetrics
	Alerts  []Alert
}

type StoreOperationsResult struct {
	Status  DomainStatus
	Metrics *StoreOperationsMetrics
	// Weekly is nil when the envelope carried no weekly record.
	Weekly *WeeklyAnalysis
	Alerts []Alert
}

type HourlySalesResult struct {
	Status  DomainStatus
	Metrics *HourlySalesMetrics
	Alerts  []Alert
}

// OverallSummary is the cross-domain headline of one analysis.
type OverallSummary struct {
	Store                string
	Date                 string
	OverallGrade         *Grade
	CompositeScore       float64
	AveragePlatformScore float64
	PlatformLevel        *PerformanceLevel
	TotalSales           float64
	PeakSalesHour        *int
	PeakSalesAmount      float64
	TopChannel           *SalesChannel
	SalesTrend           *TrendDirection
	AlertCounts          AlertCounts
	DomainsProcessed     int
	DomainsFailed        int
	KeyInsights          []string
}

// AnalysisResult is the immutable output of one analysis run. It is replaced
// wholesale and never patched in place.
type AnalysisResult struct {
	Filtering       Filtering
	PlatformRatings PlatformRatingsResult
	StoreOperations StoreOperationsResult
	HourlySales     HourlySalesResult
	// Alerts is the aggregated, capped list across every domain.
	Alerts  []Alert
	Summary OverallSummary
}

// Snapshot is what the engine publishes after each transition.
type Snapshot struct {
	Sequence uint64
	State    ProcessingState
	Reason   string
	Result   *AnalysisResult
}
