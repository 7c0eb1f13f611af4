package domain

// HoursPerDay is the exact number of hourly records an envelope must carry.
const HoursPerDay = 24

// Filtering identifies the store/date snapshot an envelope was fetched for.
type Filtering struct {
	Store         string `json:"store" yaml:"store"`
	Date          string `json:"date" yaml:"date"`
	LookbackStart string `json:"lookback_start" yaml:"lookback_start"`
	LookbackEnd   string `json:"lookback_end" yaml:"lookback_end"`
}

// RawResponseEnvelope is the raw upstream payload for one store and one
// business date. It is never mutated after it has been handed to the engine.
type RawResponseEnvelope struct {
	Filtering             Filtering           `json:"filtering"`
	PlatformRatings       *PlatformRatingsRaw `json:"platform_ratings"`
	StoreOperations       *StoreOperationsRaw `json:"store_operations"`
	StoreOperationsWeekly *StoreOperationsRaw `json:"store_operations_weekly,omitempty"`
	HourlySales           []*HourlySalesRaw   `json:"hourly_sales"`
}

// PlatformRatingsRaw is the flat delivery-platform scorecard. Every metric
// has a parallel *_status field holding on_track, not_applicable or off_track.
type PlatformRatingsRaw struct {
	DDRating                 float64 `json:"dd_rating"`
	DDRatingStatus           string  `json:"dd_rating_status"`
	DDCancellationRate       float64 `json:"dd_cancellation_rate"`
	DDCancellationRateStatus string  `json:"dd_cancellation_rate_status"`
	DDMissingIncorrectRate   float64 `json:"dd_missing_incorrect_rate"`
	DDMissingIncorrectStatus string  `json:"dd_missing_incorrect_rate_status"`
	DDAvoidableWaitMinutes   float64 `json:"dd_avoidable_wait_minutes"`
	DDAvoidableWaitStatus    string  `json:"dd_avoidable_wait_minutes_status"`
	DDDowntimeMinutes        float64 `json:"dd_downtime_minutes"`
	DDDowntimeStatus         string  `json:"dd_downtime_minutes_status"`
	UERating                 float64 `json:"ue_rating"`
	UERatingStatus           string  `json:"ue_rating_status"`
	UEInaccurateOrdersRate   float64 `json:"ue_inaccurate_orders_rate"`
	UEInaccurateOrdersStatus string  `json:"ue_inaccurate_orders_rate_status"`
	UEAvgPrepTimeMinutes     float64 `json:"ue_avg_prep_time_minutes"`
	UEAvgPrepTimeStatus      string  `json:"ue_avg_prep_time_minutes_status"`
	UEDowntimeMinutes        float64 `json:"ue_downtime_minutes"`
	UEDowntimeStatus         string  `json:"ue_downtime_minutes_status"`
	GHRating                 float64 `json:"gh_rating"`
	GHRatingStatus           string  `json:"gh_rating_status"`
	GHCancellationRate       float64 `json:"gh_cancellation_rate"`
	GHCancellationRateStatus string  `json:"gh_cancellation_rate_status"`
	GHLateOrdersRate         float64 `json:"gh_late_orders_rate"`
	GHLateOrdersStatus       string  `json:"gh_late_orders_rate_status"`
	GHMissedOrders           float64 `json:"gh_missed_orders"`
	GHMissedOrdersStatus     string  `json:"gh_missed_orders_status"`
}

// StoreOperationsRaw is one daily record, or a weekly aggregate of the same
// shape. Ratio fields are fractions: 0.30 means 30%.
type StoreOperationsRaw struct {
	TotalSales           float64 `json:"Total_Sales"`
	TotalOrders          float64 `json:"Total_Orders"`
	CustomerCount        float64 `json:"Customer_Count"`
	CustomerCountPercent float64 `json:"Customer_Count_Percent"`
	ActualLaborPercent   float64 `json:"Actual_Labor_Percent"`
	TargetLaborPercent   float64 `json:"Target_Labor_Percent"`
	FinishedWaste        float64 `json:"Finished_Waste"`
	RawWaste             float64 `json:"Raw_Waste"`
	TargetWastePercent   float64 `json:"Target_Waste_Percent"`
	CashSales            float64 `json:"Cash_Sales"`
	StorePhoneSales      float64 `json:"Store_Phone_Sales"`
	WebsiteSales         float64 `json:"Website_Sales"`
	MobileAppSales       float64 `json:"Mobile_App_Sales"`
	DoorDashSales        float64 `json:"DoorDash_Sales"`
	UberEatsSales        float64 `json:"UberEats_Sales"`
	GrubhubSales         float64 `json:"Grubhub_Sales"`
	PhoneSales           float64 `json:"Phone_Sales"`
	CallCenterSales      float64 `json:"Call_Center_Sales"`
	DriveThruSales       float64 `json:"Drive_Thru_Sales"`
	DigitalSalesPercent  float64 `json:"Digital_Sales_Percent"`
	PortalUtilization    float64 `json:"Portal_Utilization"`
	PortalOnTimePercent  float64 `json:"Portal_On_Time_Percent"`
	AvgPortalTimeSeconds float64 `json:"Avg_Portal_Time_Seconds"`
	CustomerServiceScore float64 `json:"Customer_Service_Score"`
	CashVariance         float64 `json:"Cash_Variance"`
	ModifiedOrders       float64 `json:"Modified_Orders"`
	RefundedOrders       float64 `json:"Refunded_Orders"`
}

// TotalWaste is finished plus raw waste.
func (r StoreOperationsRaw) TotalWaste() float64 {
	return r.FinishedWaste + r.RawWaste
}

// HourlySalesRaw is one hour of point-of-sale activity. A nil entry in the
// envelope means the hour carried no record at all.
type HourlySalesRaw struct {
	Hour           int     `json:"Hour"`
	TotalSales     float64 `json:"Total_Sales"`
	OrderCount     float64 `json:"Order_Count"`
	CashSales      float64 `json:"Cash_Sales"`
	DigitalSales   float64 `json:"Digital_Sales"`
	DeliverySales  float64 `json:"Delivery_Sales"`
	PhoneSales     float64 `json:"Phone_Sales"`
	DriveThruSales float64 `json:"Drive_Thru_Sales"`
}

// ChannelSales returns the amount attributed to one of the five hourly
// channels.
func (h HourlySalesRaw) ChannelSales(c SalesChannel) float64 {
	switch c {
	case ChannelTraditional:
		return h.CashSales
	case ChannelDigital:
		return h.DigitalSales
	case ChannelDelivery:
		return h.DeliverySales
	case ChannelPhone:
		return h.PhoneSales
	case ChannelDriveThru:
		return h.DriveThruSales
	default:
		return 0
	}
}
