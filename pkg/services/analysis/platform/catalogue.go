package platform

import "github.com/de-tools/ops-atlas/pkg/models/domain"

// kpiDef describes how one scorecard KPI is read from the raw record.
type kpiDef struct {
	name          string
	label         string
	unit          string
	critical      bool
	target        float64
	lowerIsBetter bool
	value         func(r *domain.PlatformRatingsRaw) float64
	status        func(r *domain.PlatformRatingsRaw) string
	advice        []string
}

var catalogue = map[domain.Platform][]kpiDef{
	domain.PlatformDoorDash: {
		{
			name: "rating", label: "Customer Rating", unit: "stars", critical: true, target: 4.5,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.DDRating },
			status: func(r *domain.PlatformRatingsRaw) string { return r.DDRatingStatus },
			advice: []string{"Review recent low-star comments for recurring issues", "Audit packaging and food temperature on delivery orders"},
		},
		{
			name: "cancellation_rate", label: "Cancellation Rate", unit: "%", critical: true, target: 2.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.DDCancellationRate },
			status: func(r *domain.PlatformRatingsRaw) string { return r.DDCancellationRateStatus },
			advice: []string{"Keep the menu in sync with ingredient availability", "Confirm tablet is online for the full store schedule"},
		},
		{
			name: "missing_incorrect_rate", label: "Missing or Incorrect Items", unit: "%", critical: true, target: 3.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.DDMissingIncorrectRate },
			status: func(r *domain.PlatformRatingsRaw) string { return r.DDMissingIncorrectStatus },
			advice: []string{"Add a bag check step before handoff", "Seal bags and staple receipts to every order"},
		},
		{
			name: "avoidable_wait_minutes", label: "Avoidable Dasher Wait", unit: "min", target: 5.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.DDAvoidableWaitMinutes },
			status: func(r *domain.PlatformRatingsRaw) string { return r.DDAvoidableWaitStatus },
			advice: []string{"Adjust prep time estimates during peak periods", "Stage completed orders at a dedicated pickup shelf"},
		},
		{
			name: "downtime_minutes", label: "Store Downtime", unit: "min", target: 30.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.DDDowntimeMinutes },
			status: func(r *domain.PlatformRatingsRaw) string { return r.DDDowntimeStatus },
			advice: []string{"Avoid pausing the store during busy periods", "Check tablet connectivity and battery at open"},
		},
	},
	domain.PlatformUberEats: {
		{
			name: "rating", label: "Customer Rating", unit: "stars", critical: true, target: 4.5,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.UERating },
			status: func(r *domain.PlatformRatingsRaw) string { return r.UERatingStatus },
			advice: []string{"Review recent low-star comments for recurring issues", "Respond to customer feedback in the merchant portal"},
		},
		{
			name: "inaccurate_orders_rate", label: "Inaccurate Orders", unit: "%", critical: true, target: 3.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.UEInaccurateOrdersRate },
			status: func(r *domain.PlatformRatingsRaw) string { return r.UEInaccurateOrdersStatus },
			advice: []string{"Add a bag check step before handoff", "Review modifier handling on the make line"},
		},
		{
			name: "avg_prep_time_minutes", label: "Average Prep Time", unit: "min", target: 15.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.UEAvgPrepTimeMinutes },
			status: func(r *domain.PlatformRatingsRaw) string { return r.UEAvgPrepTimeStatus },
			advice: []string{"Align staffing with the delivery order curve", "Prioritize delivery tickets on the kitchen display"},
		},
		{
			name: "downtime_minutes", label: "Store Downtime", unit: "min", target: 30.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.UEDowntimeMinutes },
			status: func(r *domain.PlatformRatingsRaw) string { return r.UEDowntimeStatus },
			advice: []string{"Avoid pausing the store during busy periods", "Check tablet connectivity and battery at open"},
		},
	},
	domain.PlatformGrubhub: {
		{
			name: "rating", label: "Customer Rating", unit: "stars", critical: true, target: 4.5,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.GHRating },
			status: func(r *domain.PlatformRatingsRaw) string { return r.GHRatingStatus },
			advice: []string{"Review recent low-star comments for recurring issues"},
		},
		{
			name: "cancellation_rate", label: "Cancellation Rate", unit: "%", critical: true, target: 2.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.GHCancellationRate },
			status: func(r *domain.PlatformRatingsRaw) string { return r.GHCancellationRateStatus },
			advice: []string{"Keep the menu in sync with ingredient availability", "Confirm tablet is online for the full store schedule"},
		},
		{
			name: "late_orders_rate", label: "Late Orders", unit: "%", target: 10.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.GHLateOrdersRate },
			status: func(r *domain.PlatformRatingsRaw) string { return r.GHLateOrdersStatus },
			advice: []string{"Adjust prep time estimates during peak periods"},
		},
		{
			name: "missed_orders", label: "Missed Orders", unit: "orders", target: 2.0, lowerIsBetter: true,
			value:  func(r *domain.PlatformRatingsRaw) float64 { return r.GHMissedOrders },
			status: func(r *domain.PlatformRatingsRaw) string { return r.GHMissedOrdersStatus },
			advice: []string{"Enable order sound alerts on the tablet", "Assign a team member to confirm incoming orders"},
		},
	},
}

// ratingKPI is the KPI name whose value is reported as the platform's
// overall rating.
const ratingKPI = "rating"
