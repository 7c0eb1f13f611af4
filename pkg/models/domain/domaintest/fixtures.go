// Package domaintest builds realistic raw records for tests.
package domaintest

import "github.com/de-tools/ops-atlas/pkg/models/domain"

const (
	Store = "01234-00001"
	Date  = "2025-03-14"
)

// PlatformRatings returns a scorecard where every KPI is on track.
func PlatformRatings() *domain.PlatformRatingsRaw {
	const on = "on_track"
	return &domain.PlatformRatingsRaw{
		DDRating: 4.7, DDRatingStatus: on,
		DDCancellationRate: 1.1, DDCancellationRateStatus: on,
		DDMissingIncorrectRate: 1.8, DDMissingIncorrectStatus: on,
		DDAvoidableWaitMinutes: 3.2, DDAvoidableWaitStatus: on,
		DDDowntimeMinutes: 12, DDDowntimeStatus: on,
		UERating: 4.6, UERatingStatus: on,
		UEInaccurateOrdersRate: 2.0, UEInaccurateOrdersStatus: on,
		UEAvgPrepTimeMinutes: 11, UEAvgPrepTimeStatus: on,
		UEDowntimeMinutes: 0, UEDowntimeStatus: on,
		GHRating: 4.8, GHRatingStatus: on,
		GHCancellationRate: 0.5, GHCancellationRateStatus: on,
		GHLateOrdersRate: 6, GHLateOrdersStatus: on,
		GHMissedOrders: 0, GHMissedOrdersStatus: on,
	}
}

// StoreOperations returns a healthy daily record: labor and waste on target,
// cash within band.
func StoreOperations() *domain.StoreOperationsRaw {
	return &domain.StoreOperationsRaw{
		TotalSales:           5000,
		TotalOrders:          250,
		CustomerCount:        240,
		CustomerCountPercent: 0.9,
		ActualLaborPercent:   0.30,
		TargetLaborPercent:   0.30,
		FinishedWaste:        60,
		RawWaste:             40,
		TargetWastePercent:   0.03,
		CashSales:            900,
		StorePhoneSales:      300,
		WebsiteSales:         700,
		MobileAppSales:       800,
		DoorDashSales:        900,
		UberEatsSales:        500,
		GrubhubSales:         200,
		PhoneSales:           400,
		CallCenterSales:      300,
		DriveThruSales:       0,
		DigitalSalesPercent:  0.30,
		PortalUtilization:    0.9,
		PortalOnTimePercent:  0.95,
		AvgPortalTimeSeconds: 45,
		CustomerServiceScore: 0.9,
		CashVariance:         -2.5,
		ModifiedOrders:       2,
		RefundedOrders:       1,
	}
}

// WeeklyOperations returns a weekly aggregate whose daily equivalent matches
// StoreOperations.
func WeeklyOperations() *domain.StoreOperationsRaw {
	d := StoreOperations()
	w := *d
	for _, f := range []*float64{
		&w.TotalSales, &w.TotalOrders, &w.CustomerCount, &w.FinishedWaste, &w.RawWaste,
		&w.CashSales, &w.StorePhoneSales, &w.WebsiteSales, &w.MobileAppSales,
		&w.DoorDashSales, &w.UberEatsSales, &w.GrubhubSales, &w.PhoneSales,
		&w.CallCenterSales, &w.DriveThruSales, &w.ModifiedOrders, &w.RefundedOrders,
	} {
		*f *= 7
	}
	return &w
}

// HourlySales returns 24 records with sales from 10:00 to 22:00 and a flat
// 100 per active hour.
func HourlySales() []*domain.HourlySalesRaw {
	out := make([]*domain.HourlySalesRaw, domain.HoursPerDay)
	for h := range out {
		if h < 10 || h > 22 {
			out[h] = &domain.HourlySalesRaw{Hour: h}
			continue
		}
		out[h] = Hour(h, 100, 5)
	}
	return out
}

// Hour builds an hourly record split 40/30/20/10 across cash, digital,
// delivery and phone.
func Hour(h int, sales, orders float64) *domain.HourlySalesRaw {
	return &domain.HourlySalesRaw{
		Hour:          h,
		TotalSales:    sales,
		OrderCount:    orders,
		CashSales:     sales * 0.4,
		DigitalSales:  sales * 0.3,
		DeliverySales: sales * 0.2,
		PhoneSales:    sales * 0.1,
	}
}

// Envelope returns a complete envelope with a weekly record.
func Envelope() *domain.RawResponseEnvelope {
	return &domain.RawResponseEnvelope{
		Filtering: domain.Filtering{
			Store:         Store,
			Date:          Date,
			LookbackStart: "2025-03-07",
			LookbackEnd:   "2025-03-13",
		},
		PlatformRatings:       PlatformRatings(),
		StoreOperations:       StoreOperations(),
		StoreOperationsWeekly: WeeklyOperations(),
		HourlySales:           HourlySales(),
	}
}
