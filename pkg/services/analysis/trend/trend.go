// Package trend compares a daily store-operations record with the daily
// equivalent of a weekly aggregate.
package trend

import (
	"math"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// DaysPerWeek divides weekly flow metrics into a daily baseline. Closed days
// are not accounted for.
const DaysPerWeek = 7

const (
	MetricSales           = "sales"
	MetricLabor           = "labor"
	MetricCustomers       = "customers"
	MetricWaste           = "waste"
	MetricDigitalAdoption = "digital_adoption"
)

// PercentageChange is the signed change of current relative to previous, in
// percent. It is 0 when previous is 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// DailyEquivalent turns a weekly flow total into a per-day baseline.
func DailyEquivalent(weekly float64) float64 {
	return weekly / DaysPerWeek
}

func Direction(change float64) domain.TrendDirection {
	switch {
	case change >= 10:
		return domain.TrendStrongUp
	case change >= 2:
		return domain.TrendUp
	case change <= -10:
		return domain.TrendStrongDown
	case change <= -2:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

func SignificanceOf(change float64) domain.Significance {
	abs := math.Abs(change)
	switch {
	case abs >= 20:
		return domain.SignificanceCritical
	case abs >= 10:
		return domain.SignificanceHigh
	case abs >= 5:
		return domain.SignificanceMedium
	case abs >= 2:
		return domain.SignificanceLow
	default:
		return domain.SignificanceNegligible
	}
}

// Compare builds the trend analysis of one metric.
func Compare(metric string, current, previous float64) domain.TrendAnalysis {
	change := PercentageChange(current, previous)
	return domain.TrendAnalysis{
		Metric:           metric,
		Current:          current,
		Previous:         previous,
		PercentageChange: change,
		Direction:        Direction(change),
		Significance:     SignificanceOf(change),
		Projected:        current + (current - previous),
	}
}

// Analyze returns nil when there is no weekly record. Flow metrics are
// compared against weekly/7, ratio metrics against the weekly value as is.
func Analyze(daily, weekly *domain.StoreOperationsRaw) *domain.WeeklyAnalysis {
	if daily == nil || weekly == nil {
		return nil
	}
	return &domain.WeeklyAnalysis{
		Sales:           Compare(MetricSales, daily.TotalSales, DailyEquivalent(weekly.TotalSales)),
		Labor:           Compare(MetricLabor, daily.ActualLaborPercent, weekly.ActualLaborPercent),
		Customers:       Compare(MetricCustomers, daily.CustomerCount, DailyEquivalent(weekly.CustomerCount)),
		Waste:           Compare(MetricWaste, daily.TotalWaste(), DailyEquivalent(weekly.TotalWaste())),
		DigitalAdoption: Compare(MetricDigitalAdoption, daily.DigitalSalesPercent, weekly.DigitalSalesPercent),
	}
}
