package operations

import (
	"fmt"
	"math"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

const (
	MetricLaborPercent    = "labor_percent"
	MetricWastePercent    = "waste_percent"
	MetricCustomerService = "customer_service"
	MetricCashVariance    = "cash_variance"
)

// candidates compares the record with its targets. Every comparison is
// emitted; only the breached ones are marked off track.
func candidates(m domain.StoreOperationsMetrics, t targets) []domain.AlertCandidate {
	var out []domain.AlertCandidate

	if t.labor > 0 {
		out = append(out, domain.AlertCandidate{
			Domain:       domain.DomainStoreOperations,
			Category:     domain.CategoryCostControl,
			Metric:       MetricLaborPercent,
			Title:        "Labor cost above target",
			Message:      fmt.Sprintf("Labor is %.1f%% of sales against a target of %.1f%%.", m.Financial.ActualLaborPercent*100, t.labor*100),
			Status:       statusWhen(m.Financial.ActualLaborPercent > t.labor),
			CurrentValue: m.Financial.ActualLaborPercent,
			TargetValue:  t.labor,
			Recommendations: []string{
				"Review the schedule against the hourly sales curve",
				"Send non-essential staff home during slow periods",
			},
		})
	}

	if t.waste > 0 {
		out = append(out, domain.AlertCandidate{
			Domain:       domain.DomainStoreOperations,
			Category:     domain.CategoryCostControl,
			Metric:       MetricWastePercent,
			Title:        "Waste above target",
			Message:      fmt.Sprintf("Waste is %.2f%% of sales against a target of %.2f%%.", m.CostControl.WastePercent*100, t.waste*100),
			Status:       statusWhen(m.CostControl.WastePercent > t.waste),
			CurrentValue: m.CostControl.WastePercent,
			TargetValue:  t.waste,
			Recommendations: []string{
				"Compare prep levels with the sales forecast",
				"Log finished waste by item to find the largest sources",
			},
		})
	}

	if t.customerService > 0 {
		out = append(out, domain.AlertCandidate{
			Domain:       domain.DomainStoreOperations,
			Category:     domain.CategoryQuality,
			Metric:       MetricCustomerService,
			Title:        "Customer service score below target",
			Message:      fmt.Sprintf("Customer service scored %.1f%% against a target of %.1f%%.", m.Operational.CustomerServiceScore*100, t.customerService*100),
			Status:       statusWhen(m.Operational.CustomerServiceScore < t.customerService),
			CurrentValue: m.Operational.CustomerServiceScore,
			TargetValue:  t.customerService,
			Recommendations: []string{
				"Review guest complaints with the shift leads",
				"Coach the team on order accuracy and greeting standards",
			},
		})
	}

	if t.cashBand > 0 {
		variance := math.Abs(m.Financial.CashVariance)
		out = append(out, domain.AlertCandidate{
			Domain:       domain.DomainStoreOperations,
			Category:     domain.CategoryFinancial,
			Metric:       MetricCashVariance,
			Title:        "Cash variance outside band",
			Message:      fmt.Sprintf("Cash drawers are off by %.2f against an allowed band of %.2f.", m.Financial.CashVariance, t.cashBand),
			Status:       statusWhen(variance > t.cashBand),
			CurrentValue: variance,
			TargetValue:  t.cashBand,
			Recommendations: []string{
				"Recount drawers and reconcile against the register report",
				"Confirm cash handling procedures at shift change",
			},
		})
	}

	return out
}

func statusWhen(breached bool) domain.OnTrackStatus {
	if breached {
		return domain.StatusOffTrack
	}
	return domain.StatusOnTrack
}
