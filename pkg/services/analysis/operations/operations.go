// Package operations derives financial, operational, sales-channel, quality
// and cost-control metrics from a daily store-operations record.
package operations

import (
	"fmt"
	"math"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/grading"
)

// LaborTolerance is the relative distance from target labor that still
// counts as on target for cost control.
const LaborTolerance = 0.10

// Output is the processed record plus the alert candidates it produced.
type Output struct {
	Metrics    domain.StoreOperationsMetrics
	Candidates []domain.AlertCandidate
}

// Process derives the five sub-trees and the composite grade. weekly may be
// nil; it is only used for channel trends.
func Process(daily, weekly *domain.StoreOperationsRaw, cfg domain.AnalysisConfig) (Output, error) {
	if daily == nil {
		return Output{}, domain.MissingDomainError(domain.DomainStoreOperations)
	}
	if err := validate(daily, weekly); err != nil {
		return Output{}, err
	}

	targets := resolveTargets(daily, cfg.Targets)

	m := domain.StoreOperationsMetrics{
		Financial:     financial(daily, targets),
		Operational:   operational(daily),
		SalesChannels: salesChannels(daily, weekly, cfg.Thresholds.Channel),
		Quality:       quality(daily),
		CostControl:   costControl(daily, targets),
	}
	m.OverallGrade = grading.Composite(grading.Inputs{
		Financial:       m.Financial.LaborGrade,
		EfficiencyScore: m.Operational.EfficiencyScore,
		Quality:         m.Quality.Grade,
		CostControl:     m.CostControl.Grade,
	}, cfg.Weights)

	return Output{
		Metrics:    m,
		Candidates: candidates(m, targets),
	}, nil
}

// targets resolved for one record: the record's own targets win over the
// configured fallbacks.
type targets struct {
	labor           float64
	waste           float64
	customerService float64
	cashBand        float64
}

func resolveTargets(r *domain.StoreOperationsRaw, cfg domain.Targets) targets {
	t := targets{
		labor:           cfg.LaborPercent,
		waste:           cfg.WastePercent,
		customerService: cfg.CustomerServicePercent,
		cashBand:        cfg.CashVarianceBand,
	}
	if r.TargetLaborPercent > 0 {
		t.labor = r.TargetLaborPercent
	}
	if r.TargetWastePercent > 0 {
		t.waste = r.TargetWastePercent
	}
	return t
}

func financial(r *domain.StoreOperationsRaw, t targets) domain.FinancialMetrics {
	gap := math.Abs(r.ActualLaborPercent-t.labor) * 100
	return domain.FinancialMetrics{
		TotalSales:          r.TotalSales,
		RevenuePerCustomer:  safeDiv(r.TotalSales, r.CustomerCount),
		DigitalSalesAmount:  r.TotalSales * r.DigitalSalesPercent,
		DigitalSalesPercent: r.DigitalSalesPercent,
		CashVariance:        r.CashVariance,
		ActualLaborPercent:  r.ActualLaborPercent,
		TargetLaborPercent:  t.labor,
		LaborVariance:       r.ActualLaborPercent - t.labor,
		LaborGrade:          grading.LaborGrade(gap),
	}
}

// EfficiencyScore is an additive weighted sum. It is not clamped to 100.
func EfficiencyScore(r *domain.StoreOperationsRaw) float64 {
	return r.PortalUtilization*30 +
		r.PortalOnTimePercent*30 +
		r.CustomerServiceScore*25 +
		r.CustomerCountPercent*15
}

func operational(r *domain.StoreOperationsRaw) domain.OperationalMetrics {
	return domain.OperationalMetrics{
		PortalUtilization:    r.PortalUtilization,
		PortalOnTimePercent:  r.PortalOnTimePercent,
		AvgPortalTimeSeconds: r.AvgPortalTimeSeconds,
		CustomerServiceScore: r.CustomerServiceScore,
		CustomerCount:        r.CustomerCount,
		CustomerCountPercent: r.CustomerCountPercent,
		EfficiencyScore:      EfficiencyScore(r),
	}
}

func quality(r *domain.StoreOperationsRaw) domain.QualityMetrics {
	q := domain.QualityMetrics{
		TotalOrders:      r.TotalOrders,
		ModifiedOrders:   r.ModifiedOrders,
		RefundedOrders:   r.RefundedOrders,
		ModificationRate: safeDiv(r.ModifiedOrders, r.TotalOrders),
		RefundRate:       safeDiv(r.RefundedOrders, r.TotalOrders),
	}
	q.OrderAccuracy = math.Max(0, 1-q.ModificationRate-q.RefundRate)
	q.Grade = grading.AccuracyGrade(q.OrderAccuracy)
	return q
}

func costControl(r *domain.StoreOperationsRaw, t targets) domain.CostControlMetrics {
	c := domain.CostControlMetrics{
		TotalWaste:         r.TotalWaste(),
		WastePercent:       safeDiv(r.TotalWaste(), r.TotalSales),
		TargetWastePercent: t.waste,
	}
	c.LaborWithinTarget = math.Abs(r.ActualLaborPercent-t.labor) <= t.labor*LaborTolerance
	c.WasteWithinTarget = c.WastePercent <= t.waste
	c.CashWithinBand = math.Abs(r.CashVariance) <= t.cashBand

	passed := 0
	for _, ok := range []bool{c.LaborWithinTarget, c.WasteWithinTarget, c.CashWithinBand} {
		if ok {
			passed++
		}
	}
	c.PassRatio = float64(passed) / 3
	c.Grade = grading.PassGrade(passed, 3)
	return c
}

func validate(daily, weekly *domain.StoreOperationsRaw) error {
	problems := validateRecord("daily", daily)
	if weekly != nil {
		problems = append(problems, validateRecord("weekly", weekly)...)
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Domain: domain.DomainStoreOperations, Problems: problems}
	}
	return nil
}

func validateRecord(label string, r *domain.StoreOperationsRaw) []string {
	var problems []string
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"Total_Sales", r.TotalSales},
		{"Total_Orders", r.TotalOrders},
		{"Customer_Count", r.CustomerCount},
		{"Finished_Waste", r.FinishedWaste},
		{"Raw_Waste", r.RawWaste},
		{"Modified_Orders", r.ModifiedOrders},
		{"Refunded_Orders", r.RefundedOrders},
	}
	for _, f := range nonNegative {
		switch {
		case math.IsNaN(f.value) || math.IsInf(f.value, 0):
			problems = append(problems, fmt.Sprintf("%s.%s is not a finite number", label, f.name))
		case f.value < 0:
			problems = append(problems, fmt.Sprintf("%s.%s must not be negative, got %v", label, f.name, f.value))
		}
	}
	return problems
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

