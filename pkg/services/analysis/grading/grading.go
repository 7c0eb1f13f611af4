// Package grading turns processed store-operations metrics into letter grades
// and the weighted composite grade.
package grading

import "github.com/de-tools/ops-atlas/pkg/models/domain"

const (
	ComponentFinancial   = "financial"
	ComponentOperational = "operational"
	ComponentQuality     = "quality"
	ComponentCostControl = "cost_control"
)

// Inputs are the four composite contributions before weighting.
type Inputs struct {
	Financial       domain.Grade
	EfficiencyScore float64
	Quality         domain.Grade
	CostControl     domain.Grade
}

// Composite weights the four components. The efficiency score is mapped onto
// the 0..4 grade point scale as score/100*4 without clamping, so scores above
// 100 contribute more than an A. Weights are used as given.
func Composite(in Inputs, w domain.GradeWeights) domain.GradeResult {
	contributions := []domain.GradeContribution{
		contribution(ComponentFinancial, in.Financial.Points(), w.Financial),
		contribution(ComponentOperational, in.EfficiencyScore/100*4, w.Operational),
		contribution(ComponentQuality, in.Quality.Points(), w.Quality),
		contribution(ComponentCostControl, in.CostControl.Points(), w.CostControl),
	}

	score := 0.0
	for _, c := range contributions {
		score += c.Weighted
	}

	return domain.GradeResult{
		Grade:         ForScore(score),
		Score:         score,
		Contributions: contributions,
	}
}

func contribution(name string, score, weight float64) domain.GradeContribution {
	return domain.GradeContribution{
		Component: name,
		Score:     score,
		Weight:    weight,
		Weighted:  score * weight,
	}
}

// ForScore buckets a composite grade point score.
func ForScore(score float64) domain.Grade {
	switch {
	case score >= 3.5:
		return domain.GradeA
	case score >= 3.0:
		return domain.GradeB
	case score >= 2.5:
		return domain.GradeC
	case score >= 2.0:
		return domain.GradeD
	default:
		return domain.GradeF
	}
}

// LaborGrade grades the absolute gap between actual and target labor, in
// percentage points. It only produces four tiers.
func LaborGrade(gapPoints float64) domain.Grade {
	switch {
	case gapPoints <= 1:
		return domain.GradeA
	case gapPoints <= 3:
		return domain.GradeB
	case gapPoints <= 5:
		return domain.GradeC
	default:
		return domain.GradeD
	}
}

// AccuracyGrade grades an order accuracy fraction.
func AccuracyGrade(accuracy float64) domain.Grade {
	switch {
	case accuracy >= 0.98:
		return domain.GradeA
	case accuracy >= 0.95:
		return domain.GradeB
	case accuracy >= 0.90:
		return domain.GradeC
	case accuracy >= 0.85:
		return domain.GradeD
	default:
		return domain.GradeF
	}
}

// PassGrade grades the share of pass/fail factors that passed.
func PassGrade(passed, factors int) domain.Grade {
	if factors <= 0 || passed <= 0 {
		return domain.GradeF
	}
	switch {
	case passed >= factors:
		return domain.GradeA
	case passed*3 >= factors*2:
		return domain.GradeB
	case passed*3 >= factors:
		return domain.GradeC
	default:
		return domain.GradeD
	}
}
