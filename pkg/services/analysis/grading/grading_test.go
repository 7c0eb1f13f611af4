package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func TestComposite(t *testing.T) {
	w := domain.DefaultAnalysisConfig().Weights

	tests := []struct {
		name  string
		in    Inputs
		score float64
		grade domain.Grade
	}{
		{"straight A", Inputs{domain.GradeA, 100, domain.GradeA, domain.GradeA}, 4.0, domain.GradeA},
		{"mixed", Inputs{domain.GradeB, 75, domain.GradeC, domain.GradeB}, 0.9 + 0.75 + 0.5 + 0.6, domain.GradeC},
		{"failing", Inputs{domain.GradeD, 0, domain.GradeF, domain.GradeF}, 0.3, domain.GradeF},
		{"efficiency above 100 is not clamped", Inputs{domain.GradeA, 150, domain.GradeA, domain.GradeA}, 1.2 + 1.5 + 1.0 + 0.8, domain.GradeA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Composite(tt.in, w)
			assert.InDelta(t, tt.score, res.Score, 1e-9)
			assert.Equal(t, tt.grade, res.Grade)
			assert.Len(t, res.Contributions, 4)
		})
	}
}

func TestComposite_WeightsUsedAsGiven(t *testing.T) {
	w := domain.GradeWeights{Financial: 1, Operational: 1, Quality: 1, CostControl: 1}
	res := Composite(Inputs{domain.GradeC, 50, domain.GradeC, domain.GradeC}, w)
	assert.InDelta(t, 8.0, res.Score, 1e-9)
	assert.Equal(t, domain.GradeA, res.Grade)
}

func TestComposite_Monotonic(t *testing.T) {
	w := domain.DefaultAnalysisConfig().Weights
	grades := []domain.Grade{domain.GradeF, domain.GradeD, domain.GradeC, domain.GradeB, domain.GradeA}

	base := Inputs{domain.GradeC, 60, domain.GradeC, domain.GradeC}
	prev := Composite(base, w)
	for _, g := range grades[3:] {
		in := base
		in.Quality = g
		res := Composite(in, w)
		assert.GreaterOrEqual(t, res.Score, prev.Score)
		assert.GreaterOrEqual(t, res.Grade, prev.Grade)
		prev = res
	}

	prev = Composite(base, w)
	for eff := 61.0; eff <= 200; eff += 7 {
		in := base
		in.EfficiencyScore = eff
		res := Composite(in, w)
		assert.GreaterOrEqual(t, res.Score, prev.Score)
		assert.GreaterOrEqual(t, res.Grade, prev.Grade)
		prev = res
	}
}

func TestForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Grade
	}{
		{4, domain.GradeA},
		{3.5, domain.GradeA},
		{3.49, domain.GradeB},
		{3.0, domain.GradeB},
		{2.5, domain.GradeC},
		{2.0, domain.GradeD},
		{1.99, domain.GradeF},
		{-1, domain.GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ForScore(tt.score), "score %v", tt.score)
	}
}

func TestLaborGrade(t *testing.T) {
	assert.Equal(t, domain.GradeA, LaborGrade(0))
	assert.Equal(t, domain.GradeA, LaborGrade(1))
	assert.Equal(t, domain.GradeB, LaborGrade(2.5))
	assert.Equal(t, domain.GradeC, LaborGrade(5))
	assert.Equal(t, domain.GradeD, LaborGrade(5.01))
	assert.Equal(t, domain.GradeD, LaborGrade(40))
}

func TestAccuracyGrade(t *testing.T) {
	assert.Equal(t, domain.GradeA, AccuracyGrade(0.99))
	assert.Equal(t, domain.GradeB, AccuracyGrade(0.95))
	assert.Equal(t, domain.GradeC, AccuracyGrade(0.93))
	assert.Equal(t, domain.GradeD, AccuracyGrade(0.85))
	assert.Equal(t, domain.GradeF, AccuracyGrade(0.5))
}

func TestPassGrade(t *testing.T) {
	assert.Equal(t, domain.GradeA, PassGrade(3, 3))
	assert.Equal(t, domain.GradeB, PassGrade(2, 3))
	assert.Equal(t, domain.GradeC, PassGrade(1, 3))
	assert.Equal(t, domain.GradeF, PassGrade(0, 3))
	assert.Equal(t, domain.GradeD, PassGrade(1, 4))
	assert.Equal(t, domain.GradeF, PassGrade(1, 0))
}
