// Package platform turns the delivery-platform scorecard of an envelope into
// per-platform KPI lists, on-track ratios and performance levels.
package platform

import (
	"fmt"
	"math"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// Output is the processed scorecard plus the alert candidates it produced.
type Output struct {
	Metrics    domain.PlatformRatingsMetrics
	Candidates []domain.AlertCandidate
}

// Process builds the scorecard of every platform in fixed order. A platform
// with no applicable KPI is kept with a 0% performance percentage.
func Process(raw *domain.PlatformRatingsRaw, cfg domain.AnalysisConfig) (Output, error) {
	if raw == nil {
		return Output{}, domain.MissingDomainError(domain.DomainPlatformRatings)
	}
	if err := validate(raw); err != nil {
		return Output{}, err
	}

	out := Output{
		Metrics: domain.PlatformRatingsMetrics{
			Platforms: make([]domain.PlatformMetrics, 0, len(domain.Platforms)),
		},
	}

	total := 0.0
	for _, p := range domain.Platforms {
		pm, candidates := processPlatform(p, raw, cfg.Thresholds.Platform)
		out.Metrics.Platforms = append(out.Metrics.Platforms, pm)
		out.Candidates = append(out.Candidates, candidates...)

		total += pm.PerformancePercentage
		out.Metrics.OffTrackMetrics += pm.OffTrackCount
		for _, k := range pm.KPIs {
			if k.IsCritical && k.Status == domain.StatusOffTrack {
				out.Metrics.CriticalOffTrackMetrics++
			}
		}
	}

	out.Metrics.AveragePerformance = total / float64(len(domain.Platforms))
	out.Metrics.AveragePerformanceLevel = cfg.Thresholds.Platform.Level(out.Metrics.AveragePerformance)

	return out, nil
}

func processPlatform(
	p domain.Platform,
	raw *domain.PlatformRatingsRaw,
	thresholds domain.PerformanceThresholds,
) (domain.PlatformMetrics, []domain.AlertCandidate) {
	defs := catalogue[p]
	pm := domain.PlatformMetrics{
		Platform:    p,
		DisplayName: p.DisplayName(),
		KPIs:        make([]domain.KPI, 0, len(defs)),
	}

	var candidates []domain.AlertCandidate
	for _, def := range defs {
		kpi := domain.KPI{
			Name:       def.name,
			Label:      def.label,
			Value:      def.value(raw),
			Status:     domain.ParseOnTrackStatus(def.status(raw)),
			Unit:       def.unit,
			IsCritical: def.critical,
			Target:     def.target,
		}
		kpi.Trend = trendAgainstTarget(kpi, def.lowerIsBetter)
		pm.KPIs = append(pm.KPIs, kpi)

		if def.name == ratingKPI {
			pm.OverallRating = kpi.Value
		}

		switch kpi.Status {
		case domain.StatusOnTrack:
			pm.OnTrackCount++
			pm.TotalApplicableMetrics++
		case domain.StatusOffTrack:
			pm.OffTrackCount++
			pm.TotalApplicableMetrics++
			candidates = append(candidates, candidateFor(p, kpi, def))
		}
	}

	if pm.TotalApplicableMetrics > 0 {
		pm.HasApplicableMetrics = true
		pm.PerformancePercentage = float64(pm.OnTrackCount) / float64(pm.TotalApplicableMetrics) * 100
	}
	pm.PerformanceLevel = thresholds.Level(pm.PerformancePercentage)

	return pm, candidates
}

// trendAgainstTarget reports whether the KPI sits on the good or bad side of
// its target. Not applicable KPIs are stable.
func trendAgainstTarget(k domain.KPI, lowerIsBetter bool) domain.TrendDirection {
	if k.Status == domain.StatusNotApplicable || k.Value == k.Target {
		return domain.TrendStable
	}
	better := k.Value > k.Target
	if lowerIsBetter {
		better = !better
	}
	if better {
		return domain.TrendUp
	}
	return domain.TrendDown
}

func candidateFor(p domain.Platform, k domain.KPI, def kpiDef) domain.AlertCandidate {
	platform := p
	return domain.AlertCandidate{
		Domain:   domain.DomainPlatformRatings,
		Category: domain.CategoryPlatform,
		Platform: &platform,
		Metric:   k.Name,
		Title:    fmt.Sprintf("%s %s off track", p.DisplayName(), k.Label),
		Message: fmt.Sprintf("%s %s is %.2f %s against a target of %.2f %s.",
			p.DisplayName(), k.Label, k.Value, k.Unit, k.Target, k.Unit),
		Status:          k.Status,
		CurrentValue:    k.Value,
		TargetValue:     k.Target,
		Recommendations: append([]string(nil), def.advice...),
	}
}

func validate(raw *domain.PlatformRatingsRaw) error {
	var problems []string
	for _, p := range domain.Platforms {
		for _, def := range catalogue[p] {
			v := def.value(raw)
			field := fmt.Sprintf("%s.%s", p, def.name)
			switch {
			case math.IsNaN(v) || math.IsInf(v, 0):
				problems = append(problems, fmt.Sprintf("%s is not a finite number", field))
			case v < 0:
				problems = append(problems, fmt.Sprintf("%s must not be negative, got %v", field, v))
			case def.name == ratingKPI && v > 5:
				problems = append(problems, fmt.Sprintf("%s must be within 0..5, got %v", field, v))
			}
		}
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Domain: domain.DomainPlatformRatings, Problems: problems}
	}
	return nil
}
