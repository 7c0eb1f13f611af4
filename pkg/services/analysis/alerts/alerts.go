// Package alerts classifies, filters, deduplicates, orders and caps the alert
// candidates produced by the domain processors.
package alerts

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/trend"
)

// namespace seeds the UUIDv5 alert identifiers.
var namespace = uuid.MustParse("6f0c3e55-2a57-4b8e-9a53-4ad1c1d6e0b7")

// EscalationRecommendation is appended to every urgent alert.
const EscalationRecommendation = "Escalate to the district manager within the hour"

// ResultKey identifies the envelope the alerts belong to.
type ResultKey struct {
	Store string
	Date  string
}

// Classification is the severity, priority and impact derived from one
// variance magnitude.
type Classification struct {
	Severity domain.Severity
	Priority domain.Priority
	Impact   domain.Impact
}

// Classify buckets |variance| (percent) at 30, 20 and 10.
func Classify(variance float64) Classification {
	abs := math.Abs(variance)
	switch {
	case abs >= 30:
		return Classification{domain.SeverityCritical, domain.PriorityUrgent, domain.ImpactSevere}
	case abs >= 20:
		return Classification{domain.SeverityError, domain.PriorityHigh, domain.ImpactHigh}
	case abs >= 10:
		return Classification{domain.SeverityWarning, domain.PriorityMedium, domain.ImpactModerate}
	default:
		return Classification{domain.SeverityInfo, domain.PriorityLow, domain.ImpactMinimal}
	}
}

type dedupeKey struct {
	domain   domain.AnalysisDomain
	category domain.AlertCategory
	platform string
	metric   string
}

// Aggregate turns candidates into the final alert list. Candidates are
// consumed in generation order; the first of two candidates sharing a key
// wins and ties in priority keep that order. The result never holds more than
// cfg.MaxAlerts alerts.
func Aggregate(candidates []domain.AlertCandidate, key ResultKey, cfg domain.AlertSettings) []domain.Alert {
	if !cfg.Enabled || cfg.MaxAlerts <= 0 {
		return []domain.Alert{}
	}

	seen := make(map[dedupeKey]struct{}, len(candidates))
	out := make([]domain.Alert, 0, len(candidates))
	for _, c := range candidates {
		if c.Status != domain.StatusOffTrack {
			continue
		}
		if !cfg.MonitorsCategory(c.Category) {
			continue
		}
		if c.Platform != nil && !cfg.MonitorsPlatform(*c.Platform) {
			continue
		}

		k := dedupeKey{domain: c.Domain, category: c.Category, platform: platformKey(c.Platform), metric: c.Metric}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		out = append(out, build(c, key))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})

	if len(out) > cfg.MaxAlerts {
		out = out[:cfg.MaxAlerts]
	}
	return out
}

func build(c domain.AlertCandidate, key ResultKey) domain.Alert {
	variance := trend.PercentageChange(c.CurrentValue, c.TargetValue)
	class := Classify(variance)

	recommendations := append([]string(nil), c.Recommendations...)
	if class.Priority == domain.PriorityUrgent {
		recommendations = append(recommendations, EscalationRecommendation)
	}

	var platform *domain.Platform
	if c.Platform != nil {
		p := *c.Platform
		platform = &p
	}

	return domain.Alert{
		ID:              ID(key, c.Domain, c.Platform, c.Metric),
		Domain:          c.Domain,
		Category:        c.Category,
		Platform:        platform,
		Metric:          c.Metric,
		Title:           c.Title,
		Message:         c.Message,
		Severity:        class.Severity,
		Priority:        class.Priority,
		Impact:          class.Impact,
		CurrentValue:    c.CurrentValue,
		TargetValue:     c.TargetValue,
		Variance:        variance,
		Recommendations: recommendations,
	}
}

// ID is stable for the same store, date, domain, platform and metric, so
// reprocessing an envelope reproduces the same identifiers.
func ID(key ResultKey, d domain.AnalysisDomain, p *domain.Platform, metric string) string {
	name := strings.Join([]string{key.Store, key.Date, d.String(), platformKey(p), metric}, "|")
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

func platformKey(p *domain.Platform) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}
