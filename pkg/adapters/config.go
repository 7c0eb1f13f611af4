package adapters

import (
	"fmt"

	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func MapAnalysisConfigDomainToApi(c domain.AnalysisConfig) api.AnalysisConfig {
	res := api.AnalysisConfig{
		Thresholds: api.Thresholds{
			Platform: api.PerformanceThresholds(c.Thresholds.Platform),
			Channel:  api.PerformanceThresholds(c.Thresholds.Channel),
		},
		Weights: api.GradeWeights(c.Weights),
		Targets: api.Targets(c.Targets),
		Alerts: api.AlertSettings{
			Enabled:             c.Alerts.Enabled,
			MaxAlerts:           c.Alerts.MaxAlerts,
			MonitoredCategories: make([]string, 0, len(c.Alerts.MonitoredCategories)),
			MonitoredPlatforms:  make([]string, 0, len(c.Alerts.MonitoredPlatforms)),
		},
	}
	for _, cat := range c.Alerts.MonitoredCategories {
		res.Alerts.MonitoredCategories = append(res.Alerts.MonitoredCategories, cat.String())
	}
	for _, p := range c.Alerts.MonitoredPlatforms {
		res.Alerts.MonitoredPlatforms = append(res.Alerts.MonitoredPlatforms, p.String())
	}
	return res
}

// MapAnalysisConfigApiToDomain rejects unknown category and platform names.
func MapAnalysisConfigApiToDomain(c api.AnalysisConfig) (domain.AnalysisConfig, error) {
	res := domain.AnalysisConfig{
		Thresholds: domain.Thresholds{
			Platform: domain.PerformanceThresholds(c.Thresholds.Platform),
			Channel:  domain.PerformanceThresholds(c.Thresholds.Channel),
		},
		Weights: domain.GradeWeights(c.Weights),
		Targets: domain.Targets(c.Targets),
		Alerts: domain.AlertSettings{
			Enabled:   c.Alerts.Enabled,
			MaxAlerts: c.Alerts.MaxAlerts,
		},
	}
	for _, name := range c.Alerts.MonitoredCategories {
		var cat domain.AlertCategory
		if err := cat.UnmarshalText([]byte(name)); err != nil {
			return domain.AnalysisConfig{}, fmt.Errorf("monitored categories: %w", err)
		}
		res.Alerts.MonitoredCategories = append(res.Alerts.MonitoredCategories, cat)
	}
	for _, name := range c.Alerts.MonitoredPlatforms {
		var p domain.Platform
		if err := p.UnmarshalText([]byte(name)); err != nil {
			return domain.AnalysisConfig{}, fmt.Errorf("monitored platforms: %w", err)
		}
		res.Alerts.MonitoredPlatforms = append(res.Alerts.MonitoredPlatforms, p)
	}
	return res, nil
}
