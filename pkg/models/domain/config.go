package domain

import "fmt"

// PerformanceThresholds are the four cut points of a 5-tier classification.
// A value below Poor is critical.
type PerformanceThresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
	Poor      float64
}

// Level classifies value against the cut points.
func (t PerformanceThresholds) Level(value float64) PerformanceLevel {
	switch {
	case value >= t.Excellent:
		return LevelExcellent
	case value >= t.Good:
		return LevelGood
	case value >= t.Fair:
		return LevelFair
	case value >= t.Poor:
		return LevelPoor
	default:
		return LevelCritical
	}
}

type Thresholds struct {
	Platform PerformanceThresholds
	Channel  PerformanceThresholds
}

// GradeWeights weight the four composite grade components. They are expected
// to sum to 1 but this is not enforced.
type GradeWeights struct {
	Financial   float64
	Operational float64
	Quality     float64
	CostControl float64
}

func (w GradeWeights) Sum() float64 {
	return w.Financial + w.Operational + w.Quality + w.CostControl
}

// Targets are fallbacks used when a daily record carries no target of its
// own, plus the thresholds only the configuration knows about.
type Targets struct {
	LaborPercent           float64
	WastePercent           float64
	CustomerServicePercent float64
	CashVarianceBand       float64
}

// AlertSettings control which alerts survive aggregation. An empty monitored
// list monitors everything.
type AlertSettings struct {
	Enabled             bool
	MaxAlerts           int
	MonitoredCategories []AlertCategory
	MonitoredPlatforms  []Platform
}

func (s AlertSettings) MonitorsCategory(c AlertCategory) bool {
	if len(s.MonitoredCategories) == 0 {
		return true
	}
	for _, m := range s.MonitoredCategories {
		if m == c {
			return true
		}
	}
	return false
}

func (s AlertSettings) MonitorsPlatform(p Platform) bool {
	if len(s.MonitoredPlatforms) == 0 {
		return true
	}
	for _, m := range s.MonitoredPlatforms {
		if m == p {
			return true
		}
	}
	return false
}

type AnalysisConfig struct {
	Thresholds Thresholds
	Weights    GradeWeights
	Targets    Targets
	Alerts     AlertSettings
}

func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Thresholds: Thresholds{
			Platform: PerformanceThresholds{Excellent: 95, Good: 85, Fair: 75, Poor: 60},
			Channel:  PerformanceThresholds{Excellent: 40, Good: 25, Fair: 15, Poor: 5},
		},
		Weights: GradeWeights{
			Financial:   0.30,
			Operational: 0.25,
			Quality:     0.25,
			CostControl: 0.20,
		},
		Targets: Targets{
			LaborPercent:           0.30,
			WastePercent:           0.03,
			CustomerServicePercent: 0.85,
			CashVarianceBand:       5,
		},
		Alerts: AlertSettings{
			Enabled:   true,
			MaxAlerts: 10,
		},
	}
}

// Clone returns a copy that shares no slices with c.
func (c AnalysisConfig) Clone() AnalysisConfig {
	out := c
	out.Alerts.MonitoredCategories = append([]AlertCategory(nil), c.Alerts.MonitoredCategories...)
	out.Alerts.MonitoredPlatforms = append([]Platform(nil), c.Alerts.MonitoredPlatforms...)
	return out
}

// ConfigProfile is one named upstream credential profile.
type ConfigProfile struct {
	Name string
	Host string
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.Host)
}
