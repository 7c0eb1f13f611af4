package api

type PerformanceThresholds struct {
	Excellent float64 `json:"excellent" yaml:"excellent" mapstructure:"excellent"`
	Good      float64 `json:"good" yaml:"good" mapstructure:"good"`
	Fair      float64 `json:"fair" yaml:"fair" mapstructure:"fair"`
	Poor      float64 `json:"poor" yaml:"poor" mapstructure:"poor"`
}

type Thresholds struct {
	Platform PerformanceThresholds `json:"platform" yaml:"platform" mapstructure:"platform"`
	Channel  PerformanceThresholds `json:"channel" yaml:"channel" mapstructure:"channel"`
}

type GradeWeights struct {
	Financial   float64 `json:"financial" yaml:"financial" mapstructure:"financial"`
	Operational float64 `json:"operational" yaml:"operational" mapstructure:"operational"`
	Quality     float64 `json:"quality" yaml:"quality" mapstructure:"quality"`
	CostControl float64 `json:"cost_control" yaml:"cost_control" mapstructure:"cost_control"`
}

type Targets struct {
	LaborPercent           float64 `json:"labor_percent" yaml:"labor_percent" mapstructure:"labor_percent"`
	WastePercent           float64 `json:"waste_percent" yaml:"waste_percent" mapstructure:"waste_percent"`
	CustomerServicePercent float64 `json:"customer_service_percent" yaml:"customer_service_percent" mapstructure:"customer_service_percent"`
	CashVarianceBand       float64 `json:"cash_variance_band" yaml:"cash_variance_band" mapstructure:"cash_variance_band"`
}

type AlertSettings struct {
	Enabled             bool     `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	MaxAlerts           int      `json:"max_alerts" yaml:"max_alerts" mapstructure:"max_alerts"`
	MonitoredCategories []string `json:"monitored_categories" yaml:"monitored_categories" mapstructure:"monitored_categories"`
	MonitoredPlatforms  []string `json:"monitored_platforms" yaml:"monitored_platforms" mapstructure:"monitored_platforms"`
}

// AnalysisConfig is the wire and file form of domain.AnalysisConfig.
type AnalysisConfig struct {
	Thresholds Thresholds    `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`
	Weights    GradeWeights  `json:"weights" yaml:"weights" mapstructure:"weights"`
	Targets    Targets       `json:"targets" yaml:"targets" mapstructure:"targets"`
	Alerts     AlertSettings `json:"alerts" yaml:"alerts" mapstructure:"alerts"`
}
