// Package config loads the service settings and the upstream credential
// profiles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/de-tools/ops-atlas/pkg/adapters"
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// EnvPrefix prefixes every environment override, e.g.
// OPSATLAS_ANALYSIS_ALERTS_MAX_ALERTS.
const EnvPrefix = "OPSATLAS"

type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

type UpstreamSettings struct {
	Profile      string        `mapstructure:"profile"`
	ProfilesFile string        `mapstructure:"profiles_file"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	RateLimit    float64       `mapstructure:"rate_limit"`
	Burst        int           `mapstructure:"burst"`
	LookbackDays int           `mapstructure:"lookback_days"`
}

type CacheSettings struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type RefreshSettings struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Settings struct {
	Analysis api.AnalysisConfig `mapstructure:"analysis"`
	Server   ServerSettings     `mapstructure:"server"`
	Upstream UpstreamSettings   `mapstructure:"upstream"`
	Cache    CacheSettings      `mapstructure:"cache"`
	Refresh  RefreshSettings    `mapstructure:"refresh"`
}

// AnalysisConfig converts the analysis section into the engine's form.
func (s Settings) AnalysisConfig() (domain.AnalysisConfig, error) {
	cfg, err := adapters.MapAnalysisConfigApiToDomain(s.Analysis)
	if err != nil {
		return domain.AnalysisConfig{}, fmt.Errorf("invalid analysis settings: %w", err)
	}
	return cfg, nil
}

// LoadSettings reads path (YAML) on top of the defaults and applies
// OPSATLAS_* environment overrides. An empty path loads defaults and
// environment only.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	a := adapters.MapAnalysisConfigDomainToApi(domain.DefaultAnalysisConfig())

	for prefix, t := range map[string]api.PerformanceThresholds{
		"analysis.thresholds.platform": a.Thresholds.Platform,
		"analysis.thresholds.channel":  a.Thresholds.Channel,
	} {
		v.SetDefault(prefix+".excellent", t.Excellent)
		v.SetDefault(prefix+".good", t.Good)
		v.SetDefault(prefix+".fair", t.Fair)
		v.SetDefault(prefix+".poor", t.Poor)
	}

	v.SetDefault("analysis.weights.financial", a.Weights.Financial)
	v.SetDefault("analysis.weights.operational", a.Weights.Operational)
	v.SetDefault("analysis.weights.quality", a.Weights.Quality)
	v.SetDefault("analysis.weights.cost_control", a.Weights.CostControl)

	v.SetDefault("analysis.targets.labor_percent", a.Targets.LaborPercent)
	v.SetDefault("analysis.targets.waste_percent", a.Targets.WastePercent)
	v.SetDefault("analysis.targets.customer_service_percent", a.Targets.CustomerServicePercent)
	v.SetDefault("analysis.targets.cash_variance_band", a.Targets.CashVarianceBand)

	v.SetDefault("analysis.alerts.enabled", a.Alerts.Enabled)
	v.SetDefault("analysis.alerts.max_alerts", a.Alerts.MaxAlerts)
	v.SetDefault("analysis.alerts.monitored_categories", []string{})
	v.SetDefault("analysis.alerts.monitored_platforms", []string{})

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("upstream.profile", "default")
	v.SetDefault("upstream.profiles_file", "")
	v.SetDefault("upstream.timeout", 15*time.Second)
	v.SetDefault("upstream.max_retries", 3)
	v.SetDefault("upstream.retry_backoff", 500*time.Millisecond)
	v.SetDefault("upstream.rate_limit", 5.0)
	v.SetDefault("upstream.burst", 1)
	v.SetDefault("upstream.lookback_days", 7)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 15*time.Minute)

	v.SetDefault("refresh.interval", 5*time.Minute)
}
