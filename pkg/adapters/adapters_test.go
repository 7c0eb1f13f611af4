package adapters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/models/domain/domaintest"
	"github.com/de-tools/ops-atlas/pkg/services/analysis"
)

func TestMapSnapshotDomainToApi(t *testing.T) {
	env := domaintest.Envelope()
	env.StoreOperations.ActualLaborPercent = 0.40
	res, err := analysis.Analyze(env, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	got := MapSnapshotDomainToApi(domain.Snapshot{Sequence: 3, State: domain.StateSucceeded, Result: res})

	assert.Equal(t, "succeeded", got.State)
	require.NotNil(t, got.Result)
	r := got.Result
	assert.Equal(t, domaintest.Store, r.Filtering.Store)
	assert.Equal(t, "succeeded", r.PlatformRatings.Status.State)
	assert.Len(t, r.PlatformRatings.Platforms, 3)
	assert.Equal(t, "doordash", r.PlatformRatings.Platforms[0].Platform)
	assert.Equal(t, "excellent", r.PlatformRatings.Platforms[0].PerformanceLevel)
	require.NotNil(t, r.StoreOperations.Financial)
	assert.Equal(t, "D", r.StoreOperations.Financial.LaborGrade)
	assert.Len(t, r.StoreOperations.Weekly, 5)
	assert.Len(t, r.HourlySales.Hours, 24)
	assert.Equal(t, "down", r.HourlySales.Hours[0].Trend)
	assert.Equal(t, "up", r.HourlySales.Hours[10].Trend)

	require.NotEmpty(t, r.Alerts)
	assert.Equal(t, api.SeverityCritical, r.Alerts[0].Severity)
	assert.Equal(t, "cost_control", r.Alerts[0].Category)
	assert.Empty(t, r.Alerts[0].Platform)
	assert.Equal(t, 1, r.Summary.AlertCounts.Critical)
	assert.Equal(t, r.Summary.AlertCounts.Total, len(r.Alerts))
}

func TestMapSnapshotDomainToApi_FailedDomain(t *testing.T) {
	env := domaintest.Envelope()
	env.PlatformRatings = nil
	res, err := analysis.Analyze(env, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	got := MapAnalysisResultDomainToApi(*res)

	assert.Equal(t, "failed", got.PlatformRatings.Status.State)
	assert.Contains(t, got.PlatformRatings.Status.Error, "missing")
	assert.Nil(t, got.PlatformRatings.Platforms)

	b, err := json.Marshal(got.PlatformRatings)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"platforms"`)
	assert.Contains(t, string(b), `"alerts":[]`)
}

func TestMapAnalysisConfig_RoundTrip(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	cfg.Alerts.MonitoredCategories = []domain.AlertCategory{domain.CategoryPlatform, domain.CategoryCostControl}
	cfg.Alerts.MonitoredPlatforms = []domain.Platform{domain.PlatformUberEats}

	wire := MapAnalysisConfigDomainToApi(cfg)
	assert.Equal(t, []string{"platform", "cost_control"}, wire.Alerts.MonitoredCategories)
	assert.Equal(t, []string{"ubereats"}, wire.Alerts.MonitoredPlatforms)
	assert.Equal(t, 95.0, wire.Thresholds.Platform.Excellent)

	back, err := MapAnalysisConfigApiToDomain(wire)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestMapAnalysisConfigApiToDomain_UnknownNames(t *testing.T) {
	wire := MapAnalysisConfigDomainToApi(domain.DefaultAnalysisConfig())
	wire.Alerts.MonitoredPlatforms = []string{"postmates"}

	_, err := MapAnalysisConfigApiToDomain(wire)
	assert.ErrorContains(t, err, "postmates")
}
