package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/models/domain/domaintest"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/operations"
)

func TestAnalyze_HealthyEnvelope(t *testing.T) {
	res, err := Analyze(domaintest.Envelope(), domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	assert.True(t, res.PlatformRatings.Status.Succeeded())
	assert.True(t, res.StoreOperations.Status.Succeeded())
	assert.True(t, res.HourlySales.Status.Succeeded())
	require.NotNil(t, res.PlatformRatings.Metrics)
	require.NotNil(t, res.StoreOperations.Metrics)
	require.NotNil(t, res.StoreOperations.Weekly)
	require.NotNil(t, res.HourlySales.Metrics)
	assert.Empty(t, res.Alerts)

	s := res.Summary
	assert.Equal(t, domaintest.Store, s.Store)
	assert.Equal(t, domaintest.Date, s.Date)
	assert.Equal(t, 3, s.DomainsProcessed)
	assert.Zero(t, s.DomainsFailed)
	require.NotNil(t, s.OverallGrade)
	assert.Equal(t, domain.GradeA, *s.OverallGrade)
	require.NotNil(t, s.SalesTrend)
	assert.Equal(t, domain.TrendStable, *s.SalesTrend)
	require.NotNil(t, s.PeakSalesHour)
	assert.Equal(t, 10, *s.PeakSalesHour)
	require.NotNil(t, s.TopChannel)
	assert.Equal(t, domain.ChannelDelivery, *s.TopChannel)
	assert.NotEmpty(t, s.KeyInsights)
}

func TestAnalyze_NoChannelSalesOmitsTopChannel(t *testing.T) {
	env := domaintest.Envelope()
	ops := env.StoreOperations
	ops.CashSales, ops.StorePhoneSales = 0, 0
	ops.WebsiteSales, ops.MobileAppSales = 0, 0
	ops.DoorDashSales, ops.UberEatsSales, ops.GrubhubSales = 0, 0, 0
	ops.PhoneSales, ops.CallCenterSales = 0, 0
	ops.DriveThruSales = ops.TotalSales

	res, err := Analyze(env, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	assert.Nil(t, res.Summary.TopChannel)
	for _, line := range res.Summary.KeyInsights {
		assert.NotContains(t, line, "channel leads")
	}
}

func TestAnalyze_LaborOverTarget(t *testing.T) {
	env := domaintest.Envelope()
	env.StoreOperations.ActualLaborPercent = 0.40
	env.StoreOperations.TargetLaborPercent = 0.30

	res, err := Analyze(env, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	require.NotEmpty(t, res.Alerts)
	a := res.Alerts[0]
	assert.Equal(t, operations.MetricLaborPercent, a.Metric)
	assert.Equal(t, domain.CategoryCostControl, a.Category)
	assert.Equal(t, domain.SeverityCritical, a.Severity)
	assert.Equal(t, domain.PriorityUrgent, a.Priority)
	assert.Equal(t, res.Alerts, append(res.PlatformRatings.Alerts, append(res.StoreOperations.Alerts, res.HourlySales.Alerts...)...))
	assert.Equal(t, 1, res.Summary.AlertCounts.Critical)
}

func TestAnalyze_PeakHour(t *testing.T) {
	env := domaintest.Envelope()
	for h := range env.HourlySales {
		env.HourlySales[h] = domaintest.Hour(h, 50, 2)
	}
	env.HourlySales[12] = domaintest.Hour(12, 500, 10)

	res, err := Analyze(env, domain.DefaultAnalysisConfig())
	require.NoError(t, err)
	assert.Equal(t, 12, res.HourlySales.Metrics.Summary.PeakSalesHour)
	assert.Equal(t, 500.0, res.HourlySales.Metrics.Summary.PeakSalesAmount)
}

func TestAnalyze_PlatformsAllOnTrack(t *testing.T) {
	res, err := Analyze(domaintest.Envelope(), domain.DefaultAnalysisConfig())
	require.NoError(t, err)
	for _, pm := range res.PlatformRatings.Metrics.Platforms {
		assert.Equal(t, 100.0, pm.PerformancePercentage)
		assert.Equal(t, domain.LevelExcellent, pm.PerformanceLevel)
	}
}

func TestAnalyze_WeeklySalesTrend(t *testing.T) {
	env := domaintest.Envelope()
	env.StoreOperations.TotalSales = 140
	env.StoreOperationsWeekly.TotalSales = 700

	res, err := Analyze(env, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	sales := res.StoreOperations.Weekly.Sales
	assert.InDelta(t, 40.0, sales.PercentageChange, 1e-9)
	assert.Equal(t, domain.TrendStrongUp, sales.Direction)
	assert.Equal(t, domain.TrendStrongUp, *res.Summary.SalesTrend)
}

func TestAnalyze_ZeroSales(t *testing.T) {
	env := domaintest.Envelope()
	env.StoreOperations = &domain.StoreOperationsRaw{ActualLaborPercent: 0.3, TargetLaborPercent: 0.3}

	res, err := Analyze(env, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	m := res.StoreOperations.Metrics
	require.NotNil(t, m)
	assert.Zero(t, m.Financial.RevenuePerCustomer)
	assert.Zero(t, m.Financial.DigitalSalesAmount)
	assert.Zero(t, m.CostControl.WastePercent)
	assert.Zero(t, m.Quality.ModificationRate)
	assert.Zero(t, m.Quality.RefundRate)
	for _, c := range m.SalesChannels.Channels {
		assert.Zero(t, c.Percentage)
	}
}

func TestAnalyze_DomainScopedFailures(t *testing.T) {
	t.Run("missing platform ratings", func(t *testing.T) {
		env := domaintest.Envelope()
		env.PlatformRatings = nil

		res, err := Analyze(env, domain.DefaultAnalysisConfig())
		require.NoError(t, err)

		assert.Equal(t, domain.StateFailed, res.PlatformRatings.Status.State)
		assert.Contains(t, res.PlatformRatings.Status.Reason, "platform_ratings")
		assert.Nil(t, res.PlatformRatings.Metrics)
		assert.Empty(t, res.PlatformRatings.Alerts)
		assert.NotNil(t, res.StoreOperations.Metrics)
		assert.NotNil(t, res.HourlySales.Metrics)
		assert.Equal(t, 2, res.Summary.DomainsProcessed)
		assert.Equal(t, 1, res.Summary.DomainsFailed)
		assert.Nil(t, res.Summary.PlatformLevel)
	})

	t.Run("hourly not 24 long", func(t *testing.T) {
		env := domaintest.Envelope()
		env.HourlySales = env.HourlySales[:20]

		res, err := Analyze(env, domain.DefaultAnalysisConfig())
		require.NoError(t, err)

		assert.Equal(t, domain.StateFailed, res.HourlySales.Status.State)
		assert.Nil(t, res.HourlySales.Metrics)
		assert.Nil(t, res.Summary.PeakSalesHour)
		failed := DomainErrors(res)
		require.Len(t, failed, 1)
		assert.Equal(t, domain.DomainHourlySales, failed[0].Domain)
	})

	t.Run("malformed daily drops weekly trend", func(t *testing.T) {
		env := domaintest.Envelope()
		env.StoreOperations.TotalOrders = -4

		res, err := Analyze(env, domain.DefaultAnalysisConfig())
		require.NoError(t, err)
		assert.Nil(t, res.StoreOperations.Metrics)
		assert.Nil(t, res.StoreOperations.Weekly)
		assert.Nil(t, res.Summary.OverallGrade)
	})
}

func TestAnalyze_EnvelopeFailures(t *testing.T) {
	t.Run("nil envelope", func(t *testing.T) {
		_, err := Analyze(nil, domain.DefaultAnalysisConfig())
		assert.ErrorIs(t, err, domain.ErrNoEnvelope)
	})

	t.Run("every domain missing", func(t *testing.T) {
		_, err := Analyze(&domain.RawResponseEnvelope{}, domain.DefaultAnalysisConfig())
		assert.ErrorIs(t, err, ErrAllDomainsFailed)
		assert.ErrorIs(t, err, domain.ErrMissingDomainData)
	})

	t.Run("every domain malformed", func(t *testing.T) {
		env := domaintest.Envelope()
		env.PlatformRatings.DDRating = -1
		env.StoreOperations.TotalSales = -1
		env.HourlySales = nil

		_, err := Analyze(env, domain.DefaultAnalysisConfig())
		assert.True(t, errors.Is(err, ErrAllDomainsFailed))
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestAnalyze_Idempotent(t *testing.T) {
	env := domaintest.Envelope()
	env.StoreOperations.ActualLaborPercent = 0.36
	env.StoreOperations.CashVariance = 9
	env.PlatformRatings.UERatingStatus = "off_track"
	env.PlatformRatings.UERating = 3.9
	env.HourlySales[12] = nil

	cfg := domain.DefaultAnalysisConfig()
	first, err := Analyze(env, cfg)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Analyze(env, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAnalyze_AlertCap(t *testing.T) {
	env := domaintest.Envelope()
	for h := range env.HourlySales {
		env.HourlySales[h] = domaintest.Hour(h, 0, 0)
	}
	env.HourlySales[3] = domaintest.Hour(3, 1000, 20)
	env.StoreOperations.ActualLaborPercent = 0.5

	cfg := domain.DefaultAnalysisConfig()
	cfg.Alerts.MaxAlerts = 4

	res, err := Analyze(env, cfg)
	require.NoError(t, err)
	require.Len(t, res.Alerts, 4)
	for i := 1; i < len(res.Alerts); i++ {
		assert.GreaterOrEqual(t, res.Alerts[i-1].Priority, res.Alerts[i].Priority)
	}
}
