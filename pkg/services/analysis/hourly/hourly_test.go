package hourly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/models/domain/domaintest"
)

func flatDay(sales float64) []*domain.HourlySalesRaw {
	out := make([]*domain.HourlySalesRaw, domain.HoursPerDay)
	for h := range out {
		out[h] = domaintest.Hour(h, sales, 2)
	}
	return out
}

func TestProcess_PeakHour(t *testing.T) {
	// Given hour 12 sells 500 and every other hour 50
	raw := flatDay(50)
	raw[12] = domaintest.Hour(12, 500, 10)

	// When
	out, err := Process(raw, domain.DefaultAnalysisConfig())

	// Then
	require.NoError(t, err)
	s := out.Metrics.Summary
	assert.Equal(t, 12, s.PeakSalesHour)
	assert.Equal(t, 500.0, s.PeakSalesAmount)
	assert.Equal(t, 1650.0, s.TotalSales)
	assert.Equal(t, 24, s.ActiveHours)
	assert.InDelta(t, 1650.0/24, s.AverageHourlySales, 1e-9)
	require.NotNil(t, s.SlowestActiveHour)
	assert.Equal(t, 0, *s.SlowestActiveHour)

	assert.Equal(t, domain.HourUp, out.Metrics.Trends[12].Trend)
	assert.Equal(t, domain.HourDown, out.Metrics.Trends[0].Trend)
}

func TestProcess_PeakTieKeepsFirstHour(t *testing.T) {
	raw := domaintest.HourlySales()

	out, err := Process(raw, domain.DefaultAnalysisConfig())
	require.NoError(t, err)
	assert.Equal(t, 10, out.Metrics.Summary.PeakSalesHour)
	assert.Equal(t, 13, out.Metrics.Summary.ActiveHours)
}

func TestProcess_HourMetrics(t *testing.T) {
	raw := domaintest.HourlySales()
	raw[3] = nil
	raw[15] = &domain.HourlySalesRaw{Hour: 15, TotalSales: 80, OrderCount: 4, DeliverySales: 50, DigitalSales: 30}

	out, err := Process(raw, domain.DefaultAnalysisConfig())
	require.NoError(t, err)
	hours := out.Metrics.Hours
	require.Len(t, hours, 24)

	assert.False(t, hours[3].HasRecord)
	assert.False(t, hours[3].HasActivity)
	assert.Nil(t, hours[3].PrimaryChannel)

	assert.True(t, hours[0].HasRecord)
	assert.False(t, hours[0].HasActivity)
	assert.Nil(t, hours[0].PrimaryChannel)

	h := hours[15]
	assert.True(t, h.HasActivity)
	assert.Equal(t, 20.0, h.AverageOrderValue)
	assert.InDelta(t, 37.5, h.DigitalPercent, 1e-9)
	require.NotNil(t, h.PrimaryChannel)
	assert.Equal(t, domain.ChannelDelivery, *h.PrimaryChannel)

	require.NotNil(t, hours[10].PrimaryChannel)
	assert.Equal(t, domain.ChannelTraditional, *hours[10].PrimaryChannel)
}

func TestProcess_Periods(t *testing.T) {
	out, err := Process(domaintest.HourlySales(), domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	periods := out.Metrics.Periods
	require.Len(t, periods, 6)

	total := 0.0
	for i, p := range periods {
		assert.Equal(t, domain.BusinessPeriods[i], p.Period)
		total += p.Percentage
	}
	assert.InDelta(t, 100.0, total, 1e-9)

	overnight := periods[0]
	assert.Zero(t, overnight.TotalSales)
	assert.Nil(t, overnight.PeakHour)

	lunch := periods[2]
	assert.Equal(t, 11, lunch.StartHour)
	assert.Equal(t, 13, lunch.EndHour)
	assert.Equal(t, 300.0, lunch.TotalSales)
	assert.Equal(t, 3, lunch.ActiveHours)
	require.NotNil(t, lunch.PeakHour)
	assert.Equal(t, 11, *lunch.PeakHour)
}

func TestProcess_Channels(t *testing.T) {
	out, err := Process(domaintest.HourlySales(), domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	channels := out.Metrics.Channels
	require.Len(t, channels, 5)
	assert.InDelta(t, 40.0, channels[0].Percentage, 1e-9)
	assert.InDelta(t, 30.0, channels[1].Percentage, 1e-9)
	assert.InDelta(t, 20.0, channels[2].Percentage, 1e-9)
	assert.InDelta(t, 10.0, channels[3].Percentage, 1e-9)
	assert.Zero(t, channels[4].Percentage)
	assert.Equal(t, domain.LevelExcellent, channels[0].PerformanceLevel)
	assert.Equal(t, domain.LevelCritical, channels[4].PerformanceLevel)
	assert.InDelta(t, 20.0, channels[0].AverageOrderValue, 1e-9)
}

func TestProcess_InactivePeakHours(t *testing.T) {
	raw := domaintest.HourlySales()
	raw[12] = &domain.HourlySalesRaw{Hour: 12}
	raw[18] = nil

	out, err := Process(raw, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	require.Len(t, out.Candidates, 2)
	assert.Equal(t, "inactive_peak_hour_12", out.Candidates[0].Metric)
	assert.Equal(t, "inactive_peak_hour_18", out.Candidates[1].Metric)
	for _, c := range out.Candidates {
		assert.Equal(t, domain.CategorySales, c.Category)
		assert.Equal(t, domain.StatusOffTrack, c.Status)
		assert.Zero(t, c.CurrentValue)
		assert.InDelta(t, out.Metrics.Summary.AverageHourlySales, c.TargetValue, 1e-9)
	}
}

func TestProcess_QuietDay(t *testing.T) {
	raw := make([]*domain.HourlySalesRaw, domain.HoursPerDay)

	out, err := Process(raw, domain.DefaultAnalysisConfig())
	require.NoError(t, err)

	assert.Empty(t, out.Candidates)
	assert.Zero(t, out.Metrics.Summary.AverageOrderValue)
	assert.Nil(t, out.Metrics.Summary.SlowestActiveHour)
	for _, tag := range out.Metrics.Trends {
		assert.Equal(t, domain.HourStable, tag.Trend)
	}
}

func TestProcess_Invalid(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Process(nil, domain.DefaultAnalysisConfig())
		assert.True(t, errors.Is(err, domain.ErrMissingDomainData))
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := Process(domaintest.HourlySales()[:23], domain.DefaultAnalysisConfig())

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, domain.DomainHourlySales, verr.Domain)
		assert.Contains(t, verr.Problems[0], "expected 24 hourly records, got 23")
	})

	t.Run("negative sales", func(t *testing.T) {
		raw := domaintest.HourlySales()
		raw[4].TotalSales = -10

		_, err := Process(raw, domain.DefaultAnalysisConfig())

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Problems, 1)
	})
}
