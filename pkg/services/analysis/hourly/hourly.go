// Package hourly turns the 24 hourly point-of-sale records of a business day
// into per-hour metrics, a daily summary, channel and period breakdowns and
// hour-level trend tags.
package hourly

import (
	"fmt"
	"math"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// TrendBand is the relative deviation from the hourly average beyond which an
// hour is tagged up or down.
const TrendBand = 0.10

// Output is the processed day plus the alert candidates it produced.
type Output struct {
	Metrics    domain.HourlySalesMetrics
	Candidates []domain.AlertCandidate
}

// Process requires exactly 24 entries. The slice index is the hour; the
// record's own Hour field is informational. Nil entries are hours without a
// record.
func Process(raw []*domain.HourlySalesRaw, cfg domain.AnalysisConfig) (Output, error) {
	if raw == nil {
		return Output{}, domain.MissingDomainError(domain.DomainHourlySales)
	}
	if err := validate(raw); err != nil {
		return Output{}, err
	}

	hours := make([]domain.HourMetrics, domain.HoursPerDay)
	for h := range hours {
		hours[h] = processHour(h, raw[h])
	}

	summary := summarize(raw, hours)
	m := domain.HourlySalesMetrics{
		Hours:    hours,
		Summary:  summary,
		Channels: channels(raw, cfg.Thresholds.Channel),
		Periods:  periods(hours, summary.TotalSales),
		Trends:   trends(hours, summary.AverageHourlySales),
	}

	return Output{
		Metrics:    m,
		Candidates: candidates(hours, summary),
	}, nil
}

func processHour(h int, r *domain.HourlySalesRaw) domain.HourMetrics {
	hm := domain.HourMetrics{Hour: h}
	if r == nil {
		return hm
	}
	hm.HasRecord = true
	hm.TotalSales = r.TotalSales
	hm.OrderCount = r.OrderCount
	hm.HasActivity = r.TotalSales > 0
	hm.AverageOrderValue = safeDiv(r.TotalSales, r.OrderCount)
	hm.DigitalPercent = safeDiv(r.DigitalSales, r.TotalSales) * 100

	best := 0.0
	for _, c := range domain.HourlyChannels {
		if v := r.ChannelSales(c); v > best {
			channel := c
			hm.PrimaryChannel = &channel
			best = v
		}
	}
	return hm
}

func summarize(raw []*domain.HourlySalesRaw, hours []domain.HourMetrics) domain.DailySalesSummary {
	var s domain.DailySalesSummary
	digital := 0.0
	for i, hm := range hours {
		s.TotalSales += hm.TotalSales
		s.TotalOrders += hm.OrderCount
		if raw[i] != nil {
			digital += raw[i].DigitalSales
		}
		if hm.TotalSales > s.PeakSalesAmount {
			s.PeakSalesHour = hm.Hour
			s.PeakSalesAmount = hm.TotalSales
		}
		if !hm.HasActivity {
			continue
		}
		s.ActiveHours++
		if s.SlowestActiveHour == nil || hm.TotalSales < s.SlowestActiveSales {
			hour := hm.Hour
			s.SlowestActiveHour = &hour
			s.SlowestActiveSales = hm.TotalSales
		}
	}
	s.AverageOrderValue = safeDiv(s.TotalSales, s.TotalOrders)
	s.AverageHourlySales = s.TotalSales / domain.HoursPerDay
	s.DigitalPercent = safeDiv(digital, s.TotalSales) * 100
	return s
}

func channels(raw []*domain.HourlySalesRaw, thresholds domain.PerformanceThresholds) []domain.ChannelPerformance {
	totals := make([]float64, len(domain.HourlyChannels))
	orders := make([]float64, len(domain.HourlyChannels))
	sum := 0.0
	for _, r := range raw {
		if r == nil {
			continue
		}
		for i, c := range domain.HourlyChannels {
			v := r.ChannelSales(c)
			totals[i] += v
			sum += v
			// Orders are split across channels by their share of the hour.
			if r.TotalSales > 0 {
				orders[i] += r.OrderCount * v / r.TotalSales
			}
		}
	}

	out := make([]domain.ChannelPerformance, 0, len(domain.HourlyChannels))
	for i, c := range domain.HourlyChannels {
		cp := domain.ChannelPerformance{
			Channel:           c,
			Sales:             totals[i],
			Percentage:        safeDiv(totals[i], sum) * 100,
			EstimatedOrders:   orders[i],
			AverageOrderValue: safeDiv(totals[i], orders[i]),
			Trend:             domain.TrendStable,
		}
		cp.PerformanceLevel = thresholds.Level(cp.Percentage)
		out = append(out, cp)
	}
	return out
}

func periods(hours []domain.HourMetrics, dayTotal float64) []domain.PeriodAnalysis {
	out := make([]domain.PeriodAnalysis, 0, len(domain.BusinessPeriods))
	for _, p := range domain.BusinessPeriods {
		first, last := p.Hours()
		pa := domain.PeriodAnalysis{Period: p, StartHour: first, EndHour: last}
		peak := 0.0
		for h := first; h <= last; h++ {
			hm := hours[h]
			pa.TotalSales += hm.TotalSales
			pa.OrderCount += hm.OrderCount
			if hm.HasActivity {
				pa.ActiveHours++
			}
			if hm.TotalSales > peak {
				hour := h
				pa.PeakHour = &hour
				peak = hm.TotalSales
			}
		}
		pa.AverageOrderValue = safeDiv(pa.TotalSales, pa.OrderCount)
		pa.Percentage = safeDiv(pa.TotalSales, dayTotal) * 100
		out = append(out, pa)
	}
	return out
}

func trends(hours []domain.HourMetrics, average float64) []domain.HourTrendTag {
	out := make([]domain.HourTrendTag, 0, len(hours))
	for _, hm := range hours {
		tag := domain.HourTrendTag{Hour: hm.Hour, Trend: domain.HourStable}
		if average > 0 {
			tag.Deviation = (hm.TotalSales - average) / average
			switch {
			case tag.Deviation > TrendBand:
				tag.Trend = domain.HourUp
			case tag.Deviation < -TrendBand:
				tag.Trend = domain.HourDown
			}
		}
		out = append(out, tag)
	}
	return out
}

const MetricInactivePeakHour = "inactive_peak_hour"

// candidates flags lunch and dinner hours without sales on a day that had
// sales at all.
func candidates(hours []domain.HourMetrics, s domain.DailySalesSummary) []domain.AlertCandidate {
	if s.TotalSales <= 0 {
		return nil
	}
	var out []domain.AlertCandidate
	for _, p := range []domain.BusinessPeriod{domain.PeriodLunch, domain.PeriodDinner} {
		first, last := p.Hours()
		for h := first; h <= last; h++ {
			if hours[h].HasActivity {
				continue
			}
			out = append(out, domain.AlertCandidate{
				Domain:       domain.DomainHourlySales,
				Category:     domain.CategorySales,
				Metric:       fmt.Sprintf("%s_%02d", MetricInactivePeakHour, h),
				Title:        fmt.Sprintf("No sales during %s at %02d:00", p, h),
				Message:      fmt.Sprintf("Hour %02d recorded no sales while the day averaged %.2f per hour.", h, s.AverageHourlySales),
				Status:       domain.StatusOffTrack,
				CurrentValue: 0,
				TargetValue:  s.AverageHourlySales,
				Recommendations: []string{
					"Confirm the point-of-sale terminals were online",
					"Check whether the store was open and staffed for the period",
				},
			})
		}
	}
	return out
}

func validate(raw []*domain.HourlySalesRaw) error {
	if len(raw) != domain.HoursPerDay {
		return &domain.ValidationError{
			Domain:   domain.DomainHourlySales,
			Problems: []string{fmt.Sprintf("expected %d hourly records, got %d", domain.HoursPerDay, len(raw))},
		}
	}

	var problems []string
	for i, r := range raw {
		if r == nil {
			continue
		}
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"Total_Sales", r.TotalSales},
			{"Order_Count", r.OrderCount},
			{"Cash_Sales", r.CashSales},
			{"Digital_Sales", r.DigitalSales},
			{"Delivery_Sales", r.DeliverySales},
			{"Phone_Sales", r.PhoneSales},
			{"Drive_Thru_Sales", r.DriveThruSales},
		} {
			switch {
			case math.IsNaN(f.value) || math.IsInf(f.value, 0):
				problems = append(problems, fmt.Sprintf("hour %d %s is not a finite number", i, f.name))
			case f.value < 0:
				problems = append(problems, fmt.Sprintf("hour %d %s must not be negative, got %v", i, f.name, f.value))
			}
		}
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Domain: domain.DomainHourlySales, Problems: problems}
	}
	return nil
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
