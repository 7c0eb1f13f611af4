package operations

import (
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/analysis/trend"
)

// channelSales returns the four disjoint buckets that partition store sales.
// Drive-thru is reported separately and is not part of the partition.
func channelSales(r *domain.StoreOperationsRaw, c domain.SalesChannel) float64 {
	switch c {
	case domain.ChannelTraditional:
		return r.CashSales + r.StorePhoneSales
	case domain.ChannelDigital:
		return r.WebsiteSales + r.MobileAppSales
	case domain.ChannelDelivery:
		return r.DoorDashSales + r.UberEatsSales + r.GrubhubSales
	case domain.ChannelPhone:
		return r.PhoneSales + r.CallCenterSales
	case domain.ChannelDriveThru:
		return r.DriveThruSales
	default:
		return 0
	}
}

func salesChannels(
	daily, weekly *domain.StoreOperationsRaw,
	thresholds domain.PerformanceThresholds,
) domain.SalesChannelMetrics {
	m := domain.SalesChannelMetrics{
		Channels:  make([]domain.ChannelPerformance, 0, len(domain.StoreChannels)),
		DriveThru: daily.DriveThruSales,
	}

	for _, c := range domain.StoreChannels {
		m.ChannelSum += channelSales(daily, c)
	}

	// Orders are not reported per channel, so every channel is assumed to
	// carry the store's average ticket.
	avgTicket := safeDiv(daily.TotalSales, daily.TotalOrders)

	for _, c := range domain.StoreChannels {
		c := c // per-iteration copy; TopChannel keeps its address
		sales := channelSales(daily, c)
		cp := domain.ChannelPerformance{
			Channel:    c,
			Sales:      sales,
			Percentage: safeDiv(sales, m.ChannelSum) * 100,
			Trend:      domain.TrendStable,
		}
		if avgTicket > 0 {
			cp.EstimatedOrders = sales / avgTicket
			cp.AverageOrderValue = safeDiv(sales, cp.EstimatedOrders)
		}
		if weekly != nil {
			change := trend.PercentageChange(sales, trend.DailyEquivalent(channelSales(weekly, c)))
			cp.Trend = trend.Direction(change)
		}
		cp.PerformanceLevel = thresholds.Level(cp.Percentage)
		m.Channels = append(m.Channels, cp)

		if sales > m.TopSales {
			m.TopChannel = &c
			m.TopSales = sales
		}
	}

	return m
}
