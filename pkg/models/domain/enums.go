package domain

import "fmt"

// enumNames maps the ordinal of a closed enum to its wire value.
type enumNames[T ~int] []string

func (n enumNames[T]) name(v T) string {
	if int(v) < 0 || int(v) >= len(n) {
		return fmt.Sprintf("unknown(%d)", int(v))
	}
	return n[v]
}

func (n enumNames[T]) marshal(v T) ([]byte, error) {
	if int(v) < 0 || int(v) >= len(n) {
		return nil, fmt.Errorf("invalid enum value %d", int(v))
	}
	return []byte(n[v]), nil
}

func (n enumNames[T]) parse(kind string, text []byte) (T, error) {
	s := string(text)
	for i, name := range n {
		if name == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// OnTrackStatus is the tri-state classification attached to a tracked metric.
type OnTrackStatus int

const (
	StatusNotApplicable OnTrackStatus = iota
	StatusOnTrack
	StatusOffTrack
)

var onTrackStatusNames = enumNames[OnTrackStatus]{"not_applicable", "on_track", "off_track"}

func (s OnTrackStatus) String() string { return onTrackStatusNames.name(s) }
func (s OnTrackStatus) MarshalText() ([]byte, error) { return onTrackStatusNames.marshal(s) }
func (s *OnTrackStatus) UnmarshalText(b []byte) (err error) {
	*s, err = onTrackStatusNames.parse("on-track status", b)
	return err
}

// ParseOnTrackStatus is lenient: anything that is not a known status counts
// as not applicable.
func ParseOnTrackStatus(s string) OnTrackStatus {
	v, err := onTrackStatusNames.parse("on-track status", []byte(s))
	if err != nil {
		return StatusNotApplicable
	}
	return v
}

// PerformanceLevel is ordered from worst to best.
type PerformanceLevel int

const (
	LevelCritical PerformanceLevel = iota
	LevelPoor
	LevelFair
	LevelGood
	LevelExcellent
)

var performanceLevelNames = enumNames[PerformanceLevel]{"critical", "poor", "fair", "good", "excellent"}

func (l PerformanceLevel) String() string { return performanceLevelNames.name(l) }
func (l PerformanceLevel) MarshalText() ([]byte, error) { return performanceLevelNames.marshal(l) }
func (l *PerformanceLevel) UnmarshalText(b []byte) (err error) {
	*l, err = performanceLevelNames.parse("performance level", b)
	return err
}

// Grade is a letter grade. The ordinal doubles as its grade point value.
type Grade int

const (
	GradeF Grade = iota
	GradeD
	GradeC
	GradeB
	GradeA
)

var gradeNames = enumNames[Grade]{"F", "D", "C", "B", "A"}

func (g Grade) String() string { return gradeNames.name(g) }
func (g Grade) MarshalText() ([]byte, error) { return gradeNames.marshal(g) }
func (g *Grade) UnmarshalText(b []byte) (err error) {
	*g, err = gradeNames.parse("grade", b)
	return err
}

// Points maps A..F onto 4..0.
func (g Grade) Points() float64 {
	return float64(g)
}

type TrendDirection int

const (
	TrendStable TrendDirection = iota
	TrendUp
	TrendStrongUp
	TrendDown
	TrendStrongDown
)

var trendDirectionNames = enumNames[TrendDirection]{"stable", "up", "strong_up", "down", "strong_down"}

func (d TrendDirection) String() string { return trendDirectionNames.name(d) }
func (d TrendDirection) MarshalText() ([]byte, error) { return trendDirectionNames.marshal(d) }
func (d *TrendDirection) UnmarshalText(b []byte) (err error) {
	*d, err = trendDirectionNames.parse("trend direction", b)
	return err
}

type Significance int

const (
	SignificanceNegligible Significance = iota
	SignificanceLow
	SignificanceMedium
	SignificanceHigh
	SignificanceCritical
)

var significanceNames = enumNames[Significance]{"negligible", "low", "medium", "high", "critical"}

func (s Significance) String() string { return significanceNames.name(s) }
func (s Significance) MarshalText() ([]byte, error) { return significanceNames.marshal(s) }
func (s *Significance) UnmarshalText(b []byte) (err error) {
	*s, err = significanceNames.parse("significance", b)
	return err
}

// HourTrend tags an hour relative to the daily hourly average.
type HourTrend int

const (
	HourStable HourTrend = iota
	HourUp
	HourDown
)

var hourTrendNames = enumNames[HourTrend]{"stable", "up", "down"}

func (t HourTrend) String() string { return hourTrendNames.name(t) }
func (t HourTrend) MarshalText() ([]byte, error) { return hourTrendNames.marshal(t) }
func (t *HourTrend) UnmarshalText(b []byte) (err error) {
	*t, err = hourTrendNames.parse("hour trend", b)
	return err
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = enumNames[Severity]{"info", "warning", "error", "critical"}

func (s Severity) String() string { return severityNames.name(s) }
func (s Severity) MarshalText() ([]byte, error) { return severityNames.marshal(s) }
func (s *Severity) UnmarshalText(b []byte) (err error) {
	*s, err = severityNames.parse("severity", b)
	return err
}

// Priority is ordered so that a larger value sorts first.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var priorityNames = enumNames[Priority]{"low", "medium", "high", "urgent"}

func (p Priority) String() string { return priorityNames.name(p) }
func (p Priority) MarshalText() ([]byte, error) { return priorityNames.marshal(p) }
func (p *Priority) UnmarshalText(b []byte) (err error) {
	*p, err = priorityNames.parse("priority", b)
	return err
}

type Impact int

const (
	ImpactMinimal Impact = iota
	ImpactModerate
	ImpactHigh
	ImpactSevere
)

var impactNames = enumNames[Impact]{"minimal", "moderate", "high", "severe"}

func (i Impact) String() string { return impactNames.name(i) }
func (i Impact) MarshalText() ([]byte, error) { return impactNames.marshal(i) }
func (i *Impact) UnmarshalText(b []byte) (err error) {
	*i, err = impactNames.parse("impact", b)
	return err
}

type SalesChannel int

const (
	ChannelTraditional SalesChannel = iota
	ChannelDigital
	ChannelDelivery
	ChannelPhone
	ChannelDriveThru
)

var salesChannelNames = enumNames[SalesChannel]{"traditional", "digital", "delivery", "phone", "drive_thru"}

func (c SalesChannel) String() string { return salesChannelNames.name(c) }
func (c SalesChannel) MarshalText() ([]byte, error) { return salesChannelNames.marshal(c) }
func (c *SalesChannel) UnmarshalText(b []byte) (err error) {
	*c, err = salesChannelNames.parse("sales channel", b)
	return err
}

// HourlyChannels is the scan order used to pick an hour's primary channel.
var HourlyChannels = []SalesChannel{
	ChannelTraditional,
	ChannelDigital,
	ChannelDelivery,
	ChannelPhone,
	ChannelDriveThru,
}

// StoreChannels are the four buckets that partition store-level sales.
var StoreChannels = []SalesChannel{
	ChannelTraditional,
	ChannelDigital,
	ChannelDelivery,
	ChannelPhone,
}

type BusinessPeriod int

const (
	PeriodOvernight BusinessPeriod = iota
	PeriodMorning
	PeriodLunch
	PeriodAfternoon
	PeriodDinner
	PeriodLateNight
)

var businessPeriodNames = enumNames[BusinessPeriod]{"overnight", "morning", "lunch", "afternoon", "dinner", "late_night"}

func (p BusinessPeriod) String() string { return businessPeriodNames.name(p) }
func (p BusinessPeriod) MarshalText() ([]byte, error) { return businessPeriodNames.marshal(p) }
func (p *BusinessPeriod) UnmarshalText(b []byte) (err error) {
	*p, err = businessPeriodNames.parse("business period", b)
	return err
}

// Hours returns the inclusive hour range covered by the period.
func (p BusinessPeriod) Hours() (first, last int) {
	switch p {
	case PeriodOvernight:
		return 0, 5
	case PeriodMorning:
		return 6, 10
	case PeriodLunch:
		return 11, 13
	case PeriodAfternoon:
		return 14, 16
	case PeriodDinner:
		return 17, 20
	default:
		return 21, 23
	}
}

var BusinessPeriods = []BusinessPeriod{
	PeriodOvernight,
	PeriodMorning,
	PeriodLunch,
	PeriodAfternoon,
	PeriodDinner,
	PeriodLateNight,
}

type AlertCategory int

const (
	CategoryFinancial AlertCategory = iota
	CategoryOperational
	CategoryQuality
	CategoryCostControl
	CategorySales
	CategoryPlatform
)

var alertCategoryNames = enumNames[AlertCategory]{"financial", "operational", "quality", "cost_control", "sales", "platform"}

func (c AlertCategory) String() string { return alertCategoryNames.name(c) }
func (c AlertCategory) MarshalText() ([]byte, error) { return alertCategoryNames.marshal(c) }
func (c *AlertCategory) UnmarshalText(b []byte) (err error) {
	*c, err = alertCategoryNames.parse("alert category", b)
	return err
}

// Platform is a third-party delivery platform.
type Platform int

const (
	PlatformDoorDash Platform = iota
	PlatformUberEats
	PlatformGrubhub
)

var platformNames = enumNames[Platform]{"doordash", "ubereats", "grubhub"}

func (p Platform) String() string { return platformNames.name(p) }
func (p Platform) MarshalText() ([]byte, error) { return platformNames.marshal(p) }
func (p *Platform) UnmarshalText(b []byte) (err error) {
	*p, err = platformNames.parse("platform", b)
	return err
}

func (p Platform) DisplayName() string {
	switch p {
	case PlatformDoorDash:
		return "DoorDash"
	case PlatformUberEats:
		return "Uber Eats"
	case PlatformGrubhub:
		return "Grubhub"
	default:
		return p.String()
	}
}

var Platforms = []Platform{PlatformDoorDash, PlatformUberEats, PlatformGrubhub}

// AnalysisDomain names one of the three raw records of an envelope.
type AnalysisDomain int

const (
	DomainPlatformRatings AnalysisDomain = iota
	DomainStoreOperations
	DomainHourlySales
)

var analysisDomainNames = enumNames[AnalysisDomain]{"platform_ratings", "store_operations", "hourly_sales"}

func (d AnalysisDomain) String() string { return analysisDomainNames.name(d) }
func (d AnalysisDomain) MarshalText() ([]byte, error) { return analysisDomainNames.marshal(d) }
func (d *AnalysisDomain) UnmarshalText(b []byte) (err error) {
	*d, err = analysisDomainNames.parse("analysis domain", b)
	return err
}

type ProcessingState int

const (
	StateIdle ProcessingState = iota
	StateLoading
	StateSucceeded
	StateFailed
)

var processingStateNames = enumNames[ProcessingState]{"idle", "loading", "succeeded", "failed"}

func (s ProcessingState) String() string { return processingStateNames.name(s) }
func (s ProcessingState) MarshalText() ([]byte, error) { return processingStateNames.marshal(s) }
func (s *ProcessingState) UnmarshalText(b []byte) (err error) {
	*s, err = processingStateNames.parse("processing state", b)
	return err
}
