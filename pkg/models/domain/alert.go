package domain

// AlertCandidate is an unfiltered, unprioritized alert proposal emitted by a
// domain processor. Only candidates whose Status is off-track become alerts.
type AlertCandidate struct {
	Domain          AnalysisDomain
	Category        AlertCategory
	Platform        *Platform
	Metric          string
	Title           string
	Message         string
	Status          OnTrackStatus
	CurrentValue    float64
	TargetValue     float64
	Recommendations []string
}

// Alert is a classified, prioritized candidate. Platform is set for
// delivery-platform alerts and nil for operational ones.
type Alert struct {
	ID              string
	Domain          AnalysisDomain
	Category        AlertCategory
	Platform        *Platform
	Metric          string
	Title           string
	Message         string
	Severity        Severity
	Priority        Priority
	Impact          Impact
	CurrentValue    float64
	TargetValue     float64
	Variance        float64
	Recommendations []string
}

// AlertCounts tallies alerts by severity.
type AlertCounts struct {
	Info     int
	Warning  int
	Error    int
	Critical int
}

func (c AlertCounts) Total() int {
	return c.Info + c.Warning + c.Error + c.Critical
}

func CountAlerts(alerts []Alert) AlertCounts {
	var c AlertCounts
	for _, a := range alerts {
		switch a.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityError:
			c.Error++
		case SeverityWarning:
			c.Warning++
		default:
			c.Info++
		}
	}
	return c
}
