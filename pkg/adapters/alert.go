package adapters

import (
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityCritical:
		return api.SeverityCritical
	case domain.SeverityError:
		return api.SeverityError
	case domain.SeverityWarning:
		return api.SeverityWarning
	default:
		return api.SeverityInfo
	}
}

func MapAlertDomainToApi(a domain.Alert) api.Alert {
	res := api.Alert{
		ID:              a.ID,
		Domain:          a.Domain.String(),
		Category:        a.Category.String(),
		Metric:          a.Metric,
		Title:           a.Title,
		Message:         a.Message,
		Severity:        MapSeverityDomainToApi(a.Severity),
		Priority:        a.Priority.String(),
		Impact:          a.Impact.String(),
		CurrentValue:    a.CurrentValue,
		TargetValue:     a.TargetValue,
		Variance:        a.Variance,
		Recommendations: append([]string{}, a.Recommendations...),
	}
	if a.Platform != nil {
		res.Platform = a.Platform.String()
	}
	return res
}

func MapAlertsDomainToApi(alerts []domain.Alert) []api.Alert {
	res := make([]api.Alert, 0, len(alerts))
	for _, a := range alerts {
		res = append(res, MapAlertDomainToApi(a))
	}
	return res
}

func MapAlertCountsDomainToApi(c domain.AlertCounts) api.AlertCounts {
	return api.AlertCounts{
		Info:     c.Info,
		Warning:  c.Warning,
		Error:    c.Error,
		Critical: c.Critical,
		Total:    c.Total(),
	}
}
