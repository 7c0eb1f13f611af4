// Package export derives read-only documents from an analysis result. Every
// document is computed per call and shares nothing with the result.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/de-tools/ops-atlas/pkg/adapters"
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

var (
	ErrUnknownKind   = errors.New("unknown export kind")
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNoResult      = errors.New("no analysis result to export")
)

type Kind string

const (
	KindExecutive Kind = "executive"
	KindAlerts    Kind = "alerts"
	KindChannels  Kind = "channels"
	KindHourly    Kind = "hourly"
	KindFull      Kind = "full"
)

var kinds = []Kind{KindExecutive, KindAlerts, KindChannels, KindHourly, KindFull}

func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the HTTP media type for f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

const topAlerts = 5

type ExecutiveSummary struct {
	Filtering api.Filtering      `json:"filtering" yaml:"filtering"`
	Summary   api.Summary        `json:"summary" yaml:"summary"`
	Grade     *api.OverallGrade  `json:"grade,omitempty" yaml:"grade,omitempty"`
	Domains   []api.DomainStatus `json:"domains" yaml:"domains"`
	TopAlerts []api.Alert        `json:"top_alerts" yaml:"top_alerts"`
}

type AlertsOnly struct {
	Filtering api.Filtering   `json:"filtering" yaml:"filtering"`
	Counts    api.AlertCounts `json:"counts" yaml:"counts"`
	Alerts    []api.Alert     `json:"alerts" yaml:"alerts"`
}

// ChannelComparison sets the daily channel split next to the hourly one.
type ChannelComparison struct {
	Filtering  api.Filtering            `json:"filtering" yaml:"filtering"`
	TopChannel string                   `json:"top_channel,omitempty" yaml:"top_channel,omitempty"`
	Daily      *api.SalesChannels       `json:"daily,omitempty" yaml:"daily,omitempty"`
	Hourly     []api.ChannelPerformance `json:"hourly,omitempty" yaml:"hourly,omitempty"`
}

type HourlyBreakdown struct {
	Filtering api.Filtering          `json:"filtering" yaml:"filtering"`
	Status    api.DomainStatus       `json:"status" yaml:"status"`
	Summary   *api.DailySalesSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Hours     []api.HourMetrics      `json:"hours,omitempty" yaml:"hours,omitempty"`
	Periods   []api.PeriodAnalysis   `json:"periods,omitempty" yaml:"periods,omitempty"`
}

func NewExecutiveSummary(res *domain.AnalysisResult) ExecutiveSummary {
	alerts := res.Alerts
	if len(alerts) > topAlerts {
		alerts = alerts[:topAlerts]
	}
	ops := adapters.MapStoreOperationsDomainToApi(res.StoreOperations)
	return ExecutiveSummary{
		Filtering: adapters.MapFilteringDomainToApi(res.Filtering),
		Summary:   adapters.MapSummaryDomainToApi(res.Summary),
		Grade:     ops.OverallGrade,
		Domains: []api.DomainStatus{
			adapters.MapDomainStatusDomainToApi(res.PlatformRatings.Status),
			adapters.MapDomainStatusDomainToApi(res.StoreOperations.Status),
			adapters.MapDomainStatusDomainToApi(res.HourlySales.Status),
		},
		TopAlerts: adapters.MapAlertsDomainToApi(alerts),
	}
}

func NewAlertsOnly(res *domain.AnalysisResult) AlertsOnly {
	return AlertsOnly{
		Filtering: adapters.MapFilteringDomainToApi(res.Filtering),
		Counts:    adapters.MapAlertCountsDomainToApi(domain.CountAlerts(res.Alerts)),
		Alerts:    adapters.MapAlertsDomainToApi(res.Alerts),
	}
}

func NewChannelComparison(res *domain.AnalysisResult) ChannelComparison {
	doc := ChannelComparison{
		Filtering: adapters.MapFilteringDomainToApi(res.Filtering),
		Daily:     adapters.MapStoreOperationsDomainToApi(res.StoreOperations).SalesChannels,
	}
	if doc.Daily != nil {
		doc.TopChannel = doc.Daily.TopChannel
	}
	if res.HourlySales.Metrics != nil {
		doc.Hourly = adapters.MapChannelsDomainToApi(res.HourlySales.Metrics.Channels)
	}
	return doc
}

func NewHourlyBreakdown(res *domain.AnalysisResult) HourlyBreakdown {
	hourly := adapters.MapHourlySalesDomainToApi(res.HourlySales)
	return HourlyBreakdown{
		Filtering: adapters.MapFilteringDomainToApi(res.Filtering),
		Status:    hourly.Status,
		Summary:   hourly.Summary,
		Hours:     hourly.Hours,
		Periods:   hourly.Periods,
	}
}

// Build returns the document of the given kind.
func Build(kind Kind, res *domain.AnalysisResult) (any, error) {
	if res == nil {
		return nil, ErrNoResult
	}
	switch kind {
	case KindExecutive:
		return NewExecutiveSummary(res), nil
	case KindAlerts:
		return NewAlertsOnly(res), nil
	case KindChannels:
		return NewChannelComparison(res), nil
	case KindHourly:
		return NewHourlyBreakdown(res), nil
	case KindFull:
		return adapters.MapAnalysisResultDomainToApi(*res), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func Encode(w io.Writer, doc any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
