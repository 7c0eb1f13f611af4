package domain

import "time"

// Report is a presentation-ready rendering of one analysis for the
// terminal reporters.
type Report struct {
	Title      string
	Store      string
	Date       string
	Grade      string
	Period     TimePeriod
	TotalSales float64
	Currency   string
	Sections   []ReportSection
}

// TimePeriod is the lookback window the weekly baselines cover. Duration is
// zero when the envelope carried no window.
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
