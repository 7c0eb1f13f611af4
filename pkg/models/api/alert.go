package api

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

type Alert struct {
	ID              string   `json:"id" yaml:"id"`
	Domain          string   `json:"domain" yaml:"domain"`
	Category        string   `json:"category" yaml:"category"`
	Platform        string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	Metric          string   `json:"metric" yaml:"metric"`
	Title           string   `json:"title" yaml:"title"`
	Message         string   `json:"message" yaml:"message"`
	Severity        Severity `json:"severity" yaml:"severity"`
	Priority        string   `json:"priority" yaml:"priority"`
	Impact          string   `json:"impact" yaml:"impact"`
	CurrentValue    float64  `json:"current_value" yaml:"current_value"`
	TargetValue     float64  `json:"target_value" yaml:"target_value"`
	Variance        float64  `json:"variance" yaml:"variance"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

type AlertCounts struct {
	Info     int `json:"info" yaml:"info"`
	Warning  int `json:"warning" yaml:"warning"`
	Error    int `json:"error" yaml:"error"`
	Critical int `json:"critical" yaml:"critical"`
	Total    int `json:"total" yaml:"total"`
}
