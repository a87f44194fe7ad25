package incidents

import "time"

// Incident is one live-incident record.
type Incident struct {
	ID                 string     `json:"id"`
	IncidentNumber     string     `json:"incidentNumber"`
	BusinessLine       string     `json:"businessLine"`
	ApplicationName    string     `json:"applicationName"`
	MajorIncident      bool       `json:"majorIncident"`
	RootCauseCategory  string     `json:"rootCauseCategory,omitempty"`
	ResolutionCategory string     `json:"resolutionCategory,omitempty"`
	Description        string     `json:"description,omitempty"`
	OpenedAt           time.Time  `json:"openedAt"`
	ResolvedAt         *time.Time `json:"resolvedAt,omitempty"`
}

// Filter narrows which incidents feed the analytics. Zero values mean
// "no constraint".
type Filter struct {
	DateFrom           *time.Time
	DateTo             *time.Time
	BusinessLine       string
	ApplicationName    string
	MajorIncidentOnly  bool
	RootCauseCategory  string
	ResolutionCategory string
}

// CategoryCount is one category/count pair in a breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// QualityMetrics summarizes resolution quality over the window.
type QualityMetrics struct {
	ResolvedCount        int     `json:"resolvedCount"`
	ResolvedRate         float64 `json:"resolvedRate"`
	AvgResolutionHours   float64 `json:"avgResolutionHours"`
	MajorIncidentPercent float64 `json:"majorIncidentPercent"`
}

// AnalysisResult is the analytics payload returned to the dashboard.
type AnalysisResult struct {
	Success             bool            `json:"success"`
	TotalIncidents      int             `json:"totalIncidents"`
	MajorIncidents      int             `json:"majorIncidents"`
	RootCauseBreakdown  []CategoryCount `json:"rootCauseBreakdown"`
	ResolutionBreakdown []CategoryCount `json:"resolutionBreakdown"`
	BusinessLines       []CategoryCount `json:"businessLines"`
	QualityMetrics      QualityMetrics  `json:"qualityMetrics"`
	Incidents           []Incident      `json:"incidents"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}
