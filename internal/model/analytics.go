package model

import "time"

// Metric names recorded by the backend itself.
const (
	MetricContactSubmissions  = "contact_submissions"
	MetricIntegrationFailures = "integration_failures"
)

// Analytics is a single metric data point.
type Analytics struct {
	ID        int            `json:"id"`
	Date      time.Time      `json:"date"`
	Metric    string         `json:"metric"`
	Value     int            `json:"value"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

// RecordAnalyticsRequest records a metric through the admin API.
type RecordAnalyticsRequest struct {
	Metric   string         `json:"metric" binding:"required,max=100"`
	Value    *int           `json:"value" binding:"required"`
	Date     *time.Time     `json:"date"`
	Metadata map[string]any `json:"metadata"`
}

// AnalyticsQuery filters the analytics listing. Zero values mean unbounded.
type AnalyticsQuery struct {
	Metric string
	From   time.Time
	To     time.Time
}

// AnalyticsEvent is the queued form of a metric waiting to be persisted.
type AnalyticsEvent struct {
	Metric   string         `json:"metric"`
	Value    int            `json:"value"`
	Date     time.Time      `json:"date"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
