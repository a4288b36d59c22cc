package types

// Trend classifies the direction of a time-ordered numeric series
type Trend string

const (
	TrendIncreasing   Trend = "Increasing"
	TrendDecreasing   Trend = "Decreasing"
	TrendStable       Trend = "Stable"
	TrendNone         Trend = "No trend"
	TrendInsufficient Trend = "Insufficient data"
)

// String returns the string representation
func (t Trend) String() string {
	return string(t)
}
