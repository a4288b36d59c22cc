package usecase

import (
	"github.com/opslens/opslens/pkg/domain/types"
	"github.com/opslens/opslens/pkg/service/stats"
)

// Trend classification compares the mean of the last trendWindow
// points against the mean of the preceding trendWindow points. Window
// size and threshold are fixed, not configuration.
const (
	trendWindow    = 5
	trendThreshold = 0.10
)

// ClassifyTrend classifies a time-ordered numeric series. Fewer than
// two points cannot trend at all; an empty preceding window means the
// series is too short to compare.
func ClassifyTrend(series []float64) types.Trend {
	n := len(series)
	if n < 2 {
		return types.TrendNone
	}

	lastStart := n - trendWindow
	if lastStart < 0 {
		lastStart = 0
	}
	prevStart := lastStart - trendWindow
	if prevStart < 0 {
		prevStart = 0
	}

	last := series[lastStart:]
	prev := series[prevStart:lastStart]
	if len(prev) == 0 {
		return types.TrendInsufficient
	}

	lastMean := stats.Mean(last)
	prevMean := stats.Mean(prev)

	if prevMean == 0 {
		if lastMean > 0 {
			return types.TrendIncreasing
		}
		return types.TrendStable
	}

	change := (lastMean - prevMean) / prevMean
	switch {
	case change > trendThreshold:
		return types.TrendIncreasing
	case change < -trendThreshold:
		return types.TrendDecreasing
	default:
		return types.TrendStable
	}
}
