package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
)

// Mean returns the arithmetic mean, or 0 for an empty input
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle element of the sorted values, or the
// average of the two middle elements for even-sized input, or 0 for
// an empty input. The input slice is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Bucketize counts values into the supplied half-open ranges. The
// first matching bucket wins; ranges are expected to be ordered,
// non-overlapping, and to end with an unbounded range so outliers are
// never dropped. Percentages are of the total value count, rounded to
// two decimals, and all 0 when the input is empty.
func Bucketize(values []float64, buckets []model.Bucket) []model.BucketCount {
	counts := make([]int, len(buckets))
	for _, v := range values {
		for i, b := range buckets {
			if b.Contains(v) {
				counts[i]++
				break
			}
		}
	}

	total := len(values)
	out := make([]model.BucketCount, 0, len(buckets))
	for i, b := range buckets {
		var pct float64
		if total > 0 {
			pct = math.Round(float64(counts[i])/float64(total)*10000) / 100
		}
		out = append(out, model.BucketCount{
			Label:      b.Label,
			Range:      formatRange(b),
			Count:      counts[i],
			Percentage: pct,
		})
	}
	return out
}

func formatRange(b model.Bucket) string {
	if math.IsInf(b.Max, 1) {
		return fmt.Sprintf("%g+", b.Min)
	}
	return fmt.Sprintf("%g-%g", b.Min, b.Max)
}

// GroupByInterval counts timestamps into calendar buckets keyed by
// each bucket's normalized start (UTC; weeks start Monday). Only
// buckets containing at least one timestamp appear; callers needing a
// dense series zero-fill themselves, and map iteration order means
// callers must sort by key before display.
func GroupByInterval(ts []time.Time, interval types.Interval) map[time.Time]int {
	out := make(map[time.Time]int)
	for _, t := range ts {
		out[BucketStart(t, interval)]++
	}
	return out
}

// BucketStart normalizes a timestamp to the start of its calendar
// bucket in UTC
func BucketStart(t time.Time, interval types.Interval) time.Time {
	t = t.UTC()
	switch interval {
	case types.IntervalWeek:
		offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
		day := t.AddDate(0, 0, -offset)
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	case types.IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// SortedSeries flattens an interval grouping into a series ordered by
// bucket start
func SortedSeries(grouped map[time.Time]int) []model.SeriesPoint {
	out := make([]model.SeriesPoint, 0, len(grouped))
	for k, v := range grouped {
		out = append(out, model.SeriesPoint{Date: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
