package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
	"github.com/opslens/opslens/pkg/service/stats"
	"github.com/opslens/opslens/pkg/utils/async"
)

// IncidentMetricsUC derives incident metrics from fetched records
type IncidentMetricsUC struct {
	source     interfaces.IncidentSource
	ageBuckets []model.Bucket
	now        func() time.Time
}

// NewIncidentMetrics creates an IncidentMetricsUC. A nil bucket layout
// falls back to the built-in age histogram.
func NewIncidentMetrics(source interfaces.IncidentSource, ageBuckets []model.Bucket) *IncidentMetricsUC {
	if len(ageBuckets) == 0 {
		ageBuckets = model.DefaultAgeBuckets()
	}
	return &IncidentMetricsUC{source: source, ageBuckets: ageBuckets, now: time.Now}
}

// PriorityCounts counts records into P1..P4. Priority may arrive as a
// value/display pair, a bare scalar, or not at all; absent and
// unparseable priorities land in P4, so the totals always equal the
// input record count.
func PriorityCounts(records []model.Record) map[string]int {
	out := make(map[string]int, 4)
	for _, p := range types.Priorities() {
		out[p.Label()] = 0
	}

	for _, rec := range records {
		v, ok := rec.Get(model.FieldPriority)
		if !ok {
			out[types.PriorityLow.Label()]++
			continue
		}
		raw := v.Value()
		if raw == "" {
			raw = v.Display()
		}
		out[types.ParsePriority(raw).Label()]++
	}
	return out
}

// CategoryCounts counts records by category label; records without a
// category land under "uncategorized"
func CategoryCounts(records []model.Record) map[string]int {
	out := make(map[string]int)
	for _, rec := range records {
		label := rec.Display(model.FieldCategory)
		if label == "" {
			label = "uncategorized"
		}
		out[label]++
	}
	return out
}

// resolutionHours extracts the positive resolution durations in hours.
// Records lacking either timestamp, or with a resolution at or before
// creation, are excluded entirely: they neither count toward the
// resolved total nor pull the averages toward zero.
func resolutionHours(records []model.Record) []float64 {
	out := make([]float64, 0, len(records))
	for _, rec := range records {
		created, ok := rec.Time(model.FieldCreatedOn)
		if !ok {
			continue
		}
		resolved, ok := rec.Time(model.FieldResolvedAt)
		if !ok {
			continue
		}
		d := resolved.Sub(created)
		if d <= 0 {
			continue
		}
		out = append(out, d.Hours())
	}
	return out
}

// MTTRFromRecords computes mean and median time-to-resolution over the
// qualifying subset of the given resolved incidents
func MTTRFromRecords(records []model.Record) model.MTTRMetrics {
	hours := resolutionHours(records)
	return model.MTTRMetrics{
		MeanHours:   stats.Mean(hours),
		MedianHours: stats.Median(hours),
		Resolved:    len(hours),
	}
}

// MTTR fetches resolved incidents and computes time-to-resolution
func (uc *IncidentMetricsUC) MTTR(ctx context.Context, f model.Filter) (model.MTTRMetrics, error) {
	if err := f.Validate(); err != nil {
		return model.MTTRMetrics{}, goerr.Wrap(err, "mttr: invalid filter")
	}
	return MTTRFromRecords(uc.source.ResolvedIncidents(ctx, f)), nil
}

// VolumeTrend groups incident creation into calendar buckets and
// classifies the direction of the series
func (uc *IncidentMetricsUC) VolumeTrend(ctx context.Context, f model.Filter, interval types.Interval) (model.TrendReport, error) {
	if err := f.Validate(); err != nil {
		return model.TrendReport{}, goerr.Wrap(err, "volume trend: invalid filter")
	}
	if !interval.IsValid() {
		return model.TrendReport{}, goerr.Wrap(model.ErrInvalidInterval, "volume trend",
			goerr.V("interval", interval))
	}

	records := uc.source.Incidents(ctx, f)
	series := stats.SortedSeries(stats.GroupByInterval(model.CreatedTimes(records), interval))

	values := make([]float64, 0, len(series))
	for _, p := range series {
		values = append(values, float64(p.Count))
	}

	return model.TrendReport{Series: series, Trend: ClassifyTrend(values)}, nil
}

// AgeHistogram buckets open incidents by hours since creation
func (uc *IncidentMetricsUC) AgeHistogram(ctx context.Context, f model.Filter) ([]model.BucketCount, error) {
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "age histogram: invalid filter")
	}

	records := uc.source.OpenIncidents(ctx, f)
	now := uc.now().UTC()

	ages := make([]float64, 0, len(records))
	for _, rec := range records {
		created, ok := rec.Time(model.FieldCreatedOn)
		if !ok {
			continue
		}
		if age := now.Sub(created).Hours(); age >= 0 {
			ages = append(ages, age)
		}
	}

	return stats.Bucketize(ages, uc.ageBuckets), nil
}

// Summary assembles the full incident portion of a dashboard view.
// The three accessor calls are independent suspension points issued
// concurrently; each resolves on its own (remote or synthetic), so one
// slow fetch delays the join but never blocks the others. Record sets
// are fetched once and discarded after the computation.
func (uc *IncidentMetricsUC) Summary(ctx context.Context, f model.Filter, interval types.Interval) (model.IncidentMetrics, error) {
	if err := f.Validate(); err != nil {
		return model.IncidentMetrics{}, goerr.Wrap(err, "incident summary: invalid filter")
	}

	var all, open, resolved []model.Record
	async.Batch(ctx,
		func(ctx context.Context) { all = uc.source.Incidents(ctx, f) },
		func(ctx context.Context) { open = uc.source.OpenIncidents(ctx, f) },
		func(ctx context.Context) { resolved = uc.source.ResolvedIncidents(ctx, f) },
	)

	series := stats.SortedSeries(stats.GroupByInterval(model.CreatedTimes(all), interval))
	values := make([]float64, 0, len(series))
	for _, p := range series {
		values = append(values, float64(p.Count))
	}

	now := uc.now().UTC()
	ages := make([]float64, 0, len(open))
	for _, rec := range open {
		if created, ok := rec.Time(model.FieldCreatedOn); ok {
			if age := now.Sub(created).Hours(); age >= 0 {
				ages = append(ages, age)
			}
		}
	}

	return model.IncidentMetrics{
		PriorityCounts: PriorityCounts(all),
		CategoryCounts: CategoryCounts(all),
		Open:           len(open),
		MTTR:           MTTRFromRecords(resolved),
		Volume:         model.TrendReport{Series: series, Trend: ClassifyTrend(values)},
		AgeHistogram:   stats.Bucketize(ages, uc.ageBuckets),
	}, nil
}
