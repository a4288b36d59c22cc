package diag

import (
	"context"
	"time"

	"github.com/opslens/opslens/pkg/domain/types"
	"github.com/prometheus/client_golang/prometheus"
)

// Service is the production diagnostics collaborator: every accessor
// call reports its resolution path, elapsed time, and record count
// here, and refresh cycles increment a process-wide counter. Nothing
// in the data path reads any of this back.
type Service struct {
	fetchTotal   *prometheus.CounterVec
	fetchSeconds *prometheus.HistogramVec
	recordCount  *prometheus.HistogramVec
	refreshTotal prometheus.Counter
}

// New creates a Service and registers its collectors
func New(reg prometheus.Registerer) *Service {
	s := &Service{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opslens",
			Name:      "fetch_total",
			Help:      "Accessor calls by entity and resolution path (api or mock)",
		}, []string{"entity", "path"}),
		fetchSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "opslens",
			Name:      "fetch_duration_seconds",
			Help:      "Elapsed time of accessor calls",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"entity", "path"}),
		recordCount: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "opslens",
			Name:      "fetch_records",
			Help:      "Record counts returned by accessor calls",
			Buckets:   []float64{0, 10, 50, 100, 500, 1000, 2000, 5000, 10000},
		}, []string{"entity", "path"}),
		refreshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opslens",
			Name:      "refresh_cycles_total",
			Help:      "Dashboard refresh cycles served",
		}),
	}

	reg.MustRegister(s.fetchTotal, s.fetchSeconds, s.recordCount, s.refreshTotal)
	return s
}

// ReportFetch records one accessor call resolution
func (s *Service) ReportFetch(ctx context.Context, entity types.EntityKind, path types.DataPath, elapsed time.Duration, count int) {
	labels := prometheus.Labels{"entity": entity.String(), "path": path.String()}
	s.fetchTotal.With(labels).Inc()
	s.fetchSeconds.With(labels).Observe(elapsed.Seconds())
	s.recordCount.With(labels).Observe(float64(count))
}

// IncRefresh counts one refresh cycle
func (s *Service) IncRefresh() {
	s.refreshTotal.Inc()
}

// Discard is a diagnostics sink that drops everything, for callers
// that have no registry
type Discard struct{}

// ReportFetch implements interfaces.Diagnostics
func (Discard) ReportFetch(ctx context.Context, entity types.EntityKind, path types.DataPath, elapsed time.Duration, count int) {
}

// IncRefresh implements interfaces.Diagnostics
func (Discard) IncRefresh() {}
