package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
	"github.com/opslens/opslens/pkg/utils/async"
)

// DashboardUC assembles a full overview from the per-domain
// calculators. The independent metric groups are fetched as one
// concurrent batch: each accessor call resolves on its own (success or
// fallback), so a slow or failing fetch delays the join but never
// suppresses sibling results.
type DashboardUC struct {
	incidents *IncidentMetricsUC
	changes   *ChangeMetricsUC
	sla       *SLAMetricsUC
	diag      interfaces.Diagnostics
	now       func() time.Time
}

// NewDashboard creates a DashboardUC
func NewDashboard(incidents *IncidentMetricsUC, changes *ChangeMetricsUC, sla *SLAMetricsUC, diag interfaces.Diagnostics) *DashboardUC {
	return &DashboardUC{
		incidents: incidents,
		changes:   changes,
		sla:       sla,
		diag:      diag,
		now:       time.Now,
	}
}

// Overview computes the dashboard payload for one refresh cycle
func (uc *DashboardUC) Overview(ctx context.Context, f model.Filter) (*model.Overview, error) {
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "overview: invalid filter")
	}

	uc.diag.IncRefresh()

	var (
		incidents   model.IncidentMetrics
		changes     model.ChangeMetrics
		compliance  model.ComplianceMetrics
		incidentErr error
		changeErr   error
		slaErr      error
	)

	async.Batch(ctx,
		func(ctx context.Context) {
			incidents, incidentErr = uc.incidents.Summary(ctx, f, types.IntervalWeek)
		},
		func(ctx context.Context) {
			changes, changeErr = uc.changes.Summary(ctx, f)
		},
		func(ctx context.Context) {
			compliance, slaErr = uc.sla.Compliance(ctx, f)
		},
	)

	for _, err := range []error{incidentErr, changeErr, slaErr} {
		if err != nil {
			return nil, goerr.Wrap(err, "overview: calculator failed")
		}
	}

	return &model.Overview{
		Incidents:   incidents,
		Changes:     changes,
		Compliance:  compliance,
		GeneratedAt: uc.now().UTC(),
	}, nil
}
