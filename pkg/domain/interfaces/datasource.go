package interfaces

import (
	"context"

	"github.com/opslens/opslens/pkg/domain/model"
)

// The data source interfaces share one contract: accessors never fail.
// A remote fault of any kind resolves to synthetic records of the same
// shape, so callers see only data, never errors. Which path was taken
// is reported out-of-band through Diagnostics.

// IncidentSource provides incident records
type IncidentSource interface {
	Incidents(ctx context.Context, f model.Filter) []model.Record
	OpenIncidents(ctx context.Context, f model.Filter) []model.Record
	ResolvedIncidents(ctx context.Context, f model.Filter) []model.Record
}

// ChangeSource provides change-request records
type ChangeSource interface {
	Changes(ctx context.Context, f model.Filter) []model.Record
	TypeBreakdown(ctx context.Context, f model.Filter) map[string]int
}

// SLASource provides SLA-tracking records
type SLASource interface {
	Records(ctx context.Context, f model.Filter) []model.Record
	Breaches(ctx context.Context, f model.Filter) []model.Record
}
