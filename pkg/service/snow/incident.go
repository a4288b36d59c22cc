package snow

import (
	"context"
	"time"

	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
)

// incidentFields is the projection for incident fetches: only what
// the calculators consume
var incidentFields = []string{
	model.FieldSysID,
	model.FieldNumber,
	model.FieldShortDescription,
	model.FieldPriority,
	model.FieldState,
	model.FieldCategory,
	model.FieldAssignedTo,
	model.FieldCreatedOn,
	model.FieldResolvedAt,
}

// IncidentSource owns the query/fetch/fallback contract for incident
// records
type IncidentSource struct {
	client *Client
	gen    *Generator
	diag   interfaces.Diagnostics
	now    func() time.Time
}

// NewIncidentSource creates an IncidentSource
func NewIncidentSource(client *Client, gen *Generator, diag interfaces.Diagnostics) *IncidentSource {
	return &IncidentSource{client: client, gen: gen, diag: diag, now: time.Now}
}

// Incidents fetches incidents in the filter window, or the synthetic
// set when the remote is unreachable
func (s *IncidentSource) Incidents(ctx context.Context, f model.Filter) []model.Record {
	f = f.Normalized(s.now())
	return s.client.fetchOrFallback(ctx, types.EntityIncident,
		EncodeIncidentQuery(f), incidentFields, f.Limit,
		s.diag, s.gen.Incidents)
}

// OpenIncidents fetches incidents still in an open lifecycle state
func (s *IncidentSource) OpenIncidents(ctx context.Context, f model.Filter) []model.Record {
	f = f.Normalized(s.now())
	query := EncodeIncidentQuery(f) + clauseSeparator + "active=true"
	return s.client.fetchOrFallback(ctx, types.EntityIncident,
		query, incidentFields, f.Limit,
		s.diag, s.gen.OpenIncidents)
}

// ResolvedIncidents fetches incidents that reached a resolved or
// closed state; these carry resolution timestamps for MTTR
func (s *IncidentSource) ResolvedIncidents(ctx context.Context, f model.Filter) []model.Record {
	f = f.Normalized(s.now())
	query := EncodeIncidentQuery(f) + clauseSeparator + "stateINResolved,Closed"
	return s.client.fetchOrFallback(ctx, types.EntityIncident,
		query, incidentFields, f.Limit,
		s.diag, s.gen.ResolvedIncidents)
}
