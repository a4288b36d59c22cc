package snow

import (
	"context"
	"time"

	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
)

var slaFields = []string{
	model.FieldSysID,
	model.FieldTask,
	model.FieldSLADefinition,
	model.FieldStage,
	model.FieldHasBreached,
	model.FieldPercentage,
	model.FieldCreatedOn,
}

// SLASource owns the query/fetch/fallback contract for SLA-tracking
// records
type SLASource struct {
	client *Client
	gen    *Generator
	diag   interfaces.Diagnostics
	now    func() time.Time
}

// NewSLASource creates an SLASource
func NewSLASource(client *Client, gen *Generator, diag interfaces.Diagnostics) *SLASource {
	return &SLASource{client: client, gen: gen, diag: diag, now: time.Now}
}

// Records fetches SLA-tracking entries in the filter window, or the
// synthetic set when the remote is unreachable
func (s *SLASource) Records(ctx context.Context, f model.Filter) []model.Record {
	f = f.Normalized(s.now())
	return s.client.fetchOrFallback(ctx, types.EntitySLA,
		EncodeSLAQuery(f), slaFields, f.Limit,
		s.diag, s.gen.SLARecords)
}

// Breaches filters one Records call down to breached entries. Pure
// post-processing: no second fetch, no second fallback decision.
func (s *SLASource) Breaches(ctx context.Context, f model.Filter) []model.Record {
	records := s.Records(ctx, f)
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if rec.Bool(model.FieldHasBreached) {
			out = append(out, rec)
		}
	}
	return out
}
