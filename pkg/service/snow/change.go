package snow

import (
	"context"
	"time"

	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
)

var changeFields = []string{
	model.FieldSysID,
	model.FieldNumber,
	model.FieldDescription,
	model.FieldState,
	model.FieldChangeType,
	model.FieldAssignedTo,
	model.FieldCreatedOn,
}

// ChangeSource owns the query/fetch/fallback contract for
// change-request records
type ChangeSource struct {
	client *Client
	gen    *Generator
	diag   interfaces.Diagnostics
	now    func() time.Time
}

// NewChangeSource creates a ChangeSource
func NewChangeSource(client *Client, gen *Generator, diag interfaces.Diagnostics) *ChangeSource {
	return &ChangeSource{client: client, gen: gen, diag: diag, now: time.Now}
}

// Changes fetches change requests in the filter window, or the
// synthetic set when the remote is unreachable
func (s *ChangeSource) Changes(ctx context.Context, f model.Filter) []model.Record {
	f = f.Normalized(s.now())
	return s.client.fetchOrFallback(ctx, types.EntityChange,
		EncodeChangeQuery(f), changeFields, f.Limit,
		s.diag, s.gen.Changes)
}

// TypeBreakdown counts changes by type. Pure post-processing of one
// Changes call: no second fetch, no second fallback decision.
func (s *ChangeSource) TypeBreakdown(ctx context.Context, f model.Filter) map[string]int {
	out := make(map[string]int)
	for _, rec := range s.Changes(ctx, f) {
		t := rec.Display(model.FieldChangeType)
		if t == "" {
			t = types.ChangeTypeNormal.String()
		}
		out[t]++
	}
	return out
}
