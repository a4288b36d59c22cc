package interfaces

import (
	"context"
	"time"

	"github.com/opslens/opslens/pkg/domain/types"
)

// Diagnostics receives the out-of-band signal of each accessor call:
// which path resolved it, how long it took, and how many records came
// back. It is purely observational; nothing in the data path reads it.
type Diagnostics interface {
	ReportFetch(ctx context.Context, entity types.EntityKind, path types.DataPath, elapsed time.Duration, count int)
	IncRefresh()
}
