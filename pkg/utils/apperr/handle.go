package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle reports a terminal application error with its attached
// values, if any
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)

	if g := goerr.Unwrap(err); g != nil {
		logger.Error("application error", "error", err, "values", g.Values())
		return
	}
	logger.Error("application error", "error", err)
}
