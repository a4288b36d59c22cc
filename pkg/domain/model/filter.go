package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Record cap bounds and default, and the default trailing window
const (
	MinRecordLimit     = 500
	MaxRecordLimit     = 10000
	DefaultRecordLimit = 2000
	DefaultWindowDays  = 120
)

// Filter narrows a fetch. A zero-value filter means the default
// trailing window with no field filters and the default record cap.
// Filters are immutable per request; accessors never mutate them and
// no record refers back to the filter that produced it.
type Filter struct {
	Start           time.Time
	End             time.Time
	Priority        string
	Category        string
	AssignmentGroup string
	SLAType         string
	Limit           int
}

// Normalized returns a copy with the date window defaulted to the
// trailing DefaultWindowDays and the record cap clamped into bounds
func (f Filter) Normalized(now time.Time) Filter {
	if f.Start.IsZero() && f.End.IsZero() {
		f.End = now
		f.Start = now.AddDate(0, 0, -DefaultWindowDays)
	} else if f.End.IsZero() {
		f.End = now
	} else if f.Start.IsZero() {
		f.Start = f.End.AddDate(0, 0, -DefaultWindowDays)
	}

	switch {
	case f.Limit <= 0:
		f.Limit = DefaultRecordLimit
	case f.Limit < MinRecordLimit:
		f.Limit = MinRecordLimit
	case f.Limit > MaxRecordLimit:
		f.Limit = MaxRecordLimit
	}

	return f
}

// Validate rejects a filter whose window is inverted
func (f Filter) Validate() error {
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return goerr.Wrap(ErrInvalidFilter, "filter end precedes start",
			goerr.V("start", f.Start),
			goerr.V("end", f.End))
	}
	return nil
}
