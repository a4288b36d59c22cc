package model

import (
	"time"

	"github.com/opslens/opslens/pkg/domain/types"
)

// Field names shared across the remote tables
const (
	FieldSysID            = "sys_id"
	FieldNumber           = "number"
	FieldShortDescription = "short_description"
	FieldDescription      = "description"
	FieldPriority         = "priority"
	FieldState            = "state"
	FieldCategory         = "category"
	FieldAssignedTo       = "assigned_to"
	FieldAssignmentGroup  = "assignment_group"
	FieldCreatedOn        = "sys_created_on"
	FieldResolvedAt       = "resolved_at"
	FieldChangeType       = "type"
	FieldTask             = "task"
	FieldSLADefinition    = "sla"
	FieldStage            = "stage"
	FieldHasBreached      = "has_breached"
	FieldPercentage       = "business_percentage"
)

// glideTimeFormat is the timestamp layout used by the table API
const glideTimeFormat = "2006-01-02 15:04:05"

// Record is one remote record: a mapping from field name to field
// value. Records are fetched per request, reduced to metrics, and
// discarded; nothing holds onto them across calls.
type Record map[string]FieldValue

// Get returns the field value and whether the field is present
func (r Record) Get(field string) (FieldValue, bool) {
	v, ok := r[field]
	return v, ok
}

// Value returns the raw coded value of a field, empty when absent
func (r Record) Value(field string) string {
	return r[field].Value()
}

// Display returns the human-readable value of a field, empty when absent
func (r Record) Display(field string) string {
	return r[field].Display()
}

// Time parses a timestamp field. The second return is false when the
// field is absent, empty, or unparseable.
func (r Record) Time(field string) (time.Time, bool) {
	v, ok := r[field]
	if !ok || v.IsEmpty() {
		return time.Time{}, false
	}
	raw := v.Value()
	if raw == "" {
		raw = v.Display()
	}
	if t, err := time.Parse(glideTimeFormat, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// Bool interprets a flag field. The table API serializes booleans as
// the strings "true"/"false" (or "1"/"0" in older instances).
func (r Record) Bool(field string) bool {
	switch r.Value(field) {
	case "true", "1":
		return true
	}
	return false
}

// ID returns the record identifier
func (r Record) ID() types.RecordID {
	return types.RecordID(r.Value(FieldSysID))
}

// CreatedTimes extracts the creation timestamps of all records that
// carry a parseable one, for interval grouping
func CreatedTimes(records []Record) []time.Time {
	out := make([]time.Time, 0, len(records))
	for _, r := range records {
		if t, ok := r.Time(FieldCreatedOn); ok {
			out = append(out, t)
		}
	}
	return out
}
