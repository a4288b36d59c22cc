package snow

import (
	"strings"

	"github.com/opslens/opslens/pkg/domain/model"
)

// Query grammar of the table API filter string. Clauses are joined by
// the separator; each equality clause is field=value.
const (
	clauseSeparator = "^"
	clauseEquality  = "="
)

// sanitizeValue strips the characters that carry meaning in the filter
// grammar (separator, equality, newlines) from a user-supplied value.
// This is injection defense, not general escaping; everything else
// passes through unchanged.
func sanitizeValue(v string) string {
	return strings.NewReplacer(
		clauseSeparator, "",
		clauseEquality, "",
		"\n", "",
		"\r", "",
	).Replace(v)
}

// queryBuilder accumulates filter clauses in document order
type queryBuilder struct {
	clauses []string
}

// dateRange appends the date-range clause over the given timestamp
// field, inclusive at both ends at day granularity
func (b *queryBuilder) dateRange(field string, f model.Filter) *queryBuilder {
	if !f.Start.IsZero() {
		b.clauses = append(b.clauses, field+">="+f.Start.UTC().Format("2006-01-02")+" 00:00:00")
	}
	if !f.End.IsZero() {
		b.clauses = append(b.clauses, field+"<="+f.End.UTC().Format("2006-01-02")+" 23:59:59")
	}
	return b
}

// equals appends an equality clause. A value that sanitizes to empty
// omits the clause entirely: fail closed to "no filter on this field",
// never a malformed clause.
func (b *queryBuilder) equals(field, value string) *queryBuilder {
	if value == "" {
		return b
	}
	clean := sanitizeValue(value)
	if clean == "" {
		return b
	}
	b.clauses = append(b.clauses, field+clauseEquality+clean)
	return b
}

// raw appends a pre-built clause owned by the caller, not derived from
// user input
func (b *queryBuilder) raw(clause string) *queryBuilder {
	b.clauses = append(b.clauses, clause)
	return b
}

// String renders the encoded filter string
func (b *queryBuilder) String() string {
	return strings.Join(b.clauses, clauseSeparator)
}

// EncodeIncidentQuery builds the filter string for incident fetches:
// date range first, then priority, category, assignment group
func EncodeIncidentQuery(f model.Filter) string {
	var b queryBuilder
	b.dateRange(model.FieldCreatedOn, f)
	b.equals(model.FieldPriority, f.Priority)
	b.equals(model.FieldCategory, f.Category)
	b.equals(model.FieldAssignmentGroup, f.AssignmentGroup)
	return b.String()
}

// EncodeChangeQuery builds the filter string for change fetches:
// date range first, then assignment group
func EncodeChangeQuery(f model.Filter) string {
	var b queryBuilder
	b.dateRange(model.FieldCreatedOn, f)
	b.equals(model.FieldAssignmentGroup, f.AssignmentGroup)
	return b.String()
}

// EncodeSLAQuery builds the filter string for SLA-tracking fetches:
// date range first, then SLA definition name
func EncodeSLAQuery(f model.Filter) string {
	var b queryBuilder
	b.dateRange(model.FieldCreatedOn, f)
	b.equals(model.FieldSLADefinition, f.SLAType)
	return b.String()
}
