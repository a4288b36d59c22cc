package snow_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/service/snow"
)

func window() model.Filter {
	return model.Filter{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestEncodeIncidentQuery(t *testing.T) {
	t.Run("date range only", func(t *testing.T) {
		query := snow.EncodeIncidentQuery(window())
		gt.Equal(t, query,
			"sys_created_on>=2026-01-01 00:00:00^sys_created_on<=2026-04-30 23:59:59")
	})

	t.Run("clauses in fixed order", func(t *testing.T) {
		f := window()
		f.Priority = "1"
		f.Category = "network"
		f.AssignmentGroup = "Service Desk"

		query := snow.EncodeIncidentQuery(f)
		gt.Equal(t, query,
			"sys_created_on>=2026-01-01 00:00:00^sys_created_on<=2026-04-30 23:59:59"+
				"^priority=1^category=network^assignment_group=Service Desk")
	})

	t.Run("separator and equality stripped from values", func(t *testing.T) {
		f := window()
		f.Category = "net^work=admin\ntrue"

		query := snow.EncodeIncidentQuery(f)
		gt.Equal(t, query,
			"sys_created_on>=2026-01-01 00:00:00^sys_created_on<=2026-04-30 23:59:59"+
				"^category=networkadmintrue")
	})

	t.Run("value sanitized to empty omits clause", func(t *testing.T) {
		f := window()
		f.Priority = "^^==\n"
		f.Category = "database"

		query := snow.EncodeIncidentQuery(f)
		gt.Equal(t, query,
			"sys_created_on>=2026-01-01 00:00:00^sys_created_on<=2026-04-30 23:59:59"+
				"^category=database")
	})
}

func TestEncodeChangeQuery(t *testing.T) {
	f := window()
	f.AssignmentGroup = "Platform Engineering"
	f.Priority = "1" // not a change filter, must not appear

	query := snow.EncodeChangeQuery(f)
	gt.Equal(t, query,
		"sys_created_on>=2026-01-01 00:00:00^sys_created_on<=2026-04-30 23:59:59"+
			"^assignment_group=Platform Engineering")
}

func TestEncodeSLAQuery(t *testing.T) {
	f := window()
	f.SLAType = "Priority 1 resolution (8h)"

	query := snow.EncodeSLAQuery(f)
	gt.Equal(t, query,
		"sys_created_on>=2026-01-01 00:00:00^sys_created_on<=2026-04-30 23:59:59"+
			"^sla=Priority 1 resolution (8h)")
}
