package snow_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
	"github.com/opslens/opslens/pkg/service/snow"
	"github.com/opslens/opslens/pkg/utils/async"
)

// diagRecorder captures out-of-band fetch reports for assertions
type diagRecorder struct {
	mu      sync.Mutex
	reports []fetchReport
}

type fetchReport struct {
	entity  types.EntityKind
	path    types.DataPath
	elapsed time.Duration
	count   int
}

func (d *diagRecorder) ReportFetch(ctx context.Context, entity types.EntityKind, path types.DataPath, elapsed time.Duration, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reports = append(d.reports, fetchReport{entity: entity, path: path, elapsed: elapsed, count: count})
}

func (d *diagRecorder) IncRefresh() {}

func (d *diagRecorder) last(t *testing.T) fetchReport {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.reports) == 0 {
		t.Fatal("no fetch reports recorded")
	}
	return d.reports[len(d.reports)-1]
}

func incidentJSON(n int) string {
	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, map[string]any{
			"sys_id": fmt.Sprintf("id-%04d", i),
			"number": fmt.Sprintf("INC%07d", i),
			"priority": map[string]string{
				"display_value": "2 - High",
				"value":         "2",
			},
			"state":          map[string]string{"display_value": "New", "value": "New"},
			"category":       "network",
			"sys_created_on": "2026-04-01 08:00:00",
		})
	}
	body, _ := json.Marshal(map[string]any{"result": records})
	return string(body)
}

func TestIncidentSourceRemoteSuccess(t *testing.T) {
	var gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("sysparm_query")
		gotAuth = r.Header.Get("Authorization")
		gt.Equal(t, r.URL.Path, "/api/now/table/incident")
		gt.Equal(t, r.URL.Query().Get("sysparm_display_value"), "all")
		_, _ = w.Write([]byte(incidentJSON(3)))
	}))
	defer server.Close()

	diag := &diagRecorder{}
	client := snow.NewClient(server.URL, "session-token")
	source := snow.NewIncidentSource(client, seededGenerator(10), diag)

	records := source.Incidents(context.Background(), model.Filter{})

	gt.Equal(t, len(records), 3)
	gt.Equal(t, records[0].Value(model.FieldPriority), "2")
	gt.Equal(t, records[0].Display(model.FieldPriority), "2 - High")
	gt.Equal(t, gotAuth, "Bearer session-token")
	gt.True(t, gotQuery != "")

	report := diag.last(t)
	gt.Equal(t, report.path, types.DataPathAPI)
	gt.Equal(t, report.count, 3)
}

func TestIncidentSourceEmptySuccessIsNotFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	diag := &diagRecorder{}
	source := snow.NewIncidentSource(snow.NewClient(server.URL, ""), seededGenerator(11), diag)

	records := source.Incidents(context.Background(), model.Filter{})

	// An empty remote result is a success, not a reason to synthesize
	gt.Equal(t, len(records), 0)
	gt.Equal(t, diag.last(t).path, types.DataPathAPI)
}

func TestIncidentSourceFallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	diag := &diagRecorder{}
	source := snow.NewIncidentSource(snow.NewClient(server.URL, ""), seededGenerator(12), diag)

	records := source.OpenIncidents(context.Background(), model.Filter{})

	gt.Equal(t, len(records), snow.SyntheticIncidentCount)
	for _, rec := range records {
		p, err := strconv.Atoi(rec.Value(model.FieldPriority))
		gt.NoError(t, err)
		gt.True(t, p >= 1 && p <= 4)
	}
	gt.Equal(t, diag.last(t).path, types.DataPathMock)
}

func TestIncidentSourceFallbackOnDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": not-json`))
	}))
	defer server.Close()

	diag := &diagRecorder{}
	source := snow.NewIncidentSource(snow.NewClient(server.URL, ""), seededGenerator(13), diag)

	records := source.Incidents(context.Background(), model.Filter{})

	gt.Equal(t, len(records), snow.SyntheticIncidentCount)
	gt.Equal(t, diag.last(t).path, types.DataPathMock)
}

func TestIncidentSourceFallbackOnTransportError(t *testing.T) {
	// A closed server yields a connection error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	diag := &diagRecorder{}
	source := snow.NewIncidentSource(snow.NewClient(server.URL, ""), seededGenerator(14), diag)

	records := source.Incidents(context.Background(), model.Filter{})

	gt.Equal(t, len(records), snow.SyntheticIncidentCount)
	gt.Equal(t, diag.last(t).path, types.DataPathMock)
}

func TestIncidentSourceFallbackOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(incidentJSON(1)))
	}))
	defer server.Close()

	diag := &diagRecorder{}
	client := snow.NewClient(server.URL, "", snow.WithTimeout(50*time.Millisecond))
	source := snow.NewIncidentSource(client, seededGenerator(15), diag)

	started := time.Now()
	records := source.Incidents(context.Background(), model.Filter{})
	elapsed := time.Since(started)

	gt.Equal(t, len(records), snow.SyntheticIncidentCount)
	gt.Equal(t, diag.last(t).path, types.DataPathMock)
	gt.True(t, elapsed >= 50*time.Millisecond)
	gt.True(t, elapsed < 500*time.Millisecond)
}

func TestFetchNeverExceedsRecordCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Remote misbehaves and ignores sysparm_limit
		_, _ = w.Write([]byte(incidentJSON(505)))
	}))
	defer server.Close()

	diag := &diagRecorder{}
	source := snow.NewIncidentSource(snow.NewClient(server.URL, ""), seededGenerator(16), diag)

	records := source.Incidents(context.Background(), model.Filter{Limit: 500})
	gt.Equal(t, len(records), 500)
}

func TestSLASourceBreachesIsPostProcessing(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		gt.Equal(t, r.URL.Path, "/api/now/table/task_sla")
		_, _ = w.Write([]byte(`{"result":[
			{"sys_id":"s1","has_breached":"true","sla":"Resolution (72h)"},
			{"sys_id":"s2","has_breached":"false","sla":"Resolution (72h)"},
			{"sys_id":"s3","has_breached":"true","sla":"Response (30m)"}
		]}`))
	}))
	defer server.Close()

	diag := &diagRecorder{}
	source := snow.NewSLASource(snow.NewClient(server.URL, ""), seededGenerator(17), diag)

	breaches := source.Breaches(context.Background(), model.Filter{})

	gt.Equal(t, len(breaches), 2)
	gt.Equal(t, fetches.Load(), int32(1))
}

func TestChangeSourceTypeBreakdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/api/now/table/change_request")
		_, _ = w.Write([]byte(`{"result":[
			{"sys_id":"c1","type":"Normal","state":"Completed"},
			{"sys_id":"c2","type":"Normal","state":"New"},
			{"sys_id":"c3","type":"Emergency","state":"Failed"},
			{"sys_id":"c4","state":"New"}
		]}`))
	}))
	defer server.Close()

	diag := &diagRecorder{}
	source := snow.NewChangeSource(snow.NewClient(server.URL, ""), seededGenerator(18), diag)

	breakdown := source.TypeBreakdown(context.Background(), model.Filter{})

	gt.Equal(t, breakdown["Normal"], 3) // missing type defaults to Normal
	gt.Equal(t, breakdown["Emergency"], 1)
}

func TestConcurrentFallbackSharesOneGenerator(t *testing.T) {
	// Production wiring: one generator behind all three sources. With
	// the remote unreachable, every concurrent accessor call resolves
	// through the fallback at the same time.
	client := snow.NewClient("http://localhost:1", "", snow.WithTimeout(time.Second))
	gen := seededGenerator(19)
	diag := &diagRecorder{}

	incidents := snow.NewIncidentSource(client, gen, diag)
	changes := snow.NewChangeSource(client, gen, diag)
	sla := snow.NewSLASource(client, gen, diag)

	var (
		all, open, resolved []model.Record
		chg, slaRecs        []model.Record
	)
	async.Batch(context.Background(),
		func(ctx context.Context) { all = incidents.Incidents(ctx, model.Filter{}) },
		func(ctx context.Context) { open = incidents.OpenIncidents(ctx, model.Filter{}) },
		func(ctx context.Context) { resolved = incidents.ResolvedIncidents(ctx, model.Filter{}) },
		func(ctx context.Context) { chg = changes.Changes(ctx, model.Filter{}) },
		func(ctx context.Context) { slaRecs = sla.Records(ctx, model.Filter{}) },
	)

	gt.Equal(t, len(all), snow.SyntheticIncidentCount)
	gt.Equal(t, len(open), snow.SyntheticIncidentCount)
	gt.Equal(t, len(resolved), snow.SyntheticIncidentCount)
	gt.Equal(t, len(chg), snow.SyntheticChangeCount)
	gt.Equal(t, len(slaRecs), snow.SyntheticSLACount)

	for _, rec := range all {
		p := types.ParsePriority(rec.Value(model.FieldPriority))
		gt.True(t, p.IsValid())
	}
}
