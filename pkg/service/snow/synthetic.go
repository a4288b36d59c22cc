package snow

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
)

// Synthetic record counts per entity. These are fixed: the fallback
// set is sized to keep downstream statistics meaningful, not to match
// the remote volume.
const (
	SyntheticIncidentCount = 35
	SyntheticChangeCount   = 25
	SyntheticSLACount      = 40
)

// Generator produces plausible synthetic records when the remote
// system is unreachable. This is load-bearing fallback behavior, not a
// test fixture: values stay inside real domain ranges (priorities 1-4,
// valid state labels, positive resolution offsets) so statistics over
// a synthetic set remain meaningful.
//
// The random source is injectable for reproducible tests; production
// construction is time-seeded and intentionally non-deterministic.
//
// One Generator is shared by all sources, and concurrent accessor
// calls can fall back at the same time, so the random source is
// guarded by a mutex: *rand.Rand is not goroutine-safe.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator creates a time-seeded Generator
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewGeneratorWithSource creates a Generator with an injected random
// source and clock
func NewGeneratorWithSource(rnd *rand.Rand, now func() time.Time) *Generator {
	return &Generator{rnd: rnd, now: now}
}

var (
	syntheticCategories  = []string{"network", "hardware", "software", "database", "inquiry"}
	syntheticAssignees   = []string{"Ines Delgado", "Marcus Webb", "Priya Nair", "Tomas Eriksen", "Aya Tanaka", ""}
	syntheticGroups      = []string{"Service Desk", "Network Operations", "Platform Engineering", "Database Team"}
	syntheticSLANames    = []string{"Priority 1 resolution (8h)", "Priority 2 resolution (24h)", "Response (30m)", "Resolution (72h)"}
	syntheticIncidents   = []string{"Email delivery delayed", "VPN connection drops", "Disk usage alert", "Application timeout", "Login failures reported"}
	syntheticChangeDescs = []string{"Patch application servers", "Rotate TLS certificates", "Upgrade database cluster", "Firewall rule change", "Decommission legacy host"}
)

func (g *Generator) pick(values []string) string {
	return values[g.rnd.Intn(len(values))]
}

// createdWithin returns a creation time uniformly inside the trailing
// window
func (g *Generator) createdWithin(days int) time.Time {
	offset := time.Duration(g.rnd.Int63n(int64(days) * int64(24*time.Hour)))
	return g.now().UTC().Add(-offset)
}

func priorityDisplay(p types.Priority) string {
	switch p {
	case types.PriorityCritical:
		return "1 - Critical"
	case types.PriorityHigh:
		return "2 - High"
	case types.PriorityModerate:
		return "3 - Moderate"
	default:
		return "4 - Low"
	}
}

func (g *Generator) incident(i int, state types.IncidentState) model.Record {
	p := types.Priority(1 + g.rnd.Intn(4))
	created := g.createdWithin(model.DefaultWindowDays)

	rec := model.Record{
		model.FieldSysID:            model.NewScalar(uuid.NewString()),
		model.FieldNumber:           model.NewScalar(fmt.Sprintf("INC%07d", 10000+i)),
		model.FieldShortDescription: model.NewScalar(g.pick(syntheticIncidents)),
		model.FieldPriority:         model.NewDisplay(priorityDisplay(p), fmt.Sprintf("%d", p)),
		model.FieldState:            model.NewDisplay(state.String(), state.String()),
		model.FieldCategory:         model.NewScalar(g.pick(syntheticCategories)),
		model.FieldAssignedTo:       model.NewScalar(g.pick(syntheticAssignees)),
		model.FieldCreatedOn:        model.NewScalar(created.Format("2006-01-02 15:04:05")),
	}

	if !state.IsOpen() {
		// Resolution strictly after creation, 30 minutes to 72 hours out
		offset := 30*time.Minute + time.Duration(g.rnd.Int63n(int64(72*time.Hour-30*time.Minute)))
		rec[model.FieldResolvedAt] = model.NewScalar(created.Add(offset).Format("2006-01-02 15:04:05"))
	}

	return rec
}

// Incidents generates the synthetic incident set, a mix of open and
// closed lifecycle states
func (g *Generator) Incidents() []model.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	states := types.IncidentStates()
	out := make([]model.Record, 0, SyntheticIncidentCount)
	for i := 0; i < SyntheticIncidentCount; i++ {
		out = append(out, g.incident(i, states[g.rnd.Intn(len(states))]))
	}
	return out
}

// OpenIncidents generates the synthetic incident set restricted to
// open lifecycle states, matching what an active-state query returns
func (g *Generator) OpenIncidents() []model.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	open := []types.IncidentState{
		types.IncidentStateNew,
		types.IncidentStateInProgress,
		types.IncidentStateOnHold,
	}
	out := make([]model.Record, 0, SyntheticIncidentCount)
	for i := 0; i < SyntheticIncidentCount; i++ {
		out = append(out, g.incident(i, open[g.rnd.Intn(len(open))]))
	}
	return out
}

// ResolvedIncidents generates the synthetic incident set restricted to
// resolved states; every record carries a resolution timestamp after
// its creation
func (g *Generator) ResolvedIncidents() []model.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	resolved := []types.IncidentState{
		types.IncidentStateResolved,
		types.IncidentStateClosed,
	}
	out := make([]model.Record, 0, SyntheticIncidentCount)
	for i := 0; i < SyntheticIncidentCount; i++ {
		out = append(out, g.incident(i, resolved[g.rnd.Intn(len(resolved))]))
	}
	return out
}

// Changes generates the synthetic change-request set
func (g *Generator) Changes() []model.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	states := []types.ChangeState{
		types.ChangeStateNew,
		types.ChangeStateAssess,
		types.ChangeStateScheduled,
		types.ChangeStateCompleted,
		types.ChangeStateCompleted,
		types.ChangeStateCompleted,
		types.ChangeStateFailed,
	}
	changeTypes := types.ChangeTypes()

	out := make([]model.Record, 0, SyntheticChangeCount)
	for i := 0; i < SyntheticChangeCount; i++ {
		state := states[g.rnd.Intn(len(states))]
		out = append(out, model.Record{
			model.FieldSysID:       model.NewScalar(uuid.NewString()),
			model.FieldNumber:      model.NewScalar(fmt.Sprintf("CHG%07d", 30000+i)),
			model.FieldDescription: model.NewScalar(g.pick(syntheticChangeDescs)),
			model.FieldState:       model.NewDisplay(state.String(), state.String()),
			model.FieldChangeType:  model.NewScalar(changeTypes[g.rnd.Intn(len(changeTypes))].String()),
			model.FieldAssignedTo:  model.NewScalar(g.pick(syntheticAssignees)),
			model.FieldCreatedOn:   model.NewScalar(g.createdWithin(model.DefaultWindowDays).Format("2006-01-02 15:04:05")),
		})
	}
	return out
}

// SLARecords generates the synthetic SLA-tracking set with a breach
// rate around 15% and percentage-elapsed coherent with the flag
func (g *Generator) SLARecords() []model.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Record, 0, SyntheticSLACount)
	for i := 0; i < SyntheticSLACount; i++ {
		breached := g.rnd.Float64() < 0.15

		stage := types.SLAStageInProgress
		pct := g.rnd.Float64() * 95
		if breached {
			stage = types.SLAStageBreached
			pct = 100 + g.rnd.Float64()*80
		} else if g.rnd.Float64() < 0.5 {
			stage = types.SLAStageCompleted
		}

		out = append(out, model.Record{
			model.FieldSysID:         model.NewScalar(uuid.NewString()),
			model.FieldTask:          model.NewScalar(fmt.Sprintf("INC%07d", 10000+g.rnd.Intn(2000))),
			model.FieldSLADefinition: model.NewScalar(g.pick(syntheticSLANames)),
			model.FieldStage:         model.NewScalar(stage.String()),
			model.FieldHasBreached:   model.NewScalar(fmt.Sprintf("%t", breached)),
			model.FieldPercentage:    model.NewScalar(fmt.Sprintf("%.2f", pct)),
			model.FieldCreatedOn:     model.NewScalar(g.createdWithin(model.DefaultWindowDays).Format("2006-01-02 15:04:05")),
		})
	}
	return out
}
