package usecase

import (
	"context"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
)

// ChangeMetricsUC derives change-request metrics from fetched records
type ChangeMetricsUC struct {
	source interfaces.ChangeSource
}

// NewChangeMetrics creates a ChangeMetricsUC
func NewChangeMetrics(source interfaces.ChangeSource) *ChangeMetricsUC {
	return &ChangeMetricsUC{source: source}
}

// SuccessFromRecords classifies terminal-state changes into a success
// rate. Only records that reached a verdict-bearing state are
// eligible; a set with no terminal records yields a zero rate.
func SuccessFromRecords(records []model.Record) model.SuccessMetrics {
	var terminal, successful int
	for _, rec := range records {
		state := types.ParseChangeState(rec.Display(model.FieldState))
		if !state.IsTerminal() {
			continue
		}
		terminal++
		if state.IsSuccess() {
			successful++
		}
	}

	var rate float64
	if terminal > 0 {
		rate = math.Round(float64(successful)/float64(terminal)*10000) / 100
	}

	return model.SuccessMetrics{Rate: rate, Total: terminal, Successful: successful}
}

// SuccessRate fetches changes and computes the terminal success rate
func (uc *ChangeMetricsUC) SuccessRate(ctx context.Context, f model.Filter) (model.SuccessMetrics, error) {
	if err := f.Validate(); err != nil {
		return model.SuccessMetrics{}, goerr.Wrap(err, "success rate: invalid filter")
	}
	return SuccessFromRecords(uc.source.Changes(ctx, f)), nil
}

// Summary assembles the change portion of a dashboard view from one
// fetched batch
func (uc *ChangeMetricsUC) Summary(ctx context.Context, f model.Filter) (model.ChangeMetrics, error) {
	if err := f.Validate(); err != nil {
		return model.ChangeMetrics{}, goerr.Wrap(err, "change summary: invalid filter")
	}

	records := uc.source.Changes(ctx, f)

	breakdown := make(map[string]int)
	for _, rec := range records {
		t := rec.Display(model.FieldChangeType)
		if t == "" {
			t = types.ChangeTypeNormal.String()
		}
		breakdown[t]++
	}

	return model.ChangeMetrics{
		Success:       SuccessFromRecords(records),
		TypeBreakdown: breakdown,
		Total:         len(records),
	}, nil
}
