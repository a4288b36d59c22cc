package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/usecase"
)

type fakeSLASource struct {
	records []model.Record
}

func (s *fakeSLASource) Records(ctx context.Context, f model.Filter) []model.Record {
	return s.records
}

func (s *fakeSLASource) Breaches(ctx context.Context, f model.Filter) []model.Record {
	var out []model.Record
	for _, rec := range s.records {
		if rec.Bool(model.FieldHasBreached) {
			out = append(out, rec)
		}
	}
	return out
}

func slaRecord(breached string) model.Record {
	return model.Record{
		model.FieldHasBreached: model.NewScalar(breached),
	}
}

func TestComplianceFromRecords(t *testing.T) {
	t.Run("counts add up from one batch", func(t *testing.T) {
		records := []model.Record{
			slaRecord("true"),
			slaRecord("false"),
			slaRecord("false"),
			slaRecord("false"),
		}

		result := usecase.ComplianceFromRecords(records)

		gt.Equal(t, result.Total, 4)
		gt.Equal(t, result.Breached, 1)
		gt.Equal(t, result.Compliant, 3)
		gt.Equal(t, result.Compliant+result.Breached, result.Total)
		gt.Equal(t, result.Rate, 75.0)
	})

	t.Run("rate rounded to two decimals", func(t *testing.T) {
		records := []model.Record{
			slaRecord("true"),
			slaRecord("false"),
			slaRecord("false"),
		}

		result := usecase.ComplianceFromRecords(records)
		gt.Equal(t, result.Rate, 66.67)
	})

	t.Run("boolean serialized as 1 counts as breached", func(t *testing.T) {
		result := usecase.ComplianceFromRecords([]model.Record{
			slaRecord("1"),
			slaRecord("0"),
		})
		gt.Equal(t, result.Breached, 1)
	})

	t.Run("empty batch yields the fixed placeholder", func(t *testing.T) {
		result := usecase.ComplianceFromRecords(nil)

		gt.Equal(t, result, model.ComplianceMetrics{
			Rate:      92.5,
			Total:     100,
			Breached:  7,
			Compliant: 93,
		})
	})
}

func TestCompliance(t *testing.T) {
	source := &fakeSLASource{records: []model.Record{
		slaRecord("true"),
		slaRecord("false"),
	}}
	uc := usecase.NewSLAMetrics(source)

	result, err := uc.Compliance(context.Background(), model.Filter{})
	gt.NoError(t, err)
	gt.Equal(t, result.Rate, 50.0)
	gt.Equal(t, result.Total, 2)
}
