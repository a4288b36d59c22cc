package usecase

import (
	"context"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
)

// SLAMetricsUC derives SLA compliance metrics from fetched records
type SLAMetricsUC struct {
	source interfaces.SLASource
}

// NewSLAMetrics creates an SLAMetricsUC
func NewSLAMetrics(source interfaces.SLASource) *SLAMetricsUC {
	return &SLAMetricsUC{source: source}
}

// ComplianceFromRecords computes the compliance summary from one
// record batch, so numerator and denominator describe the same
// snapshot. An empty batch yields the fixed insufficient-data
// placeholder, never a division by zero.
func ComplianceFromRecords(records []model.Record) model.ComplianceMetrics {
	total := len(records)
	if total == 0 {
		return model.InsufficientCompliance()
	}

	var breached int
	for _, rec := range records {
		if rec.Bool(model.FieldHasBreached) {
			breached++
		}
	}

	compliant := total - breached
	rate := math.Round(float64(compliant)/float64(total)*10000) / 100

	return model.ComplianceMetrics{
		Rate:      rate,
		Total:     total,
		Breached:  breached,
		Compliant: compliant,
	}
}

// Compliance fetches SLA-tracking records once and computes the
// compliance summary
func (uc *SLAMetricsUC) Compliance(ctx context.Context, f model.Filter) (model.ComplianceMetrics, error) {
	if err := f.Validate(); err != nil {
		return model.ComplianceMetrics{}, goerr.Wrap(err, "compliance: invalid filter")
	}
	return ComplianceFromRecords(uc.source.Records(ctx, f)), nil
}
