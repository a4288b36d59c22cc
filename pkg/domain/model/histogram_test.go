package model_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opslens/opslens/pkg/domain/model"
)

func TestHistogramConfigValidate(t *testing.T) {
	maxOf := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		buckets []struct {
			label string
			min   float64
			max   *float64
		}
		wantErr bool
	}{
		{
			name: "valid layout",
			buckets: []struct {
				label string
				min   float64
				max   *float64
			}{
				{"fast", 0, maxOf(4)},
				{"slow", 4, maxOf(24)},
				{"stalled", 24, nil},
			},
		},
		{
			name: "final bucket must be unbounded",
			buckets: []struct {
				label string
				min   float64
				max   *float64
			}{
				{"fast", 0, maxOf(4)},
				{"slow", 4, maxOf(24)},
			},
			wantErr: true,
		},
		{
			name: "overlapping ranges rejected",
			buckets: []struct {
				label string
				min   float64
				max   *float64
			}{
				{"a", 0, maxOf(10)},
				{"b", 5, nil},
			},
			wantErr: true,
		},
		{
			name: "duplicate labels rejected",
			buckets: []struct {
				label string
				min   float64
				max   *float64
			}{
				{"a", 0, maxOf(10)},
				{"a", 10, nil},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg model.HistogramConfig
			for _, b := range tt.buckets {
				cfg.Buckets = append(cfg.Buckets, model.BucketSpec{Label: b.label, Min: b.min, Max: b.max})
			}

			err := cfg.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestLoadHistogramConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buckets.yml")
	content := []byte(`buckets:
  - label: fresh
    min: 0
    max: 8
  - label: aging
    min: 8
    max: 48
  - label: stale
    min: 48
`)
	gt.NoError(t, os.WriteFile(path, content, 0600))

	cfg, err := model.LoadHistogramConfig(path)
	gt.NoError(t, err)

	buckets := cfg.ToBuckets()
	gt.Equal(t, len(buckets), 3)
	gt.Equal(t, buckets[0].Label, "fresh")
	gt.Equal(t, buckets[2].Min, 48.0)
	gt.True(t, math.IsInf(buckets[2].Max, 1))
}

func TestLoadHistogramConfigErrors(t *testing.T) {
	_, err := model.LoadHistogramConfig("/nonexistent/buckets.yml")
	gt.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	gt.NoError(t, os.WriteFile(path, []byte("buckets: [{label: only, min: 0, max: 5}]"), 0600))

	_, err = model.LoadHistogramConfig(path)
	gt.Error(t, err)
}

func TestDefaultAgeBuckets(t *testing.T) {
	buckets := model.DefaultAgeBuckets()
	gt.Equal(t, len(buckets), 4)

	last := buckets[len(buckets)-1]
	gt.True(t, math.IsInf(last.Max, 1))

	// Contiguous coverage from zero
	gt.Equal(t, buckets[0].Min, 0.0)
	for i := 1; i < len(buckets); i++ {
		gt.Equal(t, buckets[i].Min, buckets[i-1].Max)
	}
}
