package model

import (
	"math"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// HistogramConfig defines the labeled age buckets used for the
// incident age histogram. Buckets must be ordered, non-overlapping,
// and end with an unbounded range so no value is silently dropped.
type HistogramConfig struct {
	Buckets []BucketSpec `yaml:"buckets"`
}

// BucketSpec is one configured bucket; a nil Max means unbounded
type BucketSpec struct {
	Label string   `yaml:"label"`
	Min   float64  `yaml:"min"`
	Max   *float64 `yaml:"max"`
}

// Validate validates the bucket layout
func (c *HistogramConfig) Validate() error {
	if len(c.Buckets) == 0 {
		return goerr.New("at least one bucket is required")
	}

	labels := make(map[string]bool)
	prev := math.Inf(-1)
	for i, b := range c.Buckets {
		if b.Label == "" {
			return goerr.New("bucket label is required", goerr.V("index", i))
		}
		if labels[b.Label] {
			return goerr.New("duplicate bucket label", goerr.V("label", b.Label))
		}
		labels[b.Label] = true

		if b.Min < prev {
			return goerr.New("buckets overlap or are out of order",
				goerr.V("index", i),
				goerr.V("min", b.Min))
		}
		if b.Max != nil {
			if *b.Max <= b.Min {
				return goerr.New("bucket max must exceed min",
					goerr.V("label", b.Label))
			}
			prev = *b.Max
			continue
		}
		if i != len(c.Buckets)-1 {
			return goerr.New("only the final bucket may be unbounded",
				goerr.V("label", b.Label))
		}
		prev = math.Inf(1)
	}

	last := c.Buckets[len(c.Buckets)-1]
	if last.Max != nil {
		return goerr.New("final bucket must be unbounded")
	}

	return nil
}

// ToBuckets converts the configuration into histogram buckets
func (c *HistogramConfig) ToBuckets() []Bucket {
	out := make([]Bucket, 0, len(c.Buckets))
	for _, b := range c.Buckets {
		max := math.Inf(1)
		if b.Max != nil {
			max = *b.Max
		}
		out = append(out, Bucket{Label: b.Label, Min: b.Min, Max: max})
	}
	return out
}

// DefaultAgeBuckets is the built-in incident age histogram layout, in
// hours since creation
func DefaultAgeBuckets() []Bucket {
	return []Bucket{
		{Label: "0-4h", Min: 0, Max: 4},
		{Label: "4-8h", Min: 4, Max: 8},
		{Label: "8-16h", Min: 8, Max: 16},
		{Label: "16h+", Min: 16, Max: math.Inf(1)},
	}
}

// LoadHistogramConfig reads and validates a bucket layout from a YAML
// file
func LoadHistogramConfig(path string) (*HistogramConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read histogram config",
			goerr.V("path", path))
	}

	var cfg HistogramConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse histogram config",
			goerr.V("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid histogram config",
			goerr.V("path", path))
	}

	return &cfg, nil
}
