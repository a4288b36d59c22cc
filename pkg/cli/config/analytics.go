package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Analytics holds aggregation configuration
type Analytics struct {
	RecordLimit int
	WindowDays  int
	BucketsPath string
}

// Flags returns CLI flags for Analytics configuration
func (a *Analytics) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "record-limit",
			Usage:       "Record cap per fetch (clamped 500-10000)",
			Category:    "Analytics",
			Value:       model.DefaultRecordLimit,
			Sources:     cli.EnvVars("OPSLENS_RECORD_LIMIT"),
			Destination: &a.RecordLimit,
		},
		&cli.IntFlag{
			Name:        "window-days",
			Usage:       "Default trailing date window in days",
			Category:    "Analytics",
			Value:       model.DefaultWindowDays,
			Sources:     cli.EnvVars("OPSLENS_WINDOW_DAYS"),
			Destination: &a.WindowDays,
		},
		&cli.StringFlag{
			Name:        "histogram-buckets",
			Usage:       "Path to a YAML file defining age histogram buckets",
			Category:    "Analytics",
			Sources:     cli.EnvVars("OPSLENS_HISTOGRAM_BUCKETS"),
			Destination: &a.BucketsPath,
		},
	}
}

// ConfigureBuckets loads the histogram bucket layout, or the built-in
// default when no file is configured
func (a *Analytics) ConfigureBuckets() ([]model.Bucket, error) {
	if a.BucketsPath == "" {
		return model.DefaultAgeBuckets(), nil
	}

	cfg, err := model.LoadHistogramConfig(a.BucketsPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure histogram buckets")
	}
	return cfg.ToBuckets(), nil
}

// LogValue returns structured log value
func (a Analytics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("recordLimit", a.RecordLimit),
		slog.Int("windowDays", a.WindowDays),
		slog.String("bucketsPath", a.BucketsPath),
	)
}
