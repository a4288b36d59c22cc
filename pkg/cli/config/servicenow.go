package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/service/snow"
	"github.com/urfave/cli/v3"
)

// ServiceNow holds remote table-API configuration
type ServiceNow struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

// Flags returns CLI flags for ServiceNow configuration
func (s *ServiceNow) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "servicenow-url",
			Usage:       "Base URL of the ServiceNow instance",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("OPSLENS_SERVICENOW_URL"),
			Destination: &s.BaseURL,
		},
		&cli.StringFlag{
			Name:        "servicenow-token",
			Usage:       "Session token attached as bearer header",
			Category:    "ServiceNow",
			Sources:     cli.EnvVars("OPSLENS_SERVICENOW_TOKEN"),
			Destination: &s.Token,
		},
		&cli.IntFlag{
			Name:        "fetch-timeout",
			Usage:       "Per-fetch deadline in seconds",
			Category:    "ServiceNow",
			Value:       int(snow.DefaultFetchTimeout / time.Second),
			Sources:     cli.EnvVars("OPSLENS_FETCH_TIMEOUT"),
			Destination: &s.TimeoutSeconds,
		},
	}
}

// Validate validates the ServiceNow configuration. An empty base URL
// is allowed: every fetch then resolves through the synthetic fallback
// path, which keeps the service usable without a reachable instance.
func (s *ServiceNow) Validate() error {
	if s.TimeoutSeconds <= 0 {
		return goerr.New("fetch timeout must be positive",
			goerr.V("timeout", s.TimeoutSeconds))
	}
	return nil
}

// Configure creates the table API client
func (s *ServiceNow) Configure() (*snow.Client, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return snow.NewClient(s.BaseURL, s.Token,
		snow.WithTimeout(time.Duration(s.TimeoutSeconds)*time.Second),
	), nil
}

// LogValue returns structured log value; the token never appears in logs
func (s ServiceNow) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", s.BaseURL),
		slog.Bool("hasToken", s.Token != ""),
		slog.Int("timeoutSeconds", s.TimeoutSeconds),
	)
}
