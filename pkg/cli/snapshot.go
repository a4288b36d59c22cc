package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/cli/config"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/service/diag"
	"github.com/opslens/opslens/pkg/service/snow"
	"github.com/opslens/opslens/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// cmdSnapshot computes one dashboard overview and prints it as JSON,
// without running a server
func cmdSnapshot() *cli.Command {
	var (
		snowCfg      config.ServiceNow
		analyticsCfg config.Analytics
	)

	flags := joinFlags(
		snowCfg.Flags(),
		analyticsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "snapshot",
		Usage: "Compute one metrics overview and print it as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := snowCfg.Configure()
			if err != nil {
				return err
			}

			buckets, err := analyticsCfg.ConfigureBuckets()
			if err != nil {
				return err
			}

			diagSvc := diag.Discard{}
			gen := snow.NewGenerator()

			incidentUC := usecase.NewIncidentMetrics(snow.NewIncidentSource(client, gen, diagSvc), buckets)
			changeUC := usecase.NewChangeMetrics(snow.NewChangeSource(client, gen, diagSvc))
			slaUC := usecase.NewSLAMetrics(snow.NewSLASource(client, gen, diagSvc))
			dashboardUC := usecase.NewDashboard(incidentUC, changeUC, slaUC, diagSvc)

			f := model.Filter{Limit: analyticsCfg.RecordLimit}
			if analyticsCfg.WindowDays > 0 {
				now := time.Now().UTC()
				f.End = now
				f.Start = now.AddDate(0, 0, -analyticsCfg.WindowDays)
			}

			overview, err := dashboardUC.Overview(ctx, f)
			if err != nil {
				return goerr.Wrap(err, "failed to compute overview")
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(overview); err != nil {
				return goerr.Wrap(err, "failed to encode overview")
			}

			return nil
		},
	}
}
