package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/cli/config"
	controller "github.com/opslens/opslens/pkg/controller/http"
	"github.com/opslens/opslens/pkg/service/diag"
	"github.com/opslens/opslens/pkg/service/snow"
	"github.com/opslens/opslens/pkg/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		snowCfg      config.ServiceNow
		analyticsCfg config.Analytics
	)

	flags := joinFlags(
		serverCfg.Flags(),
		snowCfg.Flags(),
		analyticsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting opslens server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("servicenow", snowCfg),
				slog.Any("analytics", analyticsCfg),
			)

			client, err := snowCfg.Configure()
			if err != nil {
				return err
			}

			buckets, err := analyticsCfg.ConfigureBuckets()
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			diagSvc := diag.New(registry)
			gen := snow.NewGenerator()

			incidentUC := usecase.NewIncidentMetrics(snow.NewIncidentSource(client, gen, diagSvc), buckets)
			changeUC := usecase.NewChangeMetrics(snow.NewChangeSource(client, gen, diagSvc))
			slaUC := usecase.NewSLAMetrics(snow.NewSLASource(client, gen, diagSvc))
			dashboardUC := usecase.NewDashboard(incidentUC, changeUC, slaUC, diagSvc)

			server := controller.NewServer(
				ctx,
				serverCfg.Addr,
				&analyticsCfg,
				incidentUC,
				changeUC,
				slaUC,
				dashboardUC,
				registry,
			)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
