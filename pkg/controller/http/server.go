package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/opslens/opslens/pkg/cli/config"
	"github.com/opslens/opslens/pkg/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server serving the derived metric shapes
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server. Every /api/metrics endpoint
// returns a normally-shaped payload even when the remote system is
// down; a non-2xx status only ever signals a calculator failure.
func NewServer(
	ctx context.Context,
	addr string,
	analyticsCfg *config.Analytics,
	incidentUC *usecase.IncidentMetricsUC,
	changeUC *usecase.ChangeMetricsUC,
	slaUC *usecase.SLAMetricsUC,
	dashboardUC *usecase.DashboardUC,
	registry *prometheus.Registry,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	handler := NewMetricsHandler(analyticsCfg, incidentUC, changeUC, slaUC, dashboardUC)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Route("/api/metrics", func(r chi.Router) {
		r.Get("/overview", handler.HandleOverview)
		r.Get("/incidents", handler.HandleIncidents)
		r.Get("/changes", handler.HandleChanges)
		r.Get("/sla", handler.HandleSLA)
	})

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}
}

// Router exposes the chi router for tests
func (s *Server) Router() chi.Router {
	return s.router
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
