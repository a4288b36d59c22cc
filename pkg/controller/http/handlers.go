package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/opslens/opslens/pkg/cli/config"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
	"github.com/opslens/opslens/pkg/usecase"
)

// MetricsHandler serves the derived metric shapes as JSON
type MetricsHandler struct {
	analyticsCfg *config.Analytics
	incidentUC   *usecase.IncidentMetricsUC
	changeUC     *usecase.ChangeMetricsUC
	slaUC        *usecase.SLAMetricsUC
	dashboardUC  *usecase.DashboardUC
}

// NewMetricsHandler creates a MetricsHandler
func NewMetricsHandler(
	analyticsCfg *config.Analytics,
	incidentUC *usecase.IncidentMetricsUC,
	changeUC *usecase.ChangeMetricsUC,
	slaUC *usecase.SLAMetricsUC,
	dashboardUC *usecase.DashboardUC,
) *MetricsHandler {
	return &MetricsHandler{
		analyticsCfg: analyticsCfg,
		incidentUC:   incidentUC,
		changeUC:     changeUC,
		slaUC:        slaUC,
		dashboardUC:  dashboardUC,
	}
}

// parseFilter builds a filter from query parameters, falling back to
// the configured defaults. Dates use YYYY-MM-DD.
func (h *MetricsHandler) parseFilter(r *http.Request) model.Filter {
	q := r.URL.Query()

	f := model.Filter{
		Priority:        q.Get("priority"),
		Category:        q.Get("category"),
		AssignmentGroup: q.Get("group"),
		SLAType:         q.Get("sla_type"),
		Limit:           h.analyticsCfg.RecordLimit,
	}

	if v := q.Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.Start = t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.End = t
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}

	// Configured trailing window applies only when the request names
	// no dates at all
	if f.Start.IsZero() && f.End.IsZero() && h.analyticsCfg.WindowDays > 0 {
		now := time.Now().UTC()
		f.End = now
		f.Start = now.AddDate(0, 0, -h.analyticsCfg.WindowDays)
	}

	return f
}

func respondJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// respondError surfaces a calculator failure as an explicit error
// state, distinct from the data-unavailable case which never errors
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.From(r.Context()).Error("Metrics computation failed", "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "metrics computation failed"})
}

// HandleOverview serves the full dashboard payload
func (h *MetricsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardUC.Overview(r.Context(), h.parseFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, overview)
}

// HandleIncidents serves the incident metric group
func (h *MetricsHandler) HandleIncidents(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.incidentUC.Summary(r.Context(), h.parseFilter(r), types.IntervalWeek)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, metrics)
}

// HandleChanges serves the change metric group
func (h *MetricsHandler) HandleChanges(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.changeUC.Summary(r.Context(), h.parseFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, metrics)
}

// HandleSLA serves the SLA compliance metrics
func (h *MetricsHandler) HandleSLA(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.slaUC.Compliance(r.Context(), h.parseFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, metrics)
}
