package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pulseboard/pulseboard/internal/usecase"
)

// AnalyticsHandler handles HTTP requests for project analytics
type AnalyticsHandler struct {
	analytics      *usecase.AnalyticsUseCase
	defaultProject string
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics *usecase.AnalyticsUseCase, defaultProject string) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics:      analytics,
		defaultProject: defaultProject,
	}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/analytics", h.GetAnalytics).Methods("GET")
}

// GetAnalytics computes the metrics report for a project over a range
// keyword. Both parameters are optional: project falls back to the
// configured default, range to 30 days.
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	if project == "" {
		project = h.defaultProject
	}
	rangeKeyword := r.URL.Query().Get("range")
	if rangeKeyword == "" {
		rangeKeyword = "30d"
	}

	report, err := h.analytics.ComputeMetrics(r.Context(), project, rangeKeyword)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
