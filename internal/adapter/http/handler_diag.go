package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pulseboard/pulseboard/internal/ports"
)

// DiagnosticsHandler reports integration configuration status and verifies
// tracker connectivity. It exposes presence booleans only, never credential
// values.
type DiagnosticsHandler struct {
	tracker              ports.TrackerGateway
	trackerBaseURL       string
	trackerConfigured    bool
	messengerConfigured  bool
	completionConfigured bool
}

// NewDiagnosticsHandler creates a new diagnostics handler
func NewDiagnosticsHandler(tracker ports.TrackerGateway, trackerBaseURL string, trackerConfigured, messengerConfigured, completionConfigured bool) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		tracker:              tracker,
		trackerBaseURL:       trackerBaseURL,
		trackerConfigured:    trackerConfigured,
		messengerConfigured:  messengerConfigured,
		completionConfigured: completionConfigured,
	}
}

// RegisterRoutes registers diagnostics routes
func (h *DiagnosticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/tracker/diagnostics", h.GetDiagnostics).Methods("GET")
}

// GetDiagnostics reports which integrations are configured and whether the
// tracker credentials actually authenticate.
func (h *DiagnosticsHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	tracker := map[string]interface{}{
		"configured": h.trackerConfigured,
		"baseUrl":    h.trackerBaseURL,
		"connected":  false,
	}
	if h.trackerConfigured {
		if user, err := h.tracker.Myself(r.Context()); err != nil {
			tracker["error"] = err.Error()
		} else {
			tracker["connected"] = true
			tracker["account"] = user.DisplayName
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracker":    tracker,
		"messenger":  map[string]interface{}{"configured": h.messengerConfigured},
		"completion": map[string]interface{}{"configured": h.completionConfigured},
	})
}
