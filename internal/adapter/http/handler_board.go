package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/usecase"
)

// BoardHandler handles HTTP requests for the active board, stale tickets and
// reminder fan-out
type BoardHandler struct {
	board          *usecase.BoardUseCase
	reminders      *usecase.ReminderUseCase
	defaultProject string
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(board *usecase.BoardUseCase, reminders *usecase.ReminderUseCase, defaultProject string) *BoardHandler {
	return &BoardHandler{
		board:          board,
		reminders:      reminders,
		defaultProject: defaultProject,
	}
}

// RegisterRoutes registers board routes
func (h *BoardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/board", h.GetBoard).Methods("GET")
	router.HandleFunc("/api/v1/board/stale", h.GetStaleTickets).Methods("GET")
	router.HandleFunc("/api/v1/reminders", h.SendReminders).Methods("POST")
}

// GetBoard returns the project's active board tickets.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.board.GetBoard(r.Context(), h.project(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

// GetStaleTickets returns board tickets idle beyond the staleness threshold.
func (h *BoardHandler) GetStaleTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.board.GetStaleTickets(r.Context(), h.project(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets})
}

// SendReminders sends one reminder DM per assignee for the posted stale
// tickets.
func (h *BoardHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tickets []domain.StaleTicket `json:"tickets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Tickets) == 0 {
		writeError(w, http.StatusBadRequest, "tickets are required")
		return
	}

	results, err := h.reminders.SendReminders(r.Context(), req.Tickets)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (h *BoardHandler) project(r *http.Request) string {
	if project := r.URL.Query().Get("project"); project != "" {
		return project
	}
	return h.defaultProject
}
