package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pulseboard/pulseboard/internal/ports"
)

// MessengerHandler handles HTTP requests for messenger destinations and
// message delivery
type MessengerHandler struct {
	messenger ports.Messenger
}

// NewMessengerHandler creates a new messenger handler
func NewMessengerHandler(messenger ports.Messenger) *MessengerHandler {
	return &MessengerHandler{messenger: messenger}
}

// RegisterRoutes registers messenger routes
func (h *MessengerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/messenger/destinations", h.SearchDestinations).Methods("GET")
	router.HandleFunc("/api/v1/messenger/messages", h.PostMessage).Methods("POST")
}

// SearchDestinations lists channels and users matching the query, channels
// first.
func (h *MessengerHandler) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.messenger.SearchDestinations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"destinations": destinations})
}

// PostMessage delivers a message to a channel or user.
func (h *MessengerHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelID string `json:"channelId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ChannelID) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "channelId and message are required")
		return
	}

	receipt, err := h.messenger.PostMessage(r.Context(), req.ChannelID, req.Message)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"channel": receipt.Channel,
		"ts":      receipt.Timestamp,
	})
}
