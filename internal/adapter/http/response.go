package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pulseboard/pulseboard/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeUseCaseError maps the error taxonomy onto HTTP responses: missing
// credentials and unparseable completions are 500, upstream failures
// propagate the collaborator's status, anything else is a generic 500.
// Upstream bodies are never echoed; callers get a short status-coded message.
func writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCredentialsMissing):
		writeError(w, http.StatusInternalServerError, "service credentials not configured")
	case errors.Is(err, domain.ErrUnparseableCompletion):
		writeError(w, http.StatusInternalServerError, "failed to parse completion output")
	default:
		if status, ok := domain.UpstreamStatus(err); ok {
			writeError(w, status, "upstream service error")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
