package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pulseboard/pulseboard/internal/usecase"
)

const maxUploadBytes = 10 << 20

// ReportsHandler handles HTTP requests for transcript action extraction and
// weekly business review generation
type ReportsHandler struct {
	transcripts *usecase.TranscriptUseCase
	wbr         *usecase.WBRUseCase
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(transcripts *usecase.TranscriptUseCase, wbr *usecase.WBRUseCase) *ReportsHandler {
	return &ReportsHandler{transcripts: transcripts, wbr: wbr}
}

// RegisterRoutes registers report routes
func (h *ReportsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/transcript/actions", h.ExtractActionItems).Methods("POST")
	router.HandleFunc("/api/v1/reports/wbr", h.GenerateWBR).Methods("POST")
}

// ExtractActionItems turns a posted meeting transcript into action items.
func (h *ReportsHandler) ExtractActionItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	items, err := h.transcripts.ExtractActionItems(r.Context(), req.Transcript)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"actionItems": items})
}

// GenerateWBR builds a weekly business review document from input notes. The
// notes arrive either as JSON {"text": ...} or as a multipart upload of text
// files, which are concatenated with per-file headers.
func (h *ReportsHandler) GenerateWBR(w http.ResponseWriter, r *http.Request) {
	input, err := h.readWBRInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(input) == "" {
		writeError(w, http.StatusBadRequest, "text or files are required")
		return
	}

	doc, err := h.wbr.Generate(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *ReportsHandler) readWBRInput(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", fmt.Errorf("invalid multipart upload")
		}
		var parts []string
		for _, header := range r.MultipartForm.File["files"] {
			file, err := header.Open()
			if err != nil {
				return "", fmt.Errorf("could not read file %q", header.Filename)
			}
			content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
			file.Close()
			if err != nil {
				return "", fmt.Errorf("could not read file %q", header.Filename)
			}
			parts = append(parts, fmt.Sprintf("=== %s ===\n%s", header.Filename, content))
		}
		return strings.Join(parts, "\n\n"), nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("invalid request body")
	}
	return req.Text, nil
}
