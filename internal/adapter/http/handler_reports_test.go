package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/ports"
)

func TestTranscriptActionsEndpoint(t *testing.T) {
	srv, deps := newTestServer(t)

	deps.completion.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"task": "Review PR", "assignee": "Ana", "priority": "high"}]`, nil)

	resp, err := http.Post(srv.URL+"/api/v1/transcript/actions", "application/json",
		strings.NewReader(`{"transcript": "Ana said she would review the PR."}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		ActionItems []domain.ActionItem `json:"actionItems"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.ActionItems, 1)
	assert.Equal(t, "Review PR", body.ActionItems[0].Task)
}

func TestTranscriptActionsEndpoint_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{`{}`, `{"transcript": "  "}`, `nope`} {
		resp, err := http.Post(srv.URL+"/api/v1/transcript/actions", "application/json",
			strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
}

func TestTranscriptActionsEndpoint_UnparseableCompletion(t *testing.T) {
	srv, deps := newTestServer(t)

	deps.completion.On("Complete", mock.Anything, mock.Anything).
		Return("no structure here, sorry", nil)

	resp, err := http.Post(srv.URL+"/api/v1/transcript/actions", "application/json",
		strings.NewReader(`{"transcript": "mumbling"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "failed to parse completion output", body.Error)
}

const wbrCompletion = `{"title": "Weekly Review", "overview": "Solid week.", "projectUpdates": [], "upcomingPriorities": []}`

func TestWBREndpoint_JSONInput(t *testing.T) {
	srv, deps := newTestServer(t)

	deps.completion.On("Complete", mock.Anything, mock.MatchedBy(func(req ports.CompletionRequest) bool {
		return strings.Contains(req.Prompt, "shipped the importer")
	})).Return(wbrCompletion, nil)

	resp, err := http.Post(srv.URL+"/api/v1/reports/wbr", "application/json",
		strings.NewReader(`{"text": "This week we shipped the importer."}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var doc domain.WBRDocument
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Weekly Review", doc.Title)
}

func TestWBREndpoint_MultipartInput(t *testing.T) {
	srv, deps := newTestServer(t)

	deps.completion.On("Complete", mock.Anything, mock.MatchedBy(func(req ports.CompletionRequest) bool {
		// Both files land in the prompt, each under its filename header.
		return strings.Contains(req.Prompt, "=== monday.txt ===") &&
			strings.Contains(req.Prompt, "standup notes") &&
			strings.Contains(req.Prompt, "=== friday.txt ===") &&
			strings.Contains(req.Prompt, "demo recap")
	})).Return(wbrCompletion, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range map[string]string{
		"monday.txt": "standup notes",
		"friday.txt": "demo recap",
	} {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	resp, err := http.Post(srv.URL+"/api/v1/reports/wbr", writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	deps.completion.AssertExpectations(t)
}

func TestWBREndpoint_EmptyInput(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/reports/wbr", "application/json",
		strings.NewReader(`{"text": ""}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
