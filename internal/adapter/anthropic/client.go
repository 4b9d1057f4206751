// Package anthropic implements the completion-service gateway against the
// Anthropic messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/ports"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 1024
)

// Client calls the messages endpoint with a fixed model and returns the
// concatenated text content of the completion.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a completion client.
func NewClient(apiKey, model string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake API.
func NewClientWithBaseURL(baseURL, apiKey, model string, timeout time.Duration, log logger.Logger) *Client {
	c := NewClient(apiKey, model, timeout, log)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends a single-turn prompt and returns the completion text.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrCredentialsMissing
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  []message{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error(ctx, "completion request failed", nil, map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(excerpt),
		})
		return "", domain.NewUpstreamError("completion", resp.StatusCode, "completion request failed")
	}

	var result messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	var sb strings.Builder
	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
