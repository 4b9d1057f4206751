// Package slack implements the messenger gateway against the Slack Web API.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/ports"
)

const (
	listLimit      = 500
	maxPerCategory = 15

	defaultBaseURL = "https://slack.com/api"
)

// Client talks to a Slack-compatible messaging API with a bot token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a messenger client.
func NewClient(token string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake API.
func NewClientWithBaseURL(baseURL, token string, timeout time.Duration, log logger.Logger) *Client {
	c := NewClient(token, timeout, log)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type channelRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsChannel bool   `json:"is_channel"`
	IsPrivate bool   `json:"is_private"`
}

type userRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RealName  string `json:"real_name"`
	Deleted   bool   `json:"deleted"`
	IsBot     bool   `json:"is_bot"`
	IsAppUser bool   `json:"is_app_user"`
	Profile   struct {
		DisplayName string `json:"display_name"`
		RealName    string `json:"real_name"`
	} `json:"profile"`
}

// SearchDestinations lists public channels and active human users matching
// query. Either listing failing is tolerated: the other category is still
// returned, because destination search is a best-effort picker, not a
// primary data source.
func (c *Client) SearchDestinations(ctx context.Context, query string) ([]ports.Destination, error) {
	if c.token == "" {
		return nil, domain.ErrCredentialsMissing
	}

	var results []ports.Destination
	query = strings.ToLower(query)

	channels, err := c.listChannels(ctx)
	if err != nil {
		c.log.Warn(ctx, "channel listing failed", map[string]interface{}{"error": err.Error()})
	}
	matched := 0
	for _, ch := range channels {
		if matched >= maxPerCategory {
			break
		}
		if query != "" && !strings.Contains(strings.ToLower(ch.Name), query) {
			continue
		}
		results = append(results, ports.Destination{
			ID:   ch.ID,
			Name: "#" + ch.Name,
			Type: ports.DestinationChannel,
		})
		matched++
	}

	users, err := c.listUsers(ctx)
	if err != nil {
		c.log.Warn(ctx, "user listing failed", map[string]interface{}{"error": err.Error()})
	}
	matched = 0
	for _, u := range users {
		if matched >= maxPerCategory {
			break
		}
		if !isHumanMember(u) || !userMatches(u, query) {
			continue
		}
		name := u.Profile.DisplayName
		if name == "" {
			name = u.RealName
		}
		if name == "" {
			name = u.Name
		}
		results = append(results, ports.Destination{
			ID:   u.ID,
			Name: "@" + name,
			Type: ports.DestinationUser,
		})
		matched++
	}

	// Channels first, then users, alphabetical within each group.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Type != results[j].Type {
			return results[i].Type == ports.DestinationChannel
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// PostMessage delivers text to a channel or user ID via chat.postMessage.
// An ok:false API response surfaces the platform's error token as a 400-class
// upstream error.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) (*ports.PostReceipt, error) {
	if c.token == "" {
		return nil, domain.ErrCredentialsMissing
	}

	payload, err := json.Marshal(map[string]string{
		"channel": channelID,
		"text":    text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messenger post call: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK      bool   `json:"ok"`
		Error   string `json:"error"`
		Channel string `json:"channel"`
		TS      string `json:"ts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode post response: %w", err)
	}
	if !result.OK {
		c.log.Error(ctx, "messenger rejected message", nil, map[string]interface{}{
			"channel": channelID,
			"error":   result.Error,
		})
		return nil, domain.NewUpstreamError("messenger", http.StatusBadRequest, result.Error)
	}
	return &ports.PostReceipt{Channel: result.Channel, Timestamp: result.TS}, nil
}

func (c *Client) listChannels(ctx context.Context) ([]channelRecord, error) {
	var result struct {
		OK       bool            `json:"ok"`
		Error    string          `json:"error"`
		Channels []channelRecord `json:"channels"`
	}
	url := fmt.Sprintf("%s/conversations.list?types=public_channel&exclude_archived=true&limit=%d", c.baseURL, listLimit)
	if err := c.get(ctx, url, &result); err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, domain.NewUpstreamError("messenger", http.StatusBadGateway, result.Error)
	}
	return result.Channels, nil
}

func (c *Client) listUsers(ctx context.Context) ([]userRecord, error) {
	var result struct {
		OK      bool         `json:"ok"`
		Error   string       `json:"error"`
		Members []userRecord `json:"members"`
	}
	url := fmt.Sprintf("%s/users.list?limit=%d", c.baseURL, listLimit)
	if err := c.get(ctx, url, &result); err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, domain.NewUpstreamError("messenger", http.StatusBadGateway, result.Error)
	}
	return result.Members, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messenger call: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode messenger response: %w", err)
	}
	return nil
}

func isHumanMember(u userRecord) bool {
	if u.Deleted || u.IsBot || u.IsAppUser {
		return false
	}
	return u.Name != "slackbot"
}

func userMatches(u userRecord, query string) bool {
	if query == "" {
		return true
	}
	for _, candidate := range []string{u.Profile.DisplayName, u.RealName, u.Profile.RealName, u.Name} {
		if strings.Contains(strings.ToLower(candidate), query) {
			return true
		}
	}
	return false
}
