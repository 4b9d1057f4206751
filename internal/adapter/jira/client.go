// Package jira implements the tracker gateway against the Jira Cloud REST
// API (v3 JQL search). All queries are single bounded pages; the client never
// retries and never paginates.
package jira

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
)

const (
	searchMaxResults = 200
	boardMaxResults  = 50

	// jiraTimestamp is the tracker's datetime rendering, e.g.
	// "2026-02-09T14:03:27.000-0300".
	jiraTimestamp = "2006-01-02T15:04:05.000-0700"
)

// Client talks to a Jira-compatible tracker using basic auth (email + API
// token). Credentials are injected at construction; a client without them
// reports ErrCredentialsMissing on every call.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a tracker client. baseURL must be the site root, e.g.
// "https://example.atlassian.net".
func NewClient(baseURL, email, apiToken string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) configured() bool {
	return c.baseURL != "" && c.email != "" && c.apiToken != ""
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	Fields     []string `json:"fields"`
	MaxResults int      `json:"maxResults"`
}

type rawIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Creator *struct {
			DisplayName string `json:"displayName"`
		} `json:"creator"`
		Created        string   `json:"created"`
		ResolutionDate string   `json:"resolutiondate"`
		Updated        string   `json:"updated"`
		Labels         []string `json:"labels"`
	} `json:"fields"`
}

type searchResponse struct {
	Issues []rawIssue `json:"issues"`
}

// SearchCreated returns issues created inside the range, newest first.
func (c *Client) SearchCreated(ctx context.Context, project string, dr domain.DateRange) ([]domain.Issue, error) {
	jql := fmt.Sprintf(`project = %s AND created >= %q AND created <= %q ORDER BY created DESC`,
		project, dr.StartISO(), dr.EndISO())
	raw, err := c.search(ctx, jql,
		[]string{"summary", "status", "assignee", "creator", "created", "labels"},
		searchMaxResults)
	if err != nil {
		return nil, err
	}
	return normalizeIssues(raw), nil
}

// SearchCompleted returns Done issues resolved inside the range, newest
// resolved first.
func (c *Client) SearchCompleted(ctx context.Context, project string, dr domain.DateRange) ([]domain.Issue, error) {
	jql := fmt.Sprintf(`project = %s AND status = Done AND resolutiondate >= %q AND resolutiondate <= %q ORDER BY resolutiondate DESC`,
		project, dr.StartISO(), dr.EndISO())
	raw, err := c.search(ctx, jql,
		[]string{"summary", "status", "assignee", "creator", "created", "resolutiondate", "labels"},
		searchMaxResults)
	if err != nil {
		return nil, err
	}
	return normalizeIssues(raw), nil
}

// SearchWorkInProgress returns issues in any active state, ordered by state
// name. The exclusion set covers terminal, backlog and both cancelled
// spellings.
func (c *Client) SearchWorkInProgress(ctx context.Context, project string) ([]domain.Issue, error) {
	jql := fmt.Sprintf(`project = %s AND status NOT IN (Done, Backlog, "To Do", Cancelled, Canceled) ORDER BY status ASC`,
		project)
	raw, err := c.search(ctx, jql, []string{"summary", "status"}, searchMaxResults)
	if err != nil {
		return nil, err
	}
	return normalizeIssues(raw), nil
}

// SearchBoard returns assigned In Progress / Testing issues, most recently
// updated first.
func (c *Client) SearchBoard(ctx context.Context, project string) ([]domain.BoardTicket, error) {
	jql := fmt.Sprintf(`project = %s AND status in ("In Progress", "Testing") AND assignee IS NOT EMPTY ORDER BY updated DESC`,
		project)
	raw, err := c.search(ctx, jql,
		[]string{"summary", "status", "assignee", "updated"},
		boardMaxResults)
	if err != nil {
		return nil, err
	}

	tickets := make([]domain.BoardTicket, 0, len(raw))
	for _, issue := range raw {
		assignee := domain.UnassignedSentinel
		if issue.Fields.Assignee != nil && issue.Fields.Assignee.DisplayName != "" {
			assignee = issue.Fields.Assignee.DisplayName
		}
		tickets = append(tickets, domain.BoardTicket{
			Key:      issue.Key,
			Summary:  issue.Fields.Summary,
			Status:   issue.Fields.Status.Name,
			Assignee: assignee,
			Updated:  datePart(issue.Fields.Updated),
			URL:      fmt.Sprintf("%s/browse/%s", c.baseURL, issue.Key),
		})
	}
	return tickets, nil
}

// Myself returns the authenticated account, for diagnostics.
func (c *Client) Myself(ctx context.Context) (*domain.TrackerUser, error) {
	if !c.configured() {
		return nil, domain.ErrCredentialsMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/api/3/myself", nil)
	if err != nil {
		return nil, fmt.Errorf("build myself request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracker myself call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logUpstreamFailure(ctx, "myself", resp)
		return nil, domain.NewUpstreamError("tracker", resp.StatusCode, "myself lookup failed")
	}

	var me struct {
		DisplayName  string `json:"displayName"`
		EmailAddress string `json:"emailAddress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("decode myself response: %w", err)
	}
	return &domain.TrackerUser{DisplayName: me.DisplayName, Email: me.EmailAddress}, nil
}

func (c *Client) search(ctx context.Context, jql string, fields []string, maxResults int) ([]rawIssue, error) {
	if !c.configured() {
		return nil, domain.ErrCredentialsMissing
	}

	body, err := json.Marshal(searchRequest{JQL: jql, Fields: fields, MaxResults: maxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/api/3/search/jql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracker search call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logUpstreamFailure(ctx, jql, resp)
		return nil, domain.NewUpstreamError("tracker", resp.StatusCode, "search failed")
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	// A missing issues array is an empty result, not an error.
	return result.Issues, nil
}

// logUpstreamFailure records the failing query and upstream status with a
// bounded body excerpt. The body is for operators only and never reaches the
// caller.
func (c *Client) logUpstreamFailure(ctx context.Context, query string, resp *http.Response) {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	c.log.Error(ctx, "tracker request failed", nil, map[string]interface{}{
		"query":  query,
		"status": resp.StatusCode,
		"body":   string(excerpt),
	})
}

func normalizeIssues(raw []rawIssue) []domain.Issue {
	issues := make([]domain.Issue, 0, len(raw))
	for _, r := range raw {
		issue := domain.Issue{
			Key:     r.Key,
			Summary: r.Fields.Summary,
			Status:  r.Fields.Status.Name,
			Created: parseTimestamp(r.Fields.Created),
			Labels:  r.Fields.Labels,
		}
		if r.Fields.Assignee != nil {
			issue.Assignee = r.Fields.Assignee.DisplayName
		}
		if r.Fields.Creator != nil {
			issue.Creator = r.Fields.Creator.DisplayName
		}
		if r.Fields.ResolutionDate != "" {
			if t := parseTimestamp(r.Fields.ResolutionDate); !t.IsZero() {
				issue.ResolutionDate = &t
			}
		}
		issues = append(issues, issue)
	}
	return issues
}

// parseTimestamp accepts the tracker's millisecond-offset format with an
// RFC 3339 fallback. Unparseable values normalize to the zero time rather
// than dropping the record.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(jiraTimestamp, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func datePart(timestamp string) string {
	if idx := strings.IndexByte(timestamp, 'T'); idx > 0 {
		return timestamp[:idx]
	}
	return timestamp
}
