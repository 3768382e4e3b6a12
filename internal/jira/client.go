// Package jira provides a client for the Jira Agile and REST v2 APIs,
// limited to the read operations the sync pipeline needs: sprint lookup,
// sprint issue listing, and epic name resolution.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/DamianStefaniuk/Review/internal/config"
	"github.com/DamianStefaniuk/Review/internal/sprint"
)

const (
	// agilePrefix is the Jira Agile (board/sprint) API path prefix.
	agilePrefix = "/rest/agile/1.0"

	// apiPrefix is the Jira platform REST v2 API path prefix.
	apiPrefix = "/rest/api/2"

	// defaultTimeout bounds a single HTTP request.
	defaultTimeout = 30 * time.Second

	// maxRetryElapsed bounds the total time spent retrying one call.
	maxRetryElapsed = 20 * time.Second

	// issuePageSize is the page size for sprint issue listing.
	issuePageSize = 100
)

// ErrNotFound indicates the requested entity does not exist in Jira.
var ErrNotFound = errors.New("not found")

// Client talks to a single Jira instance using basic auth.
type Client struct {
	cfg        config.Jira
	httpClient *http.Client
}

// NewClient creates a Jira client from the given configuration.
func NewClient(cfg config.Jira) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// ActiveSprint returns the currently active sprint on the configured
// board, or nil when the board has no active sprint.
func (c *Client) ActiveSprint(ctx context.Context) (*sprint.Meta, error) {
	params := url.Values{"state": {"active"}}

	var resp struct {
		Values []wireSprint `json:"values"`
	}
	path := fmt.Sprintf("%s/board/%s/sprint", agilePrefix, c.cfg.BoardID)
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("fetching active sprint: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}
	return resp.Values[0].meta(), nil
}

// Sprint returns the sprint with the given ID, or nil if Jira does not
// know it.
func (c *Client) Sprint(ctx context.Context, id int) (*sprint.Meta, error) {
	var resp wireSprint
	path := fmt.Sprintf("%s/sprint/%d", agilePrefix, id)
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching sprint %d: %w", id, err)
	}
	return resp.meta(), nil
}

// SprintIssues returns all issues assigned to the sprint, paging through
// the Agile API. A failed page fetch stops pagination; the issues
// collected so far are returned with the failure logged, so a transient
// upstream error degrades the data instead of aborting the run.
func (c *Client) SprintIssues(ctx context.Context, sprintID int) ([]Issue, error) {
	fields := "summary,status,labels,assignee," + c.cfg.EpicLinkField
	path := fmt.Sprintf("%s/sprint/%d/issue", agilePrefix, sprintID)

	var issues []Issue
	startAt := 0
	for {
		params := url.Values{
			"startAt":    {strconv.Itoa(startAt)},
			"maxResults": {strconv.Itoa(issuePageSize)},
			"fields":     {fields},
		}

		var page struct {
			Issues []wireIssue `json:"issues"`
		}
		if err := c.getJSON(ctx, path, params, &page); err != nil {
			slog.Error("sprint issue page fetch failed, stopping pagination",
				"sprint", sprintID, "startAt", startAt, "error", err)
			break
		}
		if len(page.Issues) == 0 {
			break
		}

		for _, w := range page.Issues {
			issues = append(issues, w.issue(c.cfg.EpicLinkField))
		}

		if len(page.Issues) < issuePageSize {
			break
		}
		startAt += issuePageSize
	}

	return issues, nil
}

// EpicName resolves an epic's display name by issue key. Returns an
// empty string when the epic cannot be found.
func (c *Client) EpicName(ctx context.Context, epicKey string) (string, error) {
	var resp struct {
		Fields struct {
			Summary string `json:"summary"`
		} `json:"fields"`
	}

	path := fmt.Sprintf("%s/issue/%s", apiPrefix, url.PathEscape(epicKey))
	params := url.Values{"fields": {"summary"}}
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("fetching epic %s: %w", epicKey, err)
	}
	return resp.Fields.Summary, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
// Network errors, 429s, and 5xx responses are retried with exponential
// backoff; other failures are permanent.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.cfg.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxRetryElapsed

	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("jira returned %s for %s", resp.Status, path)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("jira returned %s for %s", resp.Status, path))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response for %s: %w", path, err))
		}
		return nil
	}, backoff.WithContext(bo, ctx))
}
