// SPDX-License-Identifier: MPL-2.0

// Package tracker maintains a single tracking issue in a GitHub repository,
// keyed by a fixed title. The lint command uses it to keep one issue in sync
// with the current set of missing-synopsis findings: created or updated while
// findings exist, closed once the tree is clean.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials is returned when no token or repository can be found.
var ErrMissingCredentials = errors.New("tracker: missing credentials")

type (
	// Client is a minimal GitHub Issues client, just wide enough for one
	// tracked issue.
	Client struct {
		baseURL    string
		repository string // "owner/name"
		token      string
		httpClient *http.Client
	}

	// Issue is the subset of the API payload the client needs.
	Issue struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Body   string `json:"body"`
		State  string `json:"state"`
	}

	// SyncResult describes what Sync did.
	SyncResult struct {
		Action string // "created", "updated", "closed", "none"
		Number int
	}
)

// New builds a client. Empty baseURL selects the public GitHub API.
func New(baseURL, repository, token string) (*Client, error) {
	if repository == "" || token == "" {
		return nil, ErrMissingCredentials
	}
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		repository: repository,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// NewFromEnv builds a client from GITHUB_TOKEN and GITHUB_REPOSITORY,
// loading a .env file first when one exists. repository, when non-empty,
// overrides the environment.
func NewFromEnv(baseURL, repository string) (*Client, error) {
	// Best-effort: CI provides real env vars, local runs may use .env.
	_ = godotenv.Load()

	if repository == "" {
		repository = os.Getenv("GITHUB_REPOSITORY")
	}
	return New(baseURL, repository, os.Getenv("GITHUB_TOKEN"))
}

// Sync reconciles the tracking issue with the lint outcome: when healthy, an
// open issue with the given title is closed; otherwise the issue is created
// or its body refreshed.
func (c *Client) Sync(ctx context.Context, title, body string, healthy bool) (*SyncResult, error) {
	existing, err := c.findOpenIssue(ctx, title)
	if err != nil {
		return nil, err
	}

	switch {
	case healthy && existing == nil:
		return &SyncResult{Action: "none"}, nil
	case healthy:
		if err := c.closeIssue(ctx, existing.Number); err != nil {
			return nil, err
		}
		return &SyncResult{Action: "closed", Number: existing.Number}, nil
	case existing == nil:
		created, err := c.createIssue(ctx, title, body)
		if err != nil {
			return nil, err
		}
		return &SyncResult{Action: "created", Number: created.Number}, nil
	default:
		if existing.Body == body {
			return &SyncResult{Action: "none", Number: existing.Number}, nil
		}
		if err := c.updateIssue(ctx, existing.Number, body); err != nil {
			return nil, err
		}
		return &SyncResult{Action: "updated", Number: existing.Number}, nil
	}
}

// findOpenIssue scans open issues for an exact title match.
func (c *Client) findOpenIssue(ctx context.Context, title string) (*Issue, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/issues?%s", c.baseURL, c.repository,
		url.Values{"state": {"open"}, "per_page": {"100"}}.Encode())

	var issues []Issue
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &issues); err != nil {
		return nil, err
	}
	for i := range issues {
		if issues[i].Title == title {
			return &issues[i], nil
		}
	}
	return nil, nil
}

func (c *Client) createIssue(ctx context.Context, title, body string) (*Issue, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/issues", c.baseURL, c.repository)
	payload := map[string]string{"title": title, "body": body}

	var created Issue
	if err := c.do(ctx, http.MethodPost, endpoint, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) updateIssue(ctx context.Context, number int, body string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, c.repository, number)
	return c.do(ctx, http.MethodPatch, endpoint, map[string]string{"body": body}, nil)
}

func (c *Client) closeIssue(ctx context.Context, number int) error {
	endpoint := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, c.repository, number)
	return c.do(ctx, http.MethodPatch, endpoint, map[string]string{"state": "closed"}, nil)
}

// do issues one API request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
