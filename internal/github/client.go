// Package github fetches the owner's public repositories and turns them
// into portfolio project cards.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio/pkg/errors"
	"portfolio/pkg/models"
)

const (
	DefaultBaseURL = "https://api.github.com"

	fallbackDescription = "No description available"
	fallbackTechnology  = "Not specified"

	maxErrorBody = 512
)

// Fetcher is what the feed needs from a repository source.
type Fetcher interface {
	FetchProjects(ctx context.Context) ([]models.ProjectEntry, error)
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Account string
	Logger  *zap.Logger
}

func NewClient(baseURL, account string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Account: account,
		Logger:  logger,
	}
}

func (c *Client) Name() string { return "github" }

// FetchRepositories returns the account's repositories as the API lists them.
func (c *Client) FetchRepositories(ctx context.Context) ([]models.RemoteRepository, error) {
	u := fmt.Sprintf("%s/users/%s/repos", c.BaseURL, url.PathEscape(c.Account))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.NewFetchError("could not build the GitHub request", c.Name(), 0, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("GitHub request failed", zap.String("account", c.Account), zap.Error(err))
		return nil, errors.NewFetchError("could not reach GitHub", c.Name(), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.Logger.Warn("GitHub returned an error status",
			zap.String("account", c.Account),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, errors.NewFetchError(
			fmt.Sprintf("GitHub responded with status %d", resp.StatusCode),
			c.Name(), resp.StatusCode, nil,
		)
	}

	var payload []repoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewFetchError("could not read the GitHub response", c.Name(), resp.StatusCode, err)
	}

	repos := make([]models.RemoteRepository, 0, len(payload))
	for _, p := range payload {
		created, err := parseTimestamp(p.CreatedAt)
		if err != nil {
			c.Logger.Debug("unparseable created_at", zap.Int64("repo_id", p.ID), zap.String("value", p.CreatedAt))
		}
		repos = append(repos, models.RemoteRepository{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			HTMLURL:     p.HTMLURL,
			Homepage:    p.Homepage,
			Topics:      p.Topics,
			CreatedAt:   created,
		})
	}
	return repos, nil
}

type repoPayload struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Homepage    *string  `json:"homepage"`
	Topics      []string `json:"topics"`
	CreatedAt   string   `json:"created_at"`
}

// parseTimestamp accepts the API's RFC 3339 timestamps and bare dates.
// Unparseable values yield the zero time, which sorts last.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FetchProjects fetches repositories, newest first, mapped to project cards.
func (c *Client) FetchProjects(ctx context.Context) ([]models.ProjectEntry, error) {
	repos, err := c.FetchRepositories(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(repos)
	return MapProjects(repos), nil
}

// SortNewestFirst orders by creation time descending. Ties keep the
// provider's order.
func SortNewestFirst(repos []models.RemoteRepository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].CreatedAt.After(repos[j].CreatedAt)
	})
}

func MapProjects(repos []models.RemoteRepository) []models.ProjectEntry {
	out := make([]models.ProjectEntry, 0, len(repos))
	for _, r := range repos {
		out = append(out, MapProject(r))
	}
	return out
}

func MapProject(r models.RemoteRepository) models.ProjectEntry {
	p := models.ProjectEntry{
		Title:        r.Name,
		Description:  fallbackDescription,
		Technologies: []string{fallbackTechnology},
		GitHubURL:    r.HTMLURL,
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if len(r.Topics) > 0 {
		p.Technologies = append([]string(nil), r.Topics...)
	}
	if r.Homepage != nil && strings.TrimSpace(*r.Homepage) != "" {
		p.LiveURL = *r.Homepage
	}
	return p
}
