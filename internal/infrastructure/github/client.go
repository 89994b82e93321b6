package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davixiao/MeetTheDev/internal/api/metrics"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

const (
	DefaultBaseURL = "https://api.github.com"
	defaultTimeout = 5 * time.Second
	reposPerPage   = 5
	userAgent      = "devconnector"
)

// Config holds the GitHub API settings. Token is optional; anonymous calls
// are heavily rate limited by GitHub.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client lists the latest public repositories of a GitHub user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Repos returns up to five repositories, most recently created first.
// A 404 is domain.ErrGithubUserNotFound; transport failures and any other
// non-2xx status wrap domain.ErrUpstream.
func (c *Client) Repos(ctx context.Context, username string) ([]domain.GithubRepo, error) {
	start := time.Now()
	repos, outcome, err := c.repos(ctx, username)
	metrics.GithubRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return repos, err
}

func (c *Client) repos(ctx context.Context, username string) ([]domain.GithubRepo, string, error) {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(reposPerPage))
	q.Set("sort", "created")
	q.Set("direction", "desc")
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "error", fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "error", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, "not_found", domain.ErrGithubUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, "error", fmt.Errorf("%w: github status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var repos []domain.GithubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, "error", fmt.Errorf("%w: decode github response: %v", domain.ErrUpstream, err)
	}
	if repos == nil {
		repos = []domain.GithubRepo{}
	}
	return repos, "ok", nil
}
