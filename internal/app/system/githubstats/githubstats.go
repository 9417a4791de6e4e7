// Package githubstats proxies repository statistics from the GitHub API.
//
// The portfolio page shows star and fork counts on project cards. Responses
// are cached in memory per repository so page loads do not burn GitHub's
// unauthenticated rate limit.
package githubstats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultCacheTTL matches the upstream cache window for repo stats.
const DefaultCacheTTL = 5 * time.Minute

// ErrNotFound is returned when GitHub reports the repository does not exist
// or is not visible to the configured token.
var ErrNotFound = errors.New("repository not found")

// Config holds settings for the GitHub stats client.
type Config struct {
	// Owner is the account whose repositories are queried.
	Owner string
	// Token is an optional personal access token for higher rate limits.
	Token string
	// BaseURL overrides the API endpoint; used by tests.
	BaseURL string
	// CacheTTL is how long a fetched stat entry stays fresh.
	CacheTTL time.Duration
	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// DefaultConfig returns a config with production endpoint, cache window,
// and timeouts. Owner still needs to be filled in.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		CacheTTL: DefaultCacheTTL,
		Timeout:  10 * time.Second,
	}
}

// RepoStats is the subset of repository metadata the portfolio renders.
type RepoStats struct {
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Watchers    int       `json:"watchers"`
	Language    string    `json:"language"`
	Updated     time.Time `json:"updated"`
	Description string    `json:"description"`
	Topics      []string  `json:"topics"`
}

type cacheEntry struct {
	stats     RepoStats
	fetchedAt time.Time
}

// Client fetches and caches repository stats.
type Client struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry

	closed int32
}

// NewClient creates a GitHub stats client. httpClient may be nil, in which
// case a default client with the configured timeout is used.
func NewClient(cfg Config, httpClient *http.Client, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:    cfg,
		client: httpClient,
		log:    log,
		cache:  make(map[string]cacheEntry),
	}
}

// Stats returns the stats for one repository of the configured owner,
// serving from cache when the entry is still fresh.
func (c *Client) Stats(ctx context.Context, repo string) (*RepoStats, error) {
	c.mu.Lock()
	if entry, ok := c.cache[repo]; ok && time.Since(entry.fetchedAt) < c.cfg.CacheTTL {
		stats := entry.stats
		c.mu.Unlock()
		return &stats, nil
	}
	c.mu.Unlock()

	stats, err := c.fetch(ctx, repo)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[repo] = cacheEntry{stats: *stats, fetchedAt: time.Now()}
	c.mu.Unlock()
	return stats, nil
}

func (c *Client) fetch(ctx context.Context, repo string) (*RepoStats, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.cfg.BaseURL, c.cfg.Owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "Portfolio-App")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "token "+c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("github stats request failed",
			zap.String("repo", repo),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("github returned status %d", resp.StatusCode)
	}

	var raw struct {
		StargazersCount int       `json:"stargazers_count"`
		ForksCount      int       `json:"forks_count"`
		WatchersCount   int       `json:"watchers_count"`
		Language        string    `json:"language"`
		UpdatedAt       time.Time `json:"updated_at"`
		Description     string    `json:"description"`
		Topics          []string  `json:"topics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode repo response: %w", err)
	}

	stats := &RepoStats{
		Stars:       raw.StargazersCount,
		Forks:       raw.ForksCount,
		Watchers:    raw.WatchersCount,
		Language:    raw.Language,
		Updated:     raw.UpdatedAt,
		Description: raw.Description,
		Topics:      raw.Topics,
	}
	if stats.Topics == nil {
		stats.Topics = []string{}
	}
	return stats, nil
}

// Close releases idle connections on the underlying transport. Idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}
