package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davixiao/MeetTheDev/internal/api/metrics"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

const defaultRepoTTL = 10 * time.Minute

// RepoCache stores GitHub repository lists as JSON.
// Key format: github:repos:<lowercased username>
type RepoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepoCache creates a RepoCache wrapping the given Redis client.
func NewRepoCache(client *redis.Client, ttl time.Duration) *RepoCache {
	if ttl <= 0 {
		ttl = defaultRepoTTL
	}
	return &RepoCache{client: client, ttl: ttl}
}

// Get returns the cached list and whether it was present.
func (c *RepoCache) Get(ctx context.Context, username string) ([]domain.GithubRepo, bool, error) {
	raw, err := c.client.Get(ctx, repoKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RepoCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.RepoCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("repo cache get: %w", err)
	}

	var repos []domain.GithubRepo
	if err := json.Unmarshal(raw, &repos); err != nil {
		metrics.RepoCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("repo cache decode: %w", err)
	}
	metrics.RepoCacheTotal.WithLabelValues("hit").Inc()
	return repos, true, nil
}

// Set stores the list; it expires after the configured TTL.
func (c *RepoCache) Set(ctx context.Context, username string, repos []domain.GithubRepo) error {
	raw, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("repo cache encode: %w", err)
	}
	return c.client.Set(ctx, repoKey(username), raw, c.ttl).Err()
}

// GitHub usernames are case-insensitive.
func repoKey(username string) string {
	return "github:repos:" + strings.ToLower(strings.TrimSpace(username))
}
