package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// Client is a thin passthrough to the GitHub repository listing API. It has
// no domain logic of its own; responses are relayed as-is, with a short
// Redis cache in front to stay clear of the unauthenticated rate limit.
type Client struct {
	httpClient *http.Client
	cache      *redis.Client
	baseURL    string
	token      string
	cacheTTL   time.Duration
	logger     logger.Logger
}

func NewClient(cfg config.Config, cache *redis.Client, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		baseURL:    "https://api.github.com",
		token:      cfg.GitHub.Token,
		cacheTTL:   cfg.GitHub.CacheTTL,
		logger:     log,
	}
}

func cacheKey(username string) string {
	return "github:repos:" + username
}

// ListRepos returns the user's five most recent repositories as raw JSON.
// An unknown username surfaces as NotFound, any other upstream failure as
// an internal error.
func (c *Client) ListRepos(ctx context.Context, username string) (json.RawMessage, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey(username)).Bytes()
		if err == nil {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build GitHub request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewInternal("GitHub request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewNotFound("User", username)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewInternal("failed to read GitHub response", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey(username), body, c.cacheTTL).Err(); err != nil {
			c.logger.Warn("Failed to cache GitHub response", zap.String("username", username), zap.Error(err))
		}
	}

	return body, nil
}
