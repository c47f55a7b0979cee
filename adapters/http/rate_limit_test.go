package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRateLimitedRouter(rdb *redis.Client, max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth", RateLimit(rdb, max, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})
	return r
}

func hitLogin(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := newRateLimitedRouter(nil, 1, time.Minute)

	for i := 0; i < 3; i++ {
		w := hitLogin(r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_DisabledWithZeroMax(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	r := newRateLimitedRouter(rdb, 0, time.Minute)

	w := hitLogin(r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_FailsOpenWhenRedisUnreachable(t *testing.T) {
	// nothing listens here, every script call errors
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := newRateLimitedRouter(rdb, 1, time.Minute)

	for i := 0; i < 3; i++ {
		w := hitLogin(r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_EnforcesWindowMax(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(1 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate redis container: %s", err)
		}
	}()

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	defer rdb.Close()

	r := newRateLimitedRouter(rdb, 2, time.Minute)

	for i := 0; i < 2; i++ {
		w := hitLogin(r)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := hitLogin(r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"msg":"Too many requests, try again later"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
