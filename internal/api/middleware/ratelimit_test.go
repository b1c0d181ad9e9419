package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/riyadah-elite/internal/api/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_InProcess(t *testing.T) {
	handler := middleware.RateLimit(3, time.Minute, nil, zap.NewNop())(okHandler())

	for i := 0; i < 3; i++ {
		rec := hit(handler, "10.0.0.1:5000")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := hit(handler, "10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests, please try again later"}`, rec.Body.String())

	// Other clients keep their own budget
	rec = hit(handler, "10.0.0.2:5000")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		container.Terminate(ctx) //nolint:errcheck
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { rdb.Close() })

	limit := middleware.RateLimit(2, time.Minute, rdb, zap.NewNop())

	// Two server instances sharing one Redis share the budget.
	first := limit(okHandler())
	second := limit(okHandler())

	rec := hit(first, "10.0.0.9:1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = hit(second, "10.0.0.9:2")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = hit(first, "10.0.0.9:3")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_RedisUnavailableFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })

	handler := middleware.RateLimit(1, time.Minute, rdb, zap.NewNop())(okHandler())

	for i := 0; i < 3; i++ {
		rec := hit(handler, "10.0.0.3:1")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
