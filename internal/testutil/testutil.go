package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/riyadah-elite/internal/api"
	"github.com/dom/riyadah-elite/internal/config"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/dom/riyadah-elite/internal/repository/memory"
	repoPostgres "github.com/dom/riyadah-elite/internal/repository/postgres"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/dom/riyadah-elite/internal/websocket"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB starts a PostgreSQL testcontainer and applies the migrations.
// It skips the test under -short.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_riyadah_elite"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	testDB := &TestDB{Container: container}
	t.Cleanup(func() {
		testDB.Cleanup()
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	testDB.DSN = dsn

	db, err := repoPostgres.NewConnection(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	testDB.DB = db

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx) //nolint:errcheck
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"user_tournaments",
		"user_rewards",
		"user_activity",
		"games",
		"tournaments",
		"rewards",
		"moderators",
		"hosts",
		"admins",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:          "0", // Random port
		Environment:   "test",
		LogLevel:      "debug",
		JWTSecret:     "test-jwt-secret-key-for-testing-only",
		TokenTTL:      time.Hour,
		BcryptCost:    bcrypt.MinCost,
		AuthRateLimit: 1000,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Hub      *websocket.Hub
	Config   *config.Config
	Logger   *zap.Logger
}

// NewTestServer creates a test server over the in-process store.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return newTestServer(t, memory.NewRepositories(), nil, TestConfig())
}

// NewTestServerWithConfig is NewTestServer with a caller-tuned config.
func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()
	return newTestServer(t, memory.NewRepositories(), nil, cfg)
}

// NewPostgresTestServer creates a test server backed by a fresh
// PostgreSQL container.
func NewPostgresTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	return newTestServer(t, repoPostgres.NewRepositories(testDB.DB), testDB, TestConfig())
}

func newTestServer(t *testing.T, repos *repository.Repositories, testDB *TestDB, cfg *config.Config) *TestServer {
	t.Helper()

	log := zaptest.NewLogger(t)

	hub := websocket.NewHub(log)
	go hub.Run()

	services := service.NewServices(repos, cfg, hub, log)
	router := api.NewRouter(services, hub, cfg, log, nil)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Hub:      hub,
		Config:   cfg,
		Logger:   log,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}

// WebSocketURL returns the WebSocket URL with token
func (ts *TestServer) WebSocketURL(token string) string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return fmt.Sprintf("%s/api/ws?token=%s", wsURL, token)
}
