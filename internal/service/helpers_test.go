package service_test

import (
	"sync"
	"testing"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/dom/riyadah-elite/internal/repository/memory"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/dom/riyadah-elite/internal/testutil"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

// recordingNotifier captures feed events.
type recordingNotifier struct {
	mu       sync.Mutex
	activity []*domain.ActivityLogEntry
	balances map[uuid.UUID][]int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{balances: make(map[uuid.UUID][]int)}
}

func (n *recordingNotifier) NotifyActivity(userID uuid.UUID, entry *domain.ActivityLogEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.activity = append(n.activity, entry)
}

func (n *recordingNotifier) NotifyPoints(userID uuid.UUID, balance int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[userID] = append(n.balances[userID], balance)
}

func (n *recordingNotifier) activityTypes() []domain.ActivityType {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]domain.ActivityType, 0, len(n.activity))
	for _, e := range n.activity {
		types = append(types, e.ActivityType)
	}
	return types
}

type testEnv struct {
	repos    *repository.Repositories
	services *service.Services
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := memory.NewRepositories()
	notifier := newRecordingNotifier()
	services := service.NewServices(repos, testutil.TestConfig(), notifier, zaptest.NewLogger(t))
	return &testEnv{repos: repos, services: services, notifier: notifier}
}
