// Package memory is a non-durable repository backend for tests and local
// runs without a database. Every Store is independent; nothing is shared
// between instances.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
)

// Store holds all collections behind one mutex, so multi-record operations
// such as a reward claim are applied as a unit.
type Store struct {
	mu sync.Mutex

	accounts       map[domain.Role]map[uuid.UUID]*domain.Account
	activity       []*domain.ActivityLogEntry
	rewards        map[uuid.UUID]*domain.Reward
	rewardOrder    []uuid.UUID
	claims         []*domain.RewardClaim
	tournaments    map[uuid.UUID]*domain.Tournament
	tournamentSeq  []uuid.UUID
	participations []*domain.Participation
	games          []*domain.Game
}

func NewStore() *Store {
	s := &Store{
		accounts:    make(map[domain.Role]map[uuid.UUID]*domain.Account),
		rewards:     make(map[uuid.UUID]*domain.Reward),
		tournaments: make(map[uuid.UUID]*domain.Tournament),
	}
	for _, kind := range domain.AllRoles {
		s.accounts[kind] = make(map[uuid.UUID]*domain.Account)
	}
	return s
}

// NewRepositories returns a repository set backed by a fresh Store.
func NewRepositories() *repository.Repositories {
	return NewStore().Repositories()
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Account:       &accountRepository{s: s},
		Activity:      &activityRepository{s: s},
		Reward:        &rewardRepository{s: s},
		Tournament:    &tournamentRepository{s: s},
		Participation: &participationRepository{s: s},
		Game:          &gameRepository{s: s},
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	if updated != nil && updated.IsZero() {
		*updated = now
	}
}

func sortNewestFirst[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}
