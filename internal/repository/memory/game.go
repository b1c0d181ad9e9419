package memory

import (
	"context"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
)

type gameRepository struct {
	s *Store
}

func (r *gameRepository) Create(_ context.Context, game *domain.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.games {
		if g.ID == game.ID {
			return repository.ErrDuplicate
		}
	}
	stamp(&game.CreatedAt, &game.UpdatedAt)
	stored := *game
	r.s.games = append(r.s.games, &stored)
	return nil
}

func (r *gameRepository) List(_ context.Context) ([]*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	games := make([]*domain.Game, 0, len(r.s.games))
	for i := len(r.s.games) - 1; i >= 0; i-- {
		out := *r.s.games[i]
		games = append(games, &out)
	}
	sortNewestFirst(games, func(g *domain.Game) time.Time { return g.CreatedAt })
	return games, nil
}

func (r *gameRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.GameStatus) (*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.games {
		if g.ID == id {
			g.Status = status
			g.UpdatedAt = time.Now()
			out := *g
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}
