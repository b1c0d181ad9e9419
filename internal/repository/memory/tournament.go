package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
)

type tournamentRepository struct {
	s *Store
}

func (r *tournamentRepository) Create(_ context.Context, tournament *domain.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.tournaments[tournament.ID]; exists {
		return repository.ErrDuplicate
	}
	stamp(&tournament.CreatedAt, &tournament.UpdatedAt)
	stored := *tournament
	stored.Participants = nil
	r.s.tournaments[tournament.ID] = &stored
	r.s.tournamentSeq = append(r.s.tournamentSeq, tournament.ID)
	return nil
}

func (r *tournamentRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tournament, ok := r.s.tournaments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *tournament
	for _, p := range r.s.participations {
		if p.TournamentID == id {
			out.Participants = append(out.Participants, *p)
		}
	}
	return &out, nil
}

func (r *tournamentRepository) List(_ context.Context) ([]*domain.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tournaments := make([]*domain.Tournament, 0, len(r.s.tournamentSeq))
	for _, id := range r.s.tournamentSeq {
		out := *r.s.tournaments[id]
		tournaments = append(tournaments, &out)
	}
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[i].StartDate.Before(tournaments[j].StartDate)
	})
	return tournaments, nil
}

func (r *tournamentRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.TournamentStatus) (*domain.Tournament, error) {
	r.s.mu.Lock()
	tournament, ok := r.s.tournaments[id]
	if !ok {
		r.s.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	tournament.Status = status
	tournament.UpdatedAt = time.Now()
	r.s.mu.Unlock()

	return r.GetByID(context.Background(), id)
}

type participationRepository struct {
	s *Store
}

func (r *participationRepository) Create(_ context.Context, participation *domain.Participation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.participations {
		if p.UserID == participation.UserID && p.TournamentID == participation.TournamentID {
			return repository.ErrDuplicate
		}
	}
	if participation.JoinedAt.IsZero() {
		participation.JoinedAt = time.Now()
	}
	stored := *participation
	stored.Tournament = nil
	r.s.participations = append(r.s.participations, &stored)
	return nil
}

func (r *participationRepository) Delete(_ context.Context, userID, tournamentID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, p := range r.s.participations {
		if p.UserID == userID && p.TournamentID == tournamentID {
			r.s.participations = append(r.s.participations[:i], r.s.participations[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *participationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	participations := make([]*domain.Participation, 0)
	for _, p := range r.s.participations {
		if p.UserID != userID {
			continue
		}
		out := *p
		if tournament, ok := r.s.tournaments[p.TournamentID]; ok {
			t := *tournament
			out.Tournament = &t
		}
		participations = append(participations, &out)
	}
	sortNewestFirst(participations, func(p *domain.Participation) time.Time { return p.JoinedAt })
	return participations, nil
}

func (r *participationRepository) ListByTournament(_ context.Context, tournamentID uuid.UUID) ([]*domain.Participation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	participations := make([]*domain.Participation, 0)
	for _, p := range r.s.participations {
		if p.TournamentID == tournamentID {
			out := *p
			participations = append(participations, &out)
		}
	}
	return participations, nil
}
