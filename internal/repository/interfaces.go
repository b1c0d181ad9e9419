package repository

import (
	"context"
	"errors"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// AccountRepository stores the four account partitions. Every lookup is
// scoped to a single partition by kind.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, kind domain.Role, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, kind domain.Role, email string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error)
	Delete(ctx context.Context, kind domain.Role, id uuid.UUID) error
}

type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLogEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityLogEntry, error)
}

type RewardRepository interface {
	Create(ctx context.Context, reward *domain.Reward) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reward, error)
	ListActive(ctx context.Context) ([]*domain.Reward, error)
	Update(ctx context.Context, id uuid.UUID, update domain.RewardUpdate) (*domain.Reward, error)

	// Claim loads the reward and the user's balance, applies
	// domain.CheckClaim, then debits the user, decrements stock and records
	// the claim as one atomic unit. It returns the claim and the user's new
	// balance.
	Claim(ctx context.Context, userID, rewardID uuid.UUID) (*domain.RewardClaim, int, error)
	ListClaimsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.RewardClaim, error)
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *domain.Tournament) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tournament, error)
	List(ctx context.Context) ([]*domain.Tournament, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TournamentStatus) (*domain.Tournament, error)
}

type ParticipationRepository interface {
	// Create returns ErrDuplicate when the user already joined.
	Create(ctx context.Context, participation *domain.Participation) error
	Delete(ctx context.Context, userID, tournamentID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*domain.Participation, error)
}

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	List(ctx context.Context) ([]*domain.Game, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GameStatus) (*domain.Game, error)
}

type Repositories struct {
	Account       AccountRepository
	Activity      ActivityRepository
	Reward        RewardRepository
	Tournament    TournamentRepository
	Participation ParticipationRepository
	Game          GameRepository
}
