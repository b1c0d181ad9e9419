package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TournamentService struct {
	tournaments    repository.TournamentRepository
	participations repository.ParticipationRepository
	accounts       repository.AccountRepository
	activity       *activityRecorder
}

func NewTournamentService(repos *repository.Repositories, notifier Notifier, logger *zap.Logger) *TournamentService {
	return &TournamentService{
		tournaments:    repos.Tournament,
		participations: repos.Participation,
		accounts:       repos.Account,
		activity:       newActivityRecorder(repos.Activity, notifier, logger),
	}
}

func (s *TournamentService) List(ctx context.Context) ([]*domain.Tournament, error) {
	return s.tournaments.List(ctx)
}

func (s *TournamentService) Get(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	tournament, err := s.tournaments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrTournamentNotFound
	}
	return tournament, err
}

type CreateTournamentInput struct {
	Title           string
	GameName        string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	PrizePool       string
	MaxParticipants int
}

func (s *TournamentService) Create(ctx context.Context, createdBy uuid.UUID, input CreateTournamentInput) (*domain.Tournament, error) {
	title := strings.TrimSpace(input.Title)
	gameName := strings.TrimSpace(input.GameName)
	if title == "" || gameName == "" || input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, domain.Validation("Missing required fields")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, domain.Validation("End date must not be before start date")
	}
	if input.MaxParticipants < 0 {
		return nil, domain.Validation("Max participants must not be negative")
	}

	maxParticipants := input.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = domain.DefaultMaxParticipants
	}

	now := time.Now()
	tournament := &domain.Tournament{
		ID:              uuid.New(),
		Title:           title,
		GameName:        gameName,
		Description:     strings.TrimSpace(input.Description),
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		PrizePool:       strings.TrimSpace(input.PrizePool),
		MaxParticipants: maxParticipants,
		Status:          domain.TournamentStatusUpcoming,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.tournaments.Create(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

// Join registers a user for an upcoming tournament that still has room.
func (s *TournamentService) Join(ctx context.Context, kind domain.Role, userID, tournamentID uuid.UUID) (*domain.Participation, error) {
	if kind != domain.RoleUser {
		return nil, domain.ErrForbidden
	}
	if _, err := s.accounts.GetByID(ctx, domain.RoleUser, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	tournament, err := s.tournaments.GetByID(ctx, tournamentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrTournamentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !tournament.IsOpen() {
		return nil, domain.ErrRegistrationClosed
	}
	for _, p := range tournament.Participants {
		if p.UserID == userID {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	if len(tournament.Participants) >= tournament.MaxParticipants {
		return nil, domain.ErrTournamentFull
	}

	participation := &domain.Participation{
		ID:           uuid.New(),
		UserID:       userID,
		TournamentID: tournamentID,
		JoinedAt:     time.Now(),
	}
	if err := s.participations.Create(ctx, participation); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, err
	}

	s.activity.record(ctx, userID, domain.ActivityTournamentJoin,
		fmt.Sprintf("Joined tournament: %s", tournament.Title), 0,
		map[string]any{"tournament_id": tournamentID.String()})

	return participation, nil
}

// Leave removes the user's registration. Leaving a tournament the user is
// not registered for is not an error.
func (s *TournamentService) Leave(ctx context.Context, userID, tournamentID uuid.UUID) error {
	err := s.participations.Delete(ctx, userID, tournamentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.activity.record(ctx, userID, domain.ActivityTournamentLeave, "Left tournament", 0,
		map[string]any{"tournament_id": tournamentID.String()})
	return nil
}

func (s *TournamentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	return s.participations.ListByUser(ctx, userID)
}

func (s *TournamentService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TournamentStatus) (*domain.Tournament, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidTournamentStatus
	}
	tournament, err := s.tournaments.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrTournamentNotFound
	}
	return tournament, err
}

func (s *TournamentService) Participants(ctx context.Context, id uuid.UUID) ([]*domain.Participation, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.participations.ListByTournament(ctx, id)
}
