package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
)

type GameService struct {
	games repository.GameRepository
}

func NewGameService(games repository.GameRepository) *GameService {
	return &GameService{games: games}
}

func (s *GameService) List(ctx context.Context) ([]*domain.Game, error) {
	return s.games.List(ctx)
}

type SubmitGameInput struct {
	Title       string
	Developer   string
	Genre       string
	Description string
	ImageURL    string
}

func (s *GameService) Submit(ctx context.Context, submittedBy uuid.UUID, input SubmitGameInput) (*domain.Game, error) {
	title := strings.TrimSpace(input.Title)
	developer := strings.TrimSpace(input.Developer)
	genre := strings.TrimSpace(input.Genre)
	if title == "" || developer == "" || genre == "" {
		return nil, domain.Validation("Title, developer, and genre are required")
	}

	now := time.Now()
	game := &domain.Game{
		ID:          uuid.New(),
		Title:       title,
		Developer:   developer,
		Genre:       genre,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Status:      domain.GameStatusPending,
		SubmittedBy: submittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GameStatus) (*domain.Game, error) {
	if status == "" {
		return nil, domain.Validation("Status is required")
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidGameStatus
	}
	game, err := s.games.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrGameNotFound
	}
	return game, err
}
