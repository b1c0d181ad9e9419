package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dom/riyadah-elite/internal/config"
	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeder performs operator tasks directly against a repository set.
type Seeder struct {
	repos       *repository.Repositories
	hasher      service.PasswordHasher
	rewards     *service.RewardService
	tournaments *service.TournamentService
	logger      *zap.Logger
}

func NewSeeder(repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) *Seeder {
	return &Seeder{
		repos:       repos,
		hasher:      service.NewBcryptHasher(cfg.BcryptCost),
		rewards:     service.NewRewardService(repos, nil, logger),
		tournaments: service.NewTournamentService(repos, nil, logger),
		logger:      logger,
	}
}

type StaffInput struct {
	Role     string
	Name     string
	Email    string
	Password string
}

// CreateStaff creates an account in one of the staff partitions. Staff
// cannot self-register through the API.
func (s *Seeder) CreateStaff(ctx context.Context, input StaffInput) (*domain.Account, error) {
	role := domain.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if !role.IsStaff() {
		return nil, fmt.Errorf("role must be admin, host or moderator, got %q", input.Role)
	}

	name := strings.TrimSpace(input.Name)
	email := domain.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, errors.New("name, email and password are required")
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", domain.MinPasswordLength)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Kind:         role,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repos.Account.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("a %s with email %s already exists", role, email)
		}
		return nil, err
	}

	s.logger.Info("staff account created", zap.String("role", role.String()), zap.String("email", email))
	return account, nil
}

type CatalogResult struct {
	Rewards    []*domain.Reward
	Tournament *domain.Tournament
}

var demoRewards = []service.CreateRewardInput{
	{Title: "Riyadah Elite T-Shirt", Description: "Official community tee", Points: 100, Stock: 50},
	{Title: "Gaming Mouse Pad", Description: "XL stitched-edge mouse pad", Points: 250, Stock: 25},
	{Title: "Tournament Fast Pass", Description: "Skip the queue for one tournament registration", Points: 500, Stock: 10},
	{Title: "Pro Headset", Description: "Wireless headset with surround sound", Points: 1500, Stock: 3},
}

// SeedCatalog inserts demo rewards and one upcoming tournament created by
// the admin with the given email.
func (s *Seeder) SeedCatalog(ctx context.Context, adminEmail string) (*CatalogResult, error) {
	admin, err := s.repos.Account.GetByEmail(ctx, domain.RoleAdmin, domain.NormalizeEmail(adminEmail))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no admin with email %q; run `seed staff` first", adminEmail)
		}
		return nil, err
	}

	result := &CatalogResult{}
	for _, input := range demoRewards {
		reward, err := s.rewards.Create(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("creating reward %q: %w", input.Title, err)
		}
		result.Rewards = append(result.Rewards, reward)
	}

	start := time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	result.Tournament, err = s.tournaments.Create(ctx, admin.ID, service.CreateTournamentInput{
		Title:           "Riyadah Elite Open",
		GameName:        "Rocket League",
		Description:     "Community 3v3 bracket open to all members",
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 2),
		PrizePool:       "5000 points",
		MaxParticipants: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tournament: %w", err)
	}

	s.logger.Info("catalog seeded", zap.Int("rewards", len(result.Rewards)), zap.String("tournament", result.Tournament.ID.String()))
	return result, nil
}
