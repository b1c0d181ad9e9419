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

// RewardService is the points ledger: it lists the store, records claims
// and lets admins manage the catalog.
type RewardService struct {
	rewards  repository.RewardRepository
	activity *activityRecorder
}

func NewRewardService(repos *repository.Repositories, notifier Notifier, logger *zap.Logger) *RewardService {
	return &RewardService{
		rewards:  repos.Reward,
		activity: newActivityRecorder(repos.Activity, notifier, logger),
	}
}

func (s *RewardService) ListActive(ctx context.Context) ([]*domain.Reward, error) {
	return s.rewards.ListActive(ctx)
}

func (s *RewardService) ListClaims(ctx context.Context, userID uuid.UUID) ([]*domain.RewardClaim, error) {
	return s.rewards.ListClaimsByUser(ctx, userID)
}

// Claim exchanges the user's points for one unit of the reward. The check
// and the debit, decrement and claim record happen atomically in the
// repository.
func (s *RewardService) Claim(ctx context.Context, userID, rewardID uuid.UUID) (*domain.RewardClaim, error) {
	claim, balance, err := s.rewards.Claim(ctx, userID, rewardID)
	if err != nil {
		return nil, err
	}

	cost := 0
	title := ""
	if claim.Reward != nil {
		cost = claim.Reward.Points
		title = claim.Reward.Title
	}
	s.activity.record(ctx, userID, domain.ActivityRewardClaim,
		fmt.Sprintf("Claimed reward: %s", title), -cost,
		map[string]any{"reward_id": rewardID.String()})
	s.activity.points(userID, balance)

	return claim, nil
}

type CreateRewardInput struct {
	Title       string
	Description string
	ImageURL    string
	Points      int
	Stock       int
	IsActive    *bool
}

func (s *RewardService) Create(ctx context.Context, input CreateRewardInput) (*domain.Reward, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Validation("Title is required")
	}
	if input.Points < 0 {
		return nil, domain.Validation("Points must not be negative")
	}
	if input.Stock < 0 {
		return nil, domain.Validation("Stock must not be negative")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now()
	reward := &domain.Reward{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Points:      input.Points,
		Stock:       input.Stock,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *RewardService) Update(ctx context.Context, id uuid.UUID, update domain.RewardUpdate) (*domain.Reward, error) {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, domain.Validation("Title is required")
		}
		update.Title = &title
	}
	if update.Points != nil && *update.Points < 0 {
		return nil, domain.Validation("Points must not be negative")
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, domain.Validation("Stock must not be negative")
	}

	reward, err := s.rewards.Update(ctx, id, update)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrRewardNotFound
	}
	return reward, err
}
