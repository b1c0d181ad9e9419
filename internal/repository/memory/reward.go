package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
)

type rewardRepository struct {
	s *Store
}

func (r *rewardRepository) Create(_ context.Context, reward *domain.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.rewards[reward.ID]; exists {
		return repository.ErrDuplicate
	}
	stamp(&reward.CreatedAt, &reward.UpdatedAt)
	stored := *reward
	r.s.rewards[reward.ID] = &stored
	r.s.rewardOrder = append(r.s.rewardOrder, reward.ID)
	return nil
}

func (r *rewardRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Reward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reward, ok := r.s.rewards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *reward
	return &out, nil
}

func (r *rewardRepository) ListActive(_ context.Context) ([]*domain.Reward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rewards := make([]*domain.Reward, 0, len(r.s.rewardOrder))
	for _, id := range r.s.rewardOrder {
		reward := r.s.rewards[id]
		if !reward.IsActive {
			continue
		}
		out := *reward
		rewards = append(rewards, &out)
	}
	sort.SliceStable(rewards, func(i, j int) bool {
		return rewards[i].Points < rewards[j].Points
	})
	return rewards, nil
}

func (r *rewardRepository) Update(_ context.Context, id uuid.UUID, update domain.RewardUpdate) (*domain.Reward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reward, ok := r.s.rewards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Title != nil {
		reward.Title = *update.Title
	}
	if update.Description != nil {
		reward.Description = *update.Description
	}
	if update.Points != nil {
		reward.Points = *update.Points
	}
	if update.Stock != nil {
		reward.Stock = *update.Stock
	}
	if update.IsActive != nil {
		reward.IsActive = *update.IsActive
	}
	reward.UpdatedAt = time.Now()

	out := *reward
	return &out, nil
}

// Claim runs the whole check-and-apply sequence while holding the store
// lock.
func (r *rewardRepository) Claim(_ context.Context, userID, rewardID uuid.UUID) (*domain.RewardClaim, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reward, ok := r.s.rewards[rewardID]
	if !ok || !reward.IsActive {
		return nil, 0, domain.ErrRewardNotFound
	}
	user, ok := r.s.accounts[domain.RoleUser][userID]
	if !ok {
		return nil, 0, domain.ErrUserNotFound
	}
	if err := domain.CheckClaim(user.Points, reward); err != nil {
		return nil, 0, err
	}

	now := time.Now()
	user.Points -= reward.Points
	user.UpdatedAt = now
	reward.Stock--
	reward.UpdatedAt = now

	claim := &domain.RewardClaim{
		ID:        uuid.New(),
		UserID:    userID,
		RewardID:  rewardID,
		ClaimedAt: now,
	}
	r.s.claims = append(r.s.claims, claim)

	out := *claim
	rewardCopy := *reward
	out.Reward = &rewardCopy
	return &out, user.Points, nil
}

func (r *rewardRepository) ListClaimsByUser(_ context.Context, userID uuid.UUID) ([]*domain.RewardClaim, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	claims := make([]*domain.RewardClaim, 0)
	for _, c := range r.s.claims {
		if c.UserID != userID {
			continue
		}
		out := *c
		if reward, ok := r.s.rewards[c.RewardID]; ok {
			rewardCopy := *reward
			out.Reward = &rewardCopy
		}
		claims = append(claims, &out)
	}
	sortNewestFirst(claims, func(c *domain.RewardClaim) time.Time { return c.ClaimedAt })
	return claims, nil
}
