package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *rewardRepository {
	return &rewardRepository{db: db}
}

// Create writes every column so an explicit is_active=false is not replaced
// by the column default.
func (r *rewardRepository) Create(ctx context.Context, reward *domain.Reward) error {
	return translate(r.db.WithContext(ctx).Select("*").Create(reward).Error)
}

func (r *rewardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reward, error) {
	var reward domain.Reward
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&reward).Error; err != nil {
		return nil, translate(err)
	}
	return &reward, nil
}

func (r *rewardRepository) ListActive(ctx context.Context) ([]*domain.Reward, error) {
	var rewards []*domain.Reward
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("points ASC").
		Find(&rewards).Error
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepository) Update(ctx context.Context, id uuid.UUID, update domain.RewardUpdate) (*domain.Reward, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Points != nil {
		updates["points"] = *update.Points
	}
	if update.Stock != nil {
		updates["stock"] = *update.Stock
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	res := r.db.WithContext(ctx).Model(&domain.Reward{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Claim locks the reward row and then the user row, always in that order,
// so concurrent claims on the same reward serialize without deadlocking.
// The conditional updates re-check the invariants at write time.
func (r *rewardRepository) Claim(ctx context.Context, userID, rewardID uuid.UUID) (*domain.RewardClaim, int, error) {
	var (
		claim   *domain.RewardClaim
		balance int
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward domain.Reward
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", rewardID).
			Take(&reward).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRewardNotFound
		}
		if err != nil {
			return err
		}
		// Inactive rewards are hidden from the store and cannot be claimed.
		if !reward.IsActive {
			return domain.ErrRewardNotFound
		}

		var user accountRow
		err = tx.Table("users").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id, points").
			Where("id = ?", userID).
			Take(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if err := domain.CheckClaim(user.Points, &reward); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Table("users").
			Where("id = ? AND points >= ?", userID, reward.Points).
			Updates(map[string]interface{}{
				"points":     gorm.Expr("points - ?", reward.Points),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientPoints
		}

		res = tx.Model(&domain.Reward{}).
			Where("id = ? AND stock > 0", rewardID).
			Updates(map[string]interface{}{
				"stock":      gorm.Expr("stock - 1"),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOutOfStock
		}

		claim = &domain.RewardClaim{
			ID:        uuid.New(),
			UserID:    userID,
			RewardID:  rewardID,
			ClaimedAt: now,
		}
		if err := tx.Omit(clause.Associations).Create(claim).Error; err != nil {
			return err
		}

		reward.Stock--
		reward.UpdatedAt = now
		claim.Reward = &reward
		balance = user.Points - reward.Points
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return claim, balance, nil
}

func (r *rewardRepository) ListClaimsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.RewardClaim, error) {
	var claims []*domain.RewardClaim
	err := r.db.WithContext(ctx).
		Preload("Reward").
		Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}
