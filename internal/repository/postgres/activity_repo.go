package postgres

import (
	"context"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *activityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, entry *domain.ActivityLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByUser returns the newest entries first. A limit of zero or less
// returns everything.
func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityLogEntry, error) {
	var entries []*domain.ActivityLogEntry
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
