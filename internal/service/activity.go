package service

import (
	"context"
	"encoding/json"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Notifier receives events for a user's live activity feed.
type Notifier interface {
	NotifyActivity(userID uuid.UUID, entry *domain.ActivityLogEntry)
	NotifyPoints(userID uuid.UUID, balance int)
}

// activityRecorder appends activity entries. Failures are logged and never
// returned: the log is observational and must not fail the caller.
type activityRecorder struct {
	repo     repository.ActivityRepository
	notifier Notifier
	logger   *zap.Logger
}

func newActivityRecorder(repo repository.ActivityRepository, notifier Notifier, logger *zap.Logger) *activityRecorder {
	return &activityRecorder{repo: repo, notifier: notifier, logger: logger}
}

func (r *activityRecorder) record(ctx context.Context, userID uuid.UUID, activityType domain.ActivityType, description string, pointsChange int, metadata map[string]any) {
	entry := &domain.ActivityLogEntry{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		PointsChange: pointsChange,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Warn("failed to record activity",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("activity_type", string(activityType)))
		return
	}

	if r.notifier != nil {
		r.notifier.NotifyActivity(userID, entry)
	}
}

func (r *activityRecorder) points(userID uuid.UUID, balance int) {
	if r.notifier != nil {
		r.notifier.NotifyPoints(userID, balance)
	}
}
