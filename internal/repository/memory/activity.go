package memory

import (
	"context"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/google/uuid"
)

type activityRepository struct {
	s *Store
}

func (r *activityRepository) Append(_ context.Context, entry *domain.ActivityLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stamp(&entry.CreatedAt, nil)
	stored := *entry
	r.s.activity = append(r.s.activity, &stored)
	return nil
}

func (r *activityRepository) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*domain.ActivityLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Walk backwards so the newest entries come first.
	entries := make([]*domain.ActivityLogEntry, 0)
	for i := len(r.s.activity) - 1; i >= 0; i-- {
		e := r.s.activity[i]
		if e.UserID != userID {
			continue
		}
		out := *e
		entries = append(entries, &out)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}
