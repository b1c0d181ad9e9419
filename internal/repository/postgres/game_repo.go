package postgres

import (
	"context"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	return translate(r.db.WithContext(ctx).Create(game).Error)
}

func (r *gameRepository) List(ctx context.Context) ([]*domain.Game, error) {
	var games []*domain.Game
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GameStatus) (*domain.Game, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Game{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	var game domain.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&game).Error; err != nil {
		return nil, translate(err)
	}
	return &game, nil
}
