package postgres

import (
	"context"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tournamentRepository struct {
	db *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) *tournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) Create(ctx context.Context, tournament *domain.Tournament) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(tournament).Error)
}

func (r *tournamentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	var tournament domain.Tournament
	err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at")
		}).
		Where("id = ?", id).
		Take(&tournament).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tournament, nil
}

func (r *tournamentRepository) List(ctx context.Context) ([]*domain.Tournament, error) {
	var tournaments []*domain.Tournament
	if err := r.db.WithContext(ctx).Order("start_date ASC").Find(&tournaments).Error; err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *tournamentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TournamentStatus) (*domain.Tournament, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Tournament{}).
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
	return r.GetByID(ctx, id)
}
