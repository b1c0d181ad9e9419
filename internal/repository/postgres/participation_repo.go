package postgres

import (
	"context"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type participationRepository struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) *participationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) Create(ctx context.Context, participation *domain.Participation) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(participation).Error)
}

func (r *participationRepository) Delete(ctx context.Context, userID, tournamentID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND tournament_id = ?", userID, tournamentID).
		Delete(&domain.Participation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *participationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	var participations []*domain.Participation
	err := r.db.WithContext(ctx).
		Preload("Tournament").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&participations).Error
	if err != nil {
		return nil, err
	}
	return participations, nil
}

func (r *participationRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*domain.Participation, error) {
	var participations []*domain.Participation
	err := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("joined_at").
		Find(&participations).Error
	if err != nil {
		return nil, err
	}
	return participations, nil
}
