package postgres

import (
	"context"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	userColumns  = "id, name, email, password_hash, avatar, points, created_at, updated_at"
	staffColumns = "id, name, email, password_hash, created_at, updated_at"
)

// accountRow is the shared shape of the four account tables. Staff tables
// have no avatar or points columns.
type accountRow struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Avatar       *string
	Points       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *accountRow) toDomain(kind domain.Role) *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Kind:         kind,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Avatar:       r.Avatar,
		Points:       r.Points,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func tableFor(kind domain.Role) string {
	switch kind {
	case domain.RoleAdmin:
		return "admins"
	case domain.RoleHost:
		return "hosts"
	case domain.RoleModerator:
		return "moderators"
	}
	return "users"
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) scope(ctx context.Context, kind domain.Role) *gorm.DB {
	q := r.db.WithContext(ctx).Table(tableFor(kind))
	if kind == domain.RoleUser {
		return q.Select(userColumns)
	}
	return q.Select(staffColumns)
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	row := &accountRow{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Avatar:       account.Avatar,
		Points:       account.Points,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}

	q := r.db.WithContext(ctx).Table(tableFor(account.Kind))
	if !account.IsUser() {
		q = q.Omit("avatar", "points")
	}
	return translate(q.Create(row).Error)
}

func (r *accountRepository) GetByID(ctx context.Context, kind domain.Role, id uuid.UUID) (*domain.Account, error) {
	var row accountRow
	if err := r.scope(ctx, kind).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toDomain(kind), nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, kind domain.Role, email string) (*domain.Account, error) {
	var row accountRow
	if err := r.scope(ctx, kind).Where("email = ?", email).Take(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toDomain(kind), nil
}

// UpdateProfile only applies to the user partition.
func (r *accountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Avatar != nil {
		updates["avatar"] = *update.Avatar
	}

	res := r.db.WithContext(ctx).Table("users").Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, domain.RoleUser, id)
}

func (r *accountRepository) Delete(ctx context.Context, kind domain.Role, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Table(tableFor(kind)).Where("id = ?", id).Delete(&accountRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
