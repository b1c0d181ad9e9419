package memory

import (
	"context"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
)

type accountRepository struct {
	s *Store
}

func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	partition, ok := r.s.accounts[account.Kind]
	if !ok {
		return repository.ErrNotFound
	}
	if _, exists := partition[account.ID]; exists {
		return repository.ErrDuplicate
	}
	for _, existing := range partition {
		if existing.Email == account.Email {
			return repository.ErrDuplicate
		}
	}

	stamp(&account.CreatedAt, &account.UpdatedAt)
	stored := *account
	if !stored.IsUser() {
		stored.Points = 0
		stored.Avatar = nil
	}
	partition[account.ID] = &stored
	return nil
}

func (r *accountRepository) GetByID(_ context.Context, kind domain.Role, id uuid.UUID) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[kind][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *account
	return &out, nil
}

func (r *accountRepository) GetByEmail(_ context.Context, kind domain.Role, email string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, account := range r.s.accounts[kind] {
		if account.Email == email {
			out := *account
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *accountRepository) UpdateProfile(_ context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[domain.RoleUser][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Avatar != nil {
		avatar := *update.Avatar
		account.Avatar = &avatar
	}
	account.UpdatedAt = time.Now()

	out := *account
	return &out, nil
}

// Delete removes the account. Deleting a user also drops their claims and
// participations; activity entries are kept.
func (r *accountRepository) Delete(_ context.Context, kind domain.Role, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[kind][id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.accounts[kind], id)

	if kind != domain.RoleUser {
		return nil
	}

	claims := r.s.claims[:0]
	for _, c := range r.s.claims {
		if c.UserID != id {
			claims = append(claims, c)
		}
	}
	r.s.claims = claims

	participations := r.s.participations[:0]
	for _, p := range r.s.participations {
		if p.UserID != id {
			participations = append(participations, p)
		}
	}
	r.s.participations = participations
	return nil
}
