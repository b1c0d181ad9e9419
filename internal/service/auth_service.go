package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// dashboardActivityLimit is how many recent activity entries the dashboard
// shows.
const dashboardActivityLimit = 5

type AuthService struct {
	accounts       repository.AccountRepository
	participations repository.ParticipationRepository
	rewards        repository.RewardRepository
	activityRepo   repository.ActivityRepository
	activity       *activityRecorder
	tokens         *TokenService
	hasher         PasswordHasher

	// dummyHash is compared against when no account matches, so a missing
	// email costs the same as a wrong password.
	dummyHash string
}

func NewAuthService(repos *repository.Repositories, tokens *TokenService, hasher PasswordHasher, notifier Notifier, logger *zap.Logger) *AuthService {
	dummy, _ := hasher.Hash(uuid.NewString())
	return &AuthService{
		accounts:       repos.Account,
		participations: repos.Participation,
		rewards:        repos.Reward,
		activityRepo:   repos.Activity,
		activity:       newActivityRecorder(repos.Activity, notifier, logger),
		tokens:         tokens,
		hasher:         hasher,
		dummyHash:      dummy,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	Token   string
	Account *domain.Account
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := domain.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, domain.Validation("Name, email, and password are required")
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.Validation("Password must be at least %d characters", domain.MinPasswordLength)
	}

	_, err := s.accounts.GetByEmail(ctx, domain.RoleUser, email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Kind:         domain.RoleUser,
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Points:       domain.WelcomeBonus,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	s.activity.record(ctx, account.ID, domain.ActivityRegistration, "User registered", domain.WelcomeBonus, nil)

	return s.issue(account)
}

// Login authenticates against the partition named by kind. A missing
// account and a wrong password yield the same error.
func (s *AuthService) Login(ctx context.Context, kind domain.Role, email, password string) (*AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.Validation("Email and password are required")
	}

	account, err := s.accounts.GetByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if account.IsUser() {
		s.activity.record(ctx, account.ID, domain.ActivityLogin, "User logged in", 0, nil)
	}

	return s.issue(account)
}

func (s *AuthService) issue(account *domain.Account) (*AuthResult, error) {
	token, err := s.tokens.Issue(account)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Account: account}, nil
}

// ResolveAccount loads the live account behind a verified token. A token
// whose account no longer exists is treated as unauthenticated.
func (s *AuthService) ResolveAccount(ctx context.Context, kind domain.Role, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, kind, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrAccountGone
	}
	return account, err
}

func (s *AuthService) GetProfile(ctx context.Context, kind domain.Role, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, kind, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return account, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, kind domain.Role, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error) {
	if kind != domain.RoleUser {
		return nil, domain.ErrProfileUnsupported
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.Validation("Name cannot be empty")
		}
		update.Name = &name
	}
	if update.Avatar != nil {
		avatar := strings.TrimSpace(*update.Avatar)
		update.Avatar = &avatar
	}

	var (
		account *domain.Account
		err     error
	)
	if update.IsEmpty() {
		account, err = s.accounts.GetByID(ctx, domain.RoleUser, id)
	} else {
		account, err = s.accounts.UpdateProfile(ctx, id, update)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !update.IsEmpty() {
		s.activity.record(ctx, id, domain.ActivityProfileUpdate, "Profile updated", 0, nil)
	}
	return account, nil
}

type DashboardStats struct {
	TotalTournaments int `json:"totalTournaments"`
	TotalRewards     int `json:"totalRewards"`
	TotalPoints      int `json:"totalPoints"`
}

type Dashboard struct {
	User        *domain.Account            `json:"user"`
	Tournaments []*domain.Participation    `json:"tournaments"`
	Rewards     []*domain.RewardClaim      `json:"rewards"`
	Activity    []*domain.ActivityLogEntry `json:"activity"`
	Stats       DashboardStats             `json:"stats"`
}

// Dashboard runs its four reads concurrently. If any read fails the whole
// call fails.
func (s *AuthService) Dashboard(ctx context.Context, kind domain.Role, id uuid.UUID) (*Dashboard, error) {
	if kind != domain.RoleUser {
		return nil, domain.ErrDashboardUnsupported
	}

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		account, err := s.accounts.GetByID(gctx, domain.RoleUser, id)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		d.User = account
		return err
	})
	g.Go(func() error {
		participations, err := s.participations.ListByUser(gctx, id)
		d.Tournaments = participations
		return err
	})
	g.Go(func() error {
		claims, err := s.rewards.ListClaimsByUser(gctx, id)
		d.Rewards = claims
		return err
	})
	g.Go(func() error {
		entries, err := s.activityRepo.ListByUser(gctx, id, dashboardActivityLimit)
		d.Activity = entries
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if d.Tournaments == nil {
		d.Tournaments = []*domain.Participation{}
	}
	if d.Rewards == nil {
		d.Rewards = []*domain.RewardClaim{}
	}
	if d.Activity == nil {
		d.Activity = []*domain.ActivityLogEntry{}
	}
	d.Stats = DashboardStats{
		TotalTournaments: len(d.Tournaments),
		TotalRewards:     len(d.Rewards),
		TotalPoints:      d.User.Points,
	}
	return &d, nil
}
