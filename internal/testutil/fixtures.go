package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountBuilder creates test accounts with a builder pattern
type AccountBuilder struct {
	kind     domain.Role
	name     string
	email    string
	password string
	points   int
}

// NewAccountBuilder creates a User account builder with default values
func NewAccountBuilder() *AccountBuilder {
	suffix := uuid.New().String()[:8]
	return &AccountBuilder{
		kind:     domain.RoleUser,
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		points:   domain.WelcomeBonus,
	}
}

// WithKind selects the account partition
func (b *AccountBuilder) WithKind(kind domain.Role) *AccountBuilder {
	b.kind = kind
	return b
}

func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.name = name
	return b
}

func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.email = email
	return b
}

func (b *AccountBuilder) WithPassword(password string) *AccountBuilder {
	b.password = password
	return b
}

// WithPoints sets the starting balance (users only)
func (b *AccountBuilder) WithPoints(points int) *AccountBuilder {
	b.points = points
	return b
}

// Build stores the account and returns it with the raw password
func (b *AccountBuilder) Build(t *testing.T, repos *repository.Repositories) (*domain.Account, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Kind:         b.kind,
		Name:         b.name,
		Email:        domain.NormalizeEmail(b.email),
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if b.kind == domain.RoleUser {
		account.Points = b.points
	}

	if err := repos.Account.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	return account, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

var loginPaths = map[domain.Role]string{
	domain.RoleUser:      "/auth/login",
	domain.RoleAdmin:     "/auth/admin-login",
	domain.RoleHost:      "/auth/host-login",
	domain.RoleModerator: "/auth/moderator-login",
}

// BuildAndAuthenticate stores the account, logs in through the API and
// returns the account with its token.
func (b *AccountBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.Account, string) {
	t.Helper()

	account, password := b.Build(t, ts.Repos)

	resp := DoJSON(t, http.MethodPost, ts.APIURL(loginPaths[account.Kind]), map[string]string{
		"email":    account.Email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return account, authResp.Token
}

// RewardBuilder creates test rewards
type RewardBuilder struct {
	title  string
	points int
	stock  int
	active bool
}

func NewRewardBuilder() *RewardBuilder {
	return &RewardBuilder{
		title:  fmt.Sprintf("Reward %s", uuid.New().String()[:6]),
		points: 50,
		stock:  10,
		active: true,
	}
}

func (b *RewardBuilder) WithTitle(title string) *RewardBuilder {
	b.title = title
	return b
}

func (b *RewardBuilder) WithPoints(points int) *RewardBuilder {
	b.points = points
	return b
}

func (b *RewardBuilder) WithStock(stock int) *RewardBuilder {
	b.stock = stock
	return b
}

func (b *RewardBuilder) Inactive() *RewardBuilder {
	b.active = false
	return b
}

// Build stores the reward
func (b *RewardBuilder) Build(t *testing.T, repos *repository.Repositories) *domain.Reward {
	t.Helper()

	now := time.Now()
	reward := &domain.Reward{
		ID:        uuid.New(),
		Title:     b.title,
		Points:    b.points,
		Stock:     b.stock,
		IsActive:  b.active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repos.Reward.Create(context.Background(), reward); err != nil {
		t.Fatalf("failed to create reward: %v", err)
	}
	return reward
}

// TournamentBuilder creates test tournaments
type TournamentBuilder struct {
	title           string
	status          domain.TournamentStatus
	maxParticipants int
	createdBy       uuid.UUID
	start           time.Time
}

func NewTournamentBuilder() *TournamentBuilder {
	return &TournamentBuilder{
		title:           fmt.Sprintf("Cup %s", uuid.New().String()[:6]),
		status:          domain.TournamentStatusUpcoming,
		maxParticipants: domain.DefaultMaxParticipants,
		createdBy:       uuid.New(),
		start:           time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second),
	}
}

func (b *TournamentBuilder) WithTitle(title string) *TournamentBuilder {
	b.title = title
	return b
}

func (b *TournamentBuilder) WithStatus(status domain.TournamentStatus) *TournamentBuilder {
	b.status = status
	return b
}

func (b *TournamentBuilder) WithMaxParticipants(n int) *TournamentBuilder {
	b.maxParticipants = n
	return b
}

func (b *TournamentBuilder) WithStart(start time.Time) *TournamentBuilder {
	b.start = start
	return b
}

// Build stores the tournament
func (b *TournamentBuilder) Build(t *testing.T, repos *repository.Repositories) *domain.Tournament {
	t.Helper()

	now := time.Now()
	tournament := &domain.Tournament{
		ID:              uuid.New(),
		Title:           b.title,
		GameName:        "Rocket League",
		StartDate:       b.start,
		EndDate:         b.start.Add(48 * time.Hour),
		MaxParticipants: b.maxParticipants,
		Status:          b.status,
		CreatedBy:       b.createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := repos.Tournament.Create(context.Background(), tournament); err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}
	return tournament
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	bodyReader := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// DoJSON sends a JSON request and returns the response. The caller closes
// the body.
func DoJSON(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(CreateAuthenticatedRequest(t, method, url, body, token))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	return resp
}
