package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/repository"
	"github.com/dom/riyadah-elite/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string, points int) *domain.Account {
	return &domain.Account{
		ID:           uuid.New(),
		Kind:         domain.RoleUser,
		Name:         "player",
		Email:        email,
		PasswordHash: "hash",
		Points:       points,
	}
}

func TestAccountRepository_PartitionedEmails(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()

	require.NoError(t, repos.Account.Create(ctx, newUser("a@x.com", 100)))

	err := repos.Account.Create(ctx, newUser("a@x.com", 100))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	admin := &domain.Account{ID: uuid.New(), Kind: domain.RoleAdmin, Name: "root", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repos.Account.Create(ctx, admin), "same email may exist in another partition")

	got, err := repos.Account.GetByEmail(ctx, domain.RoleAdmin, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, domain.RoleAdmin, got.Kind)

	_, err = repos.Account.GetByID(ctx, domain.RoleHost, admin.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountRepository_UpdateProfile(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()

	user := newUser("u@x.com", 100)
	require.NoError(t, repos.Account.Create(ctx, user))
	before := user.UpdatedAt

	time.Sleep(time.Millisecond)
	avatar := "https://cdn.example/a.png"
	got, err := repos.Account.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "player", got.Name, "absent fields stay untouched")
	require.NotNil(t, got.Avatar)
	assert.Equal(t, avatar, *got.Avatar)
	assert.True(t, got.UpdatedAt.After(before))

	_, err = repos.Account.UpdateProfile(ctx, uuid.New(), domain.ProfileUpdate{Avatar: &avatar})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRewardRepository_Claim(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		balance     int
		cost        int
		stock       int
		wantErr     error
		wantBalance int
		wantStock   int
	}{
		{name: "success", balance: 150, cost: 100, stock: 2, wantBalance: 50, wantStock: 1},
		{name: "exact balance", balance: 100, cost: 100, stock: 1, wantBalance: 0, wantStock: 0},
		{name: "insufficient points", balance: 50, cost: 100, stock: 1, wantErr: domain.ErrInsufficientPoints, wantBalance: 50, wantStock: 1},
		{name: "out of stock", balance: 500, cost: 100, stock: 0, wantErr: domain.ErrOutOfStock, wantBalance: 500, wantStock: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := memory.NewRepositories()
			user := newUser("c@x.com", tt.balance)
			require.NoError(t, repos.Account.Create(ctx, user))
			reward := &domain.Reward{ID: uuid.New(), Title: "Mousepad", Points: tt.cost, Stock: tt.stock, IsActive: true}
			require.NoError(t, repos.Reward.Create(ctx, reward))

			claim, balance, err := repos.Reward.Claim(ctx, user.ID, reward.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				claims, err := repos.Reward.ListClaimsByUser(ctx, user.ID)
				require.NoError(t, err)
				assert.Empty(t, claims)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBalance, balance)
				require.NotNil(t, claim.Reward)
				assert.Equal(t, tt.wantStock, claim.Reward.Stock)
			}

			gotUser, err := repos.Account.GetByID(ctx, domain.RoleUser, user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, gotUser.Points)

			gotReward, err := repos.Reward.GetByID(ctx, reward.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, gotReward.Stock)
		})
	}
}

func TestRewardRepository_ClaimMissing(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()

	user := newUser("m@x.com", 100)
	require.NoError(t, repos.Account.Create(ctx, user))

	_, _, err := repos.Reward.Claim(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)

	reward := &domain.Reward{ID: uuid.New(), Points: 10, Stock: 1, IsActive: true}
	require.NoError(t, repos.Reward.Create(ctx, reward))
	_, _, err = repos.Reward.Claim(ctx, uuid.New(), reward.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRewardRepository_ConcurrentClaims(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()

	reward := &domain.Reward{ID: uuid.New(), Title: "Headset", Points: 10, Stock: 1, IsActive: true}
	require.NoError(t, repos.Reward.Create(ctx, reward))

	const n = 20
	users := make([]*domain.Account, n)
	for i := range users {
		users[i] = newUser(uuid.NewString()+"@x.com", 100)
		require.NoError(t, repos.Account.Create(ctx, users[i]))
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		outOfStock int
	)
	for _, u := range users {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, _, err := repos.Reward.Claim(ctx, id, reward.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrOutOfStock):
				outOfStock++
			}
		}(u.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, outOfStock)

	got, err := repos.Reward.GetByID(ctx, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestRewardRepository_ListActiveOrdering(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()

	for _, r := range []*domain.Reward{
		{ID: uuid.New(), Title: "expensive", Points: 500, Stock: 1, IsActive: true},
		{ID: uuid.New(), Title: "hidden", Points: 1, Stock: 1, IsActive: false},
		{ID: uuid.New(), Title: "cheap", Points: 50, Stock: 1, IsActive: true},
	} {
		require.NoError(t, repos.Reward.Create(ctx, r))
	}

	rewards, err := repos.Reward.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	assert.Equal(t, "cheap", rewards[0].Title)
	assert.Equal(t, "expensive", rewards[1].Title)
}

func TestParticipationRepository(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()

	tournament := &domain.Tournament{
		ID:              uuid.New(),
		Title:           "Spring Cup",
		GameName:        "Chess",
		StartDate:       time.Now().Add(24 * time.Hour),
		EndDate:         time.Now().Add(48 * time.Hour),
		MaxParticipants: 8,
		Status:          domain.TournamentStatusUpcoming,
	}
	require.NoError(t, repos.Tournament.Create(ctx, tournament))

	userID := uuid.New()
	p := &domain.Participation{ID: uuid.New(), UserID: userID, TournamentID: tournament.ID}
	require.NoError(t, repos.Participation.Create(ctx, p))

	err := repos.Participation.Create(ctx, &domain.Participation{ID: uuid.New(), UserID: userID, TournamentID: tournament.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	list, err := repos.Participation.ListByTournament(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := repos.Tournament.GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 1)

	mine, err := repos.Participation.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Tournament)
	assert.Equal(t, "Spring Cup", mine[0].Tournament.Title)

	require.NoError(t, repos.Participation.Delete(ctx, userID, tournament.ID))
	assert.ErrorIs(t, repos.Participation.Delete(ctx, userID, tournament.ID), repository.ErrNotFound)
}

func TestActivityRepository_ListByUser(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 7; i++ {
		require.NoError(t, repos.Activity.Append(ctx, &domain.ActivityLogEntry{
			ID:           uuid.New(),
			UserID:       userID,
			ActivityType: domain.ActivityLogin,
			PointsChange: i,
		}))
	}
	require.NoError(t, repos.Activity.Append(ctx, &domain.ActivityLogEntry{ID: uuid.New(), UserID: uuid.New()}))

	entries, err := repos.Activity.ListByUser(ctx, userID, 5)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, 6, entries[0].PointsChange, "newest first")
}

func TestStoresAreIndependent(t *testing.T) {
	ctx := context.Background()
	a := memory.NewRepositories()
	b := memory.NewRepositories()

	require.NoError(t, a.Account.Create(ctx, newUser("same@x.com", 100)))
	require.NoError(t, b.Account.Create(ctx, newUser("same@x.com", 100)))
}
