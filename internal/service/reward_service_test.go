package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/dom/riyadah-elite/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardService_Claim(t *testing.T) {
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
		{name: "successful claim", balance: 150, cost: 100, stock: 3, wantBalance: 50, wantStock: 2},
		{name: "exact balance", balance: 100, cost: 100, stock: 1, wantBalance: 0, wantStock: 0},
		{name: "insufficient points", balance: 50, cost: 100, stock: 3, wantErr: domain.ErrInsufficientPoints, wantBalance: 50, wantStock: 3},
		{name: "out of stock", balance: 500, cost: 100, stock: 0, wantErr: domain.ErrOutOfStock, wantBalance: 500, wantStock: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			user, _ := testutil.NewAccountBuilder().WithPoints(tt.balance).Build(t, env.repos)
			reward := testutil.NewRewardBuilder().WithTitle("Mouse Pad").WithPoints(tt.cost).WithStock(tt.stock).Build(t, env.repos)

			claim, err := env.services.Rewards.Claim(ctx, user.ID, reward.ID)

			account, getErr := env.repos.Account.GetByID(ctx, domain.RoleUser, user.ID)
			require.NoError(t, getErr)
			stored, getErr := env.repos.Reward.GetByID(ctx, reward.ID)
			require.NoError(t, getErr)
			assert.Equal(t, tt.wantBalance, account.Points)
			assert.Equal(t, tt.wantStock, stored.Stock)

			claims, listErr := env.services.Rewards.ListClaims(ctx, user.ID)
			require.NoError(t, listErr)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, claims)
				assert.Empty(t, env.notifier.balances[user.ID])
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, claim.UserID)
			assert.Equal(t, reward.ID, claim.RewardID)
			require.Len(t, claims, 1)
			assert.Equal(t, claim.ID, claims[0].ID)

			activity, listErr := env.repos.Activity.ListByUser(ctx, user.ID, 0)
			require.NoError(t, listErr)
			require.Len(t, activity, 1)
			assert.Equal(t, domain.ActivityRewardClaim, activity[0].ActivityType)
			assert.Equal(t, -tt.cost, activity[0].PointsChange)
			assert.Equal(t, "Claimed reward: Mouse Pad", activity[0].Description)
			assert.JSONEq(t, `{"reward_id":"`+reward.ID.String()+`"}`, string(activity[0].Metadata))

			assert.Equal(t, []int{tt.wantBalance}, env.notifier.balances[user.ID])
		})
	}
}

func TestRewardService_ClaimMissing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, _ := testutil.NewAccountBuilder().Build(t, env.repos)
	admin, _ := testutil.NewAccountBuilder().WithKind(domain.RoleAdmin).Build(t, env.repos)
	reward := testutil.NewRewardBuilder().Build(t, env.repos)

	_, err := env.services.Rewards.Claim(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)

	_, err = env.services.Rewards.Claim(ctx, uuid.New(), reward.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Staff hold no points
	_, err = env.services.Rewards.Claim(ctx, admin.ID, reward.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRewardService_ClaimInactive(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, _ := testutil.NewAccountBuilder().Build(t, env.repos)
	reward := testutil.NewRewardBuilder().Inactive().Build(t, env.repos)

	_, err := env.services.Rewards.Claim(ctx, user.ID, reward.ID)
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)
}

func TestRewardService_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	reward := testutil.NewRewardBuilder().WithPoints(10).WithStock(5).Build(t, env.repos)

	const users = 12
	ids := make([]uuid.UUID, users)
	for i := range ids {
		user, _ := testutil.NewAccountBuilder().WithPoints(10).Build(t, env.repos)
		ids[i] = user.ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		outOfStk  int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := env.services.Rewards.Claim(ctx, id, reward.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrOutOfStock):
				outOfStk++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, users-5, outOfStk)

	stored, err := env.repos.Reward.GetByID(ctx, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
}

func TestRewardService_ConcurrentClaimsSameUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, _ := testutil.NewAccountBuilder().WithPoints(100).Build(t, env.repos)
	reward := testutil.NewRewardBuilder().WithPoints(30).WithStock(100).Build(t, env.repos)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env.services.Rewards.Claim(ctx, user.ID, reward.ID) //nolint:errcheck
		}()
	}
	wg.Wait()

	account, err := env.repos.Account.GetByID(ctx, domain.RoleUser, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, account.Points)

	claims, err := env.services.Rewards.ListClaims(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, claims, 3)
}

func TestRewardService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.services.Rewards.Create(ctx, service.CreateRewardInput{Title: "  "})
	require.Error(t, err)
	assert.Equal(t, "Title is required", err.Error())

	_, err = env.services.Rewards.Create(ctx, service.CreateRewardInput{Title: "Cap", Points: -1})
	assert.Error(t, err)

	reward, err := env.services.Rewards.Create(ctx, service.CreateRewardInput{Title: " Cap ", Points: 40, Stock: 2})
	require.NoError(t, err)
	assert.Equal(t, "Cap", reward.Title)
	assert.True(t, reward.IsActive)

	inactive := false
	stock := 9
	updated, err := env.services.Rewards.Update(ctx, reward.ID, domain.RewardUpdate{Stock: &stock, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 40, updated.Points)

	active, err := env.services.Rewards.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	negative := -3
	_, err = env.services.Rewards.Update(ctx, reward.ID, domain.RewardUpdate{Stock: &negative})
	assert.Error(t, err)

	_, err = env.services.Rewards.Update(ctx, uuid.New(), domain.RewardUpdate{Stock: &stock})
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)
}
