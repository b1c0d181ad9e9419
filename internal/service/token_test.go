package service_test

import (
	"testing"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-for-testing-only"

func TestTokenService_IssueVerify(t *testing.T) {
	tokens := service.NewTokenService(testSecret, 7*24*time.Hour)
	account := &domain.Account{ID: uuid.New(), Kind: domain.RoleModerator, Email: "mod@example.com", Name: "Mod"}

	token, err := tokens.Issue(account)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.UserID)
	assert.Equal(t, account.ID.String(), claims.Subject)
	assert.Equal(t, domain.RoleModerator, claims.Role)
	assert.Equal(t, "mod@example.com", claims.Email)
	assert.Equal(t, "Mod", claims.Name)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, account.ID, id)
}

func TestTokenService_Verify(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	account := &domain.Account{ID: uuid.New(), Kind: domain.RoleUser, Email: "a@example.com", Name: "A"}

	sign := func(method jwt.SigningMethod, key interface{}, claims service.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	validClaims := func() service.Claims {
		return service.Claims{
			UserID: account.ID.String(),
			Role:   domain.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	badRole := validClaims()
	badRole.Role = "root"

	badID := validClaims()
	badID.UserID = "42"

	wrongSecret, err := service.NewTokenService("another-secret-of-some-length", time.Hour).Issue(account)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", wantErr: domain.ErrInvalidToken},
		{name: "wrong secret", token: wrongSecret, wantErr: domain.ErrInvalidToken},
		{name: "expired", token: sign(jwt.SigningMethodHS256, []byte(testSecret), expired), wantErr: domain.ErrExpiredToken},
		{name: "no expiry", token: sign(jwt.SigningMethodHS256, []byte(testSecret), noExpiry), wantErr: domain.ErrInvalidToken},
		{name: "HS512 rejected", token: sign(jwt.SigningMethodHS512, []byte(testSecret), validClaims()), wantErr: domain.ErrInvalidToken},
		{name: "none algorithm", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()), wantErr: domain.ErrInvalidToken},
		{name: "unknown role", token: sign(jwt.SigningMethodHS256, []byte(testSecret), badRole), wantErr: domain.ErrInvalidToken},
		{name: "bad account id", token: sign(jwt.SigningMethodHS256, []byte(testSecret), badID), wantErr: domain.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := service.NewBcryptHasher(4)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, hasher.Compare(hash, "correct horse"))
	assert.Error(t, hasher.Compare(hash, "wrong horse"))

	_, err = hasher.Hash(string(make([]byte, 100)))
	assert.Error(t, err)
}
