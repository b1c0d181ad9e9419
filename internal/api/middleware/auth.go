package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/riyadah-elite/internal/api/respond"
	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	claimsKey  contextKey = "claims"
	accountKey contextKey = "account"
)

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", domain.ErrMalformedToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// Authenticate verifies the bearer token and stores its claims in the
// request context.
func Authenticate(tokens *service.TokenService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, r, logger, err)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				respond.Error(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose role is not in allowed, then re-loads
// the account so that tokens of deleted accounts stop working. Must run
// after Authenticate.
func RequireRole(auth *service.AuthService, allowed domain.RoleSet, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				respond.Error(w, r, logger, domain.ErrMissingToken)
				return
			}

			if !allowed.Allows(claims.Role) {
				respond.Error(w, r, logger, domain.ErrForbidden)
				return
			}

			id, err := claims.AccountID()
			if err != nil {
				respond.Error(w, r, logger, domain.ErrInvalidToken)
				return
			}

			account, err := auth.ResolveAccount(r.Context(), claims.Role, id)
			if err != nil {
				respond.Error(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok
}

// GetAccount returns the live account resolved by RequireRole.
func GetAccount(ctx context.Context) (*domain.Account, bool) {
	account, ok := ctx.Value(accountKey).(*domain.Account)
	return account, ok
}

// Identity returns the caller's role and account id from the verified
// token.
func Identity(ctx context.Context) (domain.Role, uuid.UUID, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return "", uuid.Nil, false
	}
	id, err := claims.AccountID()
	if err != nil {
		return "", uuid.Nil, false
	}
	return claims.Role, id, true
}
