package service

import (
	"errors"
	"time"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Name   string      `json:"name"`
	jwt.RegisteredClaims
}

// AccountID parses the subject id carried in the token.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TokenService signs and verifies stateless HS256 access tokens. There is
// no revocation list: a token stays valid until it expires or the secret
// changes.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(account *domain.Account) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: account.ID.String(),
		Email:  account.Email,
		Role:   account.Kind,
		Name:   account.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns domain.ErrExpiredToken for a well-signed but expired token
// and domain.ErrInvalidToken for anything else that fails.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	if !claims.Role.IsValid() {
		return nil, domain.ErrInvalidToken
	}
	if _, err := claims.AccountID(); err != nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
