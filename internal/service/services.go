package service

import (
	"github.com/dom/riyadah-elite/internal/config"
	"github.com/dom/riyadah-elite/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Tokens      *TokenService
	Auth        *AuthService
	Rewards     *RewardService
	Tournaments *TournamentService
	Games       *GameService
}

// NewServices wires every service over one repository set. notifier may be
// nil.
func NewServices(repos *repository.Repositories, cfg *config.Config, notifier Notifier, logger *zap.Logger) *Services {
	tokens := NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := NewBcryptHasher(cfg.BcryptCost)

	return &Services{
		Tokens:      tokens,
		Auth:        NewAuthService(repos, tokens, hasher, notifier, logger),
		Rewards:     NewRewardService(repos, notifier, logger),
		Tournaments: NewTournamentService(repos, notifier, logger),
		Games:       NewGameService(repos.Game),
	}
}
