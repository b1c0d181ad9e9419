package api

import (
	"net/http"
	"time"

	"github.com/dom/riyadah-elite/internal/api/handlers"
	"github.com/dom/riyadah-elite/internal/api/middleware"
	"github.com/dom/riyadah-elite/internal/api/respond"
	"github.com/dom/riyadah-elite/internal/config"
	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/logging"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/dom/riyadah-elite/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP surface. rdb is optional; without it the auth
// rate limits are kept in process.
func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config, logger *zap.Logger, rdb *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	rewardHandler := handlers.NewRewardHandler(services.Rewards, logger)
	tournamentHandler := handlers.NewTournamentHandler(services.Tournaments, logger)
	gameHandler := handlers.NewGameHandler(services.Games, logger)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Tokens, services.Auth, cfg.CORSOrigins, logger)

	authenticate := middleware.Authenticate(services.Tokens, logger)
	guard := func(allowed domain.RoleSet) func(http.Handler) http.Handler {
		return middleware.RequireRole(services.Auth, allowed, logger)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respond.JSON(w, r, http.StatusOK, map[string]string{
				"status":    "OK",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		r.Route("/auth", func(r chi.Router) {
			// Public auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.AuthRateLimit, 15*time.Minute, rdb, logger))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login(domain.RoleUser))
				r.Post("/admin-login", authHandler.Login(domain.RoleAdmin))
				r.Post("/host-login", authHandler.Login(domain.RoleHost))
				r.Post("/moderator-login", authHandler.Login(domain.RoleModerator))
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate, guard(domain.Anyone))
				r.Get("/profile", authHandler.GetProfile)
				r.Put("/profile", authHandler.UpdateProfile)
				r.Get("/dashboard", authHandler.Dashboard)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/tournaments", func(r chi.Router) {
				r.With(guard(domain.Anyone)).Get("/", tournamentHandler.List)
				r.With(guard(domain.Anyone)).Get("/user", tournamentHandler.ListForUser)
				r.With(guard(domain.AdminOrModerator)).Post("/", tournamentHandler.Create)
				r.With(guard(domain.Anyone)).Get("/{id}", tournamentHandler.Get)
				r.With(guard(domain.AdminOrHost)).Put("/{id}/status", tournamentHandler.UpdateStatus)
				r.With(guard(domain.Staff)).Get("/{id}/participants", tournamentHandler.Participants)
				r.With(guard(domain.Anyone)).Post("/{id}/join", tournamentHandler.Join)
				r.With(guard(domain.Anyone)).Delete("/{id}/leave", tournamentHandler.Leave)
			})

			r.Route("/rewards", func(r chi.Router) {
				r.With(guard(domain.Anyone)).Get("/", rewardHandler.List)
				r.With(guard(domain.Anyone)).Get("/user", rewardHandler.ListForUser)
				r.With(guard(domain.Anyone)).Post("/claim", rewardHandler.Claim)
				r.With(guard(domain.AdminOnly)).Post("/", rewardHandler.Create)
				r.With(guard(domain.AdminOnly)).Put("/{id}", rewardHandler.Update)
			})

			r.Route("/games", func(r chi.Router) {
				r.With(guard(domain.Anyone)).Get("/", gameHandler.List)
				r.With(guard(domain.Anyone)).Post("/", gameHandler.Submit)
				r.With(guard(domain.AdminOrModerator)).Put("/{id}/status", gameHandler.UpdateStatus)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
