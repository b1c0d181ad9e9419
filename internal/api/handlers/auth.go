package handlers

import (
	"net/http"

	"github.com/dom/riyadah-elite/internal/api/middleware"
	"github.com/dom/riyadah-elite/internal/api/respond"
	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=100"`
	Avatar *string `json:"avatar" validate:"omitempty,max=2048"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	email := domain.NormalizeEmail(req.Email)
	if email != "" && requestValidator.Var(email, "email") != nil {
		respond.Error(w, r, h.logger, domain.Validation("Invalid email format"))
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     sanitize(req.Name),
		Email:    email,
		Password: req.Password,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   result.Token,
		User:    result.Account,
	})
}

var loginMessages = map[domain.Role]string{
	domain.RoleUser:      "Login successful",
	domain.RoleAdmin:     "Admin login successful",
	domain.RoleHost:      "Host login successful",
	domain.RoleModerator: "Moderator login successful",
}

// Login returns the login handler for one account partition.
func (h *AuthHandler) Login(kind domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decode(w, r, &req); err != nil {
			respond.Error(w, r, h.logger, err)
			return
		}

		result, err := h.authService.Login(r.Context(), kind, req.Email, req.Password)
		if err != nil {
			respond.Error(w, r, h.logger, err)
			return
		}

		respond.JSON(w, r, http.StatusOK, AuthResponse{
			Message: loginMessages[kind],
			Token:   result.Token,
			User:    result.Account,
		})
	}
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	account, err := h.authService.GetProfile(r.Context(), kind, id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, account)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	var req UpdateProfileRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	account, err := h.authService.UpdateProfile(r.Context(), kind, id, domain.ProfileUpdate{
		Name:   sanitizePtr(req.Name),
		Avatar: req.Avatar,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, account)
}

func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	dashboard, err := h.authService.Dashboard(r.Context(), kind, id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, dashboard)
}
