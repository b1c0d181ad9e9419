package handlers

import (
	"net/http"
	"strings"

	"github.com/dom/riyadah-elite/internal/api/middleware"
	"github.com/dom/riyadah-elite/internal/api/respond"
	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RewardHandler struct {
	rewardService *service.RewardService
	logger        *zap.Logger
}

func NewRewardHandler(rewardService *service.RewardService, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
		logger:        logger,
	}
}

type ClaimRewardRequest struct {
	RewardID string `json:"rewardId"`
}

type ClaimRewardResponse struct {
	Message string              `json:"message"`
	Reward  *domain.RewardClaim `json:"reward"`
}

type CreateRewardRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=2048"`
	Points      int    `json:"points" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateRewardRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Points      *int    `json:"points" validate:"omitempty,gte=0"`
	Stock       *int    `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active"`
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardService.ListActive(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, rewards)
}

func (h *RewardHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	claims, err := h.rewardService.ListClaims(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, claims)
}

func (h *RewardHandler) Claim(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	var req ClaimRewardRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if strings.TrimSpace(req.RewardID) == "" {
		respond.Error(w, r, h.logger, domain.Validation("Reward ID is required"))
		return
	}
	rewardID, err := parseID(req.RewardID, domain.ErrRewardNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	claim, err := h.rewardService.Claim(r.Context(), userID, rewardID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, ClaimRewardResponse{
		Message: "Reward claimed successfully",
		Reward:  claim,
	})
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRewardRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	reward, err := h.rewardService.Create(r.Context(), service.CreateRewardInput{
		Title:       sanitize(req.Title),
		Description: sanitize(req.Description),
		ImageURL:    req.ImageURL,
		Points:      req.Points,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, reward)
}

func (h *RewardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), domain.ErrRewardNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var req UpdateRewardRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	reward, err := h.rewardService.Update(r.Context(), id, domain.RewardUpdate{
		Title:       sanitizePtr(req.Title),
		Description: sanitizePtr(req.Description),
		Points:      req.Points,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, reward)
}
