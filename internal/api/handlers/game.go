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

type GameHandler struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameHandler(gameService *service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

type SubmitGameRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Developer   string `json:"developer" validate:"max=200"`
	Genre       string `json:"genre" validate:"max=100"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=2048"`
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, games)
}

func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	_, submitterID, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	var req SubmitGameRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	game, err := h.gameService.Submit(r.Context(), submitterID, service.SubmitGameInput{
		Title:       sanitize(req.Title),
		Developer:   sanitize(req.Developer),
		Genre:       sanitize(req.Genre),
		Description: sanitize(req.Description),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, game)
}

func (h *GameHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), domain.ErrGameNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var req UpdateStatusRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	game, err := h.gameService.UpdateStatus(r.Context(), id, domain.GameStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, game)
}
