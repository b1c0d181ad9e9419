package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dom/riyadah-elite/internal/api/middleware"
	"github.com/dom/riyadah-elite/internal/api/respond"
	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TournamentHandler struct {
	tournamentService *service.TournamentService
	logger            *zap.Logger
}

func NewTournamentHandler(tournamentService *service.TournamentService, logger *zap.Logger) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		logger:            logger,
	}
}

type CreateTournamentRequest struct {
	Title           string `json:"title" validate:"max=200"`
	GameName        string `json:"game_name" validate:"max=100"`
	Description     string `json:"description" validate:"max=5000"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	PrizePool       string `json:"prize_pool" validate:"max=100"`
	MaxParticipants int    `json:"max_participants" validate:"gte=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// parseDate accepts RFC 3339 timestamps and plain dates. An empty or
// unparsable value yields the zero time.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tournaments)
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), domain.ErrTournamentNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	tournament, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, creatorID, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	var req CreateTournamentRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	start, okStart := parseDate(req.StartDate)
	end, okEnd := parseDate(req.EndDate)
	if !okStart || !okEnd {
		respond.Error(w, r, h.logger, domain.Validation("Invalid date format"))
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), creatorID, service.CreateTournamentInput{
		Title:           sanitize(req.Title),
		GameName:        sanitize(req.GameName),
		Description:     sanitize(req.Description),
		StartDate:       start,
		EndDate:         end,
		PrizePool:       sanitize(req.PrizePool),
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, tournament)
}

func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	kind, userID, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"), domain.ErrTournamentNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	participation, err := h.tournamentService.Join(r.Context(), kind, userID, id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, participation)
}

func (h *TournamentHandler) Leave(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"), domain.ErrTournamentNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	if err := h.tournamentService.Leave(r.Context(), userID, id); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.Message(w, r, http.StatusOK, "Successfully left tournament")
}

func (h *TournamentHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}

	participations, err := h.tournamentService.ListForUser(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, participations)
}

func (h *TournamentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), domain.ErrTournamentNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	var req UpdateStatusRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		respond.Error(w, r, h.logger, domain.Validation("Status is required"))
		return
	}

	tournament, err := h.tournamentService.UpdateStatus(r.Context(), id, domain.TournamentStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tournament)
}

func (h *TournamentHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), domain.ErrTournamentNotFound)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	participants, err := h.tournamentService.Participants(r.Context(), id)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, participants)
}
