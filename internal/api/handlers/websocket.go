package handlers

import (
	"net/http"

	"github.com/dom/riyadah-elite/internal/api/respond"
	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/dom/riyadah-elite/internal/service"
	"github.com/dom/riyadah-elite/internal/websocket"
	ws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub         *websocket.Hub
	tokens      *service.TokenService
	authService *service.AuthService
	upgrader    ws.Upgrader
	logger      *zap.Logger
}

// NewWebSocketHandler accepts upgrades only from the given origins. An
// empty list accepts any origin.
func NewWebSocketHandler(hub *websocket.Hub, tokens *service.TokenService, authService *service.AuthService, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &WebSocketHandler{
		hub:         hub,
		tokens:      tokens,
		authService: authService,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || origins[origin]
			},
		},
		logger: logger,
	}
}

// Handle upgrades the connection. Browsers cannot set headers on websocket
// requests, so the token travels in the query string.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respond.Error(w, r, h.logger, domain.ErrMissingToken)
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	accountID, err := claims.AccountID()
	if err != nil {
		respond.Error(w, r, h.logger, domain.ErrInvalidToken)
		return
	}
	if _, err := h.authService.ResolveAccount(r.Context(), claims.Role, accountID); err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, accountID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
