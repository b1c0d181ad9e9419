// Package respond renders JSON bodies and maps errors onto HTTP statuses.
// Every error body has the shape {"error": "..."}.
package respond

import (
	"errors"
	"net/http"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const internalMessage = "Internal server error"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func Message(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, MessageResponse{Message: message})
}

func ErrorMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, ErrorResponse{Error: message})
}

// Error renders err. Intentional *domain.Error values are returned verbatim
// with their kind's status; anything else is logged and hidden behind a
// generic 500.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		ErrorMessage(w, r, StatusFor(de.Kind), de.Message)
		return
	}

	logger.Error("unexpected error",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())))
	ErrorMessage(w, r, http.StatusInternalServerError, internalMessage)
}

func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict, domain.KindBusinessRule, domain.KindUnsupported:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
