package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{name: "validation", err: domain.Validation("Missing required fields"), wantStatus: http.StatusBadRequest, wantBody: "Missing required fields"},
		{name: "conflict", err: domain.ErrEmailTaken, wantStatus: http.StatusBadRequest, wantBody: "User already exists with this email"},
		{name: "business rule", err: domain.ErrOutOfStock, wantStatus: http.StatusBadRequest, wantBody: "Reward out of stock"},
		{name: "unsupported", err: domain.ErrDashboardUnsupported, wantStatus: http.StatusBadRequest, wantBody: "Dashboard data only available for users"},
		{name: "unauthenticated", err: domain.ErrExpiredToken, wantStatus: http.StatusUnauthorized, wantBody: "Token expired"},
		{name: "forbidden", err: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantBody: "Insufficient permissions"},
		{name: "not found", err: domain.ErrRewardNotFound, wantStatus: http.StatusNotFound, wantBody: "Reward not found"},
		{name: "wrapped domain error", err: fmt.Errorf("claim: %w", domain.ErrInsufficientPoints), wantStatus: http.StatusBadRequest, wantBody: "Insufficient points"},
		{name: "unexpected", err: errors.New("connection refused on 10.0.0.3"), wantStatus: http.StatusInternalServerError, wantBody: "Internal server error", wantLogged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/rewards", nil)

			Error(rec, req, zap.New(core), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Error)
			assert.Equal(t, tt.wantLogged, logs.Len() == 1)
		})
	}
}
