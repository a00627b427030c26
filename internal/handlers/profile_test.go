package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/stocktrack-api/internal/jwt"
	"github.com/sbilibin2017/stocktrack-api/internal/middlewares"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
	"github.com/sbilibin2017/stocktrack-api/internal/services"
)

func withClaims(r *http.Request) *http.Request {
	claims := &jwt.Claims{UserID: 1, Email: "alice@example.com", Role: models.RoleUser}
	return r.WithContext(middlewares.SetClaims(r.Context(), claims))
}

func TestProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockProfileGetter(ctrl)
	handler := NewProfileHandler(svc)

	t.Run("Success", func(t *testing.T) {
		svc.EXPECT().
			GetProfile(gomock.Any(), int64(1)).
			Return(&models.UserDB{ID: 1, Email: "alice@example.com", PasswordHash: "hash", Role: models.RoleUser}, nil)

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.UserDB
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("AccountDeleted", func(t *testing.T) {
		svc.EXPECT().
			GetProfile(gomock.Any(), int64(1)).
			Return(nil, services.ErrUserNotFound)

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("NoClaims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Access token required"}`, w.Body.String())
	})

	t.Run("ServerError", func(t *testing.T) {
		svc.EXPECT().
			GetProfile(gomock.Any(), int64(1)).
			Return(nil, errors.New("connection reset"))

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Server error"}`, w.Body.String())
	})
}
