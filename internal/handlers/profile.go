package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/middlewares"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
	"github.com/sbilibin2017/stocktrack-api/internal/services"
)

// ProfileGetter defines the interface that the service must implement.
type ProfileGetter interface {
	GetProfile(ctx context.Context, id int64) (*models.UserDB, error)
}

// NewProfileHandler returns an HTTP handler for the caller's own profile.
// @Summary Get own profile
// @Description Returns the authenticated account's public fields.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserDB "Account"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /api/profile [get]
func NewProfileHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaims(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Access token required"})
			return
		}

		user, err := svc.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "User not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}
