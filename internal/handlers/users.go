package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
)

// UserLister defines the interface that the service must implement.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserDB, error)
}

// NewUsersHandler returns an HTTP handler listing all accounts, newest
// first. Any authenticated caller may list accounts; there is no role
// restriction on this endpoint.
// @Summary List accounts
// @Description Returns every account's public fields, newest first.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserDB "Accounts"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /api/users [get]
func NewUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}
