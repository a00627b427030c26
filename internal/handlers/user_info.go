package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/stocktrack-api/internal/middlewares"
)

// UserInfoResponse is the identity echoed back from the verified token
// swagger:model UserInfoResponse
type UserInfoResponse struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID int64  `json:"userId"`
}

// NewUserInfoHandler returns an HTTP handler echoing the caller's token
// identity. Served entirely from the verified claims; no store lookup.
// @Summary Get token identity
// @Description Returns the email, role and account id embedded in the presented token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UserInfoResponse "Identity"
// @Router /api/user-info [get]
func NewUserInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaims(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Access token required"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UserInfoResponse{
			Email:  claims.Email,
			Role:   claims.Role,
			UserID: claims.UserID,
		})
	}
}
