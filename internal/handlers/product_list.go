package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/middlewares"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
)

// ProductLister defines the interface that the service must implement.
type ProductLister interface {
	List(ctx context.Context, ownerEmail string) ([]models.ProductDB, error)
}

// NewProductListHandler returns an HTTP handler listing the caller's
// products, most recently created first. The list is always scoped to the
// authenticated identity.
// @Summary List products
// @Description Returns the caller's products ordered by descending id.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ProductDB "Products"
// @Failure 500 {object} handlers.ErrorResponse "Server error"
// @Router /api/products [get]
func NewProductListHandler(svc ProductLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaims(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Access token required"})
			return
		}

		products, err := svc.List(r.Context(), claims.Email)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(products)
	}
}
