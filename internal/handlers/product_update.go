package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/stocktrack-api/internal/logger"
	"github.com/sbilibin2017/stocktrack-api/internal/middlewares"
	"github.com/sbilibin2017/stocktrack-api/internal/models"
	"github.com/sbilibin2017/stocktrack-api/internal/services"
)

// ProductUpdater defines the interface that the service must implement.
type ProductUpdater interface {
	Update(ctx context.Context, ownerEmail string, id int64, in services.ProductInput) (*models.ProductDB, error)
}

// NewProductUpdateHandler returns an HTTP handler replacing every field of
// the caller's product. A row owned by another account is reported exactly
// like a missing one.
// @Summary Update a product
// @Description Full field replacement of the row matching both the id and the caller's ownership.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Param productRequest body handlers.ProductRequest true "Product fields"
// @Success 200 {object} models.ProductDB "Updated row"
// @Failure 400 {object} handlers.ErrorResponse "Missing or malformed fields"
// @Failure 404 {object} handlers.ErrorResponse "Not owned or missing"
// @Router /api/products/{id} [put]
func NewProductUpdateHandler(svc ProductUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaims(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Access token required"})
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Product not found"})
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		row, err := svc.Update(r.Context(), claims.Email, id, req.toInput())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidProduct):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "All fields are required"})
			case errors.Is(err, services.ErrProductNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Product not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(row)
	}
}
