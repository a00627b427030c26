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
	"github.com/sbilibin2017/stocktrack-api/internal/services"
)

// ProductDeleter defines the interface that the service must implement.
type ProductDeleter interface {
	Delete(ctx context.Context, ownerEmail string, id int64) error
}

// DeleteResponse represents a successful delete confirmation
// swagger:model DeleteResponse
type DeleteResponse struct {
	// Confirmation message
	// default: Product deleted successfully
	Message string `json:"message"`
}

// NewProductDeleteHandler returns an HTTP handler deleting the caller's
// product. A second delete of the same id returns 404.
// @Summary Delete a product
// @Description Removes the row matching both the id and the caller's ownership.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {object} handlers.DeleteResponse "Deleted"
// @Failure 404 {object} handlers.ErrorResponse "Not owned or missing"
// @Router /api/products/{id} [delete]
func NewProductDeleteHandler(svc ProductDeleter) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), claims.Email, id); err != nil {
			switch {
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
		json.NewEncoder(w).Encode(DeleteResponse{Message: "Product deleted successfully"})
	}
}
