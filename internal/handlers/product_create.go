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

// ProductCreator defines the interface that the service must implement.
type ProductCreator interface {
	Create(ctx context.Context, ownerEmail string, in services.ProductInput) (*models.ProductDB, error)
}

// ProductRequest represents the JSON body for product create and update.
// Qty and PerPrice accept numbers or numeric strings; the browser client
// submits raw form field values.
// swagger:model ProductRequest
type ProductRequest struct {
	// Product code
	// required: true
	// default: A1
	ProductCode string `json:"productCode"`

	// Product name
	// required: true
	// default: Widget
	Product string `json:"product"`

	// Quantity
	// required: true
	// default: 3
	Qty models.Quantity `json:"qty"`

	// Unit price, 2-decimal precision
	// required: true
	// default: 9.99
	PerPrice models.Price `json:"perPrice"`
}

func (req ProductRequest) toInput() services.ProductInput {
	return services.ProductInput{
		ProductCode: req.ProductCode,
		Product:     req.Product,
		Qty:         int64(req.Qty),
		PerPrice:    float64(req.PerPrice),
	}
}

// NewProductCreateHandler returns an HTTP handler creating a product for
// the caller. The owner is stamped from the verified token, never from the
// request body.
// @Summary Create a product
// @Description Inserts a product owned by the authenticated account. All four fields are required and must be non-zero.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productRequest body handlers.ProductRequest true "Product fields"
// @Success 201 {object} models.ProductDB "Created row"
// @Failure 400 {object} handlers.ErrorResponse "Missing or malformed fields"
// @Router /api/products [post]
func NewProductCreateHandler(svc ProductCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaims(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Access token required"})
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		row, err := svc.Create(r.Context(), claims.Email, req.toInput())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidProduct):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "All fields are required"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(row)
	}
}
