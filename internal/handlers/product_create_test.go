package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/stocktrack-api/internal/models"
	"github.com/sbilibin2017/stocktrack-api/internal/services"
)

func TestProductCreateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockProductCreator(ctrl)
	handler := NewProductCreateHandler(svc)

	t.Run("Created", func(t *testing.T) {
		svc.EXPECT().
			Create(gomock.Any(), "alice@example.com", services.ProductInput{ProductCode: "A1", Product: "Widget", Qty: 3, PerPrice: 9.99}).
			Return(&models.ProductDB{ID: 1, ProductCode: "A1", Product: "Widget", Qty: 3, PerPrice: 9.99, UserEmail: "alice@example.com"}, nil)

		body := `{"productCode":"A1","product":"Widget","qty":3,"perPrice":9.99}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body)))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp models.ProductDB
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "alice@example.com", resp.UserEmail)
	})

	t.Run("StringFormValuesCoerced", func(t *testing.T) {
		svc.EXPECT().
			Create(gomock.Any(), "alice@example.com", services.ProductInput{ProductCode: "A1", Product: "Widget", Qty: 3, PerPrice: 9.99}).
			Return(&models.ProductDB{ID: 2, ProductCode: "A1", Product: "Widget", Qty: 3, PerPrice: 9.99, UserEmail: "alice@example.com"}, nil)

		body := `{"productCode":"A1","product":"Widget","qty":"3","perPrice":"9.99"}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body)))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("NonNumericQty", func(t *testing.T) {
		body := `{"productCode":"A1","product":"Widget","qty":"three","perPrice":"9.99"}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body)))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc.EXPECT().
			Create(gomock.Any(), "alice@example.com", services.ProductInput{Product: "Widget", Qty: 3, PerPrice: 9.99}).
			Return(nil, services.ErrInvalidProduct)

		body := `{"product":"Widget","qty":3,"perPrice":9.99}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body)))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"All fields are required"}`, w.Body.String())
	})

	t.Run("NoClaims", func(t *testing.T) {
		body := `{"productCode":"A1","product":"Widget","qty":3,"perPrice":9.99}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Access token required"}`, w.Body.String())
	})
}
