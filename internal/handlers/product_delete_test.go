package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/stocktrack-api/internal/services"
)

func TestProductDeleteHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockProductDeleter(ctrl)

	router := chi.NewRouter()
	router.Delete("/api/products/{id}", NewProductDeleteHandler(svc))

	t.Run("Deleted", func(t *testing.T) {
		svc.EXPECT().Delete(gomock.Any(), "alice@example.com", int64(1)).Return(nil)

		req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/products/1", nil))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Product deleted successfully"}`, w.Body.String())
	})

	t.Run("NonNumericID", func(t *testing.T) {
		req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/products/abc", nil))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Product not found"}`, w.Body.String())
	})

	t.Run("NotOwnedOrMissing", func(t *testing.T) {
		svc.EXPECT().Delete(gomock.Any(), "alice@example.com", int64(99)).Return(services.ErrProductNotFound)

		req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/products/99", nil))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Product not found"}`, w.Body.String())
	})

	t.Run("ServerError", func(t *testing.T) {
		svc.EXPECT().Delete(gomock.Any(), "alice@example.com", int64(1)).Return(errors.New("connection reset"))

		req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/products/1", nil))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Server error"}`, w.Body.String())
	})

	t.Run("NoClaims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Access token required"}`, w.Body.String())
	})
}
