package handlers

import (
	"encoding/json"
	"net/http"
)

// NewIndexHandler returns an HTTP handler describing the API surface.
// @Summary API index
// @Description Lists the available endpoints.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Endpoint index"
// @Router / [get]
func NewIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "StockTrack API is running!",
			"endpoints": map[string]any{
				"auth": map[string]string{
					"register": "POST /register",
					"login":    "POST /login",
					"profile":  "GET /api/profile",
					"users":    "GET /api/users",
					"userInfo": "GET /api/user-info",
				},
				"products": map[string]string{
					"list":   "GET /api/products",
					"create": "POST /api/products",
					"update": "PUT /api/products/{id}",
					"delete": "DELETE /api/products/{id}",
				},
				"health": "GET /health",
			},
		})
	}
}
