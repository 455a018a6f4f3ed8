package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS пропускает origin из списка allowed. Элемент списка может содержать
// одну "*", например https://employees-*.vercel.app.
func CORS(allowed []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization", "Cache-Control", "X-Access-Token",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
