package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// WithCORS разрешает браузерным клиентам с указанных origin ходить в API с cookie.
func WithCORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Origin", "X-Requested-With", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler
}
