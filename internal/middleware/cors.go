package middleware

import (
	"net/http"

	"chavecerta-backend/internal/config"

	"github.com/rs/cors"
)

// NewCORS builds the cross-origin policy from config. Credentials are
// allowed because the frontend sends the bearer token on every request.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler
}
