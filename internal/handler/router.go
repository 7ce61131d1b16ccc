package handler

import (
	"log/slog"
	"net/http"

	"github.com/vortex/composer-api/internal/middleware"
	"github.com/vortex/composer-api/internal/service"
)

// NewRouter builds the HTTP mux with all routes and middleware.
func NewRouter(logger *slog.Logger, svc service.SessionService, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	sess := NewSessionHandler(svc)

	// Health endpoints
	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("GET /ready", Health)

	// Session endpoints
	mux.HandleFunc("POST /api/v1/sessions", sess.Create)
	mux.HandleFunc("POST /api/v1/sessions/{id}/commands", sess.Apply)
	mux.HandleFunc("GET /api/v1/sessions/{id}/content", sess.Content)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", sess.Delete)

	// Apply middleware chain (innermost first; Logging ends up outermost)
	var h http.Handler = mux
	h = middleware.MaxBodySize(maxBodyBytes)(h)
	h = middleware.CORS(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)

	return h
}
