package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/denizokt/spendtrack/internal/auth"
	"github.com/denizokt/spendtrack/internal/config"
	"github.com/denizokt/spendtrack/internal/http/handlers"
	"github.com/denizokt/spendtrack/internal/middleware"
	"github.com/denizokt/spendtrack/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
// Register and login stay outside the token gate; person and
// transaction routes sit behind it.
func New(cfg config.Config, store storage.Store, log *logrus.Logger) *Server {
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, tokenManager, &cfg, log).Register(mux)

	protected := http.NewServeMux()
	handlers.NewPersonHandler(store, log).Register(protected)
	handlers.NewTransactionHandler(store, log).Register(protected)

	gate := middleware.RequireAuth(tokenManager, protected)
	mux.Handle("/api/persons", gate)
	mux.Handle("/api/persons/", gate)
	mux.Handle("/api/transactions", gate)
	mux.Handle("/api/transactions/", gate)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
