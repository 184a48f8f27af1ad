// Package httpapi exposes the authentication and chat services over a JSON
// HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/degreedialog/advisor/internal/logging"
	"github.com/degreedialog/advisor/internal/server/chats"
	"github.com/degreedialog/advisor/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address        string
	users          *users.Service
	chats          *chats.Service
	logger         logging.Logger
	allowedOrigins []string
}

func NewServer(address string, l logging.Logger, us *users.Service, cs *chats.Service, allowedOrigins []string) *Server {
	return &Server{
		address:        address,
		logger:         l.With("module", "http_server"),
		users:          us,
		chats:          cs,
		allowedOrigins: allowedOrigins,
	}
}

// Router builds the route table. Exported so tests can drive the full stack
// through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS", "PUT", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleStatus)
	r.Head("/", s.handleStatus)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register/", s.handleRegister)
		r.Post("/auth/login/", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/auth/profile/", s.handleProfile)
			r.Post("/chat/", s.handleChat)
			r.Get("/chat/history/", s.handleHistory)
			r.Delete("/chat/clear/", s.handleClear)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
