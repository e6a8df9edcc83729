package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/myfolio-api/config"
	"github.com/rpupo63/myfolio-api/database"
	"github.com/rpupo63/myfolio-api/storage"
)

type Server struct {
	*http.Server
}

func NewServer(cfg *config.Config, db database.Database, bucket storage.Bucket) Server {
	startupTime := time.Now()

	router := newRouter(cfg, db, bucket, withStartupTime(startupTime))

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout(), // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout(),  // Timeout for idle connections
	}

	return Server{server}
}

type router struct {
	startupTime time.Time
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(cfg *config.Config, db database.Database, bucket storage.Bucket, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	// Apply CORS middleware
	acceptedOrigins := cfg.Origins()
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(cfg, db, bucket, router.startupTime)
	setupRoutes(chiRouter, handlers)

	return chiRouter
}

// Start serves until the server is shut down. http.ErrServerClosed is not reported as an error.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
