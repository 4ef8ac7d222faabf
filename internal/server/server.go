// Package server implements the Teaser AI REST API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ateger/teaserai/internal/common"
	"github.com/ateger/teaserai/internal/interfaces"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	config   *common.Config
	logger   *common.Logger
	storage  interfaces.StorageManager
	pipeline interfaces.PipelineService
	server   *http.Server

	// bcrypt hash of the configured API key, computed once at startup.
	apiKeyHash []byte
}

// NewServer creates a new HTTP REST API server.
func NewServer(
	config *common.Config,
	logger *common.Logger,
	storage interfaces.StorageManager,
	pipeline interfaces.PipelineService,
) (*Server, error) {
	s := &Server{
		config:   config,
		logger:   logger,
		storage:  storage,
		pipeline: pipeline,
	}

	if config.Auth.Enabled() {
		hash, err := bcrypt.GenerateFromPassword([]byte(config.Auth.APIKey), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash API key: %w", err)
		}
		s.apiKeyHash = hash
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, logger, config)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
