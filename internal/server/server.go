package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/raaihank/pii-shield/internal/cache"
	"github.com/raaihank/pii-shield/internal/config"
	"github.com/raaihank/pii-shield/internal/logger"
	"github.com/raaihank/pii-shield/internal/privacy"
	"github.com/raaihank/pii-shield/internal/websocket"
)

// Server exposes the detection engine over HTTP. Detection, masking,
// batch scanning, and the sanitizing proxy endpoint all go through one
// shared detector instance.
type Server struct {
	config    *config.Config
	logger    *logger.Logger
	detector  *privacy.Detector
	router    *mux.Router
	server    *http.Server
	wsHub     *websocket.Hub
	cache     *cache.ResultCache
	startTime time.Time
}

// New creates a new API server instance
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	detector := privacy.New(privacy.Options{
		ContextValidation: cfg.Detection.ContextValidation,
		StrictValidation:  cfg.Detection.StrictValidation,
		CollectStatistics: cfg.Detection.CollectStatistics,
		IncludeContext:    cfg.Detection.IncludeContext,
	}, log.WithComponent("privacy").Logger)

	if err := applyMaskingConfig(detector, cfg.Masking); err != nil {
		return nil, err
	}

	wsHub := websocket.NewHub(&websocket.HubConfig{
		BroadcastDetections:  true,
		BroadcastRequests:    true,
		BroadcastSystem:      true,
		BroadcastConnections: true,

		MaxConnections:  cfg.WebSocket.MaxConnections,
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		PingInterval:    cfg.WebSocket.PingInterval,
		PongTimeout:     cfg.WebSocket.PongTimeout,
		WriteTimeout:    cfg.WebSocket.WriteTimeout,
		MaxMessageSize:  cfg.WebSocket.MaxMessageSize,
		AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
	}, log.WithComponent("websocket").Logger)

	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		var err error
		resultCache, err = cache.NewResultCache(&cache.Config{
			RedisURL:   cfg.Cache.RedisURL,
			DefaultTTL: cfg.Cache.TTL,
			KeyPrefix:  "shield",
		}, log.WithComponent("cache").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
	}

	server := &Server{
		config:    cfg,
		logger:    log.WithComponent("server"),
		detector:  detector,
		router:    mux.NewRouter(),
		wsHub:     wsHub,
		cache:     resultCache,
		startTime: time.Now(),
	}

	server.setupRoutes()

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server, nil
}

// applyMaskingConfig applies configured strategy overrides to the
// detector: the blanket default first, then per-type entries.
func applyMaskingConfig(detector *privacy.Detector, cfg config.MaskingConfig) error {
	if cfg.DefaultStrategy != "" {
		strategy, ok := privacy.ParseStrategy(cfg.DefaultStrategy)
		if !ok {
			return fmt.Errorf("unknown masking strategy: %s", cfg.DefaultStrategy)
		}
		detector.SetAllStrategies(strategy)
	}

	for typeName, strategyName := range cfg.Strategies {
		piiType, ok := privacy.ParseType(typeName)
		if !ok {
			return fmt.Errorf("unknown PII type in masking config: %s", typeName)
		}
		strategy, ok := privacy.ParseStrategy(strategyName)
		if !ok {
			return fmt.Errorf("unknown masking strategy for %s: %s", typeName, strategyName)
		}
		detector.SetStrategy(piiType, strategy)
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/", s.handleInfo).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/stats", s.handleStats).Methods("GET")
	s.router.HandleFunc("/types", s.handleTypes).Methods("GET")

	s.router.HandleFunc("/detect", s.handleDetect).Methods("POST")
	s.router.HandleFunc("/mask", s.handleMask).Methods("POST")

	proxyRouter := s.router.PathPrefix("/proxy").Subrouter()
	proxyRouter.HandleFunc("/sanitize", s.handleSanitize).Methods("POST")

	batchRouter := s.router.PathPrefix("/batch").Subrouter()
	batchRouter.HandleFunc("/detect", s.handleBatchDetect).Methods("POST")

	configRouter := s.router.PathPrefix("/config").Subrouter()
	configRouter.HandleFunc("/strategy", s.handleSetStrategy).Methods("PUT")
	configRouter.HandleFunc("/strategy/all", s.handleSetAllStrategies).Methods("PUT")

	if s.config.WebSocket.Enabled {
		s.router.HandleFunc(s.config.WebSocket.Path, s.handleWebSocket).Methods("GET")
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting PII-Shield API server",
		zap.Int("port", s.config.Server.Port),
		zap.Float64("confidence_threshold", s.config.Detection.ConfidenceThreshold),
		zap.Bool("cache_enabled", s.cache != nil),
	)

	go s.wsHub.Run()

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping PII-Shield API server")

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("Failed to close result cache", zap.Error(err))
		}
	}
	return s.server.Shutdown(ctx)
}

// handleWebSocket handles WebSocket connections for the dashboard
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}

// GetWebSocketHub returns the WebSocket hub for broadcasting events
func (s *Server) GetWebSocketHub() *websocket.Hub {
	return s.wsHub
}

// parseTypes converts request type names into PIIType values, or
// returns the offending name.
func parseTypes(names []string) ([]privacy.PIIType, string, bool) {
	if len(names) == 0 {
		return nil, "", true
	}
	types := make([]privacy.PIIType, 0, len(names))
	for _, name := range names {
		t, ok := privacy.ParseType(strings.TrimSpace(name))
		if !ok {
			return nil, name, false
		}
		types = append(types, t)
	}
	return types, "", true
}
