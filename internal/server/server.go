// file: internal/server/server.go
// version: 2.0.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

// Package server exposes the preview sessions, the catalog and stateless
// prop derivation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/cache"
	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/metrics"
	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/realtime"
	"github.com/jdfalk/cover-preview/internal/server/middleware"
	"github.com/jdfalk/cover-preview/internal/session"
	"github.com/jdfalk/cover-preview/internal/watcher"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const (
	heartbeatInterval = 5 * time.Second
	searchCacheTTL    = 5 * time.Minute
	jsonBodyLimit     = 64 << 10
	overrideBodyLimit = 1 << 20
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine

	sessions    *session.Manager
	hub         *realtime.EventHub
	log         *zap.Logger
	searches    *cache.Cache[[]catalog.Match]
	catalogPath string
	viewport    preview.Viewport
	dbType      string
	watcher     *watcher.Watcher
}

// Options wires a Server to its collaborators.
type Options struct {
	Sessions           *session.Manager
	Hub                *realtime.EventHub
	Logger             *zap.Logger
	CatalogPath        string
	DatabaseType       string
	Viewport           preview.Viewport
	RateLimitPerMinute int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns default server configuration
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:        "8080",
		Host:        "localhost",
		ReadTimeout: 15 * time.Second,
		// SSE streams stay open, so writes are not bounded
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new server instance
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	vp := opts.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = preview.DefaultViewport
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log.Named("http")))
	router.Use(corsMiddleware())

	// Register metrics (idempotent)
	metrics.Register()

	s := &Server{
		router:      router,
		sessions:    opts.Sessions,
		hub:         opts.Hub,
		log:         log,
		searches:    cache.New[[]catalog.Match](searchCacheTTL),
		catalogPath: opts.CatalogPath,
		viewport:    vp,
		dbType:      opts.DatabaseType,
	}
	s.setupRoutes(opts.RateLimitPerMinute)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes(ratePerMinute int) {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	s.router.GET("/api/events", s.handleEvents)

	api := s.router.Group("/api/v1")
	if ratePerMinute > 0 {
		api.Use(middleware.NewIPRateLimiter(ratePerMinute, max(ratePerMinute/10, 5)).Middleware())
	}
	api.Use(middleware.MaxRequestBodySize(jsonBodyLimit, overrideBodyLimit))
	{
		api.GET("/catalog", s.listCatalog)
		api.GET("/catalog/search", s.searchCatalog)

		api.GET("/covers/props", s.coverProps)

		api.POST("/sessions", s.openSession)
		api.GET("/sessions/:id", s.getSession)
		api.POST("/sessions/:id/keys", s.pressKey)
		api.POST("/sessions/:id/actions", s.dispatchAction)
		api.PUT("/sessions/:id/overrides/:field", s.setOverride)
		api.PUT("/sessions/:id/viewport", s.resize)
		api.POST("/sessions/:id/unload", s.unloadSession)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Session-ID")
		c.Header("Access-Control-Expose-Headers", "X-Session-ID")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ReloadCatalog re-reads the catalog file and swaps it into every session.
// A broken file keeps the previous catalog in service.
func (s *Server) ReloadCatalog() error {
	start := time.Now()
	cat, err := catalog.Load(s.catalogPath)
	metrics.IncCatalogReload(err)
	if err != nil {
		s.log.Error("catalog reload failed, keeping previous catalog", zap.String("path", s.catalogPath), zap.Error(err))
		return err
	}
	for _, w := range multierr.Errors(cat.Warnings()) {
		s.log.Warn("catalog entry cannot be navigated", zap.Error(w))
	}
	s.sessions.SetCatalog(cat)
	// entries of older generations can no longer be hit
	s.searches.InvalidateAll()
	metrics.SetFriends(cat.FriendCount())
	metrics.SetEditions(cat.EditionCount())
	metrics.ObserveOperationDuration("catalog_reload", time.Since(start))
	s.log.Info("catalog reloaded",
		zap.Int("friends", cat.FriendCount()),
		zap.Int("editions", cat.EditionCount()))
	return nil
}

// WatchCatalog reloads the catalog whenever its file changes.
func (s *Server) WatchCatalog(debounce time.Duration) error {
	if s.catalogPath == "" {
		return errors.New("no catalog path to watch")
	}
	w := watcher.New(func(string) { _ = s.ReloadCatalog() }, debounce, watcher.WithLogger(s.log))
	if err := w.Start(s.catalogPath); err != nil {
		return fmt.Errorf("watch catalog: %w", err)
	}
	s.watcher = w
	return nil
}

// Start serves until ctx is cancelled, then drains requests and persists
// every open session.
func (s *Server) Start(ctx context.Context, cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	cat := s.sessions.Catalog()
	metrics.SetFriends(cat.FriendCount())
	metrics.SetEditions(cat.EditionCount())

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	go s.heartbeat(ctx)

	var errs error
	select {
	case err := <-serveErr:
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("listen: %w", err))
		}
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("server forced to shutdown: %w", err))
	}
	if s.watcher != nil {
		s.watcher.Stop()
	}
	errs = multierr.Append(errs, s.sessions.Close())

	s.log.Info("server exited")
	return errs
}

// heartbeat pushes system.status events and refreshes runtime gauges.
func (s *Server) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			var mem runtime.MemStats
			runtime.ReadMemStats(&mem)
			metrics.SetMemoryAlloc(mem.Alloc)
			metrics.SetGoroutines(runtime.NumGoroutine())
			s.hub.SendSystemStatus(s.status())
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) status() map[string]any {
	cat := s.sessions.Catalog()
	clients := 0
	if s.hub != nil {
		clients = s.hub.GetClientCount()
	}
	return map[string]any{
		"friends":  cat.FriendCount(),
		"editions": cat.EditionCount(),
		"sessions": s.sessions.Count(),
		"clients":  clients,
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"timestamp":     time.Now().Unix(),
		"version":       Version,
		"database_type": s.dbType,
		"metrics":       s.status(),
	})
}

// handleEvents handles Server-Sent Events (SSE) for real-time updates
func (s *Server) handleEvents(c *gin.Context) {
	if s.hub == nil {
		RespondWithError(c, http.StatusServiceUnavailable, "event hub not initialized", "UNAVAILABLE")
		return
	}
	s.hub.HandleSSE(c)
}

func sessionIDFrom(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-Session-ID")); id != "" {
		return id
	}
	return c.Query("id")
}
