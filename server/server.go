package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ai_content_generator/generator"
	"ai_content_generator/history"
	"ai_content_generator/logger"
	"ai_content_generator/metrics"
)

//go:embed web/dist
var embeddedStatic embed.FS

// Config wires the server's collaborators.
type Config struct {
	Agent   *generator.Agent
	History *history.Store
	Metrics *metrics.Metrics
	Logger  *logger.Logger
	// CORSOrigins lists allowed origins; empty or "*" allows all.
	CORSOrigins []string
	Version     string
}

type Server struct {
	agent    *generator.Agent
	store    *history.Store
	metrics  *metrics.Metrics
	log      *logger.Logger
	origins  []string
	version  string
	started  time.Time
	staticFS http.Handler
}

func New(cfg Config) (*Server, error) {
	if cfg.Agent == nil {
		return nil, errors.New("generator agent required")
	}
	if cfg.History == nil {
		return nil, errors.New("history store required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		agent:    cfg.Agent,
		store:    cfg.History,
		metrics:  cfg.Metrics,
		log:      cfg.Logger,
		origins:  cfg.CORSOrigins,
		version:  cfg.Version,
		started:  time.Now(),
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

// Routes builds the gin engine with middleware, API routes and the embedded web form.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(recovery(s.log))
	r.Use(requestID())
	r.Use(requestLogger(s.log))
	r.Use(instrument(s.metrics))
	r.Use(corsMiddleware(s.origins))

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/info", s.handleInfo)
		api.POST("/generate", s.handleGenerate)
		api.GET("/history", s.handleHistory)
		api.GET("/stats", s.handleStats)
	}
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	r.NoRoute(s.staticHandler())
	return r
}

func (s *Server) staticHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, errorResp{Success: false, Error: "Not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusMethodNotAllowed)
			return
		}
		s.staticFS.ServeHTTP(c.Writer, c.Request)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
