package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"bhindi/internal/services"
)

// Server exposes the desktop services over a local HTTP API.
type Server struct {
	engine *gin.Engine
	svc    *services.Services
	logger *slog.Logger
}

func New(svc *services.Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger), localOriginsOnly())

	s := &Server{engine: engine, svc: svc, logger: logger}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/health", func(c *gin.Context) { ok(c, http.StatusOK, "OK", nil) })

	(&chatHandler{svc: s.svc.Chat}).register(api)
	(&scheduleHandler{svc: s.svc.Schedules}).register(api)
	(&fileHandler{svc: s.svc.Files}).register(api)
	(&integrationHandler{svc: s.svc.Integrations}).register(api)
	(&settingsHandler{svc: s.svc.Settings, models: s.svc.Models}).register(api)
	(&dataHandler{svc: s.svc.Data}).register(api)
}

// Serve listens on addr and blocks until ctx is cancelled or the server fails.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	s.logger.Info("http api listening", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// localOriginsOnly admits requests without an Origin header and browser
// requests from localhost or the desktop webview.
func localOriginsOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if !isLocalOrigin(origin) {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// isLocalOrigin matches scheme and host exactly; any port is accepted.
func isLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "wails":
	default:
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return true
	}
	return false
}
