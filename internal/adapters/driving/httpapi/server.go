// Package httpapi serves contracts as a JSON API using gin.
//
// Routes:
//
//	GET    /health
//	GET    /api/contracts?q=&status=&payment=
//	POST   /api/contracts
//	GET    /api/contracts/:id
//	PATCH  /api/contracts/:id
//	DELETE /api/contracts/:id
//	ANY    /mcp (when an MCP handler is mounted)
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
	"github.com/custodia-labs/ensaio/internal/logger"
)

// Options configures the HTTP server.
type Options struct {
	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64

	// RateLimitBurst is the token bucket size.
	RateLimitBurst int

	// MCP, if set, is mounted at /mcp.
	MCP http.Handler

	// Version is reported by /health.
	Version string
}

// Server is the HTTP front end of the contract service.
type Server struct {
	router *gin.Engine
}

// NewServer builds the router.
func NewServer(contracts driving.ContractService, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(RequestID())
	router.Use(Recovery())
	router.Use(RequestLogger())
	router.Use(RateLimit(opts.RateLimit, opts.RateLimitBurst))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": opts.Version})
	})

	h := NewContractHandler(contracts)
	api := router.Group("/api")
	{
		api.GET("/contracts", h.List)
		api.POST("/contracts", h.Create)
		api.GET("/contracts/:id", h.Get)
		api.PATCH("/contracts/:id", h.Update)
		api.DELETE("/contracts/:id", h.Delete)
	}

	if opts.MCP != nil {
		router.Any("/mcp", gin.WrapH(opts.MCP))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "route not found", RequestID: GetRequestID(c)})
	})

	return &Server{router: router}
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("HTTP API shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
