// Package server exposes the document pipeline and the session result set
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/fattura-csv/internal/logging"

	"github.com/gin-gonic/gin"
)

// ShutdownTimeout bounds the graceful shutdown of Run.
const ShutdownTimeout = 10 * time.Second

// Options configures the router.
type Options struct {
	Addr           string
	AccessKey      string
	AllowedDomains []string
}

// NewRouter wires the routes. /health is outside the access gate.
func NewRouter(h *Handler, opts Options, logger logging.Logger) *gin.Engine {
	logger = logging.OrDefault(logger)

	router := gin.New()
	router.Use(RequestLogger(logger), gin.RecoveryWithWriter(errorWriter(logger)))

	router.GET("/health", Health)

	apiV1 := router.Group("/api/v1", AccessGate(opts.AccessKey, opts.AllowedDomains))
	{
		apiV1.POST("/invoices", h.Upload)
		apiV1.GET("/invoices", h.List)
		apiV1.GET("/invoices/export", h.Export)
		apiV1.DELETE("/invoices/:group", h.RemoveGroup)
		apiV1.DELETE("/invoices", h.Reset)
	}

	return router
}

// errorWriter routes gin's recovery output through logger when it can.
func errorWriter(logger logging.Logger) io.Writer {
	if w, ok := logger.(interface{ Writer() io.Writer }); ok {
		return w.Writer()
	}
	return gin.DefaultErrorWriter
}

// Run serves handler on addr until ctx is cancelled, then shuts down.
func Run(ctx context.Context, addr string, handler http.Handler, logger logging.Logger) error {
	logger = logging.OrDefault(logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", logging.F(logging.FieldAddr, addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	logger.Info("HTTP server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
