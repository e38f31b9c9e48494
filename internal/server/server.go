// Package server exposes the prayer-time calculator as a JSON HTTP API.
// Every request is a pure computation; the server keeps no state.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/azanmm/prayer-times/internal/cities"
	"github.com/azanmm/prayer-times/internal/prayer"
)

// MaxDays bounds the calendar endpoint.
const MaxDays = 31

// Error is returned by handlers and rendered as {"error": Message}.
type Error struct {
	Code    int
	Message string
}

func badRequest(msg string) *Error { return &Error{Code: http.StatusBadRequest, Message: msg} }
func notFound(msg string) *Error   { return &Error{Code: http.StatusNotFound, Message: msg} }

// HandlerFunc is a handler that returns a JSON body or an error.
type HandlerFunc func(ctx *gin.Context) (any, *Error)

// ResolveEndpoint adapts a HandlerFunc to gin.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// Options configures a Server.
type Options struct {
	// Defaults supplies method, school, rule, offsets and Hijri correction
	// for requests that don't override them. Its UTCOffset is used by the
	// Hijri endpoint when no tz is given. Location and date are ignored.
	Defaults prayer.Params
	Catalog  *cities.Catalog
	Logger   zerolog.Logger
	// Now is the clock used when a request has no date; defaults to time.Now.
	Now func() time.Time
}

// Server holds the HTTP handlers.
type Server struct {
	defaults prayer.Params
	catalog  *cities.Catalog
	logger   zerolog.Logger
	now      func() time.Time
}

// New builds a Server, filling unset options.
func New(opts Options) *Server {
	s := &Server{
		defaults: opts.Defaults,
		catalog:  opts.Catalog,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.catalog == nil {
		s.catalog = cities.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler returns the gin engine with all routes mounted.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods:    []string{"GET", "OPTIONS", "HEAD"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.GET("/times", ResolveEndpoint(s.times))
	v1.GET("/calendar", ResolveEndpoint(s.calendar))
	v1.GET("/hijri", ResolveEndpoint(s.hijriDate))
	v1.GET("/events", ResolveEndpoint(s.events))
	v1.GET("/events/lookup", ResolveEndpoint(s.lookupEvent))
	v1.GET("/cities", ResolveEndpoint(s.listCities))
	v1.GET("/cities/:slug", ResolveEndpoint(s.getCity))
	v1.GET("/methods", ResolveEndpoint(s.methods))

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.Error()
		case status >= http.StatusBadRequest:
			ev = logger.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("request")
	}
}
