package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"userapi/internal/http/handler"
	"userapi/internal/http/middleware"
	"userapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Options are the collaborators the server is assembled from.
type Options struct {
	// Port is the TCP port ListenAndServe binds to.
	Port   string
	Logger *zap.Logger
	// DB is only used by the readiness probe and may be nil.
	DB    *sql.DB
	Users service.UserService
	// Registry receives the HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry
}

// Server is the HTTP application with the user router mounted under /api/user.
type Server struct {
	app  *fiber.App
	port string
	log  *zap.Logger
}

// New assembles the Fiber app: error handler, middleware chain, operational routes
// and the user router.
func New(opts Options) (*Server, error) {
	if opts.Users == nil {
		return nil, errors.New("server: user service is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	prom, err := middleware.NewPrometheusMiddleware(opts.Registry)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handler.ErrorHandler(opts.Logger),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(opts.Logger))
	app.Use(prom.Handler())

	handler.RegisterRoutes(app, opts.DB, opts.Registry)
	handler.MountUserRouter(app, handler.NewUserRouter(opts.Users))

	return &Server{app: app, port: opts.Port, log: opts.Logger}, nil
}

// App exposes the underlying Fiber app, mainly for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// ListenAndServe binds :Port and serves until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", s.port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve announces the bound port and serves on ln. Cancelling ctx triggers a
// graceful shutdown; Serve returns once the accept loop has stopped.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	port := listenerPort(ln)
	s.log.Info("app running at http://localhost:"+port, zap.String("port", port))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func listenerPort(ln net.Listener) string {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return fmt.Sprint(addr.Port)
	}
	_, port, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		return ln.Addr().String()
	}
	return port
}
