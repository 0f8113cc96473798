// Package api implements the RESTful API server.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"

	v1 "github.com/database64128/gfwlist-go/api/v1"
	"github.com/database64128/gfwlist-go/conn"
	"github.com/database64128/gfwlist-go/router"
	"github.com/database64128/gfwlist-go/ruleset"
	"github.com/gofiber/contrib/fiberzap"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"go.uber.org/zap"
)

// Config stores the configuration for the RESTful API.
type Config struct {
	// Enabled controls whether the API server is enabled.
	Enabled bool `json:"enabled"`

	// DebugPprof enables pprof endpoints for debugging and profiling.
	DebugPprof bool `json:"debugPprof"`

	// EnableTrustedProxyCheck enables trusted proxy checks.
	EnableTrustedProxyCheck bool `json:"enableTrustedProxyCheck"`

	// TrustedProxies is the list of trusted proxies.
	// This only takes effect if EnableTrustedProxyCheck is true.
	TrustedProxies []string `json:"trustedProxies"`

	// ProxyHeader is the header used to determine the client's IP address.
	// If empty, the remote peer's address is used.
	ProxyHeader string `json:"proxyHeader"`

	// SecretPath adds a secret path prefix to API endpoints.
	// If empty, no secret path is added.
	SecretPath string `json:"secretPath"`

	// Listener is the configuration of the server listener.
	Listener conn.ListenerConfig `json:"listener"`
}

// NewServer returns a new API server from the config.
func (c *Config) NewServer(logger *zap.Logger, lists *ruleset.Set, rt *router.Router) (*Server, error) {
	if c.Listener.Address == "" {
		return nil, errors.New("missing API listen address")
	}

	app := c.newApp(logger, lists, rt)

	return &Server{
		logger:   logger,
		app:      app,
		listener: c.Listener,
	}, nil
}

func (c *Config) newApp(logger *zap.Logger, lists *ruleset.Set, rt *router.Router) *fiber.App {
	app := fiber.New(fiber.Config{
		ProxyHeader:             c.ProxyHeader,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: c.EnableTrustedProxyCheck,
		TrustedProxies:          c.TrustedProxies,
	})

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger,
		Fields: []string{"latency", "status", "method", "url", "ip"},
	}))

	if c.DebugPprof {
		app.Use(pprof.New())
	}

	var r fiber.Router = app
	if c.SecretPath != "" {
		r = app.Group(c.SecretPath)
	}

	api := r.Group("/api")
	api.Use(etag.New())

	// /api/v1
	v1.Routes(api, lists, rt)

	return app
}

// Server is the RESTful API server.
type Server struct {
	logger   *zap.Logger
	app      *fiber.App
	listener conn.ListenerConfig
	ln       net.Listener
}

// ZapField implements the service.Service ZapField method.
func (s *Server) ZapField() zap.Field {
	return zap.String("server", "api")
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.listener.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.listener.Address, err)
	}
	s.ln = ln

	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.logger.Error("Failed to serve API", zap.Error(err))
		}
	}()

	s.logger.Info("Started API server", zap.Stringer("listenAddress", ln.Addr()))
	return nil
}

// Addr returns the listener address of a started server.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Stop stops the API server.
func (s *Server) Stop() error {
	return s.app.Shutdown()
}
