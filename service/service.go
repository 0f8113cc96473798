// Package service wires rule lists, the router and the API server together.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/database64128/gfwlist-go/api"
	"github.com/database64128/gfwlist-go/jsoncfg"
	"github.com/database64128/gfwlist-go/router"
	"github.com/database64128/gfwlist-go/ruleset"
	"github.com/database64128/gfwlist-go/stats"
	"go.uber.org/zap"
)

// Service is the common service abstraction in this module.
type Service interface {
	// ZapField returns a [zap.Field] that identifies the service.
	ZapField() zap.Field

	// Start starts the service.
	Start(ctx context.Context) error

	// Stop stops the service.
	Stop() error
}

// Config is the main configuration structure.
// It may be marshaled as or unmarshaled from JSON.
type Config struct {
	Lists  []ruleset.Config `json:"lists"`
	Stats  stats.Config     `json:"stats,omitzero"`
	Router router.Config    `json:"router,omitzero"`
	API    api.Config       `json:"api,omitzero"`

	// ReloadInterval is the interval between periodic reloads of all rule lists.
	// If zero, rule lists are only reloaded on SIGUSR1 or API requests.
	ReloadInterval jsoncfg.Duration `json:"reloadInterval,omitzero"`
}

// Manager initializes the service manager.
//
// Initialization order: lists -> router -> API server
func (sc *Config) Manager(logger *zap.Logger) (*Manager, error) {
	if len(sc.Lists) == 0 {
		return nil, errors.New("no rule lists configured")
	}

	statsConfig := sc.Stats
	if sc.API.Enabled {
		statsConfig.Enabled = true
	}

	lists, err := ruleset.NewSet(sc.Lists, statsConfig)
	if err != nil {
		return nil, err
	}

	for _, m := range lists.Lists() {
		info := m.Info()
		logger.Info("Loaded rule list",
			zap.String("list", info.Name),
			zap.String("path", info.Path),
			zap.Int("blockRules", info.BlockRules),
			zap.Int("exceptionRules", info.ExceptionRules),
			zap.Int("regexRules", info.RegexRules),
			zap.Stringer("digest", info.Digest),
		)
	}

	rt, err := sc.Router.Router(logger, lists)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	var services []Service

	if interval := sc.ReloadInterval.Value(); interval > 0 {
		services = append(services, newPeriodicReloader(logger, lists, interval))
	}

	if sc.API.Enabled {
		apiServer, err := sc.API.NewServer(logger, lists, rt)
		if err != nil {
			return nil, fmt.Errorf("failed to create API server: %w", err)
		}
		services = append(services, apiServer)
	}

	return &Manager{
		services: services,
		lists:    lists,
		router:   rt,
		rn:       newReloadNotifier(logger, lists),
		logger:   logger,
	}, nil
}

// Manager manages the services.
type Manager struct {
	services []Service
	lists    *ruleset.Set
	router   *router.Router
	rn       reloadNotifier
	logger   *zap.Logger
}

// Lists returns the managed rule lists.
func (m *Manager) Lists() *ruleset.Set {
	return m.lists
}

// Router returns the router.
func (m *Manager) Router() *router.Router {
	return m.router
}

// Reload reloads all rule lists from their files.
func (m *Manager) Reload() {
	m.lists.ReloadAll(m.logger)
}

// Start starts all configured services.
func (m *Manager) Start(ctx context.Context) error {
	for _, s := range m.services {
		if err := s.Start(ctx); err != nil {
			kv := s.ZapField()
			return fmt.Errorf("failed to start %s=%q: %w", kv.Key, kv.String, err)
		}
	}
	m.rn.start()
	return nil
}

// Stop stops all running services.
func (m *Manager) Stop() {
	m.rn.stop()
	for _, s := range m.services {
		kv := s.ZapField()
		if err := s.Stop(); err != nil {
			m.logger.Warn("Failed to stop service", kv, zap.Error(err))
			continue
		}
		m.logger.Info("Stopped service", kv)
	}
}
