package ruleset

import (
	"fmt"

	"github.com/database64128/gfwlist-go/stats"
	"go.uber.org/zap"
)

// Set is a set of managed rule lists, in configuration order.
type Set struct {
	lists  []*Managed
	byName map[string]*Managed
}

// NewSet loads the configured rule lists.
// Each list gets its own stats collector built from statsConfig.
func NewSet(configs []Config, statsConfig stats.Config) (*Set, error) {
	s := Set{
		lists:  make([]*Managed, 0, len(configs)),
		byName: make(map[string]*Managed, len(configs)),
	}

	for i := range configs {
		c := configs[i]
		if _, ok := s.byName[c.Name]; ok {
			return nil, fmt.Errorf("duplicate rule list name: %q", c.Name)
		}

		m, err := c.Managed(statsConfig.Collector())
		if err != nil {
			return nil, fmt.Errorf("failed to load rule list at index %d: %w", i, err)
		}

		s.lists = append(s.lists, m)
		s.byName[c.Name] = m
	}

	return &s, nil
}

// Get returns the rule list with the given name.
func (s *Set) Get(name string) (*Managed, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Lists returns all rule lists in configuration order.
// The returned slice must not be modified.
func (s *Set) Lists() []*Managed {
	return s.lists
}

// Names returns the names of all rule lists in configuration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.lists))
	for i, m := range s.lists {
		names[i] = m.Name()
	}
	return names
}

// ReloadAll reloads all rule lists from their files.
// Failures are logged and do not affect the other lists.
func (s *Set) ReloadAll(logger *zap.Logger) {
	for _, m := range s.lists {
		name := m.Name()
		replaced, err := m.Reload()
		if err != nil {
			logger.Warn("Failed to reload rule list", zap.String("list", name), zap.Error(err))
			continue
		}
		if !replaced {
			logger.Debug("Rule list unchanged", zap.String("list", name))
			continue
		}
		info := m.Info()
		logger.Info("Reloaded rule list",
			zap.String("list", name),
			zap.Int("rules", info.Rules),
			zap.Stringer("digest", info.Digest),
		)
	}
}
