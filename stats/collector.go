// Package stats collects lookup statistics for rule lists.
package stats

import (
	"sync/atomic"

	"github.com/database64128/gfwlist-go"
)

// Lookups stores the lookup statistics of a rule list.
type Lookups struct {
	Blocked   uint64 `json:"blocked"`
	Allowed   uint64 `json:"allowed"`
	Unmatched uint64 `json:"unmatched"`
	Errors    uint64 `json:"errors"`
}

// Add adds u to l.
func (l *Lookups) Add(u Lookups) {
	l.Blocked += u.Blocked
	l.Allowed += u.Allowed
	l.Unmatched += u.Unmatched
	l.Errors += u.Errors
}

// Total returns the total number of lookups.
func (l Lookups) Total() uint64 {
	return l.Blocked + l.Allowed + l.Unmatched + l.Errors
}

type listCollector struct {
	blocked   atomic.Uint64
	allowed   atomic.Uint64
	unmatched atomic.Uint64
	errors    atomic.Uint64
}

// NewListCollector returns a new collector for collecting rule list lookup statistics.
func NewListCollector() *listCollector {
	return &listCollector{}
}

// CollectLookup implements the Collector CollectLookup method.
func (lc *listCollector) CollectLookup(res gfwlist.Result, err error) {
	switch {
	case err != nil:
		lc.errors.Add(1)
	case res.Verdict == gfwlist.VerdictBlock:
		lc.blocked.Add(1)
	case res.Verdict == gfwlist.VerdictAllow:
		lc.allowed.Add(1)
	default:
		lc.unmatched.Add(1)
	}
}

// Snapshot implements the Collector Snapshot method.
func (lc *listCollector) Snapshot() Lookups {
	return Lookups{
		Blocked:   lc.blocked.Load(),
		Allowed:   lc.allowed.Load(),
		Unmatched: lc.unmatched.Load(),
		Errors:    lc.errors.Load(),
	}
}

// SnapshotAndReset implements the Collector SnapshotAndReset method.
func (lc *listCollector) SnapshotAndReset() Lookups {
	return Lookups{
		Blocked:   lc.blocked.Swap(0),
		Allowed:   lc.allowed.Swap(0),
		Unmatched: lc.unmatched.Swap(0),
		Errors:    lc.errors.Swap(0),
	}
}

// Collector collects rule list lookup statistics.
type Collector interface {
	// CollectLookup collects the outcome of a lookup.
	CollectLookup(res gfwlist.Result, err error)

	// Snapshot returns the lookup statistics.
	Snapshot() Lookups

	// SnapshotAndReset returns the lookup statistics and resets the statistics.
	SnapshotAndReset() Lookups
}

// NoopCollector is a no-op collector.
// Its collect method does nothing and its snapshot methods return empty statistics.
type NoopCollector struct{}

// CollectLookup implements the Collector CollectLookup method.
func (NoopCollector) CollectLookup(res gfwlist.Result, err error) {}

// Snapshot implements the Collector Snapshot method.
func (NoopCollector) Snapshot() Lookups {
	return Lookups{}
}

// SnapshotAndReset implements the Collector SnapshotAndReset method.
func (NoopCollector) SnapshotAndReset() Lookups {
	return Lookups{}
}

// Config stores configuration for the stats collector.
type Config struct {
	Enabled bool `json:"enabled"`
}

// Collector returns a new stats collector from the config.
func (c Config) Collector() Collector {
	if c.Enabled {
		return NewListCollector()
	}
	return NoopCollector{}
}
