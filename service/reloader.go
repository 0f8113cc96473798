package service

import (
	"context"
	"time"

	"github.com/database64128/gfwlist-go/ruleset"
	"go.uber.org/zap"
)

// periodicReloader reloads all rule lists at a fixed interval.
type periodicReloader struct {
	logger   *zap.Logger
	lists    *ruleset.Set
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func newPeriodicReloader(logger *zap.Logger, lists *ruleset.Set, interval time.Duration) *periodicReloader {
	return &periodicReloader{
		logger:   logger,
		lists:    lists,
		interval: interval,
	}
}

// ZapField implements [Service.ZapField].
func (r *periodicReloader) ZapField() zap.Field {
	return zap.Duration("reloadInterval", r.interval)
}

// Start implements [Service.Start].
func (r *periodicReloader) Start(ctx context.Context) error {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.lists.ReloadAll(r.logger)
			}
		}
	}()

	r.logger.Info("Started periodic rule list reloader", zap.Duration("interval", r.interval))
	return nil
}

// Stop implements [Service.Stop].
func (r *periodicReloader) Stop() error {
	r.cancel()
	<-r.done
	return nil
}
