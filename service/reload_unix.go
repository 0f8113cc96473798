//go:build unix

package service

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/database64128/gfwlist-go/ruleset"
	"go.uber.org/zap"
)

type reloadNotifier struct {
	sigCh chan os.Signal
	fns   []func()
}

func newReloadNotifier(logger *zap.Logger, lists *ruleset.Set) reloadNotifier {
	rn := reloadNotifier{
		sigCh: make(chan os.Signal, 1),
	}

	if len(lists.Lists()) > 0 {
		rn.fns = append(rn.fns, func() {
			lists.ReloadAll(logger)
		})
	}

	return rn
}

func (rn *reloadNotifier) start() {
	if len(rn.fns) == 0 {
		return
	}
	signal.Notify(rn.sigCh, syscall.SIGUSR1)
	go func() {
		for range rn.sigCh {
			for _, fn := range rn.fns {
				fn()
			}
		}
	}()
}

func (rn *reloadNotifier) stop() {
	if len(rn.fns) == 0 {
		return
	}
	signal.Stop(rn.sigCh)
	close(rn.sigCh)
}
