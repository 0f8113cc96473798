//go:build !unix

package service

import (
	"github.com/database64128/gfwlist-go/ruleset"
	"go.uber.org/zap"
)

type reloadNotifier struct{}

func newReloadNotifier(_ *zap.Logger, _ *ruleset.Set) reloadNotifier {
	return reloadNotifier{}
}

func (*reloadNotifier) start() {}
func (*reloadNotifier) stop()  {}
