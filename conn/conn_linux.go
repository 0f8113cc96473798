package conn

import (
	"fmt"
	"syscall"

	"github.com/database64128/tfo-go/v2"
	"golang.org/x/sys/unix"
)

func setFwmark(fd, fwmark int) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_MARK, fwmark); err != nil {
		return fmt.Errorf("failed to set socket option SO_MARK: %w", err)
	}
	return nil
}

// NewListenConfig returns a tfo.ListenConfig with the specified options applied.
func NewListenConfig(listenerTFO bool, listenerFwmark int) (lc tfo.ListenConfig) {
	lc.DisableTFO = !listenerTFO
	if listenerFwmark != 0 {
		lc.Control = func(network, address string, c syscall.RawConn) (err error) {
			if cerr := c.Control(func(fd uintptr) {
				err = setFwmark(int(fd), listenerFwmark)
			}); cerr != nil {
				return cerr
			}
			return
		}
	}
	return
}
