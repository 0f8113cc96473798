// Package conn creates listeners with socket options applied.
package conn

import (
	"context"
	"net"
)

// ListenerConfig is the configuration for a TCP listener.
type ListenerConfig struct {
	// Network is the network to listen on: "tcp" (default), "tcp4" or "tcp6".
	Network string `json:"network,omitzero"`

	// Address is the address to listen on.
	Address string `json:"address"`

	// FastOpen enables TCP Fast Open on the listener.
	FastOpen bool `json:"fastOpen,omitzero"`

	// Fwmark sets the SO_MARK socket option on the listener. Linux only.
	Fwmark int `json:"fwmark,omitzero"`
}

// Listen creates a listener with the configured options applied.
func (c *ListenerConfig) Listen(ctx context.Context) (net.Listener, error) {
	network := c.Network
	if network == "" {
		network = "tcp"
	}
	lc := NewListenConfig(c.FastOpen, c.Fwmark)
	return lc.Listen(ctx, network, c.Address)
}
