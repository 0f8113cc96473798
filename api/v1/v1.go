package v1

import (
	"github.com/database64128/gfwlist-go"
	"github.com/database64128/gfwlist-go/router"
	"github.com/database64128/gfwlist-go/ruleset"
	"github.com/gofiber/fiber/v2"
)

// StandardError is the standard error response.
type StandardError struct {
	Message string `json:"error"`
}

// ServerInfo contains information about the API server.
type ServerInfo struct {
	Name       string `json:"server"`
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
}

var serverInfo = ServerInfo{
	Name:       "gfwlist-go",
	Version:    gfwlist.Version,
	APIVersion: "v1",
}

// GetServerInfo returns information about the API server.
func GetServerInfo(c *fiber.Ctx) error {
	return c.JSON(&serverInfo)
}

// Routes sets up the /v1 routes on the given router.
func Routes(r fiber.Router, lists *ruleset.Set, rt *router.Router) {
	v1 := r.Group("/v1")
	v1.Get("/", GetServerInfo)

	lm := NewListManager(lists)
	lm.Routes(v1)

	rh := NewRouteHandler(rt)
	rh.Routes(v1)
}
