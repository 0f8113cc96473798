package v1

import (
	"github.com/database64128/gfwlist-go/router"
	"github.com/gofiber/fiber/v2"
)

// RouteHandler handles routing API requests.
type RouteHandler struct {
	router *router.Router
}

// NewRouteHandler returns a new route handler.
func NewRouteHandler(r *router.Router) *RouteHandler {
	return &RouteHandler{router: r}
}

// Routes sets up routes for the /v1/route endpoint.
func (rh *RouteHandler) Routes(v1 fiber.Router) {
	v1.Get("/route", rh.RouteURL)
}

// RouteURL routes the URL in the url query parameter.
func (rh *RouteHandler) RouteURL(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(&StandardError{Message: "missing url query parameter"})
	}

	d, err := rh.router.Route(rawURL)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&StandardError{Message: err.Error()})
	}
	return c.JSON(&d)
}
