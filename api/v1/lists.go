package v1

import (
	"github.com/database64128/gfwlist-go/ruleset"
	"github.com/gofiber/fiber/v2"
)

// ListManager handles rule list API requests.
type ListManager struct {
	lists *ruleset.Set
}

// NewListManager returns a new list manager.
func NewListManager(lists *ruleset.Set) *ListManager {
	return &ListManager{lists: lists}
}

// Routes sets up routes for the /v1/lists endpoint.
func (lm *ListManager) Routes(v1 fiber.Router) {
	v1.Get("/lists", lm.ListLists)

	list := v1.Group("/lists/:list", lm.ContextManagedList)
	list.Get("", lm.GetList)
	list.Get("/test", lm.TestURL)
	list.Get("/stats", lm.GetStats)
	list.Post("/reload", lm.ReloadList)
}

// ListLists lists the names of all rule lists.
func (lm *ListManager) ListLists(c *fiber.Ctx) error {
	return c.JSON(lm.lists.Names())
}

// ContextManagedList is a middleware for the lists group.
// It adds the rule list with the given name to the request context.
func (lm *ListManager) ContextManagedList(c *fiber.Ctx) error {
	name := c.Params("list")
	m, ok := lm.lists.Get(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(&StandardError{Message: "rule list not found"})
	}
	c.Locals(0, m)
	return c.Next()
}

// managedListFromContext returns the rule list from the request context.
func managedListFromContext(c *fiber.Ctx) *ruleset.Managed {
	return c.Locals(0).(*ruleset.Managed)
}

// GetList returns information about a rule list.
func (lm *ListManager) GetList(c *fiber.Ctx) error {
	m := managedListFromContext(c)
	info := m.Info()
	return c.JSON(&info)
}

// TestURL looks up the URL in the url query parameter.
func (lm *ListManager) TestURL(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(&StandardError{Message: "missing url query parameter"})
	}

	m := managedListFromContext(c)
	res, err := m.Lookup(rawURL)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&StandardError{Message: err.Error()})
	}
	return c.JSON(&res)
}

// GetStats returns rule list lookup statistics.
func (lm *ListManager) GetStats(c *fiber.Ctx) error {
	m := managedListFromContext(c)
	if c.QueryBool("clear", false) {
		return c.JSON(m.Collector().SnapshotAndReset())
	}
	return c.JSON(m.Collector().Snapshot())
}

// ReloadResult is the result of reloading a rule list.
type ReloadResult struct {
	Replaced bool         `json:"replaced"`
	List     ruleset.Info `json:"list"`
}

// ReloadList reloads a rule list from its file.
func (lm *ListManager) ReloadList(c *fiber.Ctx) error {
	m := managedListFromContext(c)
	replaced, err := m.Reload()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(&StandardError{Message: err.Error()})
	}
	return c.JSON(&ReloadResult{
		Replaced: replaced,
		List:     m.Info(),
	})
}
