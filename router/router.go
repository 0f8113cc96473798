// Package router routes URLs to outbound clients by rule list verdicts.
package router

import (
	"fmt"

	"github.com/database64128/gfwlist-go"
	"github.com/database64128/gfwlist-go/ruleset"
	"go.uber.org/zap"
)

const (
	defaultRouteName  = "default"
	defaultClientName = "direct"
)

// Config is the configuration for a Router.
type Config struct {
	// DefaultClient is the client for URLs that match no route.
	// Defaults to "direct".
	DefaultClient string        `json:"defaultClient,omitzero"`
	Routes        []RouteConfig `json:"routes"`
}

// Router creates a router from the Config.
func (c *Config) Router(logger *zap.Logger, lists *ruleset.Set) (*Router, error) {
	defaultClient := c.DefaultClient
	if defaultClient == "" {
		defaultClient = defaultClientName
	}

	routes := make([]Route, len(c.Routes))

	for i := range c.Routes {
		route, err := c.Routes[i].Route(lists)
		if err != nil {
			return nil, fmt.Errorf("failed to create route %q: %w", c.Routes[i].Name, err)
		}
		routes[i] = route
	}

	return &Router{
		logger:        logger,
		defaultClient: defaultClient,
		routes:        routes,
	}, nil
}

// Router looks up URLs in rule lists and picks the client to route them to.
type Router struct {
	logger        *zap.Logger
	defaultClient string
	routes        []Route
}

// Decision is the outcome of routing a URL.
type Decision struct {
	// Route is the name of the matched route, or "default".
	Route string `json:"route"`

	// Client is the name of the client to route the URL to.
	Client string `json:"client"`

	// List is the name of the rule list of the matched route.
	List string `json:"list,omitzero"`

	// Rule is the blocking rule that fired, if any.
	Rule string `json:"rule,omitzero"`

	// Verdict is the verdict of the rule list of the matched route.
	Verdict gfwlist.Verdict `json:"verdict"`
}

// Route routes the URL. The first matching route wins.
// Each rule list is looked up at most once per call.
// It returns an error if the URL cannot be parsed.
func (r *Router) Route(rawURL string) (Decision, error) {
	var cache lookupCache

	for i := range r.routes {
		route := &r.routes[i]

		res, err := cache.lookup(route.list, rawURL)
		if err != nil {
			return Decision{}, err
		}

		if !route.Match(res) {
			continue
		}

		if ce := r.logger.Check(zap.DebugLevel, "Matched route"); ce != nil {
			ce.Write(
				zap.String("url", rawURL),
				zap.String("route", route.name),
				zap.String("client", route.client),
				zap.String("list", route.list.Name()),
				zap.Stringer("verdict", res.Verdict),
				zap.String("rule", res.Rule),
			)
		}

		return Decision{
			Route:   route.name,
			Client:  route.client,
			List:    route.list.Name(),
			Rule:    res.Rule,
			Verdict: res.Verdict,
		}, nil
	}

	if ce := r.logger.Check(zap.DebugLevel, "Matched default route"); ce != nil {
		ce.Write(
			zap.String("url", rawURL),
			zap.String("client", r.defaultClient),
		)
	}

	return Decision{
		Route:  defaultRouteName,
		Client: r.defaultClient,
	}, nil
}

type lookupResult struct {
	list *ruleset.Managed
	res  gfwlist.Result
}

// lookupCache memoizes lookups of one URL across routes sharing a rule list.
type lookupCache struct {
	results []lookupResult
}

func (c *lookupCache) lookup(list *ruleset.Managed, rawURL string) (gfwlist.Result, error) {
	for _, lr := range c.results {
		if lr.list == list {
			return lr.res, nil
		}
	}

	res, err := list.Lookup(rawURL)
	if err != nil {
		return gfwlist.Result{}, err
	}

	c.results = append(c.results, lookupResult{list: list, res: res})
	return res, nil
}
