package router

import (
	"errors"
	"fmt"

	"github.com/database64128/gfwlist-go"
	"github.com/database64128/gfwlist-go/ruleset"
)

// Verdict criteria for [RouteConfig.Verdict].
const (
	MatchBlock = "block"
	MatchAllow = "allow"
	MatchNone  = "none"
	MatchAny   = "any"
)

// RouteConfig is a routing rule.
type RouteConfig struct {
	// Name of this route. Used in logs and decisions to identify matched routes.
	Name string `json:"name"`

	// Look up requests in this rule list. Must not be empty.
	List string `json:"list"`

	// Route matched requests to this client. Must not be empty.
	Client string `json:"client"`

	// Match requests for which the rule list returns this verdict.
	//
	// - "block" (default): a blocking rule matched.
	// - "allow": an exception rule matched.
	// - "none": no rule matched.
	// - "any": a blocking or exception rule matched.
	Verdict string `json:"verdict,omitzero"`

	// Invert verdict matching logic. Match requests for which the rule list returns any other verdict.
	Invert bool `json:"invert,omitzero"`
}

// verdictSet is a bit set of [gfwlist.Verdict] values.
type verdictSet uint8

func (s verdictSet) Contains(v gfwlist.Verdict) bool {
	return s&(1<<v) != 0
}

func parseVerdictSet(s string) (verdictSet, error) {
	switch s {
	case "", MatchBlock:
		return 1 << gfwlist.VerdictBlock, nil
	case MatchAllow:
		return 1 << gfwlist.VerdictAllow, nil
	case MatchNone:
		return 1 << gfwlist.VerdictNone, nil
	case MatchAny:
		return 1<<gfwlist.VerdictBlock | 1<<gfwlist.VerdictAllow, nil
	default:
		return 0, fmt.Errorf("invalid verdict: %q", s)
	}
}

// Route creates a route from the RouteConfig.
func (rc *RouteConfig) Route(lists *ruleset.Set) (Route, error) {
	// Bad name.
	switch rc.Name {
	case "", defaultRouteName:
		return Route{}, errors.New("route name cannot be empty or 'default'")
	}

	if rc.Client == "" {
		return Route{}, errors.New("route client cannot be empty")
	}

	list, ok := lists.Get(rc.List)
	if !ok {
		return Route{}, fmt.Errorf("rule list not found: %q", rc.List)
	}

	verdicts, err := parseVerdictSet(rc.Verdict)
	if err != nil {
		return Route{}, err
	}
	if rc.Invert {
		verdicts = ^verdicts
	}

	return Route{
		name:     rc.Name,
		client:   rc.Client,
		list:     list,
		verdicts: verdicts,
	}, nil
}

// Route controls which client a URL is routed to.
type Route struct {
	name     string
	client   string
	list     *ruleset.Managed
	verdicts verdictSet
}

// Name returns the name of the route.
func (r *Route) Name() string {
	return r.name
}

// Client returns the name of the client matched requests are routed to.
func (r *Route) Client() string {
	return r.client
}

// Match returns whether the lookup result matches the route.
func (r *Route) Match(res gfwlist.Result) bool {
	return r.verdicts.Contains(res.Verdict)
}
