package router

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/database64128/gfwlist-go"
	"github.com/database64128/gfwlist-go/ruleset"
	"github.com/database64128/gfwlist-go/stats"
	"go.uber.org/zap"
)

const (
	testGFWListText = `! gfwlist
||blocked.example
@@||allowed.blocked.example
`
	testAdsListText = `||ads.example
`
)

func newTestSet(t *testing.T) *ruleset.Set {
	t.Helper()
	dir := t.TempDir()

	configs := []ruleset.Config{
		{Name: "gfwlist", Path: filepath.Join(dir, "gfwlist.txt")},
		{Name: "ads", Path: filepath.Join(dir, "ads.txt")},
	}
	if err := os.WriteFile(configs[0].Path, []byte(testGFWListText), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configs[1].Path, []byte(testAdsListText), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ruleset.NewSet(configs, stats.Config{Enabled: true})
	if err != nil {
		t.Fatalf("ruleset.NewSet failed: %v", err)
	}
	return s
}

func testRoute(t *testing.T, r *Router, rawURL string, expected Decision) {
	t.Helper()
	d, err := r.Route(rawURL)
	if err != nil {
		t.Fatalf("Route(%q) failed: %v", rawURL, err)
	}
	if d != expected {
		t.Errorf("%s should route to %+v, got %+v", rawURL, expected, d)
	}
}

func TestRouter(t *testing.T) {
	lists := newTestSet(t)
	c := Config{
		Routes: []RouteConfig{
			{Name: "ads", List: "ads", Client: "reject"},
			{Name: "exempt", List: "gfwlist", Client: "direct-exempt", Verdict: MatchAllow},
			{Name: "proxy", List: "gfwlist", Client: "proxy"},
		},
	}

	r, err := c.Router(zap.NewNop(), lists)
	if err != nil {
		t.Fatalf("Router failed: %v", err)
	}

	testRoute(t, r, "https://ads.example/banner.png", Decision{
		Route:   "ads",
		Client:  "reject",
		List:    "ads",
		Rule:    "||ads.example",
		Verdict: gfwlist.VerdictBlock,
	})
	testRoute(t, r, "https://www.blocked.example/", Decision{
		Route:   "proxy",
		Client:  "proxy",
		List:    "gfwlist",
		Rule:    "||blocked.example",
		Verdict: gfwlist.VerdictBlock,
	})
	testRoute(t, r, "https://allowed.blocked.example/", Decision{
		Route:   "exempt",
		Client:  "direct-exempt",
		List:    "gfwlist",
		Verdict: gfwlist.VerdictAllow,
	})
	testRoute(t, r, "https://example.org/", Decision{
		Route:  "default",
		Client: "direct",
	})

	gfwlistList, _ := lists.Get("gfwlist")
	lookups := gfwlistList.Collector().Snapshot()
	if lookups.Total() != 3 {
		t.Errorf("gfwlist lookups = %d, want 3 (one per routed URL that reached it)", lookups.Total())
	}
}

func TestRouterInvert(t *testing.T) {
	lists := newTestSet(t)
	c := Config{
		DefaultClient: "proxy",
		Routes: []RouteConfig{
			{Name: "not-blocked", List: "gfwlist", Client: "direct", Invert: true},
		},
	}

	r, err := c.Router(zap.NewNop(), lists)
	if err != nil {
		t.Fatalf("Router failed: %v", err)
	}

	testRoute(t, r, "https://example.org/", Decision{
		Route:   "not-blocked",
		Client:  "direct",
		List:    "gfwlist",
		Verdict: gfwlist.VerdictNone,
	})
	testRoute(t, r, "https://allowed.blocked.example/", Decision{
		Route:   "not-blocked",
		Client:  "direct",
		List:    "gfwlist",
		Verdict: gfwlist.VerdictAllow,
	})
	testRoute(t, r, "https://blocked.example/", Decision{
		Route:  "default",
		Client: "proxy",
	})
}

func TestRouterVerdictAnyAndNone(t *testing.T) {
	lists := newTestSet(t)
	c := Config{
		Routes: []RouteConfig{
			{Name: "unlisted", List: "gfwlist", Client: "direct", Verdict: MatchNone},
			{Name: "listed", List: "gfwlist", Client: "inspect", Verdict: MatchAny},
		},
	}

	r, err := c.Router(zap.NewNop(), lists)
	if err != nil {
		t.Fatalf("Router failed: %v", err)
	}

	for _, c := range []struct {
		url   string
		route string
	}{
		{"https://example.org/", "unlisted"},
		{"https://blocked.example/", "listed"},
		{"https://allowed.blocked.example/", "listed"},
	} {
		d, err := r.Route(c.url)
		if err != nil {
			t.Fatalf("Route(%q) failed: %v", c.url, err)
		}
		if d.Route != c.route {
			t.Errorf("%s should match route %s, got %s", c.url, c.route, d.Route)
		}
	}
}

func TestRouterURLError(t *testing.T) {
	lists := newTestSet(t)
	c := Config{
		Routes: []RouteConfig{
			{Name: "proxy", List: "gfwlist", Client: "proxy"},
		},
	}

	r, err := c.Router(zap.NewNop(), lists)
	if err != nil {
		t.Fatalf("Router failed: %v", err)
	}

	if _, err = r.Route("blocked.example"); err == nil {
		t.Error("Route of URL without scheme should fail")
	}
}

func TestRouterEmptyRoutes(t *testing.T) {
	lists := newTestSet(t)
	var c Config

	r, err := c.Router(zap.NewNop(), lists)
	if err != nil {
		t.Fatalf("Router failed: %v", err)
	}

	testRoute(t, r, "not a url", Decision{
		Route:  "default",
		Client: "direct",
	})
}

func TestRouteConfigErrors(t *testing.T) {
	lists := newTestSet(t)
	for _, c := range []struct {
		name string
		rc   RouteConfig
	}{
		{"EmptyName", RouteConfig{List: "gfwlist", Client: "proxy"}},
		{"DefaultName", RouteConfig{Name: "default", List: "gfwlist", Client: "proxy"}},
		{"EmptyClient", RouteConfig{Name: "proxy", List: "gfwlist"}},
		{"UnknownList", RouteConfig{Name: "proxy", List: "nope", Client: "proxy"}},
		{"BadVerdict", RouteConfig{Name: "proxy", List: "gfwlist", Client: "proxy", Verdict: "maybe"}},
	} {
		t.Run(c.name, func(t *testing.T) {
			if _, err := c.rc.Route(lists); err == nil {
				t.Errorf("Route(%+v) should fail", c.rc)
			}
		})
	}
}
