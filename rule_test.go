package gfwlist

import (
	"errors"
	"testing"
)

func TestParseRule(t *testing.T) {
	for _, c := range []struct {
		line    string
		kind    Kind
		anchor  Anchor
		pattern string
	}{
		{"/^https?:\\/\\/[^\\/]+example\\.com/", KindRegex, AnchorSubstring, "^https?:\\/\\/[^\\/]+example\\.com"},
		{"//", KindRegex, AnchorSubstring, ""},
		{".example.com", KindBlock, AnchorDomainSuffix, "example.com"},
		{"||example.com", KindBlock, AnchorDomain, "example.com"},
		{"|http://example.com", KindBlock, AnchorURL, "http://example.com"},
		{"example.com/page", KindBlock, AnchorSubstring, "example.com/page"},
		{"@@.example.com", KindException, AnchorDomainSuffix, "example.com"},
		{"@@||example.com", KindException, AnchorDomain, "example.com"},
		{"@@|http://sub.example.com", KindException, AnchorURL, "http://sub.example.com"},
		{"@@example.com", KindException, AnchorSubstring, "example.com"},
		{"@@/regex-like/", KindException, AnchorSubstring, "/regex-like/"},
	} {
		r, err := ParseRule(c.line)
		if err != nil {
			t.Errorf("ParseRule(%q) failed: %v", c.line, err)
			continue
		}
		if r.Kind != c.kind || r.Anchor != c.anchor || r.Pattern != c.pattern {
			t.Errorf("ParseRule(%q) = {%v %v %q}; want {%v %v %q}", c.line, r.Kind, r.Anchor, r.Pattern, c.kind, c.anchor, c.pattern)
		}
		if r.Text != c.line {
			t.Errorf("ParseRule(%q).Text = %q", c.line, r.Text)
		}
	}
}

func TestParseRuleSyntaxError(t *testing.T) {
	for _, line := range []string{
		"",
		"/",
		"/abc",
		"@",
		"@example.com",
		"@@",
	} {
		if _, err := ParseRule(line); !errors.Is(err, ErrRuleSyntax) {
			t.Errorf("ParseRule(%q) error = %v; want %v", line, err, ErrRuleSyntax)
		}
	}
}

func TestIsComment(t *testing.T) {
	for _, c := range []struct {
		line string
		want bool
	}{
		{"", true},
		{"!", true},
		{"! comment", true},
		{"!||example.com", true},
		{"||example.com", false},
		{" !", false},
	} {
		if got := IsComment(c.line); got != c.want {
			t.Errorf("IsComment(%q) = %v; want %v", c.line, got, c.want)
		}
	}
}

func TestRuleAppendNeedle(t *testing.T) {
	for _, c := range []struct {
		line string
		want string
	}{
		{".example.com", ".example.com\x03/"},
		{"||example.com", ".example.com\x03/"},
		{"||example.com/path", ".example.com\x03/path/"},
		{"|http://example.com", "\x01http\x02.example.com"},
		{"|http://example.com/", "\x01http\x02.example.com\x03/"},
		{"|https://example.com/page", "\x01https\x02.example.com\x03/page/"},
		{"example.com", "\x02.example.com\x03/"},
		{"@@||example.com", ".example.com\x03/"},
	} {
		r, err := ParseRule(c.line)
		if err != nil {
			t.Fatalf("ParseRule(%q) failed: %v", c.line, err)
		}
		b, err := r.AppendNeedle(nil)
		if err != nil {
			t.Errorf("AppendNeedle(%q) failed: %v", c.line, err)
			continue
		}
		if got := string(b); got != c.want {
			t.Errorf("AppendNeedle(%q) = %q; want %q", c.line, got, c.want)
		}
	}
}

func TestRuleAppendNeedleURLError(t *testing.T) {
	r, err := ParseRule("|example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = r.AppendNeedle(nil); !errors.Is(err, ErrMissingScheme) {
		t.Errorf("AppendNeedle error = %v; want %v", err, ErrMissingScheme)
	}
}
