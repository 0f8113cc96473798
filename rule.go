package gfwlist

import (
	"regexp"
	"strings"
)

// Kind is the kind of a rule.
type Kind uint8

const (
	// KindBlock marks a literal rule that blocks matching URLs.
	KindBlock Kind = iota

	// KindException marks a literal rule that allows matching URLs
	// regardless of any block rule.
	KindException

	// KindRegex marks a regular expression rule that blocks matching URLs.
	// Regex rules take precedence over all literal rules.
	KindRegex
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindException:
		return "exception"
	case KindRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// Anchor determines which part of a URL a literal rule is anchored to.
type Anchor uint8

const (
	// AnchorSubstring matches the pattern anywhere in a URL,
	// as long as the match begins inside the host at a label boundary.
	AnchorSubstring Anchor = iota

	// AnchorDomainSuffix matches hosts equal to or ending with the domain ("." prefix).
	AnchorDomainSuffix

	// AnchorDomain matches hosts equal to or ending with the domain ("||" prefix).
	AnchorDomain

	// AnchorURL matches URLs beginning with the given scheme and host ("|" prefix).
	AnchorURL
)

// String returns the string representation of the anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorSubstring:
		return "substring"
	case AnchorDomainSuffix:
		return "domain-suffix"
	case AnchorDomain:
		return "domain"
	case AnchorURL:
		return "url"
	default:
		return "unknown"
	}
}

const (
	commentPrefix   = '!'
	exceptionPrefix = "@@"
	regexDelimiter  = '/'
)

// Rule is a classified rule line.
type Rule struct {
	// Kind is the kind of the rule.
	Kind Kind

	// Anchor is the anchor of a literal rule.
	// It is always [AnchorSubstring] for regex rules.
	Anchor Anchor

	// Text is the rule line as written.
	Text string

	// Pattern is the rule body with the exception prefix and the anchor
	// or regex delimiters removed.
	Pattern string
}

// IsComment returns whether the line is empty or a comment.
func IsComment(line string) bool {
	return line == "" || line[0] == commentPrefix
}

// ParseRule classifies a non-comment rule line.
//
// A line starting with a single '@' not followed by another '@' is rejected
// with [ErrRuleSyntax].
func ParseRule(line string) (Rule, error) {
	r := Rule{Text: line}

	if line == "" {
		return r, ErrRuleSyntax
	}

	if line[0] == regexDelimiter {
		if len(line) < 2 || line[len(line)-1] != regexDelimiter {
			return r, ErrRuleSyntax
		}
		r.Kind = KindRegex
		r.Pattern = line[1 : len(line)-1]
		return r, nil
	}

	body := line
	if body[0] == '@' {
		if !strings.HasPrefix(body, exceptionPrefix) {
			return r, ErrRuleSyntax
		}
		body = body[len(exceptionPrefix):]
		if body == "" {
			return r, ErrRuleSyntax
		}
		r.Kind = KindException
	}

	switch {
	case body[0] == '.':
		r.Anchor = AnchorDomainSuffix
		r.Pattern = body[1:]
	case strings.HasPrefix(body, "||"):
		r.Anchor = AnchorDomain
		r.Pattern = body[2:]
	case body[0] == '|':
		r.Anchor = AnchorURL
		r.Pattern = body[1:]
	default:
		r.Anchor = AnchorSubstring
		r.Pattern = body
	}

	return r, nil
}

// AppendNeedle appends the encoded search pattern of a literal rule to b.
// It must not be called on regex rules.
func (r Rule) AppendNeedle(b []byte) ([]byte, error) {
	switch r.Anchor {
	case AnchorDomainSuffix, AnchorDomain:
		return appendHostPath(b, r.Pattern), nil
	case AnchorURL:
		return appendURL(b, r.Pattern, false)
	default:
		b = append(b, beginOfHost)
		return appendHostPath(b, r.Pattern), nil
	}
}

// Regexp compiles the pattern of a regex rule.
func (r Rule) Regexp() (*regexp.Regexp, error) {
	return regexp.Compile(r.Pattern)
}
