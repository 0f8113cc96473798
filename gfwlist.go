// Package gfwlist compiles GFWList rule lists and matches URLs against them.
//
// Literal rules are encoded into flat byte strings in which marker bytes
// delimit the scheme, host, and path of a URL. A query URL is encoded the
// same way, so that a single multi-pattern substring search over the encoded
// query reproduces the anchored matching semantics of every literal rule.
package gfwlist

import (
	"regexp"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
	"github.com/database64128/gfwlist-go/bytestrings"
)

// Version is the current version of gfwlist-go.
const Version = "0.1.0"

// Verdict is the outcome of looking up a URL in a list.
type Verdict uint8

const (
	// VerdictNone means no rule matched the URL.
	VerdictNone Verdict = iota

	// VerdictAllow means an exception rule matched the URL.
	VerdictAllow

	// VerdictBlock means a regex rule or a block rule matched the URL.
	VerdictBlock
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictNone:
		return "none"
	case VerdictAllow:
		return "allow"
	case VerdictBlock:
		return "block"
	default:
		return "unknown"
	}
}

// MarshalText implements [encoding.TextMarshaler.MarshalText].
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Result is the result of looking up a URL in a list.
type Result struct {
	// Verdict is the outcome of the lookup.
	Verdict Verdict `json:"verdict"`

	// Rule is the text of the rule that blocked the URL.
	// It is empty unless Verdict is [VerdictBlock].
	Rule string `json:"rule,omitempty"`
}

type regexRule struct {
	re   *regexp.Regexp
	text string
}

// Stats contains the number of rules of each kind in a list.
type Stats struct {
	BlockRules     int `json:"blockRules"`
	ExceptionRules int `json:"exceptionRules"`
	RegexRules     int `json:"regexRules"`
}

// Total returns the total number of rules.
func (s Stats) Total() int {
	return s.BlockRules + s.ExceptionRules + s.RegexRules
}

// List is a compiled rule list.
//
// A List is immutable and safe for concurrent use.
type List struct {
	block          *ahocorasick.Trie
	exception      *ahocorasick.Trie
	blockRules     []string
	exceptionCount int
	regexRules     []regexRule
}

// New compiles the rule list text.
//
// Empty lines and lines starting with '!' are ignored.
// Any invalid rule aborts the build with a [*BuildError].
func New(text string) (*List, error) {
	var (
		blockNeedles     [][]byte
		exceptionNeedles [][]byte
		blockRules       []string
		regexRules       []regexRule
	)

	for lineNumber, line := range bytestrings.Lines(text) {
		if IsComment(line) {
			continue
		}

		rule, err := ParseRule(line)
		if err != nil {
			return nil, &BuildError{Line: lineNumber, Rule: line, Kind: ErrorKindRuleSyntax, Err: err}
		}

		if rule.Kind == KindRegex {
			re, err := rule.Regexp()
			if err != nil {
				return nil, &BuildError{Line: lineNumber, Rule: line, Kind: ErrorKindRegexp, Err: err}
			}
			regexRules = append(regexRules, regexRule{re, line})
			continue
		}

		needle, err := rule.AppendNeedle(nil)
		if err != nil {
			return nil, &BuildError{Line: lineNumber, Rule: line, Kind: ErrorKindURL, Err: err}
		}

		if rule.Kind == KindException {
			exceptionNeedles = append(exceptionNeedles, needle)
			continue
		}

		// The index of a needle in blockNeedles is the index of its rule in blockRules.
		blockNeedles = append(blockNeedles, needle)
		blockRules = append(blockRules, line)
	}

	block, err := newTrie(blockNeedles)
	if err != nil {
		return nil, &BuildError{Kind: ErrorKindAutomaton, Err: err}
	}

	exception, err := newTrie(exceptionNeedles)
	if err != nil {
		return nil, &BuildError{Kind: ErrorKindAutomaton, Err: err}
	}

	return &List{
		block:          block,
		exception:      exception,
		blockRules:     blockRules,
		exceptionCount: len(exceptionNeedles),
		regexRules:     regexRules,
	}, nil
}

// newTrie builds an Aho-Corasick automaton over needles.
// Pattern indices reported by the automaton are indices into needles.
// It returns nil if there are no needles.
func newTrie(needles [][]byte) (*ahocorasick.Trie, error) {
	if len(needles) == 0 {
		return nil, nil
	}
	for _, needle := range needles {
		if len(needle) == 0 {
			return nil, ErrEmptyNeedle
		}
	}
	return ahocorasick.NewTrieBuilder().AddPatterns(needles).Build(), nil
}

// Lookup looks up the URL in the list.
//
// Regex rules are tried first against the URL as is, in list order.
// Then the URL is encoded, and exception rules take precedence over block rules.
//
// A [*URLError] is returned if the URL has no scheme or no host.
func (l *List) Lookup(rawURL string) (Result, error) {
	for _, r := range l.regexRules {
		if r.re.MatchString(rawURL) {
			return Result{Verdict: VerdictBlock, Rule: r.text}, nil
		}
	}

	haystack, err := appendURL(make([]byte, 0, len(rawURL)+8), rawURL, true)
	if err != nil {
		return Result{}, err
	}

	if l.exception != nil && l.exception.MatchFirst(haystack) != nil {
		return Result{Verdict: VerdictAllow}, nil
	}

	if i, ok := firstPattern(l.block, haystack); ok {
		return Result{Verdict: VerdictBlock, Rule: l.blockRules[i]}, nil
	}

	return Result{}, nil
}

// firstPattern returns the index of the first pattern of tr found in input.
// MatchFirst does not report pattern indices, so the trie is walked instead.
func firstPattern(tr *ahocorasick.Trie, input []byte) (index int64, ok bool) {
	if tr == nil {
		return 0, false
	}
	tr.Walk(input, func(_, _, pattern int64) bool {
		index, ok = pattern, true
		return false
	})
	return index, ok
}

// Match returns the text of the rule that blocks the URL, if any.
func (l *List) Match(rawURL string) (rule string, ok bool, err error) {
	res, err := l.Lookup(rawURL)
	if err != nil {
		return "", false, err
	}
	return res.Rule, res.Verdict == VerdictBlock, nil
}

// Test returns whether the URL is blocked by the list.
func (l *List) Test(rawURL string) (bool, error) {
	res, err := l.Lookup(rawURL)
	return res.Verdict == VerdictBlock, err
}

// Stats returns the number of rules of each kind.
func (l *List) Stats() Stats {
	return Stats{
		BlockRules:     len(l.blockRules),
		ExceptionRules: l.exceptionCount,
		RegexRules:     len(l.regexRules),
	}
}

// Len returns the number of rules in the list.
func (l *List) Len() int {
	return l.Stats().Total()
}

// IsEmpty returns whether the list has no rules.
func (l *List) IsEmpty() bool {
	return l.Len() == 0
}
