package gfwlist

import (
	"errors"
	"strconv"
)

var (
	// ErrRuleSyntax is returned for rules with malformed anchor or delimiter syntax.
	ErrRuleSyntax = errors.New("invalid rule syntax")

	// ErrMissingScheme is returned for URLs without a scheme.
	ErrMissingScheme = errors.New("missing scheme")

	// ErrEmptyHost is returned for URLs without a host.
	ErrEmptyHost = errors.New("empty host")

	// ErrEmptyNeedle is returned when a literal rule encodes to an empty pattern.
	ErrEmptyNeedle = errors.New("empty pattern")
)

// ErrorKind identifies the stage at which building a list failed.
type ErrorKind uint8

const (
	// ErrorKindRuleSyntax indicates malformed anchor or delimiter syntax.
	ErrorKindRuleSyntax ErrorKind = iota

	// ErrorKindRegexp indicates a regular expression that failed to compile.
	ErrorKindRegexp

	// ErrorKindURL indicates a full-URL anchor rule whose URL failed to parse.
	ErrorKindURL

	// ErrorKindAutomaton indicates the pattern set was rejected by the search automaton.
	ErrorKindAutomaton
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindRuleSyntax:
		return "rule syntax"
	case ErrorKindRegexp:
		return "regexp"
	case ErrorKindURL:
		return "url"
	case ErrorKindAutomaton:
		return "automaton"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// BuildError is returned by [New] when the rule list cannot be compiled.
type BuildError struct {
	// Line is the 1-based line number of the offending rule.
	// It is 0 for errors that are not attributable to a single line.
	Line int

	// Rule is the offending line as written.
	Rule string

	// Kind is the kind of the error.
	Kind ErrorKind

	// Err is the underlying error.
	Err error
}

// Error implements [error.Error].
func (e *BuildError) Error() string {
	if e.Line == 0 {
		return "failed to build " + e.Kind.String() + ": " + e.Err.Error()
	}
	return "line " + strconv.Itoa(e.Line) + ": invalid rule " + strconv.Quote(e.Rule) + ": " + e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// URLError records a URL that could not be decomposed into scheme, host, and path.
type URLError struct {
	URL string
	Err error
}

// Error implements [error.Error].
func (e *URLError) Error() string {
	return "invalid URL " + strconv.Quote(e.URL) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *URLError) Unwrap() error {
	return e.Err
}
