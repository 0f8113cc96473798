package gfwlist

import "strings"

// Marker bytes delimit the fields of an encoded URL.
// They never appear in a decomposed scheme, host, or escaped path.
const (
	beginOfScheme = 0x01
	beginOfHost   = 0x02
	beginOfPath   = 0x03

	hostDelimiter = '.'
	pathDelimiter = '/'
)

// appendHost appends host to b, prepending a host delimiter if host does not start with one.
// Encoded hosts therefore always start at a label boundary.
func appendHost(b []byte, host string) []byte {
	if len(host) == 0 || host[0] != hostDelimiter {
		b = append(b, hostDelimiter)
	}
	return append(b, host...)
}

// appendPath appends path to b, appending a path delimiter if path does not end with one.
// Encoded paths therefore always end at a segment boundary.
func appendPath(b []byte, path string) []byte {
	b = append(b, path...)
	if len(path) == 0 || path[len(path)-1] != pathDelimiter {
		b = append(b, pathDelimiter)
	}
	return b
}

// appendHostPath splits s at the first path delimiter and appends
// the host part, a path marker, and the path part to b.
func appendHostPath(b []byte, s string) []byte {
	host, path := s, ""
	if i := strings.IndexByte(s, pathDelimiter); i != -1 {
		host, path = s[:i], s[i:]
	}
	b = appendHost(b, host)
	b = append(b, beginOfPath)
	return appendPath(b, path)
}

// appendURL decomposes raw and appends the encoded scheme, host, and path to b.
//
// If full is false, the path field is omitted when the path is the root path
// and raw does not end with a path delimiter. Rules are encoded with full set
// to false, so that a rule without a path matches every path. Queries must
// always be encoded with full set to true.
func appendURL(b []byte, raw string, full bool) ([]byte, error) {
	scheme, host, path, err := parseURL(raw)
	if err != nil {
		return b, err
	}

	b = append(b, beginOfScheme)
	b = append(b, scheme...)
	b = append(b, beginOfHost)
	b = appendHost(b, host)

	if full || path != "/" || strings.HasSuffix(raw, "/") {
		b = append(b, beginOfPath)
		b = appendPath(b, path)
	}

	return b, nil
}
