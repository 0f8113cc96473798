package gfwlist

import (
	"net/netip"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// parseURL decomposes raw into its scheme, host, and path.
//
// The scheme and host are lowercased. Non-ASCII hosts are converted to their
// ASCII form. IPv6 hosts are enclosed in square brackets. The port, query,
// and fragment are discarded. An empty path is returned as "/".
func parseURL(raw string) (scheme, host, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", &URLError{URL: raw, Err: err}
	}
	if u.Scheme == "" {
		return "", "", "", &URLError{URL: raw, Err: ErrMissingScheme}
	}
	if u.Opaque != "" {
		return "", "", "", &URLError{URL: raw, Err: ErrEmptyHost}
	}

	host, err = normalizeHost(u.Hostname())
	if err != nil {
		return "", "", "", &URLError{URL: raw, Err: err}
	}

	path = u.EscapedPath()
	if path == "" {
		path = "/"
	}

	return u.Scheme, host, path, nil
}

func normalizeHost(host string) (string, error) {
	if host == "" {
		return "", ErrEmptyHost
	}

	if strings.IndexByte(host, ':') != -1 {
		addr, err := netip.ParseAddr(host)
		if err != nil {
			return "", err
		}
		return "[" + addr.String() + "]", nil
	}

	for i := 0; i < len(host); i++ {
		if host[i] >= 0x80 {
			return idna.Lookup.ToASCII(host)
		}
	}

	return strings.ToLower(host), nil
}
