package ratelimit

import (
	"slices"
	"strings"
)

// MatchEndpoint finds the override for a request. Exact paths win over
// prefixes, so "/render/" matches "/render/html" only when no entry names
// "/render/html" itself.
func MatchEndpoint(path string, method string, configs []EndpointConfig) (EndpointConfig, bool) {
	for _, c := range configs {
		if c.Path == path && c.Method == method {
			return c, true
		}
	}
	for _, c := range configs {
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c, true
		}
	}
	return EndpointConfig{}, false
}

// isUnlimited reports whether path is exempt from limiting
func isUnlimited(path string, unlimited []string) bool {
	return slices.Contains(unlimited, path)
}
