package proxy

import "strings"

// WildcardMarker is the suffix that turns an allowed prefix into a pure
// prefix match.
const WildcardMarker = "*"

// PathFilter decides whether an inbound request path is eligible for
// forwarding. It is immutable after construction and safe for concurrent
// use.
type PathFilter struct {
	prefixes []string
}

// NewPathFilter creates a filter over the configured prefix set.
func NewPathFilter(prefixes []string) *PathFilter {
	return &PathFilter{prefixes: prefixes}
}

// Allowed reports whether path matches any configured prefix. A prefix
// ending in the wildcard marker matches any path starting with the remaining
// literal; any other prefix requires equality or a literal prefix match.
// The first match wins.
//
// The path is tested exactly as received: no percent-decoding or other
// normalization is applied.
func (f *PathFilter) Allowed(path string) bool {
	for _, prefix := range f.prefixes {
		if base, ok := strings.CutSuffix(prefix, WildcardMarker); ok {
			if strings.HasPrefix(path, base) {
				return true
			}
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
