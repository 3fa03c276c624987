package upstream

import "fmt"

// TransportError represents a network-layer failure of the outbound call:
// connection refused, timeout, DNS failure, and the like. The proxy surfaces
// it to the client as a 502; it never indicates a client mistake.
type TransportError struct {
	// URL is the upstream URL the call was made against.
	URL string

	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream request to %s failed: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}
