// Package upstream builds and executes the outbound call to the DeepSeek
// API.
//
// The Forwarder owns a single pooled http.Client bounded by the configured
// timeout. It copies inbound headers minus the hop-by-hop set, forces the
// Authorization header to the configured bearer token, and sends either a
// re-serialized JSON body or the raw inbound bytes depending on whether the
// inbound body parsed as JSON.
//
// Transport-level failures (connection refused, timeout, DNS) come back as
// *TransportError so the handler can surface them as a gateway failure
// rather than a client failure. Upstream HTTP error statuses are not errors
// here; they are relayed to the client as-is.
package upstream
