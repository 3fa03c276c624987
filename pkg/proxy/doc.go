// Package proxy implements the per-request forwarding pipeline of Callisto.
//
// Every admitted request moves through a linear sequence with no branching
// back: admission check, JSON parse (best effort), request normalization,
// upstream forward, response normalization, and response emit. Each stage is
// timed and the timings are logged and exported as metrics; timing never
// affects control flow.
//
// # Request flow
//
//  1. PathFilter decides whether the inbound path is eligible. Rejected
//     paths get an immediate 404.
//  2. The body, if any, is parsed as JSON. Parse failure is not an error:
//     the body is forwarded as raw bytes instead.
//  3. Parsed object/array bodies are normalized: empty tools arrays are
//     stripped, structured message content is flattened, and configured
//     default parameters are injected (objects only).
//  4. The upstream.Forwarder executes the outbound call. A transport
//     failure becomes a 502 carrying the error description.
//  5. When response cleaning is enabled, empty tools arrays are stripped
//     from JSON-shaped response bodies.
//  6. The upstream status and headers (minus hop-by-hop headers) are copied
//     to the client verbatim along with the possibly rewritten body.
//
// The handler holds no cross-request mutable state; the configuration it
// reads is immutable after startup, so requests are served concurrently
// without coordination.
package proxy
