package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/normalize"
)

// excludedRequestHeaders are the inbound headers never copied to the
// outbound request. Host and the body-framing headers are owned by the
// outbound transport. Accept-Encoding stays with the transport too: an
// explicit value would disable its transparent gzip decoding, and the
// response normalizer needs decoded bytes.
var excludedRequestHeaders = map[string]bool{
	"host":             true,
	"content-length":   true,
	"content-encoding": true,
	"accept-encoding":  true,
}

// Payload is the outbound request body: either a parsed JSON tree, which the
// forwarder re-serializes, or the raw inbound bytes for bodies that were not
// valid JSON. Exactly one representation is active.
type Payload struct {
	json   any
	raw    []byte
	isJSON bool
}

// JSONPayload wraps a parsed JSON tree.
func JSONPayload(v any) Payload {
	return Payload{json: v, isJSON: true}
}

// RawPayload wraps raw body bytes forwarded verbatim. An empty slice means
// no body.
func RawPayload(b []byte) Payload {
	return Payload{raw: b}
}

// IsJSON reports whether the payload holds a parsed JSON tree.
func (p Payload) IsJSON() bool { return p.isJSON }

// JSON returns the parsed tree, or nil for raw payloads.
func (p Payload) JSON() any { return p.json }

// Result is a buffered upstream response.
type Result struct {
	// StatusCode is the upstream HTTP status.
	StatusCode int

	// Header holds the upstream response headers.
	Header http.Header

	// Body is the complete response body.
	Body []byte
}

// Forwarder executes outbound calls against the DeepSeek API using a shared
// pooled client. It is safe for concurrent use.
type Forwarder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewForwarder creates a Forwarder from the upstream configuration. The
// client timeout bounds every outbound call end to end.
func NewForwarder(cfg *config.UpstreamConfig) *Forwarder {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Forwarder{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// Forward sends the request to <base URL><path> with the same method,
// sanitized headers, and the given payload, and buffers the complete
// response.
//
// Transport failures return a *TransportError; upstream HTTP error statuses
// are part of a successful Result and relayed as-is. No retries.
func (f *Forwarder) Forward(ctx context.Context, method, path string, inbound http.Header, payload Payload) (*Result, error) {
	url := f.baseURL + path

	body, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}

	copyRequestHeaders(req.Header, inbound)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// The proxy is the sole source of upstream credentials;
	// client-supplied Authorization values are discarded.
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	slog.DebugContext(ctx, "sending upstream request",
		"method", method,
		"url", url,
		"json_body", payload.isJSON,
	)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Cause: err}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// encodePayload turns a Payload into outbound body bytes and, for JSON
// payloads, the content type to force.
func encodePayload(p Payload) ([]byte, string, error) {
	if !p.isJSON {
		if len(p.raw) == 0 {
			return nil, "", nil
		}
		return p.raw, "", nil
	}

	b, err := normalize.MarshalBody(p.json)
	if err != nil {
		return nil, "", err
	}
	return b, "application/json", nil
}

// copyRequestHeaders copies every inbound header except the excluded set,
// preserving multiple values per key.
func copyRequestHeaders(dst, src http.Header) {
	for key, values := range src {
		if excludedRequestHeaders[strings.ToLower(key)] {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}
