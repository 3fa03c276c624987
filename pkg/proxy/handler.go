package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/normalize"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/upstream"
)

const (
	// MaxRequestBodySize is the maximum allowed request body size (10MB).
	MaxRequestBodySize = 10 * 1024 * 1024

	// notFoundBody is the plain-text body returned for paths the proxy
	// does not handle.
	notFoundBody = "Not handled by deepseek proxy"
)

// excludedResponseHeaders are the hop-by-hop headers never copied from the
// upstream response to the client. The body may have been rewritten, so the
// original framing headers no longer apply.
var excludedResponseHeaders = map[string]bool{
	"content-encoding":  true,
	"transfer-encoding": true,
	"content-length":    true,
	"connection":        true,
}

// Handler is the catch-all forwarding handler. It orchestrates admission,
// normalization, the upstream call, and response emission for every inbound
// request.
type Handler struct {
	cfg       *config.Config
	filter    *PathFilter
	forwarder *upstream.Forwarder
	metrics   *metrics.Collector
}

// NewHandler creates the forwarding handler. collector may be nil to disable
// metrics recording.
func NewHandler(cfg *config.Config, forwarder *upstream.Forwarder, collector *metrics.Collector) *Handler {
	return &Handler{
		cfg:       cfg,
		filter:    NewPathFilter(cfg.Proxy.AllowedPrefixes),
		forwarder: forwarder,
		metrics:   collector,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path := r.URL.Path

	slog.InfoContext(ctx, "incoming request", "method", r.Method, "path", path)

	if !h.filter.Allowed(path) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, notFoundBody)
		h.observeRequest(r.Method, http.StatusNotFound, 0)
		return
	}

	raw, err := readBody(r)
	if err != nil {
		slog.WarnContext(ctx, "failed to read request body", "path", path, "error", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		h.observeRequest(r.Method, http.StatusBadRequest, 0)
		return
	}

	localStart := time.Now()
	payload, modified := h.preparePayload(raw)
	localTime := time.Since(localStart)

	if modified {
		slog.InfoContext(ctx, "request body patched", "path", path)
		h.recordModified(metrics.DirectionRequest)
	}

	// The outbound call is bounded by the forwarder's timeout only; a
	// client disconnect does not interrupt it.
	upstreamStart := time.Now()
	result, err := h.forwarder.Forward(context.WithoutCancel(ctx), r.Method, path, r.Header, payload)
	upstreamTime := time.Since(upstreamStart)

	if err != nil {
		var transportErr *upstream.TransportError
		if errors.As(err, &transportErr) {
			slog.ErrorContext(ctx, "upstream request failed", "path", path, "error", transportErr.Cause)
		} else {
			slog.ErrorContext(ctx, "upstream request failed", "path", path, "error", err)
		}
		if h.metrics != nil {
			h.metrics.RecordUpstreamError()
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintf(w, "Upstream request failed: %v", err)
		h.observeRequest(r.Method, http.StatusBadGateway, localTime+upstreamTime)
		return
	}

	responseStart := time.Now()
	body := result.Body
	if h.cfg.CleanResponse {
		var cleaned bool
		body, cleaned = normalize.CleanResponse(result.Header.Get("Content-Type"), body)
		if cleaned {
			slog.InfoContext(ctx, "removed empty tools from upstream response", "path", path)
			h.recordModified(metrics.DirectionResponse)
		}
	}
	responseTime := time.Since(responseStart)

	copyResponseHeaders(w.Header(), result.Header)
	w.WriteHeader(result.StatusCode)
	if _, err := w.Write(body); err != nil {
		slog.WarnContext(ctx, "failed to write response to client", "path", path, "error", err)
	}

	total := localTime + upstreamTime + responseTime
	slog.InfoContext(ctx, "request processed",
		"method", r.Method,
		"path", path,
		"status", result.StatusCode,
		"local_ms", localTime.Milliseconds(),
		"upstream_ms", upstreamTime.Milliseconds(),
		"response_ms", responseTime.Milliseconds(),
		"total_ms", total.Milliseconds(),
	)

	if h.metrics != nil {
		h.metrics.ObserveStage(metrics.StageRequest, localTime)
		h.metrics.ObserveStage(metrics.StageUpstream, upstreamTime)
		h.metrics.ObserveStage(metrics.StageResponse, responseTime)
	}
	h.observeRequest(r.Method, result.StatusCode, total)
}

// preparePayload parses the inbound body as JSON when possible and runs the
// request-side transforms. Bodies that fail to parse stay raw; parse failure
// is a passthrough, never an error. The modified flag covers the
// normalization transforms only, not default injection into an otherwise
// untouched body.
func (h *Handler) preparePayload(raw []byte) (upstream.Payload, bool) {
	if len(raw) == 0 {
		return upstream.RawPayload(nil), false
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return upstream.RawPayload(raw), false
	}
	if body == nil {
		// A literal null body has nothing to normalize; forward it
		// verbatim with the inbound content type.
		return upstream.RawPayload(raw), false
	}

	modified := false
	switch v := body.(type) {
	case map[string]any:
		if normalize.StripEmptyTools(v) {
			modified = true
		}
		if normalize.FlattenMessageContent(v) {
			modified = true
		}
		normalize.ApplyDefaultParams(v, h.cfg.DefaultParams)
	case []any:
		if normalize.StripEmptyTools(v) {
			modified = true
		}
	}

	return upstream.JSONPayload(body), modified
}

// readBody buffers the inbound body, bounded by MaxRequestBodySize.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxRequestBodySize {
		return nil, fmt.Errorf("request body exceeds maximum size of %d bytes", MaxRequestBodySize)
	}
	return body, nil
}

// copyResponseHeaders copies upstream headers to the client, skipping the
// hop-by-hop set.
func copyResponseHeaders(dst, src http.Header) {
	for key, values := range src {
		if excludedResponseHeaders[strings.ToLower(key)] {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}

func (h *Handler) observeRequest(method string, status int, total time.Duration) {
	if h.metrics != nil {
		h.metrics.ObserveRequest(method, status, total)
	}
}

func (h *Handler) recordModified(direction string) {
	if h.metrics != nil {
		h.metrics.RecordBodyModified(direction)
	}
}
