package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
)

// looksLikeJSON reports whether a response body should be treated as JSON:
// either the content type says so, or the trimmed body starts with an object
// or array opener.
func looksLikeJSON(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// CleanResponse strips empty tools arrays from a buffered upstream response
// body. It returns the possibly rewritten body and whether it was modified.
//
// The body is only touched when it is non-empty and JSON-shaped per
// looksLikeJSON; anything else, including bodies that fail to parse, comes
// back byte-for-byte unchanged. This step never fails the response.
func CleanResponse(contentType string, body []byte) ([]byte, bool) {
	if len(body) == 0 || !looksLikeJSON(contentType, body) {
		return body, false
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return body, false
	}

	if !StripEmptyTools(data) {
		return body, false
	}

	cleaned, err := MarshalBody(data)
	if err != nil {
		return body, false
	}
	return cleaned, true
}

// MarshalBody serializes a JSON tree without HTML escaping, keeping
// non-ASCII characters and the <, >, & bytes as the upstream sent them.
func MarshalBody(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder.Encode appends a trailing newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
