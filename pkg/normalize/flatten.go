package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// preferredTextFields is the priority order for extracting text from a
// content part object.
var preferredTextFields = []string{"text", "content", "value"}

// structuredContentKeys is the priority order for locating the part list
// inside a structured content object.
var structuredContentKeys = []string{"parts", "items", "segments"}

// FlattenMessageContent collapses structured content values in obj's
// top-level "messages" array into plain strings. It returns true if any
// message was rewritten.
//
// Only messages[i].content directly under the root is touched; nested
// structures elsewhere in the body are left as they are. Content that is
// already a string, or an empty array, is unchanged.
func FlattenMessageContent(obj map[string]any) bool {
	messages, ok := obj["messages"].([]any)
	if !ok {
		return false
	}

	modified := false
	for _, m := range messages {
		msg, ok := m.(map[string]any)
		if !ok {
			continue
		}

		switch content := msg["content"].(type) {
		case []any:
			if len(content) == 0 {
				continue
			}
			msg["content"] = flattenParts(content)
			modified = true

		case map[string]any:
			if flat, ok := flattenStructured(content); ok {
				msg["content"] = flat
				modified = true
			}
		}
	}

	return modified
}

// flattenParts joins an array of content parts into a single
// newline-separated string.
func flattenParts(parts []any) string {
	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case map[string]any:
			text, found := "", false
			for _, field := range preferredTextFields {
				if s, ok := p[field].(string); ok {
					text, found = s, true
					break
				}
			}
			if found {
				texts = append(texts, text)
			} else {
				texts = append(texts, serializePart(p))
			}
		case string:
			texts = append(texts, p)
		default:
			texts = append(texts, serializePart(p))
		}
	}
	return strings.Join(texts, "\n")
}

// flattenStructured handles content objects of the form
// {"parts": [...]} (or "items"/"segments"). Only the first key holding a
// non-empty array is consulted; the search stops once it yields text.
func flattenStructured(content map[string]any) (string, bool) {
	for _, key := range structuredContentKeys {
		list, ok := content[key].([]any)
		if !ok || len(list) == 0 {
			continue
		}

		texts := make([]string, 0, len(list))
		for _, part := range list {
			if p, ok := part.(map[string]any); ok {
				if s, ok := p["text"].(string); ok {
					texts = append(texts, s)
					continue
				}
			}
			if s, ok := part.(string); ok {
				texts = append(texts, s)
				continue
			}
			texts = append(texts, serializePart(part))
		}

		if len(texts) > 0 {
			return strings.Join(texts, "\n"), true
		}
	}
	return "", false
}

// serializePart renders a part that has no usable text field as compact
// JSON, falling back to fmt.Sprint for values json cannot marshal. This
// path must never fail.
func serializePart(part any) string {
	b, err := json.Marshal(part)
	if err != nil {
		return fmt.Sprint(part)
	}
	return string(b)
}
