package normalize

// isEmptyToolsArray reports whether v is an array with zero elements.
// Only exactly-empty arrays qualify; a non-array "tools" value (null, object,
// string) is left alone.
func isEmptyToolsArray(v any) bool {
	arr, ok := v.([]any)
	return ok && len(arr) == 0
}

// StripEmptyTools recursively removes every "tools" key holding an empty
// array from the tree rooted at v. It returns true if anything was removed.
//
// Chat-completion responses carry tools both on choices[i] and on
// choices[i].message, so those locations get targeted checks before the
// generic recursion walks the rest of the tree.
func StripEmptyTools(v any) bool {
	modified := false

	switch node := v.(type) {
	case map[string]any:
		if tools, ok := node["tools"]; ok && isEmptyToolsArray(tools) {
			delete(node, "tools")
			modified = true
		}

		if choices, ok := node["choices"].([]any); ok {
			for _, c := range choices {
				choice, ok := c.(map[string]any)
				if !ok {
					continue
				}
				if msg, ok := choice["message"].(map[string]any); ok {
					if tools, ok := msg["tools"]; ok && isEmptyToolsArray(tools) {
						delete(msg, "tools")
						modified = true
					}
				}
				if tools, ok := choice["tools"]; ok && isEmptyToolsArray(tools) {
					delete(choice, "tools")
					modified = true
				}
			}
		}

		for _, child := range node {
			switch child.(type) {
			case map[string]any, []any:
				if StripEmptyTools(child) {
					modified = true
				}
			}
		}

	case []any:
		for _, item := range node {
			switch item.(type) {
			case map[string]any, []any:
				if StripEmptyTools(item) {
					modified = true
				}
			}
		}
	}

	return modified
}
