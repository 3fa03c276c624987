// Package normalize rewrites untyped JSON request and response bodies so that
// they match what the DeepSeek API accepts.
//
// Bodies are handled as the trees produced by encoding/json when decoding
// into any: map[string]any for objects, []any for arrays. All transforms
// mutate the tree in place and report whether anything changed; the modified
// flag is used only for logging and metrics.
//
// Three transforms are provided:
//
//   - StripEmptyTools removes "tools" keys whose value is a zero-length
//     array, at any depth.
//   - FlattenMessageContent collapses structured messages[i].content values
//     (content-part arrays, parts/items/segments objects) into plain strings.
//   - ApplyDefaultParams sets configured default parameters on a request
//     object, overwriting client-supplied values.
//
// CleanResponse applies StripEmptyTools to a buffered upstream response body
// when it looks like JSON, and is guaranteed to never fail: on any parse
// problem the original bytes are returned unchanged.
package normalize
