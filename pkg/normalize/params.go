package normalize

// ApplyDefaultParams sets every configured default parameter on the request
// object, unconditionally overwriting any client-supplied value. The proxy,
// not the client, owns these parameters. Returns true if params is non-empty
// and obj was touched.
//
// Applies only to object roots; array-rooted bodies are forwarded as-is.
func ApplyDefaultParams(obj map[string]any, params map[string]any) bool {
	if len(params) == 0 {
		return false
	}
	for k, v := range params {
		obj[k] = v
	}
	return true
}
