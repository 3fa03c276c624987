package proxy

import "testing"

func TestPathFilterAllowed(t *testing.T) {
	defaults := []string{
		"/v1/chat/completions",
		"/v1/completions",
		"/v1/models",
		"/v1/*",
	}

	tests := []struct {
		name     string
		prefixes []string
		path     string
		want     bool
	}{
		{"exact match", defaults, "/v1/chat/completions", true},
		{"literal prefix match", defaults, "/v1/chat/completions/extra", true},
		{"wildcard match", defaults, "/v1/anything/else", true},
		{"wildcard matches bare base", []string{"/v1/*"}, "/v1/", true},
		{"no match", []string{"/v1/models"}, "/v2/models", false},
		{"wildcard literal only", []string{"/v1/*"}, "/v2/chat", false},
		{"empty prefix set rejects everything", nil, "/v1/models", false},
		{"no percent decoding", []string{"/v1/models"}, "/%76%31/models", false},
		{"first match wins", []string{"/v1/*", "/never/checked"}, "/v1/x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPathFilter(tt.prefixes)
			if got := f.Allowed(tt.path); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
