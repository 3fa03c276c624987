package normalize

import (
	"encoding/json"
	"reflect"
	"testing"
)

// decode is a test helper that parses JSON into the untyped tree the
// transforms operate on.
func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("failed to decode test JSON: %v", err)
	}
	return v
}

func TestStripEmptyTools(t *testing.T) {
	t.Run("removes empty tools at root", func(t *testing.T) {
		v := decode(t, `{"model":"deepseek-chat","tools":[]}`)

		modified := StripEmptyTools(v)

		if !modified {
			t.Error("expected modified to be true")
		}
		obj := v.(map[string]any)
		if _, ok := obj["tools"]; ok {
			t.Error("tools key should have been removed")
		}
		if obj["model"] != "deepseek-chat" {
			t.Error("other fields should be untouched")
		}
	})

	t.Run("removes empty tools inside choices and messages", func(t *testing.T) {
		v := decode(t, `{"choices":[{"message":{"role":"assistant","tools":[]},"tools":[]}]}`)

		if !StripEmptyTools(v) {
			t.Fatal("expected modified to be true")
		}

		choice := v.(map[string]any)["choices"].([]any)[0].(map[string]any)
		if _, ok := choice["tools"]; ok {
			t.Error("choice tools should have been removed")
		}
		msg := choice["message"].(map[string]any)
		if _, ok := msg["tools"]; ok {
			t.Error("message tools should have been removed")
		}
		if msg["role"] != "assistant" {
			t.Error("message role should be untouched")
		}
	})

	t.Run("removes empty tools at arbitrary depth", func(t *testing.T) {
		v := decode(t, `{"a":{"b":[{"c":{"tools":[]}}]}}`)

		if !StripEmptyTools(v) {
			t.Fatal("expected modified to be true")
		}

		c := v.(map[string]any)["a"].(map[string]any)["b"].([]any)[0].(map[string]any)["c"].(map[string]any)
		if _, ok := c["tools"]; ok {
			t.Error("deeply nested tools should have been removed")
		}
	})

	t.Run("leaves non-empty tools alone", func(t *testing.T) {
		v := decode(t, `{"tools":[{"type":"function"}],"nested":{"tools":[1]}}`)
		before := decode(t, `{"tools":[{"type":"function"}],"nested":{"tools":[1]}}`)

		if StripEmptyTools(v) {
			t.Error("expected modified to be false")
		}
		if !reflect.DeepEqual(v, before) {
			t.Error("tree should be unchanged")
		}
	})

	t.Run("leaves non-array tools alone", func(t *testing.T) {
		v := decode(t, `{"tools":null,"other":{"tools":"none"}}`)

		if StripEmptyTools(v) {
			t.Error("expected modified to be false")
		}
		obj := v.(map[string]any)
		if _, ok := obj["tools"]; !ok {
			t.Error("null tools should not be removed")
		}
	})

	t.Run("handles array roots", func(t *testing.T) {
		v := decode(t, `[{"tools":[]},{"tools":["x"]}]`)

		if !StripEmptyTools(v) {
			t.Fatal("expected modified to be true")
		}
		arr := v.([]any)
		if _, ok := arr[0].(map[string]any)["tools"]; ok {
			t.Error("first element tools should have been removed")
		}
		if _, ok := arr[1].(map[string]any)["tools"]; !ok {
			t.Error("second element tools should remain")
		}
	})

	t.Run("scalar values are no-ops", func(t *testing.T) {
		if StripEmptyTools("just a string") {
			t.Error("expected modified to be false")
		}
		if StripEmptyTools(nil) {
			t.Error("expected modified to be false")
		}
	})
}
