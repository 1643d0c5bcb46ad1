package transform_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hajduko/SaWinHETUtility/internal/transform"
)

// kv builds entries from alternating key/value strings.
func kv(pairs ...string) []transform.Entry {
	out := make([]transform.Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, transform.Entry{Key: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// prefixed builds entries whose keys all start with the family prefix.
func prefixed(family string, pairs ...string) []transform.Entry {
	out := kv(pairs...)
	for i := range out {
		out[i].Key = family + transform.Separator + out[i].Key
	}
	return out
}

// generic round-trips v through the document encoder so expectations can be
// written as plain maps and slices.
func generic(t *testing.T, v any) any {
	t.Helper()
	var buf bytes.Buffer
	if err := transform.Encode(&buf, v); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var out any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}
	return out
}

// compact renders v as compact JSON, preserving member order.
func compact(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
