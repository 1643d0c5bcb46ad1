package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Object is a JSON object that keeps its keys in insertion order.
// Setting an existing key replaces the value in place.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set stores v under key, appending the key if it is new.
func (o *Object) Set(key string, v any) {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// MarshalJSON writes the members in insertion order. HTML characters are
// left unescaped.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, o.vals[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// objectFromMap adopts a decoded map. Go maps carry no order, so keys are
// taken sorted, as encoding/json would write them.
func objectFromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := NewObject()
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// jsonFloat writes a float the way the certificate files carry it: an
// integral value keeps a trailing ".0" and large or tiny magnitudes use
// exponent form.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("json: unsupported float value %v", v)
	}
	return []byte(floatText(v)), nil
}

// documentValue swaps float64 values for jsonFloat, descending into lists
// and maps so nested numbers keep their type too.
func documentValue(v any) any {
	switch t := v.(type) {
	case float64:
		return jsonFloat(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = documentValue(item)
		}
		return out
	case map[string]any:
		return objectFromMap(t)
	default:
		return v
	}
}

func writeJSON(buf *bytes.Buffer, v any) error {
	v = documentValue(v)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
