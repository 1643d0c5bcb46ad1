package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Separator joins path segments inside a flat key.
const Separator = "__"

// Entry is one (flat key, raw value) pair of the export's data array.
// Entry order is significant and is preserved by every pass.
type Entry struct {
	Key   string
	Value any
}

// ParseRecord decodes a flat export document of the form
// {"data": [[key, value], ...]}. A missing or null data array yields no
// entries. Numbers are kept as json.Number so they reach the normalizer
// unchanged; object values keep their member order.
func ParseRecord(r io.Reader) ([]Entry, error) {
	var doc struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(doc.Data) == 0 || bytes.Equal(bytes.TrimSpace(doc.Data), []byte("null")) {
		return nil, nil
	}

	var pairs []json.RawMessage
	if err := json.Unmarshal(doc.Data, &pairs); err != nil {
		return nil, fmt.Errorf("%w: data is not an array", ErrMalformedRecord)
	}

	entries := make([]Entry, 0, len(pairs))
	for i, raw := range pairs {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return nil, fmt.Errorf("%w: entry %d is not a [key, value] pair", ErrMalformedRecord, i)
		}
		var key string
		if err := json.Unmarshal(pair[0], &key); err != nil {
			return nil, fmt.Errorf("%w: entry %d key is not a string", ErrMalformedRecord, i)
		}
		value, err := decodeValue(pair[1])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%s): %v", ErrMalformedRecord, i, key, err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}

// ParseRecordBytes is ParseRecord over an in-memory document.
func ParseRecordBytes(data []byte) ([]Entry, error) {
	return ParseRecord(bytes.NewReader(data))
}

// decodeValue decodes one cell. Objects become *Object so their member
// order survives into the document.
func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return decodeNext(dec)
}

func decodeNext(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('{'):
		o := NewObject()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeNext(dec)
			if err != nil {
				return nil, err
			}
			o.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return o, nil
	case json.Delim('['):
		items := []any{}
		for dec.More() {
			v, err := decodeNext(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	}
	return tok, nil
}
