package transform

import (
	"regexp"
	"strings"
)

// Alternative energy flags are collected into a list instead of being
// materialized as individual booleans.
const (
	AlternativeEnergyKey   = "usingAlternativeEnergy"
	AlternativeEnergiesKey = "alternativeEnergies"

	alternativeEnergyPrefix = AlternativeEnergyKey + Separator + AlternativeEnergiesKey + Separator
)

// arrayMember matches a final path segment such as "phone_2": the value is
// appended to the "phone" list.
var arrayMember = regexp.MustCompile(`^(.+)_\d+$`)

// Materialize builds the generic nested document from the remaining
// entries. Each key is split into a dotted path; intermediate segments
// become objects (replacing any scalar already stored there), the last
// segment is either set or, when it carries a _<digits> suffix, appended
// to a list under the base name. Null and empty values are skipped.
func Materialize(entries []Entry) *Object {
	doc := NewObject()
	var energies []string

	for _, e := range entries {
		value := Normalize(e.Value)

		if strings.HasPrefix(e.Key, alternativeEnergyPrefix) {
			if on, ok := value.(bool); ok && on {
				energies = append(energies, lastSegment(e.Key))
			}
			continue
		}
		if value == nil || value == "" {
			continue
		}

		segments := strings.Split(e.Key, Separator)
		cur := doc
		for _, seg := range segments[:len(segments)-1] {
			cur = childObject(cur, seg)
		}
		last := segments[len(segments)-1]
		if m := arrayMember.FindStringSubmatch(last); m != nil {
			appendMember(cur, m[1], value)
		} else {
			cur.Set(last, value)
		}
	}

	if len(energies) > 0 {
		childObject(doc, AlternativeEnergyKey).Set(AlternativeEnergiesKey, energies)
	}
	return doc
}

// childObject returns the object stored under key, replacing a missing or
// non-object value with a new empty object. A plain map is adopted with
// its contents.
func childObject(o *Object, key string) *Object {
	if v, ok := o.Get(key); ok {
		switch child := v.(type) {
		case *Object:
			return child
		case map[string]any:
			adopted := objectFromMap(child)
			o.Set(key, adopted)
			return adopted
		}
	}
	child := NewObject()
	o.Set(key, child)
	return child
}

func appendMember(o *Object, key string, v any) {
	list, _ := o.Get(key)
	items, ok := list.([]any)
	if !ok {
		items = []any{}
	}
	o.Set(key, append(items, v))
}

func lastSegment(key string) string {
	if i := strings.LastIndex(key, Separator); i >= 0 {
		return key[i+len(Separator):]
	}
	return key
}
