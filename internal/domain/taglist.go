package domain

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// NoneSentinel marks an explicitly empty answer in set-valued profile fields.
const NoneSentinel = "None"

// TagList is an ordered set of tag values (equipment, pain areas, phases...).
//
// It decodes leniently, from JSON or BSON, from either an array or a string
// holding a JSON-encoded array. Anything else decodes to an empty list.
type TagList []string

// ParseTagList parses a serialized JSON array of strings. Malformed or
// missing input yields an empty list, never an error.
func ParseTagList(raw string) TagList {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TagList{}
	}
	var values []any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return TagList{}
	}
	out := make(TagList, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = ParseTagList(raw)
		return nil
	}
	*t = TagList{}
	return nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler. Non-string array
// elements are skipped; it never fails.
func (t *TagList) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: typ, Value: data}
	if raw, ok := rv.StringValueOK(); ok {
		*t = ParseTagList(raw)
		return nil
	}
	out := TagList{}
	if arr, ok := rv.ArrayOK(); ok {
		values, err := arr.Values()
		if err == nil {
			for _, v := range values {
				if s, ok := v.StringValueOK(); ok {
					out = append(out, s)
				}
			}
		}
	}
	*t = out
	return nil
}

// Contains reports whether v is in the list.
func (t TagList) Contains(v string) bool {
	for _, s := range t {
		if s == v {
			return true
		}
	}
	return false
}

// Intersects reports whether t and other share at least one value.
func (t TagList) Intersects(other TagList) bool {
	for _, s := range t {
		if other.Contains(s) {
			return true
		}
	}
	return false
}

// HasNone reports whether the list carries the "None" sentinel.
func (t TagList) HasNone() bool {
	return t.Contains(NoneSentinel)
}

// Normalize trims whitespace, drops empty values and duplicates, keeping order.
func (t TagList) Normalize() TagList {
	out := make(TagList, 0, len(t))
	seen := make(map[string]struct{}, len(t))
	for _, s := range t {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
