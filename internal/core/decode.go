// Package core holds the MoneyLover domain records and the codec that maps
// raw API payloads onto them. Decoding is total over missing or malformed
// optional fields; unrecognized keys survive in each record's Others map so
// a decoded record can be re-serialized without losing data.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DecodeError reports a payload that violates a structural assumption,
// such as a category type outside the known set or a non-object element
// where an entity was expected.
type DecodeError struct {
	Entity string
	Key    string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("decode %s: field %q: %s", e.Entity, e.Key, e.Reason)
	}
	return fmt.Sprintf("decode %s: %s", e.Entity, e.Reason)
}

// ParseObject decodes a JSON object into a generic map, preserving numeric
// fidelity via json.Number so untouched values round-trip through Others.
func ParseObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &DecodeError{Entity: "object", Reason: err.Error()}
	}
	return m, nil
}

// ParseArray decodes a JSON array of objects.
func ParseArray(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Entity: "array", Reason: err.Error()}
	}
	out := make([]map[string]any, 0, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &DecodeError{Entity: "array", Reason: fmt.Sprintf("element %d is not an object", i)}
		}
		out = append(out, m)
	}
	return out, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func intField(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(v)
	}
	return 0
}

func stringsField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func objectsField(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if o, ok := v.(map[string]any); ok {
			out = append(out, o)
		}
	}
	return out
}

// timeField parses an RFC 3339 timestamp. A literal "Z" suffix is rewritten
// to an explicit zero UTC offset before parsing. Absent or unparseable
// values fall back to the decode-time wall clock; callers must not read
// meaning into that default beyond "unknown".
func timeField(m map[string]any, key string) time.Time {
	s, ok := m[key].(string)
	if !ok {
		return time.Now()
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now()
	}
	return t
}

// othersOf copies every top-level key of m not claimed by a named field.
// The result is exactly m minus the named keys.
func othersOf(m map[string]any, named ...string) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		claimed := false
		for _, n := range named {
			if k == n {
				claimed = true
				break
			}
		}
		if !claimed {
			out[k] = v
		}
	}
	return out
}

// mergeOthers builds the serialized form of an entity: its named fields
// plus every preserved unknown key, re-emitted verbatim.
func mergeOthers(named map[string]any, others map[string]any) ([]byte, error) {
	out := make(map[string]any, len(named)+len(others))
	for k, v := range others {
		out[k] = v
	}
	for k, v := range named {
		out[k] = v
	}
	return json.Marshal(out)
}
