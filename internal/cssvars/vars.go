// Package cssvars provides an ordered mapping of CSS custom-property names to
// values. Iteration always follows declaration order so generated stylesheets
// are reproducible.
package cssvars

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Entry is a single custom property.
type Entry struct {
	Key   string
	Value string
}

// Vars is an ordered set of CSS custom properties. The zero value is ready to use.
type Vars struct {
	entries []Entry
	index   map[string]int
}

// New creates a Vars from entries, keeping the first position of any repeated key
// and the last value assigned to it.
func New(entries ...Entry) *Vars {
	v := &Vars{}
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// Set assigns value to key. New keys are appended; existing keys keep their position.
func (v *Vars) Set(key, value string) {
	if v.index == nil {
		v.index = make(map[string]int)
	}
	if i, ok := v.index[key]; ok {
		v.entries[i].Value = value
		return
	}
	v.index[key] = len(v.entries)
	v.entries = append(v.entries, Entry{Key: key, Value: value})
}

// Get returns the value for key.
func (v *Vars) Get(key string) (string, bool) {
	if v == nil || v.index == nil {
		return "", false
	}
	i, ok := v.index[key]
	if !ok {
		return "", false
	}
	return v.entries[i].Value, true
}

// Has reports whether key is present.
func (v *Vars) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Len returns the number of properties.
func (v *Vars) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}

// Keys returns property names in declaration order.
func (v *Vars) Keys() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the properties in declaration order.
func (v *Vars) Entries() []Entry {
	if v == nil {
		return nil
	}
	return slices.Clone(v.entries)
}

// Sorted returns a copy ordered lexically by key.
func (v *Vars) Sorted() *Vars {
	entries := v.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return New(entries...)
}

// Missing returns the keys from want that are not present, in the order given.
func (v *Vars) Missing(want []string) []string {
	var missing []string
	for _, k := range want {
		if !v.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Declaration renders a single custom-property declaration.
func Declaration(key, value string) string {
	return fmt.Sprintf("--%s: %s;", key, value)
}

// MarshalJSON writes the properties as a JSON object in declaration order.
func (v *Vars) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range v.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, e.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, e.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of string values, preserving key order.
// Numbers are kept in their literal form, so "radius": 0 becomes "0".
func (v *Vars) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("css vars must be a JSON object")
	}

	*v = Vars{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		switch value := tok.(type) {
		case string:
			v.Set(key, value)
		case json.Number:
			v.Set(key, value.String())
		default:
			return fmt.Errorf("value for %q has unsupported type %s: want a string or number", key, jsonKind(tok))
		}
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// jsonKind names the JSON type of a decoder token.
func jsonKind(tok json.Token) string {
	switch t := tok.(type) {
	case bool:
		return "boolean"
	case nil:
		return "null"
	case json.Delim:
		if t == '[' {
			return "array"
		}
		return "object"
	}
	return fmt.Sprintf("%T", tok)
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
