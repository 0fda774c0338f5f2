// Package jsonedit reads, patches and writes JSON documents on a project tree.
//
// Documents are edited as bytes with jsonparser so untouched keys keep their
// position; new keys are appended to the end of their object.
package jsonedit

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/mamaar/ngessentials/pkg/types"
)

// Document is a JSON object held in compact form.
type Document struct {
	path    string
	raw     []byte
	changed bool
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse validates data as a JSON object. path is only used in errors.
func Parse(path string, data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, types.WrapError(types.MalformedDocument, path, "invalid JSON", err)
	}
	if buf.Len() == 0 || buf.Bytes()[0] != '{' {
		return nil, types.NewError(types.MalformedDocument, path, "expected a JSON object")
	}
	return &Document{path: path, raw: buf.Bytes()}, nil
}

// Path returns the tree path the document was read from
func (d *Document) Path() string {
	return d.path
}

// Changed reports whether any edit was made since Parse.
func (d *Document) Changed() bool {
	return d.changed
}

func (d *Document) get(keys ...string) ([]byte, jsonparser.ValueType, bool) {
	value, dataType, _, err := jsonparser.Get(d.raw, keys...)
	if err != nil || dataType == jsonparser.NotExist {
		return nil, jsonparser.NotExist, false
	}
	return value, dataType, true
}

// Has reports whether the key path exists, whatever its value.
func (d *Document) Has(keys ...string) bool {
	_, _, ok := d.get(keys...)
	return ok
}

// Truthy reports whether the key path exists and holds something other than
// null, false, 0 or an empty string.
func (d *Document) Truthy(keys ...string) bool {
	value, dataType, ok := d.get(keys...)
	if !ok {
		return false
	}
	switch dataType {
	case jsonparser.Null:
		return false
	case jsonparser.Boolean:
		return string(value) == "true"
	case jsonparser.String:
		return len(value) > 0
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		return err != nil || f != 0
	}
	return true
}

// IsObject reports whether the key path holds an object.
func (d *Document) IsObject(keys ...string) bool {
	_, dataType, ok := d.get(keys...)
	return ok && dataType == jsonparser.Object
}

// GetString returns the string at the key path.
func (d *Document) GetString(keys ...string) (string, bool) {
	value, dataType, ok := d.get(keys...)
	if !ok || dataType != jsonparser.String {
		return "", false
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return "", false
	}
	return s, true
}

// GetBool returns the boolean at the key path.
func (d *Document) GetBool(keys ...string) (bool, bool) {
	value, dataType, ok := d.get(keys...)
	if !ok || dataType != jsonparser.Boolean {
		return false, false
	}
	b, err := jsonparser.ParseBoolean(value)
	return b, err == nil
}

// GetRaw returns the JSON encoding of the value at the key path.
func (d *Document) GetRaw(keys ...string) ([]byte, bool) {
	value, dataType, ok := d.get(keys...)
	if !ok {
		return nil, false
	}
	if dataType == jsonparser.String {
		return append(append([]byte{'"'}, value...), '"'), true
	}
	return append([]byte(nil), value...), true
}

// Value decodes the value at the key path into a Go value.
func (d *Document) Value(keys ...string) (any, bool) {
	raw, ok := d.GetRaw(keys...)
	if !ok {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// Set encodes value and stores it at the key path, creating missing objects
// along the way. An existing key keeps its position.
func (d *Document) Set(value any, keys ...string) error {
	raw, err := marshal(value)
	if err != nil {
		return types.WrapError(types.MalformedDocument, d.path, "cannot encode value for "+strings.Join(keys, "."), err)
	}
	return d.SetRaw(raw, keys...)
}

// SetRaw stores an already encoded JSON value at the key path.
func (d *Document) SetRaw(raw []byte, keys ...string) error {
	if len(keys) == 0 {
		return types.NewError(types.MalformedDocument, d.path, "empty key path")
	}
	for i := range keys[:len(keys)-1] {
		if _, dataType, ok := d.get(keys[:i+1]...); ok && dataType != jsonparser.Object {
			return types.NewError(types.MalformedDocument, d.path, "%s is not an object", strings.Join(keys[:i+1], "."))
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return types.WrapError(types.MalformedDocument, d.path, "invalid JSON value", err)
	}

	updated, err := jsonparser.Set(clone(d.raw), compact.Bytes(), keys...)
	if err != nil {
		return types.WrapError(types.MalformedDocument, d.path, "cannot set "+strings.Join(keys, "."), err)
	}
	if !json.Valid(updated) {
		return types.NewError(types.MalformedDocument, d.path, "setting %s produced invalid JSON", strings.Join(keys, "."))
	}
	d.raw = updated
	d.changed = true
	return nil
}

// Delete removes the key path and reports whether it was present.
func (d *Document) Delete(keys ...string) bool {
	if len(keys) == 0 || !d.Has(keys...) {
		return false
	}
	d.raw = jsonparser.Delete(clone(d.raw), keys...)
	d.changed = true
	return true
}

// ObjectKeys returns the keys of the object at the key path in document order.
// A missing path yields no keys.
func (d *Document) ObjectKeys(keys ...string) ([]string, error) {
	var out []string
	err := d.eachEntry(func(key string, _ []byte, _ jsonparser.ValueType) {
		out = append(out, key)
	}, keys...)
	return out, err
}

// EachString calls fn for every string member of the object at the key path.
func (d *Document) EachString(fn func(key, value string), keys ...string) error {
	return d.eachEntry(func(key string, value []byte, dataType jsonparser.ValueType) {
		if dataType != jsonparser.String {
			return
		}
		if s, err := jsonparser.ParseString(value); err == nil {
			fn(key, s)
		}
	}, keys...)
}

func (d *Document) eachEntry(fn func(key string, value []byte, dataType jsonparser.ValueType), keys ...string) error {
	if len(keys) > 0 {
		if !d.Has(keys...) {
			return nil
		}
		if !d.IsObject(keys...) {
			return types.NewError(types.MalformedDocument, d.path, "%s is not an object", strings.Join(keys, "."))
		}
	}
	err := jsonparser.ObjectEach(d.raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		fn(k, value, dataType)
		return nil
	}, keys...)
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return types.WrapError(types.MalformedDocument, d.path, "cannot iterate "+strings.Join(keys, "."), err)
	}
	return nil
}

// Bytes returns the document indented with two spaces and a trailing newline.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d.raw, "", "  "); err != nil {
		// raw is validated on every edit
		return append(clone(d.raw), '\n')
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Unmarshal decodes the whole document into v.
func (d *Document) Unmarshal(v any) error {
	return json.Unmarshal(d.raw, v)
}

func marshal(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
