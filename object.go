// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// Extra carries fields received from the Bot API that this library has no
// struct field for. They are collected by [Decode] instead of being dropped,
// and merged back into the output of [Encode], so unknown fields survive a
// decode/encode round trip. Known fields always win over Extra entries with
// the same name.
type Extra map[string]json.RawMessage

// Encode encodes a Bot API object to JSON. It behaves like [json.Marshal],
// except that non-empty [Extra] bags, at any nesting level, are merged back
// into the output.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, reflect.ValueOf(v))
}

// Decode decodes a Bot API object from JSON. JSON null (and empty input)
// decodes to a nil pointer without error. Unknown keys are routed, at any
// nesting level, into the nearest enclosing object's [Extra] bag.
//
// Field values are assigned as-is and not validated beyond what
// encoding/json enforces: the Bot API grows new fields and loosens old ones
// regularly, and being strict here would break callers on every API update.
func Decode[T any](data []byte) (*T, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	bindExtra(data, reflect.ValueOf(v).Elem())
	return v, nil
}

func isJSONNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Identifier is implemented by Bot API objects that have designated identity
// fields. Ident reports the value of those fields as a single string, which
// also serves as the object's hash key: two objects with equal Ident are
// interchangeable as map keys.
type Identifier interface {
	Ident() string
}

// Equal reports whether a and b are the same kind of Bot API object with
// matching identity fields. Objects of different concrete types are never
// equal, even if their identity fields coincide. Fields outside the identity
// are not compared.
func Equal(a, b Identifier) bool {
	if isNilIdentifier(a) || isNilIdentifier(b) {
		return isNilIdentifier(a) && isNilIdentifier(b)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.Ident() == b.Ident()
}

func isNilIdentifier(v Identifier) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

var (
	extraType = reflect.TypeOf(Extra(nil))
	timeType  = reflect.TypeOf(time.Time{})
)

// bindExtra walks the decoded value alongside its raw JSON and fills Extra
// bags with keys that have no corresponding struct field.
func bindExtra(raw json.RawMessage, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Pointer:
		if !rv.IsNil() {
			bindExtra(raw, rv.Elem())
		}
	case reflect.Struct:
		if rv.Type() == timeType {
			return
		}
		collectExtra(raw, rv)
	case reflect.Slice, reflect.Array:
		if k := rv.Type().Elem().Kind(); k != reflect.Struct && k != reflect.Pointer && k != reflect.Slice {
			return
		}
		var elems []json.RawMessage
		if json.Unmarshal(raw, &elems) != nil {
			return
		}
		for i := 0; i < rv.Len() && i < len(elems); i++ {
			bindExtra(elems[i], rv.Index(i))
		}
	}
}

func collectExtra(raw json.RawMessage, rv reflect.Value) {
	var m map[string]json.RawMessage
	if json.Unmarshal(raw, &m) != nil || m == nil {
		return
	}

	known := make(map[string]bool)
	walkFields(rv, func(name string, fv reflect.Value) {
		known[name] = true
		if sub, ok := m[name]; ok {
			bindExtra(sub, fv)
		}
	})

	var extra Extra
	for k, v := range m {
		if !known[k] {
			if extra == nil {
				extra = make(Extra)
			}
			extra[k] = v
		}
	}
	if extra != nil {
		setExtra(rv, extra)
	}
}

// mergeExtra reverses bindExtra: it walks the value alongside its marshaled
// JSON and splices Extra bag entries back in, without overriding known
// fields.
func mergeExtra(raw json.RawMessage, rv reflect.Value) (json.RawMessage, error) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return raw, nil
		}
		return mergeExtra(raw, rv.Elem())
	case reflect.Struct:
		if rv.Type() == timeType || !hasExtra(rv) {
			return raw, nil
		}
		var m map[string]json.RawMessage
		if json.Unmarshal(raw, &m) != nil || m == nil {
			return raw, nil
		}
		var walkErr error
		walkFields(rv, func(name string, fv reflect.Value) {
			sub, ok := m[name]
			if !ok || walkErr != nil {
				return
			}
			merged, err := mergeExtra(sub, fv)
			if err != nil {
				walkErr = err
				return
			}
			m[name] = merged
		})
		if walkErr != nil {
			return nil, walkErr
		}
		for k, v := range extraOf(rv) {
			if _, exists := m[k]; !exists {
				m[k] = v
			}
		}
		return json.Marshal(m)
	case reflect.Slice, reflect.Array:
		if k := rv.Type().Elem().Kind(); k != reflect.Struct && k != reflect.Pointer && k != reflect.Slice {
			return raw, nil
		}
		if !hasExtra(rv) {
			return raw, nil
		}
		var elems []json.RawMessage
		if json.Unmarshal(raw, &elems) != nil {
			return raw, nil
		}
		for i := 0; i < rv.Len() && i < len(elems); i++ {
			merged, err := mergeExtra(elems[i], rv.Index(i))
			if err != nil {
				return nil, err
			}
			elems[i] = merged
		}
		return json.Marshal(elems)
	}
	return raw, nil
}

// hasExtra reports whether the value holds a non-empty Extra bag anywhere,
// letting mergeExtra leave the already-marshaled JSON untouched in the common
// case.
func hasExtra(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer:
		return !rv.IsNil() && hasExtra(rv.Elem())
	case reflect.Struct:
		if rv.Type() == timeType {
			return false
		}
		if len(extraOf(rv)) > 0 {
			return true
		}
		found := false
		walkFields(rv, func(_ string, fv reflect.Value) {
			if !found && hasExtra(fv) {
				found = true
			}
		})
		return found
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if hasExtra(rv.Index(i)) {
				return true
			}
		}
		return false
	}
	return false
}

// walkFields visits every JSON-visible field of a struct, including fields
// promoted from embedded structs, in declaration order.
func walkFields(rv reflect.Value, f func(name string, fv reflect.Value)) {
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			fv := rv.Field(i)
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				walkFields(fv, f)
				continue
			}
		}
		if sf.PkgPath != "" {
			continue // unexported
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		f(name, rv.Field(i))
	}
}

func extraOf(rv reflect.Value) Extra {
	t := rv.Type()
	for i := range t.NumField() {
		if t.Field(i).Type == extraType {
			return rv.Field(i).Interface().(Extra)
		}
	}
	return nil
}

func setExtra(rv reflect.Value, extra Extra) {
	t := rv.Type()
	for i := range t.NumField() {
		if t.Field(i).Type == extraType && rv.Field(i).CanSet() {
			rv.Field(i).Set(reflect.ValueOf(extra))
			return
		}
	}
}
