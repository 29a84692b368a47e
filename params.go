// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package tgbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ErrUnsupportedValue is returned when a value with no wire representation
// (a channel, a function, a map with non-string keys) is passed as a request
// parameter. This is a contract violation by the caller, not a recoverable
// condition.
var ErrUnsupportedValue = errors.New("unsupported parameter value")

// Param is a single named parameter of a Bot API request, normalized to its
// wire shape: a JSON-encodable value plus the files the value references.
// Producing both in one pass lets the request plumbing pick between a JSON
// body and multipart/form-data without walking the value again.
type Param struct {
	// Name is the field name of the parameter.
	Name string

	value any
	files []*InputFile
}

// NewParam normalizes a call argument into a [Param] named name.
//
// Values are classified once, by kind: nil values (including nil pointers and
// slices) and zero time.Time produce an absent parameter; an [InputFile]
// becomes its wire value, entering the file list if it needs uploading; an
// [InputMedia] becomes its JSON object with every upload-mode file it holds
// appended to the file list; slices recurse element-wise, concatenating
// discovered files in element order without de-duplication; time.Time becomes
// integer Unix seconds (UTC, sub-second precision dropped); other typed
// objects become their [Encode] output; plain scalars, string-kinded enums
// and string-keyed maps pass through.
func NewParam(name string, value any) (*Param, error) {
	v, files, err := normalize(value)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}
	return &Param{Name: name, value: v, files: files}, nil
}

// Value returns the normalized value of the parameter, or nil if the
// parameter is absent.
func (p *Param) Value() any { return p.value }

// Files returns the files referenced by the parameter value, in the order
// they were discovered.
func (p *Param) Files() []*InputFile { return p.files }

// JSONValue returns the parameter value rendered as a string, and whether the
// parameter is present at all. Strings render bare, everything else as
// compact JSON text (so booleans become the literals "true" and "false").
// This is the form used for multipart form fields; JSON request bodies embed
// [Param.Value] natively instead.
func (p *Param) JSONValue() (string, bool) {
	switch v := p.value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.RawMessage:
		return string(v), true
	}
	b, err := json.Marshal(p.value)
	if err != nil {
		// Normalization validated the value; this is unreachable.
		return "", false
	}
	return string(b), true
}

// MultipartData returns the multipart form parts for the files referenced by
// the parameter value, keyed by each file's attach ID (or the parameter name
// if the file has none), or nil if the value references no uploads.
func (p *Param) MultipartData() map[string]MultipartField {
	if len(p.files) == 0 {
		return nil
	}
	m := make(map[string]MultipartField, len(p.files))
	for _, f := range p.files {
		field, err := f.MultipartField()
		if err != nil {
			continue
		}
		key := f.attachID
		if key == "" {
			key = p.Name
		}
		m[key] = field
	}
	return m
}

func normalize(value any) (any, []*InputFile, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil, nil
	case *InputFile:
		if v == nil {
			return nil, nil, nil
		}
		if v.NeedsUpload() {
			return v.WireValue(), []*InputFile{v}, nil
		}
		return v.WireValue(), nil, nil
	case InputMedia:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, nil, nil
		}
		return normalizeMedia(v)
	case time.Time:
		if v.IsZero() {
			return nil, nil, nil
		}
		return v.UTC().Unix(), nil, nil
	case *time.Time:
		if v == nil {
			return nil, nil, nil
		}
		return normalize(*v)
	case json.RawMessage:
		return v, nil, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil, nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return normalizeObject(value)
		}
		return normalize(rv.Elem().Interface())
	case reflect.Struct:
		return normalizeObject(value)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil, nil
		}
		elems := make([]any, 0, rv.Len())
		var files []*InputFile
		for i := range rv.Len() {
			ev, efiles, err := normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, nil, err
			}
			elems = append(elems, ev)
			files = append(files, efiles...)
		}
		return elems, files, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil, nil
		}
		b, err := json.Marshal(value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
		}
		return json.RawMessage(b), nil, nil
	case reflect.String:
		return rv.String(), nil, nil
	case reflect.Bool:
		return rv.Bool(), nil, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}

func normalizeMedia(m InputMedia) (any, []*InputFile, error) {
	b, err := Encode(m)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	var files []*InputFile
	for _, f := range m.inputFiles() {
		if f != nil && f.NeedsUpload() {
			files = append(files, f)
		}
	}
	return json.RawMessage(b), files, nil
}

func normalizeObject(v any) (any, []*InputFile, error) {
	b, err := Encode(v)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return json.RawMessage(b), nil, nil
}

// paramsOf turns a params struct into the list of its non-absent request
// parameters, walking the struct's json tags. Fields tagged omitempty are
// skipped when they hold their type's zero value.
func paramsOf(args any) ([]*Param, error) {
	if args == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(args)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a params struct", ErrUnsupportedValue, args)
	}
	return structParams(rv, nil)
}

func structParams(rv reflect.Value, params []*Param) ([]*Param, error) {
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		fv := rv.Field(i)
		if sf.Anonymous {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				var err error
				params, err = structParams(inner, params)
				if err != nil {
					return nil, err
				}
				continue
			}
		}
		if sf.PkgPath != "" {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if strings.Contains(opts, "omitempty") && fv.IsZero() {
			continue
		}
		p, err := NewParam(name, fv.Interface())
		if err != nil {
			return nil, err
		}
		if _, ok := p.JSONValue(); !ok {
			continue
		}
		params = append(params, p)
	}
	return params, nil
}
