// Package data contains the default [domain.Document] implementation.
package data

import (
	"bytes"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	goreflect "github.com/goccy/go-reflect"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
)

// TagName is the struct tag read when converting structs into documents.
const TagName = "mofind"

// M implements domain.Document by using a hashed map. Duplicates replace old
// values.
type M map[string]any

// NewDocument returns a new instance of [domain.Document]. Maps and structs
// are converted recursively: nested maps and structs become [M], slices
// become []any. Map keys of any kind are formatted as strings, so
// map[int]any{0: ...} yields positional keys. Values implementing
// fmt.Stringer (identifiers, regular expressions, times) are kept as they
// are. An ordered primitive.D is converted into [M] at the top level and
// copied as is when nested, so embedded document equalities keep their
// field order.
func NewDocument(in any) (domain.Document, error) {
	if in == nil {
		return M{}, nil
	}
	if d, ok := in.(primitive.D); ok {
		return parseD(d)
	}

	r := goreflect.ValueNoEscapeOf(in)
	k := r.Kind()
	for k == goreflect.Interface || k == reflect.Pointer {
		if r.IsNil() {
			return M{}, nil
		}
		r = r.Elem()
		k = r.Kind()
	}
	if k != goreflect.Struct && k != goreflect.Map {
		return nil, domain.ErrConditionType{Value: in}
	}
	doc, err := parseReflect(r)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return M{}, nil
	}
	res, ok := doc.(domain.Document)
	if !ok {
		return nil, domain.ErrConditionType{Value: in}
	}
	return res, nil
}

// IsMap reports whether v is a map of any key and value types, or a non-nil
// pointer to one.
func IsMap(v any) bool {
	if v == nil {
		return false
	}
	r := goreflect.ValueNoEscapeOf(v)
	for r.Kind() == reflect.Pointer && !r.IsNil() {
		r = r.Elem()
	}
	return r.Kind() == goreflect.Map
}

func parseReflect(r goreflect.Value) (any, error) {
	for r.Kind() == reflect.Pointer || r.Kind() == goreflect.Interface {
		if r.IsNil() {
			return nil, nil
		}
		if isScalar(r) {
			return r.Interface(), nil
		}
		r = r.Elem()
	}
	if r.Kind() != goreflect.Invalid && isScalar(r) {
		return r.Interface(), nil
	}
	switch r.Kind() {
	case goreflect.Invalid:
		return nil, nil
	case goreflect.Slice:
		if r.IsNil() {
			return nil, nil
		}
		if r.Type().Elem().Kind() == reflect.Uint8 {
			return r.Interface(), nil
		}
		if r.CanInterface() {
			if d, ok := r.Interface().(primitive.D); ok {
				return slices.Clone(d), nil
			}
		}
		return parseList(r)
	case goreflect.Struct:
		return parseStruct(r)
	case goreflect.Map:
		if r.IsNil() {
			return nil, nil
		}
		return parseMapReflect(r)
	case goreflect.Chan, goreflect.Func:
		if r.IsNil() {
			return nil, nil
		}
		return r.Interface(), nil
	default:
		return r.Interface(), nil
	}
}

// isScalar reports whether the value should be copied as is instead of
// being converted into a document or list.
func isScalar(r goreflect.Value) bool {
	if !r.CanInterface() {
		return false
	}
	_, ok := r.Interface().(fmt.Stringer)
	return ok
}

func parseStruct(r goreflect.Value) (domain.Document, error) {
	typ := r.Type()
	numField := r.NumField()

	res := make(M, numField)

	for n := range numField {
		field := typ.Field(n)
		if field.PkgPath != "" {
			continue
		}
		fieldValue := r.Field(n)

		fieldInfo, err := parseField(fieldValue, field)
		if err != nil {
			return nil, err
		}

		if fieldInfo == nil {
			continue
		}
		res[fieldInfo.name] = fieldInfo.value
	}
	return res, nil
}

func parseMapReflect(v goreflect.Value) (domain.Document, error) {
	res := make(M, v.Len())
	for _, k := range v.MapKeys() {
		key := fmt.Sprint(k.Interface())
		value, err := parseReflect(v.MapIndex(k))
		if err != nil {
			return nil, fmt.Errorf("parsing key %q: %w", key, err)
		}
		res[key] = value
	}
	return res, nil
}

func parseD(d primitive.D) (domain.Document, error) {
	res := make(M, len(d))
	for _, e := range d {
		if e.Value == nil {
			res[e.Key] = nil
			continue
		}
		value, err := parseReflect(goreflect.ValueNoEscapeOf(e.Value))
		if err != nil {
			return nil, fmt.Errorf("parsing key %q: %w", e.Key, err)
		}
		res[e.Key] = value
	}
	return res, nil
}

type field struct {
	name  string
	value any
}

func parseField(r goreflect.Value, typ goreflect.StructField) (*field, error) {
	name := typ.Name
	var tagSegments []string
	if tag, ok := typ.Tag.Lookup(TagName); ok {
		if tag == "-" {
			return nil, nil
		}
		tagSegments = strings.Split(tag, ",")
		if tagSegments[0] != "" {
			name = tagSegments[0]
		}
		tagSegments = tagSegments[1:]
	}
	if slices.Contains(tagSegments, "omitempty") && isNullable(typ.Type) && r.IsNil() {
		return nil, nil
	}
	if slices.Contains(tagSegments, "omitzero") && r.IsZero() {
		return nil, nil
	}

	value, err := parseReflect(r)
	if err != nil {
		return nil, err
	}

	return &field{name: name, value: value}, nil
}

func parseList(r goreflect.Value) ([]any, error) {
	length := r.Len()
	res := make([]any, length)
	for i := range length {
		v, err := parseReflect(r.Index(i))
		if err != nil {
			return nil, fmt.Errorf("parsing index %d: %w", i, err)
		}
		res[i] = v
	}
	return res, nil
}

func isNullable(t goreflect.Type) bool {
	k := t.Kind()
	return k == reflect.Pointer ||
		k == reflect.Slice ||
		k == reflect.Map ||
		k == reflect.Interface ||
		k == reflect.Func ||
		k == reflect.Chan
}

// ID implements domain.Document
func (d M) ID() any {
	return d["_id"]
}

// Get implements domain.Document
func (d M) Get(key string) any {
	return d[key]
}

// Set implements domain.Document
func (d M) Set(key string, value any) {
	d[key] = value
}

// Unset implements domain.Document
func (d M) Unset(key string) {
	delete(d, key)
}

// D implements domain.Document
func (d M) D(key string) domain.Document {
	r := d[key]
	if r == nil {
		return nil
	}
	if doc, ok := r.(domain.Document); ok {
		return doc
	}
	return nil
}

// Iter implements domain.Document.
func (d M) Iter() iter.Seq2[string, any] {
	return maps.All(d)
}

// Keys implements domain.Document.
func (d M) Keys() iter.Seq[string] {
	return maps.Keys(d)
}

// Len implements domain.Document.
func (d M) Len() int {
	return len(d)
}

// Values implements domain.Document.
func (d M) Values() iter.Seq[any] {
	return maps.Values(d)
}

// Has implements domain.Document.
func (d M) Has(key string) bool {
	_, has := d[key]
	return has
}

// UnmarshalJSON implements json.Unmarshaler. Nested objects become [M] and
// integral numbers become int64, other numbers float64.
func (d *M) UnmarshalJSON(input []byte) error {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*d = nil
		return nil
	}
	*d = fromJSON(raw).(M)
	return nil
}

func fromJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		res := make(M, len(t))
		for k, v := range t {
			res[k] = fromJSON(v)
		}
		return res
	case []any:
		res := make([]any, len(t))
		for n, v := range t {
			res[n] = fromJSON(v)
		}
		return res
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return i
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return string(t)
		}
		return f
	default:
		return v
	}
}
