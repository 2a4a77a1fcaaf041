// Package fieldnavigator contains the default [domain.FieldNavigator]
// implementation.
package fieldnavigator

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
)

// FieldNavigator implements [domain.FieldNavigator].
type FieldNavigator struct{}

// NewFieldNavigator returns a new instance of [domain.FieldNavigator].
func NewFieldNavigator() domain.FieldNavigator {
	return &FieldNavigator{}
}

// GetAddress implements [domain.FieldNavigator].
func (fn *FieldNavigator) GetAddress(field string) ([]string, error) {
	parts := strings.Split(field, ".")
	for _, part := range parts {
		if part == "" {
			return nil, domain.ErrFieldName{Field: field}
		}
	}
	return parts, nil
}

// GetField implements [domain.FieldNavigator]. Documents, maps and ordered
// bson documents are navigated by key, lists by index.
func (fn *FieldNavigator) GetField(obj any, fieldParts ...string) (any, bool, error) {
	if len(fieldParts) == 0 {
		return nil, false, nil
	}
	curr := obj
	for _, part := range fieldParts {
		if part == "" {
			return nil, false, domain.ErrFieldName{Field: strings.Join(fieldParts, ".")}
		}
		next, ok := child(curr, part)
		if !ok {
			return nil, false, nil
		}
		curr = next
	}
	return curr, true, nil
}

func child(obj any, part string) (any, bool) {
	switch t := obj.(type) {
	case domain.Document:
		if !t.Has(part) {
			return nil, false
		}
		return t.Get(part), true
	case map[string]any:
		v, ok := t[part]
		return v, ok
	case primitive.M:
		v, ok := t[part]
		return v, ok
	case primitive.D:
		for _, e := range t {
			if e.Key == part {
				return e.Value, true
			}
		}
		return nil, false
	case []any:
		return index(t, part)
	case primitive.A:
		return index(t, part)
	default:
		return nil, false
	}
}

func index(list []any, part string) (any, bool) {
	i, err := strconv.Atoi(part)
	if err != nil || i < 0 || i >= len(list) {
		return nil, false
	}
	return list[i], true
}
