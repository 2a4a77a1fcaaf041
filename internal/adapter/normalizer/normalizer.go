// Package normalizer contains the default [domain.Normalizer] implementation.
package normalizer

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/operator"
)

const andKey = "$and"

// Normalizer implements [domain.Normalizer].
type Normalizer struct {
	docFac domain.DocumentFactory
}

// NewNormalizer returns a new implementation of [domain.Normalizer].
func NewNormalizer(opts ...Option) domain.Normalizer {
	n := Normalizer{docFac: data.NewDocument}
	for _, opt := range opts {
		opt(&n)
	}
	return &n
}

// Normalize implements [domain.Normalizer]. Every positional key holding a
// nested condition, or a list of them, is removed and its conditions are
// appended, in key order, to the "$and" list of its mapping, after any
// members already there. Connective branches are copied but not scanned;
// the translator owns their grouping.
func (n *Normalizer) Normalize(expr domain.Document) (domain.Document, error) {
	if expr == nil {
		return n.docFac(nil)
	}
	return n.normalize(expr)
}

func (n *Normalizer) normalize(expr domain.Document) (domain.Document, error) {
	res, err := n.docFac(nil)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	existing := expr.Get(andKey)
	and := n.existingAnd(existing)
	hoisted := 0

	for _, key := range data.SortedKeys(expr) {
		value := expr.Get(key)
		if key == andKey {
			res.Set(key, value)
			continue
		}
		if data.IsNumeric(key) {
			members, err := n.positional(key, value)
			if err != nil {
				return nil, err
			}
			if members != nil {
				and = append(and, members...)
				hoisted++
				continue
			}
		}
		nested, ok := data.AsDocument(value)
		if !ok {
			res.Set(key, value)
			continue
		}
		if _, isConn := operator.Connective(key); isConn {
			res.Set(key, value)
			continue
		}
		normalized, err := n.normalize(nested)
		if err != nil {
			return nil, fmt.Errorf("normalizing %q: %w", key, err)
		}
		res.Set(key, normalized)
	}

	if len(and) == 0 {
		return res, nil
	}

	if doc, ok := data.AsDocument(existing); ok && hoisted == 0 {
		keyed, err := n.normalizeMembers(doc)
		if err != nil {
			return nil, err
		}
		res.Set(andKey, keyed)
		return res, nil
	}

	for i, member := range and {
		nested, ok := data.AsDocument(member)
		if !ok {
			continue
		}
		if and[i], err = n.normalize(nested); err != nil {
			return nil, fmt.Errorf("normalizing %s member %d: %w", andKey, i, err)
		}
	}
	res.Set(andKey, and)

	return res, nil
}

// positional returns the conditions a positional key moves into "$and": the
// nested condition it holds or every member of its list. Scalars give nil
// and stay where they are.
func (n *Normalizer) positional(key string, value any) ([]any, error) {
	list, isList := value.([]any)
	if !isList {
		doc, ok, err := n.condition(value)
		if err != nil || !ok {
			return nil, err
		}
		return []any{doc}, nil
	}
	res := make([]any, 0, len(list))
	for _, member := range list {
		doc, ok, err := n.condition(member)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrPositionalValue{Key: key, Value: member}
		}
		res = append(res, doc)
	}
	return res, nil
}

// condition returns v as a nested condition. Ordered documents are
// converted.
func (n *Normalizer) condition(v any) (domain.Document, bool, error) {
	if doc, ok := data.AsDocument(v); ok {
		return doc, true, nil
	}
	d, ok := v.(primitive.D)
	if !ok {
		return nil, false, nil
	}
	doc, err := n.docFac(d)
	if err != nil {
		return nil, false, fmt.Errorf("creating document: %w", err)
	}
	return doc, true, nil
}

// normalizeMembers normalizes every member of a keyed "$and" document,
// keeping its keys.
func (n *Normalizer) normalizeMembers(doc domain.Document) (domain.Document, error) {
	res, err := n.docFac(nil)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	for key, value := range doc.Iter() {
		nested, ok := data.AsDocument(value)
		if !ok {
			res.Set(key, value)
			continue
		}
		normalized, err := n.normalize(nested)
		if err != nil {
			return nil, fmt.Errorf("normalizing %s member %q: %w", andKey, key, err)
		}
		res.Set(key, normalized)
	}
	return res, nil
}

// existingAnd returns a fresh list holding the members of an "$and" value
// already present in the expression.
func (n *Normalizer) existingAnd(value any) []any {
	switch t := value.(type) {
	case nil:
		return nil
	case []any:
		return append([]any(nil), t...)
	default:
		doc, ok := data.AsDocument(value)
		if !ok {
			return []any{value}
		}
		res := make([]any, 0, doc.Len())
		for _, key := range data.SortedKeys(doc) {
			res = append(res, doc.Get(key))
		}
		return res
	}
}
