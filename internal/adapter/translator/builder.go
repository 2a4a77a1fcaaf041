package translator

import (
	"fmt"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
)

// builder accumulates the clauses of one translated document. It keeps
// track of the operator documents it created, so clauses sharing a field
// are merged instead of replacing each other.
type builder struct {
	doc    domain.Document
	ops    map[string]domain.Document
	docFac domain.DocumentFactory
}

func newBuilder(doc domain.Document, docFac domain.DocumentFactory) *builder {
	return &builder{doc: doc, ops: make(map[string]domain.Document), docFac: docFac}
}

// equals sets a field equality. If the field already holds operators the
// value joins them under [EqTag].
func (b *builder) equals(field string, value any) {
	if ops, ok := b.ops[field]; ok {
		ops.Set(EqTag, value)
		return
	}
	b.doc.Set(field, value)
}

// operator sets doc[field][tag]. A plain equality previously set on the
// field is kept under [EqTag].
func (b *builder) operator(field, tag string, value any) error {
	ops, ok := b.ops[field]
	if !ok {
		var err error
		if ops, err = b.docFac(nil); err != nil {
			return fmt.Errorf("creating document: %w", err)
		}
		if b.doc.Has(field) {
			ops.Set(EqTag, b.doc.Get(field))
		}
		b.ops[field] = ops
		b.doc.Set(field, ops)
	}
	ops.Set(tag, value)
	return nil
}

// where appends a raw comparison to the [WhereTag] code.
func (b *builder) where(expr string) {
	if prev, ok := b.doc.Get(WhereTag).(string); ok && prev != "" {
		expr = prev + whereJoin + expr
	}
	b.doc.Set(WhereTag, expr)
}

// connective stores value under tag, merging it with what a previous
// connective of the same kind left there. Lists are appended and keyed
// documents merged. Mixing both yields a list.
func (b *builder) connective(tag string, value any) {
	prev := b.doc.Get(tag)
	if prev == nil {
		b.doc.Set(tag, value)
		return
	}
	prevDoc, prevIsDoc := data.AsDocument(prev)
	newDoc, newIsDoc := data.AsDocument(value)
	if prevIsDoc && newIsDoc {
		for _, k := range data.SortedKeys(newDoc) {
			prevDoc.Set(k, newDoc.Get(k))
		}
		return
	}
	b.doc.Set(tag, append(members(prev), members(value)...))
}

// members returns the translated documents held by a connective value in
// their canonical order.
func members(v any) []any {
	if doc, ok := data.AsDocument(v); ok {
		res := make([]any, 0, doc.Len())
		for _, k := range data.SortedKeys(doc) {
			res = append(res, doc.Get(k))
		}
		return res
	}
	if list, ok := v.([]any); ok {
		res := make([]any, len(list))
		copy(res, list)
		return res
	}
	return []any{v}
}
