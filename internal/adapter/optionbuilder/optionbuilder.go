// Package optionbuilder contains the default [domain.OptionBuilder]
// implementation.
package optionbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
)

const (
	ascending  int64 = 1
	descending int64 = -1
)

// OptionBuilder implements [domain.OptionBuilder].
type OptionBuilder struct {
	defaultLimit int64
}

// NewOptionBuilder returns a new implementation of [domain.OptionBuilder].
func NewOptionBuilder(opts ...Option) domain.OptionBuilder {
	var ob OptionBuilder
	for _, opt := range opts {
		opt(&ob)
	}
	return &ob
}

// Build implements [domain.OptionBuilder]. Values explicitly given by the
// caller are never replaced. The caller options are not modified.
func (ob *OptionBuilder) Build(bag domain.QueryOptions, caller domain.FindOptions) (domain.FindOptions, error) {
	sort, err := ob.sort(bag.Order, caller.Sort)
	if err != nil {
		return domain.FindOptions{}, err
	}
	res := domain.FindOptions{
		Projection: caller.Projection,
		Skip:       caller.Skip,
		Limit:      caller.Limit,
		Sort:       sort,
	}

	if res.Limit == nil {
		limit := bag.Limit
		if limit <= 0 {
			limit = ob.defaultLimit
		}
		if limit > 0 {
			res.Limit = &limit
		}
	}

	if res.Skip == nil && bag.Page > 1 && res.Limit != nil {
		skip := *res.Limit * (bag.Page - 1)
		res.Skip = &skip
	}

	if res.Projection == nil && len(bag.Fields) > 0 {
		proj := make(data.M, len(bag.Fields))
		for _, f := range bag.Fields {
			proj[f] = 1
		}
		res.Projection = proj
	}

	return res, nil
}

// sort merges the caller sort with the bag order. Caller entries come first
// and win on key collision.
func (ob *OptionBuilder) sort(order any, caller domain.Sort) (domain.Sort, error) {
	fromOrder, err := parseOrder(order)
	if err != nil {
		return nil, err
	}
	if len(caller) == 0 && len(fromOrder) == 0 {
		return nil, nil
	}
	res := make(domain.Sort, 0, len(caller)+len(fromOrder))
	seen := make(map[string]struct{}, len(caller))
	for _, sn := range caller {
		if _, ok := seen[sn.Key]; ok {
			continue
		}
		seen[sn.Key] = struct{}{}
		dir := ascending
		if sn.Order < 0 {
			dir = descending
		}
		res = append(res, domain.SortName{Key: sn.Key, Order: dir})
	}
	for _, sn := range fromOrder {
		if _, ok := seen[sn.Key]; ok {
			continue
		}
		seen[sn.Key] = struct{}{}
		res = append(res, sn)
	}
	return res, nil
}

// parseOrder reads the order of the option bag. A mapping gives each field
// its direction and is read in key order, while ordered documents and sorts
// keep their own order. A list holds field names, each optionally followed
// by ASC or DESC. A string is a comma separated list.
func parseOrder(order any) (domain.Sort, error) {
	switch t := order.(type) {
	case nil:
		return nil, nil
	case string:
		return parseNames(strings.Split(t, ",")), nil
	case []string:
		return parseNames(t), nil
	case []any:
		names := make([]string, len(t))
		for n, v := range t {
			names[n] = fmt.Sprint(v)
		}
		return parseNames(names), nil
	case primitive.D:
		return parseElements(t), nil
	case []primitive.E:
		return parseElements(t), nil
	case domain.Sort:
		res := make(domain.Sort, len(t))
		for n, sn := range t {
			res[n] = domain.SortName{Key: sn.Key, Order: direction(sn.Order)}
		}
		return res, nil
	}

	doc, ok := data.AsDocument(order)
	if !ok {
		if !data.IsMap(order) {
			return nil, domain.ErrOrderType{Value: order}
		}
		var err error
		if doc, err = data.NewDocument(order); err != nil {
			return nil, fmt.Errorf("reading order: %w", err)
		}
	}
	res := make(domain.Sort, 0, doc.Len())
	for _, k := range data.SortedKeys(doc) {
		res = append(res, domain.SortName{Key: k, Order: direction(doc.Get(k))})
	}
	return res, nil
}

func parseElements(elems []primitive.E) domain.Sort {
	res := make(domain.Sort, len(elems))
	for n, e := range elems {
		res[n] = domain.SortName{Key: e.Key, Order: direction(e.Value)}
	}
	return res
}

func parseNames(names []string) domain.Sort {
	res := make(domain.Sort, 0, len(names))
	for _, name := range names {
		fields := strings.Fields(name)
		if len(fields) == 0 {
			continue
		}
		dir := ascending
		if last := fields[len(fields)-1]; len(fields) > 1 && (strings.EqualFold(last, "asc") || strings.EqualFold(last, "desc")) {
			dir = direction(last)
			fields = fields[:len(fields)-1]
		}
		res = append(res, domain.SortName{Key: strings.Join(fields, " "), Order: dir})
	}
	return res
}

// direction returns descending for "desc" in any case and for negative
// numbers. Anything else is ascending.
func direction(v any) int64 {
	str := strings.TrimSpace(fmt.Sprint(v))
	if strings.EqualFold(str, "desc") {
		return descending
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil && f < 0 {
		return descending
	}
	return ascending
}
