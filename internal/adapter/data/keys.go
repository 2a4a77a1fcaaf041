package data

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
)

var numericKey = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether a key is a positional (numeric) key. A field
// whose name looks like a number cannot be told apart from a positional key
// and is always treated as one.
func IsNumeric(key string) bool {
	return numericKey.MatchString(key)
}

// SortedKeys returns the keys of doc in the order conditions are processed:
// numeric keys first, by value, then the remaining keys in lexical order.
func SortedKeys(doc domain.Document) []string {
	keys := slices.Collect(doc.Keys())
	slices.SortFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b string) int {
	numA, numB := IsNumeric(a), IsNumeric(b)
	switch {
	case numA && numB:
		fa, _ := strconv.ParseFloat(a, 64)
		fb, _ := strconv.ParseFloat(b, 64)
		if c := cmp.Compare(fa, fb); c != 0 {
			return c
		}
	case numA:
		return -1
	case numB:
		return 1
	}
	return cmp.Compare(a, b)
}

// AsDocument returns v as a [domain.Document] when it is a nested condition
// structure: a Document or a map[string]any.
func AsDocument(v any) (domain.Document, bool) {
	switch t := v.(type) {
	case domain.Document:
		return t, true
	case map[string]any:
		return M(t), true
	default:
		return nil, false
	}
}
