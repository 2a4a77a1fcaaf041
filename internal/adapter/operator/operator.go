// Package operator maps the symbolic comparison tokens of compound condition
// keys to query operators.
package operator

import (
	"strings"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
)

const (
	// Like is the wildcard match token. It has no query operator of its
	// own and is resolved into a regular expression by the translator.
	Like = "LIKE"
	// NotLike is the negated wildcard match token.
	NotLike = "NOT LIKE"
	// Not prefixes a token when the field of a compound key ends with NOT.
	Not = "NOT "
)

var table = map[string]string{
	"<":      "$lt",
	"<=":     "$lte",
	">":      "$gt",
	">=":     "$gte",
	"=":      "$eq",
	"!=":     "$ne",
	"<>":     "$ne",
	"IN":     "$in",
	"NOT IN": "$nin",
}

// Resolve returns the query operator for the given token, matched
// case-insensitively. Unmapped tokens are returned unchanged.
func Resolve(token string) string {
	if tag, ok := table[strings.ToUpper(token)]; ok {
		return tag
	}
	return token
}

// IsLike reports whether the resolved tag is one of the wildcard match
// tokens.
func IsLike(tag string) bool {
	tag = strings.ToUpper(tag)
	return tag == Like || tag == NotLike
}

// Negate prefixes a token with [Not].
func Negate(token string) string {
	return Not + token
}

// Connective returns the kind of a logical connective key. OR, AND, $OR and
// $AND are recognised in any case.
func Connective(key string) (domain.ConnectiveKind, bool) {
	switch strings.ToUpper(strings.TrimPrefix(key, "$")) {
	case "OR":
		return domain.Or, true
	case "AND":
		return domain.And, true
	default:
		return "", false
	}
}
