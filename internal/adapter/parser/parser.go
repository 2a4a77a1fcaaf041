// Package parser contains the default [domain.Parser] implementation.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/operator"
)

const notSuffix = " NOT"

var (
	compoundKey = regexp.MustCompile(`(?i)^(.+) (<=|>=|!=|<>|<|>|=|IN|LIKE)$`)
	rawExpr     = regexp.MustCompile(`^(.+) (<=|>=|!=|<|>|=) (.+)$`)
)

// rule classifies a single key. It reports false when the key is not of its
// kind, leaving it to the next rule.
type rule func(p *Parser, key string, value any) (domain.Condition, bool, error)

// Parser implements [domain.Parser].
type Parser struct {
	docFac domain.DocumentFactory
	// rules is the precedence of key classification. The first rule that
	// accepts a key wins; keys no rule accepts are equalities.
	rules []rule
}

// NewParser returns a new implementation of [domain.Parser].
func NewParser(opts ...Option) domain.Parser {
	p := Parser{docFac: data.NewDocument}
	for _, opt := range opts {
		opt(&p)
	}
	p.rules = []rule{
		(*Parser).positional,
		(*Parser).compare,
		(*Parser).connective,
		(*Parser).raw,
	}
	return &p
}

// Parse implements [domain.Parser]. Keys are classified in the order given
// by [data.SortedKeys].
func (p *Parser) Parse(expr domain.Document) (domain.Condition, error) {
	if expr == nil {
		return domain.Group{}, nil
	}
	g, err := p.group("", expr)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) group(key string, expr domain.Document) (domain.Group, error) {
	g := domain.Group{Key: key, Clauses: make([]domain.Condition, 0, expr.Len())}
	for _, k := range data.SortedKeys(expr) {
		cond, err := p.classify(k, expr.Get(k))
		if err != nil {
			return domain.Group{}, err
		}
		g.Clauses = append(g.Clauses, cond)
	}
	return g, nil
}

func (p *Parser) classify(key string, value any) (domain.Condition, error) {
	for _, r := range p.rules {
		cond, ok, err := r(p, key, value)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", key, err)
		}
		if ok {
			return cond, nil
		}
	}
	return domain.Equals{Field: key, Value: value}, nil
}

func (p *Parser) positional(key string, value any) (domain.Condition, bool, error) {
	nested, ok := data.AsDocument(value)
	if !ok || !data.IsNumeric(key) {
		return nil, false, nil
	}
	g, err := p.group(key, nested)
	return g, err == nil, err
}

func (p *Parser) compare(key string, value any) (domain.Condition, bool, error) {
	m := compoundKey.FindStringSubmatch(key)
	if m == nil {
		return nil, false, nil
	}
	field, token := m[1], strings.ToUpper(m[2])
	if n := len(field) - len(notSuffix); n > 0 && strings.EqualFold(field[n:], notSuffix) {
		field = field[:n]
		token = operator.Negate(token)
	}
	return domain.Compare{Field: field, Operator: token, Value: value}, true, nil
}

func (p *Parser) connective(key string, value any) (domain.Condition, bool, error) {
	kind, ok := operator.Connective(key)
	if !ok {
		return nil, false, nil
	}
	conn := domain.Connective{Kind: kind}

	if list, isList := value.([]any); isList {
		conn.Indexed = true
		for n, item := range list {
			branch, err := p.branch(strconv.Itoa(n), item)
			if err != nil {
				return nil, false, err
			}
			conn.Branches = append(conn.Branches, branch)
		}
		return conn, true, nil
	}

	nested, isDoc := data.AsDocument(value)
	if !isDoc {
		return nil, false, domain.ErrConnectiveValue{Key: key, Value: value}
	}
	for _, k := range data.SortedKeys(nested) {
		branch, err := p.branch(k, nested.Get(k))
		if err != nil {
			return nil, false, err
		}
		conn.Branches = append(conn.Branches, branch)
	}
	return conn, true, nil
}

// branch parses one member of a connective. Members that are not nested
// conditions are wrapped as {key: value} first.
func (p *Parser) branch(key string, value any) (domain.Branch, error) {
	nested, ok := data.AsDocument(value)
	if !ok {
		wrapped, err := p.docFac(nil)
		if err != nil {
			return domain.Branch{}, fmt.Errorf("creating document: %w", err)
		}
		wrapped.Set(key, value)
		nested = wrapped
	}
	g, err := p.group("", nested)
	if err != nil {
		return domain.Branch{}, fmt.Errorf("parsing branch %q: %w", key, err)
	}
	return domain.Branch{Key: key, Condition: g}, nil
}

func (p *Parser) raw(key string, value any) (domain.Condition, bool, error) {
	m := rawExpr.FindStringSubmatch(key)
	if m == nil {
		str, ok := value.(string)
		if !ok {
			return nil, false, nil
		}
		if m = rawExpr.FindStringSubmatch(str); m == nil {
			return nil, false, nil
		}
	}
	return domain.RawExpr{Left: m[1], Operator: m[2], Right: m[3]}, true, nil
}
