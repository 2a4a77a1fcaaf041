// Package translator contains the default [domain.Translator]
// implementation.
package translator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/idcoercer"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/operator"
)

const (
	// RegexTag is the query operator wildcard matches are translated into.
	RegexTag = "$regex"
	// WhereTag is the query operator holding raw comparison code.
	WhereTag = "$where"
	// EqTag holds an equality that shares its field with other operators.
	EqTag = "$eq"

	regexOptions = "i"
	whereJoin    = " && "
)

var identifier = regexp.MustCompile(`^[\w.]+$`)

// Translator implements [domain.Translator].
type Translator struct {
	docFac     domain.DocumentFactory
	idCoercer  domain.IDCoercer
	primaryKey string
	rawPrefix  string
}

// NewTranslator returns a new implementation of [domain.Translator].
func NewTranslator(opts ...Option) domain.Translator {
	t := Translator{
		docFac:     data.NewDocument,
		idCoercer:  idcoercer.NewIDCoercer(),
		primaryKey: "_id",
		rawPrefix:  "this",
	}
	for _, opt := range opts {
		opt(&t)
	}
	return &t
}

// Translate implements [domain.Translator]. The returned document is built
// from scratch and shares no mapping with the condition tree, except for
// nested equality values, which are kept as they are.
func (t *Translator) Translate(cond domain.Condition) (domain.Document, error) {
	res, err := t.docFac(nil)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	if cond == nil {
		return res, nil
	}
	b := newBuilder(res, t.docFac)
	if err := t.apply(b, cond); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Translator) apply(b *builder, cond domain.Condition) error {
	switch c := cond.(type) {
	case domain.Group:
		return t.group(b, c)
	case domain.Equals:
		return t.equals(b, c)
	case domain.Compare:
		return t.compare(b, c)
	case domain.Connective:
		return t.connective(b, c)
	case domain.RawExpr:
		b.where(t.rawExpr(c))
		return nil
	default:
		return domain.ErrUnknownCondition{Condition: cond}
	}
}

// group translates the clauses of g. A keyed group is translated on its own
// and stored under its key, otherwise its clauses are merged into b.
func (t *Translator) group(b *builder, g domain.Group) error {
	if g.Key == "" {
		for _, clause := range g.Clauses {
			if err := t.apply(b, clause); err != nil {
				return err
			}
		}
		return nil
	}
	sub, err := t.Translate(domain.Group{Clauses: g.Clauses})
	if err != nil {
		return fmt.Errorf("translating group %q: %w", g.Key, err)
	}
	b.doc.Set(g.Key, sub)
	return nil
}

func (t *Translator) equals(b *builder, c domain.Equals) error {
	value := c.Value
	if str, ok := value.(string); ok && c.Field == t.primaryKey {
		id, err := t.idCoercer.CoerceID(str)
		if err != nil {
			return fmt.Errorf("translating %q: %w", c.Field, err)
		}
		value = id
	}
	b.equals(c.Field, value)
	return nil
}

func (t *Translator) compare(b *builder, c domain.Compare) error {
	tag := operator.Resolve(c.Operator)
	if !operator.IsLike(tag) {
		return b.operator(c.Field, tag, c.Value)
	}
	pattern := likePattern(c.Value)
	if strings.EqualFold(tag, operator.NotLike) {
		pattern = "^(?!" + pattern + "$).*$"
	} else {
		pattern = "^" + pattern + "$"
	}
	return b.operator(c.Field, RegexTag, primitive.Regex{Pattern: pattern, Options: regexOptions})
}

// likePattern converts a LIKE value into a regular expression. The value is
// matched literally except for % (any run of characters) and ? (exactly one
// character). Nil matches the empty string.
func likePattern(value any) string {
	var str string
	switch t := value.(type) {
	case nil:
	case string:
		str = t
	default:
		str = fmt.Sprint(t)
	}
	var sb strings.Builder
	for _, r := range str {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return sb.String()
}

func (t *Translator) connective(b *builder, c domain.Connective) error {
	tag := c.Kind.Tag()
	if c.Indexed {
		list := make([]any, 0, len(c.Branches))
		for _, branch := range c.Branches {
			sub, err := t.Translate(branch.Condition)
			if err != nil {
				return fmt.Errorf("translating %s branch %s: %w", tag, branch.Key, err)
			}
			list = append(list, sub)
		}
		b.connective(tag, list)
		return nil
	}
	keyed, err := t.docFac(nil)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	for _, branch := range c.Branches {
		sub, err := t.Translate(branch.Condition)
		if err != nil {
			return fmt.Errorf("translating %s branch %q: %w", tag, branch.Key, err)
		}
		keyed.Set(branch.Key, sub)
	}
	b.connective(tag, keyed)
	return nil
}

func (t *Translator) rawExpr(c domain.RawExpr) string {
	return t.reference(c.Left) + " " + c.Operator + " " + t.reference(c.Right)
}

// reference prefixes a bare field name with the document reference keyword.
// Numbers and operands already carrying the keyword are kept.
func (t *Translator) reference(operand string) string {
	if t.rawPrefix == "" || !identifier.MatchString(operand) {
		return operand
	}
	if operand == t.rawPrefix || strings.HasPrefix(operand, t.rawPrefix+".") {
		return operand
	}
	if _, err := strconv.ParseFloat(operand, 64); err == nil {
		return operand
	}
	return t.rawPrefix + "." + operand
}
