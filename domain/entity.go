package domain

// Condition is a node of a classified condition expression. Implementations
// are [Group], [Equals], [Compare], [Connective] and [RawExpr].
type Condition interface {
	condition()
}

// Group is a mapping of conditions. The root expression is a Group with an
// empty Key. A positional key holding a nested structure becomes a Group
// that keeps its key, so the translated document mirrors the input.
type Group struct {
	Key     string
	Clauses []Condition
}

// Equals is a plain field equality. Value may be a nested structure, which
// is passed through unchanged.
type Equals struct {
	Field string
	Value any
}

// Compare is a compound "field OP" key. Operator holds the upper-cased
// symbolic token, prefixed with "NOT " when the field carried a NOT suffix.
type Compare struct {
	Field    string
	Operator string
	Value    any
}

// ConnectiveKind is the logical kind of a [Connective].
type ConnectiveKind string

const (
	// And is the conjunctive connective.
	And ConnectiveKind = "and"
	// Or is the disjunctive connective.
	Or ConnectiveKind = "or"
)

// Tag returns the query operator for the connective kind.
func (k ConnectiveKind) Tag() string { return "$" + string(k) }

// Branch is one member of a [Connective], identified by its original key.
type Branch struct {
	Key       string
	Condition Condition
}

// Connective is a logical grouping of branches. Indexed reports whether the
// branches came from a list, in which case the translated connective is a
// list too. Otherwise it is a document keyed by the branch keys.
type Connective struct {
	Kind     ConnectiveKind
	Indexed  bool
	Branches []Branch
}

// RawExpr is a literal comparison between two operands, evaluated by the
// executor as code.
type RawExpr struct {
	Left     string
	Operator string
	Right    string
}

func (Group) condition()      {}
func (Equals) condition()     {}
func (Compare) condition()    {}
func (Connective) condition() {}
func (RawExpr) condition()    {}

// Sort represents an ordered list of fields which should be used to sort query
// results, applied in sequence.
type Sort = []SortName

// SortName represents a single field and the order which should be used to sort
// it. A positive Order value means ascending order and a negative value means
// descending order.
type SortName struct {
	Key   string
	Order int64
}

// QueryOptions is the option bag given to a finder. Where and Conditions are
// merged, Where taking precedence.
type QueryOptions struct {
	Fields     []string       `mofind:"fields"`
	Where      map[string]any `mofind:"where"`
	Conditions map[string]any `mofind:"conditions"`
	// Order maps fields to "asc" or "desc". A list of field names or a
	// single field name is accepted too.
	Order      any    `mofind:"order"`
	Limit      int64  `mofind:"limit"`
	Page       int64  `mofind:"page"`
	KeyField   string `mofind:"keyField"`
	ValueField string `mofind:"valueField"`
}

// DocumentFactory represents a function that constructs [Document] instances
// from maps and structs. If nil is provided, returns an empty document.
type DocumentFactory = func(any) (Document, error)
