package translator

import "github.com/vinicius-lino-figueiredo/mofind/domain"

// WithDocumentFactory sets the factory function used to create translated
// documents.
func WithDocumentFactory(df domain.DocumentFactory) Option {
	return func(t *Translator) {
		t.docFac = df
	}
}

// WithIDCoercer sets the coercer applied to string equalities on the primary
// key.
func WithIDCoercer(ic domain.IDCoercer) Option {
	return func(t *Translator) {
		t.idCoercer = ic
	}
}

// WithPrimaryKey sets the name of the primary key field. Defaults to "_id".
func WithPrimaryKey(key string) Option {
	return func(t *Translator) {
		t.primaryKey = key
	}
}

// WithRawPrefix sets the keyword raw comparison operands are prefixed with.
// Defaults to "this". An empty prefix leaves operands unchanged.
func WithRawPrefix(prefix string) Option {
	return func(t *Translator) {
		t.rawPrefix = prefix
	}
}

// Option configures translator behavior through the functional options
// pattern.
type Option func(*Translator)
