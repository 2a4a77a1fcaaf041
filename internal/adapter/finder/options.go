package finder

import (
	"go.uber.org/zap"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
)

// WithLogger sets the logger queries are written to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(f *Finder) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithPrimaryKey sets the primary key field. Defaults to "_id".
func WithPrimaryKey(key string) Option {
	return func(f *Finder) {
		f.primaryKey = key
	}
}

// WithDocumentFactory sets the function used to create documents.
func WithDocumentFactory(df domain.DocumentFactory) Option {
	return func(f *Finder) {
		f.documentFac = df
	}
}

// WithNormalizer sets the normalizer applied to the merged conditions.
func WithNormalizer(n domain.Normalizer) Option {
	return func(f *Finder) {
		f.normalizer = n
	}
}

// WithParser sets the parser used to classify the normalized conditions.
func WithParser(p domain.Parser) Option {
	return func(f *Finder) {
		f.parser = p
	}
}

// WithTranslator sets the translator building the query document. A
// translator given here ignores [WithPrimaryKey] and [WithIDCoercer].
func WithTranslator(t domain.Translator) Option {
	return func(f *Finder) {
		f.translator = t
	}
}

// WithOptionBuilder sets the builder merging the option bag into find
// options.
func WithOptionBuilder(ob domain.OptionBuilder) Option {
	return func(f *Finder) {
		f.optionBuilder = ob
	}
}

// WithIDCoercer sets the coercer applied to primary key strings.
func WithIDCoercer(ic domain.IDCoercer) Option {
	return func(f *Finder) {
		f.idCoercer = ic
	}
}

// WithDecoder sets the decoder used to read option bags given as maps or
// structs.
func WithDecoder(d domain.Decoder) Option {
	return func(f *Finder) {
		f.decoder = d
	}
}

// WithFieldNavigator sets the field navigator used by [Finder.FindList].
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(f *Finder) {
		f.fieldNavigator = fn
	}
}

// Option configures finder behavior through the functional options pattern.
type Option func(*Finder)
