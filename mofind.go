// Package mofind translates SQL flavoured condition maps into MongoDB query
// documents and runs them.
//
// A condition map mixes plain equalities ("name": "jo"), compound keys with
// a comparison token ("age >=": 18, "status NOT IN": [...],
// "name LIKE": "jo%"), logical connectives ("OR": {...}), raw comparisons
// between fields ("qty > price") and positional groups (0: {...}). The
// simplest usage is [Translate]. A [Finder], created with [NewFinder], also
// runs the translated document against a collection, applying order, limit
// and page from an option bag.
package mofind

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/collection"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/cursor"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/finder"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/normalizer"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/optionbuilder"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/parser"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/translator"
)

var (
	// ErrNotFound is returned when [Finder.FindFirst] or [Finder.Get]
	// cannot find any matching document.
	ErrNotFound = domain.ErrNotFound
	// ErrCursorClosed is returned when reading from a closed [Cursor].
	ErrCursorClosed = domain.ErrCursorClosed
	// ErrNoCurrent is returned when decoding from a [Cursor] before
	// calling Next or after it was exhausted.
	ErrNoCurrent = domain.ErrNoCurrent
	// ErrNonPointer is returned when a decoding target is not a pointer.
	ErrNonPointer = domain.ErrNonPointer
)

// ErrPositionalValue is returned when a positional key holds a list with a
// member that is not a nested condition.
type ErrPositionalValue = domain.ErrPositionalValue

// ErrOrderType is returned when the order of an option bag is not a
// mapping, an ordered document, a list of field names or a string.
type ErrOrderType = domain.ErrOrderType

// ErrTargetNil is returned when user provides a nil value as a target to
// decode data, for example, calling [Finder.FindFirst].
type ErrTargetNil = domain.ErrTargetNil

// ErrMalformedID is returned when a primary key string is not a valid
// object id.
type ErrMalformedID = domain.ErrMalformedID

// ErrConnectiveValue is returned when an OR or AND key holds a scalar.
type ErrConnectiveValue = domain.ErrConnectiveValue

// ErrConditionType is returned when conditions are neither a map nor a
// struct.
type ErrConditionType = domain.ErrConditionType

// ErrDecode is returned by [Decoder.Decode] to easily wrap third party decoding
// errors.
type ErrDecode = domain.ErrDecode

// ErrFieldName is returned when a dotted field path has an empty segment.
type ErrFieldName = domain.ErrFieldName

// Translate normalizes, parses and translates conditions into a MongoDB
// query document. Conditions are a map or a struct, read with the mofind
// struct tag. Options configure the translator:
//
// - [WithPrimaryKey]: sets the field whose string values become object ids.
//
// - [WithRawPrefix]: sets the keyword raw comparison fields are prefixed with.
//
// - [WithIDCoercer]: sets the conversion applied to primary key strings.
func Translate(conditions any, opts ...TranslatorOption) (Document, error) {
	cond, err := Parse(conditions)
	if err != nil {
		return nil, err
	}
	return NewTranslator(opts...).Translate(cond)
}

// Parse normalizes conditions and classifies every key, returning the
// condition tree a [Translator] builds query documents from.
func Parse(conditions any) (Condition, error) {
	expr, err := data.NewDocument(conditions)
	if err != nil {
		return nil, fmt.Errorf("reading conditions: %w", err)
	}
	if expr, err = normalizer.NewNormalizer().Normalize(expr); err != nil {
		return nil, fmt.Errorf("normalizing conditions: %w", err)
	}
	cond, err := parser.NewParser().Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing conditions: %w", err)
	}
	return cond, nil
}

// NewTranslator returns the translator used by [Translate], for use with
// [WithTranslator].
func NewTranslator(opts ...TranslatorOption) Translator {
	return translator.NewTranslator(opts...)
}

// NewOptionBuilder returns the default option builder. [WithDefaultLimit]
// sets the limit applied when the option bag has none.
func NewOptionBuilder(opts ...OptionBuilderOption) OptionBuilder {
	return optionbuilder.NewOptionBuilder(opts...)
}

// NewCollection wraps a MongoDB collection for use by a [Finder].
func NewCollection(coll *mongo.Collection) Collection {
	return collection.NewCollection(coll)
}

// NewCursor returns a [Cursor] over documents already in memory, for
// [Collection] implementations that do not stream their results.
func NewCursor(docs []Document) Cursor {
	return cursor.NewCursor(docs)
}

// NewFinder translates the conditions of an option bag and returns a
// [Finder] running them against coll. The bag is a [QueryOptions] or a map
// or struct holding the same keys: fields, where, conditions, order, limit,
// page, keyField and valueField. Options:
//
// - [WithLogger]: sets the zap logger queries are written to.
//
// - [WithFinderPrimaryKey]: sets the primary key used by [Finder.Get].
//
// - [WithTranslator]: replaces the translator.
//
// - [WithOptionBuilder]: replaces the option builder.
func NewFinder(coll Collection, bag any, opts ...FinderOption) (Finder, error) {
	return finder.NewFinder(coll, bag, opts...)
}

var (
	// WithPrimaryKey sets the primary key of a [Translator]. Defaults to
	// "_id".
	WithPrimaryKey = translator.WithPrimaryKey
	// WithRawPrefix sets the keyword raw comparison operands are prefixed
	// with. Defaults to "this".
	WithRawPrefix = translator.WithRawPrefix
	// WithIDCoercer sets the conversion applied to primary key strings.
	WithIDCoercer = translator.WithIDCoercer

	// WithDefaultLimit sets the limit of an [OptionBuilder] when the option
	// bag has none.
	WithDefaultLimit = optionbuilder.WithDefaultLimit

	// WithLogger sets the logger of a [Finder].
	WithLogger = finder.WithLogger
	// WithFinderPrimaryKey sets the primary key of a [Finder].
	WithFinderPrimaryKey = finder.WithPrimaryKey
	// WithTranslator replaces the translator of a [Finder].
	WithTranslator = finder.WithTranslator
	// WithOptionBuilder replaces the option builder of a [Finder].
	WithOptionBuilder = finder.WithOptionBuilder
)

// WithProjection specifies which fields to include or exclude from results.
func WithProjection(p any) FindOption { return domain.WithProjection(p) }

// WithSkip sets the number of documents to skip.
func WithSkip(s int64) FindOption { return domain.WithSkip(s) }

// WithLimit sets the maximum number of documents to return.
func WithLimit(l int64) FindOption { return domain.WithLimit(l) }

// WithSort sets the sort order. Entries given here take precedence over the
// order of the option bag.
func WithSort(s Sort) FindOption { return domain.WithSort(s) }

type (
	// Document is a query or result document.
	Document = domain.Document
	// Condition is a node of a parsed condition tree.
	Condition = domain.Condition
	// M is the default [Document] implementation.
	M = data.M
	// QueryOptions is the option bag of a [Finder].
	QueryOptions = domain.QueryOptions
	// FindOption configures a single find call.
	FindOption = domain.FindOption
	// FindOptions holds the options of a single find call.
	FindOptions = domain.FindOptions
	// Sort is an ordered list of sort fields.
	Sort = domain.Sort
	// SortName is a single sort field.
	SortName = domain.SortName
	// Finder runs translated conditions against a [Collection].
	Finder = domain.Finder
	// Collection executes query documents.
	Collection = domain.Collection
	// Cursor iterates over find results.
	Cursor = domain.Cursor
	// Translator builds query documents from parsed conditions.
	Translator = domain.Translator
	// OptionBuilder merges an option bag into find options.
	OptionBuilder = domain.OptionBuilder
	// Decoder decodes documents into targets.
	Decoder = domain.Decoder
	// TranslatorOption configures a [Translator].
	TranslatorOption = translator.Option
	// OptionBuilderOption configures an [OptionBuilder].
	OptionBuilderOption = optionbuilder.Option
	// FinderOption configures a [Finder].
	FinderOption = finder.Option
)
