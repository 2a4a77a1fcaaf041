// Package domain contains domain-specific interfaces and option types for
// mofind.
//
// This package defines the core interfaces that must be implemented by
// adapters, the condition tree produced by the parse step, and functional
// options for configuring translation, option building and finding.
package domain

import (
	"context"
	"iter"
)

// Document represents a condition expression or a translated query
// document. Document is read by one goroutine at a time and doesn't need to be
// concurrency safe.
type Document interface {
	// ID returns the document ID, if any, or nil.
	ID() any
	// D returns the subdocument for the given key, if any.
	D(string) Document
	// Get returns the value under the given key, or nil if unset.
	Get(string) any
	// Set sets the value under the given key.
	Set(string, any)
	// Unset unsets the value under the given key.
	Unset(string)
	// Iter returns an unordered sequence of key-value pairs in the
	// document.
	Iter() iter.Seq2[string, any]
	// Keys returns an unordered sequence of keys in the document.
	Keys() iter.Seq[string]
	// Values returns an unordered sequence of values in the document.
	Values() iter.Seq[any]
	// Has reports whether a value is set under the given key.
	Has(string) bool
	// Len returns the number of set fields in the document.
	Len() int
}

// Normalizer hoists anonymous positional groups of a condition expression
// into an explicit "$and" list.
type Normalizer interface {
	// Normalize returns a normalized copy of the expression. The input is
	// never modified.
	Normalize(Document) (Document, error)
}

// Parser classifies the keys of a normalized condition expression.
type Parser interface {
	// Parse returns the root [Group] of the expression.
	Parse(Document) (Condition, error)
}

// Translator converts a classified condition tree into a query document
// understood by the executor.
type Translator interface {
	// Translate builds a new query document for the given condition.
	Translate(Condition) (Document, error)
}

// OptionBuilder merges the option bag of a finder with the options given
// for a single call.
type OptionBuilder interface {
	// Build returns the final execution options. Absent values are no-ops.
	// Fails only when the order of the option bag cannot be read.
	Build(QueryOptions, FindOptions) (FindOptions, error)
}

// IDCoercer converts string identifiers into the native identifier type of
// the executor.
type IDCoercer interface {
	// CoerceID returns the native identifier or [ErrMalformedID].
	CoerceID(string) (any, error)
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode converts from one data format to another.
	Decode(any, any) error
}

// FieldNavigator reads values out of result documents using dot notation.
type FieldNavigator interface {
	// GetAddress splits a dotted field name into path parts.
	GetAddress(field string) ([]string, error)
	// GetField follows the path parts and returns the value found and
	// whether it was defined.
	GetField(any, ...string) (any, bool, error)
}

// Cursor iterates over the documents returned by [Collection.Find].
type Cursor interface {
	// Next advances the cursor, returning false when exhausted or failed.
	Next(ctx context.Context) bool
	// Decode decodes the current document into the target.
	Decode(target any) error
	// All decodes every remaining document into the target slice and
	// closes the cursor.
	All(ctx context.Context, target any) error
	// Err returns the last error seen by the cursor.
	Err() error
	// Close releases the cursor resources.
	Close(ctx context.Context) error
}

// Collection is the storage engine that executes translated query
// documents.
type Collection interface {
	// Find returns a cursor over every document matching the filter.
	Find(ctx context.Context, filter Document, opts FindOptions) (Cursor, error)
	// FindOne decodes the first document matching the filter into target.
	// Returns [ErrNotFound] if nothing matches.
	FindOne(ctx context.Context, filter Document, target any, opts FindOptions) error
	// CountDocuments returns the number of documents matching the filter.
	CountDocuments(ctx context.Context, filter Document) (int64, error)
}

// Finder runs the translated conditions of an option bag against a
// [Collection].
type Finder interface {
	// Find returns a cursor over every matching document. Sort, limit and
	// page from the option bag are merged into opts.
	Find(ctx context.Context, opts ...FindOption) (Cursor, error)
	// FindAll is Find without call options.
	FindAll(ctx context.Context) (Cursor, error)
	// FindFirst decodes the first matching document into target.
	FindFirst(ctx context.Context, target any, opts ...FindOption) error
	// FindList returns a map of keyField to valueField built from every
	// matching document.
	FindList(ctx context.Context) (map[string]string, error)
	// Get decodes the document with the given primary key into target.
	Get(ctx context.Context, id string, target any) error
	// Count returns the number of matching documents.
	Count(ctx context.Context) (int64, error)
	// Where returns the translated query document.
	Where() Document
}
