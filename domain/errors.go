package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a single-document lookup matches nothing.
var ErrNotFound = errors.New("no document matches the query")

// ErrCursorClosed is returned when reading from a closed cursor.
var ErrCursorClosed = errors.New("cursor is closed")

// ErrNoCurrent is returned when decoding from a cursor that is not
// positioned on a document.
var ErrNoCurrent = errors.New("cursor has no current document")

// ErrNonPointer is returned when a decoding target is not a pointer.
var ErrNonPointer = errors.New("target must be a pointer")

// ErrTargetNil is returned when the passed target, which should be a pointer,
// is passed as a nil value.
type ErrTargetNil struct{}

func (e *ErrTargetNil) Error() string { return "target interface is nil" }

// ErrMalformedID is returned when a primary key string cannot be converted
// into the native identifier type.
type ErrMalformedID struct {
	Value string
	Err   error
}

func (e ErrMalformedID) Error() string {
	return fmt.Sprintf("malformed identifier %q: %s", e.Value, e.Err)
}

func (e ErrMalformedID) Unwrap() error { return e.Err }

// ErrConnectiveValue is returned when an OR/AND key holds something other than
// a nested condition.
type ErrConnectiveValue struct {
	Key   string
	Value any
}

func (e ErrConnectiveValue) Error() string {
	return fmt.Sprintf("connective %q requires nested conditions, got %T", e.Key, e.Value)
}

// ErrConditionType is returned when a value that should be a condition
// expression is neither a map nor a struct.
type ErrConditionType struct {
	Value any
}

func (e ErrConditionType) Error() string {
	return fmt.Sprintf("expected map or struct, got %T", e.Value)
}

// ErrUnknownCondition is returned by a [Translator] given a [Condition]
// implementation it does not know.
type ErrUnknownCondition struct {
	Condition Condition
}

func (e ErrUnknownCondition) Error() string {
	return fmt.Sprintf("unknown condition node %T", e.Condition)
}

// ErrDecode is returned when a value cannot be decoded into the target.
type ErrDecode struct {
	Err error
}

func (e ErrDecode) Error() string {
	return fmt.Sprintf("decoding: %s", e.Err)
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrFieldName is returned when a dotted field path has an empty segment.
type ErrFieldName struct {
	Field string
}

func (e ErrFieldName) Error() string {
	return fmt.Sprintf("invalid field name %q", e.Field)
}

// ErrPositionalValue is returned when a positional key holds a list with a
// member that is not a nested condition.
type ErrPositionalValue struct {
	Key   string
	Value any
}

func (e ErrPositionalValue) Error() string {
	return fmt.Sprintf("positional key %q requires nested conditions, got %T", e.Key, e.Value)
}

// ErrOrderType is returned when the order of an option bag is none of the
// supported shapes.
type ErrOrderType struct {
	Value any
}

func (e ErrOrderType) Error() string {
	return fmt.Sprintf("unsupported order type %T", e.Value)
}
