// Package idcoercer contains the default [domain.IDCoercer] implementation.
package idcoercer

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
)

// IDCoercer implements [domain.IDCoercer] for MongoDB object ids.
type IDCoercer struct{}

// NewIDCoercer returns a new implementation of [domain.IDCoercer].
func NewIDCoercer() domain.IDCoercer {
	return &IDCoercer{}
}

// CoerceID implements [domain.IDCoercer]. The value must be 24 hexadecimal
// characters.
func (c *IDCoercer) CoerceID(value string) (any, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, domain.ErrMalformedID{Value: value, Err: err}
	}
	return id, nil
}
