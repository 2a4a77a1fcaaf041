// Package decoder contains the default [domain.Decoder] implementation.
package decoder

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
)

var objectIDType = reflect.TypeOf(primitive.ObjectID{})

// Decoder implements domain.Decoder.
type Decoder struct {
	weak bool
}

// NewDecoder returns a new implementation of domain.Decoder.
func NewDecoder(opts ...Option) domain.Decoder {
	var d Decoder
	for _, opt := range opts {
		opt(&d)
	}
	return &d
}

// Decode implements domain.Decoder. Object ids are decoded into string
// fields as their hexadecimal representation. Comma separated strings are
// accepted for slices when the decoder is weakly typed.
func (d *Decoder) Decode(src any, tgt any) error {
	if tgt == nil {
		return &domain.ErrTargetNil{}
	}
	if reflect.TypeOf(tgt).Kind() != reflect.Pointer {
		return domain.ErrNonPointer
	}

	hooks := []mapstructure.DecodeHookFunc{objectIDToString}
	if d.weak {
		hooks = append(hooks, mapstructure.StringToSliceHookFunc(","))
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(hooks...),
		TagName:          data.TagName,
		WeaklyTypedInput: d.weak,
		Result:           tgt,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(src); err != nil {
		return domain.ErrDecode{Err: err}
	}
	return nil
}

func objectIDToString(from reflect.Type, to reflect.Type, v any) (any, error) {
	if from != objectIDType || to.Kind() != reflect.String {
		return v, nil
	}
	return v.(primitive.ObjectID).Hex(), nil
}
