package cursor

import "github.com/vinicius-lino-figueiredo/mofind/domain"

// WithDecoder sets the decoder used to read documents into targets.
func WithDecoder(dec domain.Decoder) Option {
	return func(c *Cursor) {
		c.dec = dec
	}
}

// Option configures cursor behavior through the functional options pattern.
type Option func(*Cursor)
