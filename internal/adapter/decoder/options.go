package decoder

// WithWeaklyTypedInput makes the decoder convert between scalar kinds, such
// as "10" into 10, and split comma separated strings into slices.
func WithWeaklyTypedInput(weak bool) Option {
	return func(d *Decoder) {
		d.weak = weak
	}
}

// Option configures decoder behavior through the functional options pattern.
type Option func(*Decoder)
