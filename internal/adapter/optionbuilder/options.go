package optionbuilder

// WithDefaultLimit sets the limit used when neither the caller nor the
// option bag give one. Zero means no limit.
func WithDefaultLimit(limit int64) Option {
	return func(ob *OptionBuilder) {
		ob.defaultLimit = limit
	}
}

// Option configures option builder behavior through the functional options
// pattern.
type Option func(*OptionBuilder)
