package normalizer

import "github.com/vinicius-lino-figueiredo/mofind/domain"

// WithDocumentFactory sets the factory function for creating documents.
func WithDocumentFactory(df domain.DocumentFactory) Option {
	return func(n *Normalizer) {
		n.docFac = df
	}
}

// Option configures normalizer behavior through the functional options
// pattern.
type Option func(*Normalizer)
