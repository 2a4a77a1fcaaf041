package parser

import "github.com/vinicius-lino-figueiredo/mofind/domain"

// WithDocumentFactory sets the factory function used to wrap scalar
// connective members.
func WithDocumentFactory(df domain.DocumentFactory) Option {
	return func(p *Parser) {
		p.docFac = df
	}
}

// Option configures parser behavior through the functional options pattern.
type Option func(*Parser)
