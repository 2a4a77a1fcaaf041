// Package cursor contains an in-memory [domain.Cursor] implementation over a
// list of already fetched documents.
package cursor

import (
	"context"
	"slices"
	"sync"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/decoder"
)

// Cursor implements domain.Cursor.
type Cursor struct {
	mu        sync.Mutex
	data      []domain.Document
	pos       int
	closed    bool
	storedErr error
	dec       domain.Decoder
}

// NewCursor returns a new implementation of Cursor. The cursor starts
// before the first document.
func NewCursor(dt []domain.Document, opts ...Option) domain.Cursor {
	c := &Cursor{
		data: slices.Clone(dt),
		pos:  -1,
		dec:  decoder.NewDecoder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next implements domain.Cursor.
func (c *Cursor) Next(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.storedErr != nil {
		return false
	}
	if err := ctx.Err(); err != nil {
		c.storedErr = err
		return false
	}
	if c.pos < len(c.data) {
		c.pos++
	}
	return c.pos < len(c.data)
}

// Decode implements domain.Cursor.
func (c *Cursor) Decode(target any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrCursorClosed
	}
	if c.pos < 0 || c.pos >= len(c.data) {
		return domain.ErrNoCurrent
	}
	return c.dec.Decode(c.data[c.pos], target)
}

// All implements domain.Cursor. The target must point to a slice.
func (c *Cursor) All(ctx context.Context, target any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrCursorClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer c.close()

	remaining := make([]any, 0, len(c.data))
	for _, doc := range c.data[min(c.pos+1, len(c.data)):] {
		remaining = append(remaining, doc)
	}
	return c.dec.Decode(remaining, target)
}

// Err implements domain.Cursor.
func (c *Cursor) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storedErr
}

// Close implements domain.Cursor.
func (c *Cursor) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.close()
	return nil
}

func (c *Cursor) close() {
	c.closed = true
	c.data = nil
}
