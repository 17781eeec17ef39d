package storeview

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNoStore is returned when a context carries no way to reach a module store.
var ErrNoStore = errors.New("no store available")

// ReaderFunc returns a reader over the named module store. The caller does
// not own the reader; it stays valid for as long as its provider does.
type ReaderFunc func(storeKey string) Reader

// OpenFunc opens a reader over the named module store. Closing the returned
// closer releases whatever backs the reader.
type OpenFunc func(storeKey string) (Reader, io.Closer, error)

type (
	readersKey struct{}
	openerKey  struct{}
)

// WithReaders attaches long-lived readers to ctx.
func WithReaders(ctx context.Context, readers ReaderFunc) context.Context {
	return context.WithValue(ctx, readersKey{}, readers)
}

// ReaderFrom returns the reader ctx carries for storeKey.
func ReaderFrom(ctx context.Context, storeKey string) (Reader, error) {
	if ctx == nil {
		return nil, ErrNoStore
	}
	readers, ok := ctx.Value(readersKey{}).(ReaderFunc)
	if !ok || readers == nil {
		return nil, ErrNoStore
	}
	r := readers(storeKey)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoStore, storeKey)
	}
	return r, nil
}

// WithOpener attaches a store opener to ctx.
func WithOpener(ctx context.Context, open OpenFunc) context.Context {
	return context.WithValue(ctx, openerKey{}, open)
}

// Open opens storeKey through the opener ctx carries. The caller must close
// the returned closer.
func Open(ctx context.Context, storeKey string) (Reader, io.Closer, error) {
	if ctx == nil {
		return nil, nil, ErrNoStore
	}
	open, ok := ctx.Value(openerKey{}).(OpenFunc)
	if !ok || open == nil {
		return nil, nil, ErrNoStore
	}
	return open(storeKey)
}
