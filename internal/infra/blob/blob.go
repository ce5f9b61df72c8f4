// Package blob stores style images by key.
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	// Get returns ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
