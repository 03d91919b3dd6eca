package kv

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is an opaque key-value store holding serialized documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
