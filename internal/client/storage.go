package client

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Storage.Get when the key is not set.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a persisted key-value store the accessor keeps its token in.
// Remove on a missing key is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
