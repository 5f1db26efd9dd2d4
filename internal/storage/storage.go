// Package storage holds the durable key/value stores cart snapshots are
// written to. Values are opaque byte slices; absent keys are reported as
// ErrNotFound so callers can treat a first run and a missing snapshot the
// same way.
package storage

import (
	"context"
	"errors"
)

type Adapter interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

var ErrNotFound = errors.New("snapshot not found")
