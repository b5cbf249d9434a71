// Package storage holds the local key-value backends the task store persists to.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KV is a flat key-value store. Get returns ErrNotFound for absent keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)
