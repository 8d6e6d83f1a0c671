package dal

import (
	"context"

	"github.com/pkg/errors"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

//go:generate mockgen -source=storage.go -destination=mock_storage.go -package=dal

var logger = diag.CreateLogger()

// ErrKeyNotFound is a cause of GetValue error when there is no value stored under the key
var ErrKeyNotFound = errors.New("Key not found")

// Storage is a durable key-value persistance layer
type Storage interface {
	// Setup prepares the underlying storage (schema migrations e.t.c)
	Setup(ctx context.Context) error

	// GetValue returns the value stored under the key.
	// Fails with ErrKeyNotFound cause if there is no such key
	GetValue(ctx context.Context, key string) ([]byte, error)

	// SaveValue stores the value under the key overwriting previous value
	SaveValue(ctx context.Context, key string, value []byte) error
}
