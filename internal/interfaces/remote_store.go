package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -package=mock -source=remote_store.go -destination=mock/remote_store.go

// RemoteStore is the shared cache tier behind the local store. Implementations
// own (de)serialization and compression of stored values and must swallow
// transport errors internally: a failing remote tier surfaces as a miss,
// never as an error to the caller.
type RemoteStore interface {
	// Get retrieves the raw value for a key, decompressing if needed.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL, compressing when asked.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration, compress bool)

	// Delete removes one key, best-effort.
	Delete(ctx context.Context, key string)

	// DeletePattern removes all keys matching a glob pattern and returns
	// the number of keys deleted.
	DeletePattern(ctx context.Context, pattern string) int

	// Info returns server statistics as flat key/value pairs.
	Info(ctx context.Context) (map[string]string, error)

	// Close releases the underlying connection.
	Close() error
}
