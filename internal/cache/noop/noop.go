package noop

import (
	"context"
	"time"

	"fpl-cache/internal/interfaces"
)

// Ensure RemoteStore implements interfaces.RemoteStore
var _ interfaces.RemoteStore = (*RemoteStore)(nil)

// RemoteStore is a no-operation remote tier for when Redis is disabled or
// unreachable; the coordinator then runs local-only.
type RemoteStore struct{}

// NewRemoteStore creates a new no-operation remote store instance
func NewRemoteStore() interfaces.RemoteStore {
	return &RemoteStore{}
}

// Get always returns a miss
func (n *RemoteStore) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

// Set does nothing
func (n *RemoteStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration, compress bool) {
	// No-op
}

// Delete does nothing
func (n *RemoteStore) Delete(ctx context.Context, key string) {
	// No-op
}

// DeletePattern deletes nothing
func (n *RemoteStore) DeletePattern(ctx context.Context, pattern string) int {
	return 0
}

// Info reports no statistics
func (n *RemoteStore) Info(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

// Close does nothing
func (n *RemoteStore) Close() error {
	return nil
}
