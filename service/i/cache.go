package i

import "context"

// MazeCache stores encoded mazes under deterministic keys.
type MazeCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the cache's TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Lock takes a distributed lock on key. The returned func releases it.
	Lock(ctx context.Context, key string) (func() error, error)
}
