package cache

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix = ":lock"
	lockExpiry = 10 * time.Second
	lockTries  = 64
)

// RedisMazeCache keeps encoded mazes in Redis with a TTL.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
// A non-positive TTL keeps entries until they are evicted.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) (i.MazeCache, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}

	c := &RedisMazeCache{
		client: client,
		ttl:    time.Duration(max(ttlSeconds, 0)) * time.Second,
	}
	pool := goredis.NewPool(client)
	c.locker = redsync.New(pool)
	return c, nil
}

// Get returns the value stored under key. A missing key is not an error.
func (c *RedisMazeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores value under key, refreshing its expiration.
func (c *RedisMazeCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// Lock takes a redsync mutex on key so that only one instance generates a
// given seeded maze at a time.
func (c *RedisMazeCache) Lock(ctx context.Context, key string) (func() error, error) {
	mutex := c.locker.NewMutex(key+lockSuffix, redsync.WithExpiry(lockExpiry), redsync.WithTries(lockTries))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() error {
		_, err := mutex.UnlockContext(context.WithoutCancel(ctx))
		return err
	}, nil
}
