package besttime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the best time under a single redis key.
// Saves take a redsync lock so concurrent sessions compare against the same value.
type RedisStore struct {
	client  *redis.Client
	locker  *redsync.Redsync
	key     string
	timeout time.Duration
}

// NewRedisStore initializes a RedisStore with the provided client and key.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	pool := goredis.NewPool(client)
	return &RedisStore{
		client:  client,
		locker:  redsync.New(pool),
		key:     key,
		timeout: 2 * time.Second,
	}
}

// Load reads the stored best time.
func (r *RedisStore) Load() (float64, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.load(ctx)
}

func (r *RedisStore) load(ctx context.Context) (float64, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reading best time: %w", err)
	}
	best, ok := parseBest(raw)
	return best, ok, nil
}

// Save records best when it beats the stored value.
func (r *RedisStore) Save(best float64) error {
	if best < 0 {
		return ErrNegativeTime
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	mutex := r.locker.NewMutex(r.key + ":save_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking best time: %w", err)
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	current, ok, err := r.load(ctx)
	if err != nil {
		return err
	}
	if ok && current <= best {
		return nil
	}

	if err := r.client.Set(ctx, r.key, formatBest(best), 0).Err(); err != nil {
		return fmt.Errorf("writing best time: %w", err)
	}
	return nil
}
