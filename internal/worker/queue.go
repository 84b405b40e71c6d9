package worker

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmpty is returned by Pop and TryPop when no item is available.
var ErrEmpty = errors.New("queue empty")

// Queue is a FIFO of serialized jobs.
type Queue interface {
	Push(ctx context.Context, payload []byte) error
	// Pop blocks up to timeout for the next item.
	Pop(ctx context.Context, timeout time.Duration) ([]byte, error)
	// TryPop returns the next item without blocking.
	TryPop(ctx context.Context) ([]byte, error)
}

// RedisQueue is a Queue backed by a Redis list (RPUSH / BLPOP).
type RedisQueue struct {
	rdb *redis.Client
	key string
}

// NewRedisQueue creates a queue on the list stored at key.
func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Push(ctx context.Context, payload []byte) error {
	return q.rdb.RPush(ctx, q.key, payload).Err()
}

func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	// Redis rejects BLPOP timeouts below one second.
	if timeout < time.Second {
		timeout = time.Second
	}
	result, err := q.rdb.BLPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return nil, ErrEmpty
	}
	return []byte(result[1]), nil
}

func (q *RedisQueue) TryPop(ctx context.Context) ([]byte, error) {
	result, err := q.rdb.LPop(ctx, q.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	return result, err
}

// MemoryQueue is an in-process Queue over a buffered channel.
type MemoryQueue struct {
	items chan []byte
}

// NewMemoryQueue creates a queue holding at most size pending items.
func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{items: make(chan []byte, size)}
}

func (q *MemoryQueue) Push(ctx context.Context, payload []byte) error {
	select {
	case q.items <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case item := <-q.items:
		return item, nil
	case <-timer.C:
		return nil, ErrEmpty
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) TryPop(_ context.Context) ([]byte, error) {
	select {
	case item := <-q.items:
		return item, nil
	default:
		return nil, ErrEmpty
	}
}

// Len returns the number of pending items.
func (q *MemoryQueue) Len() int { return len(q.items) }
