package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// HostLocker serializes commits per host. The commit protocol holds the
// lock across the re-check and the guarded insert, so availability for one
// host can only shrink through a single writer at a time.
type HostLocker interface {
	// Acquire blocks until the host lock is held or ctx expires, and
	// returns the release function.
	Acquire(ctx context.Context, hostID string) (func(), error)
}

// RedisHostLocker implements HostLocker with a SETNX lease in Redis, so
// commits serialize across processes. The TTL bounds lock lifetime if a
// holder dies before releasing.
type RedisHostLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisHostLocker(client *redis.Client) *RedisHostLocker {
	return &RedisHostLocker{Client: client, TTL: 10 * time.Second}
}

func (l *RedisHostLocker) Acquire(ctx context.Context, hostID string) (func(), error) {
	key := "commitlock:" + hostID
	token := uuid.New().String()

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquiring host lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	release := func() {
		// Release only our own lease; a stale delete after TTL expiry
		// would otherwise drop someone else's lock.
		const script = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
		_ = l.Client.Eval(context.Background(), script, []string{key}, token).Err()
	}
	return release, nil
}

// MemoryHostLocker is the in-process implementation used by tests and
// single-instance deployments. Each host gets a one-slot channel semaphore
// so a waiter can give up when its context expires.
type MemoryHostLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewMemoryHostLocker() *MemoryHostLocker {
	return &MemoryHostLocker{locks: make(map[string]chan struct{})}
}

func (l *MemoryHostLocker) Acquire(ctx context.Context, hostID string) (func(), error) {
	l.mu.Lock()
	sem, ok := l.locks[hostID]
	if !ok {
		sem = make(chan struct{}, 1)
		l.locks[hostID] = sem
	}
	l.mu.Unlock()

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
