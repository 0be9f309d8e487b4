package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is an in-process per-key lock with expiration
type MemoryLocker struct {
	mu    sync.Mutex
	items map[string]*memoryItem
	ttl   time.Duration
	seq   uint64
	stop  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	token      uint64
	expireTime time.Time
}

// NewMemoryLocker creates a locker whose entries expire after ttl
func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	l := &MemoryLocker{
		items: make(map[string]*memoryItem),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go l.cleanupExpired()

	return l
}

// TryLock takes the lock for key. ok is false when another holder has it.
func (l *MemoryLocker) TryLock(_ context.Context, key string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if item, exists := l.items[key]; exists && now.Before(item.expireTime) {
		return nil, false, nil
	}

	l.seq++
	token := l.seq
	l.items[key] = &memoryItem{token: token, expireTime: now.Add(l.ttl)}

	return func() { l.release(key, token) }, true, nil
}

// release drops the lock only if it is still held by token
func (l *MemoryLocker) release(key string, token uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if item, exists := l.items[key]; exists && item.token == token {
		delete(l.items, key)
	}
}

// Held reports whether key is currently locked
func (l *MemoryLocker) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, exists := l.items[key]
	return exists && time.Now().Before(item.expireTime)
}

// Close stops the cleanup goroutine
func (l *MemoryLocker) Close() error {
	l.once.Do(func() { close(l.stop) })
	return nil
}

// cleanupExpired periodically removes expired items
func (l *MemoryLocker) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for key, item := range l.items {
				if now.After(item.expireTime) {
					delete(l.items, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
