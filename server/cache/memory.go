package cache

import (
	"context"
	"sync"
	"time"

	"github.com/eapache/queue/v2"
)

type memoryEntry struct {
	value   string
	expires time.Time
	seq     uint64
}

type queuedKey struct {
	key string
	seq uint64
}

// Memory is an in-process cache. When full, the oldest inserted entry is
// evicted first.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	order   *queue.Queue[queuedKey]
	seq     uint64
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

var _ Cache = (*Memory)(nil)

// NewMemory creates a memory cache holding at most maxSize entries for ttl
// each. maxSize <= 0 means unbounded; ttl <= 0 means entries never expire.
func NewMemory(maxSize int, ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		order:   queue.New[queuedKey](),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return "", ErrCacheMiss
	}
	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expires time.Time
	if m.ttl > 0 {
		expires = m.now().Add(m.ttl)
	}

	if e, ok := m.entries[key]; ok {
		e.value, e.expires = value, expires
		m.entries[key] = e
		return nil
	}

	if m.maxSize > 0 {
		for len(m.entries) >= m.maxSize && m.order.Length() > 0 {
			oldest := m.order.Remove()
			// Stale queue slots belong to keys that expired and were set again.
			if e, ok := m.entries[oldest.key]; ok && e.seq == oldest.seq {
				delete(m.entries, oldest.key)
			}
		}
	}

	m.seq++
	m.entries[key] = memoryEntry{value: value, expires: expires, seq: m.seq}
	m.order.Add(queuedKey{key: key, seq: m.seq})
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) Close() error { return nil }
