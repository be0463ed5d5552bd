package cache

import (
	"context"
	"sync"
	"time"
)

// maxMemoryEntries bounds the store between reaps. Sets beyond it are dropped.
const maxMemoryEntries = 10000

// Memory is a process-local Store. Expired entries are dropped on read and
// purged by a background reaper every ttl.
type Memory struct {
	mu    sync.RWMutex
	items map[string]Entry
	ttl   time.Duration
	now   func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store. A zero ttl disables caching.
// Call Close to stop the reaper.
func NewMemory(ttl time.Duration) *Memory {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *Memory {
	m := &Memory{
		items: map[string]Entry{},
		ttl:   ttl,
		now:   now,
		stop:  make(chan struct{}),
	}
	if ttl > 0 {
		go m.startReaper(ttl)
	}
	return m
}

func (m *Memory) startReaper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.reap()
		case <-m.stop:
			return
		}
	}
}

// reap deletes every expired entry and returns how many are left.
func (m *Memory) reap() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for key, e := range m.items {
		if now.Sub(e.StoredAt) >= m.ttl {
			delete(m.items, key)
		}
	}
	return len(m.items)
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	if m.now().Sub(e.StoredAt) >= m.ttl {
		m.mu.Lock()
		if cur, ok := m.items[key]; ok && cur.StoredAt.Equal(e.StoredAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (m *Memory) Set(_ context.Context, key string, e Entry) error {
	if m.ttl <= 0 {
		return nil
	}
	if e.StoredAt.IsZero() {
		e.StoredAt = m.now()
	}
	m.mu.RLock()
	_, exists := m.items[key]
	full := len(m.items) >= maxMemoryEntries
	m.mu.RUnlock()
	if !exists && full && m.reap() >= maxMemoryEntries {
		return nil
	}
	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) TTL() time.Duration { return m.ttl }

// Close stops the reaper. It is safe to call more than once.
func (m *Memory) Close() {
	m.closeOnce.Do(func() { close(m.stop) })
}
