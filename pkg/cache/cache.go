package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/DinosaursAreCute/taskmover/pkg/errors"
	"github.com/DinosaursAreCute/taskmover/pkg/logging"
	"github.com/DinosaursAreCute/taskmover/pkg/types"
)

// Config bounds and tunes a Manager
type Config struct {
	// MaxEntries caps the number of live entries
	MaxEntries int

	// MaxMemoryBytes caps the estimated memory held by live entries
	MaxMemoryBytes int64

	// DefaultTTL is applied by SetDefault; <= 0 means entries never expire
	DefaultTTL time.Duration

	// CleanupInterval is how often the maintenance loop sweeps expired
	// entries; <= 0 disables the loop
	CleanupInterval time.Duration
}

// DefaultConfig returns the caps used when no configuration is supplied
func DefaultConfig() Config {
	return Config{
		MaxEntries:      1000,
		MaxMemoryBytes:  64 << 20,
		DefaultTTL:      5 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// entry is a cached value with its bookkeeping. Owned exclusively by
// the Manager; expiresAt.IsZero() means the entry never expires.
type entry struct {
	key          string
	value        interface{}
	createdAt    time.Time
	expiresAt    time.Time
	hitCount     int64
	lastAccessed time.Time
	sizeBytes    int64
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Manager is the cache. A single mutex serializes all state mutation;
// operations are safe but not parallel among themselves.
type Manager struct {
	mu      sync.Mutex
	cfg     Config
	entries map[string]*list.Element
	lru     *list.List // front = most recently used

	memoryBytes int64
	hits        int64
	misses      int64
	evictions   int64
	expired     int64

	stop chan struct{}
	done chan struct{}
}

// New creates a Manager and starts its maintenance loop
func New(cfg Config) *Manager {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultConfig().MaxEntries
	}
	if cfg.MaxMemoryBytes <= 0 {
		cfg.MaxMemoryBytes = DefaultConfig().MaxMemoryBytes
	}

	m := &Manager{
		cfg:     cfg,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go m.maintenanceLoop()
	} else {
		close(m.done)
	}

	return m
}

// Get returns the live value for key. An expired entry is removed,
// counted as both an expiry and a miss, and not returned.
func (m *Manager) Get(key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false
	}

	e := elem.Value.(*entry)
	now := time.Now()
	if e.expired(now) {
		m.removeLocked(elem)
		m.expired++
		m.misses++
		return nil, false
	}

	e.hitCount++
	e.lastAccessed = now
	m.lru.MoveToFront(elem)
	m.hits++
	return e.value, true
}

// Set inserts or overwrites key. A ttl <= 0 means the entry never
// expires. Least-recently-used entries are evicted until both the
// entry-count cap and the byte budget admit the new entry; a value
// larger than the whole byte budget is dropped without evicting.
func (m *Manager) Set(key string, value interface{}, ttl time.Duration) {
	logger := logging.GetLogger("cache")

	size := estimateSize(value)
	if size > m.cfg.MaxMemoryBytes {
		// an entry that can never fit would evict everything and
		// still blow the byte budget; refuse it instead
		logger.Warn().
			Str("key", key).
			Int64("size", size).
			Int64("max_memory", m.cfg.MaxMemoryBytes).
			Msg("value exceeds cache memory budget, not cached")
		return
	}
	now := time.Now()

	e := &entry{
		key:          key,
		value:        value,
		createdAt:    now,
		lastAccessed: now,
		sizeBytes:    size,
	}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.entries[key]; ok {
		m.removeLocked(elem)
	}

	// evict oldest-first until the incoming entry fits both caps
	for m.lru.Len() >= m.cfg.MaxEntries || m.memoryBytes+size > m.cfg.MaxMemoryBytes {
		oldest := m.lru.Back()
		if oldest == nil {
			break
		}
		evicted := oldest.Value.(*entry)
		m.removeLocked(oldest)
		m.evictions++
		logger.Debug().
			Str("key", evicted.key).
			Int64("size", evicted.sizeBytes).
			Msg("evicted LRU entry")
	}

	elem := m.lru.PushFront(e)
	m.entries[key] = elem
	m.memoryBytes += size
}

// SetDefault inserts key with the configured default TTL
func (m *Manager) SetDefault(key string, value interface{}) {
	m.Set(key, value, m.cfg.DefaultTTL)
}

// Invalidate removes key, reporting whether it was present
func (m *Manager) Invalidate(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return false
	}
	m.removeLocked(elem)
	return true
}

// Clear removes all entries, keeping the counters
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*list.Element)
	m.lru.Init()
	m.memoryBytes = 0
}

// Stats returns a snapshot of the effectiveness counters
func (m *Manager) Stats() types.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := types.CacheStats{
		Hits:           m.hits,
		Misses:         m.misses,
		Evictions:      m.evictions,
		Expired:        m.expired,
		Entries:        m.lru.Len(),
		MemoryBytes:    m.memoryBytes,
		MaxEntries:     m.cfg.MaxEntries,
		MaxMemoryBytes: m.cfg.MaxMemoryBytes,
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRatePercent = float64(stats.Hits) / float64(total) * 100
	}
	return stats
}

// Shutdown stops the maintenance loop, waits for it up to the context
// deadline, then clears all entries
func (m *Manager) Shutdown(ctx context.Context) error {
	select {
	case <-m.stop:
		// already shut down
	default:
		close(m.stop)
	}

	select {
	case <-m.done:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.ErrCacheShutdown, "maintenance loop did not stop in time")
	}

	m.Clear()
	return nil
}

// removeLocked unlinks an element; the caller holds the mutex
func (m *Manager) removeLocked(elem *list.Element) {
	e := elem.Value.(*entry)
	m.lru.Remove(elem)
	delete(m.entries, e.key)
	m.memoryBytes -= e.sizeBytes
}

// maintenanceLoop proactively sweeps expired entries on a fixed
// interval until Shutdown signals it to stop
func (m *Manager) maintenanceLoop() {
	logger := logging.GetLogger("cache")
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()
	defer close(m.done)

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if swept := m.sweepExpired(); swept > 0 {
				logger.Debug().Int("swept", swept).Msg("expired entries removed")
			}
		}
	}
}

// sweepExpired removes every expired entry and returns the count
func (m *Manager) sweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	swept := 0
	for elem := m.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if e := elem.Value.(*entry); e.expired(now) {
			m.removeLocked(elem)
			m.expired++
			swept++
		}
		elem = prev
	}
	return swept
}
