package local

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/zap"

	"fpl-cache/internal/metrics"
)

// defaultSweepEvery bounds how many Sets may pass between bulk expiry sweeps.
const defaultSweepEvery = 100

// defaultEntrySize is charged when a value carries no measurable payload.
const defaultEntrySize = 64

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	size      int
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Store is a fixed-capacity, TTL-aware in-process cache with LRU eviction.
// All operations are serialized under one mutex; critical sections are purely
// in-memory, so no operation blocks longer than the lock hold time.
type Store struct {
	mu             sync.Mutex
	capacity       int
	sweepEvery     int
	setsSinceSweep int
	entries        map[string]*list.Element
	order          *list.List // front = most recently used
	usedBytes      int64
	name           string
	logger         *zap.Logger
}

// NewStore creates a Store holding at most capacity entries. sweepEvery
// controls how many Sets pass between bulk expiry sweeps; values below 1
// fall back to the default.
func NewStore(name string, capacity, sweepEvery int, logger *zap.Logger) *Store {
	if capacity < 1 {
		capacity = 1
	}
	if sweepEvery < 1 {
		sweepEvery = defaultSweepEvery
	}
	return &Store{
		capacity:   capacity,
		sweepEvery: sweepEvery,
		entries:    make(map[string]*list.Element, capacity),
		order:      list.New(),
		name:       name,
		logger:     logger,
	}
}

// Get returns the value for key if present and unexpired, promoting it to
// most-recently-used. An expired entry is removed and reported as a miss.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		return nil, false
	}

	ent := elem.Value.(*entry)
	if ent.expired(time.Now()) {
		s.removeElement(elem)
		metrics.RecordLocalExpiry(s.name)
		return nil, false
	}

	s.order.MoveToFront(elem)
	return ent.value, true
}

// Contains reports whether key is present and unexpired, without promoting it.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		return false
	}
	return !elem.Value.(*entry).expired(time.Now())
}

// Set stores a value with its own TTL, overwriting any existing entry for key
// unconditionally, including its position in recency order. At capacity the
// least-recently-used entry is evicted first.
func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := len(value)
	if size == 0 {
		size = defaultEntrySize
	}
	expiresAt := time.Now().Add(ttl)

	if elem, ok := s.entries[key]; ok {
		ent := elem.Value.(*entry)
		s.usedBytes += int64(size - ent.size)
		ent.value = value
		ent.expiresAt = expiresAt
		ent.size = size
		s.order.MoveToFront(elem)
	} else {
		if s.order.Len() >= s.capacity {
			s.evictOldest()
		}
		elem := s.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt, size: size})
		s.entries[key] = elem
		s.usedBytes += int64(size)
	}

	s.setsSinceSweep++
	if s.setsSinceSweep >= s.sweepEvery {
		s.setsSinceSweep = 0
		s.sweepLocked(time.Now())
	}
}

// Delete removes key, reporting whether an entry was removed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		return false
	}
	s.removeElement(elem)
	return true
}

// Clear drops all entries unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*list.Element, s.capacity)
	s.order.Init()
	s.usedBytes = 0
	s.setsSinceSweep = 0
}

// Len returns the number of live entries, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(time.Now())
}

// Stats returns the entry count, approximate bytes used, and the capacity.
func (s *Store) Stats() (entries int, bytes int64, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len(), s.usedBytes, s.capacity
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry).expired(now) {
			s.removeElement(elem)
			removed++
		}
		elem = prev
	}
	if removed > 0 {
		s.logger.Debug("Swept expired local entries",
			zap.String("store", s.name),
			zap.Int("removed", removed))
		metrics.RecordLocalSweep(s.name, removed)
	}
	return removed
}

func (s *Store) evictOldest() {
	elem := s.order.Back()
	if elem == nil {
		return
	}
	s.removeElement(elem)
	metrics.RecordLocalEviction(s.name)
}

func (s *Store) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	s.order.Remove(elem)
	delete(s.entries, ent.key)
	s.usedBytes -= int64(ent.size)
}
