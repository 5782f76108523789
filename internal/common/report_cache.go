package common

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// ReportEntry is one cached report snapshot.
type ReportEntry struct {
	Body   []byte
	ETag   string
	Expiry time.Time
}

// ReportCache holds rendered report payloads keyed by endpoint + normalized
// query. Eviction is FIFO by insertion order once capacity is reached — the
// oldest-inserted key goes first regardless of how recently it was read.
// The mutex matters here: unlike the single-threaded system this replaces,
// report requests run on concurrent goroutines.
type ReportCache struct {
	mu       sync.Mutex
	entries  map[string]ReportEntry
	order    []string
	capacity int
	ttl      time.Duration
}

func NewReportCache(capacity int, ttl time.Duration) *ReportCache {
	return &ReportCache{
		entries:  make(map[string]ReportEntry),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Get returns the cached entry if present and unexpired.
func (c *ReportCache) Get(key string) (ReportEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return ReportEntry{}, false
	}
	if time.Now().After(entry.Expiry) {
		delete(c.entries, key)
		c.dropFromOrder(key)
		return ReportEntry{}, false
	}
	return entry, true
}

// Put serializes the payload, stamps it with a content ETag, and stores it.
// Re-putting an existing key refreshes the value but keeps its original
// insertion position.
func (c *ReportCache) Put(key string, payload any) (ReportEntry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ReportEntry{}, err
	}

	entry := ReportEntry{
		Body:   body,
		ETag:   ETagFor(body),
		Expiry: time.Now().Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry
	return entry, nil
}

// Len reports the current number of cached snapshots.
func (c *ReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ReportCache) dropFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// ETagFor hashes a serialized body into a quoted strong ETag.
func ETagFor(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
