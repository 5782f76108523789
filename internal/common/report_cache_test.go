package common

import (
	"strings"
	"testing"
	"time"
)

func TestReportCache_FIFOEviction(t *testing.T) {
	cache := NewReportCache(2, time.Minute)

	if _, err := cache.Put("a", "first"); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if _, err := cache.Put("b", "second"); err != nil {
		t.Fatalf("put b: %v", err)
	}

	// Reading "a" must not protect it: eviction is insertion order, not LRU.
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("Expected a to be cached")
	}

	if _, err := cache.Put("c", "third"); err != nil {
		t.Fatalf("put c: %v", err)
	}

	if _, ok := cache.Get("a"); ok {
		t.Error("Expected the oldest-inserted key to be evicted")
	}
	if _, ok := cache.Get("b"); !ok {
		t.Error("Expected b to survive")
	}
	if _, ok := cache.Get("c"); !ok {
		t.Error("Expected c to be cached")
	}
	if cache.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", cache.Len())
	}
}

func TestReportCache_RePutKeepsInsertionPosition(t *testing.T) {
	cache := NewReportCache(2, time.Minute)

	cache.Put("a", "first")
	cache.Put("b", "second")
	// Refreshing "a" does not move it to the back of the queue.
	cache.Put("a", "first again")
	cache.Put("c", "third")

	if _, ok := cache.Get("a"); ok {
		t.Error("Expected re-put key to keep its original position and be evicted")
	}
	if _, ok := cache.Get("b"); !ok {
		t.Error("Expected b to survive")
	}
}

func TestReportCache_TTLExpiry(t *testing.T) {
	cache := NewReportCache(4, 10*time.Millisecond)

	cache.Put("a", "payload")
	time.Sleep(20 * time.Millisecond)

	if _, ok := cache.Get("a"); ok {
		t.Error("Expected entry to expire")
	}
	if cache.Len() != 0 {
		t.Errorf("Expected expired entry to be dropped, got %d", cache.Len())
	}
}

func TestReportCache_ETagTracksContent(t *testing.T) {
	cache := NewReportCache(4, time.Minute)

	first, _ := cache.Put("a", map[string]int{"total": 1})
	same, _ := cache.Put("b", map[string]int{"total": 1})
	changed, _ := cache.Put("a", map[string]int{"total": 2})

	if first.ETag != same.ETag {
		t.Error("Expected identical payloads to share an ETag")
	}
	if first.ETag == changed.ETag {
		t.Error("Expected a changed payload to change the ETag")
	}
}

func TestETagFor_QuotedStrongTag(t *testing.T) {
	tag := ETagFor([]byte(`{"total":1}`))
	if !strings.HasPrefix(tag, `"`) || !strings.HasSuffix(tag, `"`) {
		t.Errorf("Expected a quoted ETag, got %q", tag)
	}
	if len(tag) != 34 {
		t.Errorf("Expected 32 hex chars plus quotes, got %d", len(tag))
	}
}
