package glyph

import "testing"

// TestCacheGetPut verifies basic lookup semantics.
func TestCacheGetPut(t *testing.T) {
	c := NewCache(4)
	if got := c.Get(1); got != nil {
		t.Fatalf("empty cache returned %v", got)
	}

	b := NewBitmap(8, 16, 1, 1)
	c.Put(1, b)
	if got := c.Get(1); got != b {
		t.Errorf("Get(1): got %p, want %p", got, b)
	}
	if c.Len() != 1 {
		t.Errorf("Len: got %d, want 1", c.Len())
	}
}

// TestCacheEvictsLeastRecentlyUsed verifies LRU order, including the
// recency bump from Get.
func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2)
	a := NewBitmap(1, 1, 1, 1)
	b := NewBitmap(1, 1, 1, 1)
	d := NewBitmap(1, 1, 1, 1)

	c.Put(1, a)
	c.Put(2, b)
	c.Get(1) // 2 is now least recently used
	c.Put(3, d)

	if c.Get(2) != nil {
		t.Error("expected id 2 to be evicted")
	}
	if c.Get(1) != a {
		t.Error("expected id 1 to survive")
	}
	if c.Get(3) != d {
		t.Error("expected id 3 to be present")
	}
}

// TestCacheReplace verifies that storing under an existing id swaps the
// bitmap without growing the cache.
func TestCacheReplace(t *testing.T) {
	c := NewCache(2)
	a := NewBitmap(1, 1, 1, 1)
	b := NewBitmap(1, 1, 1, 1)

	c.Put(1, a)
	c.Put(1, b)
	if c.Len() != 1 {
		t.Errorf("Len: got %d, want 1", c.Len())
	}
	if c.Get(1) != b {
		t.Error("expected replacement bitmap")
	}
}

// TestCacheClear verifies that Clear drops everything.
func TestCacheClear(t *testing.T) {
	c := NewCache(4)
	c.Put(1, NewBitmap(1, 1, 1, 1))
	c.Put(2, NewBitmap(1, 1, 1, 1))
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", c.Len())
	}
	if c.Get(1) != nil {
		t.Error("Get after Clear returned an entry")
	}
	// The cache must stay usable.
	c.Put(3, NewBitmap(1, 1, 1, 1))
	if c.Get(3) == nil {
		t.Error("Put after Clear did not stick")
	}
}

// TestCacheDefaultCapacity verifies the capacity fallback.
func TestCacheDefaultCapacity(t *testing.T) {
	c := NewCache(0)
	if c.capacity != DefaultCacheCapacity {
		t.Errorf("capacity: got %d, want %d", c.capacity, DefaultCacheCapacity)
	}
}
