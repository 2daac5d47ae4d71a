package glyph

// DefaultCacheCapacity is the default maximum number of cached bitmaps.
const DefaultCacheCapacity = 4096

// cacheEntry is an internal cache node, linked into an LRU list.
type cacheEntry struct {
	id  uint64
	bmp *Bitmap

	prev *cacheEntry
	next *cacheEntry
}

// Cache is a bounded bitmap cache keyed by 64-bit glyph identity, with
// least-recently-used eviction. The compositor keeps one cache per font
// weight per geometry generation; a given id always maps to the same bitmap
// for the lifetime of the generation (short of eviction, after which the
// same id re-renders to identical content).
//
// Cache is not safe for concurrent use; the compositor drives it from a
// single goroutine.
type Cache struct {
	entries  map[uint64]*cacheEntry
	head     *cacheEntry // most recently used
	tail     *cacheEntry // least recently used
	capacity int
}

// NewCache creates a cache holding at most capacity bitmaps. A capacity
// below 1 selects DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		entries:  make(map[uint64]*cacheEntry),
		capacity: capacity,
	}
}

// Get returns the cached bitmap for id, or nil.
func (c *Cache) Get(id uint64) *Bitmap {
	e, ok := c.entries[id]
	if !ok {
		return nil
	}
	c.moveToFront(e)
	return e.bmp
}

// Put stores a bitmap under id, evicting the least recently used entry if
// the cache is full. Storing under an existing id replaces the bitmap.
func (c *Cache) Put(id uint64, bmp *Bitmap) {
	if bmp == nil {
		return
	}
	if e, ok := c.entries[id]; ok {
		e.bmp = bmp
		c.moveToFront(e)
		return
	}
	for len(c.entries) >= c.capacity && c.tail != nil {
		delete(c.entries, c.tail.id)
		c.remove(c.tail)
	}
	e := &cacheEntry{id: id, bmp: bmp}
	c.entries[id] = e
	c.addToFront(e)
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.entries = make(map[uint64]*cacheEntry)
	c.head = nil
	c.tail = nil
}

func (c *Cache) addToFront(e *cacheEntry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *Cache) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
