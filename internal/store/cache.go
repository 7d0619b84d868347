package store

import "container/list"

// WorkMode selects the eviction policy of a PageCache (spec §4.1,
// mirroring FILESYSTEMCACHE_LRU / FILESYSTEMCACHE_FIFO).
type WorkMode int

const (
	LRU WorkMode = iota
	FIFO
)

// PageCache caches whole pages in front of a Store, avoiding a disk round
// trip for hot pages (the lexicon's root blocks, a term's most recently
// touched segment). Eviction order is LRU or FIFO; FIFO never reorders on
// a hit, which is cheaper when hit patterns are closer to sequential scan
// than to repeated lookup.
type PageCache struct {
	store *Store
	mode  WorkMode
	cap   int

	order *list.List // front = most-recently-used (LRU) or most-recently-inserted (FIFO)
	index map[int32]*list.Element
}

type cacheEntry struct {
	page int32
	data []byte
	dirty bool
}

// NewPageCache wraps store with a cache holding up to capacity pages.
func NewPageCache(store *Store, mode WorkMode, capacity int) *PageCache {
	return &PageCache{
		store: store,
		mode:  mode,
		cap:   capacity,
		order: list.New(),
		index: make(map[int32]*list.Element, capacity),
	}
}

// Read returns page p's contents, from cache if present.
func (c *PageCache) Read(p int32, buf []byte) error {
	if el, ok := c.index[p]; ok {
		entry := el.Value.(*cacheEntry)
		copy(buf, entry.data)
		if c.mode == LRU {
			c.order.MoveToFront(el)
		}
		return nil
	}
	if err := c.store.ReadPage(p, buf); err != nil {
		return err
	}
	c.insert(p, buf, false)
	return nil
}

// Write updates page p's contents in cache and marks it dirty; Flush
// propagates dirty pages to the underlying store.
func (c *PageCache) Write(p int32, buf []byte) error {
	if el, ok := c.index[p]; ok {
		entry := el.Value.(*cacheEntry)
		copy(entry.data, buf)
		entry.dirty = true
		if c.mode == LRU {
			c.order.MoveToFront(el)
		}
		return nil
	}
	c.insert(p, buf, true)
	return nil
}

func (c *PageCache) insert(p int32, buf []byte, dirty bool) {
	data := make([]byte, len(buf))
	copy(data, buf)
	entry := &cacheEntry{page: p, data: data, dirty: dirty}
	el := c.order.PushFront(entry)
	c.index[p] = el
	for c.order.Len() > c.cap {
		c.evictOldest()
	}
}

func (c *PageCache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*cacheEntry)
	if entry.dirty {
		if err := c.store.WritePage(entry.page, entry.data); err != nil {
			c.store.log.Errorf("page cache: write-back of evicted page %d failed: %v", entry.page, err)
		}
	}
	c.order.Remove(el)
	delete(c.index, entry.page)
}

// Flush writes every dirty cached page back to the store.
func (c *PageCache) Flush() error {
	for el := c.order.Front(); el != nil; el = el.Next() {
		entry := el.Value.(*cacheEntry)
		if entry.dirty {
			if err := c.store.WritePage(entry.page, entry.data); err != nil {
				return err
			}
			entry.dirty = false
		}
	}
	return nil
}

// Len reports the current number of cached pages.
func (c *PageCache) Len() int { return c.order.Len() }
