package ndb

import (
	"container/list"
	"sync"

	"github.com/mbranch/pstkit/internal/format"
)

// blockCache is a bounded, LRU-evicted, content-addressable cache keyed by
// BID (spec §4.4 "Caching ... Cache eviction is LRU with a soft size
// bound. Caches are opaque to correctness"). The teacher's hive/index and
// hive/alloc caches are unbounded maps with no eviction policy, so this is
// built directly from container/list rather than adapted from a teacher
// file (see DESIGN.md).
type blockCache struct {
	mu       sync.Mutex
	maxBytes int64
	curBytes int64
	ll       *list.List // most-recently-used at front
	elems    map[format.BID]*list.Element
}

type cacheEntry struct {
	bid  format.BID
	data []byte
}

func newBlockCache(maxBytes int64) *blockCache {
	return &blockCache{
		maxBytes: maxBytes,
		ll:       list.New(),
		elems:    make(map[format.BID]*list.Element),
	}
}

func (c *blockCache) get(bid format.BID) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.elems[bid]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).data, true
}

func (c *blockCache) put(bid format.BID, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elems[bid]; ok {
		c.ll.MoveToFront(el)
		old := el.Value.(*cacheEntry)
		c.curBytes += int64(len(data)) - int64(len(old.data))
		old.data = data
		c.evictIfNeeded()
		return
	}
	el := c.ll.PushFront(&cacheEntry{bid: bid, data: data})
	c.elems[bid] = el
	c.curBytes += int64(len(data))
	c.evictIfNeeded()
}

func (c *blockCache) evictIfNeeded() {
	for c.curBytes > c.maxBytes && c.ll.Len() > 0 {
		back := c.ll.Back()
		if back == nil {
			return
		}
		entry := back.Value.(*cacheEntry)
		c.curBytes -= int64(len(entry.data))
		delete(c.elems, entry.bid)
		c.ll.Remove(back)
	}
}

// bbtEntryCache caches resolved BBT entries separately from decoded block
// bytes, since the spec distinguishes "resolved BBT entries" from
// "recently decoded leaf payloads" as two caches with the same eviction
// policy.
type bbtEntryCache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List
	elems map[format.BID]*list.Element
}

type bbtCacheEntry struct {
	bid   format.BID
	entry BBTEntry
}

func newBBTEntryCache(capacity int) *bbtEntryCache {
	return &bbtEntryCache{cap: capacity, ll: list.New(), elems: make(map[format.BID]*list.Element)}
}

func (c *bbtEntryCache) get(bid format.BID) (BBTEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.elems[bid]
	if !ok {
		return BBTEntry{}, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*bbtCacheEntry).entry, true
}

func (c *bbtEntryCache) put(bid format.BID, entry BBTEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.elems[bid]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*bbtCacheEntry).entry = entry
		return
	}
	el := c.ll.PushFront(&bbtCacheEntry{bid: bid, entry: entry})
	c.elems[bid] = el
	if c.ll.Len() > c.cap {
		back := c.ll.Back()
		if back != nil {
			delete(c.elems, back.Value.(*bbtCacheEntry).bid)
			c.ll.Remove(back)
		}
	}
}
