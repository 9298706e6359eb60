package textgrid

import (
	"sync"
	"sync/atomic"

	"github.com/ryanlewis/textgrid/internal/debug"
	"github.com/ryanlewis/textgrid/internal/layout"
)

// LayoutCache provides thread-safe caching of layout documents for
// long-running services. Entries are keyed by the inputs hash, so identical
// text, grid and wrap settings share one document. When the cache is full the
// least recently used entry is evicted.
//
// Cached documents are shared between callers and must be treated as
// read-only.
type LayoutCache struct {
	mu        sync.RWMutex
	docs      map[string]*cacheEntry
	lru       *lruList
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key     string
	doc     *LayoutDoc
	size    int64 // approximate memory size in bytes
	lruNode *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

type lruList struct {
	head *lruNode
	tail *lruNode
	size int
}

// Global default cache for convenience
var defaultCache atomic.Pointer[LayoutCache]

func init() {
	defaultCache.Store(NewLayoutCache(256))
}

// NewLayoutCache creates a cache holding at most maxSize documents.
// A maxSize of 0 or negative means unlimited.
func NewLayoutCache(maxSize int) *LayoutCache {
	return &LayoutCache{
		docs:    make(map[string]*cacheEntry),
		lru:     &lruList{},
		maxSize: maxSize,
	}
}

// BuildLayoutCached builds a layout through the default cache.
func BuildLayoutCached(text string, grid GridSpec, wrap WrapConfig) (*LayoutDoc, error) {
	return defaultCache.Load().Build(text, grid, wrap, nil)
}

// Build returns the cached document for the inputs or builds and caches it.
// Failed builds are not cached. A custom tokenizer in opts bypasses the
// cache, since the key does not capture it.
func (c *LayoutCache) Build(text string, grid GridSpec, wrap WrapConfig, opts *layout.Options) (*LayoutDoc, error) {
	if opts != nil && opts.Tokenizer != nil {
		Logger().Warn("textgrid: layout cache bypassed for custom tokenizer")
		return layout.Build(text, grid, wrap, opts)
	}

	key, err := layout.InputsHash(text, grid, wrap)
	if err != nil {
		return nil, err
	}
	doc := c.get(key)
	if opts != nil {
		opts.Debug.Emit("cache", "Lookup", debug.CacheData{Key: key, Hit: doc != nil})
	}
	if doc != nil {
		return doc, nil
	}

	doc, err = layout.Build(text, grid, wrap, opts)
	if err != nil {
		return nil, err
	}
	c.put(key, doc)
	return doc, nil
}

// Lookup returns the cached document with the given inputs hash.
func (c *LayoutCache) Lookup(inputsHash string) (*LayoutDoc, bool) {
	doc := c.get(inputsHash)
	return doc, doc != nil
}

// get reads under RLock and only takes the write lock to move a hit to the
// front of the LRU list.
func (c *LayoutCache) get(key string) *LayoutDoc {
	c.mu.RLock()
	entry, exists := c.docs[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil
	}

	c.mu.Lock()
	// The entry may have been evicted between the two locks.
	if cur, still := c.docs[key]; still && cur == entry {
		c.lru.moveToFront(entry.lruNode)
	}
	c.mu.Unlock()

	c.hits.Add(1)
	return entry.doc
}

// put adds a document, evicting the least recently used entry when full.
func (c *LayoutCache) put(key string, doc *LayoutDoc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[key]; exists {
		return
	}

	if c.maxSize > 0 && len(c.docs) >= c.maxSize {
		c.evictLRU()
	}

	node := c.lru.pushFront(key)
	c.docs[key] = &cacheEntry{
		key:     key,
		doc:     doc,
		size:    estimateDocSize(doc),
		lruNode: node,
	}
}

// evictLRU removes the least recently used document.
func (c *LayoutCache) evictLRU() {
	if c.lru.tail == nil {
		return
	}

	key := c.lru.tail.key
	delete(c.docs, key)
	c.lru.remove(c.lru.tail)
	c.evictions.Add(1)
}

// Clear removes all documents from the cache.
func (c *LayoutCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs = make(map[string]*cacheEntry)
	c.lru = &lruList{}
}

// Stats returns cache statistics.
func (c *LayoutCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.docs)
	var bytes int64
	for _, e := range c.docs {
		bytes += e.size
	}
	c.mu.RUnlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Bytes:     bytes,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached documents
	MaxSize   int    // Maximum cache size
	Bytes     int64  // Approximate memory held by cached documents
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateDocSize approximates the memory held by a document. It counts
// string bytes and fixed struct overhead and ignores allocator slack.
func estimateDocSize(d *LayoutDoc) int64 {
	if d == nil {
		return 0
	}

	size := int64(200) + int64(len(d.Text))
	for i := range d.Cells {
		size += 120 + int64(len(d.Cells[i].CellID)+len(d.Cells[i].G))
	}
	for i := range d.Lines {
		size += 64 + int64(len(d.Lines[i].StartCellID)+len(d.Lines[i].EndCellID))
	}
	return size
}

// LRU list operations
func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}

	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}

	l.size++
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == l.head {
		return
	}

	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == l.tail {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = l.head
	l.head.prev = node
	l.head = node
}

func (l *lruList) remove(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	l.size--
}

// SetDefaultCacheSize replaces the default cache with an empty one holding
// at most maxSize documents. Safe for concurrent use; requests already
// holding the previous cache finish with it.
func SetDefaultCacheSize(maxSize int) {
	defaultCache.Store(NewLayoutCache(maxSize))
}

// ClearDefaultCache clears the default layout cache.
func ClearDefaultCache() {
	defaultCache.Load().Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Load().Stats()
}
