package driver

import (
	"sync"
)

type memEntry struct {
	key Digest
	res *FileResult
}

// ResultCache keeps the latest result per path for the life of a process,
// so watch mode only reparses files whose bytes or dialect changed.
type ResultCache struct {
	mu     sync.RWMutex
	byPath map[string]memEntry
}

// NewResultCache creates a ResultCache with the given capacity hint.
func NewResultCache(capHint int) *ResultCache {
	return &ResultCache{byPath: make(map[string]memEntry, capHint)}
}

// Get returns the stored result for path when its key still matches.
func (c *ResultCache) Get(path string, key Digest) (*FileResult, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	rec, ok := c.byPath[path]
	c.mu.RUnlock()
	if !ok || rec.key != key {
		return nil, false
	}
	return rec.res, true
}

// Put replaces the entry for res.Path.
func (c *ResultCache) Put(key Digest, res *FileResult) {
	if c == nil || res == nil {
		return
	}
	c.mu.Lock()
	c.byPath[res.Path] = memEntry{key: key, res: res}
	c.mu.Unlock()
}

// Forget drops path, e.g. after it was deleted.
func (c *ResultCache) Forget(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.byPath, path)
	c.mu.Unlock()
}

func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath)
}
