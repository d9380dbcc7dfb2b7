package complete

import (
	"sync"
	"time"
)

// pathCache memoizes per-directory executable listings, validated by the
// directory's modification time. Adding or removing a program updates the
// directory mtime and invalidates its entry; a bare chmod on an existing
// file does not, which mirrors shell command hash tables.
type pathCache struct {
	mu      sync.RWMutex
	entries map[string]pathCacheEntry
}

type pathCacheEntry struct {
	modTime time.Time
	names   []string
}

func newPathCache() *pathCache {
	return &pathCache{entries: make(map[string]pathCacheEntry)}
}

// lookup returns the cached listing for dir when it is still current.
func (c *pathCache) lookup(dir string, modTime time.Time) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[dir]
	if !found || !entry.modTime.Equal(modTime) {
		return nil, false
	}
	return entry.names, true
}

// store records the listing for dir as of modTime.
func (c *pathCache) store(dir string, modTime time.Time, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[dir] = pathCacheEntry{modTime: modTime, names: names}
}
