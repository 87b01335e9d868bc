package discovery

import (
	"sort"
	"sync"
	"time"
)

// Cache holds the client's view of discovered servers. Records that are not
// refreshed within the liveness window are dropped on the next read, so a
// server that stopped advertising disappears from the list on its own.
type Cache struct {
	window time.Duration

	mu      sync.Mutex
	records map[string]ServiceRecord
}

func NewCache(window time.Duration) *Cache {
	return &Cache{
		window:  window,
		records: make(map[string]ServiceRecord),
	}
}

// Update merges freshly browsed records into the cache. A record with a name
// already present replaces the older one.
func (c *Cache) Update(records ...ServiceRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		existing, ok := c.records[r.Name]
		if ok && r.LastSeen.Before(existing.LastSeen) {
			continue
		}
		c.records[r.Name] = r
	}
}

// Alive prunes expired records and returns the remaining ones sorted by name.
func (c *Cache) Alive(now time.Time) []ServiceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ServiceRecord, 0, len(c.records))
	for name, r := range c.records {
		if now.Sub(r.LastSeen) > c.window {
			delete(c.records, name)
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
