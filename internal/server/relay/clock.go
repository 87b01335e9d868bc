package relay

import (
	"sync"
	"time"
)

// monotonicClock hands out strictly increasing Unix-nanosecond timestamps
// for one server process. Two sends racing on the same nanosecond still get
// distinct, ordered values, which keeps inbox read order stable.
type monotonicClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newMonotonicClock() *monotonicClock {
	return &monotonicClock{now: time.Now}
}

func (c *monotonicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UnixNano()
	if ts <= c.last {
		ts = c.last + 1
	}
	c.last = ts
	return ts
}
