package task

import "time"

// IDGenerator hands out clock-derived task IDs (Unix milliseconds).
// IDs are strictly increasing for the lifetime of the generator, even when the
// clock stalls or steps backwards, and never collide with an ID for which
// existsFn reports true.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

// NewIDGenerator creates an IDGenerator. A nil clock means time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Observe records an ID that is already in use so later IDs sort after it.
func (g *IDGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

// Next returns a fresh ID.
func (g *IDGenerator) Next(existsFn func(int64) bool) int64 {
	candidate := max(g.now().UnixMilli(), g.last+1)
	for existsFn != nil && existsFn(candidate) {
		candidate++
	}
	g.last = candidate
	return candidate
}
