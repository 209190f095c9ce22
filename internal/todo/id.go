package todo

import "time"

// IDGenerator hands out millisecond timestamps, bumped past the last issued
// value so two calls in the same millisecond still get distinct ids.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe records an id issued elsewhere (a previous run) so Next never
// returns it or anything below it.
func (g *IDGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
