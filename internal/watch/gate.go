package watch

import (
	"sync"

	"github.com/roach88/reckit/internal/deep"
	"github.com/roach88/reckit/internal/value"
)

// Gate decides whether a new version of a record sequence is a change
// worth notifying about. The first offer always passes; later offers pass
// only when they are not deep-equal to the last accepted version. A change
// in the number of records always passes, whatever the options.
//
// Thread-safety: Gate is safe for concurrent use via internal mutex.
type Gate struct {
	mu   sync.Mutex
	opts deep.Options
	last []value.Value
	seen bool
}

// NewGate creates a Gate comparing with deep.EqualsWith and opts.
func NewGate(opts deep.Options) *Gate {
	return &Gate{opts: opts}
}

// Offer records rs as the current version if it differs from the last
// accepted one. It returns the previous version and whether rs passed.
// The previous version is nil on the first offer.
func (g *Gate) Offer(rs []value.Value) (previous []value.Value, changed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seen && len(rs) == len(g.last) && deep.EqualsWith(value.Array(rs), value.Array(g.last), g.opts) {
		return g.last, false
	}
	previous = g.last
	g.last = rs
	g.seen = true
	return previous, true
}

// Last returns the last accepted version.
func (g *Gate) Last() []value.Value {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}
