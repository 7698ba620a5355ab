package mdinput

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// DefaultIDPrefix prefixes every generated field id.
const DefaultIDPrefix = "markdown-input-"

// IDGenerator issues identifiers that are distinct from every identifier it
// has issued before. Hosts own the generator and share it between fields.
type IDGenerator interface {
	Next(prefix string) string
}

// registry records issued ids. Callers hold mu.
type registry struct {
	mu     sync.Mutex
	issued map[string]struct{}
}

func (r *registry) taken(id string) bool {
	_, ok := r.issued[id]
	return ok
}

func (r *registry) record(id string) {
	if r.issued == nil {
		r.issued = make(map[string]struct{})
	}
	r.issued[id] = struct{}{}
}

// Reserve marks ids as already issued, e.g. explicit ids used elsewhere in
// the same form, so generated ids never collide with them.
func (r *registry) Reserve(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.record(id)
	}
}

// Issued returns how many ids the registry holds.
func (r *registry) Issued() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.issued)
}

// CounterIDs issues prefix+N with a monotonically increasing N. A counter
// value is never reused, and values whose id was reserved are skipped.
// The zero value is ready to use.
type CounterIDs struct {
	registry
	n uint64
}

// NewCounterIDs returns an empty counter generator.
func NewCounterIDs() *CounterIDs {
	return &CounterIDs{}
}

// Next returns the next unused id for prefix.
func (g *CounterIDs) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		g.n++
		id := prefix + strconv.FormatUint(g.n, 10)
		if g.taken(id) {
			continue
		}
		g.record(id)
		return id
	}
}

// UUIDIDs issues prefix+<random uuid>.
type UUIDIDs struct {
	registry
	newUUID func() string
}

// NewUUIDIDs returns a generator backed by google/uuid v4 values.
func NewUUIDIDs() *UUIDIDs {
	return &UUIDIDs{newUUID: uuid.NewString}
}

// Next returns a fresh id for prefix.
func (g *UUIDIDs) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	newUUID := g.newUUID
	if newUUID == nil {
		newUUID = uuid.NewString
	}
	for {
		id := prefix + newUUID()
		if g.taken(id) {
			continue
		}
		g.record(id)
		return id
	}
}
