package alloc

import (
	"golang.org/x/exp/constraints"

	"github.com/newtron-network/fabricgen/pkg/util"
)

// Class names an independent allocation pool on a device.
type Class string

const (
	ClassLoopback    Class = "loopback"
	ClassSingleHomed Class = "single_homed"
	ClassDualHomed   Class = "dual_homed"
	ClassPortChannel Class = "port_channel"
)

// Domain is the scope exclusivity is enforced in: one device, one class.
type Domain struct {
	Device string
	Class  Class
}

// Range is an inclusive span of candidate values.
type Range[V constraints.Integer] struct {
	First V
	Last  V
}

// Contains reports whether v lies inside the range.
func (r Range[V]) Contains(v V) bool {
	return r.First <= v && v <= r.Last
}

// Size returns the number of candidates; an inverted range is empty.
func (r Range[V]) Size() int {
	if r.Last < r.First {
		return 0
	}
	return int(r.Last-r.First) + 1
}

// Pool tracks which values of a range are taken.
type Pool[V constraints.Integer] struct {
	rng   Range[V]
	taken map[V]bool
}

// NewPool returns a pool with every value of rng free.
func NewPool[V constraints.Integer](rng Range[V]) *Pool[V] {
	return &Pool[V]{
		rng:   rng,
		taken: map[V]bool{},
	}
}

// Reserve marks a statically declared value as used. Values outside the range
// are accepted and simply have no effect on what is free.
func (p *Pool[V]) Reserve(v V) {
	p.taken[v] = true
}

// Free returns the values still available, ascending.
func (p *Pool[V]) Free() []V {
	var free []V
	if p.rng.Size() == 0 {
		return free
	}
	for v := p.rng.First; ; v++ {
		if !p.taken[v] {
			free = append(free, v)
		}
		if v == p.rng.Last {
			break
		}
	}
	return free
}

// Assign returns pending values from rng, skipping every static value, in
// ascending order. The i-th value belongs to the i-th object still needing a
// number. When the range cannot satisfy all of them nothing is assigned and a
// *util.CapacityError naming the domain is returned.
func Assign[V constraints.Integer](d Domain, rng Range[V], static []V, pending int) ([]V, error) {
	if pending == 0 {
		return nil, nil
	}

	pool := NewPool(rng)
	for _, v := range static {
		pool.Reserve(v)
	}

	free := pool.Free()
	if pending > len(free) {
		return nil, util.NewCapacityError(d.Device, string(d.Class), pending, len(free))
	}

	out := make([]V, pending)
	copy(out, free[:pending])
	return out, nil
}
