package watershed

import "github.com/lagoslakes/flownet/network"

// Barriers is the set of network elements that halt trace propagation. A
// reached barrier joins the trace but is never expanded past: barriers are a
// ceiling on the walk, not an exclusion. Barriers values are passed
// explicitly through traversal calls and never mutated by them; scoped
// adjustments are made with Without, which derives a copy.
type Barriers struct {
	flowlines   map[network.ID]struct{}
	waterbodies map[network.ID]struct{}
}

// NoBarriers returns the empty barrier set: flow proceeds unimpeded through
// the entire network.
func NoBarriers() Barriers {
	return Barriers{}
}

// NewBarriers builds a barrier set from waterbody ids and flowline ids.
func NewBarriers(waterbodies, flowlines []network.ID) Barriers {
	b := Barriers{
		flowlines:   make(map[network.ID]struct{}, len(flowlines)),
		waterbodies: make(map[network.ID]struct{}, len(waterbodies)),
	}
	for _, id := range flowlines {
		b.flowlines[id] = struct{}{}
	}
	for _, id := range waterbodies {
		b.waterbodies[id] = struct{}{}
	}
	return b
}

// Empty reports whether no barriers are active.
func (b Barriers) Empty() bool {
	return len(b.flowlines) == 0 && len(b.waterbodies) == 0
}

// BlocksFlowline reports whether the flowline id halts propagation.
func (b Barriers) BlocksFlowline(id network.ID) bool {
	_, blocked := b.flowlines[id]
	return blocked
}

// BlocksWaterbody reports whether the waterbody id is excluded from
// waterbody-inclusive trace results.
func (b Barriers) BlocksWaterbody(id network.ID) bool {
	_, blocked := b.waterbodies[id]
	return blocked
}

// Without derives a barrier set with the waterbody and its flowlines
// exempted. Used when tracing a waterbody's own network so the waterbody
// cannot act as a barrier against itself; the receiver is left unchanged.
func (b Barriers) Without(waterbody network.ID, flowlines []network.ID) Barriers {
	if b.Empty() {
		return b
	}

	exempt := make(map[network.ID]struct{}, len(flowlines))
	for _, id := range flowlines {
		exempt[id] = struct{}{}
	}

	derived := Barriers{
		flowlines:   make(map[network.ID]struct{}, len(b.flowlines)),
		waterbodies: make(map[network.ID]struct{}, len(b.waterbodies)),
	}
	for id := range b.flowlines {
		if _, skip := exempt[id]; !skip {
			derived.flowlines[id] = struct{}{}
		}
	}
	for id := range b.waterbodies {
		if id != waterbody {
			derived.waterbodies[id] = struct{}{}
		}
	}
	return derived
}
