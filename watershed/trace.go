package watershed

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lagoslakes/flownet/network"
)

// ErrNoStartIDs is returned by batch operations invoked before any start
// waterbody ids were provided.
var ErrNoStartIDs = errors.New("no start waterbody ids provided")

// Trace is the set of segment/waterbody ids produced by one traversal. A
// trace always contains its own starting element.
type Trace map[network.ID]struct{}

// NewTrace creates a trace containing the provided ids.
func NewTrace(ids ...network.ID) Trace {
	t := make(Trace, len(ids))
	for _, id := range ids {
		t[id] = struct{}{}
	}
	return t
}

// Contains reports whether id is part of the trace.
func (t Trace) Contains(id network.ID) bool {
	_, ok := t[id]
	return ok
}

// Add inserts id into the trace.
func (t Trace) Add(id network.ID) {
	t[id] = struct{}{}
}

// Union returns a new trace holding every element of t and other.
func (t Trace) Union(other Trace) Trace {
	out := make(Trace, len(t)+len(other))
	for id := range t {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Subtract returns a new trace holding the elements of t not in other.
func (t Trace) Subtract(other Trace) Trace {
	out := make(Trace, len(t))
	for id := range t {
		if _, drop := other[id]; !drop {
			out[id] = struct{}{}
		}
	}
	return out
}

// SubtractIDs returns a new trace with the listed ids removed.
func (t Trace) SubtractIDs(ids ...network.ID) Trace {
	return t.Subtract(NewTrace(ids...))
}

// Disjoint reports whether t and other share no element.
func (t Trace) Disjoint(other Trace) bool {
	small, large := t, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if _, shared := large[id]; shared {
			return false
		}
	}
	return true
}

// IDs returns the trace elements in stable order.
func (t Trace) IDs() []network.ID {
	ids := make([]network.ID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// traverse runs the frontier-expansion walk over one adjacency mapping.
// Barrier ids are added to the result when reached but never expanded. Every
// new frontier is reduced to ids not yet visited before the next expansion;
// with a set-valued result the frontier of a cycle otherwise never empties,
// so this reduction is what guarantees termination for any cycle length.
func traverse(adj map[network.ID][]network.ID, start network.ID, b Barriers) Trace {
	visited := NewTrace(start)

	frontier := make(map[network.ID]struct{}, len(adj[start]))
	for _, id := range adj[start] {
		visited.Add(id)
		if !b.BlocksFlowline(id) {
			frontier[id] = struct{}{}
		}
	}

	for len(frontier) > 0 {
		next := make(map[network.ID]struct{})
		for id := range frontier {
			for _, neighbor := range adj[id] {
				next[neighbor] = struct{}{}
			}
		}

		for id := range next {
			if b.BlocksFlowline(id) {
				visited.Add(id)
				delete(next, id)
				continue
			}
			if visited.Contains(id) {
				delete(next, id)
			}
		}
		for id := range next {
			visited.Add(id)
		}
		frontier = next
	}
	return visited
}

// UpFromFlowline traces the network upstream of the flowline and returns the
// traced ids, always including the start id. When includeWaterbodies is set,
// every traced flowline's owning waterbody joins the result, except
// waterbodies that are active barriers (a barrier waterbody bounds the
// trace; its interior is not part of it).
func (n *Network) UpFromFlowline(start network.ID, b Barriers, includeWaterbodies bool) (Trace, error) {
	g, err := n.Graph()
	if err != nil {
		return nil, err
	}
	tr := traverse(g.upstream, start, b)
	if includeWaterbodies {
		if err = n.addWaterbodies(tr, b); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

// DownFromFlowline traces the network downstream of the flowline, symmetric
// to UpFromFlowline.
func (n *Network) DownFromFlowline(start network.ID, b Barriers, includeWaterbodies bool) (Trace, error) {
	g, err := n.Graph()
	if err != nil {
		return nil, err
	}
	tr := traverse(g.downstream, start, b)
	if includeWaterbodies {
		if err = n.addWaterbodies(tr, b); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

// addWaterbodies maps every traced flowline to its owning waterbody and
// inserts the waterbody ids into the trace.
func (n *Network) addWaterbodies(tr Trace, b Barriers) error {
	if err := n.ensureMaps(); err != nil {
		return err
	}
	waterbodies := make([]network.ID, 0)
	for id := range tr {
		if wb, associated := n.flowlineWaterbody[id]; associated && !b.BlocksWaterbody(wb) {
			waterbodies = append(waterbodies, wb)
		}
	}
	for _, wb := range waterbodies {
		tr.Add(wb)
	}
	return nil
}

// UpFromWaterbody traces the network upstream of the waterbody: the trace
// starts from the waterbody's outlets, so it covers flow upstream of every
// outlet. The waterbody does not act as a barrier against its own network.
// A waterbody with no associated flowlines produces an empty trace.
func (n *Network) UpFromWaterbody(start network.ID, b Barriers) (Trace, error) {
	if err := n.ensureMaps(); err != nil {
		return nil, err
	}
	own := n.waterbodyFlowlines[start]
	if len(own) == 0 {
		return NewTrace(), nil
	}

	scoped := b.Without(start, own)
	outlets, err := n.LakeOutlets(start)
	if err != nil {
		return nil, err
	}

	result := NewTrace()
	for _, outlet := range outlets {
		tr, err := n.UpFromFlowline(outlet, scoped, true)
		if err != nil {
			return nil, err
		}
		result = result.Union(tr)
	}
	return result, nil
}

// DownFromWaterbody traces the network downstream of the waterbody starting
// from its inlets, symmetric to UpFromWaterbody.
func (n *Network) DownFromWaterbody(start network.ID, b Barriers) (Trace, error) {
	if err := n.ensureMaps(); err != nil {
		return nil, err
	}
	own := n.waterbodyFlowlines[start]
	if len(own) == 0 {
		return NewTrace(), nil
	}

	scoped := b.Without(start, own)
	inlets, err := n.LakeInlets(start)
	if err != nil {
		return nil, err
	}

	result := NewTrace()
	for _, inlet := range inlets {
		tr, err := n.DownFromFlowline(inlet, scoped, true)
		if err != nil {
			return nil, err
		}
		result = result.Union(tr)
	}
	return result, nil
}

// TraceUpFromLakes batch-traces upstream from every start waterbody. Each
// waterbody is exempt from barriers for its own trace but still bounds the
// other traces. Invoking the batch without start ids is a configuration
// error.
func (n *Network) TraceUpFromLakes(starts []network.ID, b Barriers) (map[network.ID]Trace, error) {
	if len(starts) == 0 {
		return nil, fmt.Errorf("trace up from lakes: %w", ErrNoStartIDs)
	}
	results := make(map[network.ID]Trace, len(starts))
	for _, id := range starts {
		tr, err := n.UpFromWaterbody(id, b)
		if err != nil {
			return nil, err
		}
		results[id] = tr
	}
	return results, nil
}
