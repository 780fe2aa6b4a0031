package inmem

import "github.com/lagoslakes/flownet/network"

// edgeIterator is a network.EdgeIterator implementation for the in-memory
// source. It iterates a snapshot taken under the read lock, so later source
// mutations do not affect an open iterator.
type edgeIterator struct {
	rows []network.FlowEdge
	curr int
}

// Next implements network.EdgeIterator.
func (i *edgeIterator) Next() bool {
	if i.curr >= len(i.rows) {
		return false
	}
	i.curr++
	return true
}

// Error implements network.EdgeIterator.
func (i *edgeIterator) Error() error { return nil }

// Close implements network.EdgeIterator.
func (i *edgeIterator) Close() error { return nil }

// Edge implements network.EdgeIterator.
func (i *edgeIterator) Edge() *network.FlowEdge {
	return &i.rows[i.curr-1]
}

// flowlineIterator is a network.FlowlineIterator implementation for the
// in-memory source.
type flowlineIterator struct {
	rows []network.Flowline
	curr int
}

// Next implements network.FlowlineIterator.
func (i *flowlineIterator) Next() bool {
	if i.curr >= len(i.rows) {
		return false
	}
	i.curr++
	return true
}

// Error implements network.FlowlineIterator.
func (i *flowlineIterator) Error() error { return nil }

// Close implements network.FlowlineIterator.
func (i *flowlineIterator) Close() error { return nil }

// Flowline implements network.FlowlineIterator.
func (i *flowlineIterator) Flowline() *network.Flowline {
	return &i.rows[i.curr-1]
}

// waterbodyIterator is a network.WaterbodyIterator implementation for the
// in-memory source.
type waterbodyIterator struct {
	rows []network.Waterbody
	curr int
}

// Next implements network.WaterbodyIterator.
func (i *waterbodyIterator) Next() bool {
	if i.curr >= len(i.rows) {
		return false
	}
	i.curr++
	return true
}

// Error implements network.WaterbodyIterator.
func (i *waterbodyIterator) Error() error { return nil }

// Close implements network.WaterbodyIterator.
func (i *waterbodyIterator) Close() error { return nil }

// Waterbody implements network.WaterbodyIterator.
func (i *waterbodyIterator) Waterbody() *network.Waterbody {
	return &i.rows[i.curr-1]
}
