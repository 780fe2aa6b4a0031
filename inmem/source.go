// Package inmem provides an in-memory network source implementation.
package inmem

import (
	"fmt"
	"sync"

	"github.com/lagoslakes/flownet/network"
)

// Compile-time checks for ensuring Source implements the network contracts.
var (
	_ network.Source   = (*Source)(nil)
	_ network.Exporter = (*Source)(nil)
)

// Source implements an in-memory subregion source that can be concurrently
// accessed by multiple clients. It is primarily used by tests and small
// one-off jobs; production subregions live in the pg store.
type Source struct {
	// sync.RWMutex supports multiple-reader semantics, good for the
	// read-heavy iteration workload.
	mu sync.RWMutex

	edges       []network.FlowEdge
	flowlines   []network.Flowline
	waterbodies []network.Waterbody

	// Row membership guards so repeated loads stay idempotent.
	flowlineIDs  map[network.ID]int
	waterbodyIDs map[network.ID]int

	// Exported selections keyed by output table name.
	exports map[string][]network.ID
}

// NewSource creates a new empty in-memory source.
func NewSource() *Source {
	return &Source{
		flowlineIDs:  make(map[network.ID]int),
		waterbodyIDs: make(map[network.ID]int),
		exports:      make(map[string][]network.ID),
	}
}

// AddFlowEdge appends a directed flow record to the flow table.
func (s *Source) AddFlowEdge(edge network.FlowEdge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append(s.edges, edge)
}

// UpsertFlowline creates a new flowline attribute row or replaces an
// existing row with the same permanent identifier.
func (s *Source) UpsertFlowline(fl network.Flowline) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, exists := s.flowlineIDs[fl.ID]; exists {
		s.flowlines[i] = fl
		return
	}
	s.flowlineIDs[fl.ID] = len(s.flowlines)
	s.flowlines = append(s.flowlines, fl)
}

// UpsertWaterbody creates a new waterbody attribute row or replaces an
// existing row with the same permanent identifier.
func (s *Source) UpsertWaterbody(wb network.Waterbody) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, exists := s.waterbodyIDs[wb.ID]; exists {
		s.waterbodies[i] = wb
		return
	}
	s.waterbodyIDs[wb.ID] = len(s.waterbodies)
	s.waterbodies = append(s.waterbodies, wb)
}

// FlowEdges returns an iterator over the directed flow table.
func (s *Source) FlowEdges() (network.EdgeIterator, error) {
	s.mu.RLock()
	rows := make([]network.FlowEdge, len(s.edges))
	copy(rows, s.edges)
	s.mu.RUnlock()

	return &edgeIterator{rows: rows}, nil
}

// Flowlines returns an iterator over the flowline attribute table.
func (s *Source) Flowlines() (network.FlowlineIterator, error) {
	s.mu.RLock()
	rows := make([]network.Flowline, len(s.flowlines))
	copy(rows, s.flowlines)
	s.mu.RUnlock()

	return &flowlineIterator{rows: rows}, nil
}

// Waterbodies returns an iterator over the waterbody attribute table.
func (s *Source) Waterbodies() (network.WaterbodyIterator, error) {
	s.mu.RLock()
	rows := make([]network.Waterbody, len(s.waterbodies))
	copy(rows, s.waterbodies)
	s.mu.RUnlock()

	return &waterbodyIterator{rows: rows}, nil
}

// ExportFlowlines saves the selection of flowline rows whose permanent
// identifier appears in ids under the provided table name. The selection is
// retained in memory and can be read back with Exported.
func (s *Source) ExportFlowlines(table string, ids []network.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.exports[table]; exists {
		return fmt.Errorf("export flowlines: output %q already exists", table)
	}

	var selected []network.ID
	for _, id := range ids {
		if _, exists := s.flowlineIDs[id]; exists {
			selected = append(selected, id)
		}
	}
	s.exports[table] = selected
	return nil
}

// Exported returns the flowline ids previously saved under the table name,
// or nil if no export with that name exists.
func (s *Source) Exported(table string) []network.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selected, exists := s.exports[table]
	if !exists {
		return nil
	}
	out := make([]network.ID, len(selected))
	copy(out, selected)
	return out
}
