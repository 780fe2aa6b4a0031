// Package network defines the contract between the flownet engine and the
// tabular data stores that hold the flow table, flowline attributes and
// waterbody attributes for one drainage subregion.
package network

import "errors"

var (
	// ErrNotFound is returned when a requested id has no entry in a
	// table-derived crosswalk.
	ErrNotFound = errors.New("not found")
)

// ID is an opaque permanent identifier for a flowline or waterbody, unique
// within one subregion.
type ID string

// Null is the boundary sentinel. Flow records use it to mark an endpoint that
// leaves the modeled extent (ocean or edge of subregion). It is never a real
// segment id: sources must normalize whatever sentinel their schema stores
// (NHD uses the string '0') to Null.
const Null ID = ""

// IsNull reports whether the id is the boundary sentinel.
func (id ID) IsNull() bool { return id == Null }

// Source is implemented by stores that can stream the subregion tables.
// Iteration is read-only and column-projected; each call returns a fresh
// iterator positioned before the first row.
type Source interface {
	// FlowEdges returns an iterator over the directed flow table.
	FlowEdges() (EdgeIterator, error)

	// Flowlines returns an iterator over the flowline attribute table.
	Flowlines() (FlowlineIterator, error)

	// Waterbodies returns an iterator over the waterbody attribute table.
	Waterbodies() (WaterbodyIterator, error)
}

// Exporter is implemented by stores that can materialize a traced selection
// of flowline rows as a new output dataset. This is the engine's only
// side-effecting operation; the output format and location validity are the
// store's contract.
type Exporter interface {
	// ExportFlowlines selects the flowline rows whose permanent identifier
	// appears in ids and saves them to a new dataset named by table.
	ExportFlowlines(table string, ids []ID) error
}

// Iterator is implemented by objects that can iterate a source table.
type Iterator interface {
	// Next advances the iterator. If no more rows are available or an
	// error occurs, calls to Next() return false.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources associated with an iterator.
	Close() error
}
