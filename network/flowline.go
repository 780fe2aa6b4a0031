package network

// Flowline fcodes for intermittent and ephemeral reaches. Edges touching
// these segments are dropped from the adjacency when intermittent-flow
// exclusion is active.
const (
	FCodeIntermittent = 46003
	FCodeEphemeral    = 46007
)

// Flowline encapsulates the attributes of one directed stream reach.
type Flowline struct {
	// The permanent identifier for the reach.
	ID ID

	// The NHD feature classification code.
	FCode int

	// The waterbody this reach crosses (artificial paths only); Null when
	// the reach is not associated with any waterbody.
	WaterbodyID ID

	// The external numeric identifier (NHDPlusID); zero when absent.
	NumericID int64
}

// Intermittent reports whether the reach carries non-permanent flow.
func (f *Flowline) Intermittent() bool {
	return f.FCode == FCodeIntermittent || f.FCode == FCodeEphemeral
}

// FlowlineIterator is implemented by objects that can iterate the flowline
// attribute table.
type FlowlineIterator interface {
	Iterator

	// Flowline returns the currently fetched flowline record.
	Flowline() *Flowline
}
