package network

// FlowEdge describes one directed connectivity record: water flows from the
// From segment into the To segment. Either endpoint may be Null when flow
// enters or leaves the modeled extent.
type FlowEdge struct {
	// The inflowing segment.
	From ID

	// The outflowing segment.
	To ID
}

// EdgeIterator is implemented by objects that can iterate the flow table.
type EdgeIterator interface {
	Iterator

	// Edge returns the currently fetched flow record.
	Edge() *FlowEdge
}
