package watershed

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/lagoslakes/flownet/network"
)

// Network is the facade for assessing connectivity within one subregion. It
// lazily builds and caches the flow graph and the identifier maps from the
// backing source; toggling the flow-inclusion policy invalidates the cached
// graph. Network is not safe for concurrent use: all traversal is
// single-threaded and sequential by design.
type Network struct {
	src    network.Source
	logger *logrus.Entry

	policy Policy
	graph  *Graph

	mapsBuilt          bool
	flowlineWaterbody  map[network.ID]network.ID
	waterbodyFlowlines map[network.ID][]network.ID
	flowlineNumeric    map[network.ID]int64
	numericFlowline    map[int64]network.ID
	waterbodyNumeric   map[network.ID]int64
	numericWaterbody   map[int64]network.ID

	// Lake population: waterbody id -> area in km². Set by DefineLakes.
	lakes map[network.ID]float64

	// Cached subregion outlets (see outlets.go).
	outlets       []network.ID
	outletsMethod OutletMethod
}

// NewNetwork creates a Network over the provided source. A nil logger
// disables logging.
func NewNetwork(src network.Source, logger *logrus.Entry) *Network {
	if logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		logger = logrus.NewEntry(silent)
	}
	return &Network{src: src, logger: logger}
}

// Graph returns the cached flow graph, building it on first use.
func (n *Network) Graph() (*Graph, error) {
	if n.graph == nil {
		g, err := BuildGraph(n.src, n.policy)
		if err != nil {
			return nil, err
		}
		n.graph = g
		n.logger.WithFields(logrus.Fields{
			"segments":             g.Size(),
			"exclude_intermittent": n.policy.ExcludeIntermittent,
		}).Debug("built flow graph")
	}
	return n.graph, nil
}

// SetExcludeIntermittent updates the flow-inclusion policy. Changing the
// policy invalidates the cached graph and the cached subregion outlets; the
// next call that needs them rebuilds from the source.
func (n *Network) SetExcludeIntermittent(exclude bool) {
	if n.policy.ExcludeIntermittent == exclude {
		return
	}
	n.policy.ExcludeIntermittent = exclude
	n.graph = nil
	n.outlets = nil
	n.outletsMethod = ""
}

// ExcludeIntermittent reports whether intermittent flow is excluded.
func (n *Network) ExcludeIntermittent() bool {
	return n.policy.ExcludeIntermittent
}

// ensureMaps builds the flowline/waterbody association and the numeric
// crosswalks from the attribute tables on first use.
func (n *Network) ensureMaps() error {
	if n.mapsBuilt {
		return nil
	}

	n.flowlineWaterbody = make(map[network.ID]network.ID)
	n.waterbodyFlowlines = make(map[network.ID][]network.ID)
	n.flowlineNumeric = make(map[network.ID]int64)
	n.numericFlowline = make(map[int64]network.ID)
	n.waterbodyNumeric = make(map[network.ID]int64)
	n.numericWaterbody = make(map[int64]network.ID)

	flIt, err := n.src.Flowlines()
	if err != nil {
		return fmt.Errorf("identifier maps: %w", err)
	}
	for flIt.Next() {
		fl := flIt.Flowline()
		if !fl.WaterbodyID.IsNull() {
			n.flowlineWaterbody[fl.ID] = fl.WaterbodyID
			n.waterbodyFlowlines[fl.WaterbodyID] = append(n.waterbodyFlowlines[fl.WaterbodyID], fl.ID)
		}
		if fl.NumericID != 0 {
			n.flowlineNumeric[fl.ID] = fl.NumericID
			n.numericFlowline[fl.NumericID] = fl.ID
		}
	}
	if err = closeIterator(flIt, "identifier maps"); err != nil {
		return err
	}

	wbIt, err := n.src.Waterbodies()
	if err != nil {
		return fmt.Errorf("identifier maps: %w", err)
	}
	for wbIt.Next() {
		wb := wbIt.Waterbody()
		if wb.NumericID != 0 {
			n.waterbodyNumeric[wb.ID] = wb.NumericID
			n.numericWaterbody[wb.NumericID] = wb.ID
		}
	}
	if err = closeIterator(wbIt, "identifier maps"); err != nil {
		return err
	}

	n.mapsBuilt = true
	return nil
}

// WaterbodyForFlowline returns the waterbody the flowline crosses, or Null
// when the flowline has no waterbody association.
func (n *Network) WaterbodyForFlowline(id network.ID) (network.ID, error) {
	if err := n.ensureMaps(); err != nil {
		return network.Null, err
	}
	return n.flowlineWaterbody[id], nil
}

// FlowlinesForWaterbody returns the flowlines crossing the waterbody. An
// unassociated waterbody yields an empty slice; that is a legitimate
// "no network" result, not an error.
func (n *Network) FlowlinesForWaterbody(id network.ID) ([]network.ID, error) {
	if err := n.ensureMaps(); err != nil {
		return nil, err
	}
	return n.waterbodyFlowlines[id], nil
}

// FlowlineByNumericID resolves an external numeric id to a flowline
// permanent identifier. A miss indicates inconsistent input data and is a
// propagated error.
func (n *Network) FlowlineByNumericID(numeric int64) (network.ID, error) {
	if err := n.ensureMaps(); err != nil {
		return network.Null, err
	}
	id, exists := n.numericFlowline[numeric]
	if !exists {
		return network.Null, fmt.Errorf("flowline numeric id %d: %w", numeric, network.ErrNotFound)
	}
	return id, nil
}

// NumericIDForFlowline resolves a flowline permanent identifier to its
// external numeric id.
func (n *Network) NumericIDForFlowline(id network.ID) (int64, error) {
	if err := n.ensureMaps(); err != nil {
		return 0, err
	}
	numeric, exists := n.flowlineNumeric[id]
	if !exists {
		return 0, fmt.Errorf("flowline %q: %w", id, network.ErrNotFound)
	}
	return numeric, nil
}

// WaterbodyByNumericID resolves an external numeric id to a waterbody
// permanent identifier.
func (n *Network) WaterbodyByNumericID(numeric int64) (network.ID, error) {
	if err := n.ensureMaps(); err != nil {
		return network.Null, err
	}
	id, exists := n.numericWaterbody[numeric]
	if !exists {
		return network.Null, fmt.Errorf("waterbody numeric id %d: %w", numeric, network.ErrNotFound)
	}
	return id, nil
}

// NumericIDForWaterbody resolves a waterbody permanent identifier to its
// external numeric id.
func (n *Network) NumericIDForWaterbody(id network.ID) (int64, error) {
	if err := n.ensureMaps(); err != nil {
		return 0, err
	}
	numeric, exists := n.waterbodyNumeric[id]
	if !exists {
		return 0, fmt.Errorf("waterbody %q: %w", id, network.ErrNotFound)
	}
	return numeric, nil
}

// SaveTrace selects the traced flowline rows on the exporting store and
// saves them as a new dataset. Waterbody ids in the trace match no flowline
// rows and are passed through harmlessly.
func (n *Network) SaveTrace(exp network.Exporter, table string, tr Trace) error {
	return exp.ExportFlowlines(table, tr.IDs())
}

// sortedIDs returns the map keys in stable order.
func sortedIDs(m map[network.ID]float64) []network.ID {
	ids := make([]network.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
