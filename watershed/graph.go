// Package watershed implements the connectivity engine for one drainage
// subregion: flow-graph construction, upstream/downstream tracing with
// barriers, outlet and inlet discovery, lake connectivity classification and
// the interlake erasable-region calculation.
package watershed

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/lagoslakes/flownet/network"
)

// Policy controls which flow records participate in the adjacency.
type Policy struct {
	// ExcludeIntermittent drops edges whose partner segment carries
	// intermittent or ephemeral flow, so that tracing only follows
	// permanent connections.
	ExcludeIntermittent bool
}

// Graph holds the immutable upstream/downstream adjacency for a subregion
// flow network. Rebuilding from the same table contents and policy yields
// identical adjacency.
type Graph struct {
	policy Policy

	// upstream[id] lists the segments flowing into id; downstream[id]
	// lists the segments id flows into. Absent keys mean no recorded
	// neighbors. The boundary sentinel never appears as a key or a list
	// member.
	upstream   map[network.ID][]network.ID
	downstream map[network.ID][]network.ID

	// Segments whose outflow endpoint is the boundary (ocean or edge of
	// extent). Needed by the secondary subregion-outlet fallback.
	boundaryDrains []network.ID
}

// BuildGraph reads the flow table once and collapses it into the two
// adjacency mappings. When the policy excludes intermittent flow, the
// flowline table is consulted for the intermittent segment set first.
func BuildGraph(src network.Source, policy Policy) (*Graph, error) {
	var intermittent map[network.ID]struct{}
	if policy.ExcludeIntermittent {
		var err error
		if intermittent, err = readIntermittent(src); err != nil {
			return nil, err
		}
	}

	g := &Graph{
		policy:     policy,
		upstream:   make(map[network.ID][]network.ID),
		downstream: make(map[network.ID][]network.ID),
	}

	it, err := src.FlowEdges()
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	for it.Next() {
		edge := it.Edge()
		g.addUpstream(edge, intermittent)
		g.addDownstream(edge, intermittent)
	}
	if err = closeIterator(it, "build graph"); err != nil {
		return nil, err
	}
	return g, nil
}

// addUpstream applies one flow record to the upstream mapping. A boundary
// From endpoint forces the destination's upstream entry empty: inflow from
// outside the extent is not a real neighbor.
func (g *Graph) addUpstream(edge *network.FlowEdge, intermittent map[network.ID]struct{}) {
	if edge.To.IsNull() {
		if _, skip := intermittent[edge.From]; !skip && !edge.From.IsNull() {
			g.boundaryDrains = append(g.boundaryDrains, edge.From)
		}
		return
	}
	if edge.From.IsNull() {
		g.upstream[edge.To] = nil
		return
	}
	if _, skip := intermittent[edge.From]; skip {
		return
	}
	g.upstream[edge.To] = append(g.upstream[edge.To], edge.From)
}

// addDownstream applies one flow record to the downstream mapping,
// symmetric to addUpstream.
func (g *Graph) addDownstream(edge *network.FlowEdge, intermittent map[network.ID]struct{}) {
	if edge.From.IsNull() {
		return
	}
	if edge.To.IsNull() {
		g.downstream[edge.From] = nil
		return
	}
	if _, skip := intermittent[edge.To]; skip {
		return
	}
	g.downstream[edge.From] = append(g.downstream[edge.From], edge.To)
}

// Upstream returns the segments flowing into id, or nil when none are
// recorded.
func (g *Graph) Upstream(id network.ID) []network.ID {
	return g.upstream[id]
}

// Downstream returns the segments id flows into, or nil when none are
// recorded.
func (g *Graph) Downstream(id network.ID) []network.ID {
	return g.downstream[id]
}

// HasUpstream reports whether any segment flows into id.
func (g *Graph) HasUpstream(id network.ID) bool {
	return len(g.upstream[id]) > 0
}

// Size returns the number of segments with a recorded inflow.
func (g *Graph) Size() int {
	return len(g.upstream)
}

// BoundaryDrains returns the segments whose flow leaves the modeled extent.
func (g *Graph) BoundaryDrains() []network.ID {
	return g.boundaryDrains
}

// Policy returns the flow-inclusion policy the graph was built with.
func (g *Graph) Policy() Policy {
	return g.policy
}

// readIntermittent scans the flowline table for intermittent/ephemeral
// segments.
func readIntermittent(src network.Source) (map[network.ID]struct{}, error) {
	it, err := src.Flowlines()
	if err != nil {
		return nil, fmt.Errorf("read intermittent flowlines: %w", err)
	}
	ids := make(map[network.ID]struct{})
	for it.Next() {
		if fl := it.Flowline(); fl.Intermittent() {
			ids[fl.ID] = struct{}{}
		}
	}
	if err = closeIterator(it, "read intermittent flowlines"); err != nil {
		return nil, err
	}
	return ids, nil
}

// closeIterator surfaces both the iteration error and the close error.
func closeIterator(it network.Iterator, op string) error {
	var result *multierror.Error
	if err := it.Error(); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", op, err))
	}
	if err := it.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", op, err))
	}
	return result.ErrorOrNil()
}
