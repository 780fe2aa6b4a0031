package watershed

import (
	"sort"

	"github.com/lagoslakes/flownet/network"
)

// OutletMethod records which determination produced the subregion outlets.
type OutletMethod string

const (
	// OutletPrimary means the outlets are the last known segments above
	// the point where flow leaves the extent, verified by network
	// coverage.
	OutletPrimary OutletMethod = "primary"

	// OutletSecondary means the subregion has frontal or closed drainage
	// and the outlets are the accepted multi-outlet sink set.
	OutletSecondary OutletMethod = "secondary"
)

// LakeOutlets identifies the lake's outlets: its own flowlines that feed no
// other flowline of the same lake, i.e. the most-downstream members of the
// lake's internal flow. A lake may have zero, one or multiple outlets.
func (n *Network) LakeOutlets(waterbody network.ID) ([]network.ID, error) {
	g, err := n.Graph()
	if err != nil {
		return nil, err
	}
	if err = n.ensureMaps(); err != nil {
		return nil, err
	}

	own := n.waterbodyFlowlines[waterbody]
	feeders := make(map[network.ID]struct{})
	for _, id := range own {
		for _, up := range g.upstream[id] {
			feeders[up] = struct{}{}
		}
	}

	var outlets []network.ID
	for _, id := range own {
		if _, feeds := feeders[id]; !feeds {
			outlets = append(outlets, id)
		}
	}
	sort.Slice(outlets, func(i, j int) bool { return outlets[i] < outlets[j] })
	return outlets, nil
}

// LakeInlets identifies the lake's inlets: its own flowlines that are fed by
// no other flowline of the same lake, symmetric to LakeOutlets.
func (n *Network) LakeInlets(waterbody network.ID) ([]network.ID, error) {
	g, err := n.Graph()
	if err != nil {
		return nil, err
	}
	if err = n.ensureMaps(); err != nil {
		return nil, err
	}

	own := n.waterbodyFlowlines[waterbody]
	receivers := make(map[network.ID]struct{})
	for _, id := range own {
		for _, down := range g.downstream[id] {
			receivers[down] = struct{}{}
		}
	}

	var inlets []network.ID
	for _, id := range own {
		if _, receives := receivers[id]; !receives {
			inlets = append(inlets, id)
		}
	}
	sort.Slice(inlets, func(i, j int) bool { return inlets[i] < inlets[j] })
	return inlets, nil
}

// AllLakeOutlets collects the outlets of every lake in the defined
// population.
func (n *Network) AllLakeOutlets() ([]network.ID, error) {
	if err := n.ensureLakes(); err != nil {
		return nil, err
	}
	var all []network.ID
	for _, id := range sortedIDs(n.lakes) {
		outlets, err := n.LakeOutlets(id)
		if err != nil {
			return nil, err
		}
		all = append(all, outlets...)
	}
	return all, nil
}

// AllLakeInlets collects the inlets of every lake in the defined population.
func (n *Network) AllLakeInlets() ([]network.ID, error) {
	if err := n.ensureLakes(); err != nil {
		return nil, err
	}
	var all []network.ID
	for _, id := range sortedIDs(n.lakes) {
		inlets, err := n.LakeInlets(id)
		if err != nil {
			return nil, err
		}
		all = append(all, inlets...)
	}
	return all, nil
}

// SubregionInlets identifies the flowlines receiving flow from outside the
// modeled extent: the downstream neighbors of segments that have no
// recorded upstream entry of their own. Boundary inflow is not a real
// neighbor, so a segment fed only from the boundary counts as having no
// upstream of its own and its downstream neighbor is reported.
func (n *Network) SubregionInlets() ([]network.ID, error) {
	g, err := n.Graph()
	if err != nil {
		return nil, err
	}

	inletSet := make(map[network.ID]struct{})
	for from, list := range g.downstream {
		if g.HasUpstream(from) {
			continue
		}
		for _, id := range list {
			inletSet[id] = struct{}{}
		}
	}

	inlets := make([]network.ID, 0, len(inletSet))
	for id := range inletSet {
		inlets = append(inlets, id)
	}
	sort.Slice(inlets, func(i, j int) bool { return inlets[i] < inlets[j] })
	return inlets, nil
}

// SubregionOutlets identifies the flowlines where flow leaves the subregion
// and records which determination was used. The candidates are the sinks:
// the last known segments with no downstream of their own, those draining
// straight to the boundary included. The primary method accepts the sinks
// after verifying that their combined upstream networks cover at least half
// of all segments with a recorded upstream neighbor; when the check fails
// the subregion has frontal or closed drainage and the secondary
// multi-outlet determination applies. The result is cached until the
// flow-inclusion policy changes.
func (n *Network) SubregionOutlets() ([]network.ID, OutletMethod, error) {
	if n.outlets != nil {
		return n.outlets, n.outletsMethod, nil
	}

	g, err := n.Graph()
	if err != nil {
		return nil, "", err
	}

	sinkSet := make(map[network.ID]struct{})
	for id := range g.upstream {
		if len(g.downstream[id]) == 0 {
			sinkSet[id] = struct{}{}
		}
	}
	for _, id := range g.boundaryDrains {
		sinkSet[id] = struct{}{}
	}

	outlets := make([]network.ID, 0, len(sinkSet))
	for id := range sinkSet {
		outlets = append(outlets, id)
	}
	sort.Slice(outlets, func(i, j int) bool { return outlets[i] < outlets[j] })

	// Segments with a recorded upstream neighbor; the coverage denominator.
	flowing := 0
	for _, list := range g.upstream {
		if len(list) > 0 {
			flowing++
		}
	}

	if len(outlets) > 0 && flowing > 0 {
		covered := NewTrace()
		for _, id := range outlets {
			covered = covered.Union(traverse(g.upstream, id, NoBarriers()))
		}
		hits := 0
		for id, list := range g.upstream {
			if len(list) > 0 && covered.Contains(id) {
				hits++
			}
		}
		if float64(hits)/float64(flowing) >= 0.5 {
			n.outlets, n.outletsMethod = outlets, OutletPrimary
			return n.outlets, n.outletsMethod, nil
		}
	}

	n.logger.Info("secondary outlet determination being used due to frontal or closed drainage for the subregion")
	outlets = n.secondaryOutlets(g, sinkSet)
	n.outlets, n.outletsMethod = outlets, OutletSecondary
	return n.outlets, n.outletsMethod, nil
}

// secondaryOutlets implements the frontal/closed-drainage fallback: every
// candidate sink whose traced network is at least half the size of the
// largest candidate's network is accepted as an outlet.
func (n *Network) secondaryOutlets(g *Graph, sinkSet map[network.ID]struct{}) []network.ID {
	sizes := make(map[network.ID]int, len(sinkSet))
	maxSize := 0
	for id := range sinkSet {
		size := len(traverse(g.upstream, id, NoBarriers()))
		sizes[id] = size
		if size > maxSize {
			maxSize = size
		}
	}

	var outlets []network.ID
	for id, size := range sizes {
		if float64(size) >= 0.5*float64(maxSize) {
			outlets = append(outlets, id)
		}
	}
	sort.Slice(outlets, func(i, j int) bool { return outlets[i] < outlets[j] })
	return outlets
}

// MainNetwork traces all of the main network upstream from the subregion
// outlets, waterbodies included. The result identifies whether network
// elements are on or off the main network.
func (n *Network) MainNetwork(b Barriers) (Trace, error) {
	outlets, _, err := n.SubregionOutlets()
	if err != nil {
		return nil, err
	}
	result := NewTrace()
	for _, id := range outlets {
		tr, err := n.UpFromFlowline(id, b, true)
		if err != nil {
			return nil, err
		}
		result = result.Union(tr)
	}
	return result, nil
}
