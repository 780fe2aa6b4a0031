package watershed

import (
	"fmt"

	"github.com/lagoslakes/flownet/network"
)

// InterlakeErasable computes, for every focal lake, the set of
// auxiliary-network ids that may be subtracted from its dissolved interlake
// watershed. Delineation sinks flow into 10 ha+ lakes while merging flow
// from smaller lakes, and the dissolve step flattens every internal sink, so
// the regions belonging to large-lake sub-networks must be re-erased
// afterwards. Erasable per focal lake are the networks of large lakes that
// are (a) isolated, always in their entirety, (b) terminal and not
// downstream of the focal lake, restricted to their off-main-network
// portion, or (c) draining lakes upstream of the focal lake. An eligible
// network intersecting the focal lake's interlake trace contributes only the
// portion outside that trace; one disjoint from it contributes in full.
// Lakes under 10 ha never donate, and no result ever erases the
// focal lake's complete watershed from itself.
func (n *Network) InterlakeErasable(focal []network.ID) (map[network.ID]Trace, error) {
	if len(focal) == 0 {
		return nil, fmt.Errorf("interlake erasable: %w", ErrNoStartIDs)
	}

	n.logger.WithField("lakes", len(focal)).Info("tracing networks for focal lakes")
	free := NoBarriers()

	lakeUp, err := n.TraceUpFromLakes(focal, free)
	if err != nil {
		return nil, err
	}
	lakeDown := make(map[network.ID]Trace, len(focal))
	for _, id := range focal {
		if lakeDown[id], err = n.DownFromWaterbody(id, free); err != nil {
			return nil, err
		}
	}

	tenhaBarriers, tenhaIDs, err := n.TenHaBarriers()
	if err != nil {
		return nil, err
	}
	lakeInterlake, err := n.TraceUpFromLakes(focal, tenhaBarriers)
	if err != nil {
		return nil, err
	}

	n.logger.Info("classifying large lake connectivity")
	tenhaClass := make(map[network.ID]Class, len(tenhaIDs))
	for _, id := range tenhaIDs {
		if tenhaClass[id], err = n.Classify(id); err != nil {
			return nil, err
		}
	}

	tenhaNets, err := n.TraceUpFromLakes(tenhaIDs, free)
	if err != nil {
		return nil, err
	}

	// Isolated large lakes are erasable for every focal lake; their traces
	// are empty, so the lake ids themselves stand in for their networks.
	isolated := NewTrace()
	for id, class := range tenhaClass {
		if class == Isolated {
			isolated.Add(id)
		}
	}

	// Only portions of terminal networks that are off the main network are
	// erasable.
	onNetwork, err := n.MainNetwork(free)
	if err != nil {
		return nil, err
	}
	terminal := make(map[network.ID]Trace)
	draining := make(map[network.ID]Trace)
	for id, net := range tenhaNets {
		switch tenhaClass[id] {
		case Terminal, TerminalLk:
			terminal[id] = net.Subtract(onNetwork)
		case Headwater, Drainage, DrainageLk:
			draining[id] = net
		}
	}

	n.logger.Info("defining erasable regions for each lake")
	erasable := make(map[network.ID]Trace, len(focal))
	for _, lakeID := range focal {
		// The floor counts the full self-inclusive trace: fewer than two
		// elements means there is no watershed to erase anything from. The
		// lake's own id comes out only afterwards, for the donor set math.
		if len(lakeUp[lakeID]) < 2 {
			erasable[lakeID] = NewTrace()
			continue
		}

		focalUp := lakeUp[lakeID].SubtractIDs(lakeID)
		focalDown := lakeDown[lakeID].SubtractIDs(lakeID)
		focalInterlake := lakeInterlake[lakeID].SubtractIDs(lakeID)

		eligible := make(map[network.ID]Trace)
		for id, net := range terminal {
			if !focalDown.Contains(id) {
				eligible[id] = net
			}
		}
		for id, net := range draining {
			if focalUp.Contains(id) {
				eligible[id] = net
			}
		}

		result := NewTrace().Union(isolated)
		for _, net := range eligible {
			if net.Disjoint(focalInterlake) {
				result = result.Union(net)
			} else {
				result = result.Union(net.Subtract(focalInterlake))
			}
		}
		erasable[lakeID] = result
	}
	return erasable, nil
}
