package watershed

import "github.com/lagoslakes/flownet/network"

// Class summarizes a lake's upstream/downstream network relationship.
type Class string

const (
	// Isolated: traces in both directions were empty.
	Isolated Class = "Isolated"

	// Headwater: only the downstream trace contains network connectivity.
	Headwater Class = "Headwater"

	// Terminal: only the upstream trace contains network connectivity.
	Terminal Class = "Terminal"

	// TerminalLk: Terminal, and the upstream trace contains one or more
	// large (10 ha+) lakes.
	TerminalLk Class = "TerminalLk"

	// Drainage: both traces contain network connectivity.
	Drainage Class = "Drainage"

	// DrainageLk: Drainage, and the upstream trace contains one or more
	// large (10 ha+) lakes.
	DrainageLk Class = "DrainageLk"
)

// Classify assigns the freshwater connectivity class for the waterbody from
// two barrier-free traces with the lake's own elements removed.
func (n *Network) Classify(waterbody network.ID) (Class, error) {
	if err := n.ensureMaps(); err != nil {
		return "", err
	}
	tenha, err := n.TenHaLakeIDs()
	if err != nil {
		return "", err
	}

	free := NoBarriers()
	traceUp, err := n.UpFromWaterbody(waterbody, free)
	if err != nil {
		return "", err
	}
	traceDown, err := n.DownFromWaterbody(waterbody, free)
	if err != nil {
		return "", err
	}

	// With intermittent flow included, empty traces in both directions
	// mean true isolation. With exclusion active the same signal could be
	// an artifact of dropped edges, so it is re-derived from the non-self
	// traces below (which reach the same label for genuinely empty
	// traces).
	if len(traceUp) == 0 && len(traceDown) == 0 && !n.policy.ExcludeIntermittent {
		return Isolated, nil
	}

	inside := NewTrace(n.waterbodyFlowlines[waterbody]...)
	inside.Add(waterbody)
	nonSelfUp := traceUp.Subtract(inside)
	nonSelfDown := traceDown.Subtract(inside)

	largeUpstream := false
	for _, id := range tenha {
		if nonSelfUp.Contains(id) {
			largeUpstream = true
			break
		}
	}

	switch {
	case len(nonSelfUp) == 0 && len(nonSelfDown) == 0:
		return Isolated, nil
	case len(nonSelfUp) == 0:
		return Headwater, nil
	case len(nonSelfDown) == 0 && largeUpstream:
		return TerminalLk, nil
	case len(nonSelfDown) == 0:
		return Terminal, nil
	case largeUpstream:
		return DrainageLk, nil
	default:
		return Drainage, nil
	}
}
