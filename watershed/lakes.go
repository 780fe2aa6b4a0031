package watershed

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lagoslakes/flownet/network"
)

// Waterbody fcodes eligible for the lake population.
var lakeFCodes = map[int]struct{}{
	39000: {}, 39004: {}, 39009: {}, 39010: {}, 39011: {}, 39012: {},
	43600: {}, 43613: {}, 43615: {}, 43617: {}, 43618: {}, 43619: {}, 43621: {},
}

// tenHaSqKm is the large-lake area threshold (10 hectares) in km².
const tenHaSqKm = 0.1

// DefineLakes (re)builds the lake population used by the connectivity
// methods: waterbodies meeting the minimum area and an eligible fcode, plus
// any id on the force list regardless of size or fcode. The relaxed minimum
// (strictMinSize false) admits slightly more lakes to absorb area
// differences between measurement systems.
func (n *Network) DefineLakes(strictMinSize bool, force []network.ID) (map[network.ID]float64, error) {
	minSize := 0.009
	if strictMinSize {
		minSize = 0.01
	}
	forceIDs := make(map[network.ID]struct{}, len(force))
	for _, id := range force {
		forceIDs[id] = struct{}{}
	}

	it, err := n.src.Waterbodies()
	if err != nil {
		return nil, fmt.Errorf("define lakes: %w", err)
	}
	lakes := make(map[network.ID]float64)
	for it.Next() {
		wb := it.Waterbody()
		_, eligible := lakeFCodes[wb.FCode]
		_, forced := forceIDs[wb.ID]
		if (wb.AreaSqKm >= minSize && eligible) || forced {
			lakes[wb.ID] = wb.AreaSqKm
		}
	}
	if err = closeIterator(it, "define lakes"); err != nil {
		return nil, err
	}

	n.lakes = lakes
	n.logger.WithField("lakes", len(lakes)).Debug("defined lake population")

	out := make(map[network.ID]float64, len(lakes))
	for id, area := range lakes {
		out[id] = area
	}
	return out, nil
}

// ensureLakes defines the default lake population if none was set.
func (n *Network) ensureLakes() error {
	if n.lakes != nil {
		return nil
	}
	_, err := n.DefineLakes(false, nil)
	return err
}

// Lakes returns the current lake population (id -> area km²), defining the
// default population on first use.
func (n *Network) Lakes() (map[network.ID]float64, error) {
	if err := n.ensureLakes(); err != nil {
		return nil, err
	}
	out := make(map[network.ID]float64, len(n.lakes))
	for id, area := range n.lakes {
		out[id] = area
	}
	return out, nil
}

// TenHaLakeIDs returns the large-lake population: every defined lake with an
// area of at least 10 hectares, in stable order.
func (n *Network) TenHaLakeIDs() ([]network.ID, error) {
	if err := n.ensureLakes(); err != nil {
		return nil, err
	}
	var ids []network.ID
	for id, area := range n.lakes {
		if area >= tenHaSqKm {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// TenHaBarriers builds the barrier set that makes every large lake (and its
// flowlines) stop upstream tracing, returning the barrier set together with
// the large-lake ids it was built from.
func (n *Network) TenHaBarriers() (Barriers, []network.ID, error) {
	ids, err := n.TenHaLakeIDs()
	if err != nil {
		return Barriers{}, nil, err
	}
	if err = n.ensureMaps(); err != nil {
		return Barriers{}, nil, err
	}
	var flowlines []network.ID
	for _, id := range ids {
		flowlines = append(flowlines, n.waterbodyFlowlines[id]...)
	}
	return NewBarriers(ids, flowlines), ids, nil
}

// ErrUnknownResultType is returned when an upstream-lake summary is requested
// with a result type outside the supported set.
var ErrUnknownResultType = errors.New("unknown result type")

// ResultType selects the form of an upstream-lake summary.
type ResultType string

const (
	ResultList         ResultType = "list"
	ResultCount        ResultType = "count"
	ResultAreaHectares ResultType = "area_hectares"
)

// UpstreamSummary holds one upstream-lake summary; only the field matching
// the requested result type is populated.
type UpstreamSummary struct {
	Lakes        []network.ID
	Count        int
	AreaHectares float64
}

// UpstreamLakes identifies or summarizes the lakes upstream of the focal
// lake whose area meets the threshold (km²). The focal lake itself is never
// counted. An unrecognized result type is rejected immediately.
func (n *Network) UpstreamLakes(start network.ID, result ResultType, areaThreshold float64) (*UpstreamSummary, error) {
	switch result {
	case ResultList, ResultCount, ResultAreaHectares:
	default:
		return nil, fmt.Errorf("upstream lakes: result type %q is not one of %q, %q, %q: %w",
			result, ResultList, ResultCount, ResultAreaHectares, ErrUnknownResultType)
	}
	if err := n.ensureLakes(); err != nil {
		return nil, err
	}

	traceUp, err := n.UpFromWaterbody(start, NoBarriers())
	if err != nil {
		return nil, err
	}
	traceUp = traceUp.SubtractIDs(start)

	var upstream []network.ID
	for id, area := range n.lakes {
		if area >= areaThreshold && traceUp.Contains(id) {
			upstream = append(upstream, id)
		}
	}
	sort.Slice(upstream, func(i, j int) bool { return upstream[i] < upstream[j] })

	summary := &UpstreamSummary{}
	switch result {
	case ResultList:
		summary.Lakes = upstream
	case ResultCount:
		summary.Count = len(upstream)
	case ResultAreaHectares:
		var total float64
		for _, id := range upstream {
			total += n.lakes[id]
		}
		summary.AreaHectares = total * 100 // km² to hectares
	}
	return summary, nil
}
