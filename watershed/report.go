package watershed

import "github.com/lagoslakes/flownet/network"

// ConnectivityRecord holds both connectivity determinations for one lake:
// the maximum class considers all flow, the permanent class excludes
// intermittent and ephemeral flowlines. Fluctuates flags lakes whose class
// depends on non-permanent flow.
type ConnectivityRecord struct {
	WaterbodyID    network.ID
	NumericID      int64
	MaxClass       Class
	PermanentClass Class
	Fluctuates     bool
}

// ConnectivityReport classifies every lake twice, with and without
// intermittent flow, and returns one record per lake in stable order. The
// force list extends the reported population with externally defined lake
// ids regardless of their size or fcode; classification itself always runs
// against the standard population. The flow-inclusion policy in effect
// before the call is restored afterwards.
func (n *Network) ConnectivityReport(force []network.ID) ([]ConnectivityRecord, error) {
	reported, err := n.DefineLakes(false, force)
	if err != nil {
		return nil, err
	}
	ids := sortedIDs(reported)
	if _, err = n.DefineLakes(false, nil); err != nil {
		return nil, err
	}

	restore := n.policy.ExcludeIntermittent
	defer n.SetExcludeIntermittent(restore)

	n.logger.Info("calculating maximum connectivity")
	n.SetExcludeIntermittent(false)
	maxClass := make(map[network.ID]Class, len(ids))
	for _, id := range ids {
		if maxClass[id], err = n.Classify(id); err != nil {
			return nil, err
		}
	}

	n.logger.Info("calculating permanent connectivity")
	n.SetExcludeIntermittent(true)
	permClass := make(map[network.ID]Class, len(ids))
	for _, id := range ids {
		if permClass[id], err = n.Classify(id); err != nil {
			return nil, err
		}
	}

	records := make([]ConnectivityRecord, 0, len(ids))
	for _, id := range ids {
		rec := ConnectivityRecord{
			WaterbodyID:    id,
			MaxClass:       maxClass[id],
			PermanentClass: permClass[id],
			Fluctuates:     maxClass[id] != permClass[id],
		}
		// The numeric crosswalk is optional for reporting; lakes without
		// an external id keep a zero NumericID.
		if numeric, exists := n.waterbodyNumeric[id]; exists {
			rec.NumericID = numeric
		}
		records = append(records, rec)
	}
	return records, nil
}
