package pg

import (
	"database/sql"
	"fmt"

	"github.com/lagoslakes/flownet/network"
)

// flowlineIterator is a network.FlowlineIterator implementation for the pg
// source.
type flowlineIterator struct {
	rows    *sql.Rows
	lastErr error
	latched *network.Flowline
}

// Next implements network.FlowlineIterator.
func (i *flowlineIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	var (
		id        string
		fcode     int
		waterbody sql.NullString
		numeric   sql.NullInt64
	)
	i.lastErr = i.rows.Scan(&id, &fcode, &waterbody, &numeric)
	if i.lastErr != nil {
		return false
	}

	fl := &network.Flowline{ID: network.ID(id), FCode: fcode}
	if waterbody.Valid {
		fl.WaterbodyID = network.ID(waterbody.String)
	}
	if numeric.Valid {
		fl.NumericID = numeric.Int64
	}

	i.latched = fl
	return true
}

// Error implements network.FlowlineIterator.
func (i *flowlineIterator) Error() error {
	return i.lastErr
}

// Close implements network.FlowlineIterator.
func (i *flowlineIterator) Close() error {
	err := i.rows.Close()
	if err != nil {
		return fmt.Errorf("flowline iterator: %w", err)
	}
	return nil
}

// Flowline implements network.FlowlineIterator.
func (i *flowlineIterator) Flowline() *network.Flowline {
	return i.latched
}
