package pg

import (
	"database/sql"
	"fmt"

	"github.com/lagoslakes/flownet/network"
)

// waterbodyIterator is a network.WaterbodyIterator implementation for the pg
// source.
type waterbodyIterator struct {
	rows    *sql.Rows
	lastErr error
	latched *network.Waterbody
}

// Next implements network.WaterbodyIterator.
func (i *waterbodyIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	var (
		id      string
		area    float64
		fcode   int
		numeric sql.NullInt64
	)
	i.lastErr = i.rows.Scan(&id, &area, &fcode, &numeric)
	if i.lastErr != nil {
		return false
	}

	wb := &network.Waterbody{ID: network.ID(id), AreaSqKm: area, FCode: fcode}
	if numeric.Valid {
		wb.NumericID = numeric.Int64
	}

	i.latched = wb
	return true
}

// Error implements network.WaterbodyIterator.
func (i *waterbodyIterator) Error() error {
	return i.lastErr
}

// Close implements network.WaterbodyIterator.
func (i *waterbodyIterator) Close() error {
	err := i.rows.Close()
	if err != nil {
		return fmt.Errorf("waterbody iterator: %w", err)
	}
	return nil
}

// Waterbody implements network.WaterbodyIterator.
func (i *waterbodyIterator) Waterbody() *network.Waterbody {
	return i.latched
}
