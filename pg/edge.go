package pg

import (
	"database/sql"
	"fmt"

	"github.com/lagoslakes/flownet/network"
)

// edgeIterator is a network.EdgeIterator implementation for the pg source.
type edgeIterator struct {
	rows        *sql.Rows
	lastErr     error
	latchedEdge *network.FlowEdge
}

// Next implements network.EdgeIterator.
func (i *edgeIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	var from, to string
	i.lastErr = i.rows.Scan(&from, &to)
	if i.lastErr != nil {
		return false
	}

	i.latchedEdge = &network.FlowEdge{From: normalize(from), To: normalize(to)}
	return true
}

// Error implements network.EdgeIterator.
func (i *edgeIterator) Error() error {
	return i.lastErr
}

// Close implements network.EdgeIterator.
func (i *edgeIterator) Close() error {
	err := i.rows.Close()
	if err != nil {
		return fmt.Errorf("edge iterator: %w", err)
	}
	return nil
}

// Edge implements network.EdgeIterator.
func (i *edgeIterator) Edge() *network.FlowEdge {
	return i.latchedEdge
}

// normalize maps the stored boundary sentinel to network.Null.
func normalize(id string) network.ID {
	if id == sentinelID {
		return network.Null
	}
	return network.ID(id)
}
