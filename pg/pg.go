// Package pg provides a network source backed by a PostgreSQL database
// holding the subregion tables (flow_edges, flowlines, waterbodies).
package pg

import (
	"database/sql"
	"fmt"

	// Register the postgres driver with database/sql.
	_ "github.com/lib/pq"

	"github.com/lagoslakes/flownet/network"
)

// Compile-time checks for ensuring Source implements the network contracts.
var (
	_ network.Source   = (*Source)(nil)
	_ network.Exporter = (*Source)(nil)
)

// sentinelID is how the flow table stores the boundary endpoint. It is
// normalized to network.Null before leaving this package.
const sentinelID = "0"

// Source implements a subregion source backed by PostgreSQL.
type Source struct {
	db *sql.DB
}

// NewSource returns a Source instance connected to the postgres instance
// specified by the provided dsn.
func NewSource(dsn string) (*Source, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open flow database: %w", err)
	}
	return &Source{db: db}, nil
}

// Close terminates the connection to the backing database instance.
func (s *Source) Close() error {
	return s.db.Close()
}

// FlowEdges returns an iterator over the directed flow table.
func (s *Source) FlowEdges() (network.EdgeIterator, error) {
	rows, err := s.db.Query(`SELECT from_permanent_identifier, to_permanent_identifier FROM flow_edges`)
	if err != nil {
		return nil, fmt.Errorf("flow edges: %w", err)
	}
	return &edgeIterator{rows: rows}, nil
}

// Flowlines returns an iterator over the flowline attribute table.
func (s *Source) Flowlines() (network.FlowlineIterator, error) {
	rows, err := s.db.Query(`SELECT permanent_identifier, fcode, wbarea_permanent_identifier, nhdplusid FROM flowlines`)
	if err != nil {
		return nil, fmt.Errorf("flowlines: %w", err)
	}
	return &flowlineIterator{rows: rows}, nil
}

// Waterbodies returns an iterator over the waterbody attribute table.
func (s *Source) Waterbodies() (network.WaterbodyIterator, error) {
	rows, err := s.db.Query(`SELECT permanent_identifier, areasqkm, fcode, nhdplusid FROM waterbodies`)
	if err != nil {
		return nil, fmt.Errorf("waterbodies: %w", err)
	}
	return &waterbodyIterator{rows: rows}, nil
}
