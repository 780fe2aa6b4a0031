// Package networktest defines a re-usable set of source-related tests that
// can be executed against any type that implements network.Source.
package networktest

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/lagoslakes/flownet/network"
)

// Fixture describes the subregion rows a test loads into a source before
// exercising it.
type Fixture struct {
	Edges       []network.FlowEdge
	Flowlines   []network.Flowline
	Waterbodies []network.Waterbody
}

// Suite defines a re-usable set of source-related tests that can be executed
// against any type that implements network.Source.
type Suite struct {
	S network.Source

	// Load replaces the source contents with the fixture rows.
	Load func(*testing.T, Fixture)

	// Optional: when both are set, the export contract is tested too.
	// ReadExport returns the flowline ids saved under the table name.
	Exporter   network.Exporter
	ReadExport func(*testing.T, string) []network.ID

	// Optional helper functions.
	BeforeEach func(*testing.T)
	AfterEach  func(*testing.T)
}

// TestSource runs the full suite against the configured source.
func (s *Suite) TestSource(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*testing.T)
	}{
		{"Flow edge round-trip", s.TestFlowEdges},
		{"Boundary sentinel normalization", s.TestBoundarySentinel},
		{"Flowline attributes", s.TestFlowlines},
		{"Waterbody attributes", s.TestWaterbodies},
		{"Flowline selection export", s.TestExport},
	}

	if s.BeforeEach == nil {
		s.BeforeEach = func(t *testing.T) {}
	}
	if s.AfterEach == nil {
		s.AfterEach = func(t *testing.T) {}
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s.BeforeEach(t)
			test.fn(t)
			s.AfterEach(t)
		})
	}
}

// TestFlowEdges verifies that the flow table is returned row for row.
func (s *Suite) TestFlowEdges(t *testing.T) {
	a, b, c := permID(), permID(), permID()
	want := []network.FlowEdge{
		{From: a, To: b},
		{From: b, To: c},
		{From: b, To: c}, // duplicate connectivity records are preserved
	}
	s.Load(t, Fixture{Edges: want})

	it, err := s.S.FlowEdges()
	if err != nil {
		t.Fatalf("failed to iterate flow edges: %v", err)
	}
	var got []network.FlowEdge
	for it.Next() {
		got = append(got, *it.Edge())
	}
	assertIteratorDone(t, it)

	sortEdges(want)
	sortEdges(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flow edge mismatch (-want +got):\n%s", diff)
	}
}

// TestBoundarySentinel verifies that the store's boundary sentinel surfaces
// as network.Null on both endpoints.
func (s *Suite) TestBoundarySentinel(t *testing.T) {
	in, out := permID(), permID()
	s.Load(t, Fixture{Edges: []network.FlowEdge{
		{From: network.Null, To: in},
		{From: out, To: network.Null},
	}})

	it, err := s.S.FlowEdges()
	if err != nil {
		t.Fatalf("failed to iterate flow edges: %v", err)
	}
	var nullFrom, nullTo int
	for it.Next() {
		edge := it.Edge()
		if edge.From.IsNull() {
			nullFrom++
			if edge.To != in {
				t.Errorf("boundary inflow edge points at %q; want %q", edge.To, in)
			}
		}
		if edge.To.IsNull() {
			nullTo++
			if edge.From != out {
				t.Errorf("boundary outflow edge originates from %q; want %q", edge.From, out)
			}
		}
	}
	assertIteratorDone(t, it)

	if nullFrom != 1 || nullTo != 1 {
		t.Errorf("got %d null-from and %d null-to edges; want exactly 1 of each", nullFrom, nullTo)
	}
}

// TestFlowlines verifies the flowline attribute projection, including the
// nullable waterbody association and numeric crosswalk id.
func (s *Suite) TestFlowlines(t *testing.T) {
	wb := permID()
	want := []network.Flowline{
		{ID: permID(), FCode: 46006, WaterbodyID: network.Null, NumericID: 0},
		{ID: permID(), FCode: network.FCodeIntermittent, WaterbodyID: network.Null, NumericID: 81000177},
		{ID: permID(), FCode: 55800, WaterbodyID: wb, NumericID: 81000178},
	}
	s.Load(t, Fixture{Flowlines: want})

	it, err := s.S.Flowlines()
	if err != nil {
		t.Fatalf("failed to iterate flowlines: %v", err)
	}
	var got []network.Flowline
	for it.Next() {
		got = append(got, *it.Flowline())
	}
	assertIteratorDone(t, it)

	sortFlowlines(want)
	sortFlowlines(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flowline mismatch (-want +got):\n%s", diff)
	}
}

// TestWaterbodies verifies the waterbody attribute projection.
func (s *Suite) TestWaterbodies(t *testing.T) {
	want := []network.Waterbody{
		{ID: permID(), AreaSqKm: 0.009, FCode: 39004, NumericID: 0},
		{ID: permID(), AreaSqKm: 12.5, FCode: 39000, NumericID: 82000011},
	}
	s.Load(t, Fixture{Waterbodies: want})

	it, err := s.S.Waterbodies()
	if err != nil {
		t.Fatalf("failed to iterate waterbodies: %v", err)
	}
	var got []network.Waterbody
	for it.Next() {
		got = append(got, *it.Waterbody())
	}
	assertIteratorDone(t, it)

	sortWaterbodies(want)
	sortWaterbodies(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("waterbody mismatch (-want +got):\n%s", diff)
	}
}

// TestExport verifies that a traced selection is saved as a new dataset
// containing exactly the matching flowline rows.
func (s *Suite) TestExport(t *testing.T) {
	if s.Exporter == nil || s.ReadExport == nil {
		t.Skip("source does not support selection export")
	}

	keep, drop := permID(), permID()
	s.Load(t, Fixture{Flowlines: []network.Flowline{
		{ID: keep, FCode: 46006},
		{ID: drop, FCode: 46006},
	}})

	table := "trace_" + uuid.NewString()[:8]
	if err := s.Exporter.ExportFlowlines(table, []network.ID{keep, permID()}); err != nil {
		t.Fatalf("failed to export selection: %v", err)
	}

	got := s.ReadExport(t, table)
	if len(got) != 1 || got[0] != keep {
		t.Errorf("exported ids = %v; want [%v]", got, keep)
	}
}

// permID generates a random permanent identifier for fixture rows whose
// identity is not meaningful to the test.
func permID() network.ID {
	return network.ID(uuid.NewString())
}

func assertIteratorDone(t *testing.T, it network.Iterator) {
	t.Helper()
	if err := it.Error(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	if err := it.Close(); err != nil {
		t.Fatalf("failed to close iterator: %v", err)
	}
}

func sortEdges(edges []network.FlowEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
}

func sortFlowlines(lines []network.Flowline) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
}

func sortWaterbodies(bodies []network.Waterbody) {
	sort.Slice(bodies, func(i, j int) bool { return bodies[i].ID < bodies[j].ID })
}
