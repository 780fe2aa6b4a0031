package watershed

import (
	gc "gopkg.in/check.v1"

	"github.com/lagoslakes/flownet/inmem"
	"github.com/lagoslakes/flownet/network"
)

var _ = gc.Suite(&OutletSuite{})

type OutletSuite struct {
	net *Network
}

func (s *OutletSuite) SetUpTest(c *gc.C) {
	s.net = NewNetwork(valleySource(), nil)
}

func (s *OutletSuite) TestLakeOutlets(c *gc.C) {
	// B2 feeds B1 inside the lake, so only B1 is an outlet.
	outlets, err := s.net.LakeOutlets(lakeBig)
	c.Assert(err, gc.IsNil)
	c.Assert(outlets, gc.DeepEquals, ids("B1"))

	outlets, err = s.net.LakeOutlets(lakeSm)
	c.Assert(err, gc.IsNil)
	c.Assert(outlets, gc.DeepEquals, ids("S1"))

	outlets, err = s.net.LakeOutlets(lakeIso)
	c.Assert(err, gc.IsNil)
	c.Assert(outlets, gc.HasLen, 0)
}

func (s *OutletSuite) TestLakeInlets(c *gc.C) {
	inlets, err := s.net.LakeInlets(lakeBig)
	c.Assert(err, gc.IsNil)
	c.Assert(inlets, gc.DeepEquals, ids("B2"))
}

func (s *OutletSuite) TestAllLakeOutletsAndInlets(c *gc.C) {
	outlets, err := s.net.AllLakeOutlets()
	c.Assert(err, gc.IsNil)
	c.Assert(outlets, gc.DeepEquals, ids("B1", "W1", "S1", "E1"))

	inlets, err := s.net.AllLakeInlets()
	c.Assert(err, gc.IsNil)
	c.Assert(inlets, gc.DeepEquals, ids("B2", "W1", "S1", "E1"))
}

func (s *OutletSuite) TestSubregionInlets(c *gc.C) {
	inlets, err := s.net.SubregionInlets()
	c.Assert(err, gc.IsNil)
	c.Assert(inlets, gc.DeepEquals, ids("B2", "E1", "M1"))
}

func (s *OutletSuite) TestSubregionInletsBoundaryFed(c *gc.C) {
	// X is fed only from the boundary, so it has no upstream of its own and
	// its downstream neighbor Y is reported as an inlet.
	src := inmem.NewSource()
	src.AddFlowEdge(network.FlowEdge{From: network.Null, To: "X"})
	src.AddFlowEdge(network.FlowEdge{From: "X", To: "Y"})
	src.UpsertFlowline(network.Flowline{ID: "X", FCode: 46006})
	src.UpsertFlowline(network.Flowline{ID: "Y", FCode: 46006})
	n := NewNetwork(src, nil)

	inlets, err := n.SubregionInlets()
	c.Assert(err, gc.IsNil)
	c.Assert(inlets, gc.DeepEquals, ids("Y"))
}

func (s *OutletSuite) TestSubregionOutletsPrimary(c *gc.C) {
	outlets, method, err := s.net.SubregionOutlets()
	c.Assert(err, gc.IsNil)
	c.Assert(method, gc.Equals, OutletPrimary)
	c.Assert(outlets, gc.DeepEquals, ids("E1", "T1"))

	// Cached determination.
	again, method, err := s.net.SubregionOutlets()
	c.Assert(err, gc.IsNil)
	c.Assert(method, gc.Equals, OutletPrimary)
	c.Assert(again, gc.DeepEquals, outlets)
}

func (s *OutletSuite) TestSubregionOutletsFrontal(c *gc.C) {
	src := inmem.NewSource()
	src.AddFlowEdge(network.FlowEdge{From: "A", To: network.Null})
	src.AddFlowEdge(network.FlowEdge{From: "B", To: network.Null})
	src.UpsertFlowline(network.Flowline{ID: "A", FCode: 46006})
	src.UpsertFlowline(network.Flowline{ID: "B", FCode: 46006})
	n := NewNetwork(src, nil)

	outlets, method, err := n.SubregionOutlets()
	c.Assert(err, gc.IsNil)
	c.Assert(method, gc.Equals, OutletSecondary)
	c.Assert(outlets, gc.DeepEquals, ids("A", "B"))
}

func (s *OutletSuite) TestSubregionOutletsClosedDrainage(c *gc.C) {
	// A dominant closed loop defeats the primary coverage check; the small
	// terminal sink Q is then rejected by the half-of-largest size filter.
	src := inmem.NewSource()
	for _, e := range []network.FlowEdge{
		{From: "C1", To: "C2"},
		{From: "C2", To: "C3"},
		{From: "C3", To: "C4"},
		{From: "C4", To: "C5"},
		{From: "C5", To: "C6"},
		{From: "C6", To: "C1"},
		{From: "X1", To: "X2"},
		{From: "X2", To: "X3"},
		{From: "X3", To: "X4"},
		{From: "X4", To: "Y"},
		{From: "Y", To: network.Null},
		{From: "P", To: "Q"},
	} {
		src.AddFlowEdge(e)
	}
	for _, id := range []network.ID{"C1", "C2", "C3", "C4", "C5", "C6", "X1", "X2", "X3", "X4", "Y", "P", "Q"} {
		src.UpsertFlowline(network.Flowline{ID: id, FCode: 46006})
	}
	n := NewNetwork(src, nil)

	outlets, method, err := n.SubregionOutlets()
	c.Assert(err, gc.IsNil)
	c.Assert(method, gc.Equals, OutletSecondary)
	c.Assert(outlets, gc.DeepEquals, ids("Y"))
}

func (s *OutletSuite) TestMainNetwork(c *gc.C) {
	tr, err := s.net.MainNetwork(NoBarriers())
	c.Assert(err, gc.IsNil)
	c.Assert(tr.IDs(), gc.DeepEquals, ids(
		"B1", "B2", "BIG", "E1", "H1", "HW", "M1", "M2", "S1", "SM", "T1", "TERM", "W1",
	))
	c.Assert(tr.Contains(lakeIso), gc.Equals, false)
}
