package watershed

import (
	gc "gopkg.in/check.v1"

	"github.com/lagoslakes/flownet/inmem"
	"github.com/lagoslakes/flownet/network"
)

var _ = gc.Suite(&GraphSuite{})

type GraphSuite struct{}

func (s *GraphSuite) TestChainAdjacency(c *gc.C) {
	g, err := BuildGraph(chainSource(), Policy{})
	c.Assert(err, gc.IsNil)

	c.Assert(g.Upstream("B"), gc.DeepEquals, ids("A"))
	c.Assert(g.Upstream("D"), gc.DeepEquals, ids("C"))
	c.Assert(g.Upstream("A"), gc.HasLen, 0)
	c.Assert(g.Downstream("A"), gc.DeepEquals, ids("B"))
	c.Assert(g.Downstream("D"), gc.HasLen, 0)
	c.Assert(g.BoundaryDrains(), gc.DeepEquals, ids("D"))
}

func (s *GraphSuite) TestBoundaryInflowForcesEmptyUpstream(c *gc.C) {
	src := inmem.NewSource()
	src.AddFlowEdge(network.FlowEdge{From: "W", To: "X"})
	src.AddFlowEdge(network.FlowEdge{From: network.Null, To: "X"})
	src.UpsertFlowline(network.Flowline{ID: "W", FCode: 46006})
	src.UpsertFlowline(network.Flowline{ID: "X", FCode: 46006})

	g, err := BuildGraph(src, Policy{})
	c.Assert(err, gc.IsNil)

	// Inflow from outside the extent is not a real neighbor; the boundary
	// row overrides the recorded one.
	c.Assert(g.Upstream("X"), gc.HasLen, 0)
	c.Assert(g.Downstream("W"), gc.DeepEquals, ids("X"))
}

func intermittentSource() *inmem.Source {
	src := inmem.NewSource()
	for _, e := range []network.FlowEdge{
		{From: "A", To: "I"},
		{From: "I", To: "B"},
		{From: "C", To: "B"},
		{From: "J", To: network.Null},
	} {
		src.AddFlowEdge(e)
	}
	for _, id := range []network.ID{"A", "B", "C"} {
		src.UpsertFlowline(network.Flowline{ID: id, FCode: 46006})
	}
	src.UpsertFlowline(network.Flowline{ID: "I", FCode: network.FCodeIntermittent})
	src.UpsertFlowline(network.Flowline{ID: "J", FCode: network.FCodeEphemeral})
	return src
}

func (s *GraphSuite) TestIntermittentInclusion(c *gc.C) {
	g, err := BuildGraph(intermittentSource(), Policy{})
	c.Assert(err, gc.IsNil)

	c.Assert(g.Upstream("B"), gc.DeepEquals, ids("I", "C"))
	c.Assert(g.Downstream("A"), gc.DeepEquals, ids("I"))
	c.Assert(g.BoundaryDrains(), gc.DeepEquals, ids("J"))
}

func (s *GraphSuite) TestIntermittentExclusion(c *gc.C) {
	g, err := BuildGraph(intermittentSource(), Policy{ExcludeIntermittent: true})
	c.Assert(err, gc.IsNil)

	// Upstream drops intermittent senders, downstream drops intermittent
	// receivers.
	c.Assert(g.Upstream("B"), gc.DeepEquals, ids("C"))
	c.Assert(g.Downstream("A"), gc.HasLen, 0)
	c.Assert(g.Downstream("I"), gc.DeepEquals, ids("B"))
	c.Assert(g.BoundaryDrains(), gc.HasLen, 0)
}

func (s *GraphSuite) TestExclusionRoundTrip(c *gc.C) {
	n := NewNetwork(intermittentSource(), nil)

	before, err := n.Graph()
	c.Assert(err, gc.IsNil)

	n.SetExcludeIntermittent(true)
	excluded, err := n.Graph()
	c.Assert(err, gc.IsNil)
	c.Assert(excluded.Upstream("B"), gc.DeepEquals, ids("C"))
	c.Assert(excluded.Policy().ExcludeIntermittent, gc.Equals, true)

	n.SetExcludeIntermittent(false)
	after, err := n.Graph()
	c.Assert(err, gc.IsNil)
	c.Assert(after.upstream, gc.DeepEquals, before.upstream)
	c.Assert(after.downstream, gc.DeepEquals, before.downstream)
	c.Assert(after.boundaryDrains, gc.DeepEquals, before.boundaryDrains)
}
