package watershed

import (
	gc "gopkg.in/check.v1"

	"github.com/lagoslakes/flownet/inmem"
	"github.com/lagoslakes/flownet/network"
)

var _ = gc.Suite(&ReportSuite{})

type ReportSuite struct {
	net *Network
}

func (s *ReportSuite) SetUpTest(c *gc.C) {
	// P connects only through an intermittent stream; Q has a flowline but
	// no flow records; X is too small and miscoded for the population.
	src := inmem.NewSource()
	src.AddFlowEdge(network.FlowEdge{From: "I1", To: "P1"})
	src.UpsertFlowline(network.Flowline{ID: "I1", FCode: network.FCodeIntermittent})
	src.UpsertFlowline(network.Flowline{ID: "P1", FCode: 55800, WaterbodyID: "P"})
	src.UpsertFlowline(network.Flowline{ID: "Q1", FCode: 55800, WaterbodyID: "Q"})
	src.UpsertWaterbody(network.Waterbody{ID: "P", AreaSqKm: 0.05, FCode: 39000, NumericID: 900001})
	src.UpsertWaterbody(network.Waterbody{ID: "Q", AreaSqKm: 0.05, FCode: 39000})
	src.UpsertWaterbody(network.Waterbody{ID: "X", AreaSqKm: 0.001, FCode: 12345})
	s.net = NewNetwork(src, nil)
}

func (s *ReportSuite) TestReport(c *gc.C) {
	records, err := s.net.ConnectivityReport(nil)
	c.Assert(err, gc.IsNil)
	c.Assert(records, gc.DeepEquals, []ConnectivityRecord{
		{WaterbodyID: "P", NumericID: 900001, MaxClass: Terminal, PermanentClass: Isolated, Fluctuates: true},
		{WaterbodyID: "Q", MaxClass: Isolated, PermanentClass: Isolated, Fluctuates: false},
	})
}

func (s *ReportSuite) TestReportForceList(c *gc.C) {
	records, err := s.net.ConnectivityReport(ids("X"))
	c.Assert(err, gc.IsNil)
	c.Assert(records, gc.HasLen, 3)
	c.Assert(records[2].WaterbodyID, gc.Equals, network.ID("X"))
	c.Assert(records[2].MaxClass, gc.Equals, Isolated)
	c.Assert(records[2].Fluctuates, gc.Equals, false)
}

func (s *ReportSuite) TestReportRestoresPolicy(c *gc.C) {
	_, err := s.net.ConnectivityReport(nil)
	c.Assert(err, gc.IsNil)
	c.Assert(s.net.ExcludeIntermittent(), gc.Equals, false)

	s.net.SetExcludeIntermittent(true)
	_, err = s.net.ConnectivityReport(nil)
	c.Assert(err, gc.IsNil)
	c.Assert(s.net.ExcludeIntermittent(), gc.Equals, true)
}
