package watershed

import (
	"errors"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(&LakesSuite{})

type LakesSuite struct {
	net *Network
}

func (s *LakesSuite) SetUpTest(c *gc.C) {
	s.net = NewNetwork(valleySource(), nil)
}

func (s *LakesSuite) TestDefineLakesRelaxedMinimum(c *gc.C) {
	lakes, err := s.net.DefineLakes(false, nil)
	c.Assert(err, gc.IsNil)
	c.Assert(lakes, gc.HasLen, 6)
	c.Assert(lakes[lakeTiny], gc.Equals, 0.0095)

	// Swamps and other non-lake fcodes never qualify.
	_, swamp := lakes[wbSwamp]
	c.Assert(swamp, gc.Equals, false)
}

func (s *LakesSuite) TestDefineLakesStrictMinimum(c *gc.C) {
	lakes, err := s.net.DefineLakes(true, nil)
	c.Assert(err, gc.IsNil)
	c.Assert(lakes, gc.HasLen, 5)
	_, tiny := lakes[lakeTiny]
	c.Assert(tiny, gc.Equals, false)
}

func (s *LakesSuite) TestDefineLakesForceList(c *gc.C) {
	// Forced ids join the population regardless of size and fcode.
	lakes, err := s.net.DefineLakes(true, ids(wbSwamp))
	c.Assert(err, gc.IsNil)
	c.Assert(lakes, gc.HasLen, 6)
	c.Assert(lakes[wbSwamp], gc.Equals, 0.5)
}

func (s *LakesSuite) TestTenHaLakeIDs(c *gc.C) {
	tenha, err := s.net.TenHaLakeIDs()
	c.Assert(err, gc.IsNil)
	c.Assert(tenha, gc.DeepEquals, ids(lakeBig, lakeIso, lakeTerm))
}

func (s *LakesSuite) TestTenHaBarriers(c *gc.C) {
	b, tenha, err := s.net.TenHaBarriers()
	c.Assert(err, gc.IsNil)
	c.Assert(tenha, gc.DeepEquals, ids(lakeBig, lakeIso, lakeTerm))

	for _, id := range ids("B1", "B2", "E1") {
		c.Assert(b.BlocksFlowline(id), gc.Equals, true)
	}
	c.Assert(b.BlocksFlowline("S1"), gc.Equals, false)
	c.Assert(b.BlocksWaterbody(lakeBig), gc.Equals, true)
	c.Assert(b.BlocksWaterbody(lakeSm), gc.Equals, false)
}

func (s *LakesSuite) TestUpstreamLakesList(c *gc.C) {
	summary, err := s.net.UpstreamLakes(lakeSm, ResultList, 0)
	c.Assert(err, gc.IsNil)
	c.Assert(summary.Lakes, gc.DeepEquals, ids(lakeBig, lakeHw))
}

func (s *LakesSuite) TestUpstreamLakesCount(c *gc.C) {
	summary, err := s.net.UpstreamLakes(lakeSm, ResultCount, 0)
	c.Assert(err, gc.IsNil)
	c.Assert(summary.Count, gc.Equals, 2)
}

func (s *LakesSuite) TestUpstreamLakesAreaWithThreshold(c *gc.C) {
	// Only BIG meets the 10 ha threshold; 0.25 km² is 25 ha.
	summary, err := s.net.UpstreamLakes(lakeSm, ResultAreaHectares, 0.1)
	c.Assert(err, gc.IsNil)
	c.Assert(summary.AreaHectares, gc.Equals, 25.0)
}

func (s *LakesSuite) TestUpstreamLakesExcludesFocal(c *gc.C) {
	summary, err := s.net.UpstreamLakes(lakeBig, ResultList, 0)
	c.Assert(err, gc.IsNil)
	c.Assert(summary.Lakes, gc.HasLen, 0)
}

func (s *LakesSuite) TestUpstreamLakesInvalidResultType(c *gc.C) {
	_, err := s.net.UpstreamLakes(lakeSm, "bogus", 0)
	c.Assert(errors.Is(err, ErrUnknownResultType), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, `upstream lakes: result type "bogus" is not one of .*`)
}
