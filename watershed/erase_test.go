package watershed

import (
	"errors"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(&EraseSuite{})

type EraseSuite struct {
	net *Network
}

func (s *EraseSuite) SetUpTest(c *gc.C) {
	s.net = NewNetwork(valleySource(), nil)
}

func (s *EraseSuite) TestErasableForDrainingFocalLake(c *gc.C) {
	erasable, err := s.net.InterlakeErasable(ids(lakeSm))
	c.Assert(err, gc.IsNil)

	// ISO always donates; BIG drains into SM's watershed and donates the
	// portion of its network outside SM's interlake trace (B1, the reached
	// barrier flowline, stays). TERM's network lies on the main network, so
	// nothing of it is erasable.
	c.Assert(erasable[lakeSm].IDs(), gc.DeepEquals, ids("B2", "BIG", "H1", "ISO"))

	for _, id := range ids("S1", "M1", "W1", "B1", "HW", "SM", "E1", "TERM") {
		c.Assert(erasable[lakeSm].Contains(id), gc.Equals, false, gc.Commentf("id %s", id))
	}
}

func (s *EraseSuite) TestErasableEmptyWithoutUpstreamNetwork(c *gc.C) {
	// ISO's full upstream trace is below the two-element floor.
	erasable, err := s.net.InterlakeErasable(ids(lakeIso))
	c.Assert(err, gc.IsNil)
	c.Assert(erasable[lakeIso], gc.HasLen, 0)
}

func (s *EraseSuite) TestErasableAtTwoElementFloor(c *gc.C) {
	// HW's full upstream trace is exactly {W1, HW}: the floor counts both
	// elements, so the isolated donor is still erased.
	erasable, err := s.net.InterlakeErasable(ids(lakeHw))
	c.Assert(err, gc.IsNil)
	c.Assert(erasable[lakeHw].IDs(), gc.DeepEquals, ids(lakeIso))
}

func (s *EraseSuite) TestErasableBatch(c *gc.C) {
	erasable, err := s.net.InterlakeErasable(ids(lakeSm, lakeIso))
	c.Assert(err, gc.IsNil)
	c.Assert(erasable, gc.HasLen, 2)
	c.Assert(erasable[lakeSm].Contains(lakeBig), gc.Equals, true)
	c.Assert(erasable[lakeIso], gc.HasLen, 0)
}

func (s *EraseSuite) TestErasableNoStartIDs(c *gc.C) {
	_, err := s.net.InterlakeErasable(nil)
	c.Assert(errors.Is(err, ErrNoStartIDs), gc.Equals, true)
}
