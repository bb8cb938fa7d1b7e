package ident

import (
	"testing"
	"time"

	chk "gopkg.in/check.v1"
)

type IdentSuite struct{}

var _ = chk.Suite(&IdentSuite{})

func Test(t *testing.T) {
	chk.TestingT(t)
}

func (s *IdentSuite) TestSameSeedDiffers(c *chk.C) {
	// Even with a frozen clock, two calls with the same seed must not collide
	frozen := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	h := &Hasher{Now: func() time.Time { return frozen }}
	a := h.Generate("message" + "author")
	b := h.Generate("message" + "author")
	c.Check(a, chk.Not(chk.Equals), b)
	c.Check(a, chk.HasLen, 64)
}

func (s *IdentSuite) TestManyUnique(c *chk.C) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id := Generate("seed")
		_, dup := seen[id]
		c.Assert(dup, chk.Equals, false)
		seen[id] = struct{}{}
	}
}

func (s *IdentSuite) TestShort(c *chk.C) {
	c.Check(Short("0123456789abcdef"), chk.Equals, "0123456")
	c.Check(Short("abc"), chk.Equals, "abc")
	c.Check(Short(""), chk.Equals, "")
}
