package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/commit"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

func TestBreakSegment(t *testing.T) {
	s := sch.NewScreen("")
	w := wire(s, 0, 0, 200, 0)
	c := commit.New(s)

	assert.Nil(t, BreakSegment(c, s, w, geom.Pt(0, 0)), "ends do not split")
	assert.Nil(t, BreakSegment(c, s, w, geom.Pt(100, 10)), "off the wire")

	nw := BreakSegment(c, s, w, geom.Pt(50, 0))
	require.NotNil(t, nw)
	assert.Equal(t, geom.Pt(50, 0), w.End())
	assert.Equal(t, geom.Pt(50, 0), nw.Start())
	assert.Equal(t, geom.Pt(200, 0), nw.End())
	assert.True(t, w.HasFlag(sch.IsBroken))
	assert.True(t, nw.HasFlag(sch.IsBroken|sch.IsNew))
	assert.True(t, s.Contains(nw))

	c.Revert()
	assert.Equal(t, geom.Pt(200, 0), w.End())
	assert.False(t, s.Contains(nw))
}

func TestTrimOverlappingWires(t *testing.T) {
	s := sch.NewScreen("")
	wire(s, -200, 0, 200, 0)
	r := newResistor("R1", 0, 0)
	s.Add(r)

	TrimOverlappingWires(commit.New(s), s, []sch.Item{r})
	require.Len(t, s.Wires(), 2)
	assert.NotNil(t, findWire(s, geom.Pt(-200, 0), geom.Pt(-100, 0)))
	assert.NotNil(t, findWire(s, geom.Pt(100, 0), geom.Pt(200, 0)))
	for _, w := range s.Wires() {
		assert.False(t, geom.OnSegment(w.Start(), w.End(), geom.Pt(0, 0)))
	}
}

func TestAddJunctionsIfNeeded(t *testing.T) {
	s := sch.NewScreen("")
	a := wire(s, -100, 0, 100, 0)
	b := wire(s, 0, 0, 0, 100)
	c := commit.New(s)

	js := AddJunctionsIfNeeded(c, s, []sch.Item{b})
	require.Len(t, js, 1)
	assert.Equal(t, geom.Pt(0, 0), js[0].Position())
	assert.Equal(t, geom.Pt(0, 0), a.End(), "tee is split at the junction")
	assert.Len(t, s.Wires(), 3)
	assert.Empty(t, AddJunctionsIfNeeded(c, s, []sch.Item{b}))
}

func TestCleanUpMergesCollinearWires(t *testing.T) {
	s := sch.NewScreen("")
	a := wire(s, 0, 0, 100, 0)
	b := wire(s, 100, 0, 200, 0)
	sel := NewSelection()
	sel.Add(a)

	CleanUp(commit.New(s), s, sel)
	require.Len(t, s.Wires(), 1)
	assert.NotNil(t, findWire(s, geom.Pt(0, 0), geom.Pt(200, 0)))
	assert.False(t, s.Contains(a))
	assert.False(t, s.Contains(b))
	assert.False(t, sel.Contains(a))
}

func TestCleanUpKeepsJunctionSplit(t *testing.T) {
	s := sch.NewScreen("")
	wire(s, 0, 0, 100, 0)
	wire(s, 100, 0, 200, 0)
	wire(s, 100, 0, 100, 100)
	s.Add(sch.NewJunction(geom.Pt(100, 0)))

	CleanUp(commit.New(s), s, nil)
	assert.Len(t, s.Wires(), 3)
	assert.NotNil(t, s.JunctionAt(geom.Pt(100, 0)))
}

func TestCleanUpRemovesRedundantItems(t *testing.T) {
	s := sch.NewScreen("")
	wire(s, 0, 0, 100, 0)
	wire(s, 100, 0, 0, 0)
	wire(s, 300, 300, 300, 300)
	lone := sch.NewJunction(geom.Pt(0, 0))
	s.Add(lone)
	s.Add(sch.NewNoConnect(geom.Pt(500, 500)))
	s.Add(sch.NewNoConnect(geom.Pt(500, 500)))

	c := commit.New(s)
	CleanUp(c, s, nil)
	assert.Len(t, s.Wires(), 1)
	assert.False(t, s.Contains(lone), "junction with two exits is not explicit")
	assert.Len(t, s.OfKind(sch.KindNoConnect), 1)

	c.Revert()
	assert.Len(t, s.Wires(), 3)
	assert.True(t, s.Contains(lone))
}

func TestTrimWireSkipsWholeWire(t *testing.T) {
	s := sch.NewScreen("")
	wire(s, 0, 0, 100, 0)
	assert.False(t, TrimWire(commit.New(s), s, geom.Pt(0, 0), geom.Pt(100, 0)))
	assert.False(t, TrimWire(commit.New(s), s, geom.Pt(10, 0), geom.Pt(10, 0)))
	assert.Len(t, s.Wires(), 1)
}
