package sch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

func newTestSheet(name, file string, screen *Screen) *Sheet {
	s := NewSheet(name, file, geom.Point{}, geom.Pt(1000, 1000))
	s.SetContent(screen)
	return s
}

// twoInstanceHierarchy builds root -> {A, B}, both showing sub.kicad_sch,
// which itself holds one leaf sheet C.
func twoInstanceHierarchy() (root, a, b, c *Sheet) {
	leaf := NewScreen("leaf.kicad_sch")
	sub := NewScreen("sub.kicad_sch")
	c = newTestSheet("C", "leaf.kicad_sch", leaf)
	sub.Add(c)

	rootScreen := NewScreen("root.kicad_sch")
	a = newTestSheet("A", "sub.kicad_sch", sub)
	b = newTestSheet("B", "sub.kicad_sch", sub)
	rootScreen.Add(a)
	rootScreen.Add(b)
	root = newTestSheet("", "root.kicad_sch", rootScreen)
	return root, a, b, c
}

func TestSheetPathStrings(t *testing.T) {
	root, a, _, c := twoInstanceHierarchy()

	p := NewSheetPath(root)
	assert.Equal(t, "/", p.PathAsString())
	assert.Equal(t, "/", p.PathHumanReadable(false))
	assert.Equal(t, "/", p.PathHumanReadable(true))

	p = p.Push(a).Push(c)
	assert.Equal(t, "/"+a.ID().String()+"/"+c.ID().String()+"/", p.PathAsString())
	assert.Equal(t, "/A/C/", p.PathHumanReadable(false))
	assert.Equal(t, "/A/C", p.PathHumanReadable(true))
	assert.Equal(t, "/"+root.ID().String()+"/"+a.ID().String()+"/"+c.ID().String(), p.Path().String())
	assert.Equal(t, c, p.Last())
	assert.Equal(t, c.Content(), p.LastScreen())
}

func TestSheetPathPushDoesNotAlias(t *testing.T) {
	root, a, b, _ := twoInstanceHierarchy()
	base := NewSheetPath(root)
	pa := base.Push(a)
	pb := base.Push(b)
	assert.Equal(t, a, pa.Last())
	assert.Equal(t, b, pb.Last())
	assert.False(t, pa.Equal(pb))
	assert.Equal(t, 1, base.Len())
}

func TestSheetPathConcatAndCmp(t *testing.T) {
	root, a, _, c := twoInstanceHierarchy()
	left := NewSheetPath(root, a)
	right := NewSheetPath(c)
	full := left.Concat(right)

	assert.True(t, full.Equal(NewSheetPath(root, a, c)))
	assert.Equal(t, -1, left.Cmp(full))
	assert.Equal(t, 1, full.Cmp(left))
	assert.Equal(t, 0, full.Cmp(NewSheetPath(root, a, c)))
}

func TestSheetPathGetSheetOutOfRange(t *testing.T) {
	root, _, _, _ := twoInstanceHierarchy()
	p := NewSheetPath(root)
	assert.Equal(t, root, p.GetSheet(0))
	assert.Nil(t, p.GetSheet(1))
	assert.Nil(t, p.GetSheet(-1))
	assert.Nil(t, SheetPath{}.Last())
}

func TestSheetPathPageNumberPerInstance(t *testing.T) {
	root, a, b, c := twoInstanceHierarchy()
	pac := NewSheetPath(root, a, c)
	pbc := NewSheetPath(root, b, c)

	pac.SetPageNumber("3")
	pbc.SetPageNumber("5")
	assert.Equal(t, "3", pac.PageNumber())
	assert.Equal(t, "5", pbc.PageNumber())
}

func TestTestForRecursion(t *testing.T) {
	root, a, _, _ := twoInstanceHierarchy()
	p := NewSheetPath(root, a)

	assert.True(t, p.TestForRecursion("sub.kicad_sch", "sub.kicad_sch"))
	assert.True(t, p.TestForRecursion("root.kicad_sch", "sub.kicad_sch"))
	assert.False(t, p.TestForRecursion("other.kicad_sch", "sub.kicad_sch"))
	assert.False(t, p.TestForRecursion("sub.kicad_sch", "root.kicad_sch"))
}

func TestKIIDPathRoundTrip(t *testing.T) {
	root, a, _, _ := twoInstanceHierarchy()
	path := NewSheetPath(root, a).Path()
	parsed, err := ParseKIIDPath(path.String() + "/")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(path))

	_, err = ParseKIIDPath("/not-a-uuid")
	assert.Error(t, err)
}
