package sch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSheetListSharedScreens(t *testing.T) {
	root, a, b, c := twoInstanceHierarchy()
	list := NewSheetList(root, true)

	require.Equal(t, 5, list.Len())
	want := []string{"/", "/A/", "/A/C/", "/B/", "/B/C/"}
	hashes := make(map[uint64]bool)
	for i, p := range list.Paths() {
		assert.Equal(t, want[i], p.PathHumanReadable(false))
		assert.Equal(t, i+1, p.VirtualPage())
		assert.False(t, hashes[p.Hash()], "duplicate hash at %d", i)
		hashes[p.Hash()] = true
	}

	assert.Len(t, list.FindAllSheetsForScreen(c.Content()), 2)
	p, ok := list.FindSheetForScreen(a.Content())
	require.True(t, ok)
	assert.Equal(t, a, p.Last())
	assert.True(t, list.ContainsSheet(b))

	found, ok := list.GetSheetPathByKIIDPath(NewSheetPath(root, b, c).Path())
	require.True(t, ok)
	assert.Equal(t, "/B/C/", found.PathHumanReadable(false))
	assert.False(t, list.HasPath(NewSheetPath(root, c).Path()))
}

func TestBuildSheetListRepairsRecursion(t *testing.T) {
	rootScreen := NewScreen("root.kicad_sch")
	good := newTestSheet("good", "good.kicad_sch", NewScreen("good.kicad_sch"))
	loop := newTestSheet("loop", "root.kicad_sch", rootScreen)
	rootScreen.Add(good)
	rootScreen.Add(loop)
	root := newTestSheet("", "root.kicad_sch", rootScreen)
	rootScreen.ClearModified()

	list := NewSheetList(root, true)
	require.Equal(t, 2, list.Len())
	assert.False(t, list.ContainsSheet(loop))
	assert.False(t, rootScreen.Contains(loop))
	assert.True(t, rootScreen.Contains(good))
	assert.True(t, rootScreen.IsModified())
	assert.True(t, list.IsModified())

	list.ClearModifyStatus()
	assert.False(t, rootScreen.IsModified())
}

func TestBuildSheetListRepairsIndirectRecursion(t *testing.T) {
	rootScreen := NewScreen("root.kicad_sch")
	subScreen := NewScreen("sub.kicad_sch")
	back := newTestSheet("back", "root.kicad_sch", rootScreen)
	subScreen.Add(back)
	sub := newTestSheet("sub", "sub.kicad_sch", subScreen)
	rootScreen.Add(sub)
	root := newTestSheet("", "root.kicad_sch", rootScreen)

	list := NewSheetList(root, true)
	assert.Equal(t, 2, list.Len())
	assert.False(t, subScreen.Contains(back))
	assert.True(t, subScreen.IsModified())
}

func TestBuildSheetListWithoutIntegrityCheck(t *testing.T) {
	rootScreen := NewScreen("root.kicad_sch")
	loop := newTestSheet("loop", "root.kicad_sch", rootScreen)
	rootScreen.Add(loop)
	root := newTestSheet("", "root.kicad_sch", rootScreen)

	list := NewSheetList(root, false)
	assert.Equal(t, 1, list.Len())
	assert.True(t, rootScreen.Contains(loop), "unchecked builds never edit screens")
}

func TestSheetListGetItemAndFillItemMap(t *testing.T) {
	root, _, _, c := twoInstanceHierarchy()
	sym := newResistor("R1", 0, 0)
	c.Content().Add(sym)
	list := NewSheetList(root, true)

	it, path, ok := list.GetItem(sym.Pins()[1].ID())
	require.True(t, ok)
	assert.Equal(t, KindPin, it.Kind())
	assert.Equal(t, "/A/C/", path.PathHumanReadable(false))

	byID := make(map[uuid.UUID]Item)
	list.FillItemMap(byID)
	assert.Contains(t, byID, sym.ID())
	assert.Contains(t, byID, sym.Pins()[0].ID())
	assert.Contains(t, byID, c.ID())
}

func TestSortByPageNumbers(t *testing.T) {
	root, a, b, _ := twoInstanceHierarchy()
	list := NewSheetList(root, true)
	NewSheetPath(root).SetPageNumber("1")
	NewSheetPath(root, a).SetPageNumber("10")
	NewSheetPath(root, b).SetPageNumber("2")

	list.SortByPageNumbers()
	pages := make([]string, 0, list.Len())
	for _, p := range list.Paths() {
		pages = append(pages, p.PageNumber())
	}
	assert.Equal(t, []string{"1", "2", "10", "", ""}, pages)
}
