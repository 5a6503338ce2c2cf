package sch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

type recordingListener struct {
	added, removed, changed int
}

func (r *recordingListener) ItemsAdded(_ *Schematic, items []Item)   { r.added += len(items) }
func (r *recordingListener) ItemsRemoved(_ *Schematic, items []Item) { r.removed += len(items) }
func (r *recordingListener) ItemsChanged(_ *Schematic, items []Item) { r.changed += len(items) }

func TestSchematicListeners(t *testing.T) {
	s := NewSchematic(nil)
	l := &recordingListener{}
	s.AddListener(l)
	s.AddListener(l)

	w := NewWire(geom.Pt(0, 0), geom.Pt(10, 0), LayerWire)
	s.OnItemsAdded([]Item{w})
	s.OnItemsChanged([]Item{w, w})
	s.OnItemsRemoved(nil)
	assert.Equal(t, recordingListener{added: 1, changed: 2}, *l)

	s.RemoveListener(l)
	s.OnItemsRemoved([]Item{w})
	assert.Equal(t, 0, l.removed)
}

func TestSchematicSheetChangesRefreshHierarchy(t *testing.T) {
	root, a, _, _ := twoInstanceHierarchy()
	s := NewSchematic(root)
	before := s.Hierarchy()
	assert.Same(t, before, s.Hierarchy())

	s.OnItemsChanged([]Item{NewJunction(geom.Point{})})
	assert.Same(t, before, s.Hierarchy())

	s.OnItemsChanged([]Item{a})
	assert.NotSame(t, before, s.Hierarchy())
}

func TestSchematicBusAliases(t *testing.T) {
	s := NewSchematic(nil)
	s.AddBusAlias(NewBusAlias("DATA", "D0", "D1"))
	s.AddBusAlias(NewBusAlias("CTRL", "RD"))
	s.AddBusAlias(NewBusAlias("DATA", "D0", "D1", "D2"))

	assert.Len(t, s.BusAliases(), 2)
	assert.Len(t, s.BusAlias("DATA").Members, 3)
	assert.Nil(t, s.BusAlias("NONE"))
	assert.Equal(t, s.BusAlias("CTRL"), s.ConnectionGraph().BusAlias("CTRL"))

	c := NewConnection(NewLabel(KindLabel, "", geom.Point{}), s.CurrentSheet())
	c.SetGraph(s.ConnectionGraph())
	c.ConfigureFromLabel("{DATA}")
	assert.Len(t, c.Members(), 3)
}

func TestSchematicEmptyRoot(t *testing.T) {
	s := NewSchematic(nil)
	assert.NotNil(t, s.RootScreen())
	assert.Equal(t, s.RootScreen(), s.CurrentScreen())
	assert.Equal(t, 1, s.Hierarchy().Len())
}

func TestAutoRotateLabel(t *testing.T) {
	s := NewScreen("")
	s.Add(NewWire(geom.Pt(0, 0), geom.Pt(100, 0), LayerWire))
	s.Add(NewWire(geom.Pt(500, 0), geom.Pt(500, -100), LayerWire))
	left := NewLabel(KindLabel, "A", geom.Pt(0, 0))
	right := NewLabel(KindLabel, "B", geom.Pt(100, 0))
	up := NewLabel(KindLabel, "C", geom.Pt(500, 0))
	mid := NewLabel(KindLabel, "D", geom.Pt(50, 0))
	for _, l := range []*Label{left, right, up, mid} {
		s.Add(l)
	}

	assert.True(t, AutoRotateLabel(s, left))
	assert.Equal(t, SpinLeft, left.Spin)
	assert.False(t, AutoRotateLabel(s, left))

	AutoRotateLabel(s, right)
	assert.Equal(t, SpinRight, right.Spin)
	AutoRotateLabel(s, up)
	assert.Equal(t, SpinBottom, up.Spin)

	mid.SetSpin(SpinUp)
	assert.False(t, AutoRotateLabel(s, mid))
	assert.Equal(t, SpinUp, mid.Spin)
}
