package sch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

func TestMergeOverlap(t *testing.T) {
	tests := []struct {
		name       string
		a, b       [2]geom.Point
		start, end geom.Point
		ok         bool
	}{
		{"overlap", [2]geom.Point{{0, 0}, {200, 0}}, [2]geom.Point{{100, 0}, {300, 0}}, geom.Pt(0, 0), geom.Pt(300, 0), true},
		{"touching", [2]geom.Point{{0, 0}, {100, 0}}, [2]geom.Point{{100, 0}, {200, 0}}, geom.Pt(0, 0), geom.Pt(200, 0), true},
		{"reversed", [2]geom.Point{{200, 0}, {100, 0}}, [2]geom.Point{{0, 0}, {100, 0}}, geom.Pt(0, 0), geom.Pt(200, 0), true},
		{"contained", [2]geom.Point{{0, 0}, {300, 0}}, [2]geom.Point{{100, 0}, {200, 0}}, geom.Pt(0, 0), geom.Pt(300, 0), true},
		{"identical", [2]geom.Point{{0, 0}, {0, 100}}, [2]geom.Point{{0, 100}, {0, 0}}, geom.Pt(0, 0), geom.Pt(0, 100), true},
		{"gap", [2]geom.Point{{0, 0}, {100, 0}}, [2]geom.Point{{200, 0}, {300, 0}}, geom.Point{}, geom.Point{}, false},
		{"perpendicular", [2]geom.Point{{0, 0}, {100, 0}}, [2]geom.Point{{0, 0}, {0, 100}}, geom.Point{}, geom.Point{}, false},
		{"parallel offset", [2]geom.Point{{0, 0}, {100, 0}}, [2]geom.Point{{50, 10}, {150, 10}}, geom.Point{}, geom.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewWire(tt.a[0], tt.a[1], LayerWire)
			b := NewWire(tt.b[0], tt.b[1], LayerWire)
			m := a.MergeOverlap(nil, b, false)
			if !tt.ok {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, tt.start, m.Start())
			assert.Equal(t, tt.end, m.End())
			assert.NotEqual(t, a.ID(), m.ID())
			assert.NotEqual(t, b.ID(), m.ID())
		})
	}
}

func TestMergeOverlapRespectsJunctions(t *testing.T) {
	s := NewScreen("")
	a := NewWire(geom.Pt(0, 0), geom.Pt(100, 0), LayerWire)
	b := NewWire(geom.Pt(100, 0), geom.Pt(200, 0), LayerWire)
	s.Add(a)
	s.Add(b)
	s.Add(NewWire(geom.Pt(100, 0), geom.Pt(100, 100), LayerWire))

	assert.Nil(t, a.MergeOverlap(s, b, true))
	assert.NotNil(t, a.MergeOverlap(s, b, false))
}

func TestMergeOverlapLayersAndSelection(t *testing.T) {
	a := NewWire(geom.Pt(0, 0), geom.Pt(100, 0), LayerWire)
	bus := NewWire(geom.Pt(50, 0), geom.Pt(150, 0), LayerBus)
	assert.Nil(t, a.MergeOverlap(nil, bus, false))
	assert.Nil(t, a.MergeOverlap(nil, a, false))

	b := NewWire(geom.Pt(50, 0), geom.Pt(150, 0), LayerWire)
	a.SetFlags(Selected)
	b.SetFlags(IsChanged)
	m := a.MergeOverlap(nil, b, false)
	require.NotNil(t, m)
	assert.True(t, m.IsSelected())
	assert.True(t, m.HasFlag(IsChanged))
}

func TestBreakAt(t *testing.T) {
	s := NewScreen("")
	w := NewWire(geom.Pt(0, 0), geom.Pt(200, 0), LayerWire)
	w.Stroke.Width = 30
	s.Add(w)

	nw := w.BreakAt(geom.Pt(50, 0))
	assert.Equal(t, geom.Pt(50, 0), w.End())
	assert.Equal(t, geom.Pt(50, 0), nw.Start())
	assert.Equal(t, geom.Pt(200, 0), nw.End())
	assert.Equal(t, w.Stroke, nw.Stroke)
	assert.False(t, s.Contains(nw))
	assert.NotContains(t, s.At(geom.Pt(150, 0)), Item(w))
}

func TestStoredAngle(t *testing.T) {
	w := NewWire(geom.Pt(0, 0), geom.Pt(0, 100), LayerWire)
	_, ok := w.StoredAngle()
	assert.False(t, ok)

	w.StoreAngle()
	a, ok := w.StoredAngle()
	require.True(t, ok)
	assert.True(t, a.IsVertical())

	w.SetEnd(w.Start())
	w.StoreAngle()
	a, ok = w.StoredAngle()
	require.True(t, ok, "a null wire keeps its angle")
	assert.True(t, a.IsVertical())

	null := NewWire(geom.Pt(5, 5), geom.Pt(5, 5), LayerWire)
	null.StoreAngle()
	_, ok = null.StoredAngle()
	assert.False(t, ok)
	null.SetStoredAngle(450)
	a, _ = null.StoredAngle()
	assert.Equal(t, geom.Angle(90), a)
}

func TestWireSelectedPointsAndClone(t *testing.T) {
	w := NewWire(geom.Pt(0, 0), geom.Pt(100, 0), LayerWire)
	w.SetFlags(EndPoint)
	assert.Equal(t, []geom.Point{geom.Pt(100, 0)}, w.SelectedPoints())
	w.SetFlags(StartPoint)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0)}, w.SelectedPoints())

	s := NewScreen("")
	s.Add(w)
	c := w.Clone().(*Wire)
	assert.Equal(t, w.ID(), c.ID())
	assert.Nil(t, c.Screen())
	c.SetStart(geom.Pt(-100, 0))
	assert.Equal(t, geom.Pt(0, 0), w.Start())

	w.SwapData(c)
	assert.Equal(t, geom.Pt(-100, 0), w.Start())
	assert.Contains(t, s.At(geom.Pt(-100, 0)), Item(w))
}
