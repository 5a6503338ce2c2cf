package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

func newTestFrame() (*Frame, *sch.Screen, *StaticView) {
	view := &StaticView{}
	f := NewFrame(sch.NewSchematic(nil), NewGridHelper(50), view)
	return f, f.Screen(), view
}

// newResistor returns a two-pin symbol centred on (x, y) with pins 100 IU
// to either side.
func newResistor(ref string, x, y int) *sch.Symbol {
	s := sch.NewSymbol("Device:R", ref, geom.Pt(x, y), geom.Box{Min: geom.Pt(-50, -20), Max: geom.Pt(50, 20)})
	s.AddPin("1", "~", sch.PinPassive, geom.Pt(-100, 0))
	s.AddPin("2", "~", sch.PinPassive, geom.Pt(100, 0))
	return s
}

func wire(s *sch.Screen, ax, ay, bx, by int) *sch.Wire {
	w := sch.NewWire(geom.Pt(ax, ay), geom.Pt(bx, by), sch.LayerWire)
	s.Add(w)
	return w
}

// findWire returns the wire joining a and b in either direction.
func findWire(s *sch.Screen, a, b geom.Point) *sch.Wire {
	for _, w := range s.Wires() {
		if (w.Start() == a && w.End() == b) || (w.Start() == b && w.End() == a) {
			return w
		}
	}
	return nil
}

func assertAxisAligned(t *testing.T, s *sch.Screen) {
	t.Helper()
	for _, w := range s.Wires() {
		assert.True(t, w.Start().X == w.End().X || w.Start().Y == w.End().Y, "diagonal wire %v", w)
	}
}

// dragTo runs a whole session through the given cursor positions and drops.
func dragTo(t *testing.T, tool *MoveTool, mode Mode, to ...geom.Point) State {
	t.Helper()
	require.True(t, tool.Begin(mode, false))
	for _, p := range to {
		tool.OnEvent(Motion(p))
	}
	return tool.OnEvent(Event{Type: EventDrop})
}

func TestDragWireEndAnchoredByJunction(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)
	a := wire(s, 0, 0, 0, -100)
	b := wire(s, -100, 0, 0, 0)
	j := sch.NewJunction(geom.Pt(0, 0))
	s.Add(j)

	f.Selection().AddWireEnd(w, geom.Pt(100, 0))
	view.Cursor = geom.Pt(100, 0)
	tool := NewMoveTool(f, DefaultConfig())

	assert.Equal(t, StateCommitted, dragTo(t, tool, ModeDrag, geom.Pt(100, 50)))
	assert.Equal(t, StateIdle, tool.State())

	assert.Equal(t, geom.Pt(0, 50), w.Start())
	assert.Equal(t, geom.Pt(100, 50), w.End())
	assert.NotNil(t, findWire(s, geom.Pt(0, 0), geom.Pt(0, 50)))
	assert.True(t, s.Contains(j))
	assert.Equal(t, geom.Pt(0, -100), a.End())
	assert.Equal(t, geom.Pt(-100, 0), b.Start())
	assert.Len(t, s.Wires(), 4)
	assertAxisAligned(t, s)

	desc, ok := f.History().Undo()
	require.True(t, ok)
	assert.Equal(t, "Drag", desc)
	assert.Equal(t, geom.Pt(0, 0), w.Start())
	assert.Equal(t, geom.Pt(100, 0), w.End())
	assert.Nil(t, findWire(s, geom.Pt(0, 0), geom.Pt(0, 50)))
	assert.Len(t, s.Wires(), 3)
}

func TestDragWireEndAnchoredByLabel(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)
	l := sch.NewLabel(sch.KindLabel, "CLK", geom.Pt(0, 0))
	s.Add(l)

	f.Selection().AddWireEnd(w, geom.Pt(100, 0))
	view.Cursor = geom.Pt(100, 0)
	tool := NewMoveTool(f, DefaultConfig())
	dragTo(t, tool, ModeDrag, geom.Pt(100, 50))

	assert.Equal(t, geom.Pt(0, 50), w.Start())
	assert.Equal(t, geom.Pt(100, 50), w.End())
	assert.NotNil(t, findWire(s, geom.Pt(0, 0), geom.Pt(0, 50)))
	assert.Len(t, s.Wires(), 2, "zero-length bend is cleaned up")
	assert.Equal(t, geom.Pt(0, 0), l.Position())
	assertAxisAligned(t, s)
}

func TestDragBackRemergesBend(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)
	s.Add(sch.NewLabel(sch.KindLabel, "CLK", geom.Pt(0, 0)))

	f.Selection().AddWireEnd(w, geom.Pt(100, 0))
	view.Cursor = geom.Pt(100, 0)
	tool := NewMoveTool(f, DefaultConfig())
	dragTo(t, tool, ModeDrag, geom.Pt(100, 50), geom.Pt(150, 0))

	require.Len(t, s.Wires(), 1)
	assert.Equal(t, geom.Pt(0, 0), w.Start())
	assert.Equal(t, geom.Pt(150, 0), w.End())
}

func TestDragLabelOffWireBody(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, -200, 0, 200, 0)
	l := sch.NewLabel(sch.KindLabel, "SDA", geom.Pt(0, 0))
	s.Add(l)

	f.Selection().Add(l)
	view.Cursor = geom.Pt(0, 0)
	tool := NewMoveTool(f, DefaultConfig())
	dragTo(t, tool, ModeDrag, geom.Pt(0, 100))

	assert.Equal(t, geom.Pt(0, 100), l.Position())
	assert.Equal(t, sch.SpinBottom, l.Spin)
	assert.Equal(t, geom.Pt(-200, 0), w.Start())
	assert.Equal(t, geom.Pt(0, 0), w.End())
	assert.NotNil(t, findWire(s, geom.Pt(0, 0), geom.Pt(200, 0)))
	assert.NotNil(t, findWire(s, geom.Pt(0, 0), geom.Pt(0, 100)))
	assert.NotNil(t, s.JunctionAt(geom.Pt(0, 0)))
	assert.Len(t, s.Wires(), 3)
}

func TestDragSymbolKeepsWiresOrthogonal(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	a := wire(s, 100, 0, 300, 0)
	c := wire(s, 300, 0, 300, -200)
	d := wire(s, 300, 0, 500, 0)
	s.Add(sch.NewJunction(geom.Pt(300, 0)))
	b := wire(s, -300, 0, -100, 0)

	f.Selection().Add(r)
	view.Cursor = geom.Pt(0, 0)
	tool := NewMoveTool(f, DefaultConfig())
	dragTo(t, tool, ModeDrag, geom.Pt(0, 50), geom.Pt(0, 100))

	assert.Equal(t, geom.Pt(0, 100), r.Position())
	assert.Equal(t, geom.Pt(100, 100), a.Start())
	assert.Equal(t, geom.Pt(300, 100), a.End())
	assert.Equal(t, geom.Pt(-300, 100), b.Start())
	assert.Equal(t, geom.Pt(-100, 100), b.End())
	assert.NotNil(t, findWire(s, geom.Pt(300, 0), geom.Pt(300, 100)))
	assert.Equal(t, geom.Pt(300, -200), c.End())
	assert.Equal(t, geom.Pt(500, 0), d.End())
	assert.Len(t, s.Wires(), 5)
	assertAxisAligned(t, s)
}

func TestDragFreeLineMode(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)
	s.Add(sch.NewLabel(sch.KindLabel, "CLK", geom.Pt(0, 0)))

	f.Selection().AddWireEnd(w, geom.Pt(100, 0))
	view.Cursor = geom.Pt(100, 0)
	cfg := DefaultConfig()
	cfg.LineMode = LineModeFree
	tool := NewMoveTool(f, cfg)
	dragTo(t, tool, ModeDrag, geom.Pt(100, 50))

	assert.Equal(t, geom.Pt(0, 0), w.Start())
	assert.Equal(t, geom.Pt(100, 50), w.End())
	assert.Len(t, s.Wires(), 1)
}

func TestDragLoneWireEndKeepsFixedEnd(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)

	f.Selection().AddWireEnd(w, geom.Pt(100, 0))
	view.Cursor = geom.Pt(100, 0)
	tool := NewMoveTool(f, DefaultConfig())
	assert.Equal(t, StateCommitted, dragTo(t, tool, ModeDrag, geom.Pt(100, 50)))

	assert.Equal(t, geom.Pt(0, 0), w.Start())
	assert.Equal(t, geom.Pt(100, 0), w.End())
	assert.NotNil(t, findWire(s, geom.Pt(100, 0), geom.Pt(100, 50)))
	assert.Len(t, s.Wires(), 2)
	assert.Nil(t, s.JunctionAt(geom.Pt(100, 0)))
	assert.True(t, w.HasFlag(sch.EndPoint), "selected end is given back")
	assertAxisAligned(t, s)
}

func TestDragLoneWireEndAroundCorner(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)

	f.Selection().AddWireEnd(w, geom.Pt(100, 0))
	view.Cursor = geom.Pt(100, 0)
	tool := NewMoveTool(f, DefaultConfig())
	dragTo(t, tool, ModeDrag, geom.Pt(100, 50), geom.Pt(150, 50))

	assert.Equal(t, geom.Pt(0, 0), w.Start())
	assert.Equal(t, geom.Pt(150, 0), w.End())
	assert.NotNil(t, findWire(s, geom.Pt(150, 0), geom.Pt(150, 50)))
	assert.Len(t, s.Wires(), 2)
	assertAxisAligned(t, s)
}

func TestCancelLoneWireEndDrag(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)

	f.Selection().AddWireEnd(w, geom.Pt(100, 0))
	view.Cursor = geom.Pt(100, 0)
	tool := NewMoveTool(f, DefaultConfig())
	require.True(t, tool.Begin(ModeDrag, false))
	tool.OnEvent(Motion(geom.Pt(100, 50)))
	assert.Len(t, s.Wires(), 2)
	assert.Equal(t, StateCancelled, tool.OnEvent(Event{Type: EventCancel}))

	require.Len(t, s.Wires(), 1)
	assert.Equal(t, geom.Pt(0, 0), w.Start())
	assert.Equal(t, geom.Pt(100, 0), w.End())
	assert.True(t, w.HasFlag(sch.EndPoint))
	assert.False(t, w.HasFlag(sch.StartPoint))
}

func TestDragSymbolRepinsLabelOnWire(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	a := wire(s, 100, 0, 300, 0)
	c := wire(s, 300, 0, 300, -200)
	l := sch.NewLabel(sch.KindLabel, "SCL", geom.Pt(200, 0))
	s.Add(l)

	f.Selection().Add(r)
	view.Cursor = geom.Pt(0, 0)
	tool := NewMoveTool(f, DefaultConfig())
	require.True(t, tool.Begin(ModeDrag, false))

	tool.OnEvent(Motion(geom.Pt(50, 0)))
	assert.Equal(t, geom.Pt(150, 0), a.Start())
	assert.Equal(t, geom.Pt(200, 0), l.Position(), "label stays where it sits on the shortened wire")

	tool.OnEvent(Motion(geom.Pt(50, 50)))
	assert.Equal(t, StateCommitted, tool.OnEvent(Event{Type: EventDrop}))

	assert.Equal(t, geom.Pt(150, 50), a.Start())
	assert.Equal(t, geom.Pt(300, 50), a.End())
	assert.Equal(t, geom.Pt(300, 50), c.Start())
	assert.Equal(t, geom.Pt(200, 50), l.Position())
	assertAxisAligned(t, s)
}

func TestDragSymbolLeavesLabelOnFixedEnd(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	a := wire(s, 100, 0, 300, 0)
	l := sch.NewLabel(sch.KindLabel, "SCL", geom.Pt(300, 0))
	s.Add(l)

	f.Selection().Add(r)
	view.Cursor = geom.Pt(0, 0)
	tool := NewMoveTool(f, DefaultConfig())
	dragTo(t, tool, ModeDrag, geom.Pt(0, 50))

	assert.Equal(t, geom.Pt(300, 0), l.Position())
	assert.Equal(t, geom.Pt(100, 50), a.Start())
	assert.Equal(t, geom.Pt(300, 50), a.End())
	assert.NotNil(t, findWire(s, geom.Pt(300, 0), geom.Pt(300, 50)))
	assertAxisAligned(t, s)
}

func TestDragThroughUnselectedJunction(t *testing.T) {
	f, s, view := newTestFrame()
	w := wire(s, 0, 0, 100, 0)
	a := wire(s, 0, 0, 0, -100)
	b := wire(s, -100, 0, 0, 0)
	s.Add(sch.NewJunction(geom.Pt(0, 0)))

	f.Selection().Add(w)
	view.Cursor = geom.Pt(50, 0)
	tool := NewMoveTool(f, DefaultConfig())
	dragTo(t, tool, ModeDrag, geom.Pt(50, 50))

	assert.Equal(t, geom.Pt(0, 50), w.Start())
	assert.Equal(t, geom.Pt(100, 50), w.End())
	assert.NotNil(t, findWire(s, geom.Pt(0, 0), geom.Pt(0, 50)))
	assert.Equal(t, geom.Pt(0, 0), a.Start())
	assert.Equal(t, geom.Pt(0, -100), a.End())
	assert.Equal(t, geom.Pt(-100, 0), b.Start())
	assert.Equal(t, geom.Pt(0, 0), b.End())
	assert.Len(t, s.Wires(), 4)
}

func TestCancelRestoresEverything(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	a := wire(s, 100, 0, 300, 0)
	wire(s, 300, 0, 300, -200)
	wire(s, 300, 0, 500, 0)
	s.Add(sch.NewJunction(geom.Pt(300, 0)))

	f.Selection().Add(r)
	tool := NewMoveTool(f, DefaultConfig())
	require.True(t, tool.Begin(ModeDrag, false))
	tool.OnEvent(Motion(geom.Pt(0, 50)))
	require.Len(t, s.Wires(), 4)

	assert.Equal(t, StateCancelled, tool.OnEvent(Event{Type: EventCancel}))
	assert.Equal(t, StateIdle, tool.State())
	assert.Equal(t, geom.Pt(0, 0), r.Position())
	assert.Equal(t, geom.Pt(100, 0), a.Start())
	assert.Equal(t, geom.Pt(300, 0), a.End())
	assert.Len(t, s.Wires(), 3)
	assert.False(t, f.History().CanUndo())
	assert.False(t, view.AutoPan)
	for _, it := range s.Items() {
		assert.False(t, it.HasFlag(sch.IsMoving|sch.SelectedByDrag|sch.IsNew), "%v keeps session flags", it.Kind())
	}
}

func TestBeginWhileActiveRefreshes(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	f.Selection().Add(r)

	tool := NewMoveTool(f, DefaultConfig())
	require.True(t, tool.Begin(ModeMove, false))
	assert.Equal(t, StateArmed, tool.State())
	assert.True(t, view.AutoPan)

	tool.OnEvent(Motion(geom.Pt(100, 0)))
	assert.Equal(t, 1, view.Refreshes)
	view.Cursor = geom.Pt(100, 0)
	assert.True(t, tool.Begin(ModeMove, false))
	assert.Equal(t, 2, view.Refreshes)
	assert.Equal(t, StateFollowing, tool.State())
	assert.Equal(t, geom.Pt(100, 0), tool.Offset())
}

func TestActivateOnlyCancelsArmedSession(t *testing.T) {
	f, s, _ := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	f.Selection().Add(r)
	tool := NewMoveTool(f, DefaultConfig())

	require.True(t, tool.Begin(ModeMove, false))
	assert.Equal(t, StateCancelled, tool.OnEvent(Event{Type: EventActivate}))

	require.True(t, tool.Begin(ModeMove, false))
	tool.OnEvent(Motion(geom.Pt(50, 0)))
	assert.Equal(t, StateFollowing, tool.OnEvent(Event{Type: EventActivate}))
	assert.Equal(t, StateCommitted, tool.OnEvent(Event{Type: EventDrop}))
	assert.Equal(t, geom.Pt(50, 0), r.Position())
}

func TestContextMenuPausesAutoPan(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	f.Selection().Add(r)
	tool := NewMoveTool(f, DefaultConfig())

	require.True(t, tool.Begin(ModeMove, false))
	tool.OnEvent(Event{Type: EventContextMenu})
	assert.False(t, view.AutoPan)
	tool.OnEvent(Motion(geom.Pt(50, 0)))
	assert.True(t, view.AutoPan)
}

func TestBeginWithEmptySelection(t *testing.T) {
	f, _, _ := newTestFrame()
	tool := NewMoveTool(f, DefaultConfig())
	assert.False(t, tool.Begin(ModeDrag, false))
	assert.Equal(t, StateIdle, tool.State())
	assert.Equal(t, StateIdle, tool.OnEvent(Event{Type: EventDrop}))
}

func TestDropWithoutMotionPushesNothing(t *testing.T) {
	f, s, _ := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	f.Selection().Add(r)
	tool := NewMoveTool(f, DefaultConfig())

	require.True(t, tool.Begin(ModeDrag, false))
	tool.OnEvent(Event{Type: EventDrop})
	assert.False(t, f.History().CanUndo())
	assert.Equal(t, 1, s.Len())
}

func TestMoveLeavesWiresBehind(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	s.Add(r)
	b := wire(s, -300, 0, -100, 0)
	nc := sch.NewNoConnect(geom.Pt(100, 0))
	s.Add(nc)

	f.Selection().Add(r)
	view.Cursor = geom.Pt(0, 0)
	tool := NewMoveTool(f, DefaultConfig())
	assert.Equal(t, StateCommitted, dragTo(t, tool, ModeMove, geom.Pt(0, 50)))

	assert.Equal(t, geom.Pt(0, 50), r.Position())
	assert.Equal(t, geom.Pt(100, 50), nc.Position())
	assert.Equal(t, geom.Pt(-100, 0), b.End())
	assert.Len(t, s.Wires(), 1)

	desc, ok := f.History().Undo()
	require.True(t, ok)
	assert.Equal(t, "Move", desc)
	assert.Equal(t, geom.Pt(0, 0), r.Position())
	assert.Equal(t, geom.Pt(100, 0), nc.Position())
}

func TestMoveNewItemFromReferencePoint(t *testing.T) {
	f, s, view := newTestFrame()
	r := newResistor("R1", 0, 0)
	r.SetFlags(sch.IsNew)
	s.Add(r)

	sel := f.Selection()
	sel.Add(r)
	sel.SetReferencePoint(geom.Pt(0, 0))
	view.Cursor = geom.Pt(37, 12)
	tool := NewMoveTool(f, DefaultConfig())
	require.True(t, tool.Begin(ModeMove, false))
	assert.Equal(t, geom.Pt(0, 0), view.Cursor, "cursor warps to the reference point")

	tool.OnEvent(Motion(geom.Pt(100, 100)))
	assert.Equal(t, StateCommitted, tool.OnEvent(Event{Type: EventDrop}))
	assert.Equal(t, geom.Pt(100, 100), r.Position())
	assert.False(t, r.IsNew())

	_, ok := f.History().Undo()
	require.True(t, ok)
	assert.False(t, s.Contains(r))
}

func TestCancelRemovesNewItem(t *testing.T) {
	f, s, _ := newTestFrame()
	r := newResistor("R1", 0, 0)
	r.SetFlags(sch.IsNew)
	s.Add(r)
	f.Selection().Add(r)

	tool := NewMoveTool(f, DefaultConfig())
	require.True(t, tool.Begin(ModeMove, false))
	tool.OnEvent(Event{Type: EventCancel})
	assert.False(t, s.Contains(r))
	assert.True(t, f.Selection().Empty())
}

func TestSplitMove(t *testing.T) {
	tests := []struct {
		name          string
		offset, delta geom.Point
		want          []geom.Point
	}{
		{"both axes", geom.Pt(0, 0), geom.Pt(50, -30), []geom.Point{geom.Pt(50, 0), geom.Pt(0, -30)}},
		{"crosses origin", geom.Pt(20, 0), geom.Pt(-50, 0), []geom.Point{geom.Pt(-20, 0), geom.Pt(-30, 0)}},
		{"back to origin", geom.Pt(20, 0), geom.Pt(-20, 0), []geom.Point{geom.Pt(-20, 0)}},
		{"from negative to origin", geom.Pt(-20, 0), geom.Pt(20, 0), []geom.Point{geom.Pt(20, 0)}},
		{"none", geom.Pt(10, 10), geom.Pt(0, 0), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitMove(tt.offset, tt.delta))
		})
	}
}

func TestOrthoLineDragPrefersZeroLengthLine(t *testing.T) {
	f, s, _ := newTestFrame()
	line := wire(s, 0, 0, 100, 0)
	line.StoreAngle()
	line.SetFlags(sch.Selected | sch.EndPoint)
	line.SetEnd(geom.Pt(0, 0))

	other := wire(s, 0, 0, 0, 0)
	other.SetStoredAngle(0)

	tool := NewMoveTool(f, DefaultConfig())
	tool.mode = ModeDrag
	tool.screen = s
	tool.commit = f.NewCommit()
	tool.connections[line] = []sch.Item{other}

	tool.orthoLineDrag(line, geom.Pt(-100, 0))
	assert.Equal(t, geom.Pt(0, 0), line.Start())
	assert.Equal(t, geom.Pt(0, 0), other.Start())
	assert.Equal(t, geom.Pt(0, 0), other.End())
	assert.Empty(t, tool.newLines)
}

func TestOrthoLineDragStretchesParallelWire(t *testing.T) {
	f, s, _ := newTestFrame()
	line := wire(s, 0, 0, 100, 0)
	line.StoreAngle()
	line.SetFlags(sch.Selected | sch.EndPoint)
	line.SetEnd(geom.Pt(0, 0))

	other := wire(s, -50, 0, 0, 0)

	tool := NewMoveTool(f, DefaultConfig())
	tool.mode = ModeDrag
	tool.screen = s
	tool.commit = f.NewCommit()
	tool.connections[line] = []sch.Item{other}

	tool.orthoLineDrag(line, geom.Pt(-100, 0))
	assert.Equal(t, geom.Pt(-100, 0), other.End())
	assert.Equal(t, geom.Pt(-100, 0), line.Start())
	assert.Empty(t, tool.newLines)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "Following", StateFollowing.String())
	assert.Equal(t, "State(42)", State(42).String())
	assert.Equal(t, "drag", ModeDrag.String())
	assert.Equal(t, "context-menu", EventContextMenu.String())
	assert.Equal(t, "EventType(9)", EventType(9).String())
	assert.True(t, StateArmed.Active())
	assert.False(t, StateCommitted.Active())
}

func TestParseLineMode(t *testing.T) {
	for in, want := range map[string]LineMode{"": LineModeOrthogonal, "90": LineModeOrthogonal, "free": LineModeFree} {
		got, err := ParseLineMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLineMode("45")
	assert.Error(t, err)
}
