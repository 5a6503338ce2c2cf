package tool

import (
	"log"
	"sort"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// MoveTool moves or drags the host's selection. A session is an explicit
// state machine: Begin arms it, OnEvent advances it, and a drop or cancel
// returns it to Idle with the outcome as the event's result.
type MoveTool struct {
	host Host
	cfg  Config

	state   State
	mode    Mode
	isSlice bool

	screen *sch.Screen
	commit sch.Commit

	// items move with the cursor: the selection plus drag additions.
	items     []sch.Item
	additions map[sch.Item]struct{}

	cursor     geom.Point
	moveOffset geom.Point

	newLines     []*sch.Wire
	newLineSet   map[*sch.Wire]struct{}
	changedLines map[*sch.Wire]struct{}
	connections  map[*sch.Wire][]sch.Item
	labels       map[*sch.Label]labelAnchor
	pulled       map[*sch.Wire]sch.Flags

	xBends, yBends int
	autoPanPaused  bool
}

// NewMoveTool returns an idle tool working for host.
func NewMoveTool(host Host, cfg Config) *MoveTool {
	t := &MoveTool{host: host, cfg: cfg}
	t.reset()
	return t
}

// State reports the phase of the current session.
func (t *MoveTool) State() State { return t.state }

// Mode reports the mode of the current or last session.
func (t *MoveTool) Mode() Mode { return t.mode }

func (t *MoveTool) Config() Config     { return t.cfg }
func (t *MoveTool) SetConfig(c Config) { t.cfg = c }

// Offset is the total displacement applied in the current session.
func (t *MoveTool) Offset() geom.Point { return t.moveOffset }

func (t *MoveTool) reset() {
	t.screen = nil
	t.commit = nil
	t.items = nil
	t.additions = make(map[sch.Item]struct{})
	t.moveOffset = geom.Point{}
	t.newLines = nil
	t.newLineSet = make(map[*sch.Wire]struct{})
	t.changedLines = make(map[*sch.Wire]struct{})
	t.connections = make(map[*sch.Wire][]sch.Item)
	t.labels = make(map[*sch.Label]labelAnchor)
	t.pulled = make(map[*sch.Wire]sch.Flags)
	t.xBends, t.yBends = 0, 0
	t.autoPanPaused = false
}

// Begin starts a session over the current selection. isSlice marks a drag
// of wire ends split off earlier, which keeps dangling pieces. While a
// session is active Begin only refreshes it. Begin reports false when there
// is nothing to move.
func (t *MoveTool) Begin(mode Mode, isSlice bool) bool {
	if t.state.Active() {
		t.OnEvent(Event{Type: EventRefresh})
		return true
	}
	t.mode, t.isSlice = mode, isSlice
	return t.arm()
}

// OnEvent advances the session and returns the resulting state. A drop
// returns StateCommitted and a cancel StateCancelled; the tool is Idle
// again afterwards.
func (t *MoveTool) OnEvent(ev Event) State {
	if !t.state.Active() {
		return t.state
	}
	switch ev.Type {
	case EventMotion:
		t.state = StateFollowing
		if t.autoPanPaused {
			t.host.View().SetAutoPan(true)
			t.autoPanPaused = false
		}
		t.follow(ev.Pos)
	case EventRefresh:
		t.follow(t.host.View().CursorPosition())
	case EventDrop:
		return t.finish(true)
	case EventCancel:
		return t.finish(false)
	case EventActivate:
		// Another tool asked for the canvas; only an unmoved session yields.
		if t.state == StateArmed {
			return t.finish(false)
		}
	case EventContextMenu:
		t.host.View().SetAutoPan(false)
		t.autoPanPaused = true
	}
	return t.state
}

func (t *MoveTool) arm() bool {
	sel := t.host.Selection()
	if sel == nil || sel.Empty() {
		return false
	}
	t.reset()
	t.screen = t.host.Screen()
	t.commit = t.host.NewCommit()

	for _, it := range t.screen.Items() {
		it.ClearFlags(sch.SelectedByDrag | sch.IsMoving | sch.IsChanged | sch.IsBroken)
		if !it.IsSelected() {
			it.ClearFlags(sch.StartPoint | sch.EndPoint)
		}
	}
	selected := sel.Items()
	for _, it := range selected {
		if w, ok := it.(*sch.Wire); ok && !w.HasFlag(sch.StartPoint|sch.EndPoint) {
			w.SetFlags(sch.StartPoint | sch.EndPoint)
		}
		if !it.IsNew() {
			t.commit.Modify(it)
		}
	}

	var additions []sch.Item
	for _, it := range selected {
		for _, p := range movePoints(it) {
			if t.mode == ModeDrag {
				additions = t.connectedDragItems(it, p, additions)
				continue
			}
			for _, c := range t.connectedItems(it, p) {
				if movesWith(it, c) && !c.HasFlag(sch.SelectedByDrag) {
					c.SetFlags(sch.SelectedByDrag)
					additions = append(additions, c)
				}
			}
		}
	}

	t.items = selected
	seen := make(map[sch.Item]struct{}, len(selected)+len(additions))
	for _, it := range selected {
		seen[it] = struct{}{}
	}
	for _, it := range additions {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		t.additions[it] = struct{}{}
		t.items = append(t.items, it)
		if !it.IsNew() {
			t.commit.Modify(it)
		}
	}

	if t.mode == ModeDrag {
		for _, it := range t.items {
			w, ok := it.(*sch.Wire)
			if !ok {
				continue
			}
			w.StoreAngle()
			for _, p := range w.ConnectionPoints() {
				t.connections[w] = append(t.connections[w], t.connectedItems(w, p)...)
			}
		}
	}

	view := t.host.View()
	t.cursor = t.host.Grid().BestSnapAnchor(view.CursorPosition(), t.items)
	if ref, ok := sel.ReferencePoint(); ok && sel.IsNew() {
		t.cursor = ref
	}
	if wv, ok := view.(CursorWarper); ok && t.cfg.WarpCursor {
		wv.WarpCursor(t.cursor)
	}
	view.SetAutoPan(true)

	t.screen.TestDanglingEnds(nil, nil)
	t.state = StateArmed
	log.Printf("%s: armed with %d items (%d attached)", t.mode, len(t.items), len(t.additions))
	return true
}

// movePoints returns the points at which item's companions are searched:
// the anchor of a label, the selected ends of a wire, and the connection
// points of anything else.
func movePoints(item sch.Item) []geom.Point {
	switch v := item.(type) {
	case *sch.Label:
		return []geom.Point{v.Position()}
	case *sch.Wire:
		return v.SelectedPoints()
	}
	return item.ConnectionPoints()
}

func (t *MoveTool) follow(pos geom.Point) {
	cursor := t.host.Grid().BestSnapAnchor(pos, t.items)
	delta := cursor.Sub(t.cursor)
	t.cursor = cursor
	if !delta.IsZero() {
		t.tick(delta)
	}
	t.screen.TestDanglingEnds(isMoving, nil)
	t.host.View().Refresh()
}

func isMoving(it sch.Item) bool {
	return it.HasFlag(sch.IsMoving | sch.SelectedByDrag)
}

func (t *MoveTool) tick(delta geom.Point) {
	for _, d := range splitMove(t.moveOffset, delta) {
		t.moveOffset = t.moveOffset.Add(d)
		for _, it := range t.sortedItems(d) {
			if p := it.Parent(); p != nil && p.IsSelected() {
				continue
			}
			t.moveItem(it, d)
			w, ok := it.(*sch.Wire)
			if ok && t.mode == ModeDrag && t.cfg.LineMode != LineModeFree &&
				w.HasFlag(sch.StartPoint) != w.HasFlag(sch.EndPoint) {
				t.orthoLineDrag(w, d)
			}
		}
	}
}

// splitMove decomposes delta into axis moves. An axis whose accumulated
// offset would change sign first returns to zero.
func splitMove(offset, delta geom.Point) []geom.Point {
	var moves []geom.Point
	axis := func(off, d int, mk func(int) geom.Point) {
		if d == 0 {
			return
		}
		if (off < 0) != (off+d < 0) {
			if off != 0 {
				moves = append(moves, mk(-off))
			}
			if off+d != 0 {
				moves = append(moves, mk(d+off))
			}
			return
		}
		moves = append(moves, mk(d))
	}
	axis(offset.X, delta.X, func(v int) geom.Point { return geom.Pt(v, 0) })
	axis(offset.Y, delta.Y, func(v int) geom.Point { return geom.Pt(0, v) })
	return moves
}

// sortedItems orders the moving items for one axis move: wires first, then
// by kind, then leading items first along the move.
func (t *MoveTool) sortedItems(d geom.Point) []sch.Item {
	out := append([]sch.Item(nil), t.items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		aw, bw := a.Kind() == sch.KindWire, b.Kind() == sch.KindWire
		if aw != bw {
			return aw
		}
		if a.Kind() != b.Kind() {
			return a.Kind() < b.Kind()
		}
		pa, pb := a.Position(), b.Position()
		if d.X != 0 && pa.X != pb.X {
			return (pa.X > pb.X) == (d.X > 0)
		}
		if d.Y != 0 && pa.Y != pb.Y {
			return (pa.Y > pb.Y) == (d.Y > 0)
		}
		return a.ID().String() < b.ID().String()
	})
	return out
}

// moveItem applies d to item. A dragged wire moves only its flagged ends
// and a label riding a stretched wire is re-projected onto it.
func (t *MoveTool) moveItem(item sch.Item, d geom.Point) {
	switch v := item.(type) {
	case *sch.Wire:
		if t.mode == ModeMove {
			v.Move(d)
			break
		}
		if v.HasFlag(sch.StartPoint) {
			v.MoveStart(d)
		}
		if v.HasFlag(sch.EndPoint) {
			v.MoveEnd(d)
		}
	case *sch.Label:
		if a, ok := t.labels[v]; ok {
			v.SetPosition(geom.NearestPoint(a.wire.Start(), a.wire.End(), a.origin))
			break
		}
		v.Move(d)
	default:
		item.Move(d)
	}
	item.SetFlags(sch.IsMoving)
}

func (t *MoveTool) addNewLine(w *sch.Wire) {
	if _, ok := t.newLineSet[w]; ok {
		return
	}
	t.newLineSet[w] = struct{}{}
	t.newLines = append(t.newLines, w)
}

func (t *MoveTool) dropNewLine(w *sch.Wire) {
	if _, ok := t.newLineSet[w]; !ok {
		return
	}
	delete(t.newLineSet, w)
	for i, nl := range t.newLines {
		if nl == w {
			t.newLines = append(t.newLines[:i], t.newLines[i+1:]...)
			break
		}
	}
	delete(t.connections, w)
}

// markChanged snapshots a wire that was not part of the selection before
// the session first edits it.
func (t *MoveTool) markChanged(w *sch.Wire) {
	if _, ok := t.newLineSet[w]; ok {
		return
	}
	if _, ok := t.changedLines[w]; ok {
		return
	}
	if !w.IsNew() {
		t.commit.Modify(w)
	}
	t.changedLines[w] = struct{}{}
}

func (t *MoveTool) finish(keep bool) State {
	moved := !t.moveOffset.IsZero() || t.host.Selection().IsNew()
	if keep && moved {
		t.drop()
	} else {
		t.cancel()
	}
	t.host.View().SetAutoPan(false)
	out := StateCancelled
	if keep {
		out = StateCommitted
	}
	log.Printf("%s: %s at offset %v", t.mode, out, t.moveOffset)
	t.state = StateIdle
	t.reset()
	return out
}

func (t *MoveTool) drop() {
	s := t.screen
	sel := t.host.Selection()

	for _, w := range t.newLines {
		if s.Contains(w) {
			sch.ClearEditFlags(w)
			t.commit.Added(w)
		}
	}
	for w := range t.changedLines {
		sch.ClearEditFlags(w)
	}
	for _, it := range sel.Items() {
		if it.IsNew() && s.Contains(it) {
			t.commit.Added(it)
		}
	}

	touched := append([]sch.Item(nil), t.items...)
	for _, w := range t.newLines {
		touched = append(touched, w)
	}
	for _, it := range touched {
		s.Update(it)
	}

	TrimOverlappingWires(t.commit, s, touched)
	AddJunctionsIfNeeded(t.commit, s, live(s, touched))
	if t.mode == ModeDrag && !t.isSlice {
		t.trimDanglingLines()
	}
	if t.cfg.AutoRotateLabels {
		if r, ok := t.host.(LabelRotator); ok {
			for _, it := range t.items {
				if l, ok := it.(*sch.Label); ok && s.Contains(l) {
					r.RotateLabel(s, l)
				}
			}
		}
	}
	CleanUp(t.commit, s, sel)

	t.releaseItems()
	if t.mode == ModeDrag {
		t.commit.Push("Drag")
	} else {
		t.commit.Push("Move")
	}
	if r, ok := t.host.(Recalculator); ok {
		r.RecalculateConnections()
	}
}

// live filters items down to those still on s.
func live(s *sch.Screen, items []sch.Item) []sch.Item {
	out := items[:0:0]
	for _, it := range items {
		if s.Contains(sch.TopLevel(it)) {
			out = append(out, it)
		}
	}
	return out
}

func (t *MoveTool) cancel() {
	sel := t.host.Selection()
	for _, w := range t.newLines {
		t.screen.Remove(w)
	}
	t.commit.Revert()
	for _, it := range sel.Items() {
		if it.IsNew() {
			t.screen.Remove(it)
			sel.Remove(it)
		}
	}
	t.releaseItems()
	t.host.View().Refresh()
}

// releaseItems clears the session flags of moved items and drops the
// drag additions from the selection state. Wires whose end was pulled out
// get their selected end back.
func (t *MoveTool) releaseItems() {
	for _, it := range t.items {
		it.ClearFlags(sch.IsMoving | sch.SelectedByDrag | sch.IsNew)
		if _, ok := t.additions[it]; ok && !it.IsSelected() {
			it.ClearFlags(sch.StartPoint | sch.EndPoint)
		}
	}
	for w, end := range t.pulled {
		if w.IsSelected() {
			w.SetFlags(end)
		}
	}
}

// trimDanglingLines removes pieces of wires split during the session that
// no longer connect to anything at one end.
func (t *MoveTool) trimDanglingLines() {
	s := t.screen
	CleanUp(t.commit, s, t.host.Selection())

	var danglers []*sch.Wire
	s.TestDanglingEnds(nil, func(it sch.Item) {
		w, ok := it.(*sch.Wire)
		if ok && w.HasFlag(sch.IsBroken) && w.IsDangling() && !w.IsSelected() {
			danglers = append(danglers, w)
		}
	})
	for _, w := range danglers {
		w.SetFlags(sch.StructDeleted)
		s.Remove(w)
		t.commit.Removed(w)
	}
}
