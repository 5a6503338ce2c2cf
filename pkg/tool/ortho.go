package tool

import (
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// effectiveAngle is the direction of w, or its stored direction once it has
// shrunk to zero length.
func effectiveAngle(w *sch.Wire) (geom.Angle, bool) {
	if !w.IsNull() {
		return w.Angle(), true
	}
	return w.StoredAngle()
}

// touches reports whether c connects at p: an end for wires, the
// connection points for everything else.
func touches(c sch.Item, p geom.Point) bool {
	if w, ok := c.(*sch.Wire); ok {
		return w.IsEndPoint(p)
	}
	return c.IsConnected(p)
}

// orthoLineDrag keeps line orthogonal after its selected end moved by d.
// The unselected end follows d, and whatever held it is bridged: a parallel
// wire there stretches, a junction gets one new wire and any other item
// gets a two-wire bend. A selected wire end with nothing at the other end
// is pulled out of the wire instead, leaving the wire in place.
func (t *MoveTool) orthoLineDrag(line *sch.Wire, d geom.Point) {
	dir := geom.AngleOf(d)
	if !line.IsNull() && dir.IsParallelTo(line.Angle()) {
		return
	}

	unselected := line.Start()
	if line.HasFlag(sch.StartPoint) {
		unselected = line.End()
	}

	var (
		found      *sch.Wire
		junction   sch.Item
		anyHolder  bool
		preferLine bool
	)
	lineStored, lineHasStored := line.StoredAngle()

	for _, c := range t.connections[line] {
		if !t.screen.Contains(c) || !touches(c, unselected) {
			continue
		}
		if c.Kind() != sch.KindWire && (c.IsSelected() || c.HasFlag(sch.SelectedByDrag)) {
			continue
		}
		anyHolder = true
		switch v := c.(type) {
		case *sch.Wire:
			if found != nil || v == line {
				continue
			}
			a, ok := effectiveAngle(v)
			if !ok || !a.IsParallelTo(dir) {
				continue
			}
			if v.IsNull() && line.IsNull() && lineHasStored && lineStored.IsParallelTo(dir) {
				preferLine = true
				continue
			}
			found = v
		case *sch.Junction:
			junction = v
		}
	}

	var off geom.Point
	switch {
	case found != nil:
		t.stretch(found, unselected, d)
	case preferLine:
		// Both are zero-length along the move; the line itself grows.
		return
	case junction != nil:
		nw := t.bendWire(line, unselected, unselected.Add(d))
		nw.SetStoredAngle(dir)
		t.connections[nw] = []sch.Item{junction}
		t.connections[line] = []sch.Item{nw}
	case anyHolder:
		off = t.bend(line, unselected, d)
	case line.IsSelected() && !line.IsNew() && !t.isNewLine(line):
		t.pullOut(line, d)
		return
	}

	if line.HasFlag(sch.StartPoint) {
		line.MoveEnd(off.Add(d))
	} else {
		line.MoveStart(off.Add(d))
	}
}

// pullOut puts the selected end of line back and carries it on a new wire
// along d. The new wire takes over the drag; line keeps its flag for the
// end of the session.
func (t *MoveTool) pullOut(line *sch.Wire, d geom.Point) {
	var from geom.Point
	if line.HasFlag(sch.StartPoint) {
		line.MoveStart(d.Neg())
		from = line.Start()
		t.pulled[line] = sch.StartPoint
		line.ClearFlags(sch.StartPoint)
	} else {
		line.MoveEnd(d.Neg())
		from = line.End()
		t.pulled[line] = sch.EndPoint
		line.ClearFlags(sch.EndPoint)
	}

	nw := t.bendWire(line, from, from.Add(d))
	nw.SetFlags(sch.EndPoint | sch.SelectedByDrag)
	nw.SetStoredAngle(geom.AngleOf(d))
	t.connections[nw] = []sch.Item{line}
	t.additions[nw] = struct{}{}
	t.items = append(t.items, nw)
}

// stretch moves the end of w at p by d, then merges it with a new
// collinear wire it continues, if both were created this session.
func (t *MoveTool) stretch(w *sch.Wire, p, d geom.Point) {
	t.markChanged(w)
	if w.Start() == p {
		w.MoveStart(d)
	} else {
		w.MoveEnd(d)
	}

	prev := t.connections[w]
	if len(prev) != 1 {
		return
	}
	bend, ok := prev[0].(*sch.Wire)
	if !ok || !t.isNewLine(w) || !t.isNewLine(bend) || !t.screen.Contains(bend) {
		return
	}
	far := w.OtherEnd(p.Add(d))
	if !bend.IsEndPoint(far) || !geom.Collinear(w.Start(), w.End(), bend.Start(), bend.End()) {
		return
	}
	merged := bend.OtherEnd(far)
	if w.Start() == far {
		w.SetStart(merged)
	} else {
		w.SetEnd(merged)
	}
	t.connections[w] = t.connections[bend]
	t.screen.Remove(bend)
	t.dropNewLine(bend)
}

// bend bridges the unselected end of line, held at p, with two new wires:
// one along line toward its selected end, fanned out by one grid step per
// earlier bend on the same move axis, and one along d. It returns the
// fan-out.
func (t *MoveTool) bend(line *sch.Wire, p, d geom.Point) geom.Point {
	holders := t.connections[line]
	step := t.host.Grid().Step()
	toward := line.OtherEnd(p).Sub(p)

	var off geom.Point
	if d.X != 0 {
		off = geom.Pt(0, fanSign(toward.Y)*t.xBends*step)
		t.xBends++
	} else {
		off = geom.Pt(fanSign(toward.X)*t.yBends*step, 0)
		t.yBends++
	}

	first := t.bendWire(line, p, p.Add(off))
	if a, ok := line.StoredAngle(); ok {
		first.SetStoredAngle(a)
	} else {
		first.SetStoredAngle(line.Angle())
	}
	second := t.bendWire(line, p.Add(off), p.Add(off).Add(d))
	second.SetStoredAngle(geom.AngleOf(d))

	t.connections[first] = holders
	t.connections[second] = []sch.Item{first}
	t.connections[line] = []sch.Item{second}
	return off
}

func fanSign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func (t *MoveTool) bendWire(like *sch.Wire, a, b geom.Point) *sch.Wire {
	nw := sch.NewWire(a, b, like.Layer())
	nw.Stroke = like.Stroke
	nw.SetFlags(sch.IsNew)
	t.screen.Add(nw)
	t.addNewLine(nw)
	return nw
}

func (t *MoveTool) isNewLine(w *sch.Wire) bool {
	_, ok := t.newLineSet[w]
	return ok
}
