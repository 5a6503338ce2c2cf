package tool

import (
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// labelAnchor records a label riding a partially dragged wire.
type labelAnchor struct {
	wire   *sch.Wire
	origin geom.Point
}

// connectedItems returns the items connected to item at p. An unselected
// junction at p stands for everything else there, unless a symbol also
// connects at p. Wires whose moving end is at p are left out.
func (t *MoveTool) connectedItems(item sch.Item, p geom.Point) []sch.Item {
	near := t.screen.Overlapping(item.BoundingBox())

	var junction, symbol sch.Item
	for _, it := range near {
		if it == item || it.HasFlag(sch.StructDeleted) || !it.IsConnected(p) {
			continue
		}
		switch it.Kind() {
		case sch.KindJunction:
			if !it.IsSelected() {
				junction = it
			}
		case sch.KindSymbol:
			symbol = it
		}
	}
	switch {
	case symbol != nil && junction != nil:
		return []sch.Item{symbol}
	case junction != nil:
		return []sch.Item{junction}
	}

	var out []sch.Item
	for _, test := range near {
		if test == item || test.HasFlag(sch.StructDeleted) || !test.CanConnect(item) {
			continue
		}
		switch v := test.(type) {
		case *sch.Wire:
			if (v.HasFlag(sch.StartPoint) && p == v.Start()) || (v.HasFlag(sch.EndPoint) && p == v.End()) {
				continue
			}
			if v.IsConnected(p) {
				out = append(out, v)
			} else if l, ok := item.(*sch.Label); ok && v.HitTest(l.Position(), 1) {
				out = append(out, v)
			}
		case *sch.Sheet, *sch.Symbol, *sch.Junction, *sch.NoConnect:
			if test.IsConnected(p) {
				out = append(out, test)
			}
		case *sch.Label:
			if w, ok := item.(*sch.Wire); ok && w.HitTest(v.Position(), 1) {
				out = append(out, v)
			}
		}
	}
	return out
}

// movesWith reports whether companion c of a plain move follows item:
// labels on a moved wire and no-connects on a moved item's pins do.
func movesWith(item, c sch.Item) bool {
	if c.IsSelected() {
		return false
	}
	switch c.Kind() {
	case sch.KindNoConnect:
		return true
	case sch.KindLabel, sch.KindGlobalLabel, sch.KindHierLabel:
		w, ok := item.(*sch.Wire)
		return ok && w.HasFlag(sch.StartPoint) && w.HasFlag(sch.EndPoint)
	}
	return false
}

// connectedDragItems appends to list the items that must follow selected
// at p during a drag. Wire ends at p are grabbed; items that cannot stretch
// get a new zero-length wire to the moving item; a label taken off the body
// of a wire splits it.
func (t *MoveTool) connectedDragItems(selected sch.Item, p geom.Point, list []sch.Item) []sch.Item {
	var connectable []sch.Item
	for _, it := range t.screen.Overlapping(selected.BoundingBox()) {
		if it == selected || it.HasFlag(sch.StructDeleted) ||
			(it.Kind() != sch.KindWire && it.IsSelected()) || !it.CanConnect(selected) {
			continue
		}
		connectable = append(connectable, it)
	}

	unselectedJunction := false
	for _, it := range connectable {
		if it.Kind() == sch.KindJunction && it.IsConnected(p) && !it.IsSelected() {
			unselectedJunction = true
			break
		}
	}

	var newWire *sch.Wire
	for _, test := range connectable {
		switch v := test.(type) {
		case *sch.Wire:
			if unselectedJunction {
				continue
			}
			switch {
			case v.Start() == p:
				if !v.HasFlag(sch.StartPoint) {
					v.SetFlags(sch.StartPoint | sch.SelectedByDrag)
					list = append(list, v)
					list = t.captureLabelsAlong(v, list)
				}
			case v.End() == p:
				if !v.HasFlag(sch.EndPoint) {
					v.SetFlags(sch.EndPoint | sch.SelectedByDrag)
					list = append(list, v)
					list = t.captureLabelsAlong(v, list)
				}
			default:
				if !selected.Kind().IsLabel() || newWire != nil || v.IsSelected() || !v.HitTest(p, 1) {
					continue
				}
				newWire = t.splitUnderLabel(v, selected, p)
				list = append(list, newWire)
			}

		case *sch.Sheet:
			for _, pin := range v.Pins() {
				if pin.IsConnected(p) && newWire == nil {
					newWire = t.newDragWire(pin, selected, p)
					list = append(list, newWire)
				}
			}

		case *sch.Symbol, *sch.Junction:
			if test.IsConnected(p) && newWire == nil {
				newWire = t.newDragWire(test, selected, p)
				list = append(list, newWire)
			}

		case *sch.NoConnect:
			if !v.HasFlag(sch.SelectedByDrag) && v.IsConnected(p) {
				v.SetFlags(sch.SelectedByDrag)
				list = append(list, v)
			}

		case *sch.Label:
			if v.HasFlag(sch.SelectedByDrag) {
				continue
			}
			if w, ok := selected.(*sch.Wire); ok {
				if !w.HitTest(v.Position(), 1) {
					continue
				}
				// Labels on the fixed end of a wire stay put.
				if onFixedEnd(w, v.Position()) {
					continue
				}
				v.SetFlags(sch.SelectedByDrag)
				list = append(list, v)
				if !w.HasFlag(sch.StartPoint) || !w.HasFlag(sch.EndPoint) {
					t.labels[v] = labelAnchor{wire: w, origin: v.Position()}
				}
			} else if v.IsConnected(p) && newWire == nil {
				newWire = t.newDragWire(v, selected, p)
				list = append(list, newWire)
			}
		}
	}
	return list
}

// captureLabelsAlong grabs the labels sitting on line, which has one end
// dragged, so they can be re-projected onto it. A label on the fixed end
// stays and holds that end.
func (t *MoveTool) captureLabelsAlong(line *sch.Wire, list []sch.Item) []sch.Item {
	for _, it := range t.screen.Overlapping(line.BoundingBox()) {
		l, ok := it.(*sch.Label)
		if !ok || l.IsSelected() || l.HasFlag(sch.SelectedByDrag) || onFixedEnd(line, l.Position()) {
			continue
		}
		if l.CanConnect(line) && line.HitTest(l.Position(), 1) {
			l.SetFlags(sch.SelectedByDrag)
			list = append(list, l)
			t.labels[l] = labelAnchor{wire: line, origin: l.Position()}
		}
	}
	return list
}

// onFixedEnd reports whether p is an end of w that is not being dragged.
func onFixedEnd(w *sch.Wire, p geom.Point) bool {
	return (!w.HasFlag(sch.StartPoint) && p == w.Start()) ||
		(!w.HasFlag(sch.EndPoint) && p == w.End())
}

// newDragWire places a zero-length wire at p between the fixed item and
// the moving one. Its start follows the moving item.
func (t *MoveTool) newDragWire(fixed, selected sch.Item, p geom.Point) *sch.Wire {
	layer := sch.LayerWire
	if w, ok := fixed.(*sch.Wire); ok && w.IsBus() {
		layer = sch.LayerBus
	}
	if w, ok := selected.(*sch.Wire); ok && w.IsBus() {
		layer = sch.LayerBus
	}
	nw := sch.NewWire(p, p, layer)
	nw.SetFlags(sch.IsNew | sch.StartPoint)
	t.screen.Add(nw)
	t.addNewLine(nw)
	return nw
}

// splitUnderLabel breaks line at p, where the dragged label sits, and
// returns the new wire the label drags out of the junction left behind.
func (t *MoveTool) splitUnderLabel(line *sch.Wire, label sch.Item, p geom.Point) *sch.Wire {
	if !line.IsNew() {
		t.commit.Modify(line)
	}
	second := line.BreakAt(p)
	line.SetFlags(sch.IsChanged | sch.IsBroken)
	second.SetFlags(sch.IsNew | sch.IsBroken)
	t.screen.Add(second)
	t.commit.Added(second)

	nw := t.newDragWire(line, label, p)
	nw.SetStoredAngle(line.Angle().Add(90))
	t.connections[nw] = []sch.Item{line, second}

	j := sch.NewJunction(p)
	j.SetFlags(sch.IsNew)
	t.screen.Add(j)
	t.commit.Added(j)
	return nw
}
