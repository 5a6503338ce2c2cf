package tool

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// BreakSegment splits w at p, adding the far half to s. Both halves are
// flagged broken. It returns nil when p is an end of w or not on it.
func BreakSegment(c sch.Commit, s *sch.Screen, w *sch.Wire, p geom.Point) *sch.Wire {
	if w.IsEndPoint(p) || !geom.OnSegment(w.Start(), w.End(), p) {
		return nil
	}
	c.Modify(w)
	nw := w.BreakAt(p)
	w.SetFlags(sch.IsChanged | sch.IsBroken)
	nw.SetFlags(sch.IsNew | sch.IsBroken)
	s.Add(nw)
	c.Added(nw)
	return nw
}

// BreakSegments splits every wire passing through p without ending there.
func BreakSegments(c sch.Commit, s *sch.Screen, p geom.Point) bool {
	var wires []*sch.Wire
	for _, it := range s.At(p) {
		if w, ok := it.(*sch.Wire); ok && !w.HasFlag(sch.StructDeleted) &&
			!w.IsEndPoint(p) && geom.OnSegment(w.Start(), w.End(), p) {
			wires = append(wires, w)
		}
	}
	for _, w := range wires {
		BreakSegment(c, s, w, p)
	}
	return len(wires) > 0
}

// BreakSegmentsOnJunctions splits wires at every junction lying on them.
func BreakSegmentsOnJunctions(c sch.Commit, s *sch.Screen) bool {
	seen := make(map[geom.Point]struct{})
	var pts []geom.Point
	for _, it := range s.OfKind(sch.KindJunction) {
		p := it.Position()
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			pts = append(pts, p)
		}
	}
	broken := false
	for _, p := range pts {
		if BreakSegments(c, s, p) {
			broken = true
		}
	}
	return broken
}

// AddJunction places a junction at p and splits the wires through it.
func AddJunction(c sch.Commit, s *sch.Screen, p geom.Point) *sch.Junction {
	j := sch.NewJunction(p)
	s.Add(j)
	c.Added(j)
	BreakSegments(c, s, p)
	return j
}

// AddJunctionsIfNeeded adds the junctions that connections of items now
// require.
func AddJunctionsIfNeeded(c sch.Commit, s *sch.Screen, items []sch.Item) []*sch.Junction {
	var out []*sch.Junction
	for _, p := range s.NeededJunctions(items) {
		out = append(out, AddJunction(c, s, p))
	}
	return out
}

// TrimWire removes the part of a wire lying between a and b. Whole wires
// and wires being moved are left alone.
func TrimWire(c sch.Commit, s *sch.Screen, a, b geom.Point) bool {
	if a == b {
		return false
	}
	var wires []*sch.Wire
	for _, it := range s.Overlapping(geom.BoxAround(a, b)) {
		if w, ok := it.(*sch.Wire); ok && w.Layer() == sch.LayerWire {
			wires = append(wires, w)
		}
	}
	for _, w := range wires {
		if w.HasFlag(sch.StructDeleted | sch.IsMoving) {
			continue
		}
		if !geom.OnSegment(w.Start(), w.End(), a) || !geom.OnSegment(w.Start(), w.End(), b) {
			continue
		}
		if (w.Start() == a && w.End() == b) || (w.Start() == b && w.End() == a) {
			continue
		}

		line := w
		if nw := BreakSegment(c, s, line, a); nw != nil && geom.OnSegment(nw.Start(), nw.End(), b) {
			line = nw
		}
		if nw := BreakSegment(c, s, line, b); nw != nil && geom.OnSegment(nw.Start(), nw.End(), a) {
			line = nw
		}
		line.SetFlags(sch.StructDeleted)
		s.Remove(line)
		c.Removed(line)
		return true
	}
	return false
}

// TrimOverlappingWires removes wire sections shorted between two
// connection points of one item of items.
func TrimOverlappingWires(c sch.Commit, s *sch.Screen, items []sch.Item) {
	if len(items) == 0 {
		return
	}
	box := items[0].BoundingBox()
	for _, it := range items[1:] {
		box = box.Merge(it.BoundingBox())
	}
	var lines []*sch.Wire
	for _, it := range s.Overlapping(box) {
		if w, ok := it.(*sch.Wire); ok {
			lines = append(lines, w)
		}
	}

	for _, it := range items {
		if it.Kind() == sch.KindWire || it.HasFlag(sch.StructDeleted) {
			continue
		}
		pts := it.ConnectionPoints()
		for _, line := range lines {
			if line.HasFlag(sch.StructDeleted) {
				continue
			}
			var on []geom.Point
			for _, p := range pts {
				if geom.OnSegment(line.Start(), line.End(), p) {
					on = append(on, p)
				}
				if len(on) > 2 {
					break
				}
			}
			if len(on) == 2 {
				TrimWire(c, s, on[0], on[1])
			}
		}
	}
}

// CleanUp splits wires on junctions, then removes redundant junctions,
// duplicate no-connects, zero-length and identical wires, and merges
// collinear overlapping wires until nothing changes. Removed items leave
// sel; merged wires of selected wires join it. sel may be nil.
func CleanUp(c sch.Commit, s *sch.Screen, sel *Selection) {
	var removed []sch.Item
	changed := true
	remove := func(it sch.Item) {
		changed = true
		if it.HasFlag(sch.StructDeleted) {
			return
		}
		it.SetFlags(sch.StructDeleted)
		if sel != nil {
			sel.Remove(it)
		}
		removed = append(removed, it)
	}

	BreakSegmentsOnJunctions(c, s)

	var junctions []sch.Item
	for _, j := range s.OfKind(sch.KindJunction) {
		if !s.IsExplicitJunction(j.Position()) {
			if !j.IsSelected() {
				remove(j)
			}
			continue
		}
		junctions = append(junctions, j)
	}
	removeDuplicates(junctions, remove)
	removeDuplicates(s.OfKind(sch.KindNoConnect), remove)

	for changed {
		changed = false
		lines := s.Wires()
		for i, first := range lines {
			if first.HasFlag(sch.StructDeleted) {
				continue
			}
			if first.IsNull() {
				remove(first)
				continue
			}
			for _, second := range lines[i+1:] {
				if second.HasFlag(sch.StructDeleted) {
					continue
				}
				if !second.IsParallel(first) || !second.IsStrokeEquivalent(first) ||
					second.Layer() != first.Layer() {
					continue
				}
				if first.IsEndPoint(second.Start()) && first.IsEndPoint(second.End()) {
					remove(second)
					continue
				}
				merged := second.MergeOverlap(s, first, true)
				if merged == nil {
					continue
				}
				remove(first)
				remove(second)
				s.Add(merged)
				c.Added(merged)
				if merged.IsSelected() && sel != nil {
					sel.Add(merged)
				}
				break
			}
		}
	}

	for _, it := range removed {
		s.Remove(it)
		c.Removed(it)
	}
}

// removeDuplicates removes all but one item per position, preferring to
// keep selected items.
func removeDuplicates(items []sch.Item, remove func(sch.Item)) {
	sorted := append([]sch.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IsSelected() && !sorted[j].IsSelected()
	})
	kept := make(map[geom.Point]struct{})
	for _, it := range sorted {
		if it.HasFlag(sch.StructDeleted) {
			continue
		}
		if _, ok := kept[it.Position()]; ok {
			remove(it)
			continue
		}
		kept[it.Position()] = struct{}{}
	}
}
