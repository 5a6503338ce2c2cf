package tool

import (
	"log"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// AlignToGrid snaps the selection to the grid in one batch. Each wire end
// is snapped on its own and drags what is attached to it; other items move
// by the snap offset most of their connection points need. It reports
// whether anything moved, and does nothing while a session is active.
func (t *MoveTool) AlignToGrid() bool {
	if t.state.Active() {
		return false
	}
	sel := t.host.Selection()
	if sel == nil || sel.Empty() {
		return false
	}
	t.reset()
	t.mode = ModeDrag
	t.screen = t.host.Screen()
	t.commit = t.host.NewCommit()
	grid := t.host.Grid()

	selected := sel.Items()
	for _, it := range selected {
		if !it.IsNew() {
			t.commit.Modify(it)
		}
	}

	moved := false
	for _, it := range selected {
		switch v := it.(type) {
		case *sch.Wire:
			for _, end := range []sch.Flags{sch.StartPoint, sch.EndPoint} {
				p := v.Start()
				if end == sch.EndPoint {
					p = v.End()
				}
				v.ClearFlags(sch.StartPoint | sch.EndPoint)
				v.SetFlags(end)
				group := t.connectedDragItems(v, p, []sch.Item{v})
				if t.shift(group, grid.AlignGrid(p).Sub(p)) {
					moved = true
				}
				t.releaseGroup(group, v)
			}
			v.SetFlags(sch.StartPoint | sch.EndPoint)

		default:
			pts := it.ConnectionPoints()
			var group []sch.Item
			for _, p := range pts {
				group = t.connectedDragItems(it, p, group)
			}
			if len(pts) == 0 {
				pts = []geom.Point{it.Position()}
			}
			if t.shift(append([]sch.Item{it}, group...), mostCommonShift(grid, pts)) {
				moved = true
			}
			t.releaseGroup(group, it)
		}
	}

	if !moved {
		for _, w := range t.newLines {
			t.screen.Remove(w)
		}
		t.commit.Revert()
		t.reset()
		return false
	}

	for _, w := range t.newLines {
		if t.screen.Contains(w) {
			sch.ClearEditFlags(w)
			t.commit.Added(w)
		}
	}
	touched := append([]sch.Item(nil), selected...)
	for _, w := range t.newLines {
		touched = append(touched, w)
	}
	TrimOverlappingWires(t.commit, t.screen, touched)
	AddJunctionsIfNeeded(t.commit, t.screen, live(t.screen, touched))
	CleanUp(t.commit, t.screen, sel)
	for _, it := range selected {
		it.ClearFlags(sch.IsMoving)
	}
	t.commit.Push("Align")
	if r, ok := t.host.(Recalculator); ok {
		r.RecalculateConnections()
	}
	log.Printf("align: snapped %d items", len(selected))
	t.reset()
	return true
}

// shift moves every item of group by d, snapshotting items outside the
// selection first. Pins of selected owners are skipped.
func (t *MoveTool) shift(group []sch.Item, d geom.Point) bool {
	if d.IsZero() {
		return false
	}
	seen := make(map[sch.Item]struct{}, len(group))
	for _, it := range group {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		if p := it.Parent(); p != nil && p.IsSelected() {
			continue
		}
		if !it.IsSelected() && !it.IsNew() {
			t.commit.Modify(it)
		}
		t.moveItem(it, d)
	}
	return true
}

// releaseGroup clears the drag flags companions of owner picked up, so the
// next snap can grab them again.
func (t *MoveTool) releaseGroup(group []sch.Item, owner sch.Item) {
	for _, it := range group {
		if it == owner || it.IsSelected() {
			continue
		}
		it.ClearFlags(sch.StartPoint | sch.EndPoint | sch.SelectedByDrag | sch.IsMoving)
		if l, ok := it.(*sch.Label); ok {
			delete(t.labels, l)
		}
	}
}

// mostCommonShift returns the snap offset shared by most of pts, the first
// one seen winning ties.
func mostCommonShift(grid Grid, pts []geom.Point) geom.Point {
	counts := make(map[geom.Point]int)
	var best geom.Point
	bestCount := 0
	for _, p := range pts {
		d := grid.AlignGrid(p).Sub(p)
		counts[d]++
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}
