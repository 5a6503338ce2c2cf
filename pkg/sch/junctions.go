package sch

import (
	"math"
	"sort"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// exits counts the distinct directions in which connections leave p on
// every layer.
type exits struct {
	wires, buses map[int64]struct{}
}

func angleKey(a geom.Angle) int64 { return int64(math.Round(float64(a) * 1000)) }

func (e *exits) add(layer Layer, key int64) {
	m := e.wires
	if layer == LayerBus {
		m = e.buses
	}
	m[key] = struct{}{}
}

func (s *Screen) exitsAt(p geom.Point) exits {
	e := exits{wires: make(map[int64]struct{}), buses: make(map[int64]struct{})}
	pinKey := int64(-1)
	for _, it := range s.At(p) {
		if it.HasFlag(StructDeleted) {
			continue
		}
		switch v := it.(type) {
		case *Wire:
			if v.IsNull() {
				continue
			}
			switch {
			case v.IsEndPoint(p):
				e.add(v.layer, angleKey(geom.AngleOf(v.OtherEnd(p).Sub(p))))
			case geom.OnSegment(v.start, v.end, p):
				e.add(v.layer, angleKey(geom.AngleOf(v.start.Sub(p))))
				e.add(v.layer, angleKey(geom.AngleOf(v.end.Sub(p))))
			}
		case *Symbol:
			for _, pin := range v.pins {
				if pin.Position() == p {
					e.add(LayerWire, pinKey)
					pinKey--
				}
			}
		case *Sheet:
			for _, pin := range v.pins {
				if pin.pos == p {
					e.add(LayerWire, pinKey)
					e.add(LayerBus, pinKey)
					pinKey--
				}
			}
		}
	}
	return e
}

// IsJunction reports whether three or more connections leave p on one layer.
func (s *Screen) IsJunction(p geom.Point) bool {
	e := s.exitsAt(p)
	return len(e.wires) >= 3 || len(e.buses) >= 3
}

// IsExplicitJunction reports whether a junction dot is electrically
// required at p.
func (s *Screen) IsExplicitJunction(p geom.Point) bool { return s.IsJunction(p) }

// IsExplicitJunctionNeeded reports whether a junction dot is required at p
// and none is present.
func (s *Screen) IsExplicitJunctionNeeded(p geom.Point) bool {
	return s.IsExplicitJunction(p) && s.JunctionAt(p) == nil
}

// JunctionAt returns the junction at p, or nil.
func (s *Screen) JunctionAt(p geom.Point) *Junction {
	for _, it := range s.At(p) {
		if j, ok := it.(*Junction); ok && j.pos == p && !j.HasFlag(StructDeleted) {
			return j
		}
	}
	return nil
}

// NeededJunctions returns the points among items' connection points that
// require a junction dot which is not yet present.
func (s *Screen) NeededJunctions(items []Item) []geom.Point {
	seen := make(map[geom.Point]struct{})
	var out []geom.Point
	check := func(p geom.Point) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		if s.IsExplicitJunctionNeeded(p) {
			out = append(out, p)
		}
	}
	var all []geom.Point
	for _, it := range items {
		if it.HasFlag(StructDeleted) {
			continue
		}
		for _, p := range it.ConnectionPoints() {
			check(p)
		}
		// Points elsewhere on the screen that now land on a moved wire.
		if w, ok := it.(*Wire); ok {
			if all == nil {
				all = s.ConnectionPoints()
			}
			for _, p := range all {
				if geom.OnSegment(w.start, w.end, p) {
					check(p)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
