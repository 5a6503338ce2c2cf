package sch

import (
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/tidwall/rtree"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Screen owns the items of one sheet file and indexes them spatially.
type Screen struct {
	FileName string

	tree  rtree.RTreeG[Item]
	items []Item
	boxes map[Item]geom.Box
	seq   map[Item]uint64
	byID  map[uuid.UUID]Item
	next  uint64

	modified bool
}

// NewScreen returns an empty screen for fileName.
func NewScreen(fileName string) *Screen {
	return &Screen{
		FileName: fileName,
		boxes:    make(map[Item]geom.Box),
		seq:      make(map[Item]uint64),
		byID:     make(map[uuid.UUID]Item),
	}
}

// Add inserts item. Sub-items (pins) are reached through their owner and
// cannot be added directly.
func (s *Screen) Add(item Item) {
	if item.Parent() != nil {
		log.Printf("screen %s: refusing to add %s owned by %s", s.FileName, item.Kind(), item.Parent().Kind())
		return
	}
	if _, ok := s.boxes[item]; ok {
		return
	}
	box := item.BoundingBox()
	lo, hi := box.Rect()
	s.tree.Insert(lo, hi, item)
	s.boxes[item] = box
	s.next++
	s.seq[item] = s.next
	s.byID[item.ID()] = item
	s.items = append(s.items, item)
	item.core().attach(s)
	s.modified = true
}

// Remove deletes item. It is a no-op for items not on the screen.
func (s *Screen) Remove(item Item) bool {
	box, ok := s.boxes[item]
	if !ok {
		return false
	}
	lo, hi := box.Rect()
	s.tree.Delete(lo, hi, item)
	delete(s.boxes, item)
	delete(s.seq, item)
	if s.byID[item.ID()] == item {
		delete(s.byID, item.ID())
	}
	for i, it := range s.items {
		if it == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	item.core().attach(nil)
	s.modified = true
	return true
}

// Update re-indexes item after a geometry change.
func (s *Screen) Update(item Item) {
	old, ok := s.boxes[item]
	if !ok {
		return
	}
	box := item.BoundingBox()
	if box != old {
		lo, hi := old.Rect()
		s.tree.Delete(lo, hi, item)
		lo, hi = box.Rect()
		s.tree.Insert(lo, hi, item)
		s.boxes[item] = box
	}
	s.modified = true
}

// Contains reports whether item is on the screen.
func (s *Screen) Contains(item Item) bool {
	_, ok := s.boxes[item]
	return ok
}

// Get returns the item with id.
func (s *Screen) Get(id uuid.UUID) (Item, bool) {
	it, ok := s.byID[id]
	return it, ok
}

// Len returns the number of items.
func (s *Screen) Len() int { return len(s.items) }

// Items returns the items in insertion order.
func (s *Screen) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// OfKind returns items of the given kinds in insertion order.
func (s *Screen) OfKind(kinds ...Kind) []Item {
	var out []Item
	for _, it := range s.items {
		for _, k := range kinds {
			if it.Kind() == k {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Wires returns the wire and bus segments in insertion order.
func (s *Screen) Wires() []*Wire {
	var out []*Wire
	for _, it := range s.items {
		if w, ok := it.(*Wire); ok {
			out = append(out, w)
		}
	}
	return out
}

// Sheets returns the sub-sheet frames in insertion order.
func (s *Screen) Sheets() []*Sheet {
	var out []*Sheet
	for _, it := range s.items {
		if sh, ok := it.(*Sheet); ok {
			out = append(out, sh)
		}
	}
	return out
}

// Symbols returns the placed symbols in insertion order.
func (s *Screen) Symbols() []*Symbol {
	var out []*Symbol
	for _, it := range s.items {
		if sym, ok := it.(*Symbol); ok {
			out = append(out, sym)
		}
	}
	return out
}

// Overlapping returns items whose bounding box intersects box, in
// insertion order.
func (s *Screen) Overlapping(box geom.Box) []Item {
	lo, hi := box.Rect()
	var out []Item
	s.tree.Search(lo, hi, func(_, _ [2]float64, it Item) bool {
		out = append(out, it)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i]] < s.seq[out[j]] })
	return out
}

// At returns items whose bounding box holds p.
func (s *Screen) At(p geom.Point) []Item {
	return s.Overlapping(geom.BoxAround(p))
}

// IsModified reports whether the screen changed since ClearModified.
func (s *Screen) IsModified() bool { return s.modified }

func (s *Screen) SetModified()   { s.modified = true }
func (s *Screen) ClearModified() { s.modified = false }

// ConnectionPoints returns the sorted, de-duplicated connection points of
// every item.
func (s *Screen) ConnectionPoints() []geom.Point {
	seen := make(map[geom.Point]struct{})
	var out []geom.Point
	for _, it := range s.items {
		for _, p := range it.ConnectionPoints() {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// TestDanglingEnds recomputes the dangling state of items accepted by
// filter (all items when nil). changed is called for every item whose state
// flipped.
func (s *Screen) TestDanglingEnds(filter func(Item) bool, changed func(Item)) {
	for _, it := range s.Items() {
		if filter != nil && !filter(it) {
			continue
		}
		before := it.IsDangling()
		switch v := it.(type) {
		case *Junction:
			continue
		case *Symbol:
			for _, p := range v.pins {
				p.setDangling(!s.endConnected(p, p.Position()))
			}
		case *Sheet:
			for _, p := range v.pins {
				p.setDangling(!s.endConnected(p, p.pos))
			}
		default:
			dangling := false
			for _, p := range it.ConnectionPoints() {
				if !s.endConnected(it, p) {
					dangling = true
					break
				}
			}
			it.core().setDangling(dangling)
		}
		if it.IsDangling() != before && changed != nil {
			changed(it)
		}
	}
}

// endConnected reports whether another item connects to item at p.
func (s *Screen) endConnected(item Item, p geom.Point) bool {
	owner := TopLevel(item)
	for _, other := range s.At(p) {
		if other == owner || other.HasFlag(StructDeleted) || !item.CanConnect(other) {
			continue
		}
		switch o := other.(type) {
		case *Wire:
			if o.IsEndPoint(p) {
				return true
			}
			if (item.Kind().IsLabel() || item.Kind() == KindWire) && geom.OnSegment(o.start, o.end, p) {
				return true
			}
		case *Symbol:
			for _, pin := range o.pins {
				if pin.Position() == p && item.CanConnect(pin) {
					return true
				}
			}
		case *Sheet:
			for _, pin := range o.pins {
				if pin.pos == p && item.CanConnect(pin) {
					return true
				}
			}
		default:
			if other.IsConnected(p) {
				return true
			}
		}
	}
	return false
}
