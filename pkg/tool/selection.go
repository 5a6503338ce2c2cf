package tool

import (
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// Selection is the ordered set of screen-level items an operation acts on.
// Wires may be selected whole or by one end.
type Selection struct {
	items []sch.Item
	index map[sch.Item]struct{}

	ref    geom.Point
	hasRef bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{index: make(map[sch.Item]struct{})}
}

// Add selects item; a wire is selected with both ends. Pins and sheet pins
// are selected through their owner.
func (s *Selection) Add(item sch.Item) {
	if item == nil || item.Parent() != nil {
		return
	}
	if w, ok := item.(*sch.Wire); ok {
		w.SetFlags(sch.StartPoint | sch.EndPoint)
	}
	s.insert(item)
}

// AddWireEnd selects only the end of w at p. It is a no-op when p is not
// an end of w.
func (s *Selection) AddWireEnd(w *sch.Wire, p geom.Point) {
	switch p {
	case w.Start():
		w.SetFlags(sch.StartPoint)
	case w.End():
		w.SetFlags(sch.EndPoint)
	default:
		return
	}
	s.insert(w)
}

func (s *Selection) insert(item sch.Item) {
	item.SetFlags(sch.Selected)
	if _, ok := s.index[item]; ok {
		return
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
}

// Remove deselects item.
func (s *Selection) Remove(item sch.Item) {
	if _, ok := s.index[item]; !ok {
		return
	}
	delete(s.index, item)
	for i, it := range s.items {
		if it == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	item.ClearFlags(sch.Selected | sch.StartPoint | sch.EndPoint)
}

// Clear deselects everything and drops the reference point.
func (s *Selection) Clear() {
	for _, it := range s.items {
		it.ClearFlags(sch.Selected | sch.StartPoint | sch.EndPoint)
	}
	s.items = nil
	s.index = make(map[sch.Item]struct{})
	s.hasRef = false
}

// Items returns a copy of the selected items in selection order.
func (s *Selection) Items() []sch.Item { return append([]sch.Item(nil), s.items...) }
func (s *Selection) Len() int          { return len(s.items) }
func (s *Selection) Empty() bool       { return len(s.items) == 0 }

// Contains reports whether item itself was selected. Pins report false.
func (s *Selection) Contains(item sch.Item) bool {
	_, ok := s.index[item]
	return ok
}

// IsNew reports whether the selection holds freshly placed items.
func (s *Selection) IsNew() bool { return len(s.items) > 0 && s.items[0].IsNew() }

// SetReferencePoint sets the point new items are carried by.
func (s *Selection) SetReferencePoint(p geom.Point) {
	s.ref = p
	s.hasRef = true
}

// ReferencePoint returns the reference point, if one was set.
func (s *Selection) ReferencePoint() (geom.Point, bool) { return s.ref, s.hasRef }

// BoundingBox returns the union of the selected items' boxes.
func (s *Selection) BoundingBox() geom.Box {
	if len(s.items) == 0 {
		return geom.Box{}
	}
	b := s.items[0].BoundingBox()
	for _, it := range s.items[1:] {
		b = b.Merge(it.BoundingBox())
	}
	return b
}
