package sch

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Layer separates plain wires from buses.
type Layer int

const (
	LayerWire Layer = iota
	LayerBus
)

func (l Layer) String() string {
	if l == LayerBus {
		return "bus"
	}
	return "wire"
}

// Stroke describes how a wire is drawn.
type Stroke struct {
	Width int
	Style string
}

// Wire is a straight wire or bus segment.
type Wire struct {
	base
	start, end geom.Point
	layer      Layer
	Stroke     Stroke

	storedAngle    geom.Angle
	hasStoredAngle bool
}

// NewWire returns a wire segment on layer with a fresh id.
func NewWire(start, end geom.Point, layer Layer) *Wire {
	w := &Wire{base: newBase(), start: start, end: end, layer: layer}
	w.bind(w)
	return w
}

func (w *Wire) Kind() Kind           { return KindWire }
func (w *Wire) Layer() Layer         { return w.layer }
func (w *Wire) IsBus() bool          { return w.layer == LayerBus }
func (w *Wire) Start() geom.Point    { return w.start }
func (w *Wire) End() geom.Point      { return w.end }
func (w *Wire) Position() geom.Point { return w.start }

func (w *Wire) String() string {
	return fmt.Sprintf("%s %v-%v", w.layer, w.start, w.end)
}

func (w *Wire) SetStart(p geom.Point) {
	w.start = p
	w.reindex()
}

func (w *Wire) SetEnd(p geom.Point) {
	w.end = p
	w.reindex()
}

func (w *Wire) MoveStart(d geom.Point) { w.SetStart(w.start.Add(d)) }
func (w *Wire) MoveEnd(d geom.Point)   { w.SetEnd(w.end.Add(d)) }

// SetPosition translates the wire so it starts at p.
func (w *Wire) SetPosition(p geom.Point) { w.Move(p.Sub(w.start)) }

func (w *Wire) Move(d geom.Point) {
	if d.IsZero() {
		return
	}
	w.start = w.start.Add(d)
	w.end = w.end.Add(d)
	w.reindex()
}

// Length returns the euclidean length of the segment.
func (w *Wire) Length() float64 { return w.end.Sub(w.start).Length() }

// IsNull reports whether the segment has zero length.
func (w *Wire) IsNull() bool { return w.start == w.end }

// Angle returns the direction from start to end.
func (w *Wire) Angle() geom.Angle { return geom.AngleOf(w.end.Sub(w.start)) }

// StoreAngle remembers the current direction. Zero-length wires keep any
// previously stored angle.
func (w *Wire) StoreAngle() {
	if w.IsNull() {
		return
	}
	w.storedAngle = w.Angle()
	w.hasStoredAngle = true
}

// SetStoredAngle overrides the remembered direction.
func (w *Wire) SetStoredAngle(a geom.Angle) {
	w.storedAngle = a.Normalize()
	w.hasStoredAngle = true
}

// StoredAngle returns the remembered direction and whether one was stored.
func (w *Wire) StoredAngle() (geom.Angle, bool) { return w.storedAngle, w.hasStoredAngle }

// IsParallel reports whether both segments share a direction.
func (w *Wire) IsParallel(o *Wire) bool {
	return w.end.Sub(w.start).Cross(o.end.Sub(o.start)) == 0
}

// IsEndPoint reports whether p is one of the wire's ends.
func (w *Wire) IsEndPoint(p geom.Point) bool { return p == w.start || p == w.end }

// OtherEnd returns the end that is not p, or start when p is not an end.
func (w *Wire) OtherEnd(p geom.Point) geom.Point {
	if p == w.start {
		return w.end
	}
	return w.start
}

// SelectedPoints returns the ends flagged for dragging.
func (w *Wire) SelectedPoints() []geom.Point {
	var pts []geom.Point
	if w.HasFlag(StartPoint) {
		pts = append(pts, w.start)
	}
	if w.HasFlag(EndPoint) {
		pts = append(pts, w.end)
	}
	return pts
}

func (w *Wire) halfWidth() int {
	return max(w.Stroke.Width/2, 1)
}

func (w *Wire) BoundingBox() geom.Box {
	return geom.BoxAround(w.start, w.end).Inflate(w.halfWidth())
}

func (w *Wire) HitTest(p geom.Point, accuracy int) bool {
	return geom.HitSegment(w.start, w.end, p, accuracy+w.Stroke.Width/2)
}

func (w *Wire) ConnectionPoints() []geom.Point { return []geom.Point{w.start, w.end} }

func (w *Wire) IsConnected(p geom.Point) bool { return w.IsEndPoint(p) }

func (w *Wire) CanConnect(other Item) bool {
	switch o := other.(type) {
	case *Wire:
		return o.layer == w.layer
	case *Junction, *Sheet, *SheetPin:
		return true
	case *Label:
		return true
	case *NoConnect, *Symbol, *Pin:
		return w.layer == LayerWire
	}
	return false
}

// BreakAt shortens w to end at p and returns a new segment from p to the
// old end. The new segment is not added to any screen.
func (w *Wire) BreakAt(p geom.Point) *Wire {
	nw := NewWire(p, w.end, w.layer)
	nw.Stroke = w.Stroke
	nw.storedAngle, nw.hasStoredAngle = w.storedAngle, w.hasStoredAngle
	w.SetEnd(p)
	return nw
}

// IsStrokeEquivalent reports whether both wires draw the same way.
func (w *Wire) IsStrokeEquivalent(o *Wire) bool { return w.Stroke == o.Stroke }

// MergeOverlap returns a new wire covering w and other when they are
// collinear and overlap or touch, or nil. Touching segments are not merged
// when checkJunctions is set and a junction is required at the touch point.
func (w *Wire) MergeOverlap(s *Screen, other *Wire, checkJunctions bool) *Wire {
	if other == nil || w == other || w.layer != other.layer {
		return nil
	}
	less := func(a, b geom.Point) bool { return a.Less(b) }
	ordered := func(a, b geom.Point) (geom.Point, geom.Point) {
		if less(b, a) {
			return b, a
		}
		return a, b
	}

	leftStart, leftEnd := ordered(other.start, other.end)
	rightStart, rightEnd := ordered(w.start, w.end)
	if less(rightStart, leftStart) {
		leftStart, rightStart = rightStart, leftStart
		leftEnd, rightEnd = rightEnd, leftEnd
	}
	otherStart, otherEnd := rightStart, rightEnd
	if less(rightEnd, leftEnd) {
		rightStart, rightEnd = leftStart, leftEnd
	}
	if less(leftEnd, otherStart) {
		return nil
	}

	if leftStart == otherStart && leftEnd == otherEnd {
		return w.merged(other, leftStart, leftEnd)
	}
	if !geom.Collinear(leftStart, leftEnd, otherStart, otherEnd) {
		return nil
	}
	touching := leftEnd == otherStart
	if touching && checkJunctions && s != nil && s.IsJunction(leftEnd) {
		return nil
	}
	return w.merged(other, leftStart, rightEnd)
}

func (w *Wire) merged(other *Wire, start, end geom.Point) *Wire {
	nw := NewWire(start, end, other.layer)
	nw.Stroke = other.Stroke
	nw.flags = other.flags &^ Selected
	if w.IsSelected() || other.IsSelected() {
		nw.SetFlags(Selected)
	}
	return nw
}

func (w *Wire) Clone() Item {
	c := *w
	c.base = w.cloneBase()
	c.bind(&c)
	return &c
}

func (w *Wire) SwapData(other Item) {
	o := other.(*Wire)
	w.start, o.start = o.start, w.start
	w.end, o.end = o.end, w.end
	w.layer, o.layer = o.layer, w.layer
	w.Stroke, o.Stroke = o.Stroke, w.Stroke
	w.storedAngle, o.storedAngle = o.storedAngle, w.storedAngle
	w.hasStoredAngle, o.hasStoredAngle = o.hasStoredAngle, w.hasStoredAngle
	w.reindex()
	o.reindex()
}
