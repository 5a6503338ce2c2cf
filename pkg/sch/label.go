package sch

import (
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Spin is the text orientation of a label relative to its anchor.
type Spin int

const (
	SpinRight Spin = iota
	SpinUp
	SpinLeft
	SpinBottom
)

// Angle returns the text direction of s.
func (s Spin) Angle() geom.Angle {
	switch s {
	case SpinUp:
		return 270
	case SpinLeft:
		return 180
	case SpinBottom:
		return 90
	}
	return 0
}

// DefaultTextSize is 50 mil in internal units.
const DefaultTextSize = 12700

// Label names the net it sits on. One type carries local, global and
// hierarchical labels; Kind tells them apart.
type Label struct {
	base
	kind     Kind
	Text     string
	pos      geom.Point
	Spin     Spin
	TextSize int
	Shape    string
}

// NewLabel returns a label of kind, which must be one of the label kinds.
func NewLabel(kind Kind, text string, p geom.Point) *Label {
	if !kind.IsLabel() {
		kind = KindLabel
	}
	l := &Label{base: newBase(), kind: kind, Text: text, pos: p, TextSize: DefaultTextSize}
	l.bind(l)
	return l
}

func (l *Label) Kind() Kind           { return l.kind }
func (l *Label) Position() geom.Point { return l.pos }

// IsGlobal reports whether the label names a net across the whole schematic.
func (l *Label) IsGlobal() bool { return l.kind == KindGlobalLabel }

func (l *Label) SetPosition(p geom.Point) {
	if p == l.pos {
		return
	}
	l.pos = p
	l.reindex()
}

func (l *Label) Move(d geom.Point) { l.SetPosition(l.pos.Add(d)) }

func (l *Label) SetSpin(s Spin) {
	l.Spin = s
	l.reindex()
}

func (l *Label) BoundingBox() geom.Box {
	size := l.TextSize
	if size <= 0 {
		size = DefaultTextSize
	}
	length := len([]rune(l.Text)) * size * 6 / 10
	var far geom.Point
	switch l.Spin {
	case SpinRight:
		far = geom.Pt(length, -size)
	case SpinLeft:
		far = geom.Pt(-length, -size)
	case SpinUp:
		far = geom.Pt(-size, -length)
	case SpinBottom:
		far = geom.Pt(-size, length)
	}
	return geom.BoxAround(l.pos, l.pos.Add(far)).Inflate(1)
}

func (l *Label) HitTest(p geom.Point, accuracy int) bool {
	return l.BoundingBox().Inflate(accuracy).Contains(p)
}

func (l *Label) ConnectionPoints() []geom.Point { return []geom.Point{l.pos} }
func (l *Label) IsConnected(p geom.Point) bool  { return p == l.pos }

func (l *Label) CanConnect(other Item) bool {
	switch other.(type) {
	case *Wire, *Junction, *Symbol, *Pin, *Label, *Sheet, *SheetPin, *NoConnect:
		return true
	}
	return false
}

func (l *Label) Clone() Item {
	c := *l
	c.base = l.cloneBase()
	c.bind(&c)
	return &c
}

func (l *Label) SwapData(other Item) {
	o := other.(*Label)
	l.kind, o.kind = o.kind, l.kind
	l.Text, o.Text = o.Text, l.Text
	l.pos, o.pos = o.pos, l.pos
	l.Spin, o.Spin = o.Spin, l.Spin
	l.TextSize, o.TextSize = o.TextSize, l.TextSize
	l.Shape, o.Shape = o.Shape, l.Shape
	l.reindex()
	o.reindex()
}
