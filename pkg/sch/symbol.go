package sch

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Transform is the 2x2 orientation matrix applied to library coordinates.
type Transform struct {
	X1, Y1, X2, Y2 int
}

// Identity maps library coordinates unchanged.
var Identity = Transform{X1: 1, Y1: 0, X2: 0, Y2: 1}

// RotationTransform returns the transform for a counter-clockwise rotation
// in degrees, optionally mirrored about the X or Y axis afterwards.
func RotationTransform(degrees int, mirrorX, mirrorY bool) Transform {
	t := Identity
	switch ((degrees%360)+360)%360 {
	case 90:
		t = Transform{X1: 0, Y1: 1, X2: -1, Y2: 0}
	case 180:
		t = Transform{X1: -1, Y1: 0, X2: 0, Y2: -1}
	case 270:
		t = Transform{X1: 0, Y1: -1, X2: 1, Y2: 0}
	}
	if mirrorX {
		t.X2, t.Y2 = -t.X2, -t.Y2
	}
	if mirrorY {
		t.X1, t.Y1 = -t.X1, -t.Y1
	}
	return t
}

// Apply maps p through t.
func (t Transform) Apply(p geom.Point) geom.Point {
	return geom.Pt(t.X1*p.X+t.Y1*p.Y, t.X2*p.X+t.Y2*p.Y)
}

// PinType is the electrical type of a pin.
type PinType int

const (
	PinPassive PinType = iota
	PinInput
	PinOutput
	PinBidirectional
	PinTriState
	PinPowerIn
	PinPowerOut
	PinUnspecified
	PinNoConnect
)

// Symbol is a placed library part.
type Symbol struct {
	base
	LibID string
	Value string

	pos       geom.Point
	transform Transform

	// IsPower marks power symbols; IsLocalPower restricts their net to the
	// sheet they are placed on.
	IsPower      bool
	IsLocalPower bool

	defaultRef string
	refs       map[string]string

	pins []*Pin
	body geom.Box
}

// NewSymbol returns a symbol at p with no pins. body is relative to p.
func NewSymbol(libID, ref string, p geom.Point, body geom.Box) *Symbol {
	s := &Symbol{
		base:       newBase(),
		LibID:      libID,
		pos:        p,
		transform:  Identity,
		defaultRef: ref,
		refs:       make(map[string]string),
		body:       body,
	}
	s.bind(s)
	return s
}

// AddPin adds a pin at offset, given in symbol coordinates before the
// symbol's transform.
func (s *Symbol) AddPin(number, name string, typ PinType, offset geom.Point) *Pin {
	p := &Pin{base: newBase(), parent: s, Number: number, Name: name, Type: typ, offset: offset}
	p.bind(p)
	s.pins = append(s.pins, p)
	s.reindex()
	return p
}

func (s *Symbol) Kind() Kind           { return KindSymbol }
func (s *Symbol) Position() geom.Point { return s.pos }
func (s *Symbol) Pins() []*Pin         { return s.pins }
func (s *Symbol) Transform() Transform { return s.transform }

func (s *Symbol) SetTransform(t Transform) {
	s.transform = t
	s.reindex()
}

// PinByNumber returns the pin with number, or nil.
func (s *Symbol) PinByNumber(number string) *Pin {
	for _, p := range s.pins {
		if p.Number == number {
			return p
		}
	}
	return nil
}

func (s *Symbol) SetPosition(p geom.Point) {
	if p == s.pos {
		return
	}
	s.pos = p
	s.reindex()
}

func (s *Symbol) Move(d geom.Point) { s.SetPosition(s.pos.Add(d)) }

// Reference returns the designator used on path.
func (s *Symbol) Reference(path SheetPath) string {
	if ref, ok := s.refs[path.Path().String()]; ok {
		return ref
	}
	return s.defaultRef
}

// SetReference records the designator used on path.
func (s *Symbol) SetReference(path SheetPath, ref string) {
	s.refs[path.Path().String()] = ref
}

// SetInstanceReference records a designator keyed by a stored instance path.
func (s *Symbol) SetInstanceReference(path KIIDPath, ref string) {
	s.refs[path.String()] = ref
}

// IsAnnotated reports whether the symbol has a final designator on path.
func (s *Symbol) IsAnnotated(path SheetPath) bool {
	ref := s.Reference(path)
	return ref != "" && !strings.HasSuffix(ref, "?")
}

func (s *Symbol) BoundingBox() geom.Box {
	b := geom.BoxAround(s.transform.Apply(s.body.Min).Add(s.pos), s.transform.Apply(s.body.Max).Add(s.pos))
	for _, p := range s.pins {
		b = b.Extend(p.Position())
	}
	return b.Inflate(1)
}

func (s *Symbol) HitTest(p geom.Point, accuracy int) bool {
	return s.BoundingBox().Inflate(accuracy).Contains(p)
}

func (s *Symbol) ConnectionPoints() []geom.Point {
	pts := make([]geom.Point, 0, len(s.pins))
	for _, p := range s.pins {
		pts = append(pts, p.Position())
	}
	return pts
}

func (s *Symbol) IsConnected(p geom.Point) bool { return pointsContain(s.ConnectionPoints(), p) }

// PinAt returns the pin located at p, or nil.
func (s *Symbol) PinAt(p geom.Point) *Pin {
	for _, pin := range s.pins {
		if pin.Position() == p {
			return pin
		}
	}
	return nil
}

func (s *Symbol) IsDangling() bool {
	for _, p := range s.pins {
		if p.dangling {
			return true
		}
	}
	return false
}

func (s *Symbol) CanConnect(other Item) bool {
	switch o := other.(type) {
	case *Wire:
		return o.layer == LayerWire
	case *Junction, *NoConnect, *Label, *Symbol, *Pin:
		return true
	}
	return false
}

func (s *Symbol) Clone() Item {
	c := *s
	c.base = s.cloneBase()
	c.bind(&c)
	c.refs = make(map[string]string, len(s.refs))
	for k, v := range s.refs {
		c.refs[k] = v
	}
	c.pins = make([]*Pin, len(s.pins))
	for i, p := range s.pins {
		cp := *p
		cp.base = p.cloneBase()
		cp.bind(&cp)
		cp.parent = &c
		c.pins[i] = &cp
	}
	return &c
}

// SwapData exchanges placement and text. Pins keep their identity and
// follow the placement.
func (s *Symbol) SwapData(other Item) {
	o := other.(*Symbol)
	s.pos, o.pos = o.pos, s.pos
	s.transform, o.transform = o.transform, s.transform
	s.Value, o.Value = o.Value, s.Value
	s.LibID, o.LibID = o.LibID, s.LibID
	s.refs, o.refs = o.refs, s.refs
	s.defaultRef, o.defaultRef = o.defaultRef, s.defaultRef
	s.reindex()
	o.reindex()
}

// Pin is a connection point of a symbol.
type Pin struct {
	base
	parent *Symbol
	Number string
	Name   string
	Type   PinType
	offset geom.Point
}

func (p *Pin) Kind() Kind      { return KindPin }
func (p *Pin) Parent() Item    { return p.parent }
func (p *Pin) Symbol() *Symbol { return p.parent }

func (p *Pin) Position() geom.Point {
	return p.parent.pos.Add(p.parent.transform.Apply(p.offset))
}

// SetPosition and Move are no-ops: pins follow their symbol.
func (p *Pin) SetPosition(geom.Point) {}
func (p *Pin) Move(geom.Point)        {}

func (p *Pin) BoundingBox() geom.Box { return geom.BoxAround(p.Position()).Inflate(1) }

func (p *Pin) HitTest(pt geom.Point, accuracy int) bool {
	return p.Position().Sub(pt).Length() <= float64(accuracy)
}

func (p *Pin) ConnectionPoints() []geom.Point { return []geom.Point{p.Position()} }
func (p *Pin) IsConnected(pt geom.Point) bool { return pt == p.Position() }
func (p *Pin) CanConnect(other Item) bool     { return p.parent.CanConnect(other) }

func (p *Pin) isPowerSymbolPin() bool {
	return p.Type == PinPowerIn && p.parent != nil && p.parent.IsPower
}

// IsGlobalPower reports whether the pin names a schematic-wide power net.
func (p *Pin) IsGlobalPower() bool { return p.isPowerSymbolPin() && !p.parent.IsLocalPower }

// IsLocalPower reports whether the pin names a sheet-local power net.
func (p *Pin) IsLocalPower() bool { return p.isPowerSymbolPin() && p.parent.IsLocalPower }

// IsPower reports whether the pin is the pin of a power symbol.
func (p *Pin) IsPower() bool { return p.isPowerSymbolPin() }

// PowerNetName returns the net a power pin drives.
func (p *Pin) PowerNetName() string {
	if p.parent.Value != "" {
		return p.parent.Value
	}
	return p.Name
}

// DefaultNetName is the name an undriven net gets from this pin.
func (p *Pin) DefaultNetName(path SheetPath) string {
	return fmt.Sprintf("Net-(%s-Pad%s)", p.parent.Reference(path), p.Number)
}

func (p *Pin) Clone() Item {
	c := *p
	c.base = p.cloneBase()
	c.bind(&c)
	return &c
}

func (p *Pin) SwapData(other Item) {
	o := other.(*Pin)
	p.Number, o.Number = o.Number, p.Number
	p.Name, o.Name = o.Name, p.Name
	p.Type, o.Type = o.Type, p.Type
	p.offset, o.offset = o.offset, p.offset
}
