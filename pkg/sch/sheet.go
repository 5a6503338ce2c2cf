package sch

import (
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Sheet is a placed reference to the screen holding a sub-sheet's content.
// Several sheets may share one screen.
type Sheet struct {
	base
	Name     string
	FileName string

	pos, size geom.Point
	screen    *Screen
	pins      []*SheetPin

	// pages maps the instance path of the parent sheet path to a page number.
	pages map[string]string
}

// NewSheet returns a sheet frame at p with size.
func NewSheet(name, fileName string, p, size geom.Point) *Sheet {
	s := &Sheet{base: newBase(), Name: name, FileName: fileName, pos: p, size: size, pages: make(map[string]string)}
	s.bind(s)
	return s
}

func (s *Sheet) Kind() Kind           { return KindSheet }
func (s *Sheet) Position() geom.Point { return s.pos }
func (s *Sheet) Size() geom.Point     { return s.size }
func (s *Sheet) Pins() []*SheetPin    { return s.pins }

// Content returns the screen holding the sheet's items, or nil.
func (s *Sheet) Content() *Screen { return s.screen }

// SetContent attaches the screen holding the sheet's items.
func (s *Sheet) SetContent(sc *Screen) { s.screen = sc }

// AddPin adds a hierarchical pin at absolute position p.
func (s *Sheet) AddPin(name string, p geom.Point) *SheetPin {
	pin := &SheetPin{base: newBase(), parent: s, Name: name, pos: p}
	pin.bind(pin)
	s.pins = append(s.pins, pin)
	s.reindex()
	return pin
}

func (s *Sheet) SetPosition(p geom.Point) { s.Move(p.Sub(s.pos)) }

func (s *Sheet) Move(d geom.Point) {
	if d.IsZero() {
		return
	}
	s.pos = s.pos.Add(d)
	for _, p := range s.pins {
		p.pos = p.pos.Add(d)
	}
	s.reindex()
}

func (s *Sheet) BoundingBox() geom.Box {
	b := geom.BoxAround(s.pos, s.pos.Add(s.size))
	for _, p := range s.pins {
		b = b.Extend(p.pos)
	}
	return b.Inflate(1)
}

func (s *Sheet) HitTest(p geom.Point, accuracy int) bool {
	return s.BoundingBox().Inflate(accuracy).Contains(p)
}

func (s *Sheet) ConnectionPoints() []geom.Point {
	pts := make([]geom.Point, 0, len(s.pins))
	for _, p := range s.pins {
		pts = append(pts, p.pos)
	}
	return pts
}

func (s *Sheet) IsConnected(p geom.Point) bool { return pointsContain(s.ConnectionPoints(), p) }

func (s *Sheet) IsDangling() bool {
	for _, p := range s.pins {
		if p.dangling {
			return true
		}
	}
	return false
}

func (s *Sheet) CanConnect(other Item) bool {
	switch other.(type) {
	case *Wire, *Junction, *Label, *NoConnect:
		return true
	}
	return false
}

// PageNumber returns the page number of the instance below parent.
func (s *Sheet) PageNumber(parent KIIDPath) string { return s.pages[parent.String()] }

// SetPageNumber sets the page number of the instance below parent.
func (s *Sheet) SetPageNumber(parent KIIDPath, page string) {
	s.pages[parent.String()] = page
}

func (s *Sheet) Clone() Item {
	c := *s
	c.base = s.cloneBase()
	c.bind(&c)
	c.pages = make(map[string]string, len(s.pages))
	for k, v := range s.pages {
		c.pages[k] = v
	}
	c.pins = make([]*SheetPin, len(s.pins))
	for i, p := range s.pins {
		cp := *p
		cp.base = p.cloneBase()
		cp.bind(&cp)
		cp.parent = &c
		c.pins[i] = &cp
	}
	return &c
}

// SwapData exchanges placement, naming and pin positions. Pins are matched
// by index.
func (s *Sheet) SwapData(other Item) {
	o := other.(*Sheet)
	s.Name, o.Name = o.Name, s.Name
	s.FileName, o.FileName = o.FileName, s.FileName
	s.pos, o.pos = o.pos, s.pos
	s.size, o.size = o.size, s.size
	for i := 0; i < len(s.pins) && i < len(o.pins); i++ {
		s.pins[i].pos, o.pins[i].pos = o.pins[i].pos, s.pins[i].pos
		s.pins[i].Name, o.pins[i].Name = o.pins[i].Name, s.pins[i].Name
	}
	s.reindex()
	o.reindex()
}

// SheetPin is a hierarchical connection point on a sheet frame.
type SheetPin struct {
	base
	parent *Sheet
	Name   string
	Shape  string
	pos    geom.Point
}

func (p *SheetPin) Kind() Kind           { return KindSheetPin }
func (p *SheetPin) Parent() Item         { return p.parent }
func (p *SheetPin) Sheet() *Sheet        { return p.parent }
func (p *SheetPin) Position() geom.Point { return p.pos }

func (p *SheetPin) SetPosition(pt geom.Point) {
	p.pos = pt
	if p.parent != nil {
		p.parent.reindex()
	}
}

func (p *SheetPin) Move(d geom.Point) { p.SetPosition(p.pos.Add(d)) }

func (p *SheetPin) BoundingBox() geom.Box { return geom.BoxAround(p.pos).Inflate(1) }

func (p *SheetPin) HitTest(pt geom.Point, accuracy int) bool {
	return p.pos.Sub(pt).Length() <= float64(accuracy)
}

func (p *SheetPin) ConnectionPoints() []geom.Point { return []geom.Point{p.pos} }
func (p *SheetPin) IsConnected(pt geom.Point) bool { return pt == p.pos }

func (p *SheetPin) CanConnect(other Item) bool {
	switch o := other.(type) {
	case *Wire:
		return true
	case *Junction, *Label, *NoConnect:
		return true
	case *SheetPin:
		return o.parent != p.parent
	}
	return false
}

func (p *SheetPin) Clone() Item {
	c := *p
	c.base = p.cloneBase()
	c.bind(&c)
	return &c
}

func (p *SheetPin) SwapData(other Item) {
	o := other.(*SheetPin)
	p.Name, o.Name = o.Name, p.Name
	p.Shape, o.Shape = o.Shape, p.Shape
	p.pos, o.pos = o.pos, p.pos
}
