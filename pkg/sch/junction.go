package sch

import "github.com/OpenTraceLab/OpenTraceSch/pkg/geom"

// DefaultJunctionDiameter is 36 mil in internal units.
const DefaultJunctionDiameter = 9144

// Junction is an explicit connection dot.
type Junction struct {
	base
	pos      geom.Point
	Diameter int
}

func NewJunction(p geom.Point) *Junction {
	j := &Junction{base: newBase(), pos: p}
	j.bind(j)
	return j
}

func (j *Junction) Kind() Kind           { return KindJunction }
func (j *Junction) Position() geom.Point { return j.pos }

func (j *Junction) SetPosition(p geom.Point) {
	j.pos = p
	j.reindex()
}

func (j *Junction) Move(d geom.Point) { j.SetPosition(j.pos.Add(d)) }

func (j *Junction) radius() int {
	if j.Diameter > 0 {
		return j.Diameter / 2
	}
	return DefaultJunctionDiameter / 2
}

func (j *Junction) BoundingBox() geom.Box {
	return geom.BoxAround(j.pos).Inflate(j.radius())
}

func (j *Junction) HitTest(p geom.Point, accuracy int) bool {
	return p.Sub(j.pos).Length() <= float64(j.radius()+accuracy)
}

func (j *Junction) ConnectionPoints() []geom.Point { return []geom.Point{j.pos} }
func (j *Junction) IsConnected(p geom.Point) bool  { return p == j.pos }

func (j *Junction) CanConnect(other Item) bool {
	switch other.(type) {
	case *Wire, *Symbol, *Pin, *Label, *Sheet, *SheetPin:
		return true
	}
	return false
}

func (j *Junction) Clone() Item {
	c := *j
	c.base = j.cloneBase()
	c.bind(&c)
	return &c
}

func (j *Junction) SwapData(other Item) {
	o := other.(*Junction)
	j.pos, o.pos = o.pos, j.pos
	j.Diameter, o.Diameter = o.Diameter, j.Diameter
	j.reindex()
	o.reindex()
}

// NoConnect marks a pin as intentionally unconnected.
type NoConnect struct {
	base
	pos  geom.Point
	Size int
}

func NewNoConnect(p geom.Point) *NoConnect {
	n := &NoConnect{base: newBase(), pos: p, Size: 12700}
	n.bind(n)
	return n
}

func (n *NoConnect) Kind() Kind           { return KindNoConnect }
func (n *NoConnect) Position() geom.Point { return n.pos }

func (n *NoConnect) SetPosition(p geom.Point) {
	n.pos = p
	n.reindex()
}

func (n *NoConnect) Move(d geom.Point) { n.SetPosition(n.pos.Add(d)) }

func (n *NoConnect) BoundingBox() geom.Box {
	return geom.BoxAround(n.pos).Inflate(max(n.Size/2, 1))
}

func (n *NoConnect) HitTest(p geom.Point, accuracy int) bool {
	return n.BoundingBox().Inflate(accuracy).Contains(p)
}

func (n *NoConnect) ConnectionPoints() []geom.Point { return []geom.Point{n.pos} }
func (n *NoConnect) IsConnected(p geom.Point) bool  { return p == n.pos }

func (n *NoConnect) CanConnect(other Item) bool {
	switch o := other.(type) {
	case *Wire:
		return o.layer == LayerWire
	case *Symbol, *Pin, *Label, *Sheet, *SheetPin:
		return true
	}
	return false
}

func (n *NoConnect) Clone() Item {
	c := *n
	c.base = n.cloneBase()
	c.bind(&c)
	return &c
}

func (n *NoConnect) SwapData(other Item) {
	o := other.(*NoConnect)
	n.pos, o.pos = o.pos, n.pos
	n.Size, o.Size = o.Size, n.Size
	n.reindex()
	o.reindex()
}
