// Package sch holds the schematic object model: items, screens, sheet
// hierarchy paths and the connectivity naming engine.
package sch

import (
	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Kind identifies the concrete type of an Item.
type Kind int

const (
	KindJunction Kind = iota
	KindNoConnect
	KindWire
	KindLabel
	KindGlobalLabel
	KindHierLabel
	KindSymbol
	KindPin
	KindSheet
	KindSheetPin
)

var kindNames = [...]string{
	KindJunction:    "junction",
	KindNoConnect:   "no_connect",
	KindWire:        "wire",
	KindLabel:       "label",
	KindGlobalLabel: "global_label",
	KindHierLabel:   "hierarchical_label",
	KindSymbol:      "symbol",
	KindPin:         "pin",
	KindSheet:       "sheet",
	KindSheetPin:    "sheet_pin",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsLabel reports whether k is one of the label kinds.
func (k Kind) IsLabel() bool {
	return k == KindLabel || k == KindGlobalLabel || k == KindHierLabel
}

// Flags is the transient edit state of an item.
type Flags uint32

const (
	Selected Flags = 1 << iota
	StartPoint
	EndPoint
	SelectedByDrag
	IsMoving
	IsNew
	IsBroken
	IsChanged
	StructDeleted
)

// EditFlags are the flags cleared when an interactive operation ends.
const EditFlags = StartPoint | EndPoint | SelectedByDrag | IsMoving | IsNew |
	IsBroken | IsChanged | StructDeleted

// Item is anything that can live on a screen or be connected to.
type Item interface {
	ID() uuid.UUID
	// SetID replaces the id. It must be called before the item is added to
	// a screen.
	SetID(id uuid.UUID)
	Kind() Kind

	// Parent is the owning symbol or sheet for pins and nil otherwise.
	Parent() Item

	Position() geom.Point
	SetPosition(p geom.Point)
	Move(delta geom.Point)
	BoundingBox() geom.Box
	HitTest(p geom.Point, accuracy int) bool

	ConnectionPoints() []geom.Point
	IsConnected(p geom.Point) bool
	CanConnect(other Item) bool
	IsDangling() bool

	Flags() Flags
	HasFlag(f Flags) bool
	SetFlags(f Flags)
	ClearFlags(f Flags)
	IsSelected() bool
	IsNew() bool

	// Connection returns the item's connection on path, or nil.
	Connection(path SheetPath) *Connection
	// InitializeConnection returns the connection on path, creating it.
	InitializeConnection(path SheetPath, graph *ConnectionGraph) *Connection

	// Clone returns a deep copy keeping the id, detached from any screen.
	Clone() Item
	// SwapData exchanges the geometric and textual state with other, which
	// must be of the same concrete type.
	SwapData(other Item)

	core() *base
}

// base is embedded by every item.
type base struct {
	id       uuid.UUID
	flags    Flags
	dangling bool

	conns map[uint64]*Connection

	screen *Screen
	self   Item
}

func newBase() base { return base{id: uuid.New()} }

func (b *base) ID() uuid.UUID        { return b.id }
func (b *base) SetID(id uuid.UUID)   { b.id = id }
func (b *base) Flags() Flags         { return b.flags }
func (b *base) HasFlag(f Flags) bool { return b.flags&f != 0 }
func (b *base) SetFlags(f Flags)     { b.flags |= f }
func (b *base) ClearFlags(f Flags)   { b.flags &^= f }
func (b *base) IsSelected() bool     { return b.flags&Selected != 0 }
func (b *base) IsNew() bool          { return b.flags&IsNew != 0 }
func (b *base) IsDangling() bool     { return b.dangling }
func (b *base) Parent() Item         { return nil }
func (b *base) core() *base          { return b }
func (b *base) setDangling(d bool)   { b.dangling = d }
func (b *base) Screen() *Screen      { return b.screen }
func (b *base) attach(s *Screen)     { b.screen = s }

func (b *base) Connection(path SheetPath) *Connection {
	if b.conns == nil {
		return nil
	}
	return b.conns[path.Hash()]
}

func (b *base) InitializeConnection(path SheetPath, graph *ConnectionGraph) *Connection {
	if c := b.Connection(path); c != nil {
		c.Reset()
		c.SetGraph(graph)
		return c
	}
	if b.conns == nil {
		b.conns = make(map[uint64]*Connection)
	}
	c := NewConnection(b.self, path)
	c.SetGraph(graph)
	b.conns[path.Hash()] = c
	return c
}

// reindex refreshes the item's entry in its screen's spatial index.
func (b *base) reindex() {
	if b.screen != nil && b.self != nil {
		b.screen.Update(b.self)
	}
}

// cloneBase copies identity and flags; screen membership and connections
// are not part of a copy.
func (b *base) cloneBase() base {
	return base{id: b.id, flags: b.flags, dangling: b.dangling}
}

// bind records the concrete item embedding b.
func (b *base) bind(self Item) { b.self = self }

// pointsContain reports whether p is one of pts.
func pointsContain(pts []geom.Point, p geom.Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}

// ClearEditFlags clears the transient edit flags of item.
func ClearEditFlags(item Item) { item.ClearFlags(EditFlags) }

// ScreenOf returns the screen holding item's owner, or nil.
func ScreenOf(item Item) *Screen { return TopLevel(item).core().screen }

// TopLevel returns the screen-level owner of item.
func TopLevel(item Item) Item {
	for item.Parent() != nil {
		item = item.Parent()
	}
	return item
}
