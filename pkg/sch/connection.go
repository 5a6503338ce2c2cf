package sch

import (
	"fmt"
	"strings"
)

// ConnectionType classifies what a connection carries.
type ConnectionType int

const (
	ConnectionNone ConnectionType = iota
	ConnectionNet
	ConnectionBus
	ConnectionBusGroup
)

func (t ConnectionType) String() string {
	switch t {
	case ConnectionNet:
		return "net"
	case ConnectionBus:
		return "bus"
	case ConnectionBusGroup:
		return "bus group"
	}
	return "none"
}

// noNetName is the cached name of a connection with no name.
const noNetName = "<NO NET>"

// Connection is the resolved electrical identity of an item on one sheet
// path. Bus connections expand into member connections that they share
// with clones.
type Connection struct {
	parent     Item
	driver     Item
	lastDriver Item
	graph      *ConnectionGraph

	sheet      SheetPath
	localSheet SheetPath

	typ ConnectionType

	name        string
	localName   string
	localPrefix string
	prefix      string
	busPrefix   string
	suffix      string

	vectorStart  int64
	vectorEnd    int64
	vectorIndex  int64
	vectorPrefix string

	members []*Connection

	cachedName         string
	cachedNameWithPath string

	netCode      int
	busCode      int
	subgraphCode int

	dirty bool
}

// NewConnection returns an unconfigured connection of parent on path.
func NewConnection(parent Item, path SheetPath) *Connection {
	c := &Connection{parent: parent, sheet: path, localSheet: path}
	c.Reset()
	return c
}

// Reset clears everything except parent, sheet and graph.
func (c *Connection) Reset() {
	c.typ = ConnectionNone
	c.name, c.localName, c.localPrefix = "", "", ""
	c.cachedName, c.cachedNameWithPath = "", ""
	c.prefix, c.busPrefix, c.suffix = "", "", ""
	c.lastDriver = c.driver
	c.driver = nil
	c.members = nil
	c.dirty = true
	c.netCode, c.busCode, c.subgraphCode = 0, 0, 0
	c.vectorStart, c.vectorEnd, c.vectorIndex = 0, 0, 0
	c.vectorPrefix = ""
	c.recacheName()
}

// Clone copies other into c. The last driver, vector index, bus prefix and
// subgraph code stay with c. Local sheet and local name are copied only
// when c has none yet. Members of a matching bus type are cloned pairwise,
// by index for vectors and by full local name for groups; otherwise they are
// adopted.
func (c *Connection) Clone(other *Connection) {
	c.graph = other.graph
	c.driver = other.driver
	c.sheet = other.sheet
	if c.localSheet.Empty() {
		c.localSheet = other.localSheet
	}
	c.name = other.name
	if c.localName == "" {
		c.localName = other.localName
		c.localPrefix = other.localPrefix
	}
	c.prefix = other.prefix
	c.suffix = other.suffix
	c.netCode = other.netCode
	c.busCode = other.busCode
	c.vectorStart = other.vectorStart
	c.vectorEnd = other.vectorEnd
	c.vectorPrefix = other.vectorPrefix

	switch {
	case c.typ == ConnectionBus && other.typ == ConnectionBus:
		if len(c.members) == 0 {
			c.members = other.members
		} else {
			for i := 0; i < len(c.members) && i < len(other.members); i++ {
				c.members[i].Clone(other.members[i])
			}
		}
	case c.typ == ConnectionBusGroup && other.typ == ConnectionBusGroup:
		if len(c.members) == 0 {
			c.members = other.members
		} else {
			for _, m := range c.members {
				for _, om := range other.members {
					if om.FullLocalName() == m.FullLocalName() {
						m.Clone(om)
						break
					}
				}
			}
		}
	default:
		c.members = other.members
	}
	c.typ = other.typ
	c.recacheName()
}

// Equal compares driver identity, type, name and sheet. Codes and the
// dirty flag are ignored.
func (c *Connection) Equal(other *Connection) bool {
	if other == nil {
		return false
	}
	return c.driver == other.driver && c.typ == other.typ &&
		c.name == other.name && c.sheet.Equal(other.sheet)
}

// ConfigureFromLabel sets type, name and members from label text.
func (c *Connection) ConfigureFromLabel(label string) {
	c.members = nil
	unescaped := UnescapeString(label)

	if prefix, names, ok := ParseBusVector(unescaped); ok {
		c.typ = ConnectionBus
		c.vectorPrefix = prefix
		c.vectorStart, c.vectorEnd = busVectorRange(unescaped)
		for i, n := range names {
			m := NewConnection(c.parent, c.sheet)
			m.typ = ConnectionNet
			m.prefix = c.prefix
			m.localName = n
			m.localPrefix = c.prefix
			m.vectorIndex = c.vectorStart + int64(i)
			m.graph = c.graph
			m.SetName(n)
			c.members = append(c.members, m)
		}
	} else if prefix, names, ok := ParseBusGroup(unescaped); ok {
		c.typ = ConnectionBusGroup
		c.busPrefix = prefix
		if prefix != "" {
			prefix += "."
		}
		for _, n := range names {
			if alias := c.busAlias(n); alias != nil {
				for _, am := range alias.Members {
					c.members = append(c.members, c.groupMember(prefix, EscapeNetName(am)))
				}
				continue
			}
			c.members = append(c.members, c.groupMember(prefix, n))
		}
	} else {
		c.typ = ConnectionNet
	}

	c.name = label
	c.localName = label
	c.localPrefix = c.prefix
	c.recacheName()
}

func (c *Connection) groupMember(prefix, label string) *Connection {
	m := NewConnection(c.parent, c.sheet)
	m.graph = c.graph
	m.SetPrefix(prefix)
	m.ConfigureFromLabel(label)
	return m
}

func (c *Connection) busAlias(name string) *BusAlias {
	if c.graph == nil {
		return nil
	}
	return c.graph.BusAlias(name)
}

func (c *Connection) recacheName() {
	if c.name == "" {
		c.cachedName = noNetName
	} else {
		c.cachedName = c.prefix + c.name + c.suffix
	}

	prependPath := c.parent != nil && c.typ != ConnectionNone
	switch d := c.driver.(type) {
	case *Label:
		if d.IsGlobal() {
			prependPath = false
		}
	case *Pin:
		// Pins drive either power nets or nets of uniquely annotated
		// symbols. Only sheet-local power keeps the path.
		if !d.IsLocalPower() {
			prependPath = false
		}
	}
	if prependPath {
		c.cachedNameWithPath = c.sheet.PathHumanReadable(false) + c.cachedName
	} else {
		c.cachedNameWithPath = c.cachedName
	}
}

// IsDriver reports whether the parent is an item that can name a net.
func (c *Connection) IsDriver() bool {
	switch p := c.parent.(type) {
	case *Label, *SheetPin, *Sheet:
		return true
	case *Pin:
		return p.IsPower() || p.parent.IsAnnotated(c.sheet)
	}
	return false
}

// IsSubsetOf reports whether c appears, by full local name, among the
// members of the bus other.
func (c *Connection) IsSubsetOf(other *Connection) bool {
	if other == nil || !other.IsBus() {
		return false
	}
	me := c.FullLocalName()
	for _, m := range other.members {
		if m.FullLocalName() == me {
			return true
		}
	}
	return false
}

// IsMemberOfBus reports whether c is one of the bus other's members by
// sheet-independent name.
func (c *Connection) IsMemberOfBus(other *Connection) bool {
	if other == nil || !other.IsBus() {
		return false
	}
	me := c.Name(true)
	for _, m := range other.members {
		if m.Name(true) == me {
			return true
		}
	}
	return false
}

// SetDriver sets the driving item of c and all its members and recaches
// their names.
func (c *Connection) SetDriver(d Item) {
	c.driver = d
	c.recacheName()
	for _, m := range c.members {
		m.SetDriver(d)
	}
}

// SetSheet places c and all its members on sheet p. The local sheet moves
// with it.
func (c *Connection) SetSheet(p SheetPath) {
	c.sheet = p
	c.localSheet = p
	c.recacheName()
	for _, m := range c.members {
		m.SetSheet(p)
	}
}

// SetPrefix sets the name prefix of c and all its members.
func (c *Connection) SetPrefix(prefix string) {
	c.prefix = prefix
	c.recacheName()
	for _, m := range c.members {
		m.SetPrefix(prefix)
	}
}

// SetSuffix sets the name suffix of c and all its members.
func (c *Connection) SetSuffix(suffix string) {
	c.suffix = suffix
	c.recacheName()
	for _, m := range c.members {
		m.SetSuffix(suffix)
	}
}

// SetName renames c alone; members keep their names.
func (c *Connection) SetName(name string) {
	c.name = name
	c.recacheName()
}

// Name returns the cached name, qualified with the sheet path unless
// ignoreSheet is set or the name is global.
func (c *Connection) Name(ignoreSheet bool) string {
	if ignoreSheet {
		return c.cachedName
	}
	return c.cachedNameWithPath
}

// FullLocalName is the local prefix, local name and suffix.
func (c *Connection) FullLocalName() string {
	name := c.localName
	if name == "" {
		name = c.name
	}
	return c.localPrefix + name + c.suffix
}

func (c *Connection) Parent() Item { return c.parent }

// Driver is the item naming the connection, or nil before the graph has
// chosen one.
func (c *Connection) Driver() Item { return c.driver }

func (c *Connection) Sheet() SheetPath { return c.sheet }

// LocalSheet is the sheet the connection's parent sits on. Clone only
// fills it in when it is empty.
func (c *Connection) LocalSheet() SheetPath { return c.localSheet }

func (c *Connection) Type() ConnectionType { return c.typ }
func (c *Connection) LocalName() string    { return c.localName }
func (c *Connection) Prefix() string       { return c.prefix }
func (c *Connection) Suffix() string       { return c.suffix }

// BusPrefix is the "NAME." prefix a named bus group gives its members.
func (c *Connection) BusPrefix() string { return c.busPrefix }

// Vector fields describe a member of a vector bus, or the bus range itself.
func (c *Connection) VectorPrefix() string        { return c.vectorPrefix }
func (c *Connection) VectorIndex() int64          { return c.vectorIndex }
func (c *Connection) VectorStart() int64          { return c.vectorStart }
func (c *Connection) VectorEnd() int64            { return c.vectorEnd }
func (c *Connection) Members() []*Connection      { return c.members }
func (c *Connection) Graph() *ConnectionGraph     { return c.graph }
func (c *Connection) SetGraph(g *ConnectionGraph) { c.graph = g }
func (c *Connection) SetLocalSheet(p SheetPath)   { c.localSheet = p }

func (c *Connection) IsBus() bool {
	return c.typ == ConnectionBus || c.typ == ConnectionBusGroup
}

func (c *Connection) IsNet() bool         { return c.typ == ConnectionNet }
func (c *Connection) IsUnconnected() bool { return c.typ == ConnectionNone }

// Codes are assigned by the connection graph and are zero until then.
// Equality ignores them.
func (c *Connection) NetCode() int          { return c.netCode }
func (c *Connection) SetNetCode(n int)      { c.netCode = n }
func (c *Connection) BusCode() int          { return c.busCode }
func (c *Connection) SetBusCode(n int)      { c.busCode = n }
func (c *Connection) SubgraphCode() int     { return c.subgraphCode }
func (c *Connection) SetSubgraphCode(n int) { c.subgraphCode = n }

// IsDirty reports whether the connection needs to be resolved again.
func (c *Connection) IsDirty() bool { return c.dirty }
func (c *Connection) SetDirty()     { c.dirty = true }
func (c *Connection) ClearDirty()   { c.dirty = false }

// HasDriverChanged reports whether the driver differs from the one seen
// before the last Reset or ClearDriverChanged.
func (c *Connection) HasDriverChanged() bool { return c.driver != c.lastDriver }

func (c *Connection) ClearDriverChanged() { c.lastDriver = c.driver }

// AllMembers returns members of c and, recursively, of nested groups.
func (c *Connection) AllMembers() []*Connection {
	var out []*Connection
	for _, m := range c.members {
		out = append(out, m)
		if m.IsBus() {
			out = append(out, m.AllMembers()...)
		}
	}
	return out
}

func (c *Connection) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q", c.typ, c.Name(false))
	if len(c.members) > 0 {
		names := make([]string, len(c.members))
		for i, m := range c.members {
			names[i] = m.Name(true)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(names, " "))
	}
	return b.String()
}
