package sch

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Subgraph is one set of directly connected items on one sheet instance.
type Subgraph struct {
	Code   int
	Sheet  SheetPath
	Items  []Item
	Driver Item
}

// Connection returns the driver's connection, or the first item's.
func (s *Subgraph) Connection() *Connection {
	if s.Driver != nil {
		return s.Driver.Connection(s.Sheet)
	}
	if len(s.Items) > 0 {
		return s.Items[0].Connection(s.Sheet)
	}
	return nil
}

// ConnectionGraph resolves the connection of every connectable item on
// every sheet instance.
type ConnectionGraph struct {
	aliases AliasResolver

	subgraphs []*Subgraph
	netCodes  map[string]int
	busCodes  map[string]int
}

// NewConnectionGraph returns an empty graph resolving bus aliases through
// aliases, which may be nil.
func NewConnectionGraph(aliases AliasResolver) *ConnectionGraph {
	g := &ConnectionGraph{aliases: aliases}
	g.Reset()
	return g
}

// Reset drops every subgraph and code.
func (g *ConnectionGraph) Reset() {
	g.subgraphs = nil
	g.netCodes = make(map[string]int)
	g.busCodes = make(map[string]int)
}

// BusAlias looks up an alias by name.
func (g *ConnectionGraph) BusAlias(name string) *BusAlias {
	if g == nil || g.aliases == nil {
		return nil
	}
	return g.aliases.BusAlias(name)
}

// Subgraphs returns the subgraphs of the last recalculation.
func (g *ConnectionGraph) Subgraphs() []*Subgraph { return g.subgraphs }

// NetCode returns the code assigned to a full net name.
func (g *ConnectionGraph) NetCode(name string) (int, bool) {
	c, ok := g.netCodes[name]
	return c, ok
}

// NetNames returns every resolved net name, sorted.
func (g *ConnectionGraph) NetNames() []string {
	names := make([]string, 0, len(g.netCodes))
	for n := range g.netCodes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SubgraphsForNet returns the subgraphs whose connection has name.
func (g *ConnectionGraph) SubgraphsForNet(name string) []*Subgraph {
	var out []*Subgraph
	for _, sg := range g.subgraphs {
		if c := sg.Connection(); c != nil && c.Name(false) == name {
			out = append(out, sg)
		}
	}
	return out
}

// Recalculate rebuilds every subgraph of the hierarchy.
func (g *ConnectionGraph) Recalculate(list *SheetList) {
	g.Reset()
	if list == nil {
		return
	}
	for _, path := range list.Paths() {
		screen := path.LastScreen()
		if screen == nil {
			continue
		}
		g.buildSheet(path, screen)
	}
}

func connectableItems(s *Screen) []Item {
	var out []Item
	for _, it := range s.Items() {
		if it.HasFlag(StructDeleted) {
			continue
		}
		switch v := it.(type) {
		case *Symbol, *Sheet:
			out = append(out, subItems(v)...)
		default:
			out = append(out, it)
		}
	}
	return out
}

func (g *ConnectionGraph) buildSheet(path SheetPath, screen *Screen) {
	items := connectableItems(screen)
	ug := simple.NewUndirectedGraph()
	for i := range items {
		ug.AddNode(simple.Node(i))
	}
	for i := range items {
		bi := items[i].BoundingBox()
		for j := i + 1; j < len(items); j++ {
			if !bi.Intersects(items[j].BoundingBox()) {
				continue
			}
			if itemsConnected(items[i], items[j]) {
				ug.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}

	components := topo.ConnectedComponents(ug)
	for _, comp := range components {
		sortNodes(comp)
	}
	sort.Slice(components, func(a, b int) bool {
		return components[a][0].ID() < components[b][0].ID()
	})

	for _, comp := range components {
		sg := &Subgraph{Code: len(g.subgraphs) + 1, Sheet: path}
		for _, n := range comp {
			sg.Items = append(sg.Items, items[n.ID()])
		}
		g.resolve(sg)
		g.subgraphs = append(g.subgraphs, sg)
	}
}

func sortNodes(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}

// itemsConnected reports whether a and b touch electrically.
func itemsConnected(a, b Item) bool {
	if !a.CanConnect(b) || !b.CanConnect(a) {
		return false
	}
	for _, p := range a.ConnectionPoints() {
		if b.IsConnected(p) {
			return true
		}
	}
	return onWireBody(a, b) || onWireBody(b, a)
}

// onWireBody reports whether the point item a sits on the body of wire b.
// Labels and junctions connect anywhere along a wire.
func onWireBody(a, b Item) bool {
	w, ok := b.(*Wire)
	if !ok {
		return false
	}
	switch a.(type) {
	case *Label, *Junction:
		p := a.Position()
		return geom.OnSegment(w.start, w.end, p)
	}
	return false
}

// driverPriority ranks the items that may name a subgraph; zero never
// drives.
func driverPriority(it Item) int {
	switch v := it.(type) {
	case *Label:
		switch v.kind {
		case KindGlobalLabel:
			return 7
		case KindLabel:
			return 4
		case KindHierLabel:
			return 3
		}
	case *Pin:
		switch {
		case v.IsGlobalPower():
			return 6
		case v.IsLocalPower():
			return 5
		}
		return 1
	case *SheetPin:
		return 2
	}
	return 0
}

func driverName(it Item, path SheetPath) string {
	switch v := it.(type) {
	case *Label:
		return v.Text
	case *Pin:
		if v.IsPower() {
			return v.PowerNetName()
		}
		return v.DefaultNetName(path)
	case *SheetPin:
		return v.Name
	}
	return ""
}

func (g *ConnectionGraph) resolve(sg *Subgraph) {
	best, bestName := 0, ""
	for _, it := range sg.Items {
		pr := driverPriority(it)
		if pr == 0 {
			continue
		}
		if p, ok := it.(*Pin); ok && !p.IsPower() && !p.parent.IsAnnotated(sg.Sheet) {
			continue
		}
		name := driverName(it, sg.Sheet)
		if pr > best || (pr == best && name < bestName) {
			best, bestName, sg.Driver = pr, name, it
		}
	}

	for _, it := range sg.Items {
		conn := it.InitializeConnection(sg.Sheet, g)
		if sg.Driver != nil {
			conn.ConfigureFromLabel(bestName)
			conn.SetDriver(sg.Driver)
		}
		conn.SetSubgraphCode(sg.Code)
		g.assignCodes(conn)
		conn.ClearDirty()
	}
}

func (g *ConnectionGraph) assignCodes(c *Connection) {
	switch {
	case c.IsNet():
		c.SetNetCode(codeFor(g.netCodes, c.Name(false)))
	case c.IsBus():
		c.SetBusCode(codeFor(g.busCodes, c.Name(false)))
		for _, m := range c.Members() {
			g.assignCodes(m)
		}
	}
}

func codeFor(codes map[string]int, name string) int {
	if c, ok := codes[name]; ok {
		return c
	}
	c := len(codes) + 1
	codes[name] = c
	return c
}
