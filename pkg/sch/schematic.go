package sch

import (
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// Listener is notified when items of a schematic change.
type Listener interface {
	ItemsAdded(s *Schematic, items []Item)
	ItemsRemoved(s *Schematic, items []Item)
	ItemsChanged(s *Schematic, items []Item)
}

// Schematic is a whole design: the root sheet, its bus aliases and the
// connection graph over the hierarchy.
type Schematic struct {
	root      *Sheet
	current   SheetPath
	aliases   []*BusAlias
	graph     *ConnectionGraph
	hierarchy *SheetList
	listeners []Listener
}

// NewSchematic returns a schematic rooted at root. A nil root gets an empty
// root sheet.
func NewSchematic(root *Sheet) *Schematic {
	if root == nil {
		root = NewSheet("", "", geom.Point{}, geom.Point{})
		root.SetContent(NewScreen(""))
	}
	s := &Schematic{root: root}
	s.graph = NewConnectionGraph(s)
	s.current = NewSheetPath(root)
	return s
}

func (s *Schematic) Root() *Sheet                      { return s.root }
func (s *Schematic) RootScreen() *Screen               { return s.root.screen }
func (s *Schematic) ConnectionGraph() *ConnectionGraph { return s.graph }
func (s *Schematic) CurrentSheet() SheetPath           { return s.current }

// SetCurrentSheet selects the sheet instance being edited.
func (s *Schematic) SetCurrentSheet(p SheetPath) { s.current = p }

// CurrentScreen returns the content of the sheet being edited.
func (s *Schematic) CurrentScreen() *Screen { return s.current.LastScreen() }

// Hierarchy returns the flattened sheet list, building it with integrity
// checking on first use.
func (s *Schematic) Hierarchy() *SheetList {
	if s.hierarchy == nil {
		s.hierarchy = NewSheetList(s.root, true)
	}
	return s.hierarchy
}

// RefreshHierarchy drops the cached sheet list after structural changes.
func (s *Schematic) RefreshHierarchy() { s.hierarchy = nil }

// AddBusAlias registers alias, replacing one with the same name.
func (s *Schematic) AddBusAlias(alias *BusAlias) {
	for i, a := range s.aliases {
		if a.Name == alias.Name {
			s.aliases[i] = alias
			return
		}
	}
	s.aliases = append(s.aliases, alias)
}

// BusAlias returns the alias called name, or nil.
func (s *Schematic) BusAlias(name string) *BusAlias {
	for _, a := range s.aliases {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// BusAliases returns the registered aliases.
func (s *Schematic) BusAliases() []*BusAlias { return append([]*BusAlias(nil), s.aliases...) }

// RecalculateConnections re-resolves every connection of the hierarchy.
func (s *Schematic) RecalculateConnections() {
	s.graph.Recalculate(s.Hierarchy())
}

// AddListener registers l. Adding a listener twice has no effect.
func (s *Schematic) AddListener(l Listener) {
	for _, x := range s.listeners {
		if x == l {
			return
		}
	}
	s.listeners = append(s.listeners, l)
}

// RemoveListener unregisters l.
func (s *Schematic) RemoveListener(l Listener) {
	for i, x := range s.listeners {
		if x == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// OnItemsAdded notifies listeners; sheet changes drop the cached hierarchy.
func (s *Schematic) OnItemsAdded(items []Item) {
	s.notify(items, Listener.ItemsAdded)
}

func (s *Schematic) OnItemsRemoved(items []Item) {
	s.notify(items, Listener.ItemsRemoved)
}

func (s *Schematic) OnItemsChanged(items []Item) {
	s.notify(items, Listener.ItemsChanged)
}

func (s *Schematic) notify(items []Item, fn func(Listener, *Schematic, []Item)) {
	if len(items) == 0 {
		return
	}
	for _, it := range items {
		if it.Kind() == KindSheet {
			s.RefreshHierarchy()
			break
		}
	}
	for _, l := range s.listeners {
		fn(l, s, items)
	}
}
