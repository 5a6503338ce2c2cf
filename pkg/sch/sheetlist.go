package sch

import (
	"log"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// SheetList is the flattened hierarchy: one path per sheet instance in
// depth-first order.
type SheetList struct {
	paths   []SheetPath
	current SheetPath
}

// NewSheetList flattens the hierarchy below root.
func NewSheetList(root *Sheet, checkIntegrity bool) *SheetList {
	l := &SheetList{}
	if root != nil {
		l.BuildSheetList(root, checkIntegrity)
	}
	return l
}

// BuildSheetList appends sheet and its sub-sheets.
//
// With checkIntegrity, a sub-sheet whose file already appears on the
// current path is not descended; it is removed from its parent screen once
// the siblings have been visited and that screen is marked modified.
// Without it, only a sub-sheet naming its own parent's file is skipped.
func (l *SheetList) BuildSheetList(sheet *Sheet, checkIntegrity bool) {
	if sheet == nil {
		return
	}
	l.current = l.current.Push(sheet)
	l.current.virtualPage = len(l.paths) + 1
	l.paths = append(l.paths, l.current)

	if screen := sheet.screen; screen != nil {
		var bad []*Sheet
		parentFile := screen.FileName
		for _, child := range screen.Sheets() {
			if checkIntegrity {
				if l.current.TestForRecursion(l.childFile(child), parentFile) {
					log.Printf("sheet list: recursive sheet %q (%s) removed from %s", child.Name, child.FileName, parentFile)
					bad = append(bad, child)
					continue
				}
			} else if filepath.Clean(l.childFile(child)) == filepath.Clean(parentFile) {
				log.Printf("sheet list: sheet %q references its parent file %s; skipped", child.Name, parentFile)
				continue
			}
			l.BuildSheetList(child, checkIntegrity)
		}
		for _, child := range bad {
			screen.Remove(child)
			screen.SetModified()
		}
	}
	l.current = l.current.Pop()
}

// childFile is the content file of child, judged by its screen when loaded.
func (l *SheetList) childFile(child *Sheet) string {
	if child.screen != nil && child.screen.FileName != "" {
		return child.screen.FileName
	}
	return child.FileName
}

func (l *SheetList) Len() int { return len(l.paths) }

// Paths returns a copy of the flattened paths.
func (l *SheetList) Paths() []SheetPath { return append([]SheetPath(nil), l.paths...) }

// At returns the path at i.
func (l *SheetList) At(i int) (SheetPath, bool) {
	if i < 0 || i >= len(l.paths) {
		log.Printf("sheet list: index %d out of range (len %d)", i, len(l.paths))
		return SheetPath{}, false
	}
	return l.paths[i], true
}

// IsModified reports whether any screen in the hierarchy is modified.
func (l *SheetList) IsModified() bool {
	for _, p := range l.paths {
		if s := p.LastScreen(); s != nil && s.IsModified() {
			return true
		}
	}
	return false
}

// ClearModifyStatus clears the modified flag of every screen.
func (l *SheetList) ClearModifyStatus() {
	for _, p := range l.paths {
		if s := p.LastScreen(); s != nil {
			s.ClearModified()
		}
	}
}

// FindSheetForScreen returns the first path showing screen.
func (l *SheetList) FindSheetForScreen(screen *Screen) (SheetPath, bool) {
	for _, p := range l.paths {
		if p.LastScreen() == screen {
			return p, true
		}
	}
	return SheetPath{}, false
}

// FindAllSheetsForScreen returns every path showing screen.
func (l *SheetList) FindAllSheetsForScreen(screen *Screen) []SheetPath {
	var out []SheetPath
	for _, p := range l.paths {
		if p.LastScreen() == screen {
			out = append(out, p)
		}
	}
	return out
}

// ContainsSheet reports whether sheet ends any path.
func (l *SheetList) ContainsSheet(sheet *Sheet) bool {
	for _, p := range l.paths {
		if p.Last() == sheet {
			return true
		}
	}
	return false
}

// HasPath reports whether a path with the given id sequence exists.
func (l *SheetList) HasPath(path KIIDPath) bool {
	_, ok := l.GetSheetPathByKIIDPath(path)
	return ok
}

// GetSheetPathByKIIDPath returns the path whose ids equal path.
func (l *SheetList) GetSheetPathByKIIDPath(path KIIDPath) (SheetPath, bool) {
	for _, p := range l.paths {
		if p.Path().Equal(path) {
			return p, true
		}
	}
	return SheetPath{}, false
}

// GetItem finds the item with id anywhere in the hierarchy, including pins.
func (l *SheetList) GetItem(id uuid.UUID) (Item, SheetPath, bool) {
	for _, p := range l.paths {
		s := p.LastScreen()
		if s == nil {
			continue
		}
		if it, ok := s.Get(id); ok {
			return it, p, true
		}
		for _, it := range s.items {
			for _, sub := range subItems(it) {
				if sub.ID() == id {
					return sub, p, true
				}
			}
		}
	}
	return nil, SheetPath{}, false
}

// FillItemMap adds every item and sub-item of the hierarchy to m.
func (l *SheetList) FillItemMap(m map[uuid.UUID]Item) {
	for _, p := range l.paths {
		s := p.LastScreen()
		if s == nil {
			continue
		}
		for _, it := range s.items {
			m[it.ID()] = it
			for _, sub := range subItems(it) {
				m[sub.ID()] = sub
			}
		}
	}
}

// SortByPageNumbers orders paths by numeric page number, falling back to
// a string compare and then to build order.
func (l *SheetList) SortByPageNumbers() {
	sort.SliceStable(l.paths, func(i, j int) bool {
		a, b := l.paths[i].PageNumber(), l.paths[j].PageNumber()
		an, aerr := strconv.Atoi(a)
		bn, berr := strconv.Atoi(b)
		switch {
		case aerr == nil && berr == nil && an != bn:
			return an < bn
		case aerr == nil && berr != nil:
			return true
		case aerr != nil && berr == nil:
			return false
		case a != b && (aerr != nil || berr != nil):
			return a < b
		}
		return l.paths[i].virtualPage < l.paths[j].virtualPage
	})
	for i := range l.paths {
		l.paths[i].virtualPage = i + 1
	}
}

// subItems returns the connectable sub-items owned by it.
func subItems(it Item) []Item {
	switch v := it.(type) {
	case *Symbol:
		out := make([]Item, len(v.pins))
		for i, p := range v.pins {
			out[i] = p
		}
		return out
	case *Sheet:
		out := make([]Item, len(v.pins))
		for i, p := range v.pins {
			out[i] = p
		}
		return out
	}
	return nil
}
