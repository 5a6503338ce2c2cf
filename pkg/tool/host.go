package tool

import (
	"github.com/OpenTraceLab/OpenTraceSch/pkg/commit"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// Grid snaps positions.
type Grid interface {
	// BestSnapAnchor returns the position the cursor at p snaps to,
	// ignoring the items in skip.
	BestSnapAnchor(p geom.Point, skip []sch.Item) geom.Point
	AlignGrid(p geom.Point) geom.Point
	// Step is the grid pitch bend wires fan out by.
	Step() int
}

// View is the canvas a session draws on.
type View interface {
	CursorPosition() geom.Point
	Refresh()
	SetAutoPan(enabled bool)
}

// CursorWarper is a View that can move the cursor.
type CursorWarper interface {
	WarpCursor(p geom.Point)
}

// Host is the editor a MoveTool works for.
type Host interface {
	Screen() *sch.Screen
	Grid() Grid
	View() View
	Selection() *Selection
	NewCommit() sch.Commit
}

// Recalculator is a Host that recomputes connectivity after a commit.
type Recalculator interface {
	RecalculateConnections()
}

// LabelRotator is a Host that orients labels after they were moved.
type LabelRotator interface {
	RotateLabel(s *sch.Screen, l *sch.Label) bool
}

// Frame is a Host over a schematic, editing its current sheet and pushing
// commits to an undo history.
type Frame struct {
	schematic *sch.Schematic
	history   *commit.History
	grid      *GridHelper
	view      View
	selection *Selection
}

var (
	_ Host         = (*Frame)(nil)
	_ Recalculator = (*Frame)(nil)
	_ LabelRotator = (*Frame)(nil)
)

// NewFrame returns a frame editing s. A nil grid gets the default grid and
// a nil view gets a StaticView.
func NewFrame(s *sch.Schematic, grid *GridHelper, view View) *Frame {
	if grid == nil {
		grid = NewGridHelper(DefaultGridSize)
	}
	if view == nil {
		view = &StaticView{}
	}
	f := &Frame{
		schematic: s,
		history:   commit.NewHistory(commit.DefaultHistoryLimit, commit.WithSchematic(s)),
		grid:      grid,
		view:      view,
		selection: NewSelection(),
	}
	if grid.Screen == nil {
		grid.Screen = f.Screen()
	}
	return f
}

func (f *Frame) Schematic() *sch.Schematic { return f.schematic }
func (f *Frame) History() *commit.History  { return f.history }
func (f *Frame) Screen() *sch.Screen       { return f.schematic.CurrentScreen() }
func (f *Frame) Grid() Grid                { return f.grid }
func (f *Frame) View() View                { return f.view }
func (f *Frame) Selection() *Selection     { return f.selection }

func (f *Frame) NewCommit() sch.Commit {
	return commit.New(f.Screen(), commit.WithHistory(f.history), commit.WithSchematic(f.schematic))
}

func (f *Frame) RecalculateConnections() { f.schematic.RecalculateConnections() }

func (f *Frame) RotateLabel(s *sch.Screen, l *sch.Label) bool { return sch.AutoRotateLabel(s, l) }

// StaticView is a View with a settable cursor that counts repaints. It
// serves batch callers and tests.
type StaticView struct {
	Cursor    geom.Point
	Refreshes int
	AutoPan   bool
}

func (v *StaticView) CursorPosition() geom.Point { return v.Cursor }
func (v *StaticView) Refresh()                   { v.Refreshes++ }
func (v *StaticView) SetAutoPan(enabled bool)    { v.AutoPan = enabled }
func (v *StaticView) WarpCursor(p geom.Point)    { v.Cursor = p }
