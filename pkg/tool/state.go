// Package tool implements the interactive move and drag engine and the
// align-to-grid batch operation on a schematic screen.
package tool

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
)

// State is the phase of a move session.
type State uint8

const (
	StateIdle State = iota
	StateArmed
	StateFollowing
	StateCommitted
	StateCancelled
)

var stateNames = map[State]string{
	StateIdle:      "Idle",
	StateArmed:     "Armed",
	StateFollowing: "Following",
	StateCommitted: "Committed",
	StateCancelled: "Cancelled",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", s)
}

// Active reports whether a session is armed or following.
func (s State) Active() bool { return s == StateArmed || s == StateFollowing }

// Mode selects between moving the selection alone and dragging it with the
// wires attached to it.
type Mode uint8

const (
	ModeMove Mode = iota
	ModeDrag
)

func (m Mode) String() string {
	if m == ModeDrag {
		return "drag"
	}
	return "move"
}

// EventType identifies an interaction event delivered to a session.
type EventType uint8

const (
	EventMotion EventType = iota
	EventRefresh
	EventDrop
	EventCancel
	EventActivate
	EventContextMenu
)

var eventNames = map[EventType]string{
	EventMotion:      "motion",
	EventRefresh:     "refresh",
	EventDrop:        "drop",
	EventCancel:      "cancel",
	EventActivate:    "activate",
	EventContextMenu: "context-menu",
}

func (e EventType) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", e)
}

// Event is one interaction event. Pos is the cursor position of motion
// events; other events read the cursor from the view.
type Event struct {
	Type EventType
	Pos  geom.Point
}

// Motion returns a motion event to p.
func Motion(p geom.Point) Event { return Event{Type: EventMotion, Pos: p} }

// LineMode constrains how dragged wires may bend.
type LineMode uint8

const (
	LineModeOrthogonal LineMode = iota
	LineModeFree
)

func (m LineMode) String() string {
	if m == LineModeFree {
		return "free"
	}
	return "orthogonal"
}

// ParseLineMode converts a configuration string into a LineMode.
func ParseLineMode(s string) (LineMode, error) {
	switch s {
	case "", "orthogonal", "90":
		return LineModeOrthogonal, nil
	case "free":
		return LineModeFree, nil
	}
	return LineModeOrthogonal, fmt.Errorf("tool: unknown line mode %q", s)
}

// Config tunes a MoveTool.
type Config struct {
	LineMode LineMode
	// WarpCursor moves the cursor onto the snap anchor when a session arms.
	WarpCursor bool
	// AutoRotateLabels turns moved labels away from the wire they end on.
	AutoRotateLabels bool
}

// DefaultConfig returns orthogonal dragging with cursor warping.
func DefaultConfig() Config {
	return Config{LineMode: LineModeOrthogonal, WarpCursor: true, AutoRotateLabels: true}
}
