package commit

import (
	"log"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// DefaultHistoryLimit is the number of change sets kept for undo.
const DefaultHistoryLimit = 100

// ChangeSet is one pushed operation.
type ChangeSet struct {
	Description string
	Changes     []*Change
}

// History keeps pushed change sets. Undo and Redo swap each snapshot with
// the live item, so the snapshot always holds the state on the other side.
type History struct {
	undo  []*ChangeSet
	redo  []*ChangeSet
	limit int
	opts  options
}

// NewHistory returns a history keeping at most limit change sets; limit <= 0
// uses DefaultHistoryLimit.
func NewHistory(limit int, opts ...Option) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h := &History{limit: limit}
	for _, o := range opts {
		o(&h.opts)
	}
	return h
}

func (h *History) push(set *ChangeSet) {
	h.undo = append(h.undo, set)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// CanUndo reports whether Undo has anything to do.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Descriptions lists undoable operations, oldest first.
func (h *History) Descriptions() []string {
	out := make([]string, len(h.undo))
	for i, s := range h.undo {
		out[i] = s.Description
	}
	return out
}

// Clear drops every change set.
func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}

// Undo reverts the latest change set and returns its description.
func (h *History) Undo() (string, bool) {
	if !h.CanUndo() {
		return "", false
	}
	set := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	for i := len(set.Changes) - 1; i >= 0; i-- {
		ch := set.Changes[i]
		switch ch.Type {
		case Added:
			remove(ch)
		case Removed:
			swap(ch)
			add(ch)
		default:
			swap(ch)
		}
	}
	h.redo = append(h.redo, set)
	notify(h.opts.schematic, set, true)
	log.Printf("history: undo %q", set.Description)
	return set.Description, true
}

// Redo re-applies the latest undone change set and returns its description.
func (h *History) Redo() (string, bool) {
	if !h.CanRedo() {
		return "", false
	}
	set := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	for _, ch := range set.Changes {
		switch ch.Type {
		case Added:
			add(ch)
		case Removed:
			remove(ch)
			swap(ch)
		default:
			swap(ch)
		}
	}
	h.undo = append(h.undo, set)
	notify(h.opts.schematic, set, false)
	log.Printf("history: redo %q", set.Description)
	return set.Description, true
}

func swap(ch *Change) {
	if ch.Copy == nil {
		return
	}
	ch.Item.SwapData(ch.Copy)
	sch.ClearEditFlags(ch.Item)
}

func add(ch *Change) {
	if ch.Screen != nil {
		ch.Screen.Add(ch.Item)
	}
}

func remove(ch *Change) {
	if ch.Screen != nil {
		ch.Screen.Remove(ch.Item)
	}
}
