// Package commit records the item changes of one editing operation and
// keeps the undo history of pushed operations.
package commit

import (
	"log"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// ChangeType says how an item took part in a change set.
type ChangeType int

const (
	Modified ChangeType = iota
	Added
	Removed
)

func (t ChangeType) String() string {
	switch t {
	case Added:
		return "added"
	case Removed:
		return "removed"
	}
	return "modified"
}

// Change is one item of a change set. Copy is the snapshot taken before the
// item was first modified, or nil for added items.
type Change struct {
	Type   ChangeType
	Item   sch.Item
	Copy   sch.Item
	Screen *sch.Screen
}

// Options configure a Commit or History.
type Option func(*options)

type options struct {
	history   *History
	schematic *sch.Schematic
}

// WithHistory makes Push append change sets to h.
func WithHistory(h *History) Option { return func(o *options) { o.history = h } }

// WithSchematic makes pushes, undos and redos notify s's listeners.
func WithSchematic(s *sch.Schematic) Option { return func(o *options) { o.schematic = s } }

// Commit collects the changes of one operation on screen. Each item is
// recorded once; later calls fold into the first record.
type Commit struct {
	screen  *sch.Screen
	opts    options
	changes []*Change
	index   map[sch.Item]*Change
}

var _ sch.Commit = (*Commit)(nil)

// New returns an empty commit for items on screen.
func New(screen *sch.Screen, opts ...Option) *Commit {
	c := &Commit{screen: screen, index: make(map[sch.Item]*Change)}
	for _, o := range opts {
		o(&c.opts)
	}
	return c
}

// Changes returns the recorded changes in recording order.
func (c *Commit) Changes() []*Change { return c.changes }

// Empty reports whether nothing has been recorded.
func (c *Commit) Empty() bool { return len(c.changes) == 0 }

func (c *Commit) screenOf(item sch.Item) *sch.Screen {
	if s := sch.ScreenOf(item); s != nil {
		return s
	}
	return c.screen
}

func (c *Commit) record(t ChangeType, item, snapshot sch.Item) {
	ch := &Change{Type: t, Item: item, Copy: snapshot, Screen: c.screenOf(item)}
	c.changes = append(c.changes, ch)
	c.index[item] = ch
}

func (c *Commit) drop(ch *Change) {
	for i, x := range c.changes {
		if x == ch {
			c.changes = append(c.changes[:i], c.changes[i+1:]...)
			break
		}
	}
	delete(c.index, ch.Item)
}

// Modify snapshots item, or its owning symbol or sheet, before a change.
func (c *Commit) Modify(item sch.Item) {
	item = sch.TopLevel(item)
	if _, ok := c.index[item]; ok {
		return
	}
	c.record(Modified, item, item.Clone())
}

// Added records an item already placed on the screen.
func (c *Commit) Added(item sch.Item) {
	item = sch.TopLevel(item)
	if ch, ok := c.index[item]; ok {
		if ch.Type == Removed {
			// Removed and put back: only its edits remain.
			ch.Type = Modified
		}
		return
	}
	c.record(Added, item, nil)
}

// Removed records an item already taken off the screen.
func (c *Commit) Removed(item sch.Item) {
	item = sch.TopLevel(item)
	if ch, ok := c.index[item]; ok {
		switch ch.Type {
		case Added:
			c.drop(ch)
		case Modified:
			ch.Type = Removed
		}
		return
	}
	c.record(Removed, item, item.Clone())
}

// Push hands the change set to the history and notifies listeners. An
// empty commit pushes nothing.
func (c *Commit) Push(description string) {
	if c.Empty() {
		return
	}
	set := &ChangeSet{Description: description, Changes: c.changes}
	for _, ch := range c.changes {
		sch.ClearEditFlags(ch.Item)
		if ch.Screen != nil {
			ch.Screen.SetModified()
		}
	}
	if c.opts.history != nil {
		c.opts.history.push(set)
	}
	notify(c.opts.schematic, set, false)
	c.reset()
}

// Revert restores every recorded item and discards the change set.
func (c *Commit) Revert() {
	for i := len(c.changes) - 1; i >= 0; i-- {
		ch := c.changes[i]
		switch ch.Type {
		case Added:
			remove(ch)
		case Removed:
			ch.Item.SwapData(ch.Copy)
			add(ch)
		case Modified:
			ch.Item.SwapData(ch.Copy)
		}
		sch.ClearEditFlags(ch.Item)
	}
	if len(c.changes) > 0 {
		log.Printf("commit: reverted %d changes", len(c.changes))
	}
	c.reset()
}

func (c *Commit) reset() {
	c.changes = nil
	c.index = make(map[sch.Item]*Change)
}

// notify reports set to the schematic's listeners. inverse swaps added and
// removed, as seen after an undo.
func notify(s *sch.Schematic, set *ChangeSet, inverse bool) {
	if s == nil {
		return
	}
	var added, removed, changed []sch.Item
	for _, ch := range set.Changes {
		t := ch.Type
		if inverse {
			switch t {
			case Added:
				t = Removed
			case Removed:
				t = Added
			}
		}
		switch t {
		case Added:
			added = append(added, ch.Item)
		case Removed:
			removed = append(removed, ch.Item)
		default:
			changed = append(changed, ch.Item)
		}
	}
	s.OnItemsAdded(added)
	s.OnItemsRemoved(removed)
	s.OnItemsChanged(changed)
}
