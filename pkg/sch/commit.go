package sch

// Commit records the changes of one user operation so they can be pushed
// to the undo history or reverted.
type Commit interface {
	// Modify snapshots item before it is changed.
	Modify(item Item)
	// Added records an item already placed on the screen.
	Added(item Item)
	// Removed records an item already taken off the screen.
	Removed(item Item)
	// Push finalizes the change set under description.
	Push(description string)
	// Revert undoes every recorded change.
	Revert()
}
