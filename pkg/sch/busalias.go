package sch

import (
	"strings"

	"github.com/google/uuid"
)

// BusAlias names a reusable list of bus members.
type BusAlias struct {
	ID      uuid.UUID
	Name    string
	Members []string

	// Screen is the sheet file the alias was declared in, if any.
	Screen *Screen
}

// NewBusAlias returns an alias with a fresh id.
func NewBusAlias(name string, members ...string) *BusAlias {
	return &BusAlias{ID: uuid.New(), Name: name, Members: append([]string(nil), members...)}
}

// Contains reports whether member is one of the alias members.
func (a *BusAlias) Contains(member string) bool {
	for _, m := range a.Members {
		if m == member {
			return true
		}
	}
	return false
}

func (a *BusAlias) String() string {
	return a.Name + "{" + strings.Join(a.Members, " ") + "}"
}

// AliasResolver looks up bus aliases by name.
type AliasResolver interface {
	BusAlias(name string) *BusAlias
}
