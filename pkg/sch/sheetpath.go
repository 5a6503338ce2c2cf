package sch

import (
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// KIIDPath is a sequence of sheet ids from the root down.
type KIIDPath []uuid.UUID

// String renders the path as "/id/id".
func (p KIIDPath) String() string {
	var b strings.Builder
	for _, id := range p {
		b.WriteByte('/')
		b.WriteString(id.String())
	}
	return b.String()
}

// ParseKIIDPath parses the form written by String. Empty segments are
// skipped; trailing slashes are accepted.
func ParseKIIDPath(s string) (KIIDPath, error) {
	var out KIIDPath
	for _, part := range strings.Split(s, "/") {
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// Equal reports whether both paths hold the same ids.
func (p KIIDPath) Equal(o KIIDPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// SheetPath locates one instance of a sheet in the hierarchy: the root
// sheet followed by every sheet down to the instance.
type SheetPath struct {
	sheets      []*Sheet
	hash        uint64
	virtualPage int
}

// NewSheetPath returns the path through sheets.
func NewSheetPath(sheets ...*Sheet) SheetPath {
	p := SheetPath{sheets: append([]*Sheet(nil), sheets...)}
	p.rehash()
	return p
}

func (p *SheetPath) rehash() {
	if len(p.sheets) == 0 {
		p.hash = 0
		return
	}
	buf := make([]byte, 0, 16*len(p.sheets))
	for _, s := range p.sheets {
		buf = append(buf, s.id[:]...)
	}
	p.hash = xxh3.Hash(buf)
}

// Push returns a copy of p extended by sheet.
func (p SheetPath) Push(sheet *Sheet) SheetPath {
	sheets := make([]*Sheet, len(p.sheets), len(p.sheets)+1)
	copy(sheets, p.sheets)
	n := SheetPath{sheets: append(sheets, sheet), virtualPage: p.virtualPage}
	n.rehash()
	return n
}

// Pop returns a copy of p without its last sheet.
func (p SheetPath) Pop() SheetPath {
	if len(p.sheets) == 0 {
		return p
	}
	return NewSheetPath(p.sheets[:len(p.sheets)-1]...)
}

// Concat returns p followed by o.
func (p SheetPath) Concat(o SheetPath) SheetPath {
	sheets := make([]*Sheet, 0, len(p.sheets)+len(o.sheets))
	sheets = append(sheets, p.sheets...)
	sheets = append(sheets, o.sheets...)
	return NewSheetPath(sheets...)
}

func (p SheetPath) Len() int         { return len(p.sheets) }
func (p SheetPath) Empty() bool      { return len(p.sheets) == 0 }
func (p SheetPath) Hash() uint64     { return p.hash }
func (p SheetPath) VirtualPage() int { return p.virtualPage }

// Sheets returns a copy of the sheet sequence.
func (p SheetPath) Sheets() []*Sheet { return append([]*Sheet(nil), p.sheets...) }

// GetSheet returns the sheet at index i, or nil with a diagnostic when i is
// out of range.
func (p SheetPath) GetSheet(i int) *Sheet {
	if i < 0 || i >= len(p.sheets) {
		log.Printf("sheet path: index %d out of range (len %d)", i, len(p.sheets))
		return nil
	}
	return p.sheets[i]
}

// Last returns the deepest sheet, or nil for an empty path.
func (p SheetPath) Last() *Sheet {
	if len(p.sheets) == 0 {
		return nil
	}
	return p.sheets[len(p.sheets)-1]
}

// LastScreen returns the content of the deepest sheet, or nil.
func (p SheetPath) LastScreen() *Screen {
	if s := p.Last(); s != nil {
		return s.screen
	}
	return nil
}

// Equal compares paths by hash.
func (p SheetPath) Equal(o SheetPath) bool { return p.hash == o.hash }

// Cmp orders paths by length first, then by sheet ids.
func (p SheetPath) Cmp(o SheetPath) int {
	if len(p.sheets) != len(o.sheets) {
		if len(p.sheets) < len(o.sheets) {
			return -1
		}
		return 1
	}
	for i := range p.sheets {
		if c := strings.Compare(p.sheets[i].id.String(), o.sheets[i].id.String()); c != 0 {
			return c
		}
	}
	return 0
}

// Path returns the id sequence including the root.
func (p SheetPath) Path() KIIDPath {
	out := make(KIIDPath, len(p.sheets))
	for i, s := range p.sheets {
		out[i] = s.id
	}
	return out
}

// PathAsString renders the ids below the root as "/id/id/". The root path
// renders as "/".
func (p SheetPath) PathAsString() string {
	var b strings.Builder
	b.WriteByte('/')
	for i := 1; i < len(p.sheets); i++ {
		b.WriteString(p.sheets[i].id.String())
		b.WriteByte('/')
	}
	return b.String()
}

// PathHumanReadable renders sheet names below the root as "/name/name/".
// With stripTrailing the final separator is dropped, except for the root.
func (p SheetPath) PathHumanReadable(stripTrailing bool) string {
	var b strings.Builder
	b.WriteByte('/')
	for i := 1; i < len(p.sheets); i++ {
		b.WriteString(p.sheets[i].Name)
		b.WriteByte('/')
	}
	s := b.String()
	if stripTrailing && len(s) > 1 {
		s = strings.TrimSuffix(s, "/")
	}
	return s
}

// PageNumber returns the page number of this instance.
func (p SheetPath) PageNumber() string {
	s := p.Last()
	if s == nil {
		return ""
	}
	return s.PageNumber(p.Pop().Path())
}

// SetPageNumber sets the page number of this instance.
func (p SheetPath) SetPageNumber(page string) {
	s := p.Last()
	if s == nil {
		log.Printf("sheet path: cannot set page %q on an empty path", page)
		return
	}
	s.SetPageNumber(p.Pop().Path(), page)
}

// TestForRecursion reports whether adding a sheet with file src to the
// sheet with file dest on this path would make the hierarchy recursive.
func (p SheetPath) TestForRecursion(src, dest string) bool {
	src, dest = filepath.Clean(src), filepath.Clean(dest)
	if src == dest {
		return true
	}
	idx := -1
	for i, s := range p.sheets {
		if s.screen != nil && filepath.Clean(s.screen.FileName) == dest {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return false
	}
	for i := idx - 1; i >= 0; i-- {
		if s := p.sheets[i].screen; s != nil && filepath.Clean(s.FileName) == src {
			return true
		}
	}
	return false
}

func (p SheetPath) String() string {
	return p.PathHumanReadable(true) + " [" + strconv.FormatUint(p.hash, 16) + "]"
}
