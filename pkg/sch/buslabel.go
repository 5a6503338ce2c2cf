package sch

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// maxBusVectorMembers bounds the expansion of PREFIX[a..b].
const maxBusVectorMembers = 4096

// busLabelLexer tokenizes bus label text. Overbar, superscript and
// subscript markup (~{...}, ^{...}, _{...}) is tracked as a nested state so
// its braces are not taken for a bus group.
var busLabelLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Markup", Pattern: `[~^_]\{`, Action: lexer.Push("Markup")},
		{Name: "GroupOpen", Pattern: `\{`, Action: lexer.Push("Group")},
		{Name: "VectorOpen", Pattern: `\[`, Action: lexer.Push("Vector")},
		{Name: "Space", Pattern: `\s+`},
		{Name: "Text", Pattern: `[^\[\]{}~^_\s]+|[~^_]`},
	},
	"Markup": {
		{Name: "Markup", Pattern: `[~^_]\{`, Action: lexer.Push("Markup")},
		{Name: "VectorOpen", Pattern: `\[`, Action: lexer.Push("Vector")},
		{Name: "MarkupClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "MarkupText", Pattern: `[^\[\]{}~^_]+|[~^_]`},
	},
	"Group": {
		{Name: "Markup", Pattern: `[~^_]\{`, Action: lexer.Push("Markup")},
		{Name: "VectorOpen", Pattern: `\[`, Action: lexer.Push("Vector")},
		{Name: "GroupClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Sep", Pattern: `[\s,]+`},
		{Name: "GroupText", Pattern: `[^\[\]{}~^_\s,]+|[~^_]`},
	},
	"Vector": {
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Dots", Pattern: `\.\.`},
		{Name: "VectorClose", Pattern: `\]`, Action: lexer.Pop()},
	},
})

// busVectorLabel is PREFIX[begin..end] with optional trailing markup
// closers, as in ~{D[0..7]}.
type busVectorLabel struct {
	Prefix string `@(Text | MarkupText | Markup | MarkupClose)+`
	Begin  string `VectorOpen @Int Dots`
	End    string `@Int VectorClose`
	Suffix string `@MarkupClose*`
}

// busGroupLabel is NAME{member member, member}.
type busGroupLabel struct {
	Prefix  string            `@(Text | MarkupText | Markup | MarkupClose)*`
	Members []*busGroupMember `GroupOpen Sep? ( @@ Sep? )* GroupClose`
}

type busGroupMember struct {
	Text string `@(GroupText | MarkupText | Markup | MarkupClose | VectorOpen | Int | Dots | VectorClose)+`
}

var (
	busVectorParser = participle.MustBuild[busVectorLabel](participle.Lexer(busLabelLexer))
	busGroupParser  = participle.MustBuild[busGroupLabel](participle.Lexer(busLabelLexer))
)

// ParseBusVector splits a vector bus label into its prefix and expanded
// member names. Equal bounds do not make a bus; descending bounds are
// swapped.
func ParseBusVector(label string) (prefix string, members []string, ok bool) {
	if !strings.Contains(label, "[") {
		return "", nil, false
	}
	v, err := busVectorParser.ParseString("", label)
	if err != nil {
		return "", nil, false
	}
	if !markupBalanced(v.Prefix + v.Suffix) {
		return "", nil, false
	}
	begin, err1 := strconv.ParseInt(v.Begin, 10, 64)
	end, err2 := strconv.ParseInt(v.End, 10, 64)
	if err1 != nil || err2 != nil || begin == end {
		return "", nil, false
	}
	if begin > end {
		begin, end = end, begin
	}
	if end-begin >= maxBusVectorMembers {
		return "", nil, false
	}
	for i := begin; i <= end; i++ {
		members = append(members, v.Prefix+strconv.FormatInt(i, 10)+v.Suffix)
	}
	return v.Prefix, members, true
}

// busVectorRange returns the numeric bounds of a vector bus label.
func busVectorRange(label string) (begin, end int64) {
	v, err := busVectorParser.ParseString("", label)
	if err != nil {
		return 0, 0
	}
	begin, _ = strconv.ParseInt(v.Begin, 10, 64)
	end, _ = strconv.ParseInt(v.End, 10, 64)
	if begin > end {
		begin, end = end, begin
	}
	return begin, end
}

// ParseBusGroup splits a bus group label into its (possibly empty) name and
// member tokens.
func ParseBusGroup(label string) (prefix string, members []string, ok bool) {
	if !strings.Contains(label, "{") {
		return "", nil, false
	}
	g, err := busGroupParser.ParseString("", label)
	if err != nil {
		return "", nil, false
	}
	if !markupBalanced(g.Prefix) {
		return "", nil, false
	}
	for _, m := range g.Members {
		members = append(members, EscapeNetName(m.Text))
	}
	return g.Prefix, members, true
}

// markupBalanced reports whether markup braces in s close.
func markupBalanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// MightBeBusLabel is a cheap pre-check for bus syntax.
func MightBeBusLabel(label string) bool {
	return strings.ContainsAny(label, "[{")
}

// IsBusLabel reports whether label parses as a vector bus or a bus group.
func IsBusLabel(label string) bool {
	if !MightBeBusLabel(label) {
		return false
	}
	l := UnescapeString(label)
	if _, _, ok := ParseBusVector(l); ok {
		return true
	}
	_, _, ok := ParseBusGroup(l)
	return ok
}
