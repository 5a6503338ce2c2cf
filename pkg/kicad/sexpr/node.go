// Package sexpr reads the s-expression files KiCad writes into a tree of
// nodes.
package sexpr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Node is an atom or a list. A list's first element is conventionally its
// name: (wire (pts ...)) is a list named "wire".
type Node struct {
	// Value is the text of an atom.
	Value string
	// Quoted marks atoms written as strings.
	Quoted bool
	Items  []*Node
	Line   int

	list bool
}

// IsList reports whether n is a list.
func (n *Node) IsList() bool { return n != nil && n.list }

// Name returns the leading atom of a list, or "" for atoms and lists that
// start with a list.
func (n *Node) Name() string {
	if !n.IsList() || len(n.Items) == 0 || n.Items[0].list {
		return ""
	}
	return n.Items[0].Value
}

// Len returns the number of elements of a list.
func (n *Node) Len() int {
	if !n.IsList() {
		return 0
	}
	return len(n.Items)
}

// Child returns the first list element named name, or nil.
func (n *Node) Child(name string) *Node {
	if !n.IsList() {
		return nil
	}
	for _, it := range n.Items {
		if it.Name() == name {
			return it
		}
	}
	return nil
}

// Children returns every list element named name.
func (n *Node) Children(name string) []*Node {
	if !n.IsList() {
		return nil
	}
	var out []*Node
	for _, it := range n.Items {
		if it.Name() == name {
			out = append(out, it)
		}
	}
	return out
}

// Arg returns the atom at index i of a list, counting the name as 0, or ""
// when there is none.
func (n *Node) Arg(i int) string {
	if !n.IsList() || i < 0 || i >= len(n.Items) || n.Items[i].list {
		return ""
	}
	return n.Items[i].Value
}

// Float parses the atom at index i.
func (n *Node) Float(i int) (float64, error) {
	s := n.Arg(i)
	if s == "" {
		return 0, fmt.Errorf("line %d: %s: missing number at %d", n.line(), n.Name(), i)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", n.line(), n.Name(), err)
	}
	return v, nil
}

// Int parses the atom at index i.
func (n *Node) Int(i int) (int, error) {
	s := n.Arg(i)
	if s == "" {
		return 0, fmt.Errorf("line %d: %s: missing integer at %d", n.line(), n.Name(), i)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", n.line(), n.Name(), err)
	}
	return v, nil
}

// ChildArg returns Arg(1) of the child named name: the value of a
// (name value) pair.
func (n *Node) ChildArg(name string) string {
	return n.Child(name).Arg(1)
}

// HasFlag reports whether a bare, unquoted atom flag appears in the list,
// as "hide" does in (pin_numbers hide).
func (n *Node) HasFlag(flag string) bool {
	if n.Len() < 2 {
		return false
	}
	for _, it := range n.Items[1:] {
		if !it.list && !it.Quoted && it.Value == flag {
			return true
		}
	}
	return false
}

func (n *Node) line() int {
	if n == nil {
		return 0
	}
	return n.Line
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if !n.list {
		if n.Quoted {
			return strconv.Quote(n.Value)
		}
		return n.Value
	}
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Parser builds nodes from a lexer
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]*Node, error) {
	var result []*Node
	if err := p.next(); err != nil {
		return nil, err
	}
	for p.current.Type != TokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *Parser) parseExpr() (*Node, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()
	case TokenSymbol, TokenString:
		return &Node{Value: p.current.Value, Quoted: p.current.Type == TokenString, Line: p.current.Line}, nil
	}
	return nil, fmt.Errorf("line %d: unexpected %v", p.current.Line, p.current.Type)
}

func (p *Parser) parseList() (*Node, error) {
	n := &Node{list: true, Line: p.current.Line}
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		switch p.current.Type {
		case TokenRightParen:
			return n, nil
		case TokenEOF:
			return nil, fmt.Errorf("line %d: unexpected EOF in list opened on line %d", p.current.Line, n.Line)
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, elem)
	}
}

// Parse reads every top-level expression from r.
func Parse(r io.Reader) ([]*Node, error) {
	return NewParser(r).ParseAll()
}

// ParseString reads every top-level expression from s.
func ParseString(s string) ([]*Node, error) {
	return Parse(strings.NewReader(s))
}
