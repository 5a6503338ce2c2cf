package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/tool"
)

// Item selection flags shared by align and drag
var (
	sheetPath   string
	selectRefs  []string
	selectTexts []string
	wireEnds    []string
	selectAll   bool
)

// selectItems fills the frame's selection from the selection flags and
// returns the anchor point of the first selected item.
func selectItems(f *tool.Frame) (geom.Point, error) {
	screen := f.Screen()
	path := f.Schematic().CurrentSheet()
	sel := f.Selection()
	var anchor geom.Point
	first := true
	pick := func(p geom.Point) {
		if first {
			anchor, first = p, false
		}
	}

	if selectAll {
		for _, it := range screen.Items() {
			sel.Add(it)
			pick(it.Position())
		}
	}

	for _, ref := range selectRefs {
		found := false
		for _, sym := range screen.Symbols() {
			if sym.Reference(path) != ref {
				continue
			}
			sel.Add(sym)
			p := sym.Position()
			if pins := sym.Pins(); len(pins) > 0 {
				p = pins[0].Position()
			}
			pick(p)
			found = true
		}
		if !found {
			return geom.Point{}, fmt.Errorf("symbol %s not found on %s", ref, path.PathHumanReadable(false))
		}
	}

	for _, text := range selectTexts {
		found := false
		for _, it := range screen.Items() {
			if l, ok := it.(*sch.Label); ok && l.Text == text {
				sel.Add(l)
				pick(l.Position())
				found = true
			}
		}
		if !found {
			return geom.Point{}, fmt.Errorf("label %q not found on %s", text, path.PathHumanReadable(false))
		}
	}

	for _, arg := range wireEnds {
		p, err := parsePoint(arg)
		if err != nil {
			return geom.Point{}, err
		}
		found := false
		for _, w := range screen.Wires() {
			if w.IsEndPoint(p) {
				sel.AddWireEnd(w, p)
				pick(p)
				found = true
			}
		}
		if !found {
			return geom.Point{}, fmt.Errorf("no wire ends at %s", arg)
		}
	}

	if sel.Empty() {
		return geom.Point{}, fmt.Errorf("nothing selected: use --ref, --label, --wire-end or --all")
	}
	return anchor, nil
}

// parsePoint reads "x,y" in millimetres.
func parsePoint(s string) (geom.Point, error) {
	var x, y float64
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%g,%g", &x, &y); err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q (want x,y in mm): %w", s, err)
	}
	return geom.Pt(fromMM(x), fromMM(y)), nil
}

// describeSelection lists the selected items with their positions.
func describeSelection(sel *tool.Selection, path sch.SheetPath) []string {
	var out []string
	for _, it := range sel.Items() {
		switch v := it.(type) {
		case *sch.Symbol:
			out = append(out, fmt.Sprintf("symbol %s at %s", v.Reference(path), mm(v.Position())))
		default:
			out = append(out, describeItem(it, path))
		}
	}
	return out
}
