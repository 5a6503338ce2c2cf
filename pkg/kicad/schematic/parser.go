package schematic

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/kicad/sexpr"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// ParseFile reads and parses a KiCad schematic file
func ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	f, err := parse(file, filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, nil
}

// Parse reads one sheet file from r. Sub-sheets are not followed.
func Parse(r io.Reader) (*File, error) {
	return parse(r, "")
}

func parse(r io.Reader, filename string) (*File, error) {
	nodes, err := sexpr.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrNotSchematic)
	}

	// The root should be a (kicad_sch ...) expression
	root := nodes[0]
	if root.Name() != "kicad_sch" {
		return nil, fmt.Errorf("%w: expected 'kicad_sch', got '%s'", ErrNotSchematic, root.Name())
	}

	f := &File{Screen: sch.NewScreen(filename)}
	if err := parseHeader(root, f); err != nil {
		return nil, err
	}
	if id, ok := parseID(root); ok {
		f.UUID, f.HasUUID = id, true
	}

	libs := parseLibSymbols(root.Child("lib_symbols"))
	f.Aliases = parseBusAliases(root, f.Screen)

	for _, it := range root.Items {
		var err error
		switch it.Name() {
		case "wire":
			err = parseLine(it, f.Screen, sch.LayerWire)
		case "bus":
			err = parseLine(it, f.Screen, sch.LayerBus)
		case "junction":
			err = parseJunction(it, f.Screen)
		case "no_connect":
			err = parseNoConnect(it, f.Screen)
		case "label":
			err = parseLabel(it, f.Screen, sch.KindLabel)
		case "global_label":
			err = parseLabel(it, f.Screen, sch.KindGlobalLabel)
		case "hierarchical_label":
			err = parseLabel(it, f.Screen, sch.KindHierLabel)
		case "symbol":
			err = parseSymbol(it, f.Screen, libs)
		case "sheet":
			var sheet *sch.Sheet
			sheet, err = parseSheet(it)
			if err == nil {
				f.Screen.Add(sheet)
				f.Sheets = append(f.Sheets, sheet)
			}
		case "sheet_instances":
			f.SheetInstances = parseSheetInstances(it)
		case "symbol_instances":
			f.SymbolInstances = parseSymbolInstances(it)
		}
		if err != nil {
			return nil, err
		}
	}
	f.Screen.ClearModified()
	return f, nil
}

// parseHeader extracts version and generator information
func parseHeader(root *sexpr.Node, f *File) error {
	versionNode := root.Child("version")
	if versionNode == nil {
		return fmt.Errorf("missing required 'version' field")
	}
	ver, err := versionNode.Int(1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < MinSupportedVersion {
		return fmt.Errorf("%w: %d (minimum required: %d / KiCad 6.0)", ErrUnsupportedVersion, ver, MinSupportedVersion)
	}
	f.Version = ver
	f.Generator = root.ChildArg("generator")
	f.GeneratorVer = root.ChildArg("generator_version")
	return nil
}

// parseID reads the (uuid ...) child of node. Ids that are not UUIDs are
// ignored; the item keeps its generated id.
func parseID(node *sexpr.Node) (uuid.UUID, bool) {
	s := node.ChildArg("uuid")
	if s == "" {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		log.Printf("schematic: line %d: ignoring id %q: %v", node.Line, s, err)
		return uuid.UUID{}, false
	}
	return id, true
}

func setID(it sch.Item, node *sexpr.Node) {
	if id, ok := parseID(node); ok {
		it.SetID(id)
	}
}

// point reads the coordinate pair at index i of node.
func point(node *sexpr.Node, i int) (geom.Point, error) {
	if node == nil {
		return geom.Point{}, fmt.Errorf("missing coordinates")
	}
	x, err := node.Float(i)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := node.Float(i + 1)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(toIU(x), toIU(y)), nil
}

// at reads (at x y [angle]). The angle defaults to zero.
func at(node *sexpr.Node) (geom.Point, int, error) {
	atNode := node.Child("at")
	p, err := point(atNode, 1)
	if err != nil {
		return geom.Point{}, 0, fmt.Errorf("line %d: %s: %w", node.Line, node.Name(), err)
	}
	angle := 0
	if atNode.Arg(3) != "" {
		a, err := atNode.Float(3)
		if err != nil {
			return geom.Point{}, 0, err
		}
		angle = int(a)
	}
	return p, angle, nil
}

func parseStroke(node *sexpr.Node) sch.Stroke {
	var s sch.Stroke
	if node == nil {
		return s
	}
	if w, err := node.Child("width").Float(1); err == nil {
		s.Width = toIU(w)
	}
	s.Style = node.ChildArg("type")
	if s.Style == "default" {
		s.Style = ""
	}
	return s
}

// parseLine parses a wire or bus segment
func parseLine(node *sexpr.Node, s *sch.Screen, layer sch.Layer) error {
	pts := node.Child("pts").Children("xy")
	if len(pts) != 2 {
		return fmt.Errorf("line %d: %s needs two points, got %d", node.Line, node.Name(), len(pts))
	}
	a, err := point(pts[0], 1)
	if err != nil {
		return err
	}
	b, err := point(pts[1], 1)
	if err != nil {
		return err
	}
	w := sch.NewWire(a, b, layer)
	w.Stroke = parseStroke(node.Child("stroke"))
	setID(w, node)
	s.Add(w)
	return nil
}

func parseJunction(node *sexpr.Node, s *sch.Screen) error {
	p, _, err := at(node)
	if err != nil {
		return err
	}
	j := sch.NewJunction(p)
	if d, err := node.Child("diameter").Float(1); err == nil {
		j.Diameter = toIU(d)
	}
	setID(j, node)
	s.Add(j)
	return nil
}

func parseNoConnect(node *sexpr.Node, s *sch.Screen) error {
	p, _, err := at(node)
	if err != nil {
		return err
	}
	nc := sch.NewNoConnect(p)
	setID(nc, node)
	s.Add(nc)
	return nil
}

func spinFromAngle(angle int) sch.Spin {
	switch ((angle % 360) + 360) % 360 {
	case 90:
		return sch.SpinUp
	case 180:
		return sch.SpinLeft
	case 270:
		return sch.SpinBottom
	}
	return sch.SpinRight
}

// parseLabel parses local, global and hierarchical labels
func parseLabel(node *sexpr.Node, s *sch.Screen, kind sch.Kind) error {
	p, angle, err := at(node)
	if err != nil {
		return err
	}
	l := sch.NewLabel(kind, node.Arg(1), p)
	l.Spin = spinFromAngle(angle)
	l.Shape = node.ChildArg("shape")
	if size := node.Child("effects").Child("font").Child("size"); size != nil {
		if h, err := size.Float(1); err == nil {
			l.TextSize = toIU(h)
		}
	}
	setID(l, node)
	s.Add(l)
	return nil
}

// parseLibSymbols parses embedded library symbols, keyed by name
func parseLibSymbols(node *sexpr.Node) map[string]*libSymbol {
	libs := make(map[string]*libSymbol)
	for _, symNode := range node.Children("symbol") {
		sym := parseLibSymbol(symNode)
		libs[sym.Name] = sym
	}
	return libs
}

// parseLibSymbol parses a single library symbol definition. Pins and body
// graphics live in nested unit symbols named NAME_UNIT_STYLE.
func parseLibSymbol(node *sexpr.Node) *libSymbol {
	sym := &libSymbol{Name: node.Arg(1), Extends: node.ChildArg("extends")}
	if power := node.Child("power"); power != nil {
		sym.Power = true
		sym.LocalPower = power.HasFlag("local")
	}

	units := append([]*sexpr.Node{node}, node.Children("symbol")...)
	for i, unitNode := range units {
		unit, style := 0, 0
		if i > 0 {
			unit, style = unitNumbers(unitNode.Arg(1))
		}
		for _, pn := range unitNode.Children("pin") {
			pin, err := parseLibPin(pn)
			if err != nil {
				log.Printf("schematic: %s: skipping pin: %v", sym.Name, err)
				continue
			}
			pin.Unit, pin.Style = unit, style
			sym.Pins = append(sym.Pins, pin)
		}
		for _, p := range graphicPoints(unitNode) {
			if !sym.HasBody {
				sym.Body, sym.HasBody = geom.BoxAround(p), true
				continue
			}
			sym.Body = sym.Body.Extend(p)
		}
	}
	return sym
}

// unitNumbers splits NAME_UNIT_STYLE.
func unitNumbers(name string) (unit, style int) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return 0, 0
	}
	style, _ = strconv.Atoi(name[i+1:])
	rest := name[:i]
	j := strings.LastIndexByte(rest, '_')
	if j < 0 {
		return 0, style
	}
	unit, _ = strconv.Atoi(rest[j+1:])
	return unit, style
}

// flipY converts a library point, Y pointing up, to screen orientation.
func flipY(p geom.Point) geom.Point { return geom.Pt(p.X, -p.Y) }

// graphicPoints returns the outline points of a unit's body graphics.
func graphicPoints(unit *sexpr.Node) []geom.Point {
	var pts []geom.Point
	add := func(n *sexpr.Node) {
		if p, err := point(n, 1); err == nil {
			pts = append(pts, flipY(p))
		}
	}
	for _, it := range unit.Items {
		switch it.Name() {
		case "rectangle", "arc":
			add(it.Child("start"))
			add(it.Child("mid"))
			add(it.Child("end"))
		case "polyline", "bezier":
			for _, xy := range it.Child("pts").Children("xy") {
				add(xy)
			}
		case "circle":
			c, err := point(it.Child("center"), 1)
			if err != nil {
				continue
			}
			r, err := it.Child("radius").Float(1)
			if err != nil {
				continue
			}
			c, ri := flipY(c), toIU(r)
			pts = append(pts, c.Sub(geom.Pt(ri, ri)), c.Add(geom.Pt(ri, ri)))
		}
	}
	return pts
}

// parseLibPin parses a pin definition
func parseLibPin(node *sexpr.Node) (libPin, error) {
	p, _, err := at(node)
	if err != nil {
		return libPin{}, err
	}
	typ, ok := pinTypes[node.Arg(1)]
	if !ok {
		typ = sch.PinUnspecified
	}
	return libPin{
		Number: node.ChildArg("number"),
		Name:   node.ChildArg("name"),
		Type:   typ,
		Pos:    flipY(p),
	}, nil
}

// resolveLib follows extends chains to the symbol that carries the pins.
func resolveLib(libs map[string]*libSymbol, name string) *libSymbol {
	seen := make(map[string]struct{})
	sym := libs[name]
	for sym != nil && sym.Extends != "" && len(sym.Pins) == 0 {
		if _, ok := seen[sym.Name]; ok {
			break
		}
		seen[sym.Name] = struct{}{}
		base, ok := libs[sym.Extends]
		if !ok {
			break
		}
		derived := *base
		derived.Name = sym.Name
		derived.Power = sym.Power || base.Power
		sym = &derived
	}
	return sym
}

// parseSymbol parses a single symbol instance and places the pins of its
// unit from the library definition.
func parseSymbol(node *sexpr.Node, s *sch.Screen, libs map[string]*libSymbol) error {
	p, angle, err := at(node)
	if err != nil {
		return err
	}
	libID := node.ChildArg("lib_id")
	libName := node.ChildArg("lib_name")
	if libName == "" {
		libName = libID
	}
	unit := 1
	if u, err := node.Child("unit").Int(1); err == nil {
		unit = u
	}
	style := 1
	if c, err := node.Child("convert").Int(1); err == nil {
		style = c
	} else if c, err := node.Child("body_style").Int(1); err == nil {
		style = c
	}

	props := make(map[string]string)
	for _, pn := range node.Children("property") {
		props[pn.Arg(1)] = pn.Arg(2)
	}

	lib := resolveLib(libs, libName)
	var body geom.Box
	if lib != nil && lib.HasBody {
		body = lib.Body
	}
	sym := sch.NewSymbol(libID, props["Reference"], p, body)
	sym.Value = props["Value"]
	setID(sym, node)

	mirror := node.Child("mirror")
	sym.SetTransform(sch.RotationTransform(angle, mirror.Arg(1) == "x", mirror.Arg(1) == "y"))

	if lib == nil {
		log.Printf("schematic: line %d: symbol %s has no library definition %q", node.Line, props["Reference"], libName)
	} else {
		sym.IsPower = lib.Power
		sym.IsLocalPower = lib.LocalPower
		for _, pin := range lib.Pins {
			if (pin.Unit != 0 && pin.Unit != unit) || (pin.Style != 0 && pin.Style != style) {
				continue
			}
			sym.AddPin(pin.Number, pin.Name, pin.Type, pin.Pos)
		}
	}

	for _, inst := range node.Child("instances").Children("project") {
		for _, pn := range inst.Children("path") {
			path, err := sch.ParseKIIDPath(pn.Arg(1))
			if err != nil {
				log.Printf("schematic: line %d: bad instance path %q: %v", pn.Line, pn.Arg(1), err)
				continue
			}
			if ref := pn.ChildArg("reference"); ref != "" {
				sym.SetInstanceReference(path, ref)
			}
		}
	}

	s.Add(sym)
	return nil
}

// parseSheet parses a hierarchical sheet reference. Its content is loaded
// by the Loader.
func parseSheet(node *sexpr.Node) (*sch.Sheet, error) {
	p, _, err := at(node)
	if err != nil {
		return nil, err
	}
	size, err := point(node.Child("size"), 1)
	if err != nil {
		return nil, fmt.Errorf("line %d: sheet size: %w", node.Line, err)
	}

	var name, file string
	for _, pn := range node.Children("property") {
		switch pn.Arg(1) {
		case "Sheetname", "Sheet name":
			name = pn.Arg(2)
		case "Sheetfile", "Sheet file":
			file = pn.Arg(2)
		}
	}
	if file == "" {
		return nil, fmt.Errorf("line %d: sheet %q has no file", node.Line, name)
	}

	sheet := sch.NewSheet(name, file, p, size)
	setID(sheet, node)
	for _, pn := range node.Children("pin") {
		pp, _, err := at(pn)
		if err != nil {
			return nil, err
		}
		pin := sheet.AddPin(pn.Arg(1), pp)
		pin.Shape = pn.Arg(2)
		setID(pin, pn)
	}

	for _, inst := range node.Child("instances").Children("project") {
		for _, pn := range inst.Children("path") {
			path, err := sch.ParseKIIDPath(pn.Arg(1))
			if err != nil {
				log.Printf("schematic: line %d: bad instance path %q: %v", pn.Line, pn.Arg(1), err)
				continue
			}
			if page := pn.ChildArg("page"); page != "" {
				sheet.SetPageNumber(path, page)
			}
		}
	}
	return sheet, nil
}

// parseSheetInstances parses sheet instance paths
func parseSheetInstances(node *sexpr.Node) []SheetInstance {
	var out []SheetInstance
	for _, pn := range node.Children("path") {
		out = append(out, SheetInstance{Path: pn.Arg(1), Page: pn.ChildArg("page")})
	}
	return out
}

func parseSymbolInstances(node *sexpr.Node) []SymbolInstance {
	var out []SymbolInstance
	for _, pn := range node.Children("path") {
		inst := SymbolInstance{Path: pn.Arg(1), Reference: pn.ChildArg("reference"), Unit: 1}
		if u, err := pn.Child("unit").Int(1); err == nil {
			inst.Unit = u
		}
		out = append(out, inst)
	}
	return out
}

// parseBusAliases parses (bus_alias "NAME" (members "A" "B")) entries
func parseBusAliases(root *sexpr.Node, s *sch.Screen) []*sch.BusAlias {
	var out []*sch.BusAlias
	for _, an := range root.Children("bus_alias") {
		var members []string
		if m := an.Child("members"); m != nil {
			for _, it := range m.Items[1:] {
				if !it.IsList() {
					members = append(members, it.Value)
				}
			}
		}
		alias := sch.NewBusAlias(an.Arg(1), members...)
		alias.Screen = s
		out = append(out, alias)
	}
	return out
}
