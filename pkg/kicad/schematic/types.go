// Package schematic reads KiCad .kicad_sch files into the schematic model.
// It reads only what connectivity and editing need: wires, buses,
// junctions, no-connects, labels, symbols with their pins, sheets and bus
// aliases. Graphics, text and field layout are skipped.
package schematic

import (
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// Minimum supported KiCad version for schematics (6.0 = 20211014)
const MinSupportedVersion = 20211014

// IUPerMM is the number of internal units per millimetre.
const IUPerMM = 10000

var (
	// ErrNotSchematic is returned for files whose root is not kicad_sch.
	ErrNotSchematic = errors.New("not a KiCad schematic")
	// ErrUnsupportedVersion is returned for files older than KiCad 6.
	ErrUnsupportedVersion = errors.New("unsupported schematic version")
)

// File is one parsed sheet file.
type File struct {
	Version      int
	Generator    string
	GeneratorVer string
	// UUID identifies the file; it is the root sheet's id when the file is
	// the root of a hierarchy.
	UUID    uuid.UUID
	HasUUID bool

	Screen  *sch.Screen
	Aliases []*sch.BusAlias
	Sheets  []*sch.Sheet

	SheetInstances  []SheetInstance
	SymbolInstances []SymbolInstance
}

// SheetInstance is one (path (page)) entry of sheet_instances.
type SheetInstance struct {
	Path string
	Page string
}

// SymbolInstance is one entry of the legacy top-level symbol_instances
// list. Path ends with the symbol id and omits the root sheet.
type SymbolInstance struct {
	Path      string
	Reference string
	Unit      int
}

// libSymbol is a part definition from lib_symbols.
type libSymbol struct {
	Name       string
	Extends    string
	Power      bool
	LocalPower bool
	Pins       []libPin
	Body       geom.Box
	HasBody    bool
}

// libPin is a pin in library coordinates, Y pointing down.
type libPin struct {
	Number string
	Name   string
	Type   sch.PinType
	Pos    geom.Point
	Unit   int
	Style  int
}

var pinTypes = map[string]sch.PinType{
	"input":          sch.PinInput,
	"output":         sch.PinOutput,
	"bidirectional":  sch.PinBidirectional,
	"tri_state":      sch.PinTriState,
	"passive":        sch.PinPassive,
	"free":           sch.PinUnspecified,
	"unspecified":    sch.PinUnspecified,
	"power_in":       sch.PinPowerIn,
	"power_out":      sch.PinPowerOut,
	"open_collector": sch.PinOutput,
	"open_emitter":   sch.PinOutput,
	"no_connect":     sch.PinNoConnect,
}

// toIU converts millimetres to internal units.
func toIU(mm float64) int {
	return int(math.Round(mm * IUPerMM))
}
