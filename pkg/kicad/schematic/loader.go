package schematic

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

// Loader reads a sheet hierarchy. Each file is parsed once; sheets naming
// the same file share its screen.
type Loader struct {
	files map[string]*File
	order []*File
}

// NewLoader returns an empty loader.
func NewLoader() *Loader {
	return &Loader{files: make(map[string]*File)}
}

// Load reads the root sheet file at path and every sheet below it.
func Load(path string) (*sch.Schematic, error) {
	return NewLoader().Load(path)
}

// Load reads the root sheet file at path and every sheet below it.
// Missing sub-sheet files are logged and left empty. Recursive references
// are kept; the schematic's sheet list drops them when it is built.
func (l *Loader) Load(path string) (*sch.Schematic, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	rootFile, err := ParseFile(abs)
	if err != nil {
		return nil, err
	}
	l.files[abs] = rootFile
	l.order = append(l.order, rootFile)

	root := sch.NewSheet("", filepath.Base(abs), geom.Point{}, geom.Point{})
	if rootFile.HasUUID {
		root.SetID(rootFile.UUID)
	}
	root.SetContent(rootFile.Screen)
	if err := l.loadSheets(rootFile, filepath.Dir(abs)); err != nil {
		return nil, err
	}

	s := sch.NewSchematic(root)
	n := 0
	for _, f := range l.order {
		for _, a := range f.Aliases {
			if s.BusAlias(a.Name) != nil {
				log.Printf("schematic: duplicate bus alias %q ignored", a.Name)
				continue
			}
			s.AddBusAlias(a)
			n++
		}
	}

	l.applyLegacyInstances(s, rootFile)
	s.RefreshHierarchy()
	log.Printf("schematic: loaded %s: %d files, %d sheet instances, %d bus aliases",
		abs, len(l.order), s.Hierarchy().Len(), n)
	return s, nil
}

// loadSheets attaches content to every sheet of f, parsing files not seen
// before. Sub-sheet file names are relative to dir.
func (l *Loader) loadSheets(f *File, dir string) error {
	for _, sheet := range f.Sheets {
		name := sheet.FileName
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		name = filepath.Clean(name)

		if child, ok := l.files[name]; ok {
			sheet.SetContent(child.Screen)
			continue
		}

		child, err := ParseFile(name)
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("schematic: sheet %q: file %s not found", sheet.Name, name)
			child = &File{Screen: sch.NewScreen(name)}
		} else if err != nil {
			return err
		}
		l.files[name] = child
		l.order = append(l.order, child)
		sheet.SetContent(child.Screen)

		if err := l.loadSheets(child, filepath.Dir(name)); err != nil {
			return err
		}
	}
	return nil
}

// applyLegacyInstances applies the top-level sheet_instances and
// symbol_instances lists older files keep in the root sheet. Their paths
// omit the root id.
func (l *Loader) applyLegacyInstances(s *sch.Schematic, f *File) {
	if len(f.SheetInstances) == 0 && len(f.SymbolInstances) == 0 {
		return
	}
	list := s.Hierarchy()
	rootID := s.Root().ID()

	for _, inst := range f.SheetInstances {
		path, err := sch.ParseKIIDPath(inst.Path)
		if err != nil {
			log.Printf("schematic: bad sheet instance path %q: %v", inst.Path, err)
			continue
		}
		sp, ok := list.GetSheetPathByKIIDPath(append(sch.KIIDPath{rootID}, path...))
		if !ok {
			log.Printf("schematic: sheet instance %s not in hierarchy", inst.Path)
			continue
		}
		sp.SetPageNumber(inst.Page)
	}

	for _, inst := range f.SymbolInstances {
		path, err := sch.ParseKIIDPath(inst.Path)
		if err != nil || len(path) == 0 {
			log.Printf("schematic: bad symbol instance path %q", inst.Path)
			continue
		}
		symID := path[len(path)-1]
		sheetPath := append(sch.KIIDPath{rootID}, path[:len(path)-1]...)
		if sym := findSymbol(list, sheetPath, symID); sym != nil {
			sym.SetInstanceReference(sheetPath, inst.Reference)
			continue
		}
		log.Printf("schematic: symbol instance %s not found", inst.Path)
	}
}

func findSymbol(list *sch.SheetList, sheetPath sch.KIIDPath, id uuid.UUID) *sch.Symbol {
	sp, ok := list.GetSheetPathByKIIDPath(sheetPath)
	if !ok || sp.LastScreen() == nil {
		return nil
	}
	it, ok := sp.LastScreen().Get(id)
	if !ok {
		return nil
	}
	sym, _ := it.(*sch.Symbol)
	return sym
}
