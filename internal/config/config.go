// Package config holds the editor settings the command line tools load
// from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/tool"
)

// IUPerMil converts mils to internal units.
const IUPerMil = 254

// ErrInvalidConfig is returned by Validate for settings that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of a settings file.
type Config struct {
	Grid       GridConfig   `yaml:"grid"`
	Drag       DragConfig   `yaml:"drag"`
	BusAliases []AliasEntry `yaml:"bus_aliases"`
}

// GridConfig sizes the snap grid. Values are in mils.
type GridConfig struct {
	Size int `yaml:"size"`
	// SnapRadius is how close the cursor must come to a connection point
	// to snap onto it. Zero snaps to the grid only.
	SnapRadius int `yaml:"snap_radius"`
}

type DragConfig struct {
	// LineMode is "orthogonal" (or "90") or "free".
	LineMode         string `yaml:"line_mode"`
	AutoRotateLabels bool   `yaml:"auto_rotate_labels"`
	WarpCursor       bool   `yaml:"warp_cursor"`
}

// AliasEntry defines a bus alias available to every sheet.
type AliasEntry struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// DefaultConfig returns a 50 mil grid with orthogonal dragging.
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Size:       50,
			SnapRadius: 0,
		},
		Drag: DragConfig{
			LineMode:         "orthogonal",
			AutoRotateLabels: true,
			WarpCursor:       true,
		},
	}
}

// Validate checks the settings, filling in defaults for zero values.
func (c *Config) Validate() error {
	if c.Grid.Size == 0 {
		c.Grid.Size = 50
	}
	if c.Grid.Size < 0 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidConfig, c.Grid.Size)
	}
	if c.Grid.SnapRadius < 0 {
		return fmt.Errorf("%w: snap radius %d", ErrInvalidConfig, c.Grid.SnapRadius)
	}
	if _, err := tool.ParseLineMode(c.Drag.LineMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	seen := make(map[string]struct{}, len(c.BusAliases))
	for _, a := range c.BusAliases {
		if a.Name == "" {
			return fmt.Errorf("%w: bus alias without a name", ErrInvalidConfig)
		}
		if _, ok := seen[a.Name]; ok {
			return fmt.Errorf("%w: bus alias %q defined twice", ErrInvalidConfig, a.Name)
		}
		seen[a.Name] = struct{}{}
		if len(a.Members) == 0 {
			return fmt.Errorf("%w: bus alias %q has no members", ErrInvalidConfig, a.Name)
		}
	}
	return nil
}

// Load reads and validates a settings file. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read parses and validates settings from r.
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToolConfig converts the drag settings for a tool.MoveTool.
func (c *Config) ToolConfig() tool.Config {
	mode, _ := tool.ParseLineMode(c.Drag.LineMode)
	return tool.Config{
		LineMode:         mode,
		WarpCursor:       c.Drag.WarpCursor,
		AutoRotateLabels: c.Drag.AutoRotateLabels,
	}
}

// GridHelper returns a grid helper in internal units.
func (c *Config) GridHelper() *tool.GridHelper {
	g := tool.NewGridHelper(c.Grid.Size * IUPerMil)
	g.SnapRadius = c.Grid.SnapRadius * IUPerMil
	return g
}

// ApplyAliases registers the configured bus aliases on s. Aliases the
// schematic already defines win.
func (c *Config) ApplyAliases(s *sch.Schematic) int {
	n := 0
	for _, a := range c.BusAliases {
		if s.BusAlias(a.Name) != nil {
			continue
		}
		s.AddBusAlias(sch.NewBusAlias(a.Name, a.Members...))
		n++
	}
	return n
}
