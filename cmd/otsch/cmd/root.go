package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSch/internal/config"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/kicad/schematic"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "otsch",
	Short: "OpenTraceSch - KiCad schematic hierarchy, nets and wire dragging",
	Long: `OpenTraceSch (otsch) loads KiCad schematics (.kicad_sch) and works on
their connectivity:
  - flatten the sheet hierarchy and show page numbers
  - resolve net and bus names across sheets
  - drag symbols and labels with orthogonal wire re-routing
  - snap items to the grid

Examples:
  otsch sheets design.kicad_sch                 # List sheet instances
  otsch nets design.kicad_sch /SDA              # Show one net
  otsch drag design.kicad_sch --ref R1 --dx 2.54 # Drag R1 right one step
  otsch label "DATA{D0 D1}"                     # Expand a bus label`,
	Version: "0.9.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFlags(log.Ltime)
		} else {
			log.SetOutput(io.Discard)
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "editor settings file (YAML)")
}

// loadConfig reads --config, or returns the defaults when it is not set.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

// loadSchematic reads the hierarchy rooted at filename and adds the bus
// aliases from the settings file.
func loadSchematic(filename string) (*sch.Schematic, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := schematic.Load(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading schematic: %w", err)
	}
	if n := cfg.ApplyAliases(s); n > 0 {
		log.Printf("added %d bus aliases from %s", n, configPath)
	}
	return s, cfg, nil
}

// selectSheet makes the instance with the human readable path current.
func selectSheet(s *sch.Schematic, path string) error {
	if path == "" || path == "/" {
		return nil
	}
	for _, p := range s.Hierarchy().Paths() {
		if p.PathHumanReadable(true) == path || p.PathHumanReadable(false) == path {
			s.SetCurrentSheet(p)
			return nil
		}
	}
	return fmt.Errorf("sheet %q not found", path)
}

// mm formats an internal unit coordinate pair in millimetres.
func mm(p geom.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", float64(p.X)/schematic.IUPerMM, float64(p.Y)/schematic.IUPerMM)
}

// fromMM converts millimetres to internal units.
func fromMM(v float64) int {
	if v < 0 {
		return int(v*schematic.IUPerMM - 0.5)
	}
	return int(v*schematic.IUPerMM + 0.5)
}
