package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sortByPage bool

var sheetsCmd = &cobra.Command{
	Use:   "sheets <schematic_file>",
	Short: "List sheet instances",
	Long: `Load a schematic hierarchy and list every sheet instance with its page
number, path and file. Sheets that would make the hierarchy recursive are
dropped and reported with --verbose.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheets,
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
	sheetsCmd.Flags().BoolVar(&sortByPage, "sort", false, "order sheets by page number")
}

func runSheets(cmd *cobra.Command, args []string) error {
	s, _, err := loadSchematic(args[0])
	if err != nil {
		return err
	}

	list := s.Hierarchy()
	if sortByPage {
		list.SortByPageNumbers()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Schematic: %s (%d sheets)\n\n", args[0], list.Len())
	fmt.Fprintf(out, "%4s %6s  %-30s %s\n", "#", "Page", "Path", "File")
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────")
	for _, p := range list.Paths() {
		file := p.Last().FileName
		if p.LastScreen() == nil {
			file += " (not loaded)"
		}
		page := p.PageNumber()
		if page == "" {
			page = "-"
		}
		fmt.Fprintf(out, "%4d %6s  %-30s %s\n", p.VirtualPage(), page, p.PathHumanReadable(false), file)
	}
	if list.IsModified() {
		fmt.Fprintln(out, "\nThe hierarchy was repaired; recursive sheets were removed.")
	}
	return nil
}
