package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

var netsCmd = &cobra.Command{
	Use:   "nets <schematic_file> [net_name]",
	Short: "Resolve net names",
	Long: `Resolve the connectivity of a schematic hierarchy.

Without net_name: lists every net with its code and item count
With net_name: lists the items of that net per sheet`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNets,
}

func init() {
	rootCmd.AddCommand(netsCmd)
}

func runNets(cmd *cobra.Command, args []string) error {
	s, _, err := loadSchematic(args[0])
	if err != nil {
		return err
	}
	s.RecalculateConnections()
	g := s.ConnectionGraph()

	if len(args) >= 2 {
		return showNetDetails(cmd.OutOrStdout(), g, args[1])
	}
	listAllNets(cmd.OutOrStdout(), g)
	return nil
}

func listAllNets(out io.Writer, g *sch.ConnectionGraph) {
	names := g.NetNames()
	fmt.Fprintf(out, "Schematic: %d nets\n\n", len(names))
	fmt.Fprintf(out, "%-30s %6s %6s %6s\n", "Net Name", "Code", "Sheets", "Items")
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────")
	for _, name := range names {
		code, _ := g.NetCode(name)
		items := 0
		sheets := make(map[uint64]struct{})
		for _, sg := range g.SubgraphsForNet(name) {
			items += len(sg.Items)
			sheets[sg.Sheet.Hash()] = struct{}{}
		}
		fmt.Fprintf(out, "%-30s %6d %6d %6d\n", name, code, len(sheets), items)
	}
}

func showNetDetails(out io.Writer, g *sch.ConnectionGraph, name string) error {
	code, ok := g.NetCode(name)
	if !ok {
		return fmt.Errorf("net '%s' not found", name)
	}
	fmt.Fprintf(out, "Net: %s (code %d)\n", name, code)

	for _, sg := range g.SubgraphsForNet(name) {
		fmt.Fprintf(out, "\nSheet %s:\n", sg.Sheet.PathHumanReadable(false))
		if sg.Driver != nil {
			fmt.Fprintf(out, "  Driver: %s\n", describeItem(sg.Driver, sg.Sheet))
		}
		lines := make([]string, 0, len(sg.Items))
		for _, it := range sg.Items {
			lines = append(lines, describeItem(it, sg.Sheet))
		}
		sort.Strings(lines)
		for _, l := range lines {
			fmt.Fprintf(out, "  %s\n", l)
		}
	}
	return nil
}

// describeItem renders one connectable item for net listings.
func describeItem(it sch.Item, path sch.SheetPath) string {
	switch v := it.(type) {
	case *sch.Pin:
		return fmt.Sprintf("pin %s.%s at %s", v.Symbol().Reference(path), v.Number, mm(v.Position()))
	case *sch.Label:
		return fmt.Sprintf("%s %q at %s", v.Kind(), v.Text, mm(v.Position()))
	case *sch.SheetPin:
		return fmt.Sprintf("sheet pin %s/%s at %s", v.Sheet().Name, v.Name, mm(v.Position()))
	case *sch.Wire:
		return fmt.Sprintf("%s %s-%s", v.Layer(), mm(v.Start()), mm(v.End()))
	}
	return fmt.Sprintf("%s at %s", it.Kind(), mm(it.Position()))
}
