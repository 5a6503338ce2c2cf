package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
)

var aliasFlags []string

var labelCmd = &cobra.Command{
	Use:   "label <label_text>...",
	Short: "Expand net and bus label text",
	Long: `Show how label text is read: a plain net, a bus vector such as
D[0..7] or a bus group such as CTRL{RD WR}. Group members naming a bus
alias expand to the alias members.

Examples:
  otsch label "D[0..3]"
  otsch label --alias DATA=D0,D1 "MEM{DATA CS}"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.Flags().StringArrayVar(&aliasFlags, "alias", nil, "bus alias NAME=MEMBER,MEMBER")
}

func runLabel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := sch.NewSchematic(nil)
	for _, a := range aliasFlags {
		name, members, ok := strings.Cut(a, "=")
		if !ok || name == "" || members == "" {
			return fmt.Errorf("invalid alias %q (want NAME=MEMBER,MEMBER)", a)
		}
		s.AddBusAlias(sch.NewBusAlias(name, strings.Split(members, ",")...))
	}
	cfg.ApplyAliases(s)

	out := cmd.OutOrStdout()
	for _, text := range args {
		c := sch.NewConnection(nil, sch.SheetPath{})
		c.SetGraph(s.ConnectionGraph())
		c.ConfigureFromLabel(text)
		printConnection(out, c, 0)
	}
	return nil
}

func printConnection(out io.Writer, c *sch.Connection, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case c.Type() == sch.ConnectionBus:
		fmt.Fprintf(out, "%s%s: bus %s[%d..%d]\n", indent, c.Name(true), c.VectorPrefix(), c.VectorStart(), c.VectorEnd())
	case c.Type() == sch.ConnectionBusGroup:
		fmt.Fprintf(out, "%s%s: bus group of %d\n", indent, c.Name(true), len(c.Members()))
	default:
		fmt.Fprintf(out, "%s%s: %s\n", indent, c.Name(true), c.Type())
	}
	for _, m := range c.Members() {
		printConnection(out, m, depth+1)
	}
}
