package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSch/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/sch"
	"github.com/OpenTraceLab/OpenTraceSch/pkg/tool"
)

var (
	dragDX, dragDY float64
	moveOnly       bool
	freeLines      bool
)

var dragCmd = &cobra.Command{
	Use:   "drag <schematic_file>",
	Short: "Drag selected items by an offset",
	Long: `Drag the selected items of one sheet by an offset in millimetres.
Wires attached to the selection follow and are re-routed with horizontal
and vertical segments; --move leaves them behind instead.

The result is reported, not written back to the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
	addSelectionFlags(dragCmd)
	dragCmd.Flags().Float64Var(&dragDX, "dx", 0, "horizontal offset (mm)")
	dragCmd.Flags().Float64Var(&dragDY, "dy", 0, "vertical offset (mm)")
	dragCmd.Flags().BoolVar(&moveOnly, "move", false, "move without dragging attached wires")
	dragCmd.Flags().BoolVar(&freeLines, "free", false, "let dragged wires bend at any angle")
}

func runDrag(cmd *cobra.Command, args []string) error {
	s, cfg, err := loadSchematic(args[0])
	if err != nil {
		return err
	}
	if err := selectSheet(s, sheetPath); err != nil {
		return err
	}

	view := &tool.StaticView{}
	f := tool.NewFrame(s, cfg.GridHelper(), view)
	anchor, err := selectItems(f)
	if err != nil {
		return err
	}

	tc := cfg.ToolConfig()
	if freeLines {
		tc.LineMode = tool.LineModeFree
	}
	mode := tool.ModeDrag
	if moveOnly {
		mode = tool.ModeMove
	}

	path := s.CurrentSheet()
	before := describeSelection(f.Selection(), path)

	view.Cursor = anchor
	mt := tool.NewMoveTool(f, tc)
	if !mt.Begin(mode, false) {
		return fmt.Errorf("could not start a %s", mode)
	}
	mt.OnEvent(tool.Motion(view.CursorPosition().Add(geom.Pt(fromMM(dragDX), fromMM(dragDY)))))
	offset := mt.Offset()
	state := mt.OnEvent(tool.Event{Type: tool.EventDrop})

	out := cmd.OutOrStdout()
	if state != tool.StateCommitted || !f.History().CanUndo() {
		fmt.Fprintln(out, "Nothing moved.")
		return nil
	}
	fmt.Fprintf(out, "%s by %s on %s:\n", mode, mm(offset), path.PathHumanReadable(false))
	after := describeSelection(f.Selection(), path)
	for i := range before {
		if i < len(after) {
			fmt.Fprintf(out, "  %s -> %s\n", before[i], after[i])
		}
	}
	printWires(out, f.Screen())
	return nil
}

func printWires(out io.Writer, screen *sch.Screen) {
	wires := screen.Wires()
	fmt.Fprintf(out, "\nWires (%d):\n", len(wires))
	for _, w := range wires {
		fmt.Fprintf(out, "  %s %s-%s\n", w.Layer(), mm(w.Start()), mm(w.End()))
	}
	if n := len(screen.OfKind(sch.KindJunction)); n > 0 {
		fmt.Fprintf(out, "Junctions: %d\n", n)
	}
}
