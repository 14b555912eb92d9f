package main

import (
	"fmt"
	"strconv"

	"github.com/soypat/draft/render"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var snapCmd = &cobra.Command{
	Use:   "snap [file] [x] [y]",
	Short: "Find the dimension snap points nearest to a location",
	Args:  cobra.ExactArgs(3),
	RunE:  runSnap,
}

func init() {
	snapCmd.Flags().Float64("radius", 0, "list every snap point within radius instead of the nearest")
	rootCmd.AddCommand(snapCmd)
}

func runSnap(cmd *cobra.Command, args []string) error {
	var at r2.Vec
	var err error
	if at.X, err = strconv.ParseFloat(args[1], 64); err != nil {
		return fmt.Errorf("x: %w", err)
	}
	if at.Y, err = strconv.ParseFloat(args[2], 64); err != nil {
		return fmt.Errorf("y: %w", err)
	}
	radius, _ := cmd.Flags().GetFloat64("radius")
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	prims, err := render.RenderAll(render.NewLayoutRenderer(styles, doc.Dimensions()...))
	if err != nil {
		return err
	}
	idx := render.NewSnapIndex(prims)
	out := cmd.OutOrStdout()
	if radius > 0 {
		for _, p := range idx.Within(at, radius) {
			fmt.Fprintf(out, "%g %g\n", p.X, p.Y)
		}
		return nil
	}
	p, dist, ok := idx.Nearest(at)
	if !ok {
		return fmt.Errorf("%s: no snap points", args[0])
	}
	fmt.Fprintf(out, "%g %g (distance %g)\n", p.X, p.Y, dist)
	return nil
}
