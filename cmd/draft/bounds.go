package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds [file]",
	Short: "Print the extents of a drawing including laid out dimensions",
	Args:  cobra.ExactArgs(1),
	RunE:  runBounds,
}

func init() {
	rootCmd.AddCommand(boundsCmd)
}

func runBounds(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	box := doc.Bounds(styles)
	if box.Empty() {
		return fmt.Errorf("%s: drawing is empty", args[0])
	}
	size := box.Size()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "min: %g %g\n", box.Min.X, box.Min.Y)
	fmt.Fprintf(out, "max: %g %g\n", box.Max.X, box.Max.Y)
	fmt.Fprintf(out, "size: %g %g\n", size.X, size.Y)
	return nil
}
