package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/soypat/draft/dim"
	"github.com/soypat/draft/render"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [file]",
	Short: "Lay out every dimension of a drawing and export the result",
	Long: `Lay out every dimension of a group code file ("-" reads standard input).
A summary of the primitives is printed; --dxf, --png and --thumbnail also
write the laid out dimensions to files.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	f := layoutCmd.Flags()
	f.String("dxf", "", "write the laid out dimensions as a DXF drawing")
	f.String("png", "", "write a PNG preview")
	f.String("thumbnail", "", "write a PNG thumbnail")
	f.Uint("thumbnail-size", 256, "largest side of the thumbnail in pixels")
	f.String("layer", "", "DXF layer (DRAFT_LAYER)")
	f.Int("width", 0, "preview width in pixels (DRAFT_PREVIEW_WIDTH)")
	f.Int("height", 0, "preview height in pixels (DRAFT_PREVIEW_HEIGHT)")
	f.Int("concurrency", 1, "dimensions laid out at once")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if f.Changed("layer") {
		cfg.Layer, _ = f.GetString("layer")
	}
	if f.Changed("width") {
		cfg.PreviewWidth, _ = f.GetInt("width")
	}
	if f.Changed("height") {
		cfg.PreviewHeight, _ = f.GetInt("height")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	concurrency, _ := f.GetInt("concurrency")
	dxfPath, _ := f.GetString("dxf")
	pngPath, _ := f.GetString("png")
	thumbPath, _ := f.GetString("thumbnail")
	thumbSize, _ := f.GetUint("thumbnail-size")

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	dims := doc.Dimensions()
	var count struct{ lines, arcs, arrows, labels int }
	for _, d := range dims {
		prims := d.Layout(styles)
		if len(prims) == 0 {
			slog.Warn("dimension lays out to nothing", "handle", d.Handle, "kind", d.Kind)
			continue
		}
		for _, p := range prims {
			switch p.(type) {
			case dim.LineSegment:
				count.lines++
			case dim.ArcSegment:
				count.arcs++
			case dim.Triangle:
				count.arrows++
			case dim.Label:
				count.labels++
			}
		}
		text, _ := d.Text(styles)
		slog.Info("laid out dimension", "handle", d.Handle, "kind", d.Kind, "text", text, "primitives", len(prims))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "dimensions: %d\nlines: %d\narcs: %d\narrowheads: %d\nlabels: %d\n",
		len(dims), count.lines, count.arcs, count.arrows, count.labels)

	newRenderer := func() render.Renderer {
		r := render.NewLayoutRenderer(styles, dims...)
		r.SetConcurrency(concurrency)
		return r
	}
	if dxfPath != "" {
		if err := render.CreateDXF(dxfPath, cfg.Layer, newRenderer()); err != nil {
			return err
		}
		slog.Info("wrote DXF", "file", dxfPath, "layer", cfg.Layer)
	}
	if pngPath != "" {
		if err := writePNG(pngPath, newRenderer()); err != nil {
			return err
		}
		slog.Info("wrote preview", "file", pngPath, "width", cfg.PreviewWidth, "height", cfg.PreviewHeight)
	}
	if thumbPath != "" {
		if err := writeThumbnail(thumbPath, newRenderer(), thumbSize); err != nil {
			return err
		}
		slog.Info("wrote thumbnail", "file", thumbPath, "size", thumbSize)
	}
	return nil
}

func writePNG(path string, r render.Renderer) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := render.WritePNG(fp, r, cfg.PreviewWidth, cfg.PreviewHeight); err != nil {
		return err
	}
	return fp.Close()
}

func writeThumbnail(path string, r render.Renderer, size uint) error {
	img, err := render.Image(r, cfg.PreviewWidth, cfg.PreviewHeight)
	if err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := png.Encode(fp, render.Thumbnail(img, size, size)); err != nil {
		return err
	}
	return fp.Close()
}
