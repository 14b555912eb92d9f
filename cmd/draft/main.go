package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/soypat/draft/dim"
	"github.com/soypat/draft/interchange"
	"github.com/soypat/draft/internal/config"
	"github.com/spf13/cobra"
)

// settings shared by every command, filled in before a command runs.
var (
	cfg    *config.Config
	styles *dim.StyleTable
)

var rootCmd = &cobra.Command{
	Use:   "draft",
	Short: "Lay out and export drawing dimensions",
	Long: `draft reads the DIMENSION, LINE, CIRCLE, ARC and LWPOLYLINE entities of a
group code stream, lays out every dimension with its named style and exports
the result as DXF or a PNG preview.

Settings are read from DRAFT_* environment variables; flags override them.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("styles", "", "YAML file of dimension styles (DRAFT_STYLE_FILE)")
	pf.String("default-style", "", "style used by dimensions without one (DRAFT_DEFAULT_STYLE)")
	pf.String("log-level", "", "debug, info, warn or error (DRAFT_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("styles", &cfg.StyleFile)
	override("default-style", &cfg.DefaultStyle)
	override("log-level", &cfg.LogLevel)
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	styles = dim.NewStyleTable()
	if cfg.StyleFile == "" {
		return nil
	}
	fp, err := os.Open(cfg.StyleFile)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := styles.Load(fp); err != nil {
		return fmt.Errorf("load styles %s: %w", cfg.StyleFile, err)
	}
	slog.Debug("loaded styles", "file", cfg.StyleFile, "styles", len(styles.Names()))
	return nil
}

// readDocument decodes the named file, or standard input for "-".
func readDocument(name string) (*interchange.Document, error) {
	r := os.Stdin
	if name != "-" {
		fp, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		r = fp
	}
	doc, err := interchange.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	for _, d := range doc.Dimensions() {
		if d.Style == "" {
			d.Style = cfg.DefaultStyle
		}
	}
	slog.Debug("read document", "file", name, "entities", len(doc.Entities), "dimensions", len(doc.Dimensions()))
	return doc, nil
}
