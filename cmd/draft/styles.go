package main

import (
	"github.com/soypat/draft/dim"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var stylesCmd = &cobra.Command{
	Use:   "styles [name...]",
	Short: "Print dimension styles as YAML",
	Long:  "Print the named dimension styles, or every loaded style, in the format read by --styles.",
	RunE:  runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = styles.Names()
	}
	out := make(map[string]dim.Style, len(names))
	for _, name := range names {
		out[name] = styles.ResolveStyle(name)
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
