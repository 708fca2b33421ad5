package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/proposal-customizer/internal/styles"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List proposal styles",
	RunE:  runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, _ []string) error {
	registry := styles.Default()
	out := cmd.OutOrStdout()
	for _, name := range registry.Names() {
		label := name
		if name == registry.DefaultName() {
			label += " (default)"
		}
		tmpl := registry.Template(name)
		_, _ = fmt.Fprintf(out, "%s\n  greeting: %s\n  closing:  %s\n", label, tmpl.Greeting, tmpl.Closing)
	}
	return nil
}
