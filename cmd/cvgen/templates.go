package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print templates as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	meta := templates.NewProvider().Metadata()
	if templatesJSON {
		return printJSON(meta)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDESCRIPTION\tSUITABLE FOR")
	for _, m := range meta {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Description, strings.Join(m.SuitableFor, ", "))
	}
	return w.Flush()
}
