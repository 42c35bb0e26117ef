package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/docmark/tables"
)

func newCheckCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Report the first error in a document",
		Long: `Parse a document and lay out its tables without resolving
placeholders. The first error is reported with its line and column.

Examples:
  docmark check notes.dm
  docmark check -e 'p b "x"'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, name, err := g.input(cmd, args)
			if err != nil {
				return err
			}

			doc, err := p.Document()
			if err != nil {
				return err
			}
			tbls := doc.Tables()
			for i, t := range tbls {
				if err := tables.Layout(t).Validate(); err != nil {
					return fmt.Errorf("%s: table %d: %w", name, i+1, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d blocks, %d tables, %d placeholders)\n",
				name, len(doc.Blocks), len(tbls), len(doc.Placeholders()))
			return nil
		},
	}
}
