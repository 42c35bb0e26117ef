package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFmtCmd(g *globals) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print the canonical source form",
		Long: `Parse a document and print it in canonical form. Placeholders are
kept as written.

Examples:
  docmark fmt notes.dm
  docmark fmt -w notes.dm`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, name, err := g.input(cmd, args)
			if err != nil {
				return err
			}
			src, err := p.Source()
			if err != nil {
				return err
			}

			if !write {
				return output(cmd, "", src)
			}
			if len(args) == 0 || args[0] == "-" {
				return fmt.Errorf("-w needs a file argument")
			}
			g.logger.Debug("formatted document", "file", name)
			return output(cmd, args[0], src)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}
