package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/docmark"
	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/resolver"
)

// input returns a processor for the document named by args, --inline or
// stdin, along with a name for messages
func (g *globals) input(cmd *cobra.Command, args []string) (*docmark.Processor, string, error) {
	var p *docmark.Processor
	var name string

	switch {
	case g.inline != "" && len(args) > 0:
		return nil, "", fmt.Errorf("--inline cannot be combined with a file argument")
	case g.inline != "":
		p, name = docmark.Parse(g.inline), "<inline>"
	case len(args) > 0 && args[0] != "-":
		p, name = docmark.ParseFile(args[0]), args[0]
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		if format.DetectFromMagic(data) == format.HTML {
			return nil, "", fmt.Errorf("stdin contains HTML, not docmark markup")
		}
		p, name = docmark.Parse(string(data)), "<stdin>"
	}

	p = p.MaxDepth(g.cfg.Render.MaxDepth).
		Vars(g.cfg.Vars).
		Logger(g.logger)

	if module := g.cfg.Starlark.Module; module != "" {
		src, err := os.ReadFile(module)
		if err != nil {
			return nil, "", fmt.Errorf("reading starlark module: %w", err)
		}
		p = p.Starlark(module, string(src), resolver.WithMaxSteps(g.cfg.Starlark.MaxSteps))
		g.logger.Debug("starlark evaluator enabled", "module", module)
	}

	return p, name, nil
}

// context returns the context for placeholder evaluation, bounded by the
// configured Starlark timeout
func (g *globals) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d := g.cfg.Starlark.Timeout.Duration; d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// output writes s to path, or to the command's stdout when path is empty
func output(cmd *cobra.Command, path, s string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
