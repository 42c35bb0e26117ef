package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/htmldoc"
	"github.com/tsawler/docmark/text"
)

type renderFlags struct {
	format   string
	output   string
	fragment bool
	title    string
	lang     string
	linkBase string
	noLinks  bool
}

func newRenderCmd(g *globals) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document",
		Long: `Render a document as HTML, plain text, styled terminal text or
canonical source.

Examples:
  docmark render notes.dm
  docmark render --format text notes.dm
  docmark render -o notes.html --var version=1.2 notes.dm
  echo 'p "Hello"' | docmark render --format ansi`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runRender(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: html, text, ansi or source")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&f.fragment, "fragment", false, "omit the HTML document wrapper")
	cmd.Flags().StringVar(&f.title, "title", "", "HTML document title")
	cmd.Flags().StringVar(&f.lang, "lang", "", "HTML lang attribute")
	cmd.Flags().StringVar(&f.linkBase, "link-base", "", "base path for internal locations in HTML")
	cmd.Flags().BoolVar(&f.noLinks, "no-link-targets", false, "omit link targets from text output")

	return cmd
}

// outputFormat picks the format from --format, then the output file
// extension, then the configuration
func (g *globals) outputFormat(cmd *cobra.Command, f *renderFlags) (format.Format, error) {
	if cmd.Flags().Changed("format") {
		return format.Parse(f.format)
	}
	if f.output != "" {
		if detected := format.Detect(f.output); detected != format.Unknown {
			return detected, nil
		}
	}
	return g.cfg.Format(), nil
}

func (g *globals) runRender(cmd *cobra.Command, args []string, f *renderFlags) error {
	outFormat, err := g.outputFormat(cmd, f)
	if err != nil {
		return err
	}

	p, name, err := g.input(cmd, args)
	if err != nil {
		return err
	}

	fragment := g.cfg.Render.HTMLFragment || f.fragment
	lang := g.cfg.Render.HTMLLang
	if f.lang != "" {
		lang = f.lang
	}
	linkBase := g.cfg.Render.LinkBase
	if f.linkBase != "" {
		linkBase = f.linkBase
	}

	p = p.HTMLOptions(
		htmldoc.WithFragment(fragment),
		htmldoc.WithTitle(f.title),
		htmldoc.WithLang(lang),
		htmldoc.WithLocationResolver(htmldoc.DefaultResolver{Base: linkBase}),
	).TextOptions(text.WithLinkTargets(!f.noLinks))

	if outFormat == format.ANSI {
		p = p.TextOptions(text.WithANSI(lipgloss.NewRenderer(cmd.OutOrStdout())))
	}

	ctx, cancel := g.context(cmd)
	defer cancel()

	out, err := p.Format(ctx, outFormat)
	if err != nil {
		return err
	}

	g.logger.Debug("rendered document", "input", name, "format", outFormat.String(), "bytes", len(out))
	return output(cmd, f.output, out)
}
