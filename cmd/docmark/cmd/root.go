// Package cmd implements the docmark command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/docmark/config"
)

// globals holds the persistent flags shared by all subcommands
type globals struct {
	cfgFile  string
	logLevel string
	vars     map[string]string
	inline   string

	cfg     *config.Config
	logger  *slog.Logger
	closers []io.Closer
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "docmark",
		Short: "Parse and render docmark documents",
		Long: `docmark parses the docmark markup language and renders it as HTML,
plain text or styled terminal output.

Commands:
  render   - render a document
  fmt      - print the canonical source form
  check    - report the first error in a document
  version  - print the version

Input is read from the named file, from --inline, or from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return g.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./docmark.toml)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringToStringVar(&g.vars, "var", nil, "placeholder value as name=value (repeatable)")
	flags.StringVarP(&g.inline, "inline", "e", "", "markup to process instead of a file")

	root.AddCommand(newRenderCmd(g))
	root.AddCommand(newFmtCmd(g))
	root.AddCommand(newCheckCmd(g))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the command line and prints any error to stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "docmark: %v\n", err)
}

// setup loads the configuration, applies flag overrides and builds the
// logger
func (g *globals) setup(cmd *cobra.Command) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	if g.logLevel != "" {
		cfg.General.LogLevel = g.logLevel
	}
	for k, v := range g.vars {
		cfg.Vars[k] = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Level()
	logger, closer, err := newLogger(cmd.ErrOrStderr(), level, cfg.General.LogFile)
	if err != nil {
		return err
	}
	if closer != nil {
		g.closers = append(g.closers, closer)
	}

	g.cfg = cfg
	g.logger = logger
	logger.Debug("configuration loaded", "config", g.cfgFile, "format", cfg.Render.Format, "vars", len(cfg.Vars))
	return nil
}

func (g *globals) loadConfig() (*config.Config, error) {
	path := g.cfgFile
	if path == "" {
		path = config.Find()
	}
	if path == "" {
		return config.Default(), nil
	}
	g.cfgFile = path
	return config.Load(path)
}

func (g *globals) close() error {
	var first error
	for _, c := range g.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	g.closers = nil
	return first
}
