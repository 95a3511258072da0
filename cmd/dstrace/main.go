// Package main provides the dstrace CLI, which drives the traced containers one command at a time and prints what
// every command did.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-dstrace/Engines"
)

// options shared by every subcommand.
type options struct {
	configPath string
	format     string
	verbose    bool
	noColor    bool
}

func main() {
	err := newRootCommand(os.Stdout).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := new(options)
	rootCmd := &cobra.Command{
		Use:   "dstrace",
		Short: "Traced data structure engines",
		Long: `dstrace applies commands to a data structure and prints the result, the
visited path, the trace events and the resulting state of each one.

Commands:
  run       Apply commands given on the command line
  script    Apply the steps of a YAML script
  kinds     List the structure kinds and their verbs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default .dstrace.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table or yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every applied command to stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newRunCommand(opts), newScriptCommand(opts), newKindsCommand(opts))
	return rootCmd
}

func (o *options) logger() *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *options) engine(kind string) (Engines.Engine, error) {
	k, err := Engines.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	cfg, err := Engines.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	return Engines.New(k, *cfg, o.logger())
}
