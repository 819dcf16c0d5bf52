// Package cli implements the stackgrid command-line interface.
//
// The root command opens the board in the terminal. The config
// subcommands create and print the TOML configuration file. All commands
// accept --verbose for debug logging and --log-file to send logs to a
// file, which is the only way to see logs while the board is open.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version, usually
// injected via ldflags
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// tuiAnnotation marks commands that take over the terminal
const tuiAnnotation = "tui"

type rootOptions struct {
	configPath string
	logFile    string
	verbose    bool
	columns    int

	closeLog func() error
}

// Execute runs the stackgrid CLI
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "stackgrid",
		Short:        "Drag to reorder and stack cards in the terminal",
		Long:         `stackgrid shows a grid of cards. Press and hold a card to pick it up, drag it to reorder, or hover over another card's centre to stack the two together.`,
		Version:      version,
		SilenceUsage: true,
		Annotations:  map[string]string{tuiAnnotation: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("stackgrid %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default is the user config directory)")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.IntVar(&opts.columns, "columns", 0, "override the number of grid columns")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	level := log.InfoLevel
	if o.verbose {
		level = log.DebugLevel
	}
	w, closeLog, err := openLog(o.logFile, cmd.Annotations[tuiAnnotation] == "true")
	if err != nil {
		return err
	}
	o.closeLog = closeLog

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, newLogger(w, level)))
	return nil
}

func (o *rootOptions) teardown() error {
	if o.closeLog == nil {
		return nil
	}
	err := o.closeLog()
	o.closeLog = nil
	return err
}
