package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/uniquekeyboard/keyboardlayout/internal/ui"
)

const version = "0.2.0"

// newRootCmd builds the generator command. It has no subcommands: the root
// command reads both input files and prints the serial commands.
func newRootCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "keyboardlayout <rows> <columns> <keycodefile> <layoutfile> [command]",
		Short: "Keyboard layout generator for keyboards from uniquekeyboard.com",
		Long: `keyboardlayout reads a tab-delimited keycode table and a layout file made of
"LAYOUT <index> <tag>" sections, and prints one line of serial set-key
commands per layer.`,
		Version:       version,
		Args:          cobra.RangeArgs(4, 5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.filter, "filter", "f", "", "Include only layers that match this tag")
	f.BoolVarP(&opts.reverse, "reverse", "r", false, "Reverse layout columns (useful for flipped designs)")
	f.BoolVar(&opts.checkKeycodes, "checkkeycodes", false, "Check the keycode file for duplicate key codes and exit")
	f.StringVarP(&opts.command, "command", "c", "", "Serial command to set a specific key (default \"uniqueksetkey\")")
	f.StringVar(&opts.configPath, "config", "", "YAML file with default settings")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored status output")

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		ui.PrintError("Error", err.Error())
		os.Exit(1)
	}
}
