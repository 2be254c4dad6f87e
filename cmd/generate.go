package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/uniquekeyboard/keyboardlayout/internal/config"
	"github.com/uniquekeyboard/keyboardlayout/internal/emit"
	"github.com/uniquekeyboard/keyboardlayout/internal/keycode"
	"github.com/uniquekeyboard/keyboardlayout/internal/layout"
	"github.com/uniquekeyboard/keyboardlayout/internal/ui"
	"github.com/uniquekeyboard/keyboardlayout/pkg/log"
)

type generateOptions struct {
	filter        string
	reverse       bool
	checkKeycodes bool
	command       string
	configPath    string
	logLevel      string
	logFile       string
	noColor       bool
}

// runGenerate loads the keycode table and either reports duplicate key codes
// or parses the layout file and prints its commands.
//
// args: rows, columns, keycode file, layout file and an optional command name.
func runGenerate(cmd *cobra.Command, args []string, opts *generateOptions) error {
	ui.Output = cmd.ErrOrStderr()
	if opts.noColor {
		ui.DisableColor()
	}

	rows, err := parseDimension("rows", args[0])
	if err != nil {
		return err
	}
	columns, err := parseDimension("columns", args[1])
	if err != nil {
		return err
	}
	keycodePath, layoutPath := args[2], args[3]

	cfg, err := resolveConfig(cmd, args, opts)
	if err != nil {
		return err
	}

	if err := log.Init(cmd.ErrOrStderr(), cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()

	table, err := loadKeycodes(keycodePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.checkKeycodes {
		dups := keycode.Duplicates(table)
		if len(dups) == 0 {
			ui.PrintSuccess("Keycodes", fmt.Sprintf("No duplicates among %d names", len(table)))
			return nil
		}
		return emit.WriteDuplicates(out, dups)
	}

	f, err := os.Open(layoutPath)
	if err != nil {
		return fmt.Errorf("failed to open layout: %w", err)
	}
	res, err := layout.Parse(f, layout.Options{
		Rows:    rows,
		Columns: columns,
		Filter:  cfg.Filter,
		Reverse: cfg.Reverse,
	}, table)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", layoutPath, err)
	}

	return emit.Write(out, cfg.Command, res)
}

// resolveConfig merges the optional config file with explicitly set flags
// and the positional command name, in increasing order of precedence.
func resolveConfig(cmd *cobra.Command, args []string, opts *generateOptions) (*config.Config, error) {
	cfg := &config.Config{}
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("filter") {
		cfg.Filter = opts.filter
	}
	if flags.Changed("reverse") {
		cfg.Reverse = opts.reverse
	}
	if flags.Changed("command") {
		cfg.Command = opts.command
	}
	if len(args) > 4 {
		cfg.Command = args[4]
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.Path = opts.logFile
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadKeycodes reads the keycode table, warning about every skipped line.
func loadKeycodes(path string) (keycode.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keycodes: %w", err)
	}
	defer f.Close()

	table, bad, err := keycode.Load(f)
	if err != nil {
		return nil, err
	}
	for _, le := range bad {
		ui.PrintWarning("Invalid line", fmt.Sprintf("%s:%d: %s", path, le.Line, le.Reason))
	}
	return table, nil
}

func parseDimension(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return n, nil
}
