package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/internal/logger"
	"github.com/joshuapare/nbtkit/pkg/compress"
	"github.com/joshuapare/nbtkit/pkg/nbtio"
	"github.com/joshuapare/nbtkit/pkg/types"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	noColor     bool
	logJSON     bool
	configPath  string
	compression = "auto"
	limitsName  = "default"

	// cfg holds the config file after flags were applied on top of it.
	cfg Config

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "nbtctl",
	Short: "Inspect and edit NBT files",
	Long: `nbtctl reads, prints, edits and converts NBT (Named Binary Tag) files
such as Minecraft level.dat, player data and structure files. Gzip and zlib
framing is detected automatically.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logs on stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write debug logs as JSON lines")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+defaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&compression, "compression", compression,
		"Compression: auto detects on read and keeps it on write (auto, none, gzip, zlib)")
	rootCmd.PersistentFlags().StringVar(&limitsName, "limits", limitsName, "Decode limits preset (default, relaxed, strict)")
}

// setup loads the config file, lets explicit flags override it and starts
// logging.
func setup(cmd *cobra.Command, args []string) error {
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = defaultConfigPath
	}
	c, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if c.Limits != "" && !flags.Changed("limits") {
		limitsName = c.Limits
	}
	if c.Color != nil && !*c.Color && !flags.Changed("no-color") {
		noColor = true
	}
	cfg = c

	if noColor {
		color.NoColor = true
	}

	opts := logger.Options{Enabled: verbose, Level: slog.LevelDebug, JSON: logJSON, Output: os.Stderr}
	if cfg.LogDir != "" {
		opts.Enabled = true
		opts.Output = nil
		opts.LogDir = cfg.LogDir
	}
	logCloser, err = logger.Init(opts)
	return err
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// readOptions builds decode options from --limits and --compression.
func readOptions() (*nbtio.ReadOptions, error) {
	limits, ok := types.ParseLimits(limitsName)
	if !ok {
		return nil, fmt.Errorf("unknown limits preset: %s (must be default, strict, or relaxed)", limitsName)
	}
	opts := &nbtio.ReadOptions{Decode: types.DecodeOptions{Limits: limits}}
	f, forced, err := forcedCompression()
	if err != nil {
		return nil, err
	}
	if forced {
		opts.Compression = &f
	}
	return opts, nil
}

// writeOptions keeps the compression a file was read with unless
// --compression names one.
func writeOptions(backup bool) (*nbtio.WriteOptions, error) {
	f, forced, err := forcedCompression()
	if err != nil {
		return nil, err
	}
	return &nbtio.WriteOptions{
		Encode:      types.EncodeOptions{Limits: types.RelaxedLimits()},
		Compression: f,
		Override:    forced,
		Backup:      backup,
	}, nil
}

func forcedCompression() (compress.Format, bool, error) {
	if compression == "" || compression == "auto" {
		return compress.None, false, nil
	}
	f, err := compress.ParseFormat(compression)
	if err != nil {
		return compress.None, false, err
	}
	return f, true, nil
}

// openFile reads path with the global options.
func openFile(path string) (*nbtio.File, error) {
	opts, err := readOptions()
	if err != nil {
		return nil, err
	}
	printVerbose("Opening %s\n", path)
	f, err := nbtio.ReadFile(expandPath(path), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
