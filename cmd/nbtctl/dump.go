package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt/printer"
)

var (
	dumpFormat   string
	dumpPath     string
	dumpDepth    int
	dumpNoTypes  bool
	dumpMaxArray int
	dumpIndent   int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "", "Output format (text, json, yaml, snbt)")
	cmd.Flags().StringVar(&dumpPath, "path", "", "Dump only the value at this path")
	cmd.Flags().IntVar(&dumpDepth, "depth", 0, "Maximum depth to print (0 = unlimited)")
	cmd.Flags().BoolVar(&dumpNoTypes, "no-types", false, "Omit tag kinds")
	cmd.Flags().IntVar(&dumpMaxArray, "max-array", printer.DefaultMaxArrayItems, "Array elements shown in text output (0 = all)")
	cmd.Flags().IntVar(&dumpIndent, "indent", 0, "Spaces per level (default 2)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a file's tree",
		Long: `The dump command prints the whole tree of an NBT file, or the value at
--path.

Example:
  nbtctl dump level.dat
  nbtctl dump level.dat --format snbt
  nbtctl dump level.dat --path Data.Player --depth 2
  nbtctl dump player.dat --json --no-types`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

// dumpOptions merges dump flags, --json and the config file.
func dumpOptions() (printer.Options, error) {
	opts := printer.DefaultOptions()
	name := dumpFormat
	if name == "" {
		name = cfg.Format
	}
	if jsonOut {
		name = string(printer.FormatJSON)
	}
	format, err := printer.ParseFormat(name)
	if err != nil {
		return opts, err
	}
	opts.Format = format
	opts.MaxDepth = dumpDepth
	opts.ShowTypes = !dumpNoTypes
	opts.MaxArrayItems = dumpMaxArray
	opts.Color = !noColor && format == printer.FormatText && isTerminal(os.Stdout)
	switch {
	case dumpIndent > 0:
		opts.IndentSize = dumpIndent
	case cfg.Indent > 0:
		opts.IndentSize = cfg.Indent
	}
	return opts, nil
}

func runDump(args []string) error {
	opts, err := dumpOptions()
	if err != nil {
		return err
	}
	f, err := openFile(args[0])
	if err != nil {
		return err
	}

	p := printer.New(os.Stdout, opts)
	if dumpPath == "" {
		return p.PrintTree(f.Tree)
	}
	a, err := f.Tree.Find(dumpPath)
	if err != nil {
		return err
	}
	v, _ := a.Value()
	if err := p.PrintValue(label(a, dumpPath), v); err != nil {
		return fmt.Errorf("failed to print %s: %w", dumpPath, err)
	}
	return nil
}
