package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/printer"
)

var (
	getShowType bool
	getSNBT     bool
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show type information")
	cmd.Flags().BoolVar(&getSNBT, "snbt", false, "Print the value as SNBT")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Get the value at a path",
		Long: `The get command prints the value at a path. Paths are dotted compound
keys with [n] list or array indices; keys containing dots or brackets are
double-quoted.

Example:
  nbtctl get level.dat Data.LevelName
  nbtctl get player.dat "Inventory[0].id" --type
  nbtctl get player.dat Pos --snbt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	f, err := openFile(args[0])
	if err != nil {
		return err
	}
	a, err := f.Tree.Find(args[1])
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	v, _ := a.Value()

	opts := printer.DefaultOptions()
	opts.ShowTypes = getShowType
	opts.MaxArrayItems = 0
	switch {
	case jsonOut:
		opts.Format = printer.FormatJSON
		opts.ShowTypes = true
	case getSNBT:
		opts.Format = printer.FormatSNBT
	default:
		opts.Format = printer.FormatText
	}
	return printer.New(os.Stdout, opts).PrintValue(label(a, args[1]), v)
}

// label names a looked-up value: its compound key, or the path itself for
// list and array elements.
func label(a nbt.Accessor, expr string) string {
	if name, ok := a.Name(); ok {
		return name
	}
	if expr == "" {
		return "root"
	}
	return expr
}
