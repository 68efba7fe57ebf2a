package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteBackup bool

func init() {
	cmd := newDeleteCmd()
	cmd.Flags().BoolVar(&deleteBackup, "backup", false, "Keep a copy of the original as <file>.bak")
	rootCmd.AddCommand(cmd)
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <file> <path>",
		Short: "Delete a compound entry or list element",
		Long: `The delete command removes the compound entry or list element at a path
and writes the file back. Array elements and the root cannot be deleted.

Example:
  nbtctl delete level.dat Data.Player.Inventory[0]
  nbtctl delete player.dat ActiveEffects --backup`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args)
		},
	}
	return cmd
}

func runDelete(args []string) error {
	filePath, expr := args[0], args[1]

	f, err := openFile(filePath)
	if err != nil {
		return err
	}
	a, err := f.Tree.Find(expr)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	kind := a.Kind()
	if !a.Delete() {
		return fmt.Errorf("%s cannot be deleted (only compound entries and list elements can)", expr)
	}

	opts, err := writeOptions(deleteBackup)
	if err != nil {
		return err
	}
	if err := f.Save(opts); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":    filePath,
			"path":    expr,
			"type":    kind.ShortName(),
			"deleted": true,
		})
	}
	printInfo("Deleted %s (%s)\n", expr, kind)
	return nil
}
