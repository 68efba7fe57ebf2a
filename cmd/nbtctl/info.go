package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/pkg/nbtio"
	"github.com/joshuapare/nbtkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Decode a file and report basic metadata",
		Long: `The info command decodes an NBT file and displays its size, compression,
root name and kind, and a count of values by kind.

Example:
  nbtctl info level.dat
  nbtctl info level.dat --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type infoResult struct {
	File        string         `json:"file"`
	Size        int64          `json:"size"`
	RawSize     int            `json:"raw_size"`
	Compression string         `json:"compression"`
	RootName    string         `json:"root_name"`
	RootKind    string         `json:"root_kind"`
	Nodes       int            `json:"nodes"`
	MaxDepth    int            `json:"max_depth"`
	ArrayElems  int            `json:"array_elements"`
	Duplicates  int            `json:"duplicate_keys"`
	Kinds       map[string]int `json:"kinds"`
}

func runInfo(args []string) error {
	opts, err := readOptions()
	if err != nil {
		return err
	}
	printVerbose("Opening %s\n", args[0])
	info, err := nbtio.Stat(expandPath(args[0]), opts)
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	res := infoResult{
		File:        args[0],
		Size:        info.Size,
		RawSize:     info.RawSize,
		Compression: info.Compression.String(),
		RootName:    info.Name,
		RootKind:    info.RootKind.ShortName(),
		Nodes:       info.Stats.Nodes,
		MaxDepth:    info.Stats.MaxDepth,
		ArrayElems:  info.Stats.ArrayElems,
		Duplicates:  info.Stats.Duplicates,
		Kinds:       make(map[string]int, len(info.Stats.ByKind)),
	}
	for k, n := range info.Stats.ByKind {
		res.Kinds[k.ShortName()] = n
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(res)
	}

	printInfo("\nFile Information:\n")
	printInfo("  File: %s\n", res.File)
	printInfo("  Size: %s\n", formatSize(res.Size))
	printInfo("  Uncompressed: %s\n", formatSize(int64(res.RawSize)))
	printInfo("  Compression: %s\n", res.Compression)
	printInfo("  Root: %q (%s)\n", res.RootName, info.RootKind)
	printInfo("  Values: %d\n", res.Nodes)
	printInfo("  Max depth: %d\n", res.MaxDepth)
	printInfo("  Array elements: %d\n", res.ArrayElems)
	if res.Duplicates > 0 {
		printInfo("  Duplicate keys: %d\n", res.Duplicates)
	}

	printInfo("\nValues by kind:\n")
	kinds := make([]types.Kind, 0, len(info.Stats.ByKind))
	for k := range info.Stats.ByKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		printInfo("  %-15s %d\n", k, info.Stats.ByKind[k])
	}
	return nil
}

func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
