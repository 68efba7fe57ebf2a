package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/pkg/compress"
	"github.com/joshuapare/nbtkit/pkg/nbtio"
	"github.com/joshuapare/nbtkit/pkg/types"
)

var (
	convertTo    string
	convertLevel int
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVar(&convertTo, "to", "", "Output compression (none, gzip, zlib); default keeps the input's")
	cmd.Flags().IntVar(&convertLevel, "level", 0, "Compression level (1-9, 0 = default)")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode a file, optionally changing its compression",
		Long: `The convert command decodes a file and writes it again. The output is
canonical: whatever the input's compression or trailing bytes, the result
holds exactly one encoded tree.

Example:
  nbtctl convert level.dat level.raw --to none
  nbtctl convert raw.nbt out.nbt --to gzip --level 9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
	return cmd
}

func runConvert(args []string) error {
	in, out := args[0], args[1]

	f, err := openFile(in)
	if err != nil {
		return err
	}

	format := f.Compression
	switch {
	case convertTo != "":
		if format, err = compress.ParseFormat(convertTo); err != nil {
			return err
		}
	case cfg.Compression != "" && cfg.Compression != "auto":
		if format, err = compress.ParseFormat(cfg.Compression); err != nil {
			return err
		}
	}

	opts := &nbtio.WriteOptions{
		Encode:      types.EncodeOptions{Limits: types.RelaxedLimits()},
		Compression: format,
		Level:       convertLevel,
	}
	if err := nbtio.WriteFile(expandPath(out), f.Tree, opts); err != nil {
		return fmt.Errorf("failed to convert: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"input":       in,
			"output":      out,
			"from":        f.Compression.String(),
			"compression": format.String(),
		})
	}
	printInfo("Converted %s (%s) -> %s (%s)\n", in, f.Compression, out, format)
	return nil
}
