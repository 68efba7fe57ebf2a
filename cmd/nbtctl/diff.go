package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/printer"
)

var (
	diffPath    string
	diffUnified bool
)

func init() {
	cmd := newDiffCmd()
	cmd.Flags().StringVar(&diffPath, "path", "", "Compare only the value at this path")
	cmd.Flags().BoolVar(&diffUnified, "unified", false, "Show a line diff of the text dumps instead")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file1> <file2>",
		Short: "Compare two files and show differences",
		Long: `The diff command compares two trees value by value. Compound entries are
matched by name and list elements by index; each difference is reported
with its path.

Example:
  nbtctl diff before.dat after.dat
  nbtctl diff before.dat after.dat --path Data.Player
  nbtctl diff before.dat after.dat --unified`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

// Change is one difference between two trees.
type Change struct {
	Path   string `json:"path"`
	Action string `json:"action"` // "added", "removed", "changed"
	Old    string `json:"old,omitempty"`
	New    string `json:"new,omitempty"`
}

func runDiff(args []string) error {
	a, err := diffSide(args[0])
	if err != nil {
		return err
	}
	b, err := diffSide(args[1])
	if err != nil {
		return err
	}

	if diffUnified {
		return unifiedDiff(args[0], args[1], a, b)
	}

	changes := diffValues(nil, a, b, nil)
	if jsonOut {
		return printJSON(map[string]any{
			"file1":   args[0],
			"file2":   args[1],
			"changes": changes,
		})
	}

	if len(changes) == 0 {
		printInfo("No differences\n")
		return nil
	}
	red, green, yellow := color.New(color.FgRed).SprintFunc(), color.New(color.FgGreen).SprintFunc(), color.New(color.FgYellow).SprintFunc()
	for _, c := range changes {
		switch c.Action {
		case "added":
			printInfo("%s %s: %s\n", green("+"), c.Path, c.New)
		case "removed":
			printInfo("%s %s: %s\n", red("-"), c.Path, c.Old)
		default:
			printInfo("%s %s: %s -> %s\n", yellow("~"), c.Path, c.Old, c.New)
		}
	}
	printInfo("\n%d difference(s)\n", len(changes))
	return nil
}

func diffSide(path string) (nbt.Value, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	if diffPath == "" {
		return f.Tree.Root, nil
	}
	acc, err := f.Tree.Find(diffPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	v, _ := acc.Value()
	return v, nil
}

// diffValues appends the differences between a and b, found at path, to
// out. Compounds are compared entry by entry using the first occurrence of
// each name; lists of the same element kind element by element.
func diffValues(path []nbt.PathElem, a, b nbt.Value, out []Change) []Change {
	where := func() string {
		if len(path) == 0 {
			return "<root>"
		}
		return nbt.FormatPath(path)
	}
	switch {
	case a == nil && b == nil:
		return out
	case a == nil:
		return append(out, Change{Path: where(), Action: "added", New: short(b)})
	case b == nil:
		return append(out, Change{Path: where(), Action: "removed", Old: short(a)})
	}

	ca, aok := a.(*nbt.Compound)
	cb, bok := b.(*nbt.Compound)
	if aok && bok {
		seen := make(map[string]bool, ca.Len())
		for _, e := range ca.Entries() {
			if seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			other, _ := cb.Get(e.Name)
			out = diffValues(append(path, nbt.PathElem{Key: e.Name}), e.Value, other, out)
		}
		for _, e := range cb.Entries() {
			if !seen[e.Name] {
				seen[e.Name] = true
				out = diffValues(append(path, nbt.PathElem{Key: e.Name}), nil, e.Value, out)
			}
		}
		return out
	}

	la, aok := a.(*nbt.List)
	lb, bok := b.(*nbt.List)
	if aok && bok && (la.ElemKind() == lb.ElemKind() || la.Len() == 0 || lb.Len() == 0) {
		for i := range max(la.Len(), lb.Len()) {
			ea, _ := la.Get(i)
			eb, _ := lb.Get(i)
			out = diffValues(append(path, nbt.PathElem{Index: i, IsIndex: true}), ea, eb, out)
		}
		return out
	}

	if !nbt.Equal(a, b) {
		out = append(out, Change{Path: where(), Action: "changed", Old: short(a), New: short(b)})
	}
	return out
}

// short renders v as SNBT, cut down for one-line reports.
func short(v nbt.Value) string {
	const limit = 80
	s, err := printer.SNBT(v)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	if len(s) > limit {
		s = s[:limit-3] + "..."
	}
	return s
}

// unifiedDiff prints a line diff of the text dumps of a and b.
func unifiedDiff(name1, name2 string, a, b nbt.Value) error {
	text1, err := dumpText(a)
	if err != nil {
		return err
	}
	text2, err := dumpText(b)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(text1, text2)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lines)

	red, green := color.New(color.FgRed).SprintFunc(), color.New(color.FgGreen).SprintFunc()
	printInfo("--- %s\n+++ %s\n", name1, name2)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				printInfo("%s\n", green("+"+line))
			case diffmatchpatch.DiffDelete:
				printInfo("%s\n", red("-"+line))
			default:
				printInfo(" %s\n", line)
			}
		}
	}
	return nil
}

func dumpText(v nbt.Value) (string, error) {
	var buf bytes.Buffer
	opts := printer.DefaultOptions()
	opts.MaxArrayItems = 0
	if err := printer.New(&buf, opts).PrintValue("", v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
