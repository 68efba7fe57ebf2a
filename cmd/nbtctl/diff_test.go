package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/compress"
)

// modifiedSample changes GameType, drops Seeds, adds Extra and one
// inventory slot.
func modifiedSample() *nbt.Tree {
	tree := sampleTree()
	data := tree.Key("Data")
	data.Key("GameType").SetInt(1)
	data.Key("Seeds").Delete()
	c, _ := data.Compound()
	c.Set("Extra", nbt.Byte(1))
	inv, _ := data.Key("Player").Key("Inventory").List()
	inv.Append(nbt.NewCompound(nbt.Entry{Name: "id", Value: nbt.String("minecraft:torch")}))
	return tree
}

func TestDiffCommand(t *testing.T) {
	resetFlags()
	a := writeSample(t, sampleTree(), compress.Gzip)
	b := writeSample(t, modifiedSample(), compress.None)

	output, err := captureOutput(t, func() error { return runDiff([]string{a, b}) })
	require.NoError(t, err)
	assertContains(t, output, []string{
		"~ Data.GameType: 0 -> 1\n",
		"- Data.Seeds: [L;1L,2L]\n",
		"+ Data.Extra: 1b\n",
		`+ Data.Player.Inventory[2]: {id:"minecraft:torch"}`,
		"4 difference(s)",
	})
}

func TestDiffCommand_Same(t *testing.T) {
	resetFlags()
	a := writeSample(t, sampleTree(), compress.Gzip)
	b := writeSample(t, sampleTree(), compress.Zlib)
	output, err := captureOutput(t, func() error { return runDiff([]string{a, b}) })
	require.NoError(t, err)
	require.Equal(t, "No differences\n", output)
}

func TestDiffCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	diffPath = "Data.Player"
	a := writeSample(t, sampleTree(), compress.None)
	b := writeSample(t, modifiedSample(), compress.None)

	output, err := captureOutput(t, func() error { return runDiff([]string{a, b}) })
	require.NoError(t, err)

	var res struct {
		Changes []Change `json:"changes"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	require.Equal(t, []Change{{
		Path:   "Inventory[2]",
		Action: "added",
		New:    `{id:"minecraft:torch"}`,
	}}, res.Changes)
}

func TestDiffCommand_Unified(t *testing.T) {
	resetFlags()
	diffUnified = true
	a := writeSample(t, sampleTree(), compress.None)
	b := writeSample(t, modifiedSample(), compress.None)

	output, err := captureOutput(t, func() error { return runDiff([]string{a, b}) })
	require.NoError(t, err)
	assertContains(t, output, []string{
		"-    GameType [TAG_Int] = 0\n",
		"+    GameType [TAG_Int] = 1\n",
		"     LevelName [TAG_String] = \"Test World\"\n",
	})
}

func TestDiffValues_KindChange(t *testing.T) {
	a := nbt.NewCompound(nbt.Entry{Name: "x", Value: nbt.Int(1)}, nbt.Entry{Name: "l", Value: nbt.NewListOf(nbt.Int(1))})
	b := nbt.NewCompound(nbt.Entry{Name: "x", Value: nbt.Long(1)}, nbt.Entry{Name: "l", Value: nbt.NewListOf(nbt.Short(1))})
	got := diffValues(nil, a, b, nil)
	require.Equal(t, []Change{
		{Path: "x", Action: "changed", Old: "1", New: "1L"},
		{Path: "l", Action: "changed", Old: "[1]", New: "[1s]"},
	}, got)

	require.Equal(t, []Change{{Path: "<root>", Action: "changed", Old: "1b", New: "2b"}},
		diffValues(nil, nbt.Byte(1), nbt.Byte(2), nil))
}
