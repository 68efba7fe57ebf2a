package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/compress"
	"github.com/joshuapare/nbtkit/pkg/nbtio"
)

// sampleTree is a small level.dat-like tree.
func sampleTree() *nbt.Tree {
	player := nbt.NewCompound(
		nbt.Entry{Name: "Health", Value: nbt.Float(20)},
		nbt.Entry{Name: "Pos", Value: nbt.NewListOf(nbt.Double(0.5), nbt.Double(64), nbt.Double(-3))},
		nbt.Entry{Name: "Inventory", Value: nbt.NewListOf(
			nbt.NewCompound(
				nbt.Entry{Name: "id", Value: nbt.String("minecraft:stone")},
				nbt.Entry{Name: "Count", Value: nbt.Byte(64)},
			),
			nbt.NewCompound(
				nbt.Entry{Name: "id", Value: nbt.String("minecraft:dirt")},
				nbt.Entry{Name: "Count", Value: nbt.Byte(3)},
			),
		)},
	)
	data := nbt.NewCompound(
		nbt.Entry{Name: "LevelName", Value: nbt.String("Test World")},
		nbt.Entry{Name: "GameType", Value: nbt.Int(0)},
		nbt.Entry{Name: "Time", Value: nbt.Long(24000)},
		nbt.Entry{Name: "Seeds", Value: nbt.LongArray{1, 2}},
		nbt.Entry{Name: "Player", Value: player},
	)
	return nbt.NewTree(nbt.NewCompound(nbt.Entry{Name: "Data", Value: data}), "")
}

// writeSample writes t to a fresh file in a temp dir.
func writeSample(t *testing.T, tree *nbt.Tree, f compress.Format) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.dat")
	if err := nbtio.WriteFile(path, tree, &nbtio.WriteOptions{Compression: f}); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	return path
}

// readBack decodes path.
func readBack(t *testing.T, path string) *nbtio.File {
	t.Helper()
	f, err := nbtio.ReadFile(path, nil)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return f
}

// resetFlags restores every global and command flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, noColor = false, false, false, true
	color.NoColor = true
	compression, limitsName = "auto", "default"
	cfg = Config{}
	dumpFormat, dumpPath, dumpDepth, dumpNoTypes, dumpMaxArray, dumpIndent = "", "", 0, false, 16, 0
	getShowType, getSNBT = false, false
	setType, setBackup = "", false
	deleteBackup = false
	convertTo, convertLevel = "", 0
	diffPath, diffUnified = "", false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	return string(<-done), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
