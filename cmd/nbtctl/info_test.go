package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/pkg/compress"
)

func TestInfoCommand(t *testing.T) {
	resetFlags()
	path := writeSample(t, sampleTree(), compress.Gzip)
	output, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)
	assertContains(t, output, []string{
		"Compression: gzip",
		`Root: "" (TAG_Compound)`,
		"Values: 19",
		"Max depth: 6",
		"TAG_Double",
	})
	assertNotContains(t, output, []string{"Duplicate keys"})
}

func TestInfoCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeSample(t, sampleTree(), compress.Zlib)
	output, err := captureOutput(t, func() error { return runInfo([]string{path}) })
	require.NoError(t, err)

	var res infoResult
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	require.Equal(t, "zlib", res.Compression)
	require.Equal(t, "compound", res.RootKind)
	require.Equal(t, 19, res.Nodes)
	require.Equal(t, 2, res.ArrayElems)
	require.Equal(t, 3, res.Kinds["double"])
	require.Equal(t, 5, res.Kinds["compound"])
}

func TestFormatSize(t *testing.T) {
	require.Equal(t, "512 bytes", formatSize(512))
	require.Equal(t, "1.5 KB", formatSize(1536))
	require.Equal(t, "2.0 MB", formatSize(2*1024*1024))
}
