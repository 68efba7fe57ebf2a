package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/nbtctl/config.toml"

// Config is the optional TOML config file. Command-line flags override the
// fields they share with it.
//
//	compression = "gzip"
//	limits = "relaxed"
//	format = "snbt"
//	indent = 4
//	color = false
//	log_dir = "~/.cache/nbtctl"
type Config struct {
	// Compression is the framing convert writes when --to is not given.
	Compression string `toml:"compression"`
	Limits      string `toml:"limits"`
	Format      string `toml:"format"`
	Indent      int    `toml:"indent"`
	Color       *bool  `toml:"color"`
	LogDir      string `toml:"log_dir"`
}

// loadConfig reads path. A missing file is an error only when the path was
// given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	var c Config
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return c, nil
		}
		return c, fmt.Errorf("config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return c, fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// expandPath resolves a leading ~. Paths it cannot expand are returned
// unchanged.
func expandPath(path string) string {
	out, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return out
}
