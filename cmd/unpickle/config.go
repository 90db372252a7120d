package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/unpickler"
)

// Output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatCBOR = "cbor"
	formatDis  = "dis"
)

// Color modes.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type config struct {
	Format         string
	Color          string
	MaxStackDepth  int
	MaxMemoEntries int
}

type fileConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxStackDepth  int    `toml:"max_stack_depth"`
	MaxMemoEntries int    `toml:"max_memo_entries"`
}

func defaultConfig() config {
	opts := unpickler.DefaultOptions()
	return config{
		Format:         formatText,
		Color:          colorAuto,
		MaxStackDepth:  opts.MaxStackDepth,
		MaxMemoEntries: opts.MaxMemoEntries,
	}
}

// loadConfig overlays the keys defined in a TOML file onto the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "load config "+path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, errors.InvalidInput(errors.PhaseConfig, "unknown config keys: "+strings.Join(keys, ", "))
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("color") {
		cfg.Color = strings.TrimSpace(raw.Color)
	}
	if meta.IsDefined("max_stack_depth") {
		cfg.MaxStackDepth = raw.MaxStackDepth
	}
	if meta.IsDefined("max_memo_entries") {
		cfg.MaxMemoEntries = raw.MaxMemoEntries
	}
	return cfg, cfg.validate()
}

// applyFlags overrides config values with the flags the user set explicitly.
func (c *config) applyFlags(set map[string]bool, format, color string) error {
	if set["format"] {
		c.Format = format
	}
	if set["color"] {
		c.Color = color
	}
	return c.validate()
}

func (c config) validate() error {
	switch c.Format {
	case formatText, formatYAML, formatCBOR, formatDis:
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown format %q", c.Format))
	}
	switch c.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown color mode %q", c.Color))
	}
	if c.MaxStackDepth < 0 || c.MaxMemoEntries < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "limits must not be negative")
	}
	return nil
}

func (c config) options(buffers [][]byte) unpickler.Options {
	return unpickler.Options{
		Buffers:        buffers,
		MaxStackDepth:  c.MaxStackDepth,
		MaxMemoEntries: c.MaxMemoEntries,
	}
}

// colorEnabled resolves the color mode against the output file.
func (c config) colorEnabled(out *os.File) bool {
	switch c.Color {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}
