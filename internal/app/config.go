// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// DefaultConfigFile is the config file read when none is given.
const DefaultConfigFile = "~/.config/scenedump/scenedump.toml"

// Dump formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Config is the configuration of the scenedump tool.
type Config struct {

	// LogLevel is debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// LogEncoding is console or json.
	LogEncoding string `toml:"log_encoding"`

	// Format is how dump prints scenes: text, yaml or raw.
	Format string `toml:"format"`

	// Precision is the number of decimals printed for values.
	Precision int `toml:"precision"`

	// DebounceMS is how long watch waits after a change before reloading.
	DebounceMS int `toml:"debounce_ms"`

	// Simulate is the number of seconds of physics to run before dumping.
	Simulate float32 `toml:"simulate"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		LogEncoding: "console",
		Format:      FormatText,
		Precision:   4,
		DebounceMS:  200,
	}
}

// Debounce returns the watch debounce delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// LoadConfig returns the default configuration overridden by the
// given TOML file. A missing default file is not an error.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := filename != ""
	if !explicit {
		filename = DefaultConfigFile
	}
	path, err := homedir.Expand(filename)
	if err != nil {
		return nil, errors.Wrap(err, "app: config")
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "app: config")
	}
	defer f.Close()
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "app: config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate returns an error for values that cannot be used.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML, FormatRaw:
	default:
		return errors.Errorf("app: unknown format %q", c.Format)
	}
	if c.Precision < 0 || c.Precision > 9 {
		return errors.Errorf("app: precision %d out of range 0..9", c.Precision)
	}
	if c.DebounceMS < 0 {
		return errors.Errorf("app: negative debounce %d", c.DebounceMS)
	}
	return nil
}
