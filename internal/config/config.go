// Package config loads the tracker configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete tracker configuration.
type Config struct {
	Table   TableSettings   `hcl:"table,block"`
	Storage StorageSettings `hcl:"storage,block"`
	Overlay OverlaySettings `hcl:"overlay,block"`
	UI      UISettings      `hcl:"ui,block"`
}

// TableSettings describes the table being tracked.
type TableSettings struct {
	Seats  int `hcl:"seats,optional"`
	MySeat int `hcl:"my_seat,optional"`
}

// StorageSettings controls where hand records are written.
type StorageSettings struct {
	Dir string `hcl:"dir,optional"`
}

// OverlaySettings controls the optional websocket broadcaster.
type OverlaySettings struct {
	Addr string `hcl:"addr,optional"`
}

// UISettings contains logging and display options.
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Table:   TableSettings{Seats: 9, MySeat: 1},
		Storage: StorageSettings{Dir: filepath.Join(home, ".railbird")},
		Overlay: OverlaySettings{Addr: ""},
		UI:      UISettings{LogLevel: "warn", LogFile: "railbird.log"},
	}
}

// Load reads the HCL file at path, returning defaults when it does not
// exist. Missing fields fall back to their defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode config: %s", diags.Error())
	}

	defaults := Default()
	if cfg.Table.Seats == 0 {
		cfg.Table.Seats = defaults.Table.Seats
	}
	if cfg.Table.MySeat == 0 {
		cfg.Table.MySeat = defaults.Table.MySeat
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = defaults.Storage.Dir
	}
	if cfg.UI.LogLevel == "" {
		cfg.UI.LogLevel = defaults.UI.LogLevel
	}
	if cfg.UI.LogFile == "" {
		cfg.UI.LogFile = defaults.UI.LogFile
	}
	return &cfg, nil
}

// Validate checks ranges and cross-field consistency.
func (c *Config) Validate() error {
	if c.Table.Seats < 2 || c.Table.Seats > 10 {
		return fmt.Errorf("table seats must be between 2 and 10, got %d", c.Table.Seats)
	}
	if c.Table.MySeat < 1 || c.Table.MySeat > c.Table.Seats {
		return fmt.Errorf("my_seat %d outside table of %d seats", c.Table.MySeat, c.Table.Seats)
	}
	switch c.UI.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.UI.LogLevel)
	}
	return nil
}
