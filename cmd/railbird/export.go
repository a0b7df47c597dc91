package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quietfold/railbird/internal/config"
	"github.com/quietfold/railbird/internal/phh"
	"github.com/quietfold/railbird/internal/record"
	"github.com/quietfold/railbird/internal/store"
)

// ExportCmd converts the archived hands to PHH TOML files.
type ExportCmd struct {
	Out   string `short:"o" default:"phh" help:"Directory to write .phh files into"`
	Debug bool   `help:"Enable debug logging"`
}

func (c *ExportCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.UI.LogLevel
	if c.Debug {
		level = "debug"
	}
	logger := stderrLogger(level)

	st, err := store.New(cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}
	records, err := st.ListArchived()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no archived hands to export")
		return nil
	}

	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	exported := 0
	for _, rec := range records {
		name := rec.ID
		if name == "" {
			name = fmt.Sprintf("hand-%d", exported+1)
		}
		path := filepath.Join(c.Out, name+".phh")
		if err := writeHand(path, rec); err != nil {
			logger.Warn("skipping hand", "id", rec.ID, "error", err)
			continue
		}
		exported++
	}

	fmt.Printf("exported %d of %d hands to %s\n", exported, len(records), c.Out)
	return nil
}

func writeHand(path string, rec record.HandRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return phh.Encode(f, phh.FromRecord(rec))
}
