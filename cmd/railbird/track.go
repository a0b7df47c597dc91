package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/quietfold/railbird/internal/config"
	"github.com/quietfold/railbird/internal/overlay"
	"github.com/quietfold/railbird/internal/record"
	"github.com/quietfold/railbird/internal/session"
	"github.com/quietfold/railbird/internal/store"
	"github.com/quietfold/railbird/internal/tui"
)

// TrackCmd runs the interactive tracker.
type TrackCmd struct {
	Seats   int    `help:"Override the table size from the config"`
	Overlay string `help:"Serve overlay snapshots on this address, overriding the config"`
	Fresh   bool   `help:"Discard any in-progress hand and start clean"`
	Debug   bool   `help:"Enable debug logging"`
}

func (c *TrackCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Seats != 0 {
		cfg.Table.Seats = c.Seats
	}
	if c.Overlay != "" {
		cfg.Overlay.Addr = c.Overlay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.UI.LogLevel
	if c.Debug {
		level = "debug"
	}
	logger, closeLog, err := setupLogger(cfg.Storage.Dir, cfg.UI.LogFile, level)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.New(cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}
	clock := quartz.NewReal()

	sess, err := resumeSession(cfg, st, logger, clock, c.Fresh)
	if err != nil {
		return err
	}

	auto := store.NewAutosaver(st, logger, clock, store.DefaultFlushInterval)
	sess.AddListener(auto.Update)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Overlay.Addr != "" {
		ov := overlay.NewServer(cfg.Overlay.Addr, logger)
		sess.AddListener(ov.Publish)
		g.Go(func() error { return ov.Run(ctx) })
	}

	archive := func(rec record.HandRecord) {
		if _, err := st.Archive(rec, clock.Now()); err != nil {
			logger.Error("archiving completed hand failed", "error", err)
		}
	}

	model := tui.New(sess, logger, archive)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	logger.Info("tracking", "seats", cfg.Table.Seats, "my_seat", cfg.Table.MySeat, "dir", st.Dir())
	if _, err := program.Run(); err != nil {
		cancel()
		return fmt.Errorf("run tracker: %w", err)
	}
	cancel()

	// Persist whatever is in flight before exiting.
	auto.Update(sess.Snapshot())
	auto.Shutdown()
	return g.Wait()
}

// resumeSession picks up the in-progress hand from the store, or starts a
// fresh one when there is none.
func resumeSession(cfg *config.Config, st *store.Store, logger *log.Logger, clock quartz.Clock, fresh bool) (*session.Session, error) {
	if !fresh {
		rec, err := st.LoadCurrent()
		if err != nil {
			return nil, err
		}
		if rec != nil {
			logger.Info("resuming hand", "street", rec.CurrentStreet, "dealer", rec.DealerSeat)
			return session.Hydrate(logger, clock, *rec), nil
		}
	}
	sess := session.New(logger, clock, cfg.Table.Seats)
	sess.SetMySeat(cfg.Table.MySeat)
	return sess, nil
}
