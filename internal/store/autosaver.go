package store

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/quietfold/railbird/internal/record"
)

// DefaultFlushInterval is how often the autosaver writes a dirty snapshot.
const DefaultFlushInterval = 2 * time.Second

// Autosaver debounces live-hand snapshot writes. Sessions push every state
// change through Update; the flush loop writes at most once per interval,
// with an immediate coalesced flush request for callers that want the write
// sooner. Shutdown drains the pending snapshot before returning.
type Autosaver struct {
	store    *Store
	logger   *log.Logger
	clock    quartz.Clock
	interval time.Duration

	mu      sync.Mutex
	pending *record.HandRecord

	flushReq chan struct{}
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewAutosaver starts the flush loop.
func NewAutosaver(s *Store, logger *log.Logger, clock quartz.Clock, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	a := &Autosaver{
		store:    s,
		logger:   logger.WithPrefix("autosave"),
		clock:    clock,
		interval: interval,
		flushReq: make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

// Update replaces the pending snapshot. Consecutive updates between
// flushes coalesce; only the latest state reaches disk.
func (a *Autosaver) Update(rec record.HandRecord) {
	a.mu.Lock()
	a.pending = &rec
	a.mu.Unlock()
}

// Flush requests an immediate write of the pending snapshot. The request
// is coalesced if one is already queued.
func (a *Autosaver) Flush() {
	select {
	case a.flushReq <- struct{}{}:
	default:
	}
}

// Shutdown stops the loop and writes any pending snapshot.
func (a *Autosaver) Shutdown() {
	close(a.stop)
	a.wg.Wait()
	a.flush()
}

func (a *Autosaver) run() {
	defer a.wg.Done()
	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.flush()
		case <-a.flushReq:
			a.flush()
		case <-a.stop:
			return
		}
	}
}

func (a *Autosaver) flush() {
	a.mu.Lock()
	rec := a.pending
	a.pending = nil
	a.mu.Unlock()

	if rec == nil {
		return
	}
	if err := a.store.SaveCurrent(*rec); err != nil {
		a.logger.Error("autosave failed", "error", err)
		// Put the snapshot back so the next tick retries, unless a newer
		// one arrived in the meantime.
		a.mu.Lock()
		if a.pending == nil {
			a.pending = rec
		}
		a.mu.Unlock()
	}
}
