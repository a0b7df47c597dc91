// Package session hosts the live engine state for one tracked table. The
// reducers in hand and cards are pure; Session serializes requests,
// re-checks the shape of every transition result before committing it
// (reverting and logging on a violation), stamps sequence entries from an
// injected clock, and fans completed snapshots out to listeners such as
// the store autosaver and the overlay broadcaster.
package session

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/quietfold/railbird/internal/cards"
	"github.com/quietfold/railbird/internal/cursor"
	"github.com/quietfold/railbird/internal/hand"
	"github.com/quietfold/railbird/internal/record"
)

// Listener receives a snapshot after every committed transition.
type Listener func(record.HandRecord)

// Session owns one HandState/CardState pair. All methods are safe for
// concurrent use, though the intended discipline is a single caller.
type Session struct {
	mu        sync.Mutex
	logger    *log.Logger
	clock     quartz.Clock
	hand      hand.State
	cards     cards.State
	cursor    cursor.Cursor
	players   map[int]string
	listeners []Listener
}

// New starts a fresh session for a table of the given size.
func New(logger *log.Logger, clock quartz.Clock, seats int) *Session {
	return &Session{
		logger:  logger.WithPrefix("session"),
		clock:   clock,
		hand:    hand.New(seats),
		cards:   cards.New(seats),
		players: map[int]string{},
	}
}

// Hydrate resumes a session from a loaded record. Migration runs first, so
// records predating the ordered sequence arrive with one reconstructed
// from their legacy map.
func Hydrate(logger *log.Logger, clock quartz.Clock, rec record.HandRecord) *Session {
	rec = record.Migrate(rec, clock.Now())
	s := &Session{
		logger:  logger.WithPrefix("session"),
		clock:   clock,
		hand:    rec.HandState(),
		cards:   rec.CardState(),
		players: map[int]string{},
	}
	for seat, name := range rec.SeatPlayers {
		s.players[seat] = name
	}
	return s
}

// AddListener registers a snapshot consumer. Listeners run synchronously
// on the transition path and must not call back into the session.
func (s *Session) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns the current state as a persistable record.
func (s *Session) Snapshot() record.HandRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() record.HandRecord {
	return record.FromState(s.hand, s.cards, s.players)
}

func (s *Session) notifyLocked() {
	snap := s.snapshotLocked()
	for _, l := range s.listeners {
		l(snap)
	}
}

// commitHand validates and installs a hand transition result. On a shape
// violation the result is discarded and the previous state kept.
func (s *Session) commitHand(next hand.State, changed bool) bool {
	if !changed {
		return false
	}
	if err := checkHandShape(next); err != nil {
		s.logger.Error("discarding hand transition, state check failed", "error", err)
		return false
	}
	s.hand = next
	s.notifyLocked()
	return true
}

func (s *Session) commitCards(next cards.State, changed bool) bool {
	if !changed {
		return false
	}
	if err := checkCardShape(next); err != nil {
		s.logger.Error("discarding card transition, state check failed", "error", err)
		return false
	}
	s.cards = next
	s.notifyLocked()
	return true
}

// Hand returns a copy of the betting state.
func (s *Session) Hand() hand.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hand
}

// Cards returns a copy of the card state.
func (s *Session) Cards() cards.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards
}

// Cursor returns the active selection cursor, if any.
func (s *Session) Cursor() cursor.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// PlayerName returns the label recorded for seat, if any.
func (s *Session) PlayerName(seat int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[seat]
}

// SetPlayer records who is sitting in seat.
func (s *Session) SetPlayer(seat int, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hand.ValidSeat(seat) {
		return false
	}
	if name == "" {
		delete(s.players, seat)
	} else {
		s.players[seat] = name
	}
	s.notifyLocked()
	return true
}

// SetMySeat moves the user's own seat.
func (s *Session) SetMySeat(seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hand.ValidSeat(seat) || s.hand.MySeat == seat {
		return false
	}
	next := s.hand
	next.MySeat = seat
	return s.commitHand(next, true)
}

// AdvanceStreet moves to the next street.
func (s *Session) AdvanceStreet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.hand.AdvanceStreet()
	return s.commitHand(next, changed)
}

// RecordAction records a legacy-vocabulary label for the given seats and,
// when the label maps to a primitive, appends matching entries to the
// ordered sequence.
func (s *Session) RecordAction(seats []int, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.hand.RecordAction(seats, label)
	if !s.commitHand(next, changed) {
		return false
	}
	if action, ok := hand.Normalize(label); ok {
		now := s.clock.Now()
		for _, seat := range seats {
			if next, changed := s.hand.RecordPrimitive(seat, action, now); changed {
				s.commitHand(next, true)
			}
		}
	}
	return true
}

// RecordPrimitive appends a single ordered entry without touching the
// legacy map.
func (s *Session) RecordPrimitive(seat int, action hand.Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.hand.RecordPrimitive(seat, action, s.clock.Now())
	return s.commitHand(next, changed)
}

// UndoLast drops the seat's most recent label on the current street.
func (s *Session) UndoLast(seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.hand.UndoLast(seat)
	return s.commitHand(next, changed)
}

// UndoLastEvent pops the newest entry from the ordered sequence.
func (s *Session) UndoLastEvent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.hand.UndoLastEvent()
	return s.commitHand(next, changed)
}

// ToggleAbsence flips the listed seats' absence.
func (s *Session) ToggleAbsence(seats ...int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.hand.ToggleAbsence(seats)
	return s.commitHand(next, changed)
}

// RotateDealer moves the button one seat.
func (s *Session) RotateDealer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.hand.RotateDealer()
	return s.commitHand(next, changed)
}

// ResetHand returns the current hand to its starting state. Cards clear
// with it; the dealer stays.
func (s *Session) ResetHand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hand = s.hand.Reset()
	s.cards = s.cards.ResetAll()
	s.cursor = cursor.Closed
	s.notifyLocked()
}

// NextHand completes the current hand and starts the next one: the dealer
// rotates, actions and cards clear, absence carries over. The completed
// hand's record is returned for archiving.
func (s *Session) NextHand() record.HandRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	finished := s.snapshotLocked()
	s.hand = s.hand.NextHand()
	s.cards = s.cards.ResetAll()
	s.cursor = cursor.Closed
	s.notifyLocked()
	return finished
}

// IsActive reports seat eligibility for showdown capture.
func (s *Session) IsActive(seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hand.IsActive(seat)
}

// SetCommunityCard writes directly to a board slot, bypassing the cursor.
func (s *Session) SetCommunityCard(index int, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.cards.SetCommunity(index, value)
	return s.commitCards(next, changed)
}

// SetHoleCard writes directly to a hole slot.
func (s *Session) SetHoleCard(index int, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.cards.SetHole(index, value)
	return s.commitCards(next, changed)
}

// SetSeatCard writes directly to a seat's showdown slot.
func (s *Session) SetSeatCard(seat, slot int, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.cards.SetSeat(seat, slot, value)
	return s.commitCards(next, changed)
}

// ClearCommunity empties the board.
func (s *Session) ClearCommunity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.cards.ClearCommunity()
	return s.commitCards(next, changed)
}

// ClearHole empties the user's hole cards.
func (s *Session) ClearHole() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := s.cards.ClearHole()
	return s.commitCards(next, changed)
}

// ToggleHoleVisible flips hole-card visibility.
func (s *Session) ToggleHoleVisible() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = s.cards.ToggleHoleVisible()
	s.notifyLocked()
}

// OpenCommunity starts community card capture at the given slot.
func (s *Session) OpenCommunity(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor.Community(index)
}

// OpenHole starts hole card capture at the given slot.
func (s *Session) OpenHole(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor.Hole(index)
}

// OpenShowdown starts showdown capture at the given seat and slot.
func (s *Session) OpenShowdown(seat, slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor.Showdown(seat, slot)
}

// CloseCursor abandons the active capture.
func (s *Session) CloseCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor.Closed
}

// PickCard places a card at the active cursor and advances it.
func (s *Session) PickCard(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	nextCards, nextCursor, changed := cursor.Pick(s.hand, s.cards, s.cursor, value)
	if !changed {
		return false
	}
	if err := checkCardShape(nextCards); err != nil {
		s.logger.Error("discarding card pick, state check failed", "error", err)
		return false
	}
	s.cards = nextCards
	s.cursor = nextCursor
	s.notifyLocked()
	return true
}
