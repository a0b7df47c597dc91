package session

import (
	"fmt"

	"github.com/quietfold/railbird/internal/cards"
	"github.com/quietfold/railbird/internal/deck"
	"github.com/quietfold/railbird/internal/hand"
)

// checkHandShape verifies the structural invariants a hand transition
// result must satisfy before it is committed. The reducers uphold these
// themselves; this is the last-known-good guard, not a second validator.
func checkHandShape(s hand.State) error {
	if s.Seats < 2 {
		return fmt.Errorf("table has %d seats", s.Seats)
	}
	if s.Street < hand.Preflop || s.Street > hand.Showdown {
		return fmt.Errorf("street %d out of range", int(s.Street))
	}
	if !s.ValidSeat(s.DealerSeat) {
		return fmt.Errorf("dealer seat %d out of range", s.DealerSeat)
	}
	if !s.ValidSeat(s.MySeat) {
		return fmt.Errorf("own seat %d out of range", s.MySeat)
	}
	if s.SeatActions == nil || s.Absent == nil {
		return fmt.Errorf("nil action or absence container")
	}
	for street, seats := range s.SeatActions {
		if street < hand.Preflop || street > hand.Showdown {
			return fmt.Errorf("actions recorded on street %d", int(street))
		}
		for seat, labels := range seats {
			if !s.ValidSeat(seat) {
				return fmt.Errorf("actions recorded for seat %d", seat)
			}
			if len(labels) == 0 {
				return fmt.Errorf("empty label list for seat %d", seat)
			}
		}
	}
	for seat := range s.Absent {
		if !s.ValidSeat(seat) {
			return fmt.Errorf("absent seat %d out of range", seat)
		}
		if len(s.SeatActions[s.Street][seat]) > 0 {
			return fmt.Errorf("seat %d absent but acted this street", seat)
		}
	}
	seen := make(map[int]bool, len(s.Sequence))
	for _, e := range s.Sequence {
		if e.Order <= 0 {
			return fmt.Errorf("sequence order %d not positive", e.Order)
		}
		if seen[e.Order] {
			return fmt.Errorf("sequence order %d duplicated", e.Order)
		}
		seen[e.Order] = true
		if !s.ValidSeat(e.Seat) {
			return fmt.Errorf("sequence entry for seat %d", e.Seat)
		}
	}
	return nil
}

// checkCardShape verifies slot values and the global uniqueness invariant.
func checkCardShape(c cards.State) error {
	if c.BySeat == nil {
		return fmt.Errorf("nil seat card container")
	}
	counts := map[string]int{}
	note := func(where string, value string) error {
		if value == "" {
			return nil
		}
		if !deck.Valid(value) {
			return fmt.Errorf("%s holds invalid card %q", where, value)
		}
		counts[value]++
		if counts[value] > 1 {
			return fmt.Errorf("card %s occupies multiple slots", value)
		}
		return nil
	}

	for i, v := range c.Community {
		if err := note(fmt.Sprintf("board slot %d", i), v); err != nil {
			return err
		}
	}
	for i, v := range c.Hole {
		if err := note(fmt.Sprintf("hole slot %d", i), v); err != nil {
			return err
		}
	}
	for seat, pair := range c.BySeat {
		if seat < 1 || seat > c.Seats {
			return fmt.Errorf("cards recorded for seat %d", seat)
		}
		for i, v := range pair {
			if err := note(fmt.Sprintf("seat %d slot %d", seat, i), v); err != nil {
				return err
			}
		}
	}
	return nil
}
