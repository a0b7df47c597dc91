// Package cursor implements the next-slot-to-fill logic for the three card
// entry contexts: the community board, the user's own hole cards, and the
// all-seats showdown reveal. Each policy shares a shape: place the picked
// value, then either advance the cursor to the next slot or close it.
//
// The strict no-duplicate rule lives in package cards; this layer resolves
// conflicts instead of rejecting them, by clearing the picked value from
// the slots its policy is allowed to steal from before writing.
package cursor

import (
	"github.com/quietfold/railbird/internal/cards"
	"github.com/quietfold/railbird/internal/hand"
)

// Mode selects which entry context the cursor is driving.
type Mode int

const (
	ModeCommunity Mode = iota
	ModeHole
	ModeShowdown
)

// Cursor points at the next slot a picked card will land in. A closed
// cursor (Open false) means no capture is active. Seat and Slot are used
// in showdown mode, Index otherwise.
type Cursor struct {
	Mode  Mode
	Open  bool
	Index int
	Seat  int
	Slot  int
}

// Closed is the inactive cursor.
var Closed = Cursor{}

// Community opens a cursor on board slot index.
func Community(index int) Cursor {
	return Cursor{Mode: ModeCommunity, Open: true, Index: index}
}

// Hole opens a cursor on the user's hole slot index.
func Hole(index int) Cursor {
	return Cursor{Mode: ModeHole, Open: true, Index: index}
}

// Showdown opens a cursor on a seat's reveal slot.
func Showdown(seat, slot int) Cursor {
	return Cursor{Mode: ModeShowdown, Open: true, Seat: seat, Slot: slot}
}

// Pick places value at the cursor's target and computes the follow-up
// cursor. It returns the updated card state, the next cursor, and whether
// anything was placed. A closed cursor, an invalid value, or a conflict
// the policy is not allowed to steal from all reject the pick, leaving
// both state and cursor unchanged.
func Pick(h hand.State, c cards.State, cur Cursor, value string) (cards.State, Cursor, bool) {
	if !cur.Open || value == "" {
		return c, cur, false
	}
	switch cur.Mode {
	case ModeCommunity:
		return pickCommunity(h, c, cur, value)
	case ModeHole:
		return pickHole(c, cur, value)
	case ModeShowdown:
		return pickShowdown(h, c, cur, value)
	default:
		return c, cur, false
	}
}

// pickCommunity may steal the value from another board slot (swap), but a
// value sitting in a hole or seat slot still rejects. The cursor closes on
// the street's last board slot and advances by one otherwise.
func pickCommunity(h hand.State, c cards.State, cur Cursor, value string) (cards.State, Cursor, bool) {
	if slot, ok := c.Find(value); ok && slot.Zone == cards.ZoneCommunity && slot.Index != cur.Index {
		c, _ = c.SetCommunity(slot.Index, "")
	}
	next, changed := c.SetCommunity(cur.Index, value)
	if !changed {
		return c, cur, false
	}
	last := h.Street.BoardSlots()
	if cur.Index >= last || cur.Index >= 4 {
		return next, Closed, true
	}
	return next, Community(cur.Index + 1), true
}

// pickHole may steal from the other hole slot only. After slot 0 the
// cursor jumps to slot 1; after slot 1 it closes.
func pickHole(c cards.State, cur Cursor, value string) (cards.State, Cursor, bool) {
	other := 1 - cur.Index
	if c.Hole[other] == value {
		c, _ = c.SetHole(other, "")
	}
	next, changed := c.SetHole(cur.Index, value)
	if !changed {
		return c, cur, false
	}
	if cur.Index == 1 {
		return next, Closed, true
	}
	return next, Hole(1), true
}

// pickShowdown writes to the user's own hole cards when the target seat is
// their seat, and to the seat's reveal slots otherwise. It steals the
// value from anywhere: every seat's cards, the hole cards and the board.
func pickShowdown(h hand.State, c cards.State, cur Cursor, value string) (cards.State, Cursor, bool) {
	target := showdownSlot(h, cur.Seat, cur.Slot)
	if slot, ok := c.Find(value); ok && slot != target {
		c = clearSlot(c, slot)
	}

	var changed bool
	if target.Zone == cards.ZoneHole {
		c, changed = c.SetHole(target.Index, value)
	} else {
		c, changed = c.SetSeat(target.Seat, target.Index, value)
	}
	if !changed {
		return c, cur, false
	}
	return c, nextShowdown(h, c, cur), true
}

// showdownSlot maps a (seat, slot) target to its destination: the user's
// seat reveals into their hole cards.
func showdownSlot(h hand.State, seat, slot int) cards.Slot {
	if seat == h.MySeat {
		return cards.Slot{Zone: cards.ZoneHole, Index: slot}
	}
	return cards.Slot{Zone: cards.ZoneSeat, Seat: seat, Index: slot}
}

func clearSlot(c cards.State, slot cards.Slot) cards.State {
	switch slot.Zone {
	case cards.ZoneCommunity:
		c, _ = c.SetCommunity(slot.Index, "")
	case cards.ZoneHole:
		c, _ = c.SetHole(slot.Index, "")
	case cards.ZoneSeat:
		c, _ = c.SetSeat(slot.Seat, slot.Index, "")
	}
	return c
}

func slotEmpty(h hand.State, c cards.State, seat, slot int) bool {
	ref := showdownSlot(h, seat, slot)
	if ref.Zone == cards.ZoneHole {
		return c.Hole[ref.Index] == ""
	}
	return c.SeatCards(seat)[slot] == ""
}

// nextShowdown finds the slot to fill after a reveal: the same seat's
// second slot first, then the first empty slot scanning forward through
// higher-numbered active seats. The scan does not wrap back to seat 1; at
// the end of the table the cursor closes.
func nextShowdown(h hand.State, c cards.State, cur Cursor) Cursor {
	if cur.Slot == 0 && slotEmpty(h, c, cur.Seat, 1) {
		return Showdown(cur.Seat, 1)
	}
	for seat := cur.Seat + 1; seat <= h.Seats; seat++ {
		if !h.IsActive(seat) {
			continue
		}
		for slot := 0; slot <= 1; slot++ {
			if slotEmpty(h, c, seat, slot) {
				return Showdown(seat, slot)
			}
		}
	}
	return Closed
}
