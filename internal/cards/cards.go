// Package cards owns the revealed-card state of a hand: the community
// board, the user's own hole cards, and every seat's showdown reveal. A
// card value may occupy at most one slot across all three zones; the
// setters here enforce that strictly and reject rather than relocate.
// Conflict resolution by swapping lives a layer up, in package cursor.
package cards

import "github.com/quietfold/railbird/internal/deck"

// Zone identifies which group of slots a card sits in.
type Zone int

const (
	ZoneCommunity Zone = iota
	ZoneHole
	ZoneSeat
)

// Slot references a single card slot. Seat is meaningful only for
// ZoneSeat.
type Slot struct {
	Zone  Zone
	Seat  int
	Index int
}

// NoSlot is the exclusion value for uniqueness checks that exclude
// nothing.
var NoSlot = Slot{Zone: -1}

// State holds every card slot of one hand. It is a value type; the BySeat
// map is copied on write so transitions never alias the receiver.
type State struct {
	Seats       int
	Community   [5]string
	Hole        [2]string
	HoleVisible bool
	BySeat      map[int][2]string
}

// New returns an empty card state for a table of the given size. Hole
// cards start visible.
func New(seats int) State {
	return State{
		Seats:       seats,
		HoleVisible: true,
		BySeat:      map[int][2]string{},
	}
}

func (s State) clone() State {
	out := s
	out.BySeat = make(map[int][2]string, len(s.BySeat))
	for seat, pair := range s.BySeat {
		out.BySeat[seat] = pair
	}
	return out
}

// SeatCards returns the showdown slots recorded for seat.
func (s State) SeatCards(seat int) [2]string {
	return s.BySeat[seat]
}

// InUse reports whether value occupies any slot other than exclude. It is
// the single uniqueness authority: community, hole and every seat's
// showdown slots are scanned. Empty values are never in use.
func (s State) InUse(value string, exclude Slot) bool {
	if value == "" {
		return false
	}
	for i, c := range s.Community {
		if c == value && !(exclude.Zone == ZoneCommunity && exclude.Index == i) {
			return true
		}
	}
	for i, c := range s.Hole {
		if c == value && !(exclude.Zone == ZoneHole && exclude.Index == i) {
			return true
		}
	}
	for seat, pair := range s.BySeat {
		for i, c := range pair {
			if c == value && !(exclude.Zone == ZoneSeat && exclude.Seat == seat && exclude.Index == i) {
				return true
			}
		}
	}
	return false
}

// Find returns the slot currently holding value, if any.
func (s State) Find(value string) (Slot, bool) {
	if value == "" {
		return NoSlot, false
	}
	for i, c := range s.Community {
		if c == value {
			return Slot{Zone: ZoneCommunity, Index: i}, true
		}
	}
	for i, c := range s.Hole {
		if c == value {
			return Slot{Zone: ZoneHole, Index: i}, true
		}
	}
	for seat, pair := range s.BySeat {
		for i, c := range pair {
			if c == value {
				return Slot{Zone: ZoneSeat, Seat: seat, Index: i}, true
			}
		}
	}
	return NoSlot, false
}

// admissible checks the shared setter guard: empty always passes (clearing
// never duplicates), anything else must be a real card not already placed
// somewhere other than the slot being written.
func (s State) admissible(value string, target Slot) bool {
	if value == "" {
		return true
	}
	if !deck.Valid(value) {
		return false
	}
	return !s.InUse(value, target)
}

// SetCommunity writes value to board slot index. The write is rejected if
// the index is out of range or the value already occupies a different
// slot.
func (s State) SetCommunity(index int, value string) (State, bool) {
	if index < 0 || index > 4 {
		return s, false
	}
	if !s.admissible(value, Slot{Zone: ZoneCommunity, Index: index}) {
		return s, false
	}
	if s.Community[index] == value {
		return s, false
	}
	out := s.clone()
	out.Community[index] = value
	return out, true
}

// SetHole writes value to the user's hole slot index.
func (s State) SetHole(index int, value string) (State, bool) {
	if index < 0 || index > 1 {
		return s, false
	}
	if !s.admissible(value, Slot{Zone: ZoneHole, Index: index}) {
		return s, false
	}
	if s.Hole[index] == value {
		return s, false
	}
	out := s.clone()
	out.Hole[index] = value
	return out, true
}

// SetSeat writes value to a seat's showdown slot.
func (s State) SetSeat(seat, index int, value string) (State, bool) {
	if seat < 1 || seat > s.Seats || index < 0 || index > 1 {
		return s, false
	}
	if !s.admissible(value, Slot{Zone: ZoneSeat, Seat: seat, Index: index}) {
		return s, false
	}
	pair := s.BySeat[seat]
	if pair[index] == value {
		return s, false
	}
	out := s.clone()
	pair[index] = value
	out.BySeat[seat] = pair
	return out, true
}

// ClearCommunity empties the board.
func (s State) ClearCommunity() (State, bool) {
	if s.Community == ([5]string{}) {
		return s, false
	}
	out := s.clone()
	out.Community = [5]string{}
	return out, true
}

// ClearHole empties the user's hole cards.
func (s State) ClearHole() (State, bool) {
	if s.Hole == ([2]string{}) {
		return s, false
	}
	out := s.clone()
	out.Hole = [2]string{}
	return out, true
}

// ToggleHoleVisible flips whether the hole cards render face up.
func (s State) ToggleHoleVisible() State {
	out := s.clone()
	out.HoleVisible = !out.HoleVisible
	return out
}

// ResetAll empties every slot in every zone, including all seats' showdown
// reveals. Visibility is untouched.
func (s State) ResetAll() State {
	out := s
	out.Community = [5]string{}
	out.Hole = [2]string{}
	out.BySeat = map[int][2]string{}
	return out
}
