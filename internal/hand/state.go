package hand

import (
	"sort"
	"time"
)

// DefaultSeats is the table size used when a record does not carry one.
const DefaultSeats = 9

// Entry is one primitive action in the ordered sequence. Order is strictly
// increasing across the hand and is never renumbered except on a full
// clear.
type Entry struct {
	Seat   int       `json:"seat"`
	Action Action    `json:"action"`
	Street Street    `json:"street"`
	Order  int       `json:"order"`
	Time   time.Time `json:"time"`
}

// State is the betting state of one hand. It is a value type: transitions
// copy-on-write the nested maps and slices, so an old State remains usable
// after a transition is applied.
type State struct {
	Seats       int
	Street      Street
	DealerSeat  int
	MySeat      int
	SeatActions map[Street]map[int][]string
	Absent      map[int]struct{}
	Sequence    []Entry
}

// New returns the state at the start of a fresh session: preflop, dealer on
// seat 1, no actions recorded.
func New(seats int) State {
	if seats <= 0 {
		seats = DefaultSeats
	}
	return State{
		Seats:       seats,
		Street:      Preflop,
		DealerSeat:  1,
		MySeat:      1,
		SeatActions: map[Street]map[int][]string{},
		Absent:      map[int]struct{}{},
	}
}

// ValidSeat reports whether seat is within the table.
func (s State) ValidSeat(seat int) bool {
	return seat >= 1 && seat <= s.Seats
}

// IsAbsent reports whether seat is marked away from the table.
func (s State) IsAbsent(seat int) bool {
	_, ok := s.Absent[seat]
	return ok
}

// ActionsFor returns the labels recorded for seat on street, in order.
func (s State) ActionsFor(street Street, seat int) []string {
	return s.SeatActions[street][seat]
}

// clone deep-copies the mutable containers so transitions never alias the
// receiver's maps.
func (s State) clone() State {
	out := s
	out.SeatActions = make(map[Street]map[int][]string, len(s.SeatActions))
	for street, seats := range s.SeatActions {
		m := make(map[int][]string, len(seats))
		for seat, labels := range seats {
			m[seat] = append([]string(nil), labels...)
		}
		out.SeatActions[street] = m
	}
	out.Absent = make(map[int]struct{}, len(s.Absent))
	for seat := range s.Absent {
		out.Absent[seat] = struct{}{}
	}
	out.Sequence = append([]Entry(nil), s.Sequence...)
	return out
}

// AdvanceStreet moves to the next street, saturating at showdown.
func (s State) AdvanceStreet() (State, bool) {
	next := s.Street.Next()
	if next == s.Street {
		return s, false
	}
	out := s.clone()
	out.Street = next
	return out, true
}

// RecordAction appends label to each valid seat's list for the current
// street and clears those seats' absence. Out-of-range seats are dropped
// individually; if the label is outside the legacy vocabulary or no seat
// survives filtering, the whole request is rejected.
func (s State) RecordAction(seats []int, label string) (State, bool) {
	if !KnownLabel(label) {
		return s, false
	}
	var valid []int
	for _, seat := range seats {
		if s.ValidSeat(seat) {
			valid = append(valid, seat)
		}
	}
	if len(valid) == 0 {
		return s, false
	}

	out := s.clone()
	street := out.SeatActions[out.Street]
	if street == nil {
		street = map[int][]string{}
		out.SeatActions[out.Street] = street
	}
	for _, seat := range valid {
		street[seat] = append(street[seat], label)
		delete(out.Absent, seat)
	}
	return out, true
}

// RecordPrimitive appends one Entry to the ordered sequence and clears the
// seat's absence. Unlike RecordAction it takes exactly one seat and a
// primitive action; anything else is rejected.
func (s State) RecordPrimitive(seat int, action Action, now time.Time) (State, bool) {
	if !s.ValidSeat(seat) || action < Check || action > Fold {
		return s, false
	}
	out := s.clone()
	out.Sequence = append(out.Sequence, Entry{
		Seat:   seat,
		Action: action,
		Street: out.Street,
		Order:  out.nextOrder(),
		Time:   now,
	})
	delete(out.Absent, seat)
	return out, true
}

// nextOrder is max(existing)+1, or 1 for an empty sequence. Orders are
// appended monotonically, but a hydrated sequence is not assumed sorted.
func (s State) nextOrder() int {
	max := 0
	for _, e := range s.Sequence {
		if e.Order > max {
			max = e.Order
		}
	}
	return max + 1
}

// UndoLast drops the last label recorded for seat on the current street,
// removing the seat's entry once its list is empty. It does not restore
// absence.
func (s State) UndoLast(seat int) (State, bool) {
	labels := s.SeatActions[s.Street][seat]
	if len(labels) == 0 {
		return s, false
	}
	out := s.clone()
	street := out.SeatActions[out.Street]
	if len(labels) == 1 {
		delete(street, seat)
		if len(street) == 0 {
			delete(out.SeatActions, out.Street)
		}
	} else {
		street[seat] = labels[:len(labels)-1]
	}
	return out, true
}

// UndoLastEvent pops the highest-order entry from the sequence.
func (s State) UndoLastEvent() (State, bool) {
	if len(s.Sequence) == 0 {
		return s, false
	}
	highest := 0
	for i, e := range s.Sequence {
		if e.Order >= s.Sequence[highest].Order {
			highest = i
		}
	}
	out := s.clone()
	out.Sequence = append(out.Sequence[:highest], out.Sequence[highest+1:]...)
	return out, true
}

// ToggleAbsence flips each listed seat's absence independently. Seats
// outside the table are ignored; the transition reports a change if any
// listed seat was valid.
func (s State) ToggleAbsence(seats []int) (State, bool) {
	var valid []int
	for _, seat := range seats {
		if s.ValidSeat(seat) {
			valid = append(valid, seat)
		}
	}
	if len(valid) == 0 {
		return s, false
	}
	out := s.clone()
	for _, seat := range valid {
		if _, ok := out.Absent[seat]; ok {
			delete(out.Absent, seat)
		} else {
			out.Absent[seat] = struct{}{}
		}
	}
	return out, true
}

// RotateDealer moves the button one seat clockwise, wrapping from the last
// seat back to 1.
func (s State) RotateDealer() (State, bool) {
	out := s.clone()
	if out.DealerSeat >= out.Seats {
		out.DealerSeat = 1
	} else {
		out.DealerSeat++
	}
	return out, true
}

// Reset returns to preflop with actions, sequence and absence cleared. The
// dealer stays put.
func (s State) Reset() State {
	out := s
	out.Street = Preflop
	out.SeatActions = map[Street]map[int][]string{}
	out.Absent = map[int]struct{}{}
	out.Sequence = nil
	return out
}

// NextHand starts the following hand: actions and sequence clear, the
// dealer rotates, and absence carries across the boundary. A seat that was
// away stays away until it acts or is toggled back.
func (s State) NextHand() State {
	out := s.clone()
	out.Street = Preflop
	out.SeatActions = map[Street]map[int][]string{}
	out.Sequence = nil
	if out.DealerSeat >= out.Seats {
		out.DealerSeat = 1
	} else {
		out.DealerSeat++
	}
	return out
}

// SeatsWithActions returns the seats holding at least one label on street,
// ascending.
func (s State) SeatsWithActions(street Street) []int {
	m := s.SeatActions[street]
	seats := make([]int, 0, len(m))
	for seat := range m {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}
