// Package hand holds the state of a single live poker hand: the current
// street, the dealer position, per-seat action history and the ordered
// action sequence. All transitions are pure: they take a value receiver and
// return a new state plus a flag reporting whether anything changed.
package hand

import "fmt"

// Street is a betting round. Streets are ordered and advancing saturates at
// Showdown; a hand never wraps back to Preflop except through Reset.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

// BettingStreets lists the streets on which ordinary betting actions occur,
// in play order. Showdown is excluded: entries recorded there are rulings
// (mucked, won), not actions.
var BettingStreets = []Street{Preflop, Flop, Turn, River}

// String returns the lower-case street name.
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return fmt.Sprintf("street(%d)", int(s))
	}
}

// StreetFromString parses a street name.
func StreetFromString(name string) (Street, bool) {
	switch name {
	case "preflop":
		return Preflop, true
	case "flop":
		return Flop, true
	case "turn":
		return Turn, true
	case "river":
		return River, true
	case "showdown":
		return Showdown, true
	default:
		return Preflop, false
	}
}

// Next returns the following street, saturating at Showdown.
func (s Street) Next() Street {
	if s >= Showdown {
		return Showdown
	}
	return s + 1
}

// BoardSlots returns the index of the last community card slot dealt by
// this street: 2 on the flop, 3 on the turn, 4 on the river and showdown.
// Preflop has no board and returns -1.
func (s Street) BoardSlots() int {
	switch s {
	case Flop:
		return 2
	case Turn:
		return 3
	case River, Showdown:
		return 4
	default:
		return -1
	}
}

// MarshalText encodes the street as its name, so maps keyed by Street
// serialize with readable keys.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a street name.
func (s *Street) UnmarshalText(text []byte) error {
	parsed, ok := StreetFromString(string(text))
	if !ok {
		return fmt.Errorf("unknown street %q", text)
	}
	*s = parsed
	return nil
}
