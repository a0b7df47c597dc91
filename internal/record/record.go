// Package record defines the durable form of a tracked hand and the
// hydration path back into live engine state. Records are written by the
// store as JSON; older records may carry only the aggregated per-street
// action map, in which case Migrate derives the ordered sequence once at
// load.
package record

import (
	"sort"
	"time"

	"github.com/quietfold/railbird/internal/cards"
	"github.com/quietfold/railbird/internal/hand"
)

// HandRecord is the persisted snapshot of one hand. Optional fields may be
// absent in older records; HandState and CardState apply the defaults.
type HandRecord struct {
	ID      string    `json:"id,omitempty"`
	SavedAt time.Time `json:"savedAt,omitzero"`

	Seats          int                              `json:"seats,omitempty"`
	CurrentStreet  hand.Street                      `json:"currentStreet"`
	DealerSeat     int                              `json:"dealerSeat"`
	MySeat         int                              `json:"mySeat"`
	SeatActions    map[hand.Street]map[int][]string `json:"seatActions,omitempty"`
	AbsentSeats    []int                            `json:"absentSeats,omitempty"`
	ActionSequence []hand.Entry                     `json:"actionSequence,omitempty"`

	CommunityCards   []string         `json:"communityCards,omitempty"`
	HoleCards        []string         `json:"holeCards,omitempty"`
	HoleCardsVisible *bool            `json:"holeCardsVisible,omitempty"`
	AllPlayerCards   map[int][]string `json:"allPlayerCards,omitempty"`

	SeatPlayers map[int]string `json:"seatPlayers,omitempty"`
}

// FromState snapshots the live state pair into a record.
func FromState(h hand.State, c cards.State, players map[int]string) HandRecord {
	rec := HandRecord{
		Seats:         h.Seats,
		CurrentStreet: h.Street,
		DealerSeat:    h.DealerSeat,
		MySeat:        h.MySeat,
	}

	if len(h.SeatActions) > 0 {
		rec.SeatActions = make(map[hand.Street]map[int][]string, len(h.SeatActions))
		for street, seats := range h.SeatActions {
			m := make(map[int][]string, len(seats))
			for seat, labels := range seats {
				m[seat] = append([]string(nil), labels...)
			}
			rec.SeatActions[street] = m
		}
	}
	for seat := range h.Absent {
		rec.AbsentSeats = append(rec.AbsentSeats, seat)
	}
	sort.Ints(rec.AbsentSeats)
	rec.ActionSequence = append([]hand.Entry(nil), h.Sequence...)

	rec.CommunityCards = c.Community[:]
	rec.HoleCards = c.Hole[:]
	visible := c.HoleVisible
	rec.HoleCardsVisible = &visible
	if len(c.BySeat) > 0 {
		rec.AllPlayerCards = make(map[int][]string, len(c.BySeat))
		for seat, pair := range c.BySeat {
			rec.AllPlayerCards[seat] = []string{pair[0], pair[1]}
		}
	}
	if len(players) > 0 {
		rec.SeatPlayers = make(map[int]string, len(players))
		for seat, name := range players {
			rec.SeatPlayers[seat] = name
		}
	}
	return rec
}

// HandState hydrates the betting state, shallow-merging the record over
// defaults: 9 seats, dealer and own seat 1, empty maps for anything
// missing.
func (r HandRecord) HandState() hand.State {
	seats := r.Seats
	if seats <= 0 {
		seats = hand.DefaultSeats
	}
	s := hand.New(seats)
	if r.CurrentStreet >= hand.Preflop && r.CurrentStreet <= hand.Showdown {
		s.Street = r.CurrentStreet
	}
	if r.DealerSeat >= 1 && r.DealerSeat <= seats {
		s.DealerSeat = r.DealerSeat
	}
	if r.MySeat >= 1 && r.MySeat <= seats {
		s.MySeat = r.MySeat
	}
	for street, seatsMap := range r.SeatActions {
		m := make(map[int][]string, len(seatsMap))
		for seat, labels := range seatsMap {
			m[seat] = append([]string(nil), labels...)
		}
		s.SeatActions[street] = m
	}
	for _, seat := range r.AbsentSeats {
		if seat >= 1 && seat <= seats {
			s.Absent[seat] = struct{}{}
		}
	}
	s.Sequence = append([]hand.Entry(nil), r.ActionSequence...)
	return s
}

// CardState hydrates the card state. Missing holeCardsVisible defaults to
// true; short or missing card arrays hydrate as empty slots.
func (r HandRecord) CardState() cards.State {
	seats := r.Seats
	if seats <= 0 {
		seats = hand.DefaultSeats
	}
	c := cards.New(seats)
	for i := 0; i < len(r.CommunityCards) && i < 5; i++ {
		c.Community[i] = r.CommunityCards[i]
	}
	for i := 0; i < len(r.HoleCards) && i < 2; i++ {
		c.Hole[i] = r.HoleCards[i]
	}
	if r.HoleCardsVisible != nil {
		c.HoleVisible = *r.HoleCardsVisible
	}
	for seat, pair := range r.AllPlayerCards {
		var fixed [2]string
		for i := 0; i < len(pair) && i < 2; i++ {
			fixed[i] = pair[i]
		}
		c.BySeat[seat] = fixed
	}
	return c
}

// Migrate ensures the record carries an ordered action sequence. It is
// idempotent: a record whose sequence is already populated is returned
// unchanged, otherwise the sequence is reconstructed best-effort from the
// legacy map, or left empty when neither representation is present.
func Migrate(r HandRecord, now time.Time) HandRecord {
	if len(r.ActionSequence) > 0 {
		return r
	}
	r.ActionSequence = hand.LegacyToSequence(r.SeatActions, now)
	return r
}
