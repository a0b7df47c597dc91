// Package phh exports archived hand records to the PHH (poker hand
// history) TOML format, so hands tracked live can be fed to external
// analysis tools. The tracker records no bet sizes, so sized actions are
// emitted as comment lines rather than guessed amounts.
package phh

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/quietfold/railbird/internal/deck"
	"github.com/quietfold/railbird/internal/hand"
	"github.com/quietfold/railbird/internal/record"
)

// HandHistory is one hand in PHH TOML form.
type HandHistory struct {
	Variant   string   `toml:"variant"`
	SeatCount int      `toml:"seat_count,omitempty"`
	Players   []string `toml:"players,omitempty"`
	Actions   []string `toml:"actions"`
	HandID    string   `toml:"hand,omitempty"`
	Day       int      `toml:"day,omitempty"`
	Month     int      `toml:"month,omitempty"`
	Year      int      `toml:"year,omitempty"`
}

// FormatAction renders one ordered entry as a PHH action line. Folds and
// the flat actions map directly; bets and raises carry no amount in the
// tracker, so they become comment lines a downstream tool can ignore.
func FormatAction(e hand.Entry) string {
	player := fmt.Sprintf("p%d", e.Seat)
	switch e.Action {
	case hand.Fold:
		return player + " f"
	case hand.Check, hand.Call:
		return player + " cc"
	case hand.Bet, hand.Raise:
		return fmt.Sprintf("# %s %s", player, e.Action)
	default:
		return fmt.Sprintf("# %s %s", player, e.Action)
	}
}

// FromRecord converts an archived record into PHH form: hole-card deal
// first, then per-street board deals interleaved with that street's
// actions, then showdown reveals.
func FromRecord(rec record.HandRecord) *HandHistory {
	h := &HandHistory{
		Variant:   "NT",
		SeatCount: rec.Seats,
		HandID:    rec.ID,
	}
	if h.SeatCount == 0 {
		h.SeatCount = hand.DefaultSeats
	}
	if !rec.SavedAt.IsZero() {
		h.Year, h.Month, h.Day = rec.SavedAt.Year(), int(rec.SavedAt.Month()), rec.SavedAt.Day()
	}

	if len(rec.SeatPlayers) > 0 {
		seats := make([]int, 0, len(rec.SeatPlayers))
		for seat := range rec.SeatPlayers {
			seats = append(seats, seat)
		}
		sort.Ints(seats)
		for _, seat := range seats {
			h.Players = append(h.Players, fmt.Sprintf("p%d %s", seat, rec.SeatPlayers[seat]))
		}
	}

	if cards := joinCards(rec.HoleCards); cards != "" {
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", rec.MySeat, cards))
	}

	byStreet := map[hand.Street][]hand.Entry{}
	for _, e := range rec.ActionSequence {
		byStreet[e.Street] = append(byStreet[e.Street], e)
	}
	for _, entries := range byStreet {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Order < entries[j].Order })
	}

	for _, street := range hand.BettingStreets {
		if deal := boardDeal(rec.CommunityCards, street); deal != "" {
			h.Actions = append(h.Actions, "d db "+deal)
		}
		for _, e := range byStreet[street] {
			h.Actions = append(h.Actions, FormatAction(e))
		}
	}

	// Showdown reveals, the user's own seat included.
	revealSeats := make([]int, 0, len(rec.AllPlayerCards))
	for seat := range rec.AllPlayerCards {
		revealSeats = append(revealSeats, seat)
	}
	sort.Ints(revealSeats)
	for _, seat := range revealSeats {
		if cards := joinCards(rec.AllPlayerCards[seat]); cards != "" {
			h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", seat, cards))
		}
	}
	return h
}

// boardDeal returns the cards revealed by street, concatenated, or ""
// when any of them is still unknown.
func boardDeal(board []string, street hand.Street) string {
	var lo, hi int
	switch street {
	case hand.Flop:
		lo, hi = 0, 2
	case hand.Turn:
		lo, hi = 3, 3
	case hand.River:
		lo, hi = 4, 4
	default:
		return ""
	}
	if hi >= len(board) {
		return ""
	}
	var b strings.Builder
	for i := lo; i <= hi; i++ {
		c := deck.Normalize(board[i])
		if !deck.Valid(c) {
			return ""
		}
		b.WriteString(c)
	}
	return b.String()
}

// joinCards concatenates the known cards, skipping empty slots. Any
// malformed value voids the whole group.
func joinCards(cards []string) string {
	var b strings.Builder
	for _, c := range cards {
		if c == "" {
			continue
		}
		c = deck.Normalize(c)
		if !deck.Valid(c) {
			return ""
		}
		b.WriteString(c)
	}
	return b.String()
}

// Encode writes the hand in PHH TOML.
func Encode(w io.Writer, h *HandHistory) error {
	if h == nil {
		return fmt.Errorf("phh: nil hand history")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(h)
}
