package phh

import (
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietfold/railbird/internal/hand"
	"github.com/quietfold/railbird/internal/record"
)

func sampleRecord() record.HandRecord {
	return record.HandRecord{
		ID:      "abc123",
		SavedAt: time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC),
		Seats:   9,
		MySeat:  5,
		ActionSequence: []hand.Entry{
			{Seat: 3, Action: hand.Raise, Street: hand.Preflop, Order: 1},
			{Seat: 5, Action: hand.Call, Street: hand.Preflop, Order: 2},
			{Seat: 3, Action: hand.Check, Street: hand.Flop, Order: 3},
			{Seat: 5, Action: hand.Fold, Street: hand.Flop, Order: 4},
		},
		CommunityCards: []string{"As", "Kd", "Qh", "", ""},
		HoleCards:      []string{"9c", "9d"},
		AllPlayerCards: map[int][]string{3: {"Jc", "Jh"}},
		SeatPlayers:    map[int]string{3: "Vlad", 5: "Hero"},
	}
}

func TestFromRecordActionOrder(t *testing.T) {
	h := FromRecord(sampleRecord())

	assert.Equal(t, []string{
		"d dh p5 9c9d",
		"# p3 raise",
		"p5 cc",
		"d db AsKdQh",
		"p3 cc",
		"p5 f",
		"p3 sm JcJh",
	}, h.Actions)
}

func TestFromRecordMetadata(t *testing.T) {
	h := FromRecord(sampleRecord())
	assert.Equal(t, "NT", h.Variant)
	assert.Equal(t, 9, h.SeatCount)
	assert.Equal(t, "abc123", h.HandID)
	assert.Equal(t, 2025, h.Year)
	assert.Equal(t, 6, h.Month)
	assert.Equal(t, 1, h.Day)
	assert.Equal(t, []string{"p3 Vlad", "p5 Hero"}, h.Players)
}

func TestFromRecordSkipsUnknownBoard(t *testing.T) {
	rec := sampleRecord()
	rec.CommunityCards = []string{"As", "Kd", "", "", ""}

	h := FromRecord(rec)
	for _, a := range h.Actions {
		assert.NotContains(t, a, "d db", "incomplete flop is not dealt")
	}
}

func TestFormatAction(t *testing.T) {
	assert.Equal(t, "p4 f", FormatAction(hand.Entry{Seat: 4, Action: hand.Fold}))
	assert.Equal(t, "p4 cc", FormatAction(hand.Entry{Seat: 4, Action: hand.Check}))
	assert.Equal(t, "p4 cc", FormatAction(hand.Entry{Seat: 4, Action: hand.Call}))
	assert.Equal(t, "# p4 bet", FormatAction(hand.Entry{Seat: 4, Action: hand.Bet}))
	assert.Equal(t, "# p4 raise", FormatAction(hand.Entry{Seat: 4, Action: hand.Raise}))
}

func TestEncodeRoundTrip(t *testing.T) {
	h := FromRecord(sampleRecord())

	var buf strings.Builder
	require.NoError(t, Encode(&buf, h))

	var back HandHistory
	require.NoError(t, toml.Unmarshal([]byte(buf.String()), &back))
	assert.Equal(t, h.Variant, back.Variant)
	assert.Equal(t, h.Actions, back.Actions)
	assert.Equal(t, h.Players, back.Players)
}

func TestEncodeNil(t *testing.T) {
	assert.Error(t, Encode(&strings.Builder{}, nil))
}
