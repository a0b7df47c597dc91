package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietfold/railbird/internal/cards"
	"github.com/quietfold/railbird/internal/hand"
)

func TestMigrateIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	legacy := HandRecord{
		Seats: 9,
		SeatActions: map[hand.Street]map[int][]string{
			hand.Preflop: {3: {"raise"}, 5: {"call"}},
			hand.Flop:    {3: {"bet"}, 5: {"fold"}},
		},
	}

	once := Migrate(legacy, now)
	require.Len(t, once.ActionSequence, 4)

	twice := Migrate(once, now.Add(time.Hour))
	assert.Equal(t, once, twice, "migrate(migrate(r)) == migrate(r)")
}

func TestMigratePreservesExistingSequence(t *testing.T) {
	seq := []hand.Entry{{Seat: 2, Action: hand.Bet, Street: hand.Flop, Order: 1}}
	r := HandRecord{
		ActionSequence: seq,
		SeatActions: map[hand.Street]map[int][]string{
			hand.Preflop: {3: {"raise"}},
		},
	}

	out := Migrate(r, time.Now())
	assert.Equal(t, seq, out.ActionSequence, "populated sequence wins over the legacy map")
}

func TestMigrateEmptyRecord(t *testing.T) {
	out := Migrate(HandRecord{}, time.Now())
	assert.Empty(t, out.ActionSequence)
}

func TestHandStateDefaults(t *testing.T) {
	s := HandRecord{}.HandState()
	assert.Equal(t, hand.DefaultSeats, s.Seats)
	assert.Equal(t, hand.Preflop, s.Street)
	assert.Equal(t, 1, s.DealerSeat)
	assert.Equal(t, 1, s.MySeat)
	assert.Empty(t, s.SeatActions)
	assert.Empty(t, s.Sequence)
}

func TestHandStateIgnoresOutOfRangeFields(t *testing.T) {
	r := HandRecord{Seats: 6, DealerSeat: 11, MySeat: 0, AbsentSeats: []int{2, 99}}
	s := r.HandState()
	assert.Equal(t, 1, s.DealerSeat)
	assert.Equal(t, 1, s.MySeat)
	assert.True(t, s.IsAbsent(2))
	assert.False(t, s.IsAbsent(99))
}

func TestCardStateDefaults(t *testing.T) {
	c := HandRecord{}.CardState()
	assert.True(t, c.HoleVisible, "holeCardsVisible defaults true when absent")
	assert.Equal(t, [5]string{}, c.Community)

	visible := false
	c = HandRecord{HoleCardsVisible: &visible}.CardState()
	assert.False(t, c.HoleVisible)
}

func TestCardStateShortArrays(t *testing.T) {
	r := HandRecord{
		CommunityCards: []string{"As", "Kd"},
		HoleCards:      []string{"Qh"},
		AllPlayerCards: map[int][]string{4: {"Jc"}},
	}
	c := r.CardState()
	assert.Equal(t, [5]string{"As", "Kd", "", "", ""}, c.Community)
	assert.Equal(t, [2]string{"Qh", ""}, c.Hole)
	assert.Equal(t, [2]string{"Jc", ""}, c.SeatCards(4))
}

func TestSnapshotRoundTrip(t *testing.T) {
	h := hand.New(9)
	h.MySeat = 5
	h, _ = h.RecordAction([]int{3, 7}, "call")
	h, _ = h.RecordPrimitive(3, hand.Call, time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC))
	h, _ = h.ToggleAbsence([]int{8})
	h, _ = h.AdvanceStreet()

	c := cards.New(9)
	c, _ = c.SetCommunity(0, "As")
	c, _ = c.SetHole(0, "Kd")
	c, _ = c.SetSeat(7, 1, "Qh")
	c = c.ToggleHoleVisible()

	rec := FromState(h, c, map[int]string{3: "Vlad"})

	h2 := rec.HandState()
	assert.Equal(t, h.Street, h2.Street)
	assert.Equal(t, h.DealerSeat, h2.DealerSeat)
	assert.Equal(t, h.MySeat, h2.MySeat)
	assert.Equal(t, h.SeatActions, h2.SeatActions)
	assert.Equal(t, h.Absent, h2.Absent)
	assert.Equal(t, h.Sequence, h2.Sequence)

	c2 := rec.CardState()
	assert.Equal(t, c.Community, c2.Community)
	assert.Equal(t, c.Hole, c2.Hole)
	assert.Equal(t, c.HoleVisible, c2.HoleVisible)
	assert.Equal(t, c.BySeat, c2.BySeat)
}

func TestJSONRoundTripUsesStreetNames(t *testing.T) {
	rec := HandRecord{
		Seats:         9,
		CurrentStreet: hand.Turn,
		DealerSeat:    4,
		MySeat:        5,
		SeatActions: map[hand.Street]map[int][]string{
			hand.Flop: {3: {"bet"}},
		},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"currentStreet":"turn"`)
	assert.Contains(t, string(data), `"flop"`)

	var back HandRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec.CurrentStreet, back.CurrentStreet)
	assert.Equal(t, rec.SeatActions, back.SeatActions)
}
