package hand

import (
	"sort"
	"time"
)

// LegacyToSequence reconstructs an ordered sequence from the aggregated
// per-street action map. Streets are walked in play order (showdown
// excluded, its entries being rulings rather than actions) and seats
// ascending within each street; labels without a primitive mapping are
// dropped. The legacy map does not preserve inter-seat ordering within a
// street, so this is a best-effort reconstruction: the relative order of
// two seats' actions on the same street is by seat number, not by when
// they actually acted.
func LegacyToSequence(seatActions map[Street]map[int][]string, now time.Time) []Entry {
	var out []Entry
	order := 1
	for _, street := range BettingStreets {
		seats := seatActions[street]
		if len(seats) == 0 {
			continue
		}
		nums := make([]int, 0, len(seats))
		for seat := range seats {
			nums = append(nums, seat)
		}
		sort.Ints(nums)
		for _, seat := range nums {
			for _, label := range seats[seat] {
				action, ok := Normalize(label)
				if !ok {
					continue
				}
				out = append(out, Entry{
					Seat:   seat,
					Action: action,
					Street: street,
					Order:  order,
					Time:   now,
				})
				order++
			}
		}
	}
	return out
}

// SequenceToLegacy groups an ordered sequence back into the aggregated
// per-street map, discarding order and timestamps. Entries are visited in
// order so each seat's label list stays chronological.
func SequenceToLegacy(sequence []Entry) map[Street]map[int][]string {
	sorted := append([]Entry(nil), sequence...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	out := map[Street]map[int][]string{}
	for _, e := range sorted {
		seats := out[e.Street]
		if seats == nil {
			seats = map[int][]string{}
			out[e.Street] = seats
		}
		seats[e.Seat] = append(seats[e.Seat], e.Action.String())
	}
	return out
}
