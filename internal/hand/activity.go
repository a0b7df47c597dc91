package hand

// IsActive reports whether seat is still eligible for showdown card
// capture: it has not folded on any street this hand, is not marked
// absent, and has no mucked/won ruling recorded on the showdown street.
// The answer is recomputed from the action maps on every call.
func (s State) IsActive(seat int) bool {
	if !s.ValidSeat(seat) || s.IsAbsent(seat) {
		return false
	}
	for street, seats := range s.SeatActions {
		for _, label := range seats[seat] {
			if street == Showdown && (label == LabelMucked || label == LabelWon) {
				return false
			}
			if a, ok := Normalize(label); ok && a == Fold {
				return false
			}
		}
	}
	return true
}
