package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsActive(t *testing.T) {
	s := New(9)
	assert.True(t, s.IsActive(1))
	assert.True(t, s.IsActive(9))
	assert.False(t, s.IsActive(0))
	assert.False(t, s.IsActive(10))

	s, _ = s.ToggleAbsence([]int{2})
	assert.False(t, s.IsActive(2))

	s, _ = s.RecordAction([]int{3}, "fold")
	assert.False(t, s.IsActive(3))
	assert.True(t, s.IsActive(4))
}

func TestIsActiveFoldOnEarlierStreet(t *testing.T) {
	s := New(9)
	s, _ = s.RecordAction([]int{3}, "fold")
	s, _ = s.AdvanceStreet()
	s, _ = s.AdvanceStreet()
	assert.False(t, s.IsActive(3), "a preflop fold still counts on the turn")
}

func TestIsActiveShowdownRulings(t *testing.T) {
	s := New(9)
	for s.Street != Showdown {
		s, _ = s.AdvanceStreet()
	}

	s, changed := s.RecordAction([]int{4}, LabelMucked)
	require.True(t, changed)
	s, changed = s.RecordAction([]int{5}, LabelWon)
	require.True(t, changed)

	assert.False(t, s.IsActive(4))
	assert.False(t, s.IsActive(5))
	assert.True(t, s.IsActive(6))
}

func TestIsActiveRecomputedNotCached(t *testing.T) {
	s := New(9)
	s, _ = s.ToggleAbsence([]int{7})
	assert.False(t, s.IsActive(7))

	s, _ = s.ToggleAbsence([]int{7})
	assert.True(t, s.IsActive(7), "toggling back restores activity")
}
