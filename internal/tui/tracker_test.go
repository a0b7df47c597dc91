package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietfold/railbird/internal/hand"
	"github.com/quietfold/railbird/internal/record"
	"github.com/quietfold/railbird/internal/session"
)

func newTestModel(t *testing.T, onComplete func(record.HandRecord)) *Model {
	t.Helper()
	s := session.New(log.New(io.Discard), quartz.NewReal(), 9)
	return New(s, log.New(io.Discard), onComplete)
}

func press(m *Model, keys ...string) *Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(*Model)
	}
	return m
}

func TestRecordActionForSelectedSeat(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "3", "c")

	h := m.session.Hand()
	assert.Equal(t, []string{"check"}, h.SeatActions[hand.Preflop][3])
	require.Len(t, h.Sequence, 1)
	assert.Equal(t, hand.Check, h.Sequence[0].Action)
}

func TestSeatSelectionWraps(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "9", "tab")
	assert.Equal(t, 1, m.selected)

	m = press(m, "1", "left")
	assert.Equal(t, 9, m.selected)
}

func TestBoardCardEntry(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "s", "o", "A", "s", "enter")

	c := m.session.Cards()
	assert.Equal(t, "As", c.Community[0])
	assert.True(t, m.session.Cursor().Open, "cursor moves to the next flop slot")
	assert.Equal(t, inputCard, m.entering)

	m = press(m, "esc")
	assert.False(t, m.session.Cursor().Open)
	assert.Equal(t, inputNone, m.entering)
}

func TestBoardEntryClosesOnStreetLastSlot(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "o", "A", "s", "enter")
	assert.Equal(t, "As", m.session.Cards().Community[0])
	assert.False(t, m.session.Cursor().Open, "no later board slots before the flop")
	assert.Equal(t, inputNone, m.entering)
}

func TestHoleCardEntryAcceptsTenShorthand(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "h", "1", "0", "h", "enter")
	assert.Equal(t, "Th", m.session.Cards().Hole[0])
}

func TestInvalidCardKeepsEntryOpen(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "o", "z", "z", "enter")
	assert.Equal(t, "", m.session.Cards().Community[0])
	assert.Equal(t, inputCard, m.entering)
	assert.Contains(t, m.status, "not a card")
}

func TestDuplicateCardRejected(t *testing.T) {
	m := newTestModel(t, nil)
	require.True(t, m.session.SetCommunityCard(0, "As"))

	m = press(m, "h", "A", "s", "enter")
	assert.Equal(t, "", m.session.Cards().Hole[0])
	assert.Contains(t, m.status, "already in play")
}

func TestShowdownEntryRequiresActiveSeat(t *testing.T) {
	m := newTestModel(t, nil)
	require.True(t, m.session.RecordAction([]int{4}, "fold"))

	m = press(m, "4", "x")
	assert.Equal(t, inputNone, m.entering)
	assert.Contains(t, m.status, "out of the hand")

	m = press(m, "5", "x")
	assert.Equal(t, inputCard, m.entering)
}

func TestAbsenceToggle(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "4", "space")
	assert.True(t, m.session.Hand().IsAbsent(4))

	m = press(m, "space")
	assert.False(t, m.session.Hand().IsAbsent(4))
}

func TestPlayerNameEntry(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "3", "p", "V", "l", "a", "d", "enter")
	assert.Equal(t, "Vlad", m.session.PlayerName(3))
	assert.Equal(t, inputNone, m.entering)
}

func TestNextHandInvokesOnComplete(t *testing.T) {
	var finished []record.HandRecord
	m := newTestModel(t, func(rec record.HandRecord) {
		finished = append(finished, rec)
	})

	m = press(m, "3", "r", "n")

	require.Len(t, finished, 1)
	assert.Equal(t, []string{"raise"}, finished[0].SeatActions[hand.Preflop][3])

	h := m.session.Hand()
	assert.Equal(t, 2, h.DealerSeat, "button moves for the new hand")
	assert.Empty(t, h.SeatActions[hand.Preflop])
}

func TestUndoKeys(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(m, "3", "b", "u")
	assert.Empty(t, m.session.Hand().SeatActions[hand.Preflop][3])

	m = press(m, "U")
	assert.Empty(t, m.session.Hand().Sequence)
}

func TestViewShowsStreetAndDealer(t *testing.T) {
	m := newTestModel(t, nil)
	m.width, m.height = 80, 24

	view := m.View()
	assert.Contains(t, view, "railbird")
	assert.Contains(t, view, "preflop")
	assert.Contains(t, view, "board")
}
