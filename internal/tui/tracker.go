// Package tui is the terminal front end of the tracker. It is a thin
// keyboard layer over a Session: every keystroke maps to one session
// operation, and the view re-reads session state on each render.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/quietfold/railbird/internal/cards"
	"github.com/quietfold/railbird/internal/cursor"
	"github.com/quietfold/railbird/internal/deck"
	"github.com/quietfold/railbird/internal/hand"
	"github.com/quietfold/railbird/internal/record"
	"github.com/quietfold/railbird/internal/session"
)

type inputTarget int

const (
	inputNone inputTarget = iota
	inputCard
	inputName
)

// Model is the Bubble Tea model for the tracker.
type Model struct {
	session *session.Session
	logger  *log.Logger

	input    textinput.Model
	entering inputTarget

	selected int
	status   string

	// onComplete receives the finished record when the user moves to the
	// next hand, so the caller can archive it.
	onComplete func(record.HandRecord)

	width    int
	height   int
	quitting bool
}

// New creates a tracker model over the given session. onComplete may be
// nil when completed hands need no archiving.
func New(s *session.Session, logger *log.Logger, onComplete func(record.HandRecord)) *Model {
	ti := textinput.New()
	ti.CharLimit = 24
	ti.Width = 24
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	return &Model{
		session:    s,
		logger:     logger.WithPrefix("tui"),
		input:      ti,
		selected:   s.Hand().MySeat,
		onComplete: onComplete,
	}
}

// Init initializes the tracker model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.entering != inputNone {
			return m.updateEntry(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.session.Hand()

	switch key := msg.String(); key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		seat := int(key[0] - '0')
		if seat >= 1 && seat <= h.Seats {
			m.selected = seat
			m.status = ""
		}

	case "left":
		m.selected = wrapSeat(m.selected-1, h.Seats)
	case "right", "tab":
		m.selected = wrapSeat(m.selected+1, h.Seats)

	case "c":
		m.record("check")
	case "b":
		m.record("bet")
	case "a":
		m.record("call")
	case "r":
		m.record("raise")
	case "f":
		m.record("fold")
	case "l":
		m.record("limp")
	case "m":
		m.record(hand.LabelMucked)
	case "w":
		m.record(hand.LabelWon)

	case "u":
		if !m.session.UndoLast(m.selected) {
			m.status = fmt.Sprintf("nothing to undo for seat %d", m.selected)
		}
	case "U":
		if !m.session.UndoLastEvent() {
			m.status = "event sequence is empty"
		}

	case "s":
		if m.session.AdvanceStreet() {
			m.status = ""
		} else {
			m.status = "already at showdown"
		}
	case "d":
		m.session.RotateDealer()
	case " ":
		m.session.ToggleAbsence(m.selected)
	case "y":
		m.session.SetMySeat(m.selected)

	case "o":
		m.openCursor(cursor.Community(m.firstEmptyBoard()))
	case "h":
		m.openCursor(cursor.Hole(0))
	case "x":
		if !m.session.IsActive(m.selected) {
			m.status = fmt.Sprintf("seat %d is out of the hand", m.selected)
			break
		}
		m.openCursor(cursor.Showdown(m.selected, 0))

	case "v":
		m.session.ToggleHoleVisible()
	case "C":
		m.session.ClearCommunity()
	case "H":
		m.session.ClearHole()

	case "p":
		m.entering = inputName
		m.input.Placeholder = fmt.Sprintf("name for seat %d", m.selected)
		m.input.SetValue(m.session.PlayerName(m.selected))
		m.input.Focus()
		return m, textinput.Blink

	case "n":
		finished := m.session.NextHand()
		if m.onComplete != nil {
			m.onComplete(finished)
		}
		m.status = "hand archived, button moved"
	case "R":
		m.session.ResetHand()
		m.status = "hand reset"
	}

	return m, nil
}

func (m *Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEntry()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.entering {
		case inputName:
			m.session.SetPlayer(m.selected, value)
			m.closeEntry()
		case inputCard:
			m.submitCard(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitCard(value string) {
	if value == "" {
		m.closeEntry()
		return
	}
	code := deck.Normalize(value)
	if !deck.Valid(code) {
		m.status = fmt.Sprintf("%q is not a card", value)
		m.input.SetValue("")
		return
	}
	if !m.session.PickCard(code) {
		m.status = fmt.Sprintf("%s already in play", deck.Pretty(code))
		m.input.SetValue("")
		return
	}
	m.status = ""
	m.input.SetValue("")
	if !m.session.Cursor().Open {
		m.closeEntry()
	}
}

func (m *Model) openCursor(cur cursor.Cursor) {
	switch cur.Mode {
	case cursor.ModeCommunity:
		m.session.OpenCommunity(cur.Index)
	case cursor.ModeHole:
		m.session.OpenHole(cur.Index)
	case cursor.ModeShowdown:
		m.session.OpenShowdown(cur.Seat, cur.Slot)
	}
	m.entering = inputCard
	m.input.Placeholder = "card, e.g. As or 10h"
	m.input.SetValue("")
	m.input.Focus()
	m.status = ""
}

func (m *Model) closeEntry() {
	m.session.CloseCursor()
	m.entering = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) record(label string) {
	if !m.session.RecordAction([]int{m.selected}, label) {
		m.status = fmt.Sprintf("cannot record %s for seat %d", label, m.selected)
		return
	}
	m.status = fmt.Sprintf("seat %d: %s", m.selected, label)
}

func (m *Model) firstEmptyBoard() int {
	c := m.session.Cards()
	for i, v := range c.Community {
		if v == "" {
			return i
		}
	}
	return 0
}

func wrapSeat(seat, seats int) int {
	if seat < 1 {
		return seats
	}
	if seat > seats {
		return 1
	}
	return seat
}

// View renders the tracker.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	h := m.session.Hand()
	c := m.session.Cards()
	cur := m.session.Cursor()

	var b strings.Builder
	b.WriteString(TitleStyle.Render("railbird"))
	b.WriteString("  ")
	b.WriteString(StreetStyle.Render(h.Street.String()))
	b.WriteString("\n\n")

	b.WriteString(PaneStyle.Render(m.renderBoard(c, cur)))
	b.WriteString("\n")
	b.WriteString(PaneStyle.Render(m.renderSeats(h, c, cur)))
	b.WriteString("\n")

	if m.entering != inputNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StatusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) renderBoard(c cards.State, cur cursor.Cursor) string {
	var b strings.Builder

	b.WriteString("board ")
	for i, v := range c.Community {
		at := cur.Open && cur.Mode == cursor.ModeCommunity && cur.Index == i
		b.WriteString(renderCard(v, at))
		b.WriteString(" ")
	}

	b.WriteString("  hole ")
	if !c.HoleVisible {
		b.WriteString(EmptyCardStyle.Render("hidden"))
	} else {
		for i, v := range c.Hole {
			at := cur.Open && cur.Mode == cursor.ModeHole && cur.Index == i
			b.WriteString(renderCard(v, at))
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (m *Model) renderSeats(h hand.State, c cards.State, cur cursor.Cursor) string {
	var b strings.Builder
	for seat := 1; seat <= h.Seats; seat++ {
		if seat > 1 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderSeat(h, c, cur, seat))
	}
	return b.String()
}

func (m *Model) renderSeat(h hand.State, c cards.State, cur cursor.Cursor, seat int) string {
	var b strings.Builder

	if seat == m.selected {
		b.WriteString(SelectedSeatStyle.Render("→ "))
	} else {
		b.WriteString("  ")
	}

	label := fmt.Sprintf("%d", seat)
	switch {
	case h.IsAbsent(seat):
		label = AbsentStyle.Render(label)
	case !h.IsActive(seat):
		label = FoldedStyle.Render(label)
	case seat == m.selected:
		label = SelectedSeatStyle.Render(label)
	}
	b.WriteString(label)

	if seat == h.DealerSeat {
		b.WriteString(DealerStyle.Render(" Ⓓ"))
	} else {
		b.WriteString("  ")
	}
	if seat == h.MySeat {
		b.WriteString(" *")
	} else {
		b.WriteString("  ")
	}

	if name := m.session.PlayerName(seat); name != "" {
		b.WriteString(" " + name)
	}

	shown := c.SeatCards(seat)
	if seat == h.MySeat {
		shown = c.Hole
	}
	if shown[0] != "" || shown[1] != "" || (cur.Open && cur.Mode == cursor.ModeShowdown && cur.Seat == seat) {
		b.WriteString("  ")
		for i, v := range shown {
			at := cur.Open && cur.Mode == cursor.ModeShowdown && cur.Seat == seat && cur.Slot == i
			b.WriteString(renderCard(v, at))
			b.WriteString(" ")
		}
	}

	if acts := h.ActionsFor(h.Street, seat); len(acts) > 0 {
		b.WriteString("  ")
		b.WriteString(ActionLogStyle.Render(strings.Join(acts, ",")))
	}
	return strings.TrimRight(b.String(), " ")
}

func renderCard(value string, atCursor bool) string {
	text := deck.Pretty(value)
	switch {
	case atCursor:
		return CursorCardStyle.Render(text)
	case value == "":
		return EmptyCardStyle.Render(text)
	case deck.IsRed(value):
		return RedCardStyle.Render(text)
	default:
		return BlackCardStyle.Render(text)
	}
}

func (m *Model) helpLine() string {
	if m.entering == inputCard {
		return "type a card and press enter, esc to stop"
	}
	if m.entering == inputName {
		return "enter to save name, esc to cancel"
	}
	return "1-9 seat  c/b/a/r/f act  l limp  m muck  w won  u/U undo  s street  d button  space sit out  o board  h hole  x showdown  p name  n next  R reset  q quit"
}
