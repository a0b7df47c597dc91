package hand

import "fmt"

// Action is one of the five primitive betting actions.
type Action int

const (
	Check Action = iota
	Bet
	Call
	Raise
	Fold
)

// Showdown ruling labels. They are part of the legacy vocabulary and are
// recorded on the showdown street, but they are not betting actions and
// have no primitive mapping.
const (
	LabelMucked = "mucked"
	LabelWon    = "won"
)

// String returns the lower-case action name.
func (a Action) String() string {
	switch a {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case Fold:
		return "fold"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ActionFromString parses a primitive action name. It does not accept the
// broader legacy vocabulary; use Normalize for that.
func ActionFromString(name string) (Action, bool) {
	switch name {
	case "check":
		return Check, true
	case "bet":
		return Bet, true
	case "call":
		return Call, true
	case "raise":
		return Raise, true
	case "fold":
		return Fold, true
	default:
		return Check, false
	}
}

// legacyLabels is the full vocabulary accepted by the per-street action
// recorder. Values map each label to its primitive; labels with no
// primitive equivalent map to -1.
var legacyLabels = map[string]Action{
	"check":     Check,
	"bet":       Bet,
	"call":      Call,
	"limp":      Call,
	"raise":     Raise,
	"open":      Raise,
	"3bet":      Raise,
	"4bet":      Raise,
	"all-in":    Raise,
	"allin":     Raise,
	"fold":      Fold,
	"straddle":  -1,
	LabelMucked: -1,
	LabelWon:    -1,
}

// KnownLabel reports whether label belongs to the legacy action vocabulary.
func KnownLabel(label string) bool {
	_, ok := legacyLabels[label]
	return ok
}

// Normalize maps a legacy label to its primitive action. Labels that carry
// sizing flavor collapse to their nearest primitive (limp → call, 3bet →
// raise). Showdown rulings and straddles have no primitive and return
// ok=false, as do labels outside the vocabulary.
func Normalize(label string) (Action, bool) {
	a, ok := legacyLabels[label]
	if !ok || a < 0 {
		return Check, false
	}
	return a, true
}

// MarshalText encodes the action as its name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a primitive action name.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, ok := ActionFromString(string(text))
	if !ok {
		return fmt.Errorf("unknown action %q", text)
	}
	*a = parsed
	return nil
}
