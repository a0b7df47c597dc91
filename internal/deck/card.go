// Package deck defines the card code vocabulary used across the tracker.
//
// Cards are stored as two-character codes: a rank from "23456789TJQKA"
// followed by a suit from "shdc" (e.g. "As", "Th", "9c"). The empty string
// is a valid slot value meaning "no card".
package deck

import "strings"

const (
	ranks = "23456789TJQKA"
	suits = "shdc"
)

var rankAliases = map[string]string{
	"a":  "A",
	"k":  "K",
	"q":  "Q",
	"j":  "J",
	"t":  "T",
	"10": "T",
	"9":  "9",
	"8":  "8",
	"7":  "7",
	"6":  "6",
	"5":  "5",
	"4":  "4",
	"3":  "3",
	"2":  "2",
}

var suitAliases = map[string]string{
	"s": "s",
	"h": "h",
	"d": "d",
	"c": "c",
	"♠": "s",
	"♥": "h",
	"♦": "d",
	"♣": "c",
}

// Normalize converts user notation to a canonical card code. It accepts
// upper or lower case ranks, "10" for ten, and unicode suit symbols
// ("9♠" → "9s"). The empty string normalizes to itself. Input that cannot
// be parsed is returned unchanged lower-cased; use Valid to check.
func Normalize(card string) string {
	card = strings.TrimSpace(card)
	if card == "" {
		return ""
	}

	lowered := strings.ToLower(card)
	runes := []rune(lowered)
	if len(runes) < 2 {
		return lowered
	}

	suitPart := string(runes[len(runes)-1])
	rankPart := string(runes[:len(runes)-1])

	suit, ok := suitAliases[suitPart]
	if !ok {
		return lowered
	}
	rank, ok := rankAliases[rankPart]
	if !ok {
		return lowered
	}
	return rank + suit
}

// Valid reports whether card is a canonical card code. The empty string is
// not a valid card; it is a valid slot value, which is the caller's
// distinction to make.
func Valid(card string) bool {
	if len(card) != 2 {
		return false
	}
	return strings.IndexByte(ranks, card[0]) >= 0 && strings.IndexByte(suits, card[1]) >= 0
}

// IsRed reports whether the card's suit is hearts or diamonds.
func IsRed(card string) bool {
	return len(card) == 2 && (card[1] == 'h' || card[1] == 'd')
}

// SuitSymbol returns the unicode symbol for the card's suit, for display.
func SuitSymbol(card string) string {
	if len(card) != 2 {
		return "?"
	}
	switch card[1] {
	case 's':
		return "♠"
	case 'h':
		return "♥"
	case 'd':
		return "♦"
	case 'c':
		return "♣"
	default:
		return "?"
	}
}

// Pretty renders a card code with its unicode suit symbol ("Th" → "T♥").
// Empty slots render as a placeholder.
func Pretty(card string) string {
	if card == "" {
		return "__"
	}
	if !Valid(card) {
		return card
	}
	return string(card[0]) + SuitSymbol(card)
}

// All returns the 52 canonical card codes in rank-major order.
func All() []string {
	out := make([]string, 0, 52)
	for _, r := range ranks {
		for _, s := range suits {
			out = append(out, string(r)+string(s))
		}
	}
	return out
}
