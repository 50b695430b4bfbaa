// Package loadout parses a player's deck from YAML and checks it against
// the legality rules a match Setup enforces: lead presence, deck sizes,
// per-card copy limits, and cheer-deck resolvability.
package loadout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oshifan/hocgsim/internal/catalog"
)

// MainDeckSize and CheerDeckSize are the fixed legal deck sizes.
const (
	MainDeckSize  = 50
	CheerDeckSize = 20
	CopyLimit     = 4
)

// File is the top-level YAML shape for a single player's loadout.
//
//	lead: hSD01-001
//	main_deck:
//	  - number: hSD01-006
//	    count: 4
//	cheer_deck:
//	  - number: hY01-001
//	    count: 10
type File struct {
	Lead      string      `yaml:"lead"`
	MainDeck  []CardEntry `yaml:"main_deck"`
	CheerDeck []CardEntry `yaml:"cheer_deck"`
}

// CardEntry names a card number and how many copies to include.
type CardEntry struct {
	Number string `yaml:"number"`
	Count  int    `yaml:"count"`
}

// Loadout is a fully expanded, not-yet-legality-checked deck: one lead
// number plus the expanded (repeated per Count) main- and cheer-deck
// card-number lists.
type Loadout struct {
	Lead      string
	MainDeck  []string
	CheerDeck []string
}

// Parse reads and expands a loadout from a YAML file.
func Parse(path string) (*Loadout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadout: read %s: %w", path, err)
	}
	return ParseBytes(data)
}

// ParseBytes expands a loadout from in-memory YAML, e.g. a test fixture.
func ParseBytes(data []byte) (*Loadout, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("loadout: parse yaml: %w", err)
	}
	return expand(&f), nil
}

func expand(f *File) *Loadout {
	lo := &Loadout{Lead: f.Lead}
	for _, e := range f.MainDeck {
		for i := 0; i < e.Count; i++ {
			lo.MainDeck = append(lo.MainDeck, e.Number)
		}
	}
	for _, e := range f.CheerDeck {
		for i := 0; i < e.Count; i++ {
			lo.CheerDeck = append(lo.CheerDeck, e.Number)
		}
	}
	return lo
}

// Kind distinguishes the ways a loadout can fail legality checks, mirroring
// game.SetupErrorKind so callers can translate one into the other without a
// lookup table.
type Kind int

const (
	ErrMissingLead Kind = iota
	ErrEmptyMainDeck
	ErrEmptyCheerDeck
	ErrUnknownCardNumber
	ErrDeckSizeIllegal
	ErrCopyLimitExceeded
)

// Error reports a single legality violation.
type Error struct {
	Kind   Kind
	Number string
	Got    int
	Want   int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMissingLead:
		return "loadout: no lead specified"
	case ErrEmptyMainDeck:
		return "loadout: main deck is empty"
	case ErrEmptyCheerDeck:
		return "loadout: cheer deck is empty"
	case ErrUnknownCardNumber:
		return fmt.Sprintf("loadout: unknown card number %q", e.Number)
	case ErrDeckSizeIllegal:
		return fmt.Sprintf("loadout: deck has %d cards, want %d", e.Got, e.Want)
	case ErrCopyLimitExceeded:
		return fmt.Sprintf("loadout: %d copies of %q, limit is %d", e.Got, e.Number, CopyLimit)
	default:
		return "loadout: illegal"
	}
}

// Validate checks a Loadout against cat for the closed set of legality
// rules match setup enforces: a named lead, exact deck sizes, every
// number resolvable, and no more than CopyLimit copies of any single
// non-cheer card number (cheer cards are exempt — a deck can run its full
// 20-card cheer deck from a handful of colors).
func Validate(lo *Loadout, cat *catalog.Catalog) error {
	if lo.Lead == "" {
		return &Error{Kind: ErrMissingLead}
	}
	if _, err := cat.Lookup(lo.Lead); err != nil {
		return &Error{Kind: ErrUnknownCardNumber, Number: lo.Lead}
	}
	if len(lo.MainDeck) == 0 {
		return &Error{Kind: ErrEmptyMainDeck}
	}
	if len(lo.CheerDeck) == 0 {
		return &Error{Kind: ErrEmptyCheerDeck}
	}
	if len(lo.MainDeck) != MainDeckSize {
		return &Error{Kind: ErrDeckSizeIllegal, Got: len(lo.MainDeck), Want: MainDeckSize}
	}
	if len(lo.CheerDeck) != CheerDeckSize {
		return &Error{Kind: ErrDeckSizeIllegal, Got: len(lo.CheerDeck), Want: CheerDeckSize}
	}

	counts := make(map[string]int, len(lo.MainDeck))
	for _, num := range lo.MainDeck {
		rec, err := cat.Lookup(num)
		if err != nil {
			return &Error{Kind: ErrUnknownCardNumber, Number: num}
		}
		if rec.Kind == catalog.KindMember && rec.Member.Buzz {
			continue // Buzz cards are exempt from the standard copy limit
		}
		counts[num]++
		if counts[num] > CopyLimit {
			return &Error{Kind: ErrCopyLimitExceeded, Number: num, Got: counts[num]}
		}
	}
	for _, num := range lo.CheerDeck {
		if _, err := cat.Lookup(num); err != nil {
			return &Error{Kind: ErrUnknownCardNumber, Number: num}
		}
	}
	return nil
}
