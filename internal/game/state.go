package game

import (
	"math/rand"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// Step is one phase of a player's turn.
type Step int

const (
	StepSetup Step = iota
	StepMulligan
	StepReset
	StepDraw
	StepCheer
	StepMain
	StepPerformance
	StepEnd
)

func (s Step) String() string {
	switch s {
	case StepSetup:
		return "Setup"
	case StepMulligan:
		return "Mulligan"
	case StepReset:
		return "Reset"
	case StepDraw:
		return "Draw"
	case StepCheer:
		return "Cheer"
	case StepMain:
		return "Main"
	case StepPerformance:
		return "Performance"
	case StepEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// OutcomeReason is the closed set of ways a match can end.
type OutcomeReason int

const (
	ReasonZeroLife OutcomeReason = iota
	ReasonDeckOut
	ReasonNoCenterAvailable
	ReasonParticipantDisconnected
	ReasonDraw
)

func (r OutcomeReason) String() string {
	switch r {
	case ReasonZeroLife:
		return "ZeroLife"
	case ReasonDeckOut:
		return "DeckOut"
	case ReasonNoCenterAvailable:
		return "NoCenterAvailable"
	case ReasonParticipantDisconnected:
		return "ParticipantDisconnected"
	case ReasonDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// Outcome is the terminal result of a match.
type Outcome struct {
	Winner *card.Player // nil for Draw or a disconnect with no declared winner
	Reason OutcomeReason
}

// State is the authoritative, single-owner game state: two players' zone
// layouts, the live card instances, the active modifier store, and the
// turn/step counters that drive the match forward.
type State struct {
	Catalog *catalog.Catalog
	Boards  [2]*Board
	Cards   map[card.Ref]*Instance
	Mods    *modifier.Store
	Counter card.Counter
	RNG     *rand.Rand

	ActivePlayer card.Player
	Step         Step
	Turn         int
	Outcome      *Outcome

	eventSeq int
}

// NewState creates an empty match state ready for Setup.
func NewState(cat *catalog.Catalog, seed int64) *State {
	return &State{
		Catalog: cat,
		Boards:  [2]*Board{NewBoard(card.PlayerOne), NewBoard(card.PlayerTwo)},
		Cards:   make(map[card.Ref]*Instance),
		Mods:    modifier.NewStore(),
		RNG:     rand.New(rand.NewSource(seed)),
	}
}

// Board returns the board for p.
func (s *State) Board(p card.Player) *Board {
	return s.Boards[p]
}

// Opponent returns the board for the other player.
func (s *State) Opponent(p card.Player) *Board {
	return s.Boards[p.Opponent()]
}

// RegisterCard allocates a fresh ref for a catalog number, owned by owner.
func (s *State) RegisterCard(owner card.Player, number string) (card.Ref, error) {
	rec, err := s.Catalog.Lookup(number)
	if err != nil {
		return 0, err
	}
	ref := s.Counter.Next()
	s.Cards[ref] = &Instance{Ref: ref, Owner: owner, Number: number, Record: rec, TurnPlaced: s.Turn}
	return ref, nil
}

// Instance looks up a card by ref. It panics on a missing ref: every ref in
// play was handed out by RegisterCard and is never deleted from Cards, only
// moved between zones, so a miss means an internal invariant was broken.
func (s *State) Instance(ref card.Ref) *Instance {
	inst, ok := s.Cards[ref]
	if !ok {
		panic("game: unknown card ref in play")
	}
	return inst
}

// FindZone locates ref's current zone across both boards.
func (s *State) FindZone(ref card.Ref) (card.Player, card.Zone, bool) {
	for _, b := range s.Boards {
		if z, ok := b.FindZone(ref); ok {
			return b.Player, z, true
		}
	}
	return 0, 0, false
}

// CardZoneResolver adapts State for modifier.Store.FindForCard.
func (s *State) CardZoneResolver() modifier.CardZone {
	return func(ref card.Ref) (card.Player, card.Zone, bool) {
		return s.FindZone(ref)
	}
}

// Owner returns the owning player of ref, used by modifier.Store.EndTurn.
func (s *State) Owner(ref card.Ref) card.Player {
	return s.Instance(ref).Owner
}

// nextSeq returns a monotonically increasing sequence number for events.
func (s *State) nextSeq() int {
	s.eventSeq++
	return s.eventSeq
}

// DamageCap returns the knockout threshold in damage-marker units (HP/10)
// for a member.
func DamageCap(hp int) int {
	return (hp + 9) / 10
}
