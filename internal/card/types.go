// Package card holds the identity and zone types shared by the modifier
// store and the game engine, kept separate so neither package has to import
// the other just to name a card or a zone.
package card

// Player identifies one of the two match participants.
type Player int

const (
	PlayerOne Player = iota
	PlayerTwo
)

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "PlayerOne"
	case PlayerTwo:
		return "PlayerTwo"
	default:
		return "Unknown"
	}
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Zone identifies one of the match's card zones. CenterStage and Collab are
// carved out of what the rules call "the stage"; BackStage is the rest of
// it. All is a pseudo-zone used only as a modifier-store wildcard, matching
// every real zone for a given player.
type Zone int

const (
	ZoneLead Zone = iota
	ZoneMainDeck
	ZoneCenterStage
	ZoneCollab
	ZoneBackStage
	ZoneLife
	ZoneCheerDeck
	ZoneHoloPower
	ZoneArchive
	ZoneHand
	ZoneAll
)

func (z Zone) String() string {
	switch z {
	case ZoneLead:
		return "Lead"
	case ZoneMainDeck:
		return "MainDeck"
	case ZoneCenterStage:
		return "CenterStage"
	case ZoneCollab:
		return "Collab"
	case ZoneBackStage:
		return "BackStage"
	case ZoneLife:
		return "Life"
	case ZoneCheerDeck:
		return "CheerDeck"
	case ZoneHoloPower:
		return "HoloPower"
	case ZoneArchive:
		return "Archive"
	case ZoneHand:
		return "Hand"
	case ZoneAll:
		return "All"
	default:
		return "Unknown"
	}
}

// Stage reports whether z is one of the zones considered "the stage" for
// rules that care only about members in play (center, collab, back).
func (z Zone) Stage() bool {
	return z == ZoneCenterStage || z == ZoneCollab || z == ZoneBackStage
}

// Ref is an opaque, per-match-unique handle to a card instance. The zero
// value never denotes a real card; Counter never hands it out.
type Ref uint32

// Valid reports whether r was handed out by a Counter, as opposed to being a
// zero Ref left over from an unset field.
func (r Ref) Valid() bool { return r != 0 }

// Counter hands out monotonically increasing Refs, unique for the lifetime
// of one match and never reused even after a card leaves play.
type Counter struct {
	next uint32
}

// Next returns a fresh Ref.
func (c *Counter) Next() Ref {
	c.next++
	return Ref(c.next)
}
