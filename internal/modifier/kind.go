// Package modifier tracks the timed effects attached to cards, zones, and
// players for the duration they're supposed to last: damage markers, rest,
// prevention flags, damage-math adjustments, and forced dice rolls, in a
// single store keyed by card, by (player, zone), and by player alone.
package modifier

import "github.com/oshifan/hocgsim/internal/dsl"

// Kind enumerates the closed set of modifier effects a card, zone, or
// player can carry. It mirrors dsl.ModifierKinds.
type Kind int

const (
	DamageMarker Kind = iota
	Rested
	PreventAllArts
	PreventOshiSkill
	PreventCollab
	PreventBloom
	PreventLimitedSupport
	DealMoreDamage
	ReceiveMoreDamage
	MoreDamage
	AsArtCost
	AsCheer
	NoLifeLoss
	NextDiceRoll
)

func (k Kind) String() string {
	switch k {
	case DamageMarker:
		return "DamageMarker"
	case Rested:
		return "Rested"
	case PreventAllArts:
		return "PreventAllArts"
	case PreventOshiSkill:
		return "PreventOshiSkill"
	case PreventCollab:
		return "PreventCollab"
	case PreventBloom:
		return "PreventBloom"
	case PreventLimitedSupport:
		return "PreventLimitedSupport"
	case DealMoreDamage:
		return "DealMoreDamage"
	case ReceiveMoreDamage:
		return "ReceiveMoreDamage"
	case MoreDamage:
		return "MoreDamage"
	case AsArtCost:
		return "AsArtCost"
	case AsCheer:
		return "AsCheer"
	case NoLifeLoss:
		return "NoLifeLoss"
	case NextDiceRoll:
		return "NextDiceRoll"
	default:
		return "Unknown"
	}
}

// Modifier is one timed effect. Amount and Index are populated only for the
// kinds that carry a payload (DealMoreDamage/ReceiveMoreDamage/MoreDamage/
// AsArtCost/AsCheer/NextDiceRoll use Amount; PreventOshiSkill uses Index to
// name which of the oshi's skills is locked out). Condition, when non-nil,
// is evaluated by the game package's evaluator each time the modifier is
// consulted — it is the "when ..." form in add_zone_mod/add_global_mod.
type Modifier struct {
	Kind      Kind
	Amount    int
	Index     int
	Condition *dsl.Expr
	Life      Lifetime
	turnCount int
}

// IsActive reports whether the modifier is currently in effect, independent
// of any Condition (callers evaluate Condition separately against live
// state, since that requires the evaluator).
func (m *Modifier) IsActive() bool {
	return m.Life.isActive(m.turnCount)
}
