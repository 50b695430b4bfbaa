package modifier

import "github.com/oshifan/hocgsim/internal/card"

// LifeKind distinguishes how a Lifetime decides when a modifier expires.
// It mirrors dsl.Lifetimes.
type LifeKind int

const (
	// KindTurns expires once turnCount leaves [Min, Max], counted in end-turn
	// ticks since the modifier was added.
	KindTurns LifeKind = iota
	// KindUnlimited never auto-expires (this_game / until_removed).
	KindUnlimited
	// KindUntilEffectEnds is cleared explicitly by the evaluator once the
	// art or ability that created it finishes resolving (this_art / this_effect).
	KindUntilEffectEnds
	// KindWhileAttached is cleared explicitly when AttachedTo is detached.
	KindWhileAttached
)

// Lifetime says how long a Modifier survives.
type Lifetime struct {
	Kind       LifeKind
	Min, Max   int
	AttachedTo card.Ref
}

// ThisTurn expires at the end of the turn it was added on.
func ThisTurn() Lifetime { return Lifetime{Kind: KindTurns, Min: 0, Max: 0} }

// NextTurn survives into the following turn and expires at its end.
func NextTurn() Lifetime { return Lifetime{Kind: KindTurns, Min: 1, Max: 1} }

// NextTurns survives for count turns starting with the next one.
func NextTurns(count int) Lifetime { return Lifetime{Kind: KindTurns, Min: 1, Max: count} }

// Unlimited never auto-expires; it must be removed explicitly. Covers both
// this_game and until_removed, which differ only in catalog-authoring intent.
func Unlimited() Lifetime { return Lifetime{Kind: KindUnlimited} }

// UntilEffectEnds covers this_art and this_effect.
func UntilEffectEnds() Lifetime { return Lifetime{Kind: KindUntilEffectEnds} }

// WhileAttached covers while_attached, tied to a specific attachment ref.
func WhileAttached(ref card.Ref) Lifetime {
	return Lifetime{Kind: KindWhileAttached, AttachedTo: ref}
}

func (l Lifetime) isActive(turnCount int) bool {
	switch l.Kind {
	case KindTurns:
		return turnCount >= l.Min && turnCount <= l.Max
	default:
		return true
	}
}

// survivesEndTurn reports whether the modifier should remain in the store
// after its owning player's end-of-turn tick has been applied.
func (l Lifetime) survivesEndTurn(turnCount int) bool {
	switch l.Kind {
	case KindTurns:
		return turnCount <= l.Max
	default:
		return true
	}
}
