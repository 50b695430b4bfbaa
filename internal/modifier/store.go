package modifier

import "github.com/oshifan/hocgsim/internal/card"

type cardEntry struct {
	ref card.Ref
	mod *Modifier
}

type zoneEntry struct {
	player card.Player
	zone   card.Zone
	mod    *Modifier
}

type playerEntry struct {
	player card.Player
	mod    *Modifier
}

// CardZone resolves which (player, zone) a card currently sits in. The
// store needs it only to chain zone modifiers onto a card's own; it never
// owns zone membership itself — that's game.State's job.
type CardZone func(card.Ref) (card.Player, card.Zone, bool)

// Store holds every active modifier in a match, split into per-card,
// per-(player,zone), and per-player lists — the last one backing
// add_global_mod.
type Store struct {
	cards   []cardEntry
	zones   []zoneEntry
	players []playerEntry
}

// NewStore returns an empty modifier store.
func NewStore() *Store {
	return &Store{}
}

// AddCard attaches a new modifier directly to a card.
func (s *Store) AddCard(ref card.Ref, m Modifier) {
	cp := m
	s.cards = append(s.cards, cardEntry{ref: ref, mod: &cp})
}

// AddManyCard attaches amount independent copies of the same modifier, used
// for damage markers where each instance of damage is its own entry.
func (s *Store) AddManyCard(ref card.Ref, m Modifier, amount int) {
	for i := 0; i < amount; i++ {
		s.AddCard(ref, m)
	}
}

// AddZone attaches a modifier to every card in a (player, zone) — or to
// every zone for that player when zone is card.ZoneAll.
func (s *Store) AddZone(player card.Player, zone card.Zone, m Modifier) {
	cp := m
	s.zones = append(s.zones, zoneEntry{player: player, zone: zone, mod: &cp})
}

// AddPlayer attaches a modifier that applies to a player directly, not to
// any card or zone (next_dice_roll is the only kind that uses this today).
func (s *Store) AddPlayer(player card.Player, m Modifier) {
	cp := m
	s.players = append(s.players, playerEntry{player: player, mod: &cp})
}

// FindForCard returns every modifier bearing on ref: its own, plus any
// modifier on its current (player, zone) or that player's ZoneAll wildcard.
func (s *Store) FindForCard(ref card.Ref, resolve CardZone) []*Modifier {
	var out []*Modifier
	for _, e := range s.cards {
		if e.ref == ref {
			out = append(out, e.mod)
		}
	}
	player, zone, ok := resolve(ref)
	if !ok {
		return out
	}
	for _, e := range s.zones {
		if e.player == player && (e.zone == zone || e.zone == card.ZoneAll) {
			out = append(out, e.mod)
		}
	}
	return out
}

// FindForPlayer returns every modifier attached directly to a player.
func (s *Store) FindForPlayer(player card.Player) []*Modifier {
	var out []*Modifier
	for _, e := range s.players {
		if e.player == player {
			out = append(out, e.mod)
		}
	}
	return out
}

// FindForZone returns every modifier attached to a (player, zone) pair
// directly — not chained through any particular card — used to check a
// zone-wide lock like PreventLimitedSupport before a card is even chosen.
func (s *Store) FindForZone(player card.Player, zone card.Zone) []*Modifier {
	var out []*Modifier
	for _, e := range s.zones {
		if e.player == player && (e.zone == zone || e.zone == card.ZoneAll) {
			out = append(out, e.mod)
		}
	}
	return out
}

// RemovePlayer removes up to amount active player-level modifiers of kind
// from player — the player-level counterpart to RemoveCard, used to consume
// a NextDiceRoll modifier once it has fixed a roll.
func (s *Store) RemovePlayer(player card.Player, kind Kind, amount int) {
	removed := 0
	kept := s.players[:0]
	for _, e := range s.players {
		if removed < amount && e.player == player && e.mod.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.players = kept
}

// HasCard reports whether ref carries an active modifier of kind, counting
// only its own card-level modifiers (not inherited zone modifiers).
func (s *Store) HasCard(ref card.Ref, kind Kind) bool {
	for _, e := range s.cards {
		if e.ref == ref && e.mod.Kind == kind && e.mod.IsActive() {
			return true
		}
	}
	return false
}

// RemoveCard removes up to amount active card-level modifiers of kind from ref.
func (s *Store) RemoveCard(ref card.Ref, kind Kind, amount int) {
	removed := 0
	kept := s.cards[:0]
	for _, e := range s.cards {
		if removed < amount && e.ref == ref && e.mod.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.cards = kept
}

// RemoveAllCard removes every card-level modifier of kind from ref.
func (s *Store) RemoveAllCard(ref card.Ref, kind Kind) {
	kept := s.cards[:0]
	for _, e := range s.cards {
		if e.ref == ref && e.mod.Kind == kind {
			continue
		}
		kept = append(kept, e)
	}
	s.cards = kept
}

// ClearCard removes every card-level modifier from ref, regardless of kind.
func (s *Store) ClearCard(ref card.Ref) {
	kept := s.cards[:0]
	for _, e := range s.cards {
		if e.ref == ref {
			continue
		}
		kept = append(kept, e)
	}
	s.cards = kept
}

// Promote reparents every modifier on parent onto attachment, used when a
// bloom evolves a member: the old card leaves play, but modifiers like
// damage markers follow the new top card.
func (s *Store) Promote(attachment, parent card.Ref) {
	for i := range s.cards {
		if s.cards[i].ref == parent {
			s.cards[i].ref = attachment
		}
	}
}

// StartTurn runs the start-of-turn tick for every modifier owned by player,
// by card, zone, or directly. Currently a no-op; kept for symmetry and for
// any future kind that needs a start-of-turn hook.
func (s *Store) StartTurn(player card.Player, owner func(card.Ref) card.Player) {
	_ = player
	_ = owner
}

// EndTurn advances the turn counter for every modifier owned by player and
// drops any that no longer survive the tick.
func (s *Store) EndTurn(player card.Player, owner func(card.Ref) card.Player) {
	for _, e := range s.cards {
		if owner(e.ref) == player {
			e.mod.turnCount++
		}
	}
	for _, e := range s.zones {
		if e.player == player {
			e.mod.turnCount++
		}
	}
	for _, e := range s.players {
		if e.player == player {
			e.mod.turnCount++
		}
	}

	keptCards := s.cards[:0]
	for _, e := range s.cards {
		if owner(e.ref) != player || e.mod.Life.survivesEndTurn(e.mod.turnCount) {
			keptCards = append(keptCards, e)
		}
	}
	s.cards = keptCards

	keptZones := s.zones[:0]
	for _, e := range s.zones {
		if e.player != player || e.mod.Life.survivesEndTurn(e.mod.turnCount) {
			keptZones = append(keptZones, e)
		}
	}
	s.zones = keptZones

	keptPlayers := s.players[:0]
	for _, e := range s.players {
		if e.player != player || e.mod.Life.survivesEndTurn(e.mod.turnCount) {
			keptPlayers = append(keptPlayers, e)
		}
	}
	s.players = keptPlayers
}

// IsRested reports whether ref carries an active Rested modifier.
func (s *Store) IsRested(ref card.Ref) bool { return s.HasCard(ref, Rested) }

// Rest marks ref as rested until explicitly awoken.
func (s *Store) Rest(ref card.Ref) { s.AddCard(ref, Modifier{Kind: Rested, Life: Unlimited()}) }

// Awake clears every Rested modifier from ref.
func (s *Store) Awake(ref card.Ref) { s.RemoveAllCard(ref, Rested) }

// DamageCount returns the number of active damage markers on ref.
func (s *Store) DamageCount(ref card.Ref) int {
	n := 0
	for _, e := range s.cards {
		if e.ref == ref && e.mod.Kind == DamageMarker && e.mod.IsActive() {
			n++
		}
	}
	return n
}

// AddDamage adds amount independent damage markers to ref.
func (s *Store) AddDamage(ref card.Ref, amount int) {
	s.AddManyCard(ref, Modifier{Kind: DamageMarker, Life: Unlimited()}, amount)
}

// RemoveDamage clears up to amount damage markers from ref.
func (s *Store) RemoveDamage(ref card.Ref, amount int) {
	s.RemoveCard(ref, DamageMarker, amount)
}
