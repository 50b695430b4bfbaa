package game

import "github.com/oshifan/hocgsim/internal/card"

// Board is one player's half of the match: every zone plus the attachment
// map. Ordered zones are plain slices, kept in insertion/zone order for
// determinism; Lead/CenterStage/Collab hold at most one card and are
// modeled as a single-element slice for uniformity with the rest of the
// zone API.
type Board struct {
	Player card.Player

	Lead        []card.Ref
	MainDeck    []card.Ref
	CenterStage []card.Ref
	Collab      []card.Ref
	BackStage   []card.Ref
	Life        []card.Ref
	CheerDeck   []card.Ref
	HoloPower   []card.Ref
	Archive     []card.Ref
	Hand        []card.Ref

	// attachments records attached-card -> parent-card pairs in attachment
	// order, so iteration (AttachedTo) is deterministic. An attached card
	// never appears in any zone slice above.
	attachments []attachment
}

type attachment struct {
	child, parent card.Ref
}

// NewBoard returns an empty board for player.
func NewBoard(player card.Player) *Board {
	return &Board{Player: player}
}

func (b *Board) zoneSlice(z card.Zone) *[]card.Ref {
	switch z {
	case card.ZoneLead:
		return &b.Lead
	case card.ZoneMainDeck:
		return &b.MainDeck
	case card.ZoneCenterStage:
		return &b.CenterStage
	case card.ZoneCollab:
		return &b.Collab
	case card.ZoneBackStage:
		return &b.BackStage
	case card.ZoneLife:
		return &b.Life
	case card.ZoneCheerDeck:
		return &b.CheerDeck
	case card.ZoneHoloPower:
		return &b.HoloPower
	case card.ZoneArchive:
		return &b.Archive
	case card.ZoneHand:
		return &b.Hand
	default:
		return nil
	}
}

// Zone returns the live contents of z, in zone order. Mutating the returned
// slice does not affect the board; use Place/Remove.
func (b *Board) Zone(z card.Zone) []card.Ref {
	s := b.zoneSlice(z)
	if s == nil {
		return nil
	}
	return append([]card.Ref(nil), *s...)
}

// Stage returns every member on Center, Collab, and Back Stage, in that
// order — the "stage" target keyword.
func (b *Board) Stage() []card.Ref {
	out := append([]card.Ref(nil), b.CenterStage...)
	out = append(out, b.Collab...)
	out = append(out, b.BackStage...)
	return out
}

// FindZone reports which zone ref currently occupies, if any (attached
// cards are not found here; see ParentOf and AttachedTo).
func (b *Board) FindZone(ref card.Ref) (card.Zone, bool) {
	zones := []card.Zone{
		card.ZoneLead, card.ZoneMainDeck, card.ZoneCenterStage, card.ZoneCollab,
		card.ZoneBackStage, card.ZoneLife, card.ZoneCheerDeck, card.ZoneHoloPower,
		card.ZoneArchive, card.ZoneHand,
	}
	for _, z := range zones {
		for _, r := range *b.zoneSlice(z) {
			if r == ref {
				return z, true
			}
		}
	}
	return 0, false
}

// Place appends ref to the end of zone z (or to the front if front is
// true — used for deck-top placement).
func (b *Board) Place(z card.Zone, ref card.Ref, front bool) {
	s := b.zoneSlice(z)
	if front {
		*s = append([]card.Ref{ref}, *s...)
	} else {
		*s = append(*s, ref)
	}
}

// RemoveFrom deletes ref from zone z if present, reporting whether it was found.
func (b *Board) RemoveFrom(z card.Zone, ref card.Ref) bool {
	s := b.zoneSlice(z)
	for i, r := range *s {
		if r == ref {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAny removes ref from whichever zone currently holds it.
func (b *Board) RemoveAny(ref card.Ref) (card.Zone, bool) {
	z, ok := b.FindZone(ref)
	if !ok {
		return 0, false
	}
	b.RemoveFrom(z, ref)
	return z, true
}

// Attach records child as attached to parent, removing child from whatever
// zone it occupied.
func (b *Board) Attach(child, parent card.Ref) {
	b.RemoveAny(child)
	b.Detach(child)
	b.attachments = append(b.attachments, attachment{child: child, parent: parent})
}

// Detach removes the attachment record for child, returning true if one
// existed.
func (b *Board) Detach(child card.Ref) bool {
	for i, a := range b.attachments {
		if a.child == child {
			b.attachments = append(b.attachments[:i], b.attachments[i+1:]...)
			return true
		}
	}
	return false
}

// ParentOf returns the parent of an attached card, if any.
func (b *Board) ParentOf(child card.Ref) (card.Ref, bool) {
	for _, a := range b.attachments {
		if a.child == child {
			return a.parent, true
		}
	}
	return 0, false
}

// AttachedTo returns every card attached to parent, in attachment order.
func (b *Board) AttachedTo(parent card.Ref) []card.Ref {
	var out []card.Ref
	for _, a := range b.attachments {
		if a.parent == parent {
			out = append(out, a.child)
		}
	}
	return out
}

// DetachAll removes and returns every card attached to parent.
func (b *Board) DetachAll(parent card.Ref) []card.Ref {
	children := b.AttachedTo(parent)
	for _, c := range children {
		b.Detach(c)
	}
	return children
}

// DrawTop removes and returns the top card of z (the front of the slice),
// reporting whether the zone was non-empty.
func (b *Board) DrawTop(z card.Zone) (card.Ref, bool) {
	s := b.zoneSlice(z)
	if len(*s) == 0 {
		return 0, false
	}
	ref := (*s)[0]
	*s = (*s)[1:]
	return ref, true
}
