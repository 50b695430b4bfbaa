package modifier

import (
	"testing"

	"github.com/oshifan/hocgsim/internal/card"
)

func ownerOf(zones map[card.Ref]card.Player) func(card.Ref) card.Player {
	return func(r card.Ref) card.Player { return zones[r] }
}

func TestDamageMarkersAccumulateAndClear(t *testing.T) {
	s := NewStore()
	var c card.Counter
	ref := c.Next()

	s.AddDamage(ref, 3)
	if got := s.DamageCount(ref); got != 3 {
		t.Fatalf("DamageCount = %d, want 3", got)
	}
	s.RemoveDamage(ref, 1)
	if got := s.DamageCount(ref); got != 2 {
		t.Fatalf("DamageCount after removing one = %d, want 2", got)
	}
	s.ClearCard(ref)
	if got := s.DamageCount(ref); got != 0 {
		t.Fatalf("DamageCount after ClearCard = %d, want 0", got)
	}
}

func TestThisTurnModifierExpiresAtEndOfTurn(t *testing.T) {
	s := NewStore()
	var c card.Counter
	ref := c.Next()
	owner := ownerOf(map[card.Ref]card.Player{ref: card.PlayerOne})

	s.AddCard(ref, Modifier{Kind: DealMoreDamage, Amount: 20, Life: ThisTurn()})
	if !s.HasCard(ref, DealMoreDamage) {
		t.Fatal("expected DealMoreDamage to be active immediately")
	}

	s.EndTurn(card.PlayerOne, owner)
	if s.HasCard(ref, DealMoreDamage) {
		t.Fatal("expected this_turn modifier to expire after end of turn")
	}
}

func TestUnlimitedModifierSurvivesManyTurns(t *testing.T) {
	s := NewStore()
	var c card.Counter
	ref := c.Next()
	owner := ownerOf(map[card.Ref]card.Player{ref: card.PlayerOne})

	s.Rest(ref)
	for i := 0; i < 5; i++ {
		s.EndTurn(card.PlayerOne, owner)
	}
	if !s.IsRested(ref) {
		t.Fatal("expected Unlimited lifetime to survive repeated end-turns")
	}
	s.Awake(ref)
	if s.IsRested(ref) {
		t.Fatal("expected Awake to clear Rested")
	}
}

func TestZoneModifierAppliesToEveryCardInZone(t *testing.T) {
	s := NewStore()
	var c card.Counter
	a, b := c.Next(), c.Next()
	zones := map[card.Ref]card.Player{a: card.PlayerOne, b: card.PlayerOne}
	resolve := func(ref card.Ref) (card.Player, card.Zone, bool) {
		p, ok := zones[ref]
		return p, card.ZoneCenterStage, ok
	}

	s.AddZone(card.PlayerOne, card.ZoneCenterStage, Modifier{Kind: MoreDamage, Amount: 50, Life: NextTurn()})

	for _, ref := range []card.Ref{a, b} {
		found := s.FindForCard(ref, resolve)
		if len(found) != 1 || found[0].Kind != MoreDamage {
			t.Fatalf("card %v: expected one MoreDamage modifier from zone, got %v", ref, found)
		}
	}
}

func TestPromoteMovesModifiersToAttachment(t *testing.T) {
	s := NewStore()
	var c card.Counter
	parent := c.Next()
	attachment := c.Next()
	owner := ownerOf(map[card.Ref]card.Player{parent: card.PlayerOne, attachment: card.PlayerOne})
	_ = owner

	s.AddDamage(parent, 2)
	s.Promote(attachment, parent)

	if got := s.DamageCount(parent); got != 0 {
		t.Fatalf("parent DamageCount after promote = %d, want 0", got)
	}
	if got := s.DamageCount(attachment); got != 2 {
		t.Fatalf("attachment DamageCount after promote = %d, want 2", got)
	}
}
