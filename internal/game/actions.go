package game

import (
	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// This file holds the evaluator's lower-level action primitives: the parts
// of draw/send_to/deal_damage/knock_out/shuffle/roll_dice that touch zones,
// damage math, and the event log directly, kept separate from evaluator.go's
// AST dispatch so each stays readable on its own.

// drawCards moves up to n cards from the top of p's main deck into p's hand,
// logging the event regardless of how many were actually available — a
// short draw (deck-out) is returned as a Fatal RuntimeError once the
// available cards have been drawn.
func (ev *evaluator) drawCards(p card.Player, n int) error {
	b := ev.st.Board(p)
	drawn := 0
	for i := 0; i < n; i++ {
		ref, ok := b.DrawTop(card.ZoneMainDeck)
		if !ok {
			break
		}
		b.Place(card.ZoneHand, ref, false)
		drawn++
	}
	ev.log(log.GameEvent{Type: log.EventDraw, Player: int(p), Amount: drawn})
	if drawn < n {
		return fatalErr("player %d decked out while drawing", p)
	}
	return nil
}

// revealTop reveals, without removing, the top n cards of p's main deck.
func (ev *evaluator) revealTop(p card.Player, n int) {
	b := ev.st.Board(p)
	deck := b.Zone(card.ZoneMainDeck)
	if n > len(deck) {
		n = len(deck)
	}
	refs := make([]uint32, n)
	for i := 0; i < n; i++ {
		refs[i] = uint32(deck[i])
	}
	ev.log(log.GameEvent{Type: log.EventReveal, Player: int(p), Refs: refs})
}

// sendTo moves every ref into zone dest, owned by whichever player
// currently holds that ref, appending at the back (the deck bottom) when
// bottom is set and at the front (the deck top) otherwise.
func (ev *evaluator) sendTo(dest card.Zone, refs []card.Ref, bottom bool) error {
	for _, ref := range refs {
		owner, from, ok := ev.st.FindZone(ref)
		if !ok {
			owner = ev.st.Owner(ref)
		}
		b := ev.st.Board(owner)
		if ok {
			b.RemoveFrom(from, ref)
		} else {
			b.RemoveAny(ref) // attached card — detach first
			b.Detach(ref)
		}
		b.Place(dest, ref, !bottom)
		ev.log(log.GameEvent{Type: log.EventZoneToZone, Refs: []uint32{uint32(ref)}, From: from.String(), To: dest.String()})
	}
	return nil
}

// dealDamage applies amount damage to target, layering any
// DealMoreDamage / MoreDamage modifiers borne by the attacking card (its
// own or its zone's) and any ReceiveMoreDamage / MoreDamage modifiers
// borne by target on top of the base amount, then checks for a knockout.
// A modifier with a Condition only counts when that condition evaluates
// true against the card it bears on.
func (ev *evaluator) dealDamage(target card.Ref, amount int, source string) {
	total := amount
	for _, m := range ev.st.Mods.FindForCard(ev.thisCard, ev.st.CardZoneResolver()) {
		if !ev.modifierApplies(m, ev.thisCard) {
			continue
		}
		switch m.Kind {
		case modifier.DealMoreDamage, modifier.MoreDamage:
			total += m.Amount
		}
	}
	for _, m := range ev.st.Mods.FindForCard(target, ev.st.CardZoneResolver()) {
		if !ev.modifierApplies(m, target) {
			continue
		}
		switch m.Kind {
		case modifier.ReceiveMoreDamage:
			total += m.Amount
		case modifier.MoreDamage:
			total += m.Amount
		}
	}
	if total < 0 {
		total = 0
	}
	inst := ev.st.Instance(target)
	maxDamage := DamageCap(inst.HP())
	if total > maxDamage {
		total = maxDamage
	}
	ev.st.Mods.AddDamage(target, total)
	ev.log(log.GameEvent{Type: log.EventDealDamage, Refs: []uint32{uint32(target)}, Amount: total, Details: source})

	if ev.st.Mods.DamageCount(target) >= inst.HP() {
		ev.knockOut(target)
	}
}

// modifierApplies reports whether m is active and, if it carries a
// Condition (the "when ..." form of add_zone_mod/add_global_mod), whether
// that condition holds against bearer right now.
func (ev *evaluator) modifierApplies(m *modifier.Modifier, bearer card.Ref) bool {
	if !m.IsActive() {
		return false
	}
	if m.Condition == nil {
		return true
	}
	sub := newEvaluator(ev.ctx, ev.st, ev.logger, ev.prompters, bearer, ev.st.Owner(bearer), ev.eventOrigin)
	return sub.evalCond(m.Condition)
}

// knockOut sends target to its owner's archive, detaches any cheers onto
// the archive too, charges the owner one life (as a cheer attach, not a
// NoLifeLoss-exempted member) and — if the defeated card held the Center —
// prompts the owner to promote a replacement.
func (ev *evaluator) knockOut(target card.Ref) {
	owner := ev.st.Owner(target)
	b := ev.st.Board(owner)
	hadNoLifeLoss := ev.st.Mods.HasCard(target, modifier.NoLifeLoss)

	for _, child := range b.DetachAll(target) {
		b.Place(card.ZoneArchive, child, false)
	}
	fromZone, _ := b.RemoveAny(target)
	b.Place(card.ZoneArchive, target, false)
	ev.st.Mods.ClearCard(target)

	ev.log(log.GameEvent{Type: log.EventHoloMemberDefeated, Refs: []uint32{uint32(target)}, Player: int(owner)})
	if err := Dispatch(ev.ctx, ev.st, ev.logger, ev.prompters, trigger{kind: catalog.OnMemberDefeated, origin: []card.Ref{target}, actor: owner}); err != nil {
		ev.st.Outcome = &Outcome{Reason: ReasonParticipantDisconnected}
	}

	if !hadNoLifeLoss {
		ev.loseLife(owner)
	}
	if ev.st.Outcome != nil {
		return
	}
	if fromZone == card.ZoneCenterStage {
		ev.replaceCenter(owner)
	}
}

// loseLife takes the top Life card and prompts p to attach it as a cheer
// to one of their own stage members; with no stage member it goes to p's
// hand instead. An empty Life zone at the moment a life is owed ends the
// match.
func (ev *evaluator) loseLife(p card.Player) {
	b := ev.st.Board(p)
	ref, ok := b.DrawTop(card.ZoneLife)
	if !ok {
		ev.log(log.GameEvent{Type: log.EventLoseLives, Player: int(p), Amount: 0})
		ev.st.Outcome = &Outcome{Winner: refPlayer(p.Opponent()), Reason: ReasonZeroLife}
		return
	}
	ev.log(log.GameEvent{Type: log.EventLoseLives, Player: int(p), Amount: 1, Refs: []uint32{uint32(ref)}})

	targets := b.Stage()
	if len(targets) == 0 {
		b.Place(card.ZoneHand, ref, false)
		return
	}
	picked, err := ev.prompter(p).SelectCards(ev.ctx, "attach your life card as a cheer", targets, 1, 1)
	if err != nil || len(picked) == 0 {
		picked = targets[:1]
	}
	b.Attach(ref, picked[0])
	ev.log(log.GameEvent{Type: log.EventZoneToAttach, Refs: []uint32{uint32(ref), uint32(picked[0])}, Details: "life-to-cheer"})
}

// replaceCenter runs when the active Center Stage card was just removed: the
// owner promotes a Back Stage member, or the game ends if none remain.
func (ev *evaluator) replaceCenter(owner card.Player) {
	b := ev.st.Board(owner)
	if len(b.CenterStage) > 0 {
		return
	}
	if len(b.BackStage) == 0 {
		ev.st.Outcome = &Outcome{Winner: refPlayer(owner.Opponent()), Reason: ReasonNoCenterAvailable}
		return
	}
	picked, err := ev.prompter(owner).SelectCards(ev.ctx, "promote a Back Stage member to Center", b.BackStage, 1, 1)
	if err != nil || len(picked) == 0 {
		picked = b.BackStage[:1]
	}
	b.RemoveFrom(card.ZoneBackStage, picked[0])
	b.Place(card.ZoneCenterStage, picked[0], false)
}

func refPlayer(p card.Player) *card.Player { return &p }

// shuffle randomizes the order of a zone in place using the match's RNG —
// the same seeded RNG that setup's shuffles and first-player pick, dice
// rolls and RandomPrompter draw from, so replays stay deterministic given
// the same seed.
func (ev *evaluator) shuffle(z card.Zone) {
	b := ev.st.Board(ev.actor)
	s := b.zoneSlice(z)
	if s == nil {
		return
	}
	ev.st.RNG.Shuffle(len(*s), func(i, j int) { (*s)[i], (*s)[j] = (*s)[j], (*s)[i] })
	ev.log(log.GameEvent{Type: log.EventShuffle, Player: int(ev.actor), Zone: z.String()})
}

// rollDice rolls one six-sided die, honoring a NextDiceRoll modifier that
// fixes the result (e.g. an oshi skill that forces a specific roll).
func (ev *evaluator) rollDice() int {
	result := 1 + ev.st.RNG.Intn(6)
	for _, m := range ev.st.Mods.FindForPlayer(ev.actor) {
		if m.IsActive() && m.Kind == modifier.NextDiceRoll {
			result = m.Amount
			ev.st.Mods.RemovePlayer(ev.actor, modifier.NextDiceRoll, 1)
			break
		}
	}
	ev.log(log.GameEvent{Type: log.EventRollDice, Player: int(ev.actor), Dice: []int{result}})
	return result
}
