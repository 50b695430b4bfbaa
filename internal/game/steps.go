package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/log"
)

// runReset clears the active player's Rested modifiers and returns Collab
// back to Back Stage.
func runReset(st *State, logEvent func(log.GameEvent)) {
	p := st.ActivePlayer
	b := st.Board(p)
	for _, ref := range orderedRefs(b) {
		if st.Mods.IsRested(ref) {
			st.Mods.Awake(ref)
		}
	}
	if len(b.Collab) > 0 {
		collabRef := b.Collab[0]
		b.RemoveFrom(card.ZoneCollab, collabRef)
		b.Place(card.ZoneBackStage, collabRef, false)
	}
}

// runDraw draws one card for the active player; an empty main deck ends
// the match.
func runDraw(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter) error {
	ev := newEvaluator(ctx, st, logger, prompters, 0, st.ActivePlayer, nil)
	if err := ev.drawCards(st.ActivePlayer, 1); err != nil {
		st.Outcome = &Outcome{Winner: refPlayer(st.ActivePlayer.Opponent()), Reason: ReasonDeckOut}
		return nil
	}
	return nil
}

// runCheer attaches the top cheer-deck card to one of the active player's
// own stage members, chosen by the active player.
func runCheer(ctx context.Context, st *State, prompters map[card.Player]Prompter, logEvent func(log.GameEvent)) {
	p := st.ActivePlayer
	b := st.Board(p)
	ref, ok := b.DrawTop(card.ZoneCheerDeck)
	if !ok {
		return
	}
	targets := b.Stage()
	if len(targets) == 0 {
		b.Place(card.ZoneHand, ref, false)
		return
	}
	prompter := promptFor(prompters, p, st.RNG)
	picked, err := prompter.SelectCards(ctx, "attach this turn's cheer", targets, 1, 1)
	if err != nil || len(picked) == 0 {
		picked = targets[:1]
	}
	b.Attach(ref, picked[0])
	logEvent(log.GameEvent{Type: log.EventZoneToAttach, Refs: []uint32{uint32(ref), uint32(picked[0])}, Details: "cheer-step"})
}

// runEnd advances every modifier belonging to the active player, expiring
// ThisTurn entries, checks for a game-over condition, then swaps the active
// player and increments the turn counter.
func runEnd(st *State) {
	p := st.ActivePlayer
	st.Mods.EndTurn(p, st.Owner)
	if st.Outcome != nil {
		return
	}
	if len(st.Board(p).CenterStage) == 0 {
		st.Outcome = &Outcome{Winner: refPlayer(p.Opponent()), Reason: ReasonNoCenterAvailable}
		return
	}
	st.ActivePlayer = p.Opponent()
	st.Turn++
}

// promptFor returns prompters[p] if present, otherwise a seeded random
// fallback — used by every step helper that needs a decision but may be
// running in a context (tests, a solitaire replay) where only one side has
// a real Prompter.
func promptFor(prompters map[card.Player]Prompter, p card.Player, rng interface{ Intn(int) int }) Prompter {
	if pr, ok := prompters[p]; ok {
		return pr
	}
	return &RandomPrompter{RNG: rng}
}

// firePlayerDiceTrigger dispatches the on_before_roll_dice (before set) or
// on_after_roll_dice trigger that the DSL's dice-reactive cards subscribe
// to, with origin as the event origin. Neither the step handlers nor
// rollDice call it, so a roll fires neither trigger.
func firePlayerDiceTrigger(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, origin card.Ref, before bool) error {
	kind := catalog.OnAfterRollDice
	if before {
		kind = catalog.OnBeforeRollDice
	}
	return Dispatch(ctx, st, logger, prompters, trigger{kind: kind, origin: []card.Ref{origin}, actor: st.ActivePlayer})
}
