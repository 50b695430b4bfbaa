package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// PlaySupportCard plays ref — a Support card in the active player's hand —
// as a main-step action: a Limited support can be played at most once per
// turn, enforced by a PreventLimitedSupport zone modifier on the player's
// hand. It evaluates each ability whose condition passes, then archives
// the card.
func PlaySupportCard(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, ref card.Ref) error {
	p := st.ActivePlayer
	b := st.Board(p)
	if !b.RemoveFrom(card.ZoneHand, ref) {
		return recoverableErr("play_support_card: %v is not in hand", ref)
	}

	inst := st.Instance(ref)
	if !inst.IsSupport() {
		b.Place(card.ZoneHand, ref, false)
		return fatalErr("play_support_card: %v is not a support card", ref)
	}
	data := inst.Record.Support

	if data.Limited {
		if hasLimitedSupportLock(st, p) {
			b.Place(card.ZoneHand, ref, false)
			return recoverableErr("play_support_card: a Limited support has already been played this turn")
		}
		st.Mods.AddZone(p, card.ZoneHand, modifier.Modifier{Kind: modifier.PreventLimitedSupport, Life: modifier.ThisTurn()})
	}

	ev := newEvaluator(ctx, st, logger, prompters, ref, p, []card.Ref{ref})
	ev.log(log.GameEvent{Type: log.EventActivateSupportCard, Player: int(p), Refs: []uint32{uint32(ref)}})

	for _, a := range data.Abilites {
		if !ev.EvalCond(a.Condition) {
			continue
		}
		ev.log(log.GameEvent{Type: log.EventActivateSupportAbility, Player: int(p), Refs: []uint32{uint32(ref)}})
		if err := ev.Run(a.Effect); err != nil {
			if err == errSkipEffect {
				continue
			}
			if rerr, ok := err.(*RuntimeError); ok && rerr.Kind == Recoverable {
				continue
			}
			return err
		}
	}

	b.Place(card.ZoneArchive, ref, false)
	return nil
}

// hasLimitedSupportLock reports whether p already has an active
// PreventLimitedSupport modifier on their hand zone.
func hasLimitedSupportLock(st *State, p card.Player) bool {
	for _, m := range st.Mods.FindForZone(p, card.ZoneHand) {
		if m.IsActive() && m.Kind == modifier.PreventLimitedSupport {
			return true
		}
	}
	return false
}
