package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// Bloom evolves parent (a member currently on the active player's stage)
// into bloomRef (a same-name, higher-level member drawn from hand). The
// new card inherits parent's zone slot and cheer attachments, and any
// modifiers that logically target the position (damage markers included)
// are reparented onto it via Store.Promote; the outgoing card is archived.
//
// A Buzz member cannot be bloomed into; the new card always receives a
// transient PreventBloom for the rest of this turn regardless of whether
// it itself just bloomed in.
func Bloom(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, parent, bloomRef card.Ref) error {
	p := st.ActivePlayer
	b := st.Board(p)

	zone, ok := b.FindZone(parent)
	if !ok {
		return recoverableErr("bloom: %v is not on the stage", parent)
	}
	inst := st.Instance(bloomRef)
	if !inst.IsMember() {
		return recoverableErr("bloom: %v is not a member card", bloomRef)
	}
	if inst.Record.Member.Buzz {
		return recoverableErr("bloom: %v is a Buzz member and cannot be bloomed into", bloomRef)
	}
	for _, m := range st.Mods.FindForCard(parent, st.CardZoneResolver()) {
		if m.IsActive() && m.Kind == modifier.PreventBloom {
			return recoverableErr("bloom: %v already bloomed this turn", parent)
		}
	}

	if !b.RemoveFrom(card.ZoneHand, bloomRef) {
		return recoverableErr("bloom: %v is not in hand", bloomRef)
	}
	b.RemoveFrom(zone, parent)
	b.Place(zone, bloomRef, false)

	for _, child := range b.DetachAll(parent) {
		b.Attach(child, bloomRef)
	}
	st.Mods.Promote(bloomRef, parent)
	b.Place(card.ZoneArchive, parent, false)

	st.Mods.AddCard(bloomRef, modifier.Modifier{Kind: modifier.PreventBloom, Life: modifier.ThisTurn()})

	ev := newEvaluator(ctx, st, logger, prompters, bloomRef, p, []card.Ref{bloomRef})
	ev.log(log.GameEvent{Type: log.EventBloom, Player: int(p), Refs: []uint32{uint32(parent), uint32(bloomRef)}})

	for _, a := range inst.Record.Member.Abilities {
		if a.Kind != catalog.Bloom {
			continue
		}
		if !ev.EvalCond(a.Condition) {
			continue
		}
		if err := ev.Run(a.Effect); err != nil && err != errSkipEffect {
			if rerr, ok := err.(*RuntimeError); !ok || rerr.Kind == Fatal {
				return err
			}
		}
	}
	return Dispatch(ctx, st, logger, prompters, trigger{kind: catalog.OnBloom, origin: []card.Ref{bloomRef}, actor: p})
}
