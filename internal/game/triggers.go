package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/dsl"
	"github.com/oshifan/hocgsim/internal/log"
)

// trigger carries one firing instance of an internal event: the kind, the
// card that caused it (event_origin for the fired effects), and the actor
// whose turn it is (used as the "active player" for dispatch ordering,
// which does not necessarily match the origin card's owner — e.g. an
// opponent's support can react to the active player's dice roll).
type trigger struct {
	kind   catalog.Trigger
	origin []card.Ref
	actor  card.Player
}

// reactor is one triggerable ability site: a card plus one of its
// (triggers, condition, effect) entries.
type reactor struct {
	owner     card.Player
	ref       card.Ref
	triggers  []catalog.Trigger
	condition *dsl.Effect
	effect    *dsl.Effect
}

func subscribes(triggers []catalog.Trigger, kind catalog.Trigger) bool {
	for _, t := range triggers {
		if t == kind {
			return true
		}
	}
	return false
}

// reactorsFor collects every reactor on rec (a lead's skills, a support's
// abilities — member abilities are dispatched directly by collab/bloom call
// sites since their firing condition is a fixed AbilityKind, not a Triggers
// list).
func reactorsFor(owner card.Player, ref card.Ref, rec *catalog.Record) []reactor {
	var out []reactor
	switch rec.Kind {
	case catalog.KindLead:
		for _, s := range rec.Lead.Skills {
			out = append(out, reactor{owner: owner, ref: ref, triggers: s.Triggers, condition: s.Condition, effect: s.Effect})
		}
	case catalog.KindSupport:
		for _, a := range rec.Support.Abilites {
			out = append(out, reactor{owner: owner, ref: ref, triggers: a.Triggers, condition: a.Condition, effect: a.Effect})
		}
	}
	return out
}

// orderedRefs returns every card ref on b's board in trigger-dispatch
// order: Lead, Center, Collab, Back (front-to-back), then every attachment
// in attachment-insertion order.
func orderedRefs(b *Board) []card.Ref {
	var fronts []card.Ref
	fronts = append(fronts, b.Lead...)
	fronts = append(fronts, b.CenterStage...)
	fronts = append(fronts, b.Collab...)
	fronts = append(fronts, b.BackStage...)

	out := append([]card.Ref{}, fronts...)
	for _, parent := range fronts {
		out = append(out, b.AttachedTo(parent)...)
	}
	return out
}

// Dispatch fires trigger t against the whole match: it walks the active
// player's board, then the opponent's, in orderedRefs order, collecting
// every reactor whose triggers include t.kind, and runs each one whose
// condition passes, in that order. Fatal errors from any single reactor's
// effect bubble immediately; recoverable errors are dropped and the walk
// continues to the next reactor.
func Dispatch(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, t trigger) error {
	order := []card.Player{t.actor, t.actor.Opponent()}
	for _, p := range order {
		b := st.Board(p)
		for _, ref := range orderedRefs(b) {
			inst, ok := st.Cards[ref]
			if !ok {
				continue
			}
			for _, r := range reactorsFor(p, ref, inst.Record) {
				if !subscribes(r.triggers, t.kind) {
					continue
				}
				ev := newEvaluator(ctx, st, logger, prompters, ref, p, t.origin)
				if !ev.EvalCond(r.condition) {
					continue
				}
				if err := ev.Run(r.effect); err != nil {
					if err == errSkipEffect {
						continue
					}
					if rerr, ok := err.(*RuntimeError); ok && rerr.Kind == Recoverable {
						continue
					}
					return err
				}
			}
		}
	}
	return nil
}
