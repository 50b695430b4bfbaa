package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// Collab promotes a Back Stage member into the Collab slot, rests it, and
// fires its Collab-kind ability (if any). Fails recoverably if the player
// already has a Collab this turn or the chosen ref isn't a legal Back
// Stage member.
func Collab(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, ref card.Ref) error {
	p := st.ActivePlayer
	b := st.Board(p)
	if len(b.Collab) > 0 {
		return recoverableErr("collab: already collabed this turn")
	}
	if !contains(b.BackStage, ref) {
		return recoverableErr("collab: %v is not on the back stage", ref)
	}
	if st.Mods.HasCard(ref, modifier.PreventCollab) {
		return recoverableErr("collab: %v cannot collab this turn", ref)
	}
	b.RemoveFrom(card.ZoneBackStage, ref)
	b.Place(card.ZoneCollab, ref, false)
	st.Mods.Rest(ref)

	logEvent := func(e log.GameEvent) {
		if logger != nil {
			logger.Log(e)
		}
	}
	logEvent(log.GameEvent{Type: log.EventCollab, Player: int(p), Refs: []uint32{uint32(ref)}})

	inst := st.Instance(ref)
	if inst.IsMember() {
		for _, a := range inst.Record.Member.Abilities {
			if a.Kind != catalog.Collab {
				continue
			}
			ev := newEvaluator(ctx, st, logger, prompters, ref, p, []card.Ref{ref})
			if !ev.EvalCond(a.Condition) {
				continue
			}
			if err := ev.Run(a.Effect); err != nil && err != errSkipEffect {
				if rerr, ok := err.(*RuntimeError); !ok || rerr.Kind == Fatal {
					return err
				}
			}
		}
	}
	return Dispatch(ctx, st, logger, prompters, trigger{kind: catalog.OnCollab, origin: []card.Ref{ref}, actor: p})
}
