package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/log"
)

// BatonPass swaps the active player's Center Stage member with one from
// Back Stage, paying center's BatonPassCost by archiving attached cheers
// named in paid. Colored cost pips must be paid by a cheer of the exact
// matching color; Colorless pips may be paid by any cheer left over — the
// stricter reading for ambiguous multi-color requirements.
func BatonPass(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, centerRef, backRef card.Ref, paid []card.Ref) error {
	p := st.ActivePlayer
	b := st.Board(p)

	if !contains(b.CenterStage, centerRef) {
		return recoverableErr("baton_pass: %v is not the Center Stage member", centerRef)
	}
	if !contains(b.BackStage, backRef) {
		return recoverableErr("baton_pass: %v is not on the back stage", backRef)
	}
	inst := st.Instance(centerRef)
	if !inst.IsMember() {
		return recoverableErr("baton_pass: %v is not a member card", centerRef)
	}
	for _, ref := range paid {
		if parent, ok := b.ParentOf(ref); !ok || parent != centerRef {
			return recoverableErr("baton_pass: %v is not a cheer attached to %v", ref, centerRef)
		}
	}
	if !payBatonCost(st, inst.Record.Member.BatonPassCost, paid) {
		return recoverableErr("baton_pass: attached cheers do not cover the baton-pass cost")
	}

	for _, ref := range paid {
		b.Detach(ref)
		b.Place(card.ZoneArchive, ref, false)
	}

	b.RemoveFrom(card.ZoneCenterStage, centerRef)
	b.RemoveFrom(card.ZoneBackStage, backRef)
	b.Place(card.ZoneCenterStage, backRef, false)
	b.Place(card.ZoneBackStage, centerRef, false)

	if logger != nil {
		logger.Log(log.GameEvent{Type: log.EventBatonPass, Player: int(p), Refs: []uint32{uint32(centerRef), uint32(backRef)}})
	}
	return nil
}

// payBatonCost reports whether paid can cover cost under the colored-first
// matching rule: every non-Colorless pip must be matched by a cheer of that
// exact color, then every Colorless pip consumes one of whatever cheers
// remain.
func payBatonCost(st *State, cost []catalog.Color, paid []card.Ref) bool {
	if len(paid) < len(cost) {
		return false
	}
	remaining := append([]card.Ref{}, paid...)
	used := make([]bool, len(remaining))

	var colorless int
	for _, c := range cost {
		if c == catalog.Colorless {
			colorless++
			continue
		}
		matched := false
		for i, ref := range remaining {
			if used[i] {
				continue
			}
			inst := st.Instance(ref)
			if inst.IsCheer() && inst.Record.Cheer.Color == c {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for i := range remaining {
		if !used[i] && colorless > 0 {
			used[i] = true
			colorless--
		}
	}
	return colorless == 0
}

func contains(refs []card.Ref, ref card.Ref) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}
