package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// PerformArt runs one Performance-step art: attacker must be an unrested
// front-line member (Center Stage or Collab), its cost must be payable by
// attached cheers plus any AsArtCost/AsCheer substitutes, and
// PreventAllArts must not be active on it. The art's effect runs before its
// damage, so a this_art bonus the effect installs counts toward that
// damage. Damage resolves through the
// same pipeline add_mod/deal_damage effects use, so
// DealMoreDamage/ReceiveMoreDamage/MoreDamage modifiers and a resulting
// knockout are handled identically whether the damage came from an art or
// an effect.
func PerformArt(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, attacker card.Ref, artIndex int, target card.Ref) error {
	p := st.ActivePlayer
	b := st.Board(p)
	if !isFrontLine(b, attacker) {
		return recoverableErr("perform_art: %v is not on the front line", attacker)
	}
	if st.Mods.IsRested(attacker) {
		return recoverableErr("perform_art: %v is rested", attacker)
	}
	inst := st.Instance(attacker)
	if !inst.IsMember() {
		return fatalErr("perform_art: %v is not a member card", attacker)
	}
	if artIndex < 0 || artIndex >= len(inst.Record.Member.Arts) {
		return recoverableErr("perform_art: art index %d out of range", artIndex)
	}
	art := inst.Record.Member.Arts[artIndex]

	for _, m := range st.Mods.FindForCard(attacker, st.CardZoneResolver()) {
		if m.IsActive() && m.Kind == modifier.PreventAllArts {
			return recoverableErr("perform_art: arts are prevented on %v", attacker)
		}
	}
	if !canPayArtCost(st, b, attacker, art.Cost) {
		return recoverableErr("perform_art: %s's cost is not paid", art.Name)
	}

	ev := newEvaluator(ctx, st, logger, prompters, attacker, p, []card.Ref{attacker})
	if !ev.EvalCond(art.Condition) {
		return recoverableErr("perform_art: %s's condition is not met", art.Name)
	}

	if err := Dispatch(ctx, st, logger, prompters, trigger{kind: catalog.OnBeforePerformArt, origin: []card.Ref{attacker}, actor: p}); err != nil {
		return err
	}

	ev.log(log.GameEvent{Type: log.EventPerformArt, Player: int(p), Refs: []uint32{uint32(attacker), uint32(target)}, Details: art.Name})
	if art.Effect != nil {
		if err := ev.Run(art.Effect); err != nil && err != errSkipEffect {
			if rerr, ok := err.(*RuntimeError); !ok || rerr.Kind == Fatal {
				return err
			}
		}
	}
	if art.Damage > 0 {
		ev.dealDamage(target, art.Damage, art.Name)
	}
	st.Mods.Rest(attacker)

	return Dispatch(ctx, st, logger, prompters, trigger{kind: catalog.OnAfterPerformArt, origin: []card.Ref{attacker}, actor: p})
}

func isFrontLine(b *Board, ref card.Ref) bool {
	return contains(b.CenterStage, ref) || contains(b.Collab, ref)
}

// canPayArtCost checks attacker's art cost against its attached cheers,
// matching colored pips first against a cheer of the exact color, then any
// leftover cheer against Colorless pips — the same stricter interpretation
// used for baton-pass. Active AsArtCost/AsCheer modifiers on the attacker
// each contribute Amount wildcard pips that can stand in for any color,
// spent only once every real cheer that could cover a pip is exhausted.
func canPayArtCost(st *State, b *Board, attacker card.Ref, cost []catalog.Color) bool {
	if len(cost) == 0 {
		return true
	}
	cheers := b.AttachedTo(attacker)
	colors := make([]catalog.Color, 0, len(cheers))
	for _, ref := range cheers {
		inst := st.Instance(ref)
		if inst.IsCheer() {
			colors = append(colors, inst.Record.Cheer.Color)
		}
	}
	var wildcards int
	for _, m := range st.Mods.FindForCard(attacker, st.CardZoneResolver()) {
		if m.IsActive() && (m.Kind == modifier.AsArtCost || m.Kind == modifier.AsCheer) {
			wildcards += m.Amount
		}
	}

	used := make([]bool, len(colors))
	var colorless int
	for _, c := range cost {
		if c == catalog.Colorless {
			colorless++
			continue
		}
		matched := false
		for i, cc := range colors {
			if !used[i] && cc == c {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			if wildcards > 0 {
				wildcards--
				continue
			}
			return false
		}
	}
	for i := range colors {
		if !used[i] && colorless > 0 {
			used[i] = true
			colorless--
		}
	}
	if colorless > 0 && wildcards >= colorless {
		wildcards -= colorless
		colorless = 0
	}
	return colorless == 0
}
