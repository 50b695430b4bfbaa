package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// ActivateLeadSkill runs the active player's lead skill at index skillIndex
// as a main-step action: it checks the once-per-turn/once-per-game lock,
// evaluates the skill's condition, pays the holo-power cost from the top
// of the Holo-Power zone, runs its effect, then installs the
// PreventOshiSkill(skillIndex) lock for the rest of its allotted lifetime —
// ThisTurn for a Normal skill, ThisGame for a Special one.
func ActivateLeadSkill(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, skillIndex int) error {
	p := st.ActivePlayer
	b := st.Board(p)
	if len(b.Lead) == 0 {
		return recoverableErr("activate_lead_skill: no lead in play")
	}
	leadRef := b.Lead[0]
	inst := st.Instance(leadRef)
	if !inst.IsLead() {
		return fatalErr("activate_lead_skill: %v is not a lead card", leadRef)
	}
	if skillIndex < 0 || skillIndex >= len(inst.Record.Lead.Skills) {
		return recoverableErr("activate_lead_skill: index %d out of range", skillIndex)
	}
	skill := inst.Record.Lead.Skills[skillIndex]

	for _, m := range st.Mods.FindForCard(leadRef, st.CardZoneResolver()) {
		if m.IsActive() && m.Kind == modifier.PreventOshiSkill && m.Index == skillIndex {
			return recoverableErr("activate_lead_skill: %s already used this scope", skill.Name)
		}
	}

	ev := newEvaluator(ctx, st, logger, prompters, leadRef, p, []card.Ref{leadRef})
	if !ev.EvalCond(skill.Condition) {
		return recoverableErr("activate_lead_skill: %s's condition is not met", skill.Name)
	}
	if len(b.HoloPower) < skill.Cost {
		return recoverableErr("activate_lead_skill: %s costs %d holo-power, only %d available", skill.Name, skill.Cost, len(b.HoloPower))
	}
	for i := 0; i < skill.Cost; i++ {
		ref, _ := b.DrawTop(card.ZoneHoloPower)
		b.Place(card.ZoneArchive, ref, false)
	}

	ev.log(log.GameEvent{Type: log.EventActivateOshiSkill, Player: int(p), Refs: []uint32{uint32(leadRef)}, Details: skill.Name})
	if err := ev.Run(skill.Effect); err != nil && err != errSkipEffect {
		return err
	}

	life := modifier.ThisTurn()
	if skill.Kind == catalog.Special {
		life = modifier.Unlimited()
	}
	st.Mods.AddCard(leadRef, modifier.Modifier{Kind: modifier.PreventOshiSkill, Index: skillIndex, Life: life})
	return nil
}
