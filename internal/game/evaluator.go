package game

import (
	"context"
	"fmt"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/dsl"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// bound is a $variable's value: either a card set or a number, never both.
// roll_dice/select_number_between bind numbers; select_one/select_any/
// select_up_to/from/attached/filter bind card sets.
type bound struct {
	isNum bool
	num   int
	cards []card.Ref
}

// evaluator interprets one parsed effect against live match state. It is
// built fresh for every effect resolution — card text never closes over
// match state between invocations.
type evaluator struct {
	ctx       context.Context
	st        *State
	logger    log.EventLogger
	prompters map[card.Player]Prompter

	thisCard    card.Ref // the card whose effect is resolving
	actor       card.Player
	eventOrigin []card.Ref
	vars        map[string]bound
	candidate   card.Ref // set while evaluating a filter/select/any/all predicate
	hasCand     bool
}

func newEvaluator(ctx context.Context, st *State, logger log.EventLogger, prompters map[card.Player]Prompter, thisCard card.Ref, actor card.Player, origin []card.Ref) *evaluator {
	return &evaluator{
		ctx: ctx, st: st, logger: logger, prompters: prompters,
		thisCard: thisCard, actor: actor, eventOrigin: origin,
		vars: make(map[string]bound),
	}
}

// Run evaluates every top-level action in effect in order, stopping at the
// first error. Fatal errors (see errors.go) propagate as-is; a recoverable
// error is returned too — the caller decides whether to roll back only this
// effect or the whole match.
func (ev *evaluator) Run(effect *dsl.Effect) error {
	if effect == nil {
		return nil
	}
	for _, node := range effect.Nodes {
		if err := ev.evalAction(node); err != nil {
			return err
		}
	}
	return nil
}

// EvalCond evaluates a standalone Condition field (an art's, ability's, or
// lead skill's) — a *dsl.Effect whose top-level nodes are implicitly ANDed,
// the way a card's condition text is one predicate per line. A nil or empty
// Condition always passes.
func (ev *evaluator) EvalCond(cond *dsl.Effect) bool {
	if cond == nil {
		return true
	}
	for _, node := range cond.Nodes {
		if !ev.evalCond(node) {
			return false
		}
	}
	return true
}

func (ev *evaluator) prompter(p card.Player) Prompter {
	if pr, ok := ev.prompters[p]; ok {
		return pr
	}
	return &RandomPrompter{RNG: ev.st.RNG}
}

func (ev *evaluator) log(e log.GameEvent) {
	e.Turn = ev.st.Turn
	if ev.logger != nil {
		ev.logger.Log(e)
	}
}

// --- Actions ---

func (ev *evaluator) evalAction(e *dsl.Expr) error {
	switch e.Op {
	case "let":
		name := e.Args[0].Op
		ev.vars[name] = ev.evalAny(e.Args[1])
		return nil

	case "if":
		if ev.evalCond(e.Args[0]) {
			for _, a := range e.Args[1].Args {
				if err := ev.evalAction(a); err != nil {
					return err
				}
			}
		}
		return nil

	case "draw":
		n := ev.evalNumber(e.Args[0])
		return ev.drawCards(ev.actor, n)

	case "roll_dice":
		ev.rollDice()
		return nil

	case "reveal":
		n := ev.evalNumber(e.Args[0])
		ev.revealTop(ev.actor, n)
		return nil

	case "send_to":
		dest := ev.zoneKeyword(e.Args[0].Op)
		refs := ev.evalCardSet(e.Args[1])
		return ev.sendTo(dest, refs, false)

	case "send_to_bottom":
		dest := ev.zoneKeyword(e.Args[0].Op)
		refs := ev.evalCardSet(e.Args[1])
		return ev.sendTo(dest, refs, true)

	case "attach_cards":
		children := ev.evalCardSet(e.Args[0])
		parents := ev.evalCardSet(e.Args[1])
		if len(parents) == 0 {
			return recoverableErr("attach_cards: no target to attach to")
		}
		parent := parents[0]
		for _, c := range children {
			owner, _, _ := ev.st.FindZone(parent)
			board := ev.st.Board(owner)
			board.Attach(c, parent)
			ev.log(log.GameEvent{Type: log.EventZoneToAttach, Refs: []uint32{uint32(c), uint32(parent)}, Details: "attach"})
		}
		return nil

	case "add_mod":
		target := ev.evalCardSet(e.Args[0])
		mod, life := ev.evalModKind(e.Args[1], e.Args[2])
		for _, ref := range target {
			if mod.Kind == modifier.DamageMarker {
				ev.st.Mods.AddDamage(ref, mod.Amount)
			} else {
				ev.st.Mods.AddCard(ref, modifier.Modifier{Kind: mod.Kind, Amount: mod.Amount, Index: mod.Index, Life: life})
			}
			ev.log(log.GameEvent{Type: log.EventAddCardModifiers, Refs: []uint32{uint32(ref)}, Details: mod.Kind.String()})
		}
		return nil

	case "add_zone_mod":
		zone := ev.zoneKeyword(e.Args[0].Op)
		mod, life, cond := ev.evalZoneModKind(e.Args[1], e.Args[2])
		ev.st.Mods.AddZone(ev.actor, zone, modifier.Modifier{Kind: mod.Kind, Amount: mod.Amount, Index: mod.Index, Condition: cond, Life: life})
		ev.log(log.GameEvent{Type: log.EventAddZoneModifiers, Zone: zone.String(), Details: mod.Kind.String()})
		return nil

	case "add_global_mod":
		player := ev.evalPlayer(e.Args[0])
		mod, life := ev.evalModKind(e.Args[1], e.Args[2])
		ev.st.Mods.AddPlayer(player, modifier.Modifier{Kind: mod.Kind, Amount: mod.Amount, Index: mod.Index, Life: life})
		ev.log(log.GameEvent{Type: log.EventAddZoneModifiers, Details: "global:" + mod.Kind.String()})
		return nil

	case "deal_damage":
		targets := ev.evalCardSet(e.Args[0])
		amount := ev.evalNumber(e.Args[1])
		for _, t := range targets {
			ev.dealDamage(t, amount, "deal_damage")
		}
		return nil

	case "deal_special_damage":
		targets := ev.evalCardSet(e.Args[0])
		amount := ev.evalNumber(e.Args[1])
		for _, t := range targets {
			ev.dealDamage(t, amount, "deal_special_damage")
		}
		return nil

	case "knock_out":
		targets := ev.evalCardSet(e.Args[0])
		for _, t := range targets {
			ev.knockOut(t)
		}
		return nil

	case "shuffle":
		ev.shuffle(ev.zoneKeyword(e.Args[0].Op))
		return nil

	case "optional_activate":
		yes, err := ev.prompter(ev.actor).Confirm(ev.ctx, "activate this effect?")
		if err != nil {
			return recoverableErr("optional_activate: %v", err)
		}
		if !yes {
			return errSkipEffect
		}
		return nil

	default:
		return fatalErr("evaluator: unknown action %q", e.Op)
	}
}

// errSkipEffect signals that an optional_activate was declined; the caller
// (art/ability resolution) treats this the same as a no-op effect.
var errSkipEffect = fmt.Errorf("game: effect declined")

// --- Value evaluation ---

// evalAny dispatches to evalCardSet or evalNumber by inspecting the
// expression's operator against the keyword tables — the DSL's grammar is
// uniform, so only the keyword tells us which result shape a node produces.
func (ev *evaluator) evalAny(e *dsl.Expr) bound {
	if e.Kind == dsl.KindLiteral {
		return bound{isNum: true, num: e.Num}
	}
	switch e.Op {
	case "roll_dice", "select_number_between", "count", "+", "-", "*", "dmg_amount":
		return bound{isNum: true, num: ev.evalNumber(e)}
	default:
		return bound{cards: ev.evalCardSet(e)}
	}
}

func (ev *evaluator) evalNumber(e *dsl.Expr) int {
	switch e.Kind {
	case dsl.KindLiteral:
		return e.Num
	case dsl.KindVar:
		b, ok := ev.vars[e.Op]
		if !ok || !b.isNum {
			panic(fmt.Sprintf("game: %s is not bound to a number", e.Op))
		}
		return b.num
	}
	switch e.Op {
	case "roll_dice":
		return ev.rollDice()
	case "select_number_between":
		lo, hi := ev.evalNumber(e.Args[0]), ev.evalNumber(e.Args[1])
		n, err := ev.prompter(ev.actor).SelectNumber(ev.ctx, "choose a number", lo, hi)
		if err != nil {
			return lo
		}
		return n
	case "count":
		return len(ev.evalCardSet(e.Args[0]))
	case "+":
		return ev.evalNumber(e.Args[0]) + ev.evalNumber(e.Args[1])
	case "-":
		return ev.evalNumber(e.Args[0]) - ev.evalNumber(e.Args[1])
	case "*":
		return ev.evalNumber(e.Args[0]) * ev.evalNumber(e.Args[1])
	case "dmg_amount":
		ref := ev.thisCard
		if ev.hasCand {
			ref = ev.candidate
		}
		return ev.st.Mods.DamageCount(ref)
	default:
		panic(fmt.Sprintf("game: %q is not a number expression", e.Op))
	}
}

func (ev *evaluator) evalPlayer(e *dsl.Expr) card.Player {
	switch e.Op {
	case "you":
		return ev.actor
	case "opponent":
		return ev.actor.Opponent()
	default:
		panic(fmt.Sprintf("game: %q is not a player expression", e.Op))
	}
}

// evalCardSet evaluates a node that produces a set of card refs.
func (ev *evaluator) evalCardSet(e *dsl.Expr) []card.Ref {
	if e.Kind == dsl.KindVar {
		b, ok := ev.vars[e.Op]
		if !ok || b.isNum {
			panic(fmt.Sprintf("game: %s is not bound to a card set", e.Op))
		}
		return b.cards
	}
	switch e.Op {
	case "this_card":
		return []card.Ref{ev.thisCard}
	case "attach_target":
		owner, _, ok := ev.st.FindZone(ev.thisCard)
		if !ok {
			return nil
		}
		if parent, ok := ev.st.Board(owner).ParentOf(ev.thisCard); ok {
			return []card.Ref{parent}
		}
		return nil
	case "event_origin":
		return ev.eventOrigin
	case "you":
		return ev.playerZoneCards(ev.actor, card.ZoneAll)
	case "opponent":
		return ev.playerZoneCards(ev.actor.Opponent(), card.ZoneAll)
	case "main_stage", "center_stage":
		return ev.st.Board(ev.actor).Zone(card.ZoneCenterStage)
	case "back_stage":
		return ev.st.Board(ev.actor).Zone(card.ZoneBackStage)
	case "stage":
		return ev.st.Board(ev.actor).Stage()
	case "opponent_center_stage":
		return ev.st.Board(ev.actor.Opponent()).Zone(card.ZoneCenterStage)
	case "opponent_back_stage":
		return ev.st.Board(ev.actor.Opponent()).Zone(card.ZoneBackStage)
	case "opponent_stage":
		return ev.st.Board(ev.actor.Opponent()).Stage()
	case "hand":
		return ev.st.Board(ev.actor).Zone(card.ZoneHand)
	case "archive":
		return ev.st.Board(ev.actor).Zone(card.ZoneArchive)
	case "main_deck":
		return ev.st.Board(ev.actor).Zone(card.ZoneMainDeck)
	case "cheer_deck":
		return ev.st.Board(ev.actor).Zone(card.ZoneCheerDeck)
	case "holo_power":
		return ev.st.Board(ev.actor).Zone(card.ZoneHoloPower)
	case "from":
		return ev.evalCardSet(e.Args[0])
	case "from_top":
		n := ev.evalNumber(e.Args[0])
		zone := ev.evalCardSet(e.Args[1])
		if n < len(zone) {
			zone = zone[:n]
		}
		return zone
	case "attached":
		parents := ev.evalCardSet(e.Args[0])
		if len(parents) == 0 {
			return nil
		}
		owner, _, _ := ev.st.FindZone(parents[0])
		return ev.st.Board(owner).AttachedTo(parents[0])
	case "filter":
		set := ev.evalCardSet(e.Args[0])
		return ev.filterBy(set, e.Args[1])
	case "select_one":
		set := ev.filterBy(ev.evalCardSet(e.Args[0]), e.Args[1])
		picked, _ := ev.prompter(ev.actor).SelectCards(ev.ctx, "select one", set, 1, 1)
		return picked
	case "select_up_to":
		n := ev.evalNumber(e.Args[0])
		set := ev.filterBy(ev.evalCardSet(e.Args[1]), e.Args[2])
		picked, _ := ev.prompter(ev.actor).SelectCards(ev.ctx, "select up to", set, 0, n)
		return picked
	case "select_any":
		set := ev.filterBy(ev.evalCardSet(e.Args[0]), e.Args[1])
		picked, _ := ev.prompter(ev.actor).SelectCards(ev.ctx, "select any", set, 0, len(set))
		return picked
	default:
		panic(fmt.Sprintf("game: %q is not a card-set expression", e.Op))
	}
}

// filterBy evaluates pred against every member of set with ev.candidate
// bound in turn, keeping the ones that satisfy it.
func (ev *evaluator) filterBy(set []card.Ref, pred *dsl.Expr) []card.Ref {
	prevCand, prevHas := ev.candidate, ev.hasCand
	defer func() { ev.candidate, ev.hasCand = prevCand, prevHas }()

	var out []card.Ref
	for _, ref := range set {
		ev.candidate, ev.hasCand = ref, true
		if ev.evalCond(pred) {
			out = append(out, ref)
		}
	}
	return out
}

func (ev *evaluator) playerZoneCards(p card.Player, _ card.Zone) []card.Ref {
	b := ev.st.Board(p)
	var out []card.Ref
	for _, z := range []card.Zone{
		card.ZoneLead, card.ZoneCenterStage, card.ZoneCollab, card.ZoneBackStage,
		card.ZoneHand, card.ZoneArchive, card.ZoneMainDeck, card.ZoneCheerDeck, card.ZoneHoloPower, card.ZoneLife,
	} {
		out = append(out, b.Zone(z)...)
	}
	return out
}

// --- Conditions ---

func (ev *evaluator) evalCond(e *dsl.Expr) bool {
	switch e.Op {
	case "and":
		return ev.evalCond(e.Args[0]) && ev.evalCond(e.Args[1])
	case "or":
		return ev.evalCond(e.Args[0]) || ev.evalCond(e.Args[1])
	case "not":
		return !ev.evalCond(e.Args[0])
	case "==":
		return ev.evalNumber(e.Args[0]) == ev.evalNumber(e.Args[1])
	case "<=":
		return ev.evalNumber(e.Args[0]) <= ev.evalNumber(e.Args[1])
	case ">=":
		return ev.evalNumber(e.Args[0]) >= ev.evalNumber(e.Args[1])
	case "<":
		return ev.evalNumber(e.Args[0]) < ev.evalNumber(e.Args[1])
	case ">":
		return ev.evalNumber(e.Args[0]) > ev.evalNumber(e.Args[1])
	case "is_even":
		return ev.evalNumber(e.Args[0])%2 == 0
	case "is_odd":
		return ev.evalNumber(e.Args[0])%2 != 0
	case "any":
		set := ev.evalCardSet(e.Args[0])
		for _, ref := range set {
			if ev.condForCandidate(ref, e.Args[1]) {
				return true
			}
		}
		return false
	case "all":
		set := ev.evalCardSet(e.Args[0])
		for _, ref := range set {
			if !ev.condForCandidate(ref, e.Args[1]) {
				return false
			}
		}
		return true
	case "exist", "exists":
		return len(ev.evalCardSet(e.Args[0])) > 0
	case "is_not":
		other := ev.evalCardSet(e.Args[0])
		return len(other) == 0 || ev.curCandidate() != other[0]
	case "attached_to":
		parent := ev.evalCardSet(e.Args[0])
		if len(parent) == 0 {
			return false
		}
		owner, _, ok := ev.st.FindZone(parent[0])
		if !ok {
			return false
		}
		got, ok := ev.st.Board(owner).ParentOf(ev.curCandidate())
		return ok && got == parent[0]
	case "attach_target":
		targets := ev.evalCardSet(&dsl.Expr{Kind: dsl.KindAtom, Op: "attach_target"})
		if len(targets) == 0 {
			return false
		}
		return ev.condForCandidate(targets[0], e.Args[0])
	case "attached":
		return len(ev.evalCardSet(e)) > 0
	case "yours":
		return ev.st.Owner(ev.curCandidate()) == ev.actor
	case "has_cheers":
		owner, _, ok := ev.st.FindZone(ev.curCandidate())
		if !ok {
			return false
		}
		return len(ev.st.Board(owner).AttachedTo(ev.curCandidate())) > 0
	case "is_member":
		return ev.st.Instance(ev.curCandidate()).IsMember()
	case "is_cheer":
		return ev.st.Instance(ev.curCandidate()).IsCheer()
	case "is_support_limited":
		inst := ev.st.Instance(ev.curCandidate())
		return inst.IsSupport() && inst.Record.Support.Limited
	case "is_attribute_buzz":
		inst := ev.st.Instance(ev.curCandidate())
		return inst.IsMember() && inst.Record.Member.Buzz
	case "is_color_white":
		return ev.hasColor(catalog.White)
	case "is_color_green":
		return ev.hasColor(catalog.Green)
	case "is_color_red":
		return ev.hasColor(catalog.Red)
	case "is_color_blue":
		return ev.hasColor(catalog.Blue)
	case "is_color_purple":
		return ev.hasColor(catalog.Purple)
	case "is_color_yellow":
		return ev.hasColor(catalog.Yellow)
	case "is_level_debut":
		return ev.levelIs(catalog.Debut)
	case "is_level_first":
		return ev.levelIs(catalog.First)
	case "is_level_second":
		return ev.levelIs(catalog.Second)
	case "is_level_spot":
		return ev.levelIs(catalog.Spot)
	case "filter":
		return len(ev.evalCardSet(e)) > 0
	}
	if len(e.Op) > len("is_named_") && e.Op[:len("is_named_")] == "is_named_" {
		want := e.Op[len("is_named_"):]
		return ev.st.Instance(ev.curCandidate()).NameKey() == want
	}
	panic(fmt.Sprintf("game: %q is not a condition expression", e.Op))
}

func (ev *evaluator) curCandidate() card.Ref {
	if ev.hasCand {
		return ev.candidate
	}
	return ev.thisCard
}

func (ev *evaluator) condForCandidate(ref card.Ref, pred *dsl.Expr) bool {
	prevCand, prevHas := ev.candidate, ev.hasCand
	ev.candidate, ev.hasCand = ref, true
	defer func() { ev.candidate, ev.hasCand = prevCand, prevHas }()
	return ev.evalCond(pred)
}

func (ev *evaluator) hasColor(c catalog.Color) bool {
	return ev.st.Instance(ev.curCandidate()).HasColor(c)
}

func (ev *evaluator) levelIs(l catalog.Level) bool {
	inst := ev.st.Instance(ev.curCandidate())
	return inst.IsMember() && inst.Record.Member.Level == l
}

// --- Modifier-kind / lifetime parsing ---

type parsedMod struct {
	Kind   modifier.Kind
	Amount int
	Index  int
}

func (ev *evaluator) evalModKind(kindExpr, lifeExpr *dsl.Expr) (parsedMod, modifier.Lifetime) {
	m, _ := ev.modKind(kindExpr)
	return m, ev.lifetime(lifeExpr)
}

func (ev *evaluator) evalZoneModKind(kindExpr, lifeExpr *dsl.Expr) (parsedMod, modifier.Lifetime, *dsl.Expr) {
	if kindExpr.Op == "when" {
		m, _ := ev.modKind(kindExpr.Args[1])
		return m, ev.lifetime(lifeExpr), kindExpr.Args[0]
	}
	m, _ := ev.modKind(kindExpr)
	return m, ev.lifetime(lifeExpr), nil
}

func (ev *evaluator) modKind(e *dsl.Expr) (parsedMod, *dsl.Expr) {
	switch e.Op {
	case "damage_marker":
		return parsedMod{Kind: modifier.DamageMarker, Amount: ev.evalNumber(e.Args[0])}, nil
	case "rested":
		return parsedMod{Kind: modifier.Rested}, nil
	case "prevent_all_arts":
		return parsedMod{Kind: modifier.PreventAllArts}, nil
	case "prevent_oshi_skill":
		return parsedMod{Kind: modifier.PreventOshiSkill, Index: ev.evalNumber(e.Args[0])}, nil
	case "prevent_collab":
		return parsedMod{Kind: modifier.PreventCollab}, nil
	case "prevent_bloom":
		return parsedMod{Kind: modifier.PreventBloom}, nil
	case "prevent_limited_support":
		return parsedMod{Kind: modifier.PreventLimitedSupport}, nil
	case "deal_more_dmg":
		return parsedMod{Kind: modifier.DealMoreDamage, Amount: ev.evalNumber(e.Args[0])}, nil
	case "receive_more_dmg":
		return parsedMod{Kind: modifier.ReceiveMoreDamage, Amount: ev.evalNumber(e.Args[0])}, nil
	case "more_dmg":
		return parsedMod{Kind: modifier.MoreDamage, Amount: ev.evalNumber(e.Args[0])}, nil
	case "as_art_cost":
		return parsedMod{Kind: modifier.AsArtCost, Amount: ev.evalNumber(e.Args[0])}, nil
	case "as_cheer":
		return parsedMod{Kind: modifier.AsCheer, Amount: ev.evalNumber(e.Args[0])}, nil
	case "no_life_loss":
		return parsedMod{Kind: modifier.NoLifeLoss}, nil
	case "next_dice_roll":
		return parsedMod{Kind: modifier.NextDiceRoll, Amount: ev.evalNumber(e.Args[0])}, nil
	default:
		panic(fmt.Sprintf("game: %q is not a modifier kind", e.Op))
	}
}

func (ev *evaluator) lifetime(e *dsl.Expr) modifier.Lifetime {
	switch e.Op {
	case "this_turn":
		return modifier.ThisTurn()
	case "this_game", "until_removed":
		return modifier.Unlimited()
	case "this_art", "this_effect":
		return modifier.UntilEffectEnds()
	case "while_attached":
		refs := ev.evalCardSet(e.Args[0])
		if len(refs) == 0 {
			return modifier.Unlimited()
		}
		return modifier.WhileAttached(refs[0])
	default:
		panic(fmt.Sprintf("game: %q is not a lifetime", e.Op))
	}
}

func (ev *evaluator) zoneKeyword(name string) card.Zone {
	switch name {
	case "center_stage", "opponent_center_stage":
		return card.ZoneCenterStage
	case "back_stage", "opponent_back_stage":
		return card.ZoneBackStage
	case "collab":
		return card.ZoneCollab
	case "hand":
		return card.ZoneHand
	case "archive":
		return card.ZoneArchive
	case "main_deck":
		return card.ZoneMainDeck
	case "cheer_deck":
		return card.ZoneCheerDeck
	case "holo_power":
		return card.ZoneHoloPower
	case "life":
		return card.ZoneLife
	case "all":
		return card.ZoneAll
	default:
		panic(fmt.Sprintf("game: %q is not a zone", name))
	}
}
