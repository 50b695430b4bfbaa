package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/loadout"
	"github.com/oshifan/hocgsim/internal/log"
)

// Director owns one match's authoritative State and drives the turn
// state machine: Setup → Mulligan → (StartTurn → Reset → Draw → Cheer →
// Main → Performance → End)*, with free-form main/performance action
// menus at each player's discretion.
type Director struct {
	State     *State
	Logger    log.EventLogger
	Prompters map[card.Player]Prompter
}

// NewMatch validates both loadouts, runs Setup and the opening mulligans,
// and returns a Director ready to Run.
func NewMatch(ctx context.Context, cat *catalog.Catalog, loadouts [2]*loadout.Loadout, seed int64, prompters map[card.Player]Prompter, logger log.EventLogger) (*Director, error) {
	st, err := Setup(ctx, cat, loadouts, seed, prompters, logger)
	if err != nil {
		return nil, err
	}
	return &Director{State: st, Logger: logger, Prompters: prompters}, nil
}

func (d *Director) logEvent(e log.GameEvent) {
	e.Seq = d.State.nextSeq()
	e.Turn = d.State.Turn
	e.Step = d.State.Step.String()
	if d.Logger != nil {
		d.Logger.Log(e)
	}
	for _, pr := range d.Prompters {
		_ = pr.Notify(context.Background(), e)
	}
}

// Run drives turns to completion, stopping as soon as State.Outcome is set.
func (d *Director) Run(ctx context.Context) (*Outcome, error) {
	for d.State.Outcome == nil {
		if err := d.RunTurn(ctx); err != nil {
			return nil, err
		}
	}
	return d.State.Outcome, nil
}

// RunTurn drives exactly one player's turn — Reset through End — advancing
// ActivePlayer at the end. It stops early, leaving State.Outcome set, the
// moment any step ends the match.
func (d *Director) RunTurn(ctx context.Context) error {
	st := d.State
	d.logEvent(log.GameEvent{Type: log.EventStartTurn, Player: int(st.ActivePlayer)})

	steps := []func() error{
		func() error { d.enterStep(StepReset); runReset(st, d.logEvent); d.exitStep(StepReset); return nil },
		func() error {
			d.enterStep(StepDraw)
			err := runDraw(ctx, st, d.Logger, d.Prompters)
			d.exitStep(StepDraw)
			return err
		},
		func() error { d.enterStep(StepCheer); runCheer(ctx, st, d.Prompters, d.logEvent); d.exitStep(StepCheer); return nil },
		func() error { d.enterStep(StepMain); d.runMain(ctx); d.exitStep(StepMain); return nil },
		func() error {
			d.enterStep(StepPerformance)
			d.runPerformance(ctx)
			d.exitStep(StepPerformance)
			return nil
		},
		func() error { d.enterStep(StepEnd); runEnd(st); d.exitStep(StepEnd); return nil },
	}

	for _, run := range steps {
		if err := run(); err != nil {
			return err
		}
		if st.Outcome != nil {
			d.logEvent(log.GameEvent{Type: log.EventGameOver, Player: -1, Details: st.Outcome.Reason.String()})
			return nil
		}
	}
	return nil
}

func (d *Director) enterStep(s Step) {
	d.State.Step = s
	d.logEvent(log.GameEvent{Type: log.EventEnterStep, Player: int(d.State.ActivePlayer)})
}

func (d *Director) exitStep(s Step) {
	d.logEvent(log.GameEvent{Type: log.EventExitStep, Player: int(d.State.ActivePlayer)})
}

// runMain offers the active player the main-step action menu in a fixed
// order — support, collab, bloom, lead skill, baton-pass — looping until
// they decline every offer or run out of legal ones. Each action kind is
// represented as a yes/no Confirm gate followed by the SelectCards/
// SelectNumber prompts it specifically needs, since Prompter deliberately
// keeps a small, card/number-oriented surface rather than a bespoke
// per-action-kind request type.
func (d *Director) runMain(ctx context.Context) {
	st := d.State
	p := st.ActivePlayer
	pr := promptFor(d.Prompters, p, st.RNG)

	for {
		acted := false

		if d.offerSupport(ctx, pr) {
			acted = true
		}
		if d.offerCollab(ctx, pr) {
			acted = true
		}
		if d.offerBloom(ctx, pr) {
			acted = true
		}
		if d.offerLeadSkill(ctx, pr) {
			acted = true
		}
		if d.offerBatonPass(ctx, pr) {
			acted = true
		}
		if st.Outcome != nil {
			return
		}
		if !acted {
			return
		}
		done, err := pr.Confirm(ctx, "done with the main step?")
		if err != nil || done {
			return
		}
	}
}

func (d *Director) offerSupport(ctx context.Context, pr Prompter) bool {
	st := d.State
	b := st.Board(st.ActivePlayer)
	var supports []card.Ref
	for _, ref := range b.Hand {
		if st.Instance(ref).IsSupport() {
			supports = append(supports, ref)
		}
	}
	if len(supports) == 0 {
		return false
	}
	play, err := pr.Confirm(ctx, "play a support card?")
	if err != nil || !play {
		return false
	}
	picked, err := pr.SelectCards(ctx, "choose a support card to play", supports, 1, 1)
	if err != nil || len(picked) == 0 {
		return false
	}
	if err := PlaySupportCard(ctx, st, d.Logger, d.Prompters, picked[0]); err != nil {
		if !isRecoverable(err) {
			st.Outcome = &Outcome{Reason: ReasonParticipantDisconnected}
		}
		return false
	}
	return true
}

func (d *Director) offerCollab(ctx context.Context, pr Prompter) bool {
	st := d.State
	b := st.Board(st.ActivePlayer)
	if len(b.Collab) > 0 || len(b.BackStage) == 0 {
		return false
	}
	doIt, err := pr.Confirm(ctx, "collab a back stage member?")
	if err != nil || !doIt {
		return false
	}
	picked, err := pr.SelectCards(ctx, "choose a member to collab", b.BackStage, 1, 1)
	if err != nil || len(picked) == 0 {
		return false
	}
	if err := Collab(ctx, st, d.Logger, d.Prompters, picked[0]); err != nil {
		if !isRecoverable(err) {
			st.Outcome = &Outcome{Reason: ReasonParticipantDisconnected}
		}
		return false
	}
	return true
}

func (d *Director) offerBloom(ctx context.Context, pr Prompter) bool {
	st := d.State
	b := st.Board(st.ActivePlayer)
	parents := b.Stage()
	if len(parents) == 0 {
		return false
	}
	doIt, err := pr.Confirm(ctx, "bloom a member?")
	if err != nil || !doIt {
		return false
	}
	parentPicked, err := pr.SelectCards(ctx, "choose the member to bloom", parents, 1, 1)
	if err != nil || len(parentPicked) == 0 {
		return false
	}
	var candidates []card.Ref
	for _, ref := range b.Hand {
		inst := st.Instance(ref)
		if inst.IsMember() && inst.NameKey() == st.Instance(parentPicked[0]).NameKey() {
			candidates = append(candidates, ref)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	bloomPicked, err := pr.SelectCards(ctx, "choose the bloom card", candidates, 1, 1)
	if err != nil || len(bloomPicked) == 0 {
		return false
	}
	if err := Bloom(ctx, st, d.Logger, d.Prompters, parentPicked[0], bloomPicked[0]); err != nil {
		if !isRecoverable(err) {
			st.Outcome = &Outcome{Reason: ReasonParticipantDisconnected}
		}
		return false
	}
	return true
}

func (d *Director) offerLeadSkill(ctx context.Context, pr Prompter) bool {
	st := d.State
	b := st.Board(st.ActivePlayer)
	if len(b.Lead) == 0 {
		return false
	}
	inst := st.Instance(b.Lead[0])
	if !inst.IsLead() || len(inst.Record.Lead.Skills) == 0 {
		return false
	}
	doIt, err := pr.Confirm(ctx, "activate a lead skill?")
	if err != nil || !doIt {
		return false
	}
	idx, err := pr.SelectNumber(ctx, "which skill?", 0, len(inst.Record.Lead.Skills)-1)
	if err != nil {
		return false
	}
	if err := ActivateLeadSkill(ctx, st, d.Logger, d.Prompters, idx); err != nil {
		if !isRecoverable(err) {
			st.Outcome = &Outcome{Reason: ReasonParticipantDisconnected}
		}
		return false
	}
	return true
}

func (d *Director) offerBatonPass(ctx context.Context, pr Prompter) bool {
	st := d.State
	b := st.Board(st.ActivePlayer)
	if len(b.CenterStage) == 0 || len(b.BackStage) == 0 {
		return false
	}
	doIt, err := pr.Confirm(ctx, "baton-pass?")
	if err != nil || !doIt {
		return false
	}
	backPicked, err := pr.SelectCards(ctx, "choose the back stage member to promote", b.BackStage, 1, 1)
	if err != nil || len(backPicked) == 0 {
		return false
	}
	centerRef := b.CenterStage[0]
	cheers := b.AttachedTo(centerRef)
	cost := st.Instance(centerRef).Record.Member.BatonPassCost
	paid, err := pr.SelectCards(ctx, "choose cheers to pay the baton-pass cost", cheers, len(cost), len(cost))
	if err != nil {
		return false
	}
	if err := BatonPass(ctx, st, d.Logger, d.Prompters, centerRef, backPicked[0], paid); err != nil {
		if !isRecoverable(err) {
			st.Outcome = &Outcome{Reason: ReasonParticipantDisconnected}
		}
		return false
	}
	return true
}

// runPerformance offers each unrested front-line member, in Center-then-
// Collab order, the choice to attack with one of its arts against the
// opponent's Center Stage member.
func (d *Director) runPerformance(ctx context.Context) {
	st := d.State
	p := st.ActivePlayer
	pr := promptFor(d.Prompters, p, st.RNG)
	b := st.Board(p)

	attackers := append([]card.Ref{}, b.CenterStage...)
	attackers = append(attackers, b.Collab...)

	for _, attacker := range attackers {
		if st.Outcome != nil {
			return
		}
		if st.Mods.IsRested(attacker) {
			continue
		}
		inst := st.Instance(attacker)
		if !inst.IsMember() || len(inst.Record.Member.Arts) == 0 {
			continue
		}
		doIt, err := pr.Confirm(ctx, "attack with this member?")
		if err != nil || !doIt {
			continue
		}
		idx, err := pr.SelectNumber(ctx, "which art?", 0, len(inst.Record.Member.Arts)-1)
		if err != nil {
			continue
		}
		opp := st.Board(p.Opponent())
		if len(opp.CenterStage) == 0 {
			continue
		}
		if err := PerformArt(ctx, st, d.Logger, d.Prompters, attacker, idx, opp.CenterStage[0]); err != nil {
			if !isRecoverable(err) {
				st.Outcome = &Outcome{Reason: ReasonParticipantDisconnected}
				return
			}
		}
	}
}

func isRecoverable(err error) bool {
	rerr, ok := err.(*RuntimeError)
	return ok && rerr.Kind == Recoverable
}
