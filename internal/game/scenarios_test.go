package game

import (
	"context"
	"testing"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/loadout"
	"github.com/oshifan/hocgsim/internal/log"
	"github.com/oshifan/hocgsim/internal/modifier"
)

// scriptedParticipant is a fluent builder over BufferedPrompter: each With*
// call queues one more scripted answer, consumed in call order by whatever
// Prompter method the evaluator or director reaches next.
type scriptedParticipant struct {
	BufferedPrompter
}

func newScriptedParticipant() *scriptedParticipant {
	return &scriptedParticipant{}
}

func (p *scriptedParticipant) WithCards(refs ...card.Ref) *scriptedParticipant {
	p.Cards = append(p.Cards, refs)
	return p
}

func (p *scriptedParticipant) WithNumber(n int) *scriptedParticipant {
	p.Numbers = append(p.Numbers, n)
	return p
}

func (p *scriptedParticipant) WithYes(answer bool) *scriptedParticipant {
	p.Yes = append(p.Yes, answer)
	return p
}

// buildTestCatalog returns the built-in card set plus a few test-only
// entries: a high-HP dummy target (so an exact-damage assertion never runs
// into DamageCap's low ceiling for ordinary HP values) and some extra
// filler numbers for building a legal 50-card main deck under the 4-copy
// limit without touching any of the seeded scenario cards.
func buildTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	records := append([]*catalog.Record{}, catalog.Builtin()...)
	records = append(records, &catalog.Record{
		Number: "TEST-DUMMY",
		Kind:   catalog.KindMember,
		Member: &catalog.MemberData{
			Name: "Target Dummy",
			HP:   2000,
			Level: catalog.Debut,
			Arts: []catalog.Art{{Name: "Poke", Damage: 1}},
		},
	})
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		records = append(records, &catalog.Record{
			Number: "TEST-FILLER-" + n,
			Kind:   catalog.KindMember,
			Member: &catalog.MemberData{
				Name:   "Filler " + n,
				Colors: []catalog.Color{catalog.Colorless},
				HP:     40,
				Level:  catalog.Debut,
				Arts:   []catalog.Art{{Name: "Tap", Damage: 10}},
			},
		})
	}
	cat, err := catalog.New(records)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	return cat
}

func mustRegister(t *testing.T, st *State, p card.Player, number string) card.Ref {
	t.Helper()
	ref, err := st.RegisterCard(p, number)
	if err != nil {
		t.Fatalf("RegisterCard(%s) failed: %v", number, err)
	}
	return ref
}

// --- "Replacement" (Tokino Sora lead, skill 0) ---

func TestReplacementMovesAttachedCheerToAnotherStageMember(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 1)
	p0 := card.PlayerOne
	b := st.Board(p0)
	st.ActivePlayer = p0

	leadRef := mustRegister(t, st, p0, "hSD01-001")
	b.Place(card.ZoneLead, leadRef, false)

	centerRef := mustRegister(t, st, p0, "FILLER-MEM-01")
	b.Place(card.ZoneCenterStage, centerRef, false)
	backRef := mustRegister(t, st, p0, "FILLER-MEM-02")
	b.Place(card.ZoneBackStage, backRef, false)

	cheerRef := mustRegister(t, st, p0, "FILLER-CHEER-01")
	b.Attach(cheerRef, centerRef)

	holoRef := mustRegister(t, st, p0, "FILLER-CHEER-02")
	b.Place(card.ZoneHoloPower, holoRef, false)

	participant := newScriptedParticipant().WithCards(centerRef).WithCards(cheerRef).WithCards(backRef)
	prompters := map[card.Player]Prompter{p0: participant}
	logger := log.NewMemoryLogger()

	if err := ActivateLeadSkill(context.Background(), st, logger, prompters, 0); err != nil {
		t.Fatalf("ActivateLeadSkill failed: %v", err)
	}

	if parent, ok := b.ParentOf(cheerRef); !ok || parent != backRef {
		t.Fatalf("cheer parent = (%v, %v), want (%v, true)", parent, ok, backRef)
	}

	locked := false
	for _, m := range st.Mods.FindForCard(leadRef, st.CardZoneResolver()) {
		if m.Kind == modifier.PreventOshiSkill && m.Index == 0 && m.IsActive() {
			locked = true
		}
	}
	if !locked {
		t.Errorf("lead skill 0 should carry an active PreventOshiSkill lock after use")
	}
}

// --- "So You're the Enemy?" (Tokino Sora lead, skill 1) ---
//
// Exercises both the Conditional-modifier gate (is_color_white) and the
// attacker-side MoreDamage zone modifier installed on the actor's own
// Center Stage.

func setupSoYoureTheEnemy(t *testing.T, cat *catalog.Catalog, attackerNumber string) (*State, *scriptedParticipant, card.Ref, card.Ref) {
	t.Helper()
	st := NewState(cat, 3)
	p0, p1 := card.PlayerOne, card.PlayerTwo
	b0, b1 := st.Board(p0), st.Board(p1)
	st.ActivePlayer = p0

	leadRef := mustRegister(t, st, p0, "hSD01-001")
	b0.Place(card.ZoneLead, leadRef, false)

	attackerRef := mustRegister(t, st, p0, attackerNumber)
	b0.Place(card.ZoneCenterStage, attackerRef, false)

	b0.Place(card.ZoneHoloPower, mustRegister(t, st, p0, "FILLER-CHEER-01"), false)
	b0.Place(card.ZoneHoloPower, mustRegister(t, st, p0, "FILLER-CHEER-02"), false)

	oldCenterRef := mustRegister(t, st, p1, "FILLER-MEM-02")
	b1.Place(card.ZoneCenterStage, oldCenterRef, false)
	dummyRef := mustRegister(t, st, p1, "TEST-DUMMY")
	b1.Place(card.ZoneBackStage, dummyRef, false)

	participant := newScriptedParticipant().WithCards(dummyRef)
	return st, participant, attackerRef, dummyRef
}

func TestSoYoureTheEnemyAppliesBonusWhenAttackerIsWhite(t *testing.T) {
	cat := buildTestCatalog(t)
	st, participant, attackerRef, dummyRef := setupSoYoureTheEnemy(t, cat, "FILLER-MEM-01") // White
	prompters := map[card.Player]Prompter{card.PlayerOne: participant}
	logger := log.NewMemoryLogger()

	if err := ActivateLeadSkill(context.Background(), st, logger, prompters, 1); err != nil {
		t.Fatalf("ActivateLeadSkill failed: %v", err)
	}

	opp := st.Board(card.PlayerTwo)
	if len(opp.CenterStage) != 1 || opp.CenterStage[0] != dummyRef {
		t.Fatalf("opponent CenterStage = %v, want [%v]", opp.CenterStage, dummyRef)
	}

	if err := PerformArt(context.Background(), st, logger, prompters, attackerRef, 0, dummyRef); err != nil {
		t.Fatalf("PerformArt failed: %v", err)
	}
	if got := st.Mods.DamageCount(dummyRef); got != 60 {
		t.Errorf("damage markers on dummy = %d, want 60 (10 base + 50 conditional zone bonus)", got)
	}
}

func TestSoYoureTheEnemyGateExcludesNonWhiteAttacker(t *testing.T) {
	cat := buildTestCatalog(t)
	st, participant, attackerRef, dummyRef := setupSoYoureTheEnemy(t, cat, "FILLER-MEM-02") // Green
	prompters := map[card.Player]Prompter{card.PlayerOne: participant}
	logger := log.NewMemoryLogger()

	if err := ActivateLeadSkill(context.Background(), st, logger, prompters, 1); err != nil {
		t.Fatalf("ActivateLeadSkill failed: %v", err)
	}

	opp := st.Board(card.PlayerTwo)
	if err := PerformArt(context.Background(), st, logger, prompters, attackerRef, 0, opp.CenterStage[0]); err != nil {
		t.Fatalf("PerformArt failed: %v", err)
	}
	if got := st.Mods.DamageCount(dummyRef); got != 10 {
		t.Errorf("damage markers on dummy = %d, want 10 (base only; is_color_white gate should exclude a Green attacker)", got)
	}
}

// --- "Konpeko!" (Usada Pekora art) ---

func TestKonpekoEvenRollAddsBonusDamage(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 11)
	p0 := card.PlayerOne
	b0 := st.Board(p0)
	st.ActivePlayer = p0

	attackerRef := mustRegister(t, st, p0, "hBP01-038")
	b0.Place(card.ZoneCenterStage, attackerRef, false)
	b0.Attach(mustRegister(t, st, p0, "FILLER-CHEER-02"), attackerRef) // Green, pays the art's Green cost

	dummyRef := mustRegister(t, st, card.PlayerTwo, "TEST-DUMMY")
	st.Board(card.PlayerTwo).Place(card.ZoneCenterStage, dummyRef, false)

	st.Mods.AddPlayer(p0, modifier.Modifier{Kind: modifier.NextDiceRoll, Amount: 2, Life: modifier.Unlimited()})

	logger := log.NewMemoryLogger()
	if err := PerformArt(context.Background(), st, logger, nil, attackerRef, 0, dummyRef); err != nil {
		t.Fatalf("PerformArt failed: %v", err)
	}
	if got := st.Mods.DamageCount(dummyRef); got != 40 {
		t.Errorf("damage markers = %d, want 40 (20 base + 20 even-roll bonus)", got)
	}
	rolls := logger.EventsOfType(log.EventRollDice)
	if len(rolls) != 1 || len(rolls[0].Dice) != 1 || rolls[0].Dice[0] != 2 {
		t.Errorf("roll event = %+v, want a single forced roll of 2", rolls)
	}
}

// --- "SorAZ Sympathy" (AZKi member art) ---

func TestSorAZSympathyAddsBonusWhenAzkiIsOnStage(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 13)
	p0 := card.PlayerOne
	b0 := st.Board(p0)
	st.ActivePlayer = p0

	attackerRef := mustRegister(t, st, p0, "hSD01-006")
	b0.Place(card.ZoneCenterStage, attackerRef, false)
	for _, n := range []string{"FILLER-CHEER-01", "FILLER-CHEER-02", "FILLER-CHEER-03"} { // White, Green, Red-for-Colorless
		b0.Attach(mustRegister(t, st, p0, n), attackerRef)
	}

	dummyRef := mustRegister(t, st, card.PlayerTwo, "TEST-DUMMY")
	st.Board(card.PlayerTwo).Place(card.ZoneCenterStage, dummyRef, false)

	logger := log.NewMemoryLogger()
	if err := PerformArt(context.Background(), st, logger, nil, attackerRef, 0, dummyRef); err != nil {
		t.Fatalf("PerformArt failed: %v", err)
	}
	if got := st.Mods.DamageCount(dummyRef); got != 110 {
		t.Errorf("damage markers = %d, want 110 (60 base + 50 azki-on-stage bonus)", got)
	}
}

// --- Bloom + transient PreventBloom ---

func TestBloomInstallsPreventBloomAndHandlesNilMemberAbility(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 17)
	p0 := card.PlayerOne
	b0 := st.Board(p0)
	st.ActivePlayer = p0

	parentRef := mustRegister(t, st, p0, "hSD01-003")
	b0.Place(card.ZoneCenterStage, parentRef, false)
	cheerRef := mustRegister(t, st, p0, "FILLER-CHEER-01")
	b0.Attach(cheerRef, parentRef)

	bloomRef := mustRegister(t, st, p0, "hSD01-004")
	b0.Place(card.ZoneHand, bloomRef, false)

	logger := log.NewMemoryLogger()
	// soraFirstMember's Bloom-kind MemberAbility has a nil Condition and a
	// nil Effect; this call must not panic.
	if err := Bloom(context.Background(), st, logger, nil, parentRef, bloomRef); err != nil {
		t.Fatalf("Bloom failed: %v", err)
	}

	if len(b0.CenterStage) != 1 || b0.CenterStage[0] != bloomRef {
		t.Fatalf("CenterStage = %v, want [%v]", b0.CenterStage, bloomRef)
	}
	if parent, ok := b0.ParentOf(cheerRef); !ok || parent != bloomRef {
		t.Fatalf("cheer parent = (%v, %v), want (%v, true)", parent, ok, bloomRef)
	}
	if !contains(b0.Archive, parentRef) {
		t.Errorf("parent %v should be archived after blooming", parentRef)
	}
	if !st.Mods.HasCard(bloomRef, modifier.PreventBloom) {
		t.Errorf("bloomed card should carry an active PreventBloom modifier")
	}

	secondBloomRef := mustRegister(t, st, p0, "hSD01-004")
	b0.Place(card.ZoneHand, secondBloomRef, false)
	err := Bloom(context.Background(), st, logger, nil, bloomRef, secondBloomRef)
	if err == nil {
		t.Fatal("expected an error blooming a card that already bloomed this turn")
	}
	if rerr, ok := err.(*RuntimeError); !ok || rerr.Kind != Recoverable {
		t.Errorf("got %v, want a Recoverable RuntimeError", err)
	}
}

// --- "Mane-chan" (Limited Staff support) ---

func TestManeChanMillsRemainingHandAndDrawsFive(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 19)
	p0 := card.PlayerOne
	b0 := st.Board(p0)
	st.ActivePlayer = p0

	supportRef := mustRegister(t, st, p0, "hSD01-017")
	b0.Place(card.ZoneHand, supportRef, false)
	for i := 0; i < 3; i++ {
		b0.Place(card.ZoneHand, mustRegister(t, st, p0, "FILLER-MEM-01"), false)
	}
	for i := 0; i < 10; i++ {
		b0.Place(card.ZoneMainDeck, mustRegister(t, st, p0, "FILLER-CHEER-01"), false)
	}

	logger := log.NewMemoryLogger()
	if err := PlaySupportCard(context.Background(), st, logger, nil, supportRef); err != nil {
		t.Fatalf("PlaySupportCard failed: %v", err)
	}

	if len(b0.Hand) != 5 {
		t.Fatalf("hand size = %d, want 5", len(b0.Hand))
	}
	if len(b0.MainDeck) != 8 { // 10 - 5 drawn + 3 milled-in hand cards
		t.Errorf("main deck size = %d, want 8", len(b0.MainDeck))
	}
	if !contains(b0.Archive, supportRef) {
		t.Errorf("support card %v should be archived after use", supportRef)
	}
	if !hasLimitedSupportLock(st, p0) {
		t.Errorf("expected an active PreventLimitedSupport lock on hand after playing a Limited support")
	}

	second := mustRegister(t, st, p0, "hSD01-017")
	b0.Place(card.ZoneHand, second, false)
	err := PlaySupportCard(context.Background(), st, logger, nil, second)
	if err == nil {
		t.Fatal("expected a second Limited support this turn to be rejected")
	}
	if rerr, ok := err.(*RuntimeError); !ok || rerr.Kind != Recoverable {
		t.Errorf("got %v, want a Recoverable RuntimeError", err)
	}
	if !contains(b0.Hand, second) {
		t.Errorf("the rejected support card should be restored to hand")
	}
}

// --- Knockout / life-loss chain ---

func TestKnockOutArchivesDetachesAndChainsIntoLifeLossAndPromotion(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 23)
	owner := card.PlayerTwo
	b := st.Board(owner)

	targetRef := mustRegister(t, st, owner, "FILLER-MEM-01")
	b.Place(card.ZoneCenterStage, targetRef, false)
	childCheerRef := mustRegister(t, st, owner, "FILLER-CHEER-03")
	b.Attach(childCheerRef, targetRef)

	promoRef := mustRegister(t, st, owner, "FILLER-MEM-02")
	b.Place(card.ZoneBackStage, promoRef, false)

	lifeRef := mustRegister(t, st, owner, "FILLER-CHEER-04")
	b.Place(card.ZoneLife, lifeRef, false)

	participant := newScriptedParticipant().WithCards(promoRef).WithCards(promoRef)
	prompters := map[card.Player]Prompter{owner: participant}
	logger := log.NewMemoryLogger()

	ev := newEvaluator(context.Background(), st, logger, prompters, 0, card.PlayerOne, nil)
	ev.knockOut(targetRef)

	if st.Outcome != nil {
		t.Fatalf("Outcome = %+v, expected the match to continue", st.Outcome)
	}
	if !contains(b.Archive, targetRef) {
		t.Errorf("knocked-out card %v should be archived", targetRef)
	}
	if !contains(b.Archive, childCheerRef) {
		t.Errorf("cheer attached to a knocked-out card should also be archived")
	}
	if len(b.CenterStage) != 1 || b.CenterStage[0] != promoRef {
		t.Fatalf("CenterStage = %v, want [%v] (promoted from back stage)", b.CenterStage, promoRef)
	}
	if len(b.BackStage) != 0 {
		t.Errorf("BackStage = %v, want empty after promotion", b.BackStage)
	}
	if len(b.Life) != 0 {
		t.Errorf("Life zone = %v, want empty after losing a life", b.Life)
	}
	if parent, ok := b.ParentOf(lifeRef); !ok || parent != promoRef {
		t.Errorf("life card parent = (%v, %v), want (%v, true)", parent, ok, promoRef)
	}
}

func TestLoseLifeEndsMatchWhenLifeZoneIsEmpty(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 29)
	p := card.PlayerOne

	ev := newEvaluator(context.Background(), st, nil, nil, 0, p, nil)
	ev.loseLife(p)

	if st.Outcome == nil || st.Outcome.Reason != ReasonZeroLife {
		t.Fatalf("Outcome = %+v, want ReasonZeroLife", st.Outcome)
	}
	if st.Outcome.Winner == nil || *st.Outcome.Winner != p.Opponent() {
		t.Errorf("Winner = %v, want %v", st.Outcome.Winner, p.Opponent())
	}
}

func TestReplaceCenterEndsMatchWhenNoBackStageMemberRemains(t *testing.T) {
	cat := buildTestCatalog(t)
	st := NewState(cat, 31)
	p := card.PlayerOne

	ev := newEvaluator(context.Background(), st, nil, nil, 0, p, nil)
	ev.replaceCenter(p)

	if st.Outcome == nil || st.Outcome.Reason != ReasonNoCenterAvailable {
		t.Fatalf("Outcome = %+v, want ReasonNoCenterAvailable", st.Outcome)
	}
	if st.Outcome.Winner == nil || *st.Outcome.Winner != p.Opponent() {
		t.Errorf("Winner = %v, want %v", st.Outcome.Winner, p.Opponent())
	}
}

// --- Director turn loop ---

func buildMainDeck(t *testing.T) []string {
	t.Helper()
	// Deliberately excludes hSD01-017 (Mane-chan, a Support card): a support
	// number drawn into the opening hand would add an unscripted Confirm
	// prompt ("play a support card?") to the turn-loop test below, whose
	// scripted participants only queue answers for the lead-skill offer.
	numbers := []string{
		"FILLER-MEM-01", "FILLER-MEM-02", "FILLER-MEM-03",
		"hSD01-006", "hBP01-038", "hSD01-003", "hSD01-004",
		"TEST-FILLER-A", "TEST-FILLER-B", "TEST-FILLER-C", "TEST-FILLER-D", "TEST-FILLER-E", "TEST-FILLER-F",
	}
	var out []string
	for _, n := range numbers {
		for i := 0; i < loadout.CopyLimit && len(out) < loadout.MainDeckSize; i++ {
			out = append(out, n)
		}
	}
	if len(out) != loadout.MainDeckSize {
		t.Fatalf("test main deck has %d cards, want %d", len(out), loadout.MainDeckSize)
	}
	return out
}

func buildCheerDeck() []string {
	out := make([]string, loadout.CheerDeckSize)
	for i := range out {
		out[i] = "FILLER-CHEER-01"
	}
	return out
}

// No member ever reaches Center Stage in this minimal deck (Setup only
// places the lead), so the first player's end-of-turn NoCenterAvailable
// check ends the match after exactly one turn — a short, fully
// deterministic way to drive the real Setup/RunTurn/End path end to end.
func TestDirectorTurnLoopEndsWhenCenterStageNeverFills(t *testing.T) {
	cat := buildTestCatalog(t)
	mainDeck := buildMainDeck(t)
	cheerDeck := buildCheerDeck()

	loadouts := [2]*loadout.Loadout{
		{Lead: "hSD01-001", MainDeck: mainDeck, CheerDeck: cheerDeck},
		{Lead: "hSD01-002", MainDeck: mainDeck, CheerDeck: cheerDeck},
	}

	p0 := newScriptedParticipant().WithYes(false).WithYes(false)
	p1 := newScriptedParticipant().WithYes(false).WithYes(false)
	prompters := map[card.Player]Prompter{card.PlayerOne: p0, card.PlayerTwo: p1}
	logger := log.NewMemoryLogger()

	director, err := NewMatch(context.Background(), cat, loadouts, 7, prompters, logger)
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}

	outcome, err := director.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome == nil || outcome.Reason != ReasonNoCenterAvailable {
		t.Fatalf("outcome = %+v, want ReasonNoCenterAvailable", outcome)
	}
	finishedPlayer := director.State.ActivePlayer
	if outcome.Winner == nil || *outcome.Winner != finishedPlayer.Opponent() {
		t.Errorf("winner = %v, want the opponent of %v", outcome.Winner, finishedPlayer)
	}
	if director.State.Turn != 0 {
		t.Errorf("Turn = %d, want 0 (match ends before the turn counter advances)", director.State.Turn)
	}
	if len(logger.EventsOfType(log.EventGameOver)) != 1 {
		t.Errorf("expected exactly one GameOver event")
	}
}
