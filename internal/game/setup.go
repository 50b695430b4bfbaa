package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/loadout"
	"github.com/oshifan/hocgsim/internal/log"
)

// InitialHandSize is the number of cards dealt to each player before
// mulligans.
const InitialHandSize = 7

// translateLoadoutErr maps a loadout.Error onto the matching game.SetupError
// — the two Kind enumerations are defined in lockstep specifically so this
// translation never needs a lookup table.
func translateLoadoutErr(p card.Player, err error) error {
	le, ok := err.(*loadout.Error)
	if !ok {
		return err
	}
	return &SetupError{Kind: SetupErrorKind(le.Kind), Player: p, Number: le.Number}
}

// Setup builds a fresh State from two validated loadouts: it registers
// every card, shuffles both decks, deals the initial hand, places the lead
// and its life cards, then runs the mulligan step for each player in turn.
// Player one is seated first; which player actually takes the first turn is
// decided by RPS immediately after.
func Setup(ctx context.Context, cat *catalog.Catalog, loadouts [2]*loadout.Loadout, seed int64, prompters map[card.Player]Prompter, logger log.EventLogger) (*State, error) {
	for i, lo := range loadouts {
		p := card.Player(i)
		if err := loadout.Validate(lo, cat); err != nil {
			return nil, translateLoadoutErr(p, err)
		}
	}

	st := NewState(cat, seed)
	logEvent := func(e log.GameEvent) {
		if logger != nil {
			logger.Log(e)
		}
	}

	for i, lo := range loadouts {
		p := card.Player(i)
		b := st.Board(p)

		leadRef, err := st.RegisterCard(p, lo.Lead)
		if err != nil {
			return nil, fatalErr("setup: register lead %s: %v", lo.Lead, err)
		}
		b.Place(card.ZoneLead, leadRef, false)

		for _, number := range lo.MainDeck {
			ref, err := st.RegisterCard(p, number)
			if err != nil {
				return nil, fatalErr("setup: register main deck card %s: %v", number, err)
			}
			b.Place(card.ZoneMainDeck, ref, false)
		}
		for _, number := range lo.CheerDeck {
			ref, err := st.RegisterCard(p, number)
			if err != nil {
				return nil, fatalErr("setup: register cheer deck card %s: %v", number, err)
			}
			b.Place(card.ZoneCheerDeck, ref, false)
		}

		st.RNG.Shuffle(len(b.MainDeck), func(x, y int) { b.MainDeck[x], b.MainDeck[y] = b.MainDeck[y], b.MainDeck[x] })
		st.RNG.Shuffle(len(b.CheerDeck), func(x, y int) { b.CheerDeck[x], b.CheerDeck[y] = b.CheerDeck[y], b.CheerDeck[x] })
		logEvent(log.GameEvent{Type: log.EventShuffle, Player: i, Zone: card.ZoneMainDeck.String()})
		logEvent(log.GameEvent{Type: log.EventShuffle, Player: i, Zone: card.ZoneCheerDeck.String()})

		for n := 0; n < InitialHandSize; n++ {
			ref, ok := b.DrawTop(card.ZoneMainDeck)
			if !ok {
				break
			}
			b.Place(card.ZoneHand, ref, false)
		}

		lifeCount := st.Instance(leadRef).Record.Lead.LifeCount
		for n := 0; n < lifeCount; n++ {
			ref, ok := b.DrawTop(card.ZoneCheerDeck)
			if !ok {
				break
			}
			b.Place(card.ZoneLife, ref, false)
		}

		logEvent(log.GameEvent{Type: log.EventSetup, Player: i})
	}

	for i := range loadouts {
		p := card.Player(i)
		mulligan(ctx, st, p, prompters[p], logEvent)
	}

	st.ActivePlayer = decideFirstPlayer(ctx, st, prompters, logEvent)
	logEvent(log.GameEvent{Type: log.EventPlayerGoingFirst, Player: int(st.ActivePlayer)})
	logEvent(log.GameEvent{Type: log.EventGameStart})
	return st, nil
}

// mulligan lets p redraw their opening hand as many times as they like,
// shuffling the rejected hand back into the main deck each time and
// drawing one fewer card per redo as a forced-draw penalty.
func mulligan(ctx context.Context, st *State, p card.Player, prompter Prompter, logEvent func(log.GameEvent)) {
	if prompter == nil {
		prompter = &RandomPrompter{RNG: st.RNG}
	}
	b := st.Board(p)
	penalty := 0
	for {
		redo, err := prompter.Confirm(ctx, "mulligan your opening hand?")
		if err != nil || !redo {
			return
		}
		logEvent(log.GameEvent{Type: log.EventShuffle, Player: int(p), Details: "mulligan"})

		for _, ref := range append([]card.Ref{}, b.Hand...) {
			b.RemoveFrom(card.ZoneHand, ref)
			b.Place(card.ZoneMainDeck, ref, false)
		}
		st.RNG.Shuffle(len(b.MainDeck), func(x, y int) { b.MainDeck[x], b.MainDeck[y] = b.MainDeck[y], b.MainDeck[x] })

		penalty++
		draw := InitialHandSize - penalty
		if draw < 0 {
			draw = 0
		}
		for n := 0; n < draw; n++ {
			ref, ok := b.DrawTop(card.ZoneMainDeck)
			if !ok {
				break
			}
			b.Place(card.ZoneHand, ref, false)
		}
	}
}

// decideFirstPlayer stands in for a best-of-one RPS with a single draw
// from the match RNG; neither participant is prompted. Real RPS semantics
// are a participant-UI concern outside this package's scope.
func decideFirstPlayer(ctx context.Context, st *State, prompters map[card.Player]Prompter, logEvent func(log.GameEvent)) card.Player {
	winner := card.Player(st.RNG.Intn(2))
	logEvent(log.GameEvent{Type: log.EventRpsOutcome, Player: int(winner)})
	_ = ctx
	_ = prompters
	return winner
}
