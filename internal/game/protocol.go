package game

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/log"
)

// Prompter is the interface a human or AI participant implements to answer
// the choices a card effect or the director raises: free-form card
// selections, numeric picks, and yes/no confirmations.
type Prompter interface {
	// SelectCards asks the controlling player to pick between min and max
	// cards (inclusive) from candidates.
	SelectCards(ctx context.Context, prompt string, candidates []card.Ref, min, max int) ([]card.Ref, error)

	// SelectNumber asks for an integer in [lo, hi].
	SelectNumber(ctx context.Context, prompt string, lo, hi int) (int, error)

	// Confirm asks a yes/no question, e.g. whether to use an optional ability.
	Confirm(ctx context.Context, prompt string) (bool, error)

	// Notify delivers one GameEvent as it happens, for a spectator view or a
	// client-side log.
	Notify(ctx context.Context, event log.GameEvent) error
}

// Participant pairs a player's Prompter with its identity; the director
// holds one per side.
type Participant struct {
	Player   card.Player
	Prompter Prompter
}

// RandomPrompter answers every choice by picking uniformly at random, so a
// scripted or headless match can run without a human or AI on one or both
// sides.
type RandomPrompter struct {
	RNG interface{ Intn(int) int }
}

func (p *RandomPrompter) SelectCards(_ context.Context, _ string, candidates []card.Ref, min, max int) ([]card.Ref, error) {
	n := min
	if max > min {
		n = min + p.RNG.Intn(max-min+1)
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	pool := append([]card.Ref(nil), candidates...)
	for i := 0; i < n; i++ {
		j := i + p.RNG.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	picked := pool[:n]
	return picked, nil
}

func (p *RandomPrompter) SelectNumber(_ context.Context, _ string, lo, hi int) (int, error) {
	if hi <= lo {
		return lo, nil
	}
	return lo + p.RNG.Intn(hi-lo+1), nil
}

func (p *RandomPrompter) Confirm(_ context.Context, _ string) (bool, error) {
	return p.RNG.Intn(2) == 1, nil
}

func (p *RandomPrompter) Notify(_ context.Context, _ log.GameEvent) error { return nil }

// BufferedPrompter replays a pre-scripted sequence of answers for
// deterministic tests. Each method consumes the next entry of its own
// queue in order; an empty queue is a test-authoring bug and panics rather
// than silently falling back. Scripted answers are returned as given,
// without checking them against the offered candidates or bounds.
type BufferedPrompter struct {
	Cards   [][]card.Ref
	Numbers []int
	Yes     []bool
}

func (p *BufferedPrompter) SelectCards(_ context.Context, _ string, _ []card.Ref, _, _ int) ([]card.Ref, error) {
	if len(p.Cards) == 0 {
		panic("game: BufferedPrompter.SelectCards: script exhausted")
	}
	next := p.Cards[0]
	p.Cards = p.Cards[1:]
	return next, nil
}

func (p *BufferedPrompter) SelectNumber(_ context.Context, _ string, _, _ int) (int, error) {
	if len(p.Numbers) == 0 {
		panic("game: BufferedPrompter.SelectNumber: script exhausted")
	}
	next := p.Numbers[0]
	p.Numbers = p.Numbers[1:]
	return next, nil
}

func (p *BufferedPrompter) Confirm(_ context.Context, _ string) (bool, error) {
	if len(p.Yes) == 0 {
		panic("game: BufferedPrompter.Confirm: script exhausted")
	}
	next := p.Yes[0]
	p.Yes = p.Yes[1:]
	return next, nil
}

func (p *BufferedPrompter) Notify(_ context.Context, _ log.GameEvent) error { return nil }
