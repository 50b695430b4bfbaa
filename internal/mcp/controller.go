package mcp

import (
	"context"

	"github.com/oshifan/hocgsim/internal/card"
	tcgxnet "github.com/oshifan/hocgsim/internal/net"

	"github.com/oshifan/hocgsim/internal/log"
)

// MCPController implements game.Prompter by sending a pending decision to
// the MCP session's channel and blocking for a response supplied by a
// tool call.
type MCPController struct {
	player     card.Player
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player card.Player, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan any),
	}
}

// SelectCards implements game.Prompter.
func (c *MCPController) SelectCards(ctx context.Context, prompt string, candidates []card.Ref, min, max int) ([]card.Ref, error) {
	var views []tcgxnet.CardView
	for _, ref := range candidates {
		inst := c.session.director.State.Instance(ref)
		views = append(views, tcgxnet.CardView{Ref: uint32(ref), Number: inst.Number, Name: inst.NameKey()})
	}

	c.session.pendingCh <- &PendingDecision{
		Type:       DecisionSelectCards,
		Player:     c.player,
		State:      tcgxnet.BuildStateView(c.session.director.State, c.player),
		Prompt:     prompt,
		Candidates: views,
		Min:        min,
		Max:        max,
	}

	resp := (<-c.responseCh).(CardsResponse)

	byRef := make(map[uint32]card.Ref, len(candidates))
	for _, ref := range candidates {
		byRef[uint32(ref)] = ref
	}
	var result []card.Ref
	for _, r := range resp.Refs {
		if ref, ok := byRef[r]; ok {
			result = append(result, ref)
		}
	}
	return result, nil
}

// SelectNumber implements game.Prompter.
func (c *MCPController) SelectNumber(ctx context.Context, prompt string, lo, hi int) (int, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:   DecisionSelectNumber,
		Player: c.player,
		State:  tcgxnet.BuildStateView(c.session.director.State, c.player),
		Prompt: prompt,
		Lo:     lo,
		Hi:     hi,
	}

	resp := (<-c.responseCh).(NumberResponse)
	if resp.Number < lo || resp.Number > hi {
		return lo, nil
	}
	return resp.Number, nil
}

// Confirm implements game.Prompter.
func (c *MCPController) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:   DecisionConfirm,
		Player: c.player,
		State:  tcgxnet.BuildStateView(c.session.director.State, c.player),
		Prompt: prompt,
	}

	resp := (<-c.responseCh).(ConfirmResponse)
	return resp.Answer, nil
}

// Notify implements game.Prompter. Only the Claude controller appends
// events, to avoid duplicate entries from both sides of the match.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player == c.session.claudePlayer {
		c.session.appendEvent(tcgxnet.EventView{
			Turn:    event.Turn,
			Step:    event.Step,
			Player:  event.Player,
			Type:    event.Type.String(),
			Details: event.Details,
		})
	}
	return nil
}
