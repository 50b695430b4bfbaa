package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/game"
	"github.com/oshifan/hocgsim/internal/log"
)

// NetworkController implements game.Prompter over a TCP connection,
// serializing each SelectCards/SelectNumber/Confirm/Notify call as a JSON
// message and blocking for the client's reply.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player card.Player
	state  *game.State
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player card.Player, state *game.State) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
		state:  state,
	}
}

// BuildStateView creates a StateView from the perspective of the given
// player.
func BuildStateView(st *game.State, player card.Player) *StateView {
	me := st.Board(player)
	opp := st.Board(player.Opponent())

	sv := &StateView{
		Turn:       st.Turn,
		Step:       st.Step.String(),
		IsYourTurn: st.ActivePlayer == player,
	}
	sv.You = buildPlayerView(st, me, true)
	sv.Opponent = buildPlayerView(st, opp, false)
	return sv
}

func buildPlayerView(st *game.State, b *game.Board, mine bool) PlayerView {
	pv := PlayerView{
		Lead:        cardViews(st, b.Lead),
		CenterStage: cardViews(st, b.CenterStage),
		Collab:      cardViews(st, b.Collab),
		BackStage:   cardViews(st, b.BackStage),
		Life:        len(b.Life),
		HoloPower:   len(b.HoloPower),
		ArchiveSize: len(b.Archive),
		DeckCount:   len(b.MainDeck),
		HandCount:   len(b.Hand),
	}
	if mine {
		pv.Hand = cardViews(st, b.Hand)
	}
	return pv
}

func cardViews(st *game.State, refs []card.Ref) []CardView {
	var out []CardView
	for _, ref := range refs {
		inst := st.Instance(ref)
		out = append(out, CardView{Ref: uint32(ref), Number: inst.Number, Name: inst.NameKey()})
	}
	return out
}

// buildStateView creates a StateView from this controller's own player's
// perspective.
func (nc *NetworkController) buildStateView() *StateView {
	return BuildStateView(nc.state, nc.player)
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// SelectCards implements game.Prompter.
func (nc *NetworkController) SelectCards(ctx context.Context, prompt string, candidates []card.Ref, min, max int) ([]card.Ref, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	var views []CardView
	for _, ref := range candidates {
		inst := nc.state.Instance(ref)
		views = append(views, CardView{Ref: uint32(ref), Number: inst.Number, Name: inst.NameKey()})
	}

	msg := ServerMessage{
		Type:       "select_cards",
		Prompt:     prompt,
		Candidates: views,
		Min:        min,
		Max:        max,
		State:      nc.buildStateView(),
	}
	if err := nc.send(msg); err != nil {
		return nil, fmt.Errorf("send select_cards: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return nil, fmt.Errorf("recv cards: %w", err)
	}

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
func (nc *NetworkController) SelectNumber(ctx context.Context, prompt string, lo, hi int) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:   "select_number",
		Prompt: prompt,
		Lo:     lo,
		Hi:     hi,
		State:  nc.buildStateView(),
	}
	if err := nc.send(msg); err != nil {
		return 0, fmt.Errorf("send select_number: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return 0, fmt.Errorf("recv number: %w", err)
	}
	if resp.Number < lo || resp.Number > hi {
		return lo, nil
	}
	return resp.Number, nil
}

// Confirm implements game.Prompter.
func (nc *NetworkController) Confirm(ctx context.Context, prompt string) (bool, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:   "confirm",
		Prompt: prompt,
		State:  nc.buildStateView(),
	}
	if err := nc.send(msg); err != nil {
		return false, fmt.Errorf("send confirm: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return false, fmt.Errorf("recv confirm: %w", err)
	}
	return resp.Answer, nil
}

// SendGameOver sends a game_over message to the client. winner is nil on a
// draw.
func (nc *NetworkController) SendGameOver(winner *card.Player, reason string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	w := -1
	if winner != nil {
		w = int(*winner)
	}
	return nc.send(ServerMessage{Type: "game_over", Winner: w, Reason: reason})
}

// Notify implements game.Prompter.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type: "notify",
		Event: &EventView{
			Turn:    event.Turn,
			Step:    event.Step,
			Player:  event.Player,
			Type:    event.Type.String(),
			Details: event.Details,
		},
	}
	return nc.send(msg)
}
