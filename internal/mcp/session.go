package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	tcgxnet "github.com/oshifan/hocgsim/internal/net"

	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
	"github.com/oshifan/hocgsim/internal/game"
	"github.com/oshifan/hocgsim/internal/loadout"
	"github.com/oshifan/hocgsim/internal/log"

	stdnet "net"
)

// DecisionType identifies what kind of decision the game engine is waiting
// for.
type DecisionType string

const (
	DecisionSelectCards  DecisionType = "select_cards"
	DecisionSelectNumber DecisionType = "select_number"
	DecisionConfirm      DecisionType = "confirm"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type       DecisionType       `json:"type"`
	Player     card.Player        `json:"player"`
	State      *tcgxnet.StateView `json:"state"`
	Prompt     string             `json:"prompt,omitempty"`
	Candidates []tcgxnet.CardView `json:"candidates,omitempty"`
	Min        int                `json:"min,omitempty"`
	Max        int                `json:"max,omitempty"`
	Lo         int                `json:"lo,omitempty"`
	Hi         int                `json:"hi,omitempty"`
}

// Response types sent back from MCP tools to controllers.

type CardsResponse struct {
	Refs []uint32
}

type NumberResponse struct {
	Number int
}

type ConfirmResponse struct {
	Answer bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []tcgxnet.EventView `json:"events"`
	State    *tcgxnet.StateView  `json:"state,omitempty"`
	Pending  *PendingView        `json:"pending,omitempty"`
	GameOver bool                `json:"game_over"`
	Winner   int                 `json:"winner,omitempty"`
	Reason   string              `json:"reason,omitempty"`
	Port     string              `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response
// JSON.
type PendingView struct {
	Type       DecisionType       `json:"type"`
	ForPlayer  string             `json:"for_player"`
	Prompt     string             `json:"prompt,omitempty"`
	Candidates []tcgxnet.CardView `json:"candidates,omitempty"`
	Min        int                `json:"min,omitempty"`
	Max        int                `json:"max,omitempty"`
	Lo         int                `json:"lo,omitempty"`
	Hi         int                `json:"hi,omitempty"`
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	director     *game.Director
	claudeCtrl   *MCPController
	humanCtrl    *tcgxnet.NetworkController
	claudePlayer card.Player

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []tcgxnet.EventView
	gameOver bool
	winner   int
	reason   string
}

// NewGameSession creates a new game session. It starts a TCP listener,
// waits for the human player to connect via `hocgsim join`, then starts
// the match.
func NewGameSession(claudeLoadoutFile string, claudePlayer card.Player, port string) (*GameSession, error) {
	cat, err := catalog.New(catalog.Builtin())
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	claudeLoadout, err := loadout.Parse(claudeLoadoutFile)
	if err != nil {
		return nil, fmt.Errorf("load claude loadout: %w", err)
	}

	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}

	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	dec := json.NewDecoder(conn)
	var joinMsg tcgxnet.ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.LoadoutFile == "" {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("join message carried no loadout file")
	}

	humanLoadout, err := loadout.Parse(joinMsg.LoadoutFile)
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("load human loadout: %w", err)
	}

	humanPlayer := claudePlayer.Opponent()

	var loadouts [2]*loadout.Loadout
	loadouts[claudePlayer] = claudeLoadout
	loadouts[humanPlayer] = humanLoadout

	// Setup (mulligans, RPS) runs with nil prompters and falls back to
	// RandomPrompter, the same tradeoff internal/net.Server makes: the
	// controllers below need the built State to describe, so they can't
	// exist until Setup has already run.
	director, err := game.NewMatch(context.Background(), cat, loadouts, 1, nil, log.NewMemoryLogger())
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("setup match: %w", err)
	}

	sess := &GameSession{
		claudePlayer: claudePlayer,
		pendingCh:    make(chan *PendingDecision, 1),
		winner:       -1,
		listener:     ln,
		humanConn:    conn,
		director:     director,
	}

	sess.claudeCtrl = NewMCPController(claudePlayer, sess)
	sess.humanCtrl = tcgxnet.NewNetworkController(conn, humanPlayer, director.State)

	director.Prompters = map[card.Player]game.Prompter{
		claudePlayer: sess.claudeCtrl,
		humanPlayer:  sess.humanCtrl,
	}

	go func() {
		outcome, err := director.Run(context.Background())

		reason := ""
		winner := -1
		var winnerRef *card.Player
		if err != nil {
			reason = fmt.Sprintf("error: %v", err)
		} else if outcome != nil {
			reason = outcome.Reason.String()
			if outcome.Winner != nil {
				winner = int(*outcome.Winner)
				winnerRef = outcome.Winner
			}
		}

		_ = sess.humanCtrl.SendGameOver(winnerRef, reason)

		sess.humanConn.Close()
		sess.listener.Close()

		sess.pendingCh <- &PendingDecision{
			Type:   DecisionGameOver,
			Player: card.Player(winner),
			State:  tcgxnet.BuildStateView(sess.director.State, sess.claudePlayer),
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = winner
		sess.reason = reason
		sess.mu.Unlock()
	}()

	return sess, nil
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev tcgxnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []tcgxnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the game
// engine, then builds a ToolResponse with accumulated events plus the
// pending decision.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending

	events := s.drainEvents()
	resp := &ToolResponse{Events: events}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Reason = s.reason
		s.mu.Unlock()
		resp.State = pending.State
		return resp, nil
	}

	resp.State = pending.State
	resp.Pending = &PendingView{
		Type:       pending.Type,
		ForPlayer:  s.playerLabel(pending.Player),
		Prompt:     pending.Prompt,
		Candidates: pending.Candidates,
		Min:        pending.Min,
		Max:        pending.Max,
		Lo:         pending.Lo,
		Hi:         pending.Hi,
	}

	return resp, nil
}

// playerLabel returns "claude" or "human" for the given player.
func (s *GameSession) playerLabel(player card.Player) string {
	if player == s.claudePlayer {
		return "claude"
	}
	return "human"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
