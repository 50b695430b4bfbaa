package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/oshifan/hocgsim/internal/card"
	tcgxnet "github.com/oshifan/hocgsim/internal/net"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// claudeLoadoutFile is the path to Claude's loadout YAML file, set by main.
var claudeLoadoutFile string

// port is the TCP port for the human player connection, set by main.
var port string

// SetClaudeLoadoutFile sets the path to Claude's loadout YAML file.
func SetClaudeLoadoutFile(path string) {
	claudeLoadoutFile = path
}

// SetPort sets the TCP port for the human player connection.
func SetPort(p string) {
	port = p
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(selectCardsTool(), handleSelectCards)
	s.AddTool(selectNumberTool(), handleSelectNumber)
	s.AddTool(confirmTool(), handleConfirm)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new hocgsim match. Returns the initial game state and first pending decision. "+
			"The human player connects via `hocgsim join --addr localhost:<port> --loadout <path>` in a separate terminal. "+
			"This call blocks until the human connects."),
		mcp.WithNumber("claude_player", mcp.Required(), mcp.Description("Which player Claude is: 0 = goes first, 1 = goes second")),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Select cards from the pending candidates list. Use this when the pending decision type is 'select_cards'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices into the candidates list (e.g. '0 2 3'), or empty string for no selection")),
	)
}

func selectNumberTool() mcp.Tool {
	return mcp.NewTool("select_number",
		mcp.WithDescription("Answer a numeric prompt. Use this when the pending decision type is 'select_number'."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("The chosen number, within the pending decision's lo/hi range")),
	)
}

func confirmTool() mcp.Tool {
	return mcp.NewTool("confirm",
		mcp.WithDescription("Answer a yes/no question. Use this when the pending decision type is 'confirm'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true for yes, false for no")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	claudePlayerNum := request.GetInt("claude_player", 0)
	if claudePlayerNum != 0 && claudePlayerNum != 1 {
		return mcp.NewToolResultError("claude_player must be 0 or 1"), nil
	}

	sess, err := NewGameSession(claudeLoadoutFile, card.Player(claudePlayerNum), port)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}

	resp.Port = port

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Player != sess.claudePlayer {
		return mcp.NewToolResultError("Waiting for human player to respond via their terminal."), nil
	}
	if pending.Type != DecisionSelectCards {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'select_cards'. Use the correct tool.", pending.Type), nil
	}

	indicesStr := request.GetString("indices", "")
	var indices []int
	if strings.TrimSpace(indicesStr) != "" {
		parts := strings.Fields(indicesStr)
		for _, p := range parts {
			idx, err := strconv.Atoi(p)
			if err != nil {
				return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
			}
			if idx < 0 || idx >= len(pending.Candidates) {
				return mcp.NewToolResultErrorf("Index %d out of range. Must be 0-%d.", idx, len(pending.Candidates)-1), nil
			}
			indices = append(indices, idx)
		}
	}

	if len(indices) < pending.Min {
		return mcp.NewToolResultErrorf("Must select at least %d card(s), got %d.", pending.Min, len(indices)), nil
	}
	if len(indices) > pending.Max {
		return mcp.NewToolResultErrorf("Must select at most %d card(s), got %d.", pending.Max, len(indices)), nil
	}

	var refs []uint32
	for _, idx := range indices {
		refs = append(refs, pending.Candidates[idx].Ref)
	}

	sess.claudeCtrl.responseCh <- CardsResponse{Refs: refs}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleSelectNumber(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Player != sess.claudePlayer {
		return mcp.NewToolResultError("Waiting for human player to respond via their terminal."), nil
	}
	if pending.Type != DecisionSelectNumber {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'select_number'. Use the correct tool.", pending.Type), nil
	}

	number := request.GetInt("number", pending.Lo)
	if number < pending.Lo || number > pending.Hi {
		return mcp.NewToolResultErrorf("Number %d out of range. Must be %d-%d.", number, pending.Lo, pending.Hi), nil
	}

	sess.claudeCtrl.responseCh <- NumberResponse{Number: number}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleConfirm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Player != sess.claudePlayer {
		return mcp.NewToolResultError("Waiting for human player to respond via their terminal."), nil
	}
	if pending.Type != DecisionConfirm {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'confirm'. Use the correct tool.", pending.Type), nil
	}

	answer := request.GetBool("answer", false)

	sess.claudeCtrl.responseCh <- ConfirmResponse{Answer: answer}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	events := sess.drainEvents()

	sess.mu.Lock()
	gameOver := sess.gameOver
	winner := sess.winner
	reason := sess.reason
	sess.mu.Unlock()

	resp := &ToolResponse{
		Events:   events,
		GameOver: gameOver,
		Winner:   winner,
		Reason:   reason,
	}

	if gameOver {
		if sess.currentPending != nil {
			resp.State = sess.currentPending.State
		}
	} else if sess.director != nil {
		resp.State = tcgxnet.BuildStateView(sess.director.State, sess.claudePlayer)
		if sess.currentPending != nil {
			if sess.currentPending.Player != sess.claudePlayer {
				resp.Pending = &PendingView{
					Type:      sess.currentPending.Type,
					ForPlayer: "human",
				}
			} else {
				resp.Pending = &PendingView{
					Type:       sess.currentPending.Type,
					ForPlayer:  "claude",
					Prompt:     sess.currentPending.Prompt,
					Candidates: sess.currentPending.Candidates,
					Min:        sess.currentPending.Min,
					Max:        sess.currentPending.Max,
					Lo:         sess.currentPending.Lo,
					Hi:         sess.currentPending.Hi,
				}
			}
		}
	}

	if resp.Events == nil {
		resp.Events = []tcgxnet.EventView{}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
