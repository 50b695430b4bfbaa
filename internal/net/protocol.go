package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "select_cards"
	Prompt     string     `json:"prompt,omitempty"`
	Candidates []CardView `json:"candidates,omitempty"`
	Min        int        `json:"min,omitempty"`
	Max        int        `json:"max,omitempty"`

	// For "select_number"
	Lo int `json:"lo,omitempty"`
	Hi int `json:"hi,omitempty"`

	// For "confirm" the Prompt field above is reused.

	State *StateView `json:"state,omitempty"`

	// For "game_over"
	Winner int    `json:"winner,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Step    string `json:"step"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

// CardView describes a card candidate for selection.
type CardView struct {
	Ref    uint32 `json:"ref"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Step       string     `json:"step"`
	IsYourTurn bool       `json:"is_your_turn"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Lead        []CardView `json:"lead"`
	CenterStage []CardView `json:"center_stage"`
	Collab      []CardView `json:"collab"`
	BackStage   []CardView `json:"back_stage"`
	Life        int        `json:"life"`
	HoloPower   int        `json:"holo_power"`
	ArchiveSize int        `json:"archive_size"`
	DeckCount   int        `json:"deck_count"`
	HandCount   int        `json:"hand_count"`
	Hand        []CardView `json:"hand,omitempty"` // only populated for "you"
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "cards"
	Refs []uint32 `json:"refs,omitempty"`

	// For "number"
	Number int `json:"number,omitempty"`

	// For "confirm"
	Answer bool `json:"answer,omitempty"`

	// For "join" (initial handshake)
	LoadoutFile string `json:"loadout_file,omitempty"`
}
