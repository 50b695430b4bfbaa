package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface the director writes match history to.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory, for test assertions and for
// replaying a match's history back to a reconnecting client. ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns every logged event matching t, in order.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer, e.g. for a
// spectator terminal or a saved transcript. ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

func playerName(p int) string {
	if p < 0 {
		return "--"
	}
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	step := e.Step
	for len(step) < 12 {
		step += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, step, e.Details)
}

// FormatAll formats every event as a multi-line transcript.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for the most common events ---

func NewStartTurnEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventStartTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewEnterStepEvent(turn, player int, step string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Step:    step,
		Type:    EventEnterStep,
		Details: fmt.Sprintf("%s enters %s step", playerName(player), step),
	}
}

func NewExitStepEvent(turn, player int, step string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Step:    step,
		Type:    EventExitStep,
		Details: fmt.Sprintf("%s exits %s step", playerName(player), step),
	}
}

func NewDrawEvent(turn, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Amount:  count,
		Details: fmt.Sprintf("%s draws %d card(s)", playerName(player), count),
	}
}

func NewDealDamageEvent(turn, player int, target uint32, amount int, source string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDealDamage,
		Refs:    []uint32{target},
		Amount:  amount,
		Details: fmt.Sprintf("%s deals %d damage to card #%d (%s)", playerName(player), amount, target, source),
	}
}

func NewHoloMemberDefeatedEvent(turn, player int, ref uint32) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventHoloMemberDefeated,
		Refs:    []uint32{ref},
		Details: fmt.Sprintf("card #%d is knocked out", ref),
	}
}

func NewLoseLivesEvent(turn, player int, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventLoseLives,
		Amount:  count,
		Details: fmt.Sprintf("%s loses %d life card(s)", playerName(player), count),
	}
}

func NewGameOverEvent(winner int, reason string) GameEvent {
	return GameEvent{
		Player:  winner,
		Type:    EventGameOver,
		Details: fmt.Sprintf("game over: %s (%s)", playerName(winner), reason),
	}
}

func NewRollDiceEvent(turn, player int, dice []int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventRollDice,
		Dice:    dice,
		Details: fmt.Sprintf("%s rolls %v", playerName(player), dice),
	}
}

func NewWaitingForPlayerIntentEvent(turn, player int, prompt string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventWaitingForPlayerIntent,
		Details: fmt.Sprintf("waiting on %s: %s", playerName(player), prompt),
	}
}
