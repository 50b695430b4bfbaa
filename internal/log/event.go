// Package log records the observable history of a match: every rule
// engine action that is part of the public contract gets one GameEvent,
// in the order it happened, so a client or a test can reconstruct exactly
// what the director did without re-deriving it from the final state.
package log

// EventType enumerates every observable event the director can emit.
type EventType int

const (
	EventSetup EventType = iota
	EventShuffle
	EventRpsOutcome
	EventPlayerGoingFirst
	EventReveal
	EventCardMapping
	EventGameStart
	EventGameOver
	EventStartTurn
	EventEndTurn
	EventEnterStep
	EventExitStep
	EventAddCardModifiers
	EventRemoveCardModifiers
	EventClearCardModifiers
	EventAddZoneModifiers
	EventRemoveZoneModifiers
	EventAddDamageMarkers
	EventRemoveDamageMarkers
	EventClearDamageMarkers
	EventLookAndSelect
	EventZoneToZone
	EventZoneToAttach
	EventAttachToAttach
	EventAttachToZone
	EventDraw
	EventCollab
	EventLoseLives
	EventBloom
	EventBatonPass
	EventActivateSupportCard
	EventActivateSupportAbility
	EventActivateOshiSkill
	EventActivateHoloMemberAbility
	EventActivateHoloMemberArtEffect
	EventPerformArt
	EventWaitingForPlayerIntent
	EventHoloMemberDefeated
	EventDealDamage
	EventRollDice
)

var eventNames = [...]string{
	"Setup", "Shuffle", "RpsOutcome", "PlayerGoingFirst", "Reveal",
	"CardMapping", "GameStart", "GameOver", "StartTurn", "EndTurn",
	"EnterStep", "ExitStep", "AddCardModifiers", "RemoveCardModifiers",
	"ClearCardModifiers", "AddZoneModifiers", "RemoveZoneModifiers",
	"AddDamageMarkers", "RemoveDamageMarkers", "ClearDamageMarkers",
	"LookAndSelect", "ZoneToZone", "ZoneToAttach", "AttachToAttach",
	"AttachToZone", "Draw", "Collab", "LoseLives", "Bloom", "BatonPass",
	"ActivateSupportCard", "ActivateSupportAbility", "ActivateOshiSkill",
	"ActivateHoloMemberAbility", "ActivateHoloMemberArtEffect", "PerformArt",
	"WaitingForPlayerIntent", "HoloMemberDefeated", "DealDamage", "RollDice",
}

func (e EventType) String() string {
	if int(e) < 0 || int(e) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[e]
}

// GameEvent is a single observable occurrence in a match. Not every field
// applies to every Type; Details carries a human-readable summary so a
// text log never needs type-specific formatting.
type GameEvent struct {
	Seq    int // monotonic sequence number, assigned by the logger
	Turn   int
	Step   string
	Player int // acting player (0 or 1), -1 when not player-specific
	Type   EventType

	Refs    []uint32 // card refs involved, in the order the rule cares about
	Zone    string
	From    string
	To      string
	Amount  int
	Dice    []int
	Details string
}
