// Package catalog holds the immutable, load-once map from card number to
// card record: the tagged union of Lead/Member/Support/Cheer data plus their
// pre-parsed, pre-validated DSL effects. Nothing in this package mutates
// once New or Read returns; a *Catalog is shared by reference across matches.
package catalog

import "github.com/oshifan/hocgsim/internal/dsl"

// Color is a cheer/art color. Card text and the DSL's is_color_<c>
// predicates share this closed set.
type Color int

const (
	White Color = iota
	Green
	Red
	Blue
	Purple
	Yellow
	// Colorless is a wildcard cost pip payable with a cheer of any color.
	// It is never the color of a cheer card itself.
	Colorless
)

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Green:
		return "Green"
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Purple:
		return "Purple"
	case Yellow:
		return "Yellow"
	case Colorless:
		return "Colorless"
	default:
		return "Unknown"
	}
}

// Level is a member's stage of growth.
type Level int

const (
	Debut Level = iota
	First
	Second
	Spot
)

func (l Level) String() string {
	switch l {
	case Debut:
		return "Debut"
	case First:
		return "First"
	case Second:
		return "Second"
	case Spot:
		return "Spot"
	default:
		return "Unknown"
	}
}

// Kind tags which variant of the card-record union is populated.
type Kind int

const (
	KindLead Kind = iota
	KindMember
	KindSupport
	KindCheer
)

func (k Kind) String() string {
	switch k {
	case KindLead:
		return "Lead"
	case KindMember:
		return "Member"
	case KindSupport:
		return "Support"
	case KindCheer:
		return "Cheer"
	default:
		return "Unknown"
	}
}

// SkillKind distinguishes a lead's two skill slots. Normal skills are
// once-per-turn; Special skills are once-per-game.
type SkillKind int

const (
	Normal SkillKind = iota
	Special
)

// AbilityKind distinguishes a member ability's firing condition.
type AbilityKind int

const (
	Collab AbilityKind = iota
	Bloom
	Gift
)

// SupportKind is the closed set of support-card categories.
type SupportKind int

const (
	Item SupportKind = iota
	Staff
	Event
	Fan
)

func (k SupportKind) String() string {
	switch k {
	case Item:
		return "Item"
	case Staff:
		return "Staff"
	case Event:
		return "Event"
	case Fan:
		return "Fan"
	default:
		return "Unknown"
	}
}

// Trigger is one of the internal event kinds effects subscribe to:
// on_before_roll_dice, on_after_roll_dice, on_before_perform_art,
// on_attach, on_member_defeated, and so on.
type Trigger string

const (
	OnBeforeRollDice   Trigger = "on_before_roll_dice"
	OnAfterRollDice    Trigger = "on_after_roll_dice"
	OnBeforePerformArt Trigger = "on_before_perform_art"
	OnAfterPerformArt  Trigger = "on_after_perform_art"
	OnAttach           Trigger = "on_attach"
	OnMemberDefeated   Trigger = "on_member_defeated"
	OnCollab           Trigger = "on_collab"
	OnBloom            Trigger = "on_bloom"
)

// LeadSkill is one of a lead's two named skills.
type LeadSkill struct {
	Name      string
	Kind      SkillKind
	Cost      int // holo-power
	Triggers  []Trigger
	Condition *dsl.Effect
	Effect    *dsl.Effect
}

// LeadData is the Lead variant's payload.
type LeadData struct {
	Name      string
	NameKey   string // lowercase, underscored — matches is_named_<name>
	Color     Color
	LifeCount int
	Skills    []LeadSkill
}

// Art is one of a member's named attacks.
type Art struct {
	Name      string
	Cost      []Color // colored cheer cost; colored pips are matched before Colorless ones
	Damage    int
	Condition *dsl.Effect
	Effect    *dsl.Effect
}

// MemberAbility is a Collab/Bloom/Gift-triggered ability on a member.
type MemberAbility struct {
	Kind      AbilityKind
	Condition *dsl.Effect
	Effect    *dsl.Effect
}

// MemberData is the Member variant's payload.
type MemberData struct {
	Name          string
	NameKey       string
	Colors        []Color
	HP            int
	Level         Level
	Hashtags      []string
	Buzz          bool
	BatonPassCost []Color
	Abilities     []MemberAbility
	Arts          []Art
}

// SupportAbility is one triggered ability on a support card.
type SupportAbility struct {
	Triggers  []Trigger
	Condition *dsl.Effect
	Effect    *dsl.Effect
}

// SupportData is the Support variant's payload.
type SupportData struct {
	Name     string
	Kind     SupportKind
	Limited  bool
	Abilites []SupportAbility
}

// CheerData is the Cheer variant's payload.
type CheerData struct {
	Name  string
	Color Color
}

// Record is a single catalog entry: a card number plus exactly one
// populated variant, selected by Kind.
type Record struct {
	Number  string
	Kind    Kind
	Lead    *LeadData
	Member  *MemberData
	Support *SupportData
	Cheer   *CheerData
}

// Effects returns every DSL effect embedded in the record, for validation.
func (r *Record) Effects() []*dsl.Effect {
	var out []*dsl.Effect
	add := func(e *dsl.Effect) {
		if e != nil {
			out = append(out, e)
		}
	}
	switch r.Kind {
	case KindLead:
		for _, s := range r.Lead.Skills {
			add(s.Condition)
			add(s.Effect)
		}
	case KindMember:
		for _, a := range r.Member.Abilities {
			add(a.Condition)
			add(a.Effect)
		}
		for _, a := range r.Member.Arts {
			add(a.Condition)
			add(a.Effect)
		}
	case KindSupport:
		for _, a := range r.Support.Abilites {
			add(a.Condition)
			add(a.Effect)
		}
	}
	return out
}
