// Package dsl implements the small S-expression effect language that every
// card's triggers, conditions, and actions are written in: a lexer/parser
// that turns source text into an Expr tree, a serializer that is the
// inverse, and a static keyword table used to pre-validate catalog entries
// at load time. Evaluating an Expr against live match state is the
// evaluator's job (package game), not this package's.
package dsl

// Kind distinguishes the syntactic role of an Expr node. The grammar itself
// is uniform S-expressions; Kind only tells the evaluator how to interpret
// a leaf or call once it gets there.
type Kind int

const (
	KindLiteral Kind = iota // unsigned integer literal
	KindVar                 // $name
	KindCall                // (op arg...) — action, value, condition, or operator application
	KindAtom                // bare identifier used as a nullary call (e.g. this_card, roll_dice)
)

// Expr is a single node in an effect AST. Every parsed effect is a list of
// top-level Expr (normally KindCall actions); every sub-expression (values,
// conditions, targets) is itself an Expr in the same tree.
type Expr struct {
	Kind Kind
	Op   string // call/atom name, or variable name for KindVar
	Args []*Expr
	Num  int // literal value, valid when Kind == KindLiteral
}

// Effect is a parsed, ready-to-evaluate card effect: an ordered list of
// top-level action expressions.
type Effect struct {
	Source string // original source text, kept for error messages
	Nodes  []*Expr
}

func lit(n int) *Expr            { return &Expr{Kind: KindLiteral, Num: n} }
func variable(name string) *Expr { return &Expr{Kind: KindVar, Op: name} }
func atom(name string) *Expr     { return &Expr{Kind: KindAtom, Op: name} }
func call(op string, args ...*Expr) *Expr {
	return &Expr{Kind: KindCall, Op: op, Args: args}
}

// --- Closed keyword tables, used by the parser's validation pass (§4.1) ---

// Actions is the closed set of action keywords.
var Actions = map[string]bool{
	"let": true, "if": true, "draw": true, "roll_dice": true, "reveal": true,
	"send_to": true, "send_to_bottom": true, "attach_cards": true,
	"add_mod": true, "add_zone_mod": true, "add_global_mod": true,
	"deal_damage": true, "deal_special_damage": true, "knock_out": true,
	"shuffle": true, "optional_activate": true,
}

// ValueOps is the closed set of value-producing keywords (beyond literals/vars).
var ValueOps = map[string]bool{
	"from_top": true, "from": true, "select_one": true, "select_up_to": true,
	"select_any": true, "select_number_between": true, "count": true,
	"+": true, "-": true, "*": true,
}

// ConditionOps is the closed set of condition/predicate keywords.
var ConditionOps = map[string]bool{
	"is_member": true, "is_cheer": true, "is_support_limited": true,
	"is_color_white": true, "is_color_green": true, "is_color_red": true,
	"is_color_blue": true, "is_color_purple": true, "is_color_yellow": true,
	"is_level_debut": true, "is_level_first": true, "is_level_second": true, "is_level_spot": true,
	"is_attribute_buzz": true, "has_cheers": true, "dmg_amount": true,
	"attach_target": true, "attached_to": true, "attached": true, "is_not": true, "yours": true,
	"any": true, "all": true, "exist": true, "exists": true, "filter": true,
	"==": true, "<=": true, ">=": true, "<": true, ">": true,
	"and": true, "or": true, "not": true, "is_even": true, "is_odd": true,
}

// NamedPredicatePrefixes are condition keyword prefixes resolved dynamically
// against the catalog at load time (e.g. is_named_usada_pekora).
var NamedPredicatePrefixes = []string{"is_named_"}

// Targets is the closed set of logical card-set keywords.
var Targets = map[string]bool{
	"this_card": true, "this_art": true, "this_effect": true, "event_origin": true,
	"main_stage": true, "center_stage": true, "back_stage": true, "stage": true,
	"opponent_center_stage": true, "opponent_back_stage": true, "opponent_stage": true,
	"hand": true, "archive": true, "main_deck": true, "cheer_deck": true, "holo_power": true,
	"you": true, "opponent": true,
}

// Zones is the closed set of zone keywords usable in zone-targeted actions.
var Zones = map[string]bool{
	"center_stage": true, "back_stage": true, "collab": true, "hand": true,
	"archive": true, "main_deck": true, "cheer_deck": true, "holo_power": true,
	"life": true, "stage": true, "all": true,
}

// ModifierKinds is the closed set of modifier-kind keywords usable in add_mod/add_zone_mod/add_global_mod.
var ModifierKinds = map[string]bool{
	"damage_marker": true, "rested": true, "prevent_all_arts": true,
	"prevent_oshi_skill": true, "prevent_collab": true, "prevent_bloom": true,
	"prevent_limited_support": true, "deal_more_dmg": true, "receive_more_dmg": true,
	"more_dmg": true, "as_art_cost": true, "as_cheer": true, "no_life_loss": true,
	"next_dice_roll": true, "when": true, // "when" introduces a Conditional(cond, kind)
}

// Lifetimes is the closed set of lifetime keywords.
var Lifetimes = map[string]bool{
	"this_turn": true, "this_game": true, "until_removed": true,
	"this_art": true, "this_effect": true, "while_attached": true,
}

// IsKnownOp reports whether op is a recognized action, value, condition,
// target, or zone keyword — used by the pre-validation pass at catalog load.
func IsKnownOp(op string) bool {
	if Actions[op] || ValueOps[op] || ConditionOps[op] || Targets[op] || Zones[op] || ModifierKinds[op] || Lifetimes[op] {
		return true
	}
	for _, prefix := range NamedPredicatePrefixes {
		if len(op) > len(prefix) && op[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
