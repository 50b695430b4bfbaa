package dsl

import (
	"errors"
	"testing"
)

// effectSamples are real card effect sources, used verbatim across this
// package's tests and the catalog's card definitions.
var effectSamples = []string{
	"let $roll = roll_dice\nif is_even $roll (\n    add_mod this_card deal_more_dmg 20 this_art\n)",
	"if any from stage is_member and is_named_azki (\n    add_mod this_card deal_more_dmg 50 this_art\n)",
	"let $mem = select_one from stage is_member and has_cheers\n" +
		"let $cheer = select_one attached $mem is_cheer\n" +
		"let $to_mem = select_one from stage is_member and is_not $mem\n" +
		"attach_cards $cheer $to_mem",
	"let $back_mem = select_one from opponent_back_stage is_member\n" +
		"let $center_mem = from opponent_center_stage\n" +
		"send_to opponent_back_stage $center_mem\n" +
		"send_to opponent_center_stage $back_mem\n" +
		"add_zone_mod center_stage when is_color_white more_dmg 50 this_turn",
	"let $num = select_number_between 1 6\nadd_global_mod you next_dice_roll $num until_removed",
	"let $cheers = select_any from archive is_cheer\n" +
		"let $mem = select_one from stage is_color_green and is_member\n" +
		"attach_cards $cheers $mem",
	"let $hand = from hand\nsend_to main_deck $hand\nshuffle main_deck\ndraw 5",
}

var conditionSamples = []string{
	"2 <= count from stage\nany from stage has_cheers",
	"exist from opponent_center_stage\nexist from opponent_back_stage",
	"1 <= count filter from hand is_not this_card",
}

func TestParseSamples(t *testing.T) {
	for _, src := range effectSamples {
		if _, err := Parse(src); err != nil {
			t.Errorf("Parse(%q) failed: %v", src, err)
		}
	}
	for _, src := range conditionSamples {
		if _, err := Parse(src); err != nil {
			t.Errorf("Parse(%q) failed: %v", src, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	all := append(append([]string{}, effectSamples...), conditionSamples...)
	for _, src := range all {
		e1, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", src, err)
		}
		again, err := Parse(Serialize(e1))
		if err != nil {
			t.Fatalf("Parse(Serialize(%q)) failed: %v", src, err)
		}
		if !effectEqual(e1, again) {
			t.Errorf("round trip mismatch for %q:\n got %q\nwant %q", src, Serialize(again), Serialize(e1))
		}
	}
}

func TestValidateSamples(t *testing.T) {
	for _, src := range effectSamples {
		e, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", src, err)
		}
		if err := Validate(e); err != nil {
			t.Errorf("Validate(%q) failed: %v", src, err)
		}
	}
}

func TestValidateUnknownKeyword(t *testing.T) {
	e, err := Parse("teleport this_card")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := Validate(e); err == nil {
		t.Error("expected Validate to reject an unknown keyword")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind ParseErrorKind
	}{
		{"empty", "", ErrNoTokens},
		{"unclosed", "if is_even $roll ( add_mod this_card rested this_turn", ErrUnbalancedBrackets},
		{"stray close paren", "draw 1 )", ErrUnbalancedBrackets},
		{"let missing equals", "let $x roll_dice", ErrExpectedToken},
		{"if missing block", "if is_even $roll draw 1", ErrMissingBracket},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.src)
			if err == nil {
				t.Fatalf("expected error for %q", c.src)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Kind != c.kind {
				t.Errorf("got kind %v, want %v", pe.Kind, c.kind)
			}
		})
	}
}

func effectEqual(a, b *Effect) bool {
	if len(a.Nodes) != len(b.Nodes) {
		return false
	}
	for i := range a.Nodes {
		if !exprEqual(a.Nodes[i], b.Nodes[i]) {
			return false
		}
	}
	return true
}

func exprEqual(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Op != b.Op || a.Num != b.Num || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !exprEqual(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}
