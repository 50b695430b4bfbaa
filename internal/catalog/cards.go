package catalog

import "github.com/oshifan/hocgsim/internal/dsl"

// mustParse parses effect source captured from a card's text. Catalog
// construction happens once at process startup; a parse failure here is a
// typo in our own card data, not a runtime condition, so it panics rather
// than threading an error through every constructor.
func mustParse(source string) *dsl.Effect {
	e, err := dsl.Parse(source)
	if err != nil {
		panic("catalog: " + err.Error())
	}
	return e
}

// Builtin returns the fixed set of card records this repository ships,
// plus a small roster of plain filler cards for deck construction in
// tests.
func Builtin() []*Record {
	records := []*Record{
		tokinoSoraLead(),
		azkiLead(),
		usadaPekoraMember(),
		azkiMember(),
		soraDebutMember(),
		soraFirstMember(),
		maneChanSupport(),
	}
	records = append(records, fillerMembers()...)
	records = append(records, fillerCheers()...)
	return records
}

func tokinoSoraLead() *Record {
	return &Record{
		Number: "hSD01-001",
		Kind:   KindLead,
		Lead: &LeadData{
			Name:      "Tokino Sora",
			NameKey:   "tokino_sora",
			Color:     White,
			LifeCount: 5,
			Skills: []LeadSkill{
				{
					Name: "Replacement",
					Kind: Normal,
					Cost: 1,
					Condition: mustParse(
						"2 <= count from stage\n" +
							"any from stage has_cheers",
					),
					Effect: mustParse(
						"let $mem = select_one from stage is_member and has_cheers\n" +
							"let $cheer = select_one attached $mem is_cheer\n" +
							"let $to_mem = select_one from stage is_member and is_not $mem\n" +
							"attach_cards $cheer $to_mem",
					),
				},
				{
					Name: "So You're the Enemy?",
					Kind: Special,
					Cost: 2,
					Condition: mustParse(
						"exist from opponent_center_stage\n" +
							"exist from opponent_back_stage",
					),
					Effect: mustParse(
						"let $back_mem = select_one from opponent_back_stage is_member\n" +
							"let $center_mem = from opponent_center_stage\n" +
							"send_to opponent_back_stage $center_mem\n" +
							"send_to opponent_center_stage $back_mem\n" +
							"add_zone_mod center_stage when is_color_white more_dmg 50 this_turn",
					),
				},
			},
		},
	}
}

// azkiLead is a second lead, giving decks a Green alternative to Sora.
func azkiLead() *Record {
	return &Record{
		Number: "hSD01-002",
		Kind:   KindLead,
		Lead: &LeadData{
			Name:      "AZKi",
			NameKey:   "azki",
			Color:     Green,
			LifeCount: 5,
			Skills: []LeadSkill{
				{
					Name:      "In My Left Hand, a Map",
					Kind:      Normal,
					Cost:      0,
					Triggers:  []Trigger{OnBeforeRollDice},
					Condition: mustParse("all event_origin is_member and yours"),
					Effect: mustParse(
						"let $num = select_number_between 1 6\n" +
							"add_global_mod you next_dice_roll $num until_removed",
					),
				},
				{
					Name:      "In My Right Hand, a Mic",
					Kind:      Special,
					Cost:      1,
					Condition: mustParse("any from stage is_member and is_color_green"),
					Effect: mustParse(
						"let $cheers = select_any from archive is_cheer\n" +
							"let $mem = select_one from stage is_color_green and is_member\n" +
							"attach_cards $cheers $mem",
					),
				},
			},
		},
	}
}

func usadaPekoraMember() *Record {
	return &Record{
		Number: "hBP01-038",
		Kind:   KindMember,
		Member: &MemberData{
			Name:     "Usada Pekora",
			NameKey:  "usada_pekora",
			Colors:   []Color{Green},
			HP:       60,
			Level:    Debut,
			Hashtags: []string{"UsadaPekora"},
			Arts: []Art{
				{
					Name:   "Konpeko!",
					Cost:   []Color{Green},
					Damage: 20,
					Effect: mustParse(
						"let $roll = roll_dice\n" +
							"if is_even $roll (\n" +
							"    add_mod this_card deal_more_dmg 20 this_art\n" +
							")",
					),
				},
			},
		},
	}
}

func azkiMember() *Record {
	return &Record{
		Number: "hSD01-006",
		Kind:   KindMember,
		Member: &MemberData{
			Name:     "AZKi",
			NameKey:  "azki",
			Colors:   []Color{White, Green},
			HP:       70,
			Level:    Debut,
			Hashtags: []string{"AZKi"},
			Arts: []Art{
				{
					Name:   "SorAZ Sympathy",
					Cost:   []Color{White, Green, Colorless},
					Damage: 60,
					Effect: mustParse(
						"if any from stage is_member and is_named_azki (\n" +
							"    add_mod this_card deal_more_dmg 50 this_art\n" +
							")",
					),
				},
			},
		},
	}
}

// soraDebutMember and soraFirstMember are a same-name bloom pair. The
// bloom rule itself (attach, promote, install PreventBloom) is director
// logic (internal/game), not per-card effect text, so neither side needs
// a DSL effect for the bloom itself.
func soraDebutMember() *Record {
	return &Record{
		Number: "hSD01-003",
		Kind:   KindMember,
		Member: &MemberData{
			Name:    "Sora",
			NameKey: "sora",
			Colors:  []Color{White},
			HP:      50,
			Level:   Debut,
			Arts: []Art{
				{Name: "Cheerful Wave", Cost: []Color{White}, Damage: 20},
			},
		},
	}
}

func soraFirstMember() *Record {
	return &Record{
		Number: "hSD01-004",
		Kind:   KindMember,
		Member: &MemberData{
			Name:          "Sora",
			NameKey:       "sora",
			Colors:        []Color{White},
			HP:            90,
			Level:         First,
			BatonPassCost: []Color{White, White},
			Abilities: []MemberAbility{
				{Kind: Bloom},
			},
			Arts: []Art{
				{Name: "Morning Glow", Cost: []Color{White, White}, Damage: 50},
			},
		},
	}
}

func maneChanSupport() *Record {
	return &Record{
		Number: "hSD01-017",
		Kind:   KindSupport,
		Support: &SupportData{
			Name:    "Mane-chan",
			Kind:    Staff,
			Limited: true,
			Abilites: []SupportAbility{
				{
					Condition: mustParse("1 <= count filter from hand is_not this_card"),
					Effect: mustParse(
						"let $hand = from hand\n" +
							"send_to main_deck $hand\n" +
							"shuffle main_deck\n" +
							"draw 5",
					),
				},
			},
		},
	}
}

// fillerMembers are plain, effect-free members used only to fill out legal
// decks in tests.
func fillerMembers() []*Record {
	names := []string{"Backstage Hopeful A", "Backstage Hopeful B", "Backstage Hopeful C"}
	fillerColors := []Color{White, Green, Red}
	out := make([]*Record, len(names))
	for i, name := range names {
		out[i] = &Record{
			Number: "FILLER-MEM-0" + string(rune('1'+i)),
			Kind:   KindMember,
			Member: &MemberData{
				Name:   name,
				Colors: []Color{fillerColors[i]},
				HP:     40,
				Level:  Debut,
				Arts:   []Art{{Name: "Wave", Cost: nil, Damage: 10}},
			},
		}
	}
	return out
}

func fillerCheers() []*Record {
	colors := []Color{White, Green, Red, Blue, Purple, Yellow}
	out := make([]*Record, len(colors))
	for i, c := range colors {
		out[i] = &Record{
			Number: "FILLER-CHEER-0" + string(rune('1'+i)),
			Kind:   KindCheer,
			Cheer:  &CheerData{Name: c.String() + " Cheer", Color: c},
		}
	}
	return out
}
