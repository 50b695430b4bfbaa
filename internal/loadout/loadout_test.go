package loadout

import (
	"testing"

	"github.com/oshifan/hocgsim/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.Builtin())
	if err != nil {
		t.Fatalf("catalog.New(Builtin()) failed: %v", err)
	}
	return cat
}

const sampleYAML = `
lead: hSD01-001
main_deck:
  - number: hSD01-006
    count: 4
  - number: hBP01-038
    count: 2
cheer_deck:
  - number: FILLER-CHEER-01
    count: 10
  - number: FILLER-CHEER-02
    count: 2
`

func TestParseBytesExpandsCounts(t *testing.T) {
	lo, err := ParseBytes([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if lo.Lead != "hSD01-001" {
		t.Errorf("Lead = %q, want hSD01-001", lo.Lead)
	}
	if len(lo.MainDeck) != 6 {
		t.Errorf("len(MainDeck) = %d, want 6", len(lo.MainDeck))
	}
	if len(lo.CheerDeck) != 12 {
		t.Errorf("len(CheerDeck) = %d, want 12", len(lo.CheerDeck))
	}
}

func TestValidateMissingLead(t *testing.T) {
	cat := testCatalog(t)
	err := Validate(&Loadout{}, cat)
	if err == nil {
		t.Fatal("expected an error for a missing lead")
	}
	if e, ok := err.(*Error); !ok || e.Kind != ErrMissingLead {
		t.Errorf("got %v, want ErrMissingLead", err)
	}
}

func TestValidateUnknownCardNumber(t *testing.T) {
	cat := testCatalog(t)
	lo := &Loadout{
		Lead:      "does-not-exist",
		MainDeck:  make([]string, MainDeckSize),
		CheerDeck: make([]string, CheerDeckSize),
	}
	err := Validate(lo, cat)
	if e, ok := err.(*Error); !ok || e.Kind != ErrUnknownCardNumber {
		t.Errorf("got %v, want ErrUnknownCardNumber", err)
	}
}

func TestValidateDeckSizeIllegal(t *testing.T) {
	cat := testCatalog(t)
	lo := &Loadout{
		Lead:      "hSD01-001",
		MainDeck:  []string{"hSD01-006"},
		CheerDeck: make([]string, CheerDeckSize),
	}
	err := Validate(lo, cat)
	if e, ok := err.(*Error); !ok || e.Kind != ErrDeckSizeIllegal {
		t.Errorf("got %v, want ErrDeckSizeIllegal", err)
	}
}

func TestValidateCopyLimitExceeded(t *testing.T) {
	cat := testCatalog(t)
	mainDeck := make([]string, 0, MainDeckSize)
	for i := 0; i < CopyLimit+1; i++ {
		mainDeck = append(mainDeck, "hSD01-006")
	}
	for len(mainDeck) < MainDeckSize {
		mainDeck = append(mainDeck, "hBP01-038")
	}
	lo := &Loadout{
		Lead:      "hSD01-001",
		MainDeck:  mainDeck,
		CheerDeck: make([]string, CheerDeckSize),
	}
	for i := range lo.CheerDeck {
		lo.CheerDeck[i] = "FILLER-CHEER-01"
	}
	err := Validate(lo, cat)
	if e, ok := err.(*Error); !ok || e.Kind != ErrCopyLimitExceeded {
		t.Errorf("got %v, want ErrCopyLimitExceeded", err)
	}
}
