package catalog

import (
	"bytes"
	"testing"
)

func TestBuiltinCatalogLoads(t *testing.T) {
	cat, err := New(Builtin())
	if err != nil {
		t.Fatalf("New(Builtin()) failed: %v", err)
	}
	sora, err := cat.Lookup("hSD01-001")
	if err != nil {
		t.Fatalf("Lookup(hSD01-001) failed: %v", err)
	}
	if sora.Kind != KindLead || sora.Lead.Name != "Tokino Sora" {
		t.Errorf("unexpected record for hSD01-001: %+v", sora)
	}
}

func TestLookupUnknownNumber(t *testing.T) {
	cat, err := New(Builtin())
	if err != nil {
		t.Fatalf("New(Builtin()) failed: %v", err)
	}
	if _, err := cat.Lookup("does-not-exist"); err == nil {
		t.Fatal("expected an error looking up an unknown card number")
	}
}

func TestDuplicateNumberRejected(t *testing.T) {
	records := append(Builtin(), &Record{
		Number: "hSD01-001",
		Kind:   KindCheer,
		Cheer:  &CheerData{Name: "dup", Color: White},
	})
	if _, err := New(records); err == nil {
		t.Fatal("expected New to reject a duplicate card number")
	}
}

func TestStorageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Builtin()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	cat, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	pekora, err := cat.Lookup("hBP01-038")
	if err != nil {
		t.Fatalf("Lookup(hBP01-038) after round trip failed: %v", err)
	}
	if pekora.Member.Arts[0].Name != "Konpeko!" {
		t.Errorf("art name lost across round trip: %+v", pekora.Member.Arts[0])
	}
}
