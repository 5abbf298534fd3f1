package plant

import "testing"

func TestParseSoilPH(t *testing.T) {
	for _, s := range []string{"very acid", "acid", "neutral", "alkaline", "very alkaline"} {
		ph, err := ParseSoilPH(s)
		if err != nil {
			t.Fatalf("ParseSoilPH(%q): %v", s, err)
		}
		if string(ph) != s {
			t.Errorf("ParseSoilPH(%q) = %q", s, ph)
		}
	}
	if _, err := ParseSoilPH("basic"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestSoilPH_Scan(t *testing.T) {
	var ph SoilPH
	if err := ph.Scan([]byte("very alkaline")); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if ph != SoilPHVeryAlkaline {
		t.Errorf("ph = %q", ph)
	}
	if err := ph.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
	if err := ph.Scan("sour"); err == nil {
		t.Error("expected error scanning unknown name")
	}
}
