package search

import "testing"

func TestSignature_OrderIndependent(t *testing.T) {
	a := Signature("Amoxicillin, Clavulanic Acid")
	b := Signature("clavulanic acid,AMOXICILLIN")

	if a != b {
		t.Errorf("Expected equal signatures, got %q and %q", a, b)
	}
	if a != "amoxicillin,clavulanic acid" {
		t.Errorf("Unexpected canonical form %q", a)
	}
}

func TestSignature_ComponentSetsStayDistinct(t *testing.T) {
	single := Signature("Amoxicillin")
	combo := Signature("Amoxicillin, Clavulanic Acid")

	if single == combo {
		t.Error("Expected single-ingredient and combination signatures to differ")
	}
}

func TestSignature_Idempotent(t *testing.T) {
	sig := Signature("Paracetamol, Caffeine")
	if Signature(sig) != sig {
		t.Errorf("Expected signature to be a fixed point, got %q", Signature(sig))
	}
}

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		input  string
		want   float64
		wantOk bool
	}{
		{"12.5", 12.5, true},
		{" 7 ", 7, true},
		{"500 mg", 500, true},
		{"500,125", 500, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"mg 500", 0, false},
	}

	for _, tc := range testCases {
		got, ok := parseDecimal(tc.input)
		if ok != tc.wantOk || got != tc.want {
			t.Errorf("parseDecimal(%q) = (%v, %v), want (%v, %v)", tc.input, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestCompareDecimal_UnparsableSortsLast(t *testing.T) {
	if compareDecimal("10", "N/A") != -1 {
		t.Error("Expected parsable value to sort before unparsable")
	}
	if compareDecimal("N/A", "10") != 1 {
		t.Error("Expected unparsable value to sort after parsable")
	}
	if compareDecimal("N/A", "") != 0 {
		t.Error("Expected two unparsable values to compare equal")
	}
	if compareDecimal("2", "10") != -1 {
		t.Error("Expected numeric comparison, not lexicographic")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" E11.9 , , J45 ")
	if len(got) != 2 || got[0] != "E11.9" || got[1] != "J45" {
		t.Errorf("splitCSV returned %v, want [E11.9 J45]", got)
	}

	if splitCSV("") != nil {
		t.Error("Expected empty input to return nil")
	}
}
