package search

import (
	"testing"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

func TestFindAlternatives_DirectExcludesSource(t *testing.T) {
	catalog := []entities.Medicine{
		{RegisterNumber: "1", TradeName: "Panadol", ScientificName: "Paracetamol", Strength: "500"},
		{RegisterNumber: "2", TradeName: "Fevadol", ScientificName: "Paracetamol", Strength: "500"},
		{RegisterNumber: "3", TradeName: "Adol", ScientificName: "paracetamol ", Strength: "500"},
	}

	alts := FindAlternatives(catalog, catalog[0])

	if len(alts.Direct) != 2 {
		t.Fatalf("Expected 2 direct alternatives, got %d", len(alts.Direct))
	}
	for _, med := range alts.Direct {
		if med.RegisterNumber == "1" {
			t.Error("Expected the source registration to be excluded")
		}
	}
	if alts.Source.RegisterNumber != "1" {
		t.Errorf("Expected source to be echoed, got %s", alts.Source.RegisterNumber)
	}
}

func TestFindAlternatives_ExactStrengthRanksFirst(t *testing.T) {
	source := entities.Medicine{RegisterNumber: "0", TradeName: "Panadol", ScientificName: "Paracetamol", Strength: "500"}
	catalog := []entities.Medicine{
		source,
		{RegisterNumber: "1", TradeName: "Adol 250", ScientificName: "Paracetamol", Strength: "250"},
		{RegisterNumber: "2", TradeName: "Adol 1000", ScientificName: "Paracetamol", Strength: "1000"},
		{RegisterNumber: "3", TradeName: "Fevadol 500", ScientificName: "Paracetamol", Strength: "500"},
	}

	alts := FindAlternatives(catalog, source)

	if len(alts.Direct) != 3 {
		t.Fatalf("Expected 3 direct alternatives, got %d", len(alts.Direct))
	}
	if alts.Direct[0].Strength != "500" {
		t.Errorf("Expected exact strength match first, got %s", alts.Direct[0].Strength)
	}
	if alts.Direct[1].Strength != "250" || alts.Direct[2].Strength != "1000" {
		t.Errorf("Expected remaining strengths ascending [250 1000], got [%s %s]",
			alts.Direct[1].Strength, alts.Direct[2].Strength)
	}
}

func TestFindAlternatives_FormAffinityBreaksStrengthTies(t *testing.T) {
	source := entities.Medicine{
		RegisterNumber: "0", TradeName: "Panadol", ScientificName: "Paracetamol",
		Strength: "500", PharmaceuticalForm: "Tablet",
	}
	catalog := []entities.Medicine{
		source,
		{RegisterNumber: "1", TradeName: "Adol Syrup", ScientificName: "Paracetamol",
			Strength: "500", PharmaceuticalForm: "Syrup"},
		{RegisterNumber: "2", TradeName: "Zydol", ScientificName: "Paracetamol",
			Strength: "500", PharmaceuticalForm: "Film-Coated Tablet"},
	}

	alts := FindAlternatives(catalog, source)

	if len(alts.Direct) != 2 {
		t.Fatalf("Expected 2 direct alternatives, got %d", len(alts.Direct))
	}
	if alts.Direct[0].TradeName != "Zydol" {
		t.Errorf("Expected related form to rank first, got %s", alts.Direct[0].TradeName)
	}
}

func TestFindAlternatives_UnparsableStrengthSortsLast(t *testing.T) {
	source := entities.Medicine{RegisterNumber: "0", ScientificName: "Paracetamol", Strength: "500"}
	catalog := []entities.Medicine{
		source,
		{RegisterNumber: "1", TradeName: "A", ScientificName: "Paracetamol", Strength: "N/A"},
		{RegisterNumber: "2", TradeName: "B", ScientificName: "Paracetamol", Strength: "250"},
	}

	alts := FindAlternatives(catalog, source)

	if alts.Direct[len(alts.Direct)-1].Strength != "N/A" {
		t.Error("Expected unparsable strength to sort last")
	}
}

func TestFindAlternatives_TherapeuticByAtcSortedByPrice(t *testing.T) {
	source := entities.Medicine{
		RegisterNumber: "0", TradeName: "Panadol", ScientificName: "Paracetamol", AtcCode1: "N02BE",
	}
	catalog := []entities.Medicine{
		source,
		{RegisterNumber: "1", TradeName: "Cheap", ScientificName: "Propacetamol", AtcCode1: "N02BE", PublicPrice: "3.00"},
		{RegisterNumber: "2", TradeName: "Pricey", ScientificName: "Phenacetin", AtcCode1: "N02BE", PublicPrice: "9.00"},
		{RegisterNumber: "3", TradeName: "SameIngredient", ScientificName: "Paracetamol", AtcCode1: "N02BE", PublicPrice: "1.00"},
		{RegisterNumber: "4", TradeName: "OtherClass", ScientificName: "Ibuprofen", AtcCode1: "M01AE", PublicPrice: "2.00"},
	}

	alts := FindAlternatives(catalog, source)

	if len(alts.Therapeutic) != 2 {
		t.Fatalf("Expected 2 therapeutic alternatives, got %d", len(alts.Therapeutic))
	}
	if alts.Therapeutic[0].TradeName != "Cheap" || alts.Therapeutic[1].TradeName != "Pricey" {
		t.Errorf("Expected price order [Cheap Pricey], got [%s %s]",
			alts.Therapeutic[0].TradeName, alts.Therapeutic[1].TradeName)
	}
	for _, med := range alts.Therapeutic {
		if med.ScientificName == "Paracetamol" {
			t.Error("Expected same-ingredient records to be excluded from the therapeutic set")
		}
	}
}

func TestFindAlternatives_NoAtcCodeYieldsEmptyTherapeutic(t *testing.T) {
	source := entities.Medicine{RegisterNumber: "0", ScientificName: "Paracetamol"}
	catalog := []entities.Medicine{
		source,
		{RegisterNumber: "1", ScientificName: "Ibuprofen", AtcCode1: "M01AE"},
	}

	alts := FindAlternatives(catalog, source)

	if alts.Therapeutic == nil {
		t.Fatal("Expected an empty slice, not nil")
	}
	if len(alts.Therapeutic) != 0 {
		t.Errorf("Expected no therapeutic alternatives without an ATC code, got %d", len(alts.Therapeutic))
	}
}

func TestFormAffinity(t *testing.T) {
	testCases := []struct {
		candidate string
		source    string
		want      bool
	}{
		{"Film-Coated Tablet", "tablet", true},
		{"Tablet", "film-coated tablet", true},
		{"Syrup", "tablet", false},
		{"", "tablet", false},
		{"Tablet", "", false},
	}

	for _, tc := range testCases {
		if got := formAffinity(tc.candidate, tc.source); got != tc.want {
			t.Errorf("formAffinity(%q, %q) = %v, want %v", tc.candidate, tc.source, got, tc.want)
		}
	}
}
