package search

import (
	"testing"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

func cosmeticsCatalog() []entities.Cosmetic {
	return []entities.Cosmetic{
		{ID: "1", BrandName: "Nivea", SpecificName: "Hydrating Face Cream", SpecificNameAr: "كريم مرطب للوجه"},
		{ID: "2", BrandName: "Nivea", SpecificName: "Sun Lotion SPF 50", SpecificNameAr: "لوشن واقي من الشمس"},
		{ID: "3", BrandName: "Eucerin", SpecificName: "Cream Cleanser", SpecificNameAr: "منظف كريمي"},
		{ID: "4", BrandName: "Eucerin", SpecificName: "Anti-Aging Cream", SpecificNameAr: "كريم مضاد للشيخوخة"},
	}
}

func TestFilterCosmetics_ShortQueryReturnsEmpty(t *testing.T) {
	results := FilterCosmetics(cosmeticsCatalog(), CosmeticQuery{Text: "cr"})
	if len(results) != 0 {
		t.Errorf("Expected empty result below the length gate, got %d", len(results))
	}
}

func TestFilterCosmetics_BrandIsExactEquality(t *testing.T) {
	results := FilterCosmetics(cosmeticsCatalog(), CosmeticQuery{Brand: "Nivea"})

	if len(results) != 2 {
		t.Fatalf("Expected 2 Nivea products, got %d", len(results))
	}

	// Partial brand values never match.
	partial := FilterCosmetics(cosmeticsCatalog(), CosmeticQuery{Brand: "Niv"})
	if len(partial) != 0 {
		t.Errorf("Expected no results for a partial brand, got %d", len(partial))
	}
}

func TestFilterCosmetics_PrefixMatchesRankFirst(t *testing.T) {
	results := FilterCosmetics(cosmeticsCatalog(), CosmeticQuery{Text: "%cream"})

	if len(results) != 3 {
		t.Fatalf("Expected 3 cream products, got %d", len(results))
	}
	if results[0].SpecificName != "Cream Cleanser" {
		t.Errorf("Expected the starts-with match first, got %s", results[0].SpecificName)
	}
}

func TestFilterCosmetics_MatchesArabicName(t *testing.T) {
	results := FilterCosmetics(cosmeticsCatalog(), CosmeticQuery{Text: "%كريم"})

	if len(results) != 3 {
		t.Fatalf("Expected 3 matches on the Arabic name, got %d", len(results))
	}
}

func TestFilterCosmetics_BrandAndTextCompose(t *testing.T) {
	results := FilterCosmetics(cosmeticsCatalog(), CosmeticQuery{Text: "%cream", Brand: "Eucerin"})

	if len(results) != 2 {
		t.Fatalf("Expected 2 Eucerin cream products, got %d", len(results))
	}
	for _, c := range results {
		if c.BrandName != "Eucerin" {
			t.Errorf("Unexpected brand %q", c.BrandName)
		}
	}
}
