package search

import (
	"sort"
	"strings"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

// FindAlternatives computes the two alternative sets for a source medicine.
//
// Direct alternatives share the exact scientific name (lower-cased and
// trimmed, not the comma-sorted signature) under a different registration.
// They are ranked by exact strength match to the source first, then
// ascending strength, then pharmaceutical-form affinity, then trade name.
//
// Therapeutic alternatives share the primary ATC code with a different
// scientific name and are ranked ascending by price. A source with no ATC
// code yields an empty therapeutic set.
func FindAlternatives(catalog []entities.Medicine, source entities.Medicine) entities.Alternatives {
	alts := entities.Alternatives{
		Source:      source,
		Direct:      []entities.Medicine{},
		Therapeutic: []entities.Medicine{},
	}

	sourceName := strings.ToLower(strings.TrimSpace(source.ScientificName))
	sourceStrength, sourceHasStrength := parseDecimal(source.Strength)
	sourceForm := strings.ToLower(source.PharmaceuticalForm)

	for _, med := range catalog {
		if med.RegisterNumber == source.RegisterNumber {
			continue
		}
		if strings.ToLower(strings.TrimSpace(med.ScientificName)) == sourceName {
			alts.Direct = append(alts.Direct, med)
		}
	}

	col := newCollator()
	sort.SliceStable(alts.Direct, func(i, j int) bool {
		a, b := alts.Direct[i], alts.Direct[j]

		if sourceHasStrength {
			aExact := strengthEquals(a.Strength, sourceStrength)
			bExact := strengthEquals(b.Strength, sourceStrength)
			if aExact != bExact {
				return aExact
			}
		}

		if c := compareDecimal(a.Strength, b.Strength); c != 0 {
			return c < 0
		}

		aAffinity := formAffinity(a.PharmaceuticalForm, sourceForm)
		bAffinity := formAffinity(b.PharmaceuticalForm, sourceForm)
		if aAffinity != bAffinity {
			return aAffinity
		}

		return col.CompareString(a.TradeName, b.TradeName) < 0
	})

	atc := strings.TrimSpace(source.AtcCode1)
	if atc == "" {
		return alts
	}

	for _, med := range catalog {
		if med.AtcCode1 != atc {
			continue
		}
		if strings.ToLower(strings.TrimSpace(med.ScientificName)) == sourceName {
			continue
		}
		alts.Therapeutic = append(alts.Therapeutic, med)
	}
	sortMedicinesByPrice(alts.Therapeutic)

	return alts
}

// strengthEquals reports whether the candidate strength parses to exactly
// the source's numeric strength.
func strengthEquals(strength string, source float64) bool {
	v, ok := parseDecimal(strength)
	return ok && v == source
}

// formAffinity reports whether the candidate form and the source form are
// substrings of one another, case-insensitively. "Tablet" relates to
// "Film-Coated Tablet"; "Syrup" does not.
func formAffinity(candidateForm, sourceFormLower string) bool {
	if sourceFormLower == "" {
		return false
	}
	candidate := strings.ToLower(candidateForm)
	if candidate == "" {
		return false
	}
	return strings.Contains(candidate, sourceFormLower) || strings.Contains(sourceFormLower, candidate)
}
