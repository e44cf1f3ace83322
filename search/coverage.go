package search

import (
	"strings"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

// CoverageMode selects how a coverage search term is interpreted.
type CoverageMode string

const (
	CoverageByTradeName      CoverageMode = "tradeName"
	CoverageByScientificName CoverageMode = "scientificName"
	CoverageByIndication     CoverageMode = "indication"
	CoverageByIcd10Code      CoverageMode = "icd10Code"
)

// CoverageQuery is one coverage search request.
type CoverageQuery struct {
	Term string
	Mode CoverageMode
}

// MatchCoverage finds the formulary policy rows matching the query,
// cross-references them against the medicine catalog and returns the
// grouped result. It is a pure function of its three inputs.
//
// Name modes group by drug identity (DrugGroup) and emit a NotCoveredMarker
// for every searched drug with no policy match. Indication and ICD-10 modes
// group by indication (IndicationGroup) with per-drug sub-groups.
func MatchCoverage(q CoverageQuery, policies []entities.InsuranceDrug, catalog []entities.Medicine) entities.CoverageResults {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	if !searchable(term) {
		return entities.CoverageResults{}
	}

	switch q.Mode {
	case CoverageByIndication, CoverageByIcd10Code:
		return matchByIndication(term, q.Mode, policies, catalog)
	default:
		return matchByName(term, q.Mode, policies, catalog)
	}
}

// matchByName handles the trade-name and scientific-name modes.
func matchByName(term string, mode CoverageMode, policies []entities.InsuranceDrug, catalog []entities.Medicine) entities.CoverageResults {
	matcher := Compile(term)

	// Find the marketed medicines the term matches and derive their
	// normalized signatures. Trade-name searches key on the trade name and
	// reach policies only through the ingredient signature.
	matchedSignatures := make(map[string]bool)
	tradeNames := make(map[string][]string)
	for _, med := range catalog {
		var field string
		if mode == CoverageByTradeName {
			field = med.TradeName
		} else {
			field = med.ScientificName
		}
		if !matcher.Test(strings.ToLower(field)) {
			continue
		}
		sig := Signature(med.ScientificName)
		matchedSignatures[sig] = true
		if !containsString(tradeNames[sig], med.TradeName) {
			tradeNames[sig] = append(tradeNames[sig], med.TradeName)
		}
	}

	// Select the covered policy rows. Scientific-name mode also matches the
	// pattern directly against the policy field so formulary rows without a
	// marketed product still surface; signature membership is kept in both
	// modes so a drug can never be both covered and not covered.
	var selected []entities.InsuranceDrug
	for _, pol := range policies {
		sig := Signature(pol.ScientificName)
		switch {
		case matchedSignatures[sig]:
			selected = append(selected, pol)
		case mode == CoverageByScientificName && matcher.Test(strings.ToLower(pol.ScientificName)):
			selected = append(selected, pol)
		}
	}

	bySignature := medicinesBySignature(catalog)

	results := entities.CoverageResults{}
	groupIndex := make(map[string]int)
	for _, pol := range selected {
		sig := Signature(pol.ScientificName)
		idx, ok := groupIndex[sig]
		if !ok {
			idx = len(results.Drugs)
			groupIndex[sig] = idx

			medicines := append([]entities.Medicine(nil), bySignature[sig]...)
			sortMedicinesByPrice(medicines)

			names := append([]string(nil), tradeNames[sig]...)
			for _, med := range medicines {
				if !containsString(names, med.TradeName) {
					names = append(names, med.TradeName)
				}
			}

			results.Drugs = append(results.Drugs, entities.DrugGroup{
				Signature:      sig,
				ScientificName: displayName(pol.ScientificName),
				TradeNames:     names,
				Medicines:      medicines,
			})
		}
		results.Drugs[idx].Policies = append(results.Drugs[idx].Policies, pol)
	}

	// Every matched medicine whose signature has no policy row at all is a
	// first-class "not covered" result, emitted once per signature.
	coveredSignatures := make(map[string]bool)
	for _, pol := range policies {
		coveredSignatures[Signature(pol.ScientificName)] = true
	}
	for _, med := range catalog {
		sig := Signature(med.ScientificName)
		if !matchedSignatures[sig] || coveredSignatures[sig] {
			continue
		}
		matchedSignatures[sig] = false // emit once
		results.NotCovered = append(results.NotCovered, entities.NotCoveredMarker{
			Signature:      sig,
			ScientificName: displayName(med.ScientificName),
			TradeNames:     tradeNames[sig],
		})
	}

	return results
}

// matchByIndication handles the indication and ICD-10 modes with an
// AND-of-keywords substring test instead of the wildcard matcher.
func matchByIndication(term string, mode CoverageMode, policies []entities.InsuranceDrug, catalog []entities.Medicine) entities.CoverageResults {
	keywords := strings.Fields(normalizeKeywords(term))
	if len(keywords) == 0 {
		return entities.CoverageResults{}
	}

	bySignature := medicinesBySignature(catalog)

	results := entities.CoverageResults{}
	groupIndex := make(map[string]int)
	subIndex := make(map[string]map[string]int)

	for _, pol := range policies {
		var field string
		if mode == CoverageByIcd10Code {
			field = pol.Icd10Code
		} else {
			field = pol.Indication
		}
		if !containsAllKeywords(normalizeKeywords(strings.ToLower(field)), keywords) {
			continue
		}

		indication := strings.TrimSpace(pol.Indication)
		if indication == "" {
			indication = UnknownGroup
		}

		gi, ok := groupIndex[indication]
		if !ok {
			gi = len(results.Indications)
			groupIndex[indication] = gi
			subIndex[indication] = make(map[string]int)
			results.Indications = append(results.Indications, entities.IndicationGroup{
				Indication: indication,
			})
		}
		group := &results.Indications[gi]
		group.Icd10Codes = appendDistinct(group.Icd10Codes, splitCSV(pol.Icd10Code)...)

		sig := Signature(pol.ScientificName)
		si, ok := subIndex[indication][sig]
		if !ok {
			si = len(group.Drugs)
			subIndex[indication][sig] = si

			medicines := append([]entities.Medicine(nil), bySignature[sig]...)
			sortMedicinesByPrice(medicines)

			group.Drugs = append(group.Drugs, entities.ScientificGroup{
				Signature:      sig,
				ScientificName: displayName(pol.ScientificName),
				Medicines:      medicines,
			})
		}
		sub := &group.Drugs[si]
		sub.Icd10Codes = appendDistinct(sub.Icd10Codes, splitCSV(pol.Icd10Code)...)
		sub.Policies = append(sub.Policies, pol)
	}

	return results
}

// medicinesBySignature indexes the catalog by normalized signature.
func medicinesBySignature(catalog []entities.Medicine) map[string][]entities.Medicine {
	m := make(map[string][]entities.Medicine, len(catalog))
	for _, med := range catalog {
		sig := Signature(med.ScientificName)
		m[sig] = append(m[sig], med)
	}
	return m
}

// normalizeKeywords maps commas and hyphens to spaces so "E11.9" style codes
// and hyphenated indications tokenize consistently on both sides.
func normalizeKeywords(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || r == '-' {
			return ' '
		}
		return r
	}, s)
}

func containsAllKeywords(field string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(field, kw) {
			return false
		}
	}
	return true
}

// displayName returns the grouping display name, falling back to the
// explicit Unknown bucket for blank scientific names.
func displayName(scientificName string) string {
	if strings.TrimSpace(scientificName) == "" {
		return UnknownGroup
	}
	return strings.TrimSpace(scientificName)
}

func appendDistinct(list []string, values ...string) []string {
	for _, v := range values {
		if !containsString(list, v) {
			list = append(list, v)
		}
	}
	return list
}
