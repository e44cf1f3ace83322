package search

import (
	"sort"
	"strings"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

// TextMode selects which medicine fields a text query runs against.
type TextMode string

const (
	TextModeTradeName      TextMode = "tradeName"
	TextModeScientificName TextMode = "scientificName"
	TextModeAll            TextMode = "all"
)

// ProductTypeFilter narrows a query to human medicines or supplements.
type ProductTypeFilter string

const (
	ProductTypeAll        ProductTypeFilter = "all"
	ProductTypeMedicine   ProductTypeFilter = "medicine"
	ProductTypeSupplement ProductTypeFilter = "supplement"
)

// SortBy selects the final comparator of a medicine query.
type SortBy string

const (
	SortAlphabetical   SortBy = "alphabetical"
	SortScientificName SortBy = "scientificName"
	SortPriceAsc       SortBy = "priceAsc"
	SortPriceDesc      SortBy = "priceDesc"
)

// MedicineQuery is the full configuration surface of a catalog filter run.
// Price bounds stay strings and are parsed on demand; an empty bound is
// inactive.
type MedicineQuery struct {
	Text          string
	TextMode      TextMode
	ProductType   ProductTypeFilter
	PriceMin      string
	PriceMax      string
	LegalStatus   string // raw status text or a display class (OTC, Prescription, Other)
	Manufacturers []string
	SortBy        SortBy
}

// FilterMedicines applies the text search plus the structured filters to the
// catalog and returns a new slice sorted by the selected comparator.
//
// A non-empty text query shorter than three effective characters returns an
// empty result regardless of the other filters: partial typing shows
// nothing rather than noise.
func FilterMedicines(catalog []entities.Medicine, q MedicineQuery) []entities.Medicine {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	var matcher *Matcher
	if text != "" {
		if !searchable(text) {
			return []entities.Medicine{}
		}
		m := Compile(text)
		matcher = &m
	}

	priceMin, hasMin := parseDecimal(q.PriceMin)
	priceMax, hasMax := parseDecimal(q.PriceMax)

	results := make([]entities.Medicine, 0)
	for _, med := range catalog {
		if matcher != nil && !matchesText(med, *matcher, q.TextMode) {
			continue
		}
		if !matchesProductType(med, q.ProductType) {
			continue
		}
		if hasMin || hasMax {
			price, ok := parseDecimal(med.PublicPrice)
			if !ok {
				// Unknown prices never satisfy an active bound.
				continue
			}
			if hasMin && price < priceMin {
				continue
			}
			if hasMax && price > priceMax {
				continue
			}
		}
		if q.LegalStatus != "" && !matchesLegalStatus(med, q.LegalStatus) {
			continue
		}
		if len(q.Manufacturers) > 0 && !containsString(q.Manufacturers, med.ManufactureName) {
			continue
		}
		results = append(results, med)
	}

	sortMedicines(results, q.SortBy)
	return results
}

// matchesText tests the relevant lower-cased fields against the matcher.
// TextModeAll is an OR across trade and scientific names.
func matchesText(med entities.Medicine, m Matcher, mode TextMode) bool {
	switch mode {
	case TextModeTradeName:
		return m.Test(strings.ToLower(med.TradeName))
	case TextModeScientificName:
		return m.Test(strings.ToLower(med.ScientificName))
	default:
		return m.Test(strings.ToLower(med.TradeName)) || m.Test(strings.ToLower(med.ScientificName))
	}
}

// matchesLegalStatus accepts either the raw upstream status text or one of
// the display classes (OTC, Prescription, Other). The upstream field is
// free text, so class queries go through LegalStatusClass.
func matchesLegalStatus(med entities.Medicine, want string) bool {
	if med.LegalStatus == want {
		return true
	}
	switch want {
	case entities.LegalStatusOTC, entities.LegalStatusPrescription, entities.LegalStatusOther:
		return med.LegalStatusClass() == want
	}
	return false
}

func matchesProductType(med entities.Medicine, pt ProductTypeFilter) bool {
	switch pt {
	case ProductTypeMedicine:
		return med.ProductType == "Human"
	case ProductTypeSupplement:
		return med.IsSupplement()
	default:
		return true
	}
}

// sortMedicines applies the selected comparator. Price sorts fall back to
// trade name when the prices tie or neither price parses.
func sortMedicines(meds []entities.Medicine, by SortBy) {
	col := newCollator()

	switch by {
	case SortScientificName:
		sort.SliceStable(meds, func(i, j int) bool {
			return col.CompareString(meds[i].ScientificName, meds[j].ScientificName) < 0
		})
	case SortPriceAsc:
		sort.SliceStable(meds, func(i, j int) bool {
			if c := compareDecimal(meds[i].PublicPrice, meds[j].PublicPrice); c != 0 {
				return c < 0
			}
			return col.CompareString(meds[i].TradeName, meds[j].TradeName) < 0
		})
	case SortPriceDesc:
		sort.SliceStable(meds, func(i, j int) bool {
			c := compareDecimal(meds[i].PublicPrice, meds[j].PublicPrice)
			if c != 0 {
				// Unparsable prices still sort last in descending order.
				_, iok := parseDecimal(meds[i].PublicPrice)
				_, jok := parseDecimal(meds[j].PublicPrice)
				if iok != jok {
					return iok
				}
				return c > 0
			}
			return col.CompareString(meds[i].TradeName, meds[j].TradeName) < 0
		})
	default:
		sort.SliceStable(meds, func(i, j int) bool {
			return col.CompareString(meds[i].TradeName, meds[j].TradeName) < 0
		})
	}
}

// sortMedicinesByPrice sorts ascending by parsed public price, unknown
// prices last. Shared by the alternative finder and the coverage matcher.
func sortMedicinesByPrice(meds []entities.Medicine) {
	col := newCollator()
	sort.SliceStable(meds, func(i, j int) bool {
		if c := compareDecimal(meds[i].PublicPrice, meds[j].PublicPrice); c != 0 {
			return c < 0
		}
		return col.CompareString(meds[i].TradeName, meds[j].TradeName) < 0
	})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
