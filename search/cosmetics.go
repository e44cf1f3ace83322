package search

import (
	"sort"
	"strings"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

// CosmeticQuery is the configuration of a cosmetics catalog search. Brand is
// an exact equality filter, not a pattern.
type CosmeticQuery struct {
	Text  string
	Brand string
}

// FilterCosmetics applies the optional brand filter composed with the
// effective-length-gated pattern search against both the English and Arabic
// specific names. Exact starts-with matches on the search term sort before
// the rest; alphabetical order breaks ties.
func FilterCosmetics(catalog []entities.Cosmetic, q CosmeticQuery) []entities.Cosmetic {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	var matcher *Matcher
	if text != "" {
		if !searchable(text) {
			return []entities.Cosmetic{}
		}
		m := Compile(text)
		matcher = &m
	}

	results := make([]entities.Cosmetic, 0)
	for _, c := range catalog {
		if q.Brand != "" && c.BrandName != q.Brand {
			continue
		}
		if matcher != nil {
			if !matcher.Test(strings.ToLower(c.SpecificName)) && !matcher.Test(strings.ToLower(c.SpecificNameAr)) {
				continue
			}
		}
		results = append(results, c)
	}

	literal := strings.ReplaceAll(text, "%", "")
	col := newCollator()
	sort.SliceStable(results, func(i, j int) bool {
		if literal != "" {
			iPrefix := cosmeticHasPrefix(results[i], literal)
			jPrefix := cosmeticHasPrefix(results[j], literal)
			if iPrefix != jPrefix {
				return iPrefix
			}
		}
		return col.CompareString(results[i].SpecificName, results[j].SpecificName) < 0
	})

	return results
}

func cosmeticHasPrefix(c entities.Cosmetic, literal string) bool {
	return strings.HasPrefix(strings.ToLower(c.SpecificName), literal) ||
		strings.HasPrefix(strings.ToLower(c.SpecificNameAr), literal)
}
