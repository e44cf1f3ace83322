package search

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UnknownGroup is the bucket used when a grouping key (indication,
// scientific name) is blank, so such rows are surfaced instead of dropped.
const UnknownGroup = "Unknown"

// Signature derives the canonical, order-independent equality key for a
// possibly multi-ingredient scientific name: lower-case, split on commas,
// trim each component, sort the components and rejoin. "A, B" and "b,a"
// yield the same signature; omitted or extra components stay distinct.
func Signature(scientificName string) string {
	parts := strings.Split(strings.ToLower(scientificName), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// parseDecimal parses a price or strength field. The snapshots carry "N/A",
// blanks and stray units, so a failed parse returns ok=false rather than 0:
// filtering excludes the record, sorting pushes it last.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Strength fields may lead with the numeric value and trail with a
		// unit or a second component ("500 mg", "500,125").
		fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
		if len(fields) == 0 {
			return 0, false
		}
		v, err = strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
	}
	return v, true
}

// compareDecimal orders two optionally-parsable numeric strings ascending.
// Unparsable values sort after parsable ones; two unparsable values compare
// equal so the caller's next tie-break key decides.
func compareDecimal(a, b string) int {
	av, aok := parseDecimal(a)
	bv, bok := parseDecimal(b)
	switch {
	case aok && bok:
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}

// newCollator builds a loose, case-insensitive collator covering both the
// Arabic and Latin content of the catalogs. Collators are stateful, so each
// sort builds its own instead of sharing one across goroutines.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Loose)
}

// splitCSV splits a comma-separated field into trimmed, non-empty parts.
func splitCSV(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
