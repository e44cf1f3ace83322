// Package catalog loads the medicine, cosmetics and formulary snapshots
// from local JSON files (optionally refreshed from a remote snapshot URL)
// and normalizes the heterogeneous raw medicine shapes into the canonical
// entities consumed by the search engines.
package catalog

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

// The medicine snapshots come in two shapes: the primary registry schema
// with spaced keys ("Trade Name", "Public price") and the supplement schema
// with compact keys ("TradeName", "Price", "DoesageForm" - the typo is in
// the upstream data). For every canonical field the primary key wins, the
// secondary key is the fallback and a missing value becomes an empty string.

// NormalizeMedicine maps one raw record of either schema into the canonical
// Medicine shape. Every field is coerced to a string; numeric-looking JSON
// values become their decimal representation so downstream code can parse
// prices and strengths on demand.
func NormalizeMedicine(raw map[string]any) entities.Medicine {
	med := entities.Medicine{
		RegisterNumber:      pick(raw, "RegisterNumber", "Id"),
		TradeName:           pick(raw, "Trade Name", "TradeName"),
		ScientificName:      pick(raw, "Scientific Name", "ScientificName"),
		Strength:            pick(raw, "Strength", "StrengthValue"),
		StrengthUnit:        pick(raw, "StrengthUnit", "StrengthUnitValue"),
		PharmaceuticalForm:  pick(raw, "PharmaceuticalForm", "DoesageForm"),
		AdministrationRoute: pick(raw, "AdministrationRoute", "RouteofAdministration"),
		PublicPrice:         pick(raw, "Public price", "Price"),
		LegalStatus:         pick(raw, "Legal Status", "LegalStatus"),
		ProductType:         pick(raw, "Product type", ""),
		DrugType:            pick(raw, "DrugType", ""),
		ManufactureName:     pick(raw, "Manufacture Name", "ManufactureName"),
		ManufactureCountry:  pick(raw, "Manufacture Country", "ManufactureCountry"),
		AtcCode1:            pick(raw, "AtcCode1", "AtcCode"),
		AtcCode2:            pick(raw, "AtcCode2", ""),
	}

	// The supplement schema has no product type; DrugType "Health" marks a
	// supplement. Lossy heuristic carried over from the upstream data.
	if med.ProductType == "" && strings.EqualFold(med.DrugType, "Health") {
		med.ProductType = "Supplement"
	}

	// Records without any identifier get a deterministic derived key so the
	// register-number index stays usable and tests stay reproducible.
	if med.RegisterNumber == "" {
		med.RegisterNumber = derivedRegisterNumber(med.TradeName, med.ScientificName)
	}

	return med
}

// pick returns the stringified value of the first present key.
func pick(raw map[string]any, primary, secondary string) string {
	if v, ok := raw[primary]; ok {
		if s := coerceString(v); s != "" {
			return s
		}
	}
	if secondary != "" {
		if v, ok := raw[secondary]; ok {
			return coerceString(v)
		}
	}
	return ""
}

// coerceString renders a raw JSON value as a string. Whole numbers drop the
// trailing ".0" that float64 decoding would otherwise introduce.
func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}

// derivedRegisterNumber builds a stable placeholder identifier from the
// record's names.
func derivedRegisterNumber(tradeName, scientificName string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(tradeName)))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.ToLower(scientificName)))
	return fmt.Sprintf("gen-%08x", h.Sum32())
}
