// Package entities defines the canonical record types for the formulary API:
// marketed medicines, cosmetics, insurance formulary rows and the grouped
// result structures produced by the search engines.
package entities

import "strings"

// Medicine is a marketed drug or supplement record in its canonical shape.
// All fields are strings because the upstream snapshots mix numeric and
// free-text values ("N/A", blanks); numeric fields are parsed on demand.
type Medicine struct {
	RegisterNumber      string `json:"registerNumber"`
	TradeName           string `json:"tradeName"`
	ScientificName      string `json:"scientificName"`
	Strength            string `json:"strength"`
	StrengthUnit        string `json:"strengthUnit"`
	PharmaceuticalForm  string `json:"pharmaceuticalForm"`
	AdministrationRoute string `json:"administrationRoute,omitempty"`
	PublicPrice         string `json:"publicPrice"`
	LegalStatus         string `json:"legalStatus"`
	ProductType         string `json:"productType"`
	DrugType            string `json:"drugType"`
	ManufactureName     string `json:"manufactureName"`
	ManufactureCountry  string `json:"manufactureCountry,omitempty"`
	AtcCode1            string `json:"atcCode1"`
	AtcCode2            string `json:"atcCode2"`
}

// Legal status display classes.
const (
	LegalStatusOTC          = "OTC"
	LegalStatusPrescription = "Prescription"
	LegalStatusOther        = "Other"
)

// LegalStatusClass classifies the free-text legal status into one of the
// display buckets. The upstream field is not an enum, so this is a heuristic.
func (m Medicine) LegalStatusClass() string {
	status := strings.ToLower(m.LegalStatus)
	switch {
	case status == "":
		return LegalStatusOther
	case strings.Contains(status, "otc") || strings.Contains(status, "without prescription") || strings.Contains(status, "over the counter"):
		return LegalStatusOTC
	case strings.Contains(status, "prescription"):
		return LegalStatusPrescription
	default:
		return LegalStatusOther
	}
}

// IsSupplement reports whether the record is a health supplement rather than
// a human medicine. Supplement snapshots carry DrugType "Health" instead of
// a product type.
func (m Medicine) IsSupplement() bool {
	return m.ProductType == "Supplement" || strings.EqualFold(m.DrugType, "Health")
}
