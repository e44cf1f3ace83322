package entities

// ScientificGroup holds one normalized scientific-name signature together
// with its policy rows, the marketed medicines carrying that signature and
// the aggregated ICD-10 codes seen across the group's policies.
type ScientificGroup struct {
	Signature      string          `json:"signature"`
	ScientificName string          `json:"scientificName"`
	Icd10Codes     []string        `json:"icd10Codes,omitempty"`
	Policies       []InsuranceDrug `json:"policies"`
	Medicines      []Medicine      `json:"medicines"`
}

// IndicationGroup groups coverage results by indication, aggregating the
// ICD-10 codes and the per-drug sub-groups under it.
type IndicationGroup struct {
	Indication string            `json:"indication"`
	Icd10Codes []string          `json:"icd10Codes"`
	Drugs      []ScientificGroup `json:"drugs"`
}

// DrugGroup groups coverage results by drug identity for the trade-name and
// scientific-name search modes. TradeNames carries the marketed names that
// led to the match (trade-name mode) or were inferred from the catalog.
type DrugGroup struct {
	Signature      string          `json:"signature"`
	ScientificName string          `json:"scientificName"`
	TradeNames     []string        `json:"tradeNames"`
	Policies       []InsuranceDrug `json:"policies"`
	Medicines      []Medicine      `json:"medicines"`
}

// NotCoveredMarker is a searched medicine whose normalized scientific name
// has no matching policy row. A first-class result, not an error state.
type NotCoveredMarker struct {
	Signature      string   `json:"signature"`
	ScientificName string   `json:"scientificName"`
	TradeNames     []string `json:"tradeNames"`
}

// CoverageResults is the full output of a coverage search. Exactly one of
// Drugs or Indications is populated depending on the search mode; NotCovered
// always renders after the covered groups.
type CoverageResults struct {
	Drugs       []DrugGroup        `json:"drugs,omitempty"`
	Indications []IndicationGroup  `json:"indications,omitempty"`
	NotCovered  []NotCoveredMarker `json:"notCovered,omitempty"`
}

// Alternatives holds the two result sets of an alternative-drug lookup.
type Alternatives struct {
	Source      Medicine   `json:"source"`
	Direct      []Medicine `json:"direct"`
	Therapeutic []Medicine `json:"therapeutic"`
}
