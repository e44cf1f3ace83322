package entities

// InsuranceDrug is one formulary policy row: a covered combination of
// indication + drug + strength/form under the national payer ruleset.
// Several rows sharing an indication or a scientific name is expected.
type InsuranceDrug struct {
	Indication          string `json:"indication"`
	Icd10Code           string `json:"icd10Code"`
	DrugClass           string `json:"drugClass"`
	ScientificName      string `json:"scientificName"`
	Form                string `json:"form"`
	Strength            string `json:"strength"`
	StrengthUnit        string `json:"strengthUnit"`
	AdministrationRoute string `json:"administrationRoute,omitempty"`
	Substitutable       string `json:"substitutable,omitempty"`
	PrescribingEdits    string `json:"prescribingEdits,omitempty"`
	MaxDailyDose        string `json:"maxDailyDose,omitempty"`
	MaxDailyDoseUnit    string `json:"maxDailyDoseUnit,omitempty"`
	PatientType         string `json:"patientType,omitempty"`
	Notes               string `json:"notes,omitempty"`
}
