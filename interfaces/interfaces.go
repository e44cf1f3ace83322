// Package interfaces defines the core abstractions of the formulary API
// to keep the data container, loader, scheduler and validators decoupled
// and testable.
package interfaces

import (
	"time"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

// DataQualityReport summarizes the issues found in a catalog snapshot.
type DataQualityReport struct {
	DuplicateRegisterNumbers  []string
	MissingScientificName     int
	MissingScientificNameIDs  []string
	UnpricedMedicines         int
	PoliciesWithoutIndication int
	OrphanPolicySignatures    int // policy signatures with no marketed medicine
	OrphanPolicySignatureList []string
}

// DataStore is the contract for the in-memory catalog store. All getters are
// safe for concurrent use; updates replace whole collections atomically so
// readers never observe a partial snapshot.
type DataStore interface {
	GetMedicines() []entities.Medicine
	GetCosmetics() []entities.Cosmetic
	GetFormulary() []entities.InsuranceDrug
	GetMedicinesByRegister() map[string]entities.Medicine
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time
	SetServerStartTime(t time.Time)

	UpdateData(medicines []entities.Medicine, cosmetics []entities.Cosmetic,
		formulary []entities.InsuranceDrug, byRegister map[string]entities.Medicine)
	BeginUpdate() bool
	EndUpdate()
}

// CatalogLoader is the contract for producing a complete catalog snapshot
// from the bundled or downloaded data files.
type CatalogLoader interface {
	ParseAll() ([]entities.Medicine, []entities.Cosmetic, []entities.InsuranceDrug, error)
}

// Scheduler manages the periodic snapshot refresh and staleness monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// DataValidator validates user input and snapshot quality.
type DataValidator interface {
	ValidateMedicine(m *entities.Medicine) error
	ValidateDataIntegrity(medicines []entities.Medicine, formulary []entities.InsuranceDrug) error
	ReportDataQuality(medicines []entities.Medicine, formulary []entities.InsuranceDrug) *DataQualityReport
	ValidateSearchInput(input string) error
	ValidateRegisterNumber(input string) (string, error)
}

// HealthChecker reports system health for the /health endpoint.
type HealthChecker interface {
	HealthCheck() (status string, details map[string]any, httpStatus int)
	CalculateNextUpdate() time.Time
}
