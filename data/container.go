// Package data provides thread-safe storage for the catalog collections.
// The DataContainer keeps every collection behind an atomic pointer so a
// refresh swaps whole snapshots with zero downtime and readers never see a
// partially updated catalog.
package data

import (
	"sync/atomic"
	"time"

	"github.com/rxsaudi/formulary-api/catalog/entities"
	"github.com/rxsaudi/formulary-api/interfaces"
	"github.com/rxsaudi/formulary-api/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds all catalog data with atomic pointers for
// zero-downtime updates.
type DataContainer struct {
	medicines       atomic.Value // []entities.Medicine
	cosmetics       atomic.Value // []entities.Cosmetic
	formulary       atomic.Value // []entities.InsuranceDrug
	byRegister      atomic.Value // map[string]entities.Medicine
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.medicines.Store(make([]entities.Medicine, 0))
	dc.cosmetics.Store(make([]entities.Cosmetic, 0))
	dc.formulary.Store(make([]entities.InsuranceDrug, 0))
	dc.byRegister.Store(make(map[string]entities.Medicine))
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetMedicines returns the medicine catalog
func (dc *DataContainer) GetMedicines() []entities.Medicine {
	if v := dc.medicines.Load(); v != nil {
		if medicines, ok := v.([]entities.Medicine); ok {
			return medicines
		}
	}

	logging.Warn("Medicine catalog is empty or invalid")
	return []entities.Medicine{}
}

// GetCosmetics returns the cosmetics catalog
func (dc *DataContainer) GetCosmetics() []entities.Cosmetic {
	if v := dc.cosmetics.Load(); v != nil {
		if cosmetics, ok := v.([]entities.Cosmetic); ok {
			return cosmetics
		}
	}

	logging.Warn("Cosmetics catalog is empty or invalid")
	return []entities.Cosmetic{}
}

// GetFormulary returns the insurance formulary policy rows
func (dc *DataContainer) GetFormulary() []entities.InsuranceDrug {
	if v := dc.formulary.Load(); v != nil {
		if formulary, ok := v.([]entities.InsuranceDrug); ok {
			return formulary
		}
	}

	logging.Warn("Formulary is empty or invalid")
	return []entities.InsuranceDrug{}
}

// GetMedicinesByRegister returns the register-number index for O(1) lookups
func (dc *DataContainer) GetMedicinesByRegister() map[string]entities.Medicine {
	if v := dc.byRegister.Load(); v != nil {
		if byRegister, ok := v.(map[string]entities.Medicine); ok {
			return byRegister
		}
	}

	logging.Warn("Medicine register index is empty or invalid")
	return make(map[string]entities.Medicine)
}

// GetLastUpdated returns the timestamp of the last data update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically replaces every collection in the container
func (dc *DataContainer) UpdateData(medicines []entities.Medicine, cosmetics []entities.Cosmetic,
	formulary []entities.InsuranceDrug, byRegister map[string]entities.Medicine) {

	// Atomic swap (zero downtime replacement)
	dc.medicines.Store(medicines)
	dc.cosmetics.Store(cosmetics)
	dc.formulary.Store(formulary)
	dc.byRegister.Store(byRegister)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data update operation.
// Returns true if the update can proceed, false if another is in progress.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
