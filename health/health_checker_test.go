package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/rxsaudi/formulary-api/catalog/entities"
)

// mockDataStore implements interfaces.DataStore with fixed values.
type mockDataStore struct {
	medicines   []entities.Medicine
	cosmetics   []entities.Cosmetic
	formulary   []entities.InsuranceDrug
	lastUpdated time.Time
	updating    bool
}

func (m *mockDataStore) GetMedicines() []entities.Medicine          { return m.medicines }
func (m *mockDataStore) GetCosmetics() []entities.Cosmetic          { return m.cosmetics }
func (m *mockDataStore) GetFormulary() []entities.InsuranceDrug     { return m.formulary }
func (m *mockDataStore) GetMedicinesByRegister() map[string]entities.Medicine {
	return map[string]entities.Medicine{}
}
func (m *mockDataStore) GetLastUpdated() time.Time      { return m.lastUpdated }
func (m *mockDataStore) IsUpdating() bool               { return m.updating }
func (m *mockDataStore) SetServerStartTime(t time.Time) {}
func (m *mockDataStore) GetServerStartTime() time.Time  { return time.Time{} }
func (m *mockDataStore) UpdateData(medicines []entities.Medicine, cosmetics []entities.Cosmetic,
	formulary []entities.InsuranceDrug, byRegister map[string]entities.Medicine) {
}
func (m *mockDataStore) BeginUpdate() bool { return true }
func (m *mockDataStore) EndUpdate()        {}

func TestHealthCheck_NoMedicinesIsUnhealthy(t *testing.T) {
	checker := NewHealthChecker(&mockDataStore{lastUpdated: time.Now()})

	status, _, httpStatus := checker.HealthCheck()

	if status != "unhealthy" {
		t.Errorf("Expected unhealthy, got %s", status)
	}
	if httpStatus != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", httpStatus)
	}
}

func TestHealthCheck_FreshDataIsHealthy(t *testing.T) {
	store := &mockDataStore{
		medicines:   []entities.Medicine{{RegisterNumber: "1", TradeName: "Panadol"}},
		cosmetics:   []entities.Cosmetic{{ID: "1"}},
		formulary:   []entities.InsuranceDrug{{ScientificName: "Paracetamol"}},
		lastUpdated: time.Now().Add(-1 * time.Hour),
	}
	checker := NewHealthChecker(store)

	status, data, httpStatus := checker.HealthCheck()

	if status != "healthy" || httpStatus != http.StatusOK {
		t.Errorf("Expected healthy/200, got %s/%d", status, httpStatus)
	}
	if data["medicines"] != 1 || data["cosmetics"] != 1 || data["formulary_rows"] != 1 {
		t.Errorf("Unexpected collection counts in %v", data)
	}
}

func TestHealthCheck_StaleDataDegrades(t *testing.T) {
	testCases := []struct {
		name       string
		age        time.Duration
		updating   bool
		wantStatus string
	}{
		{"30 hours old", 30 * time.Hour, false, "degraded"},
		{"50 hours old", 50 * time.Hour, false, "unhealthy"},
		{"7 hours old while updating", 7 * time.Hour, true, "degraded"},
		{"7 hours old idle", 7 * time.Hour, false, "healthy"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockDataStore{
				medicines:   []entities.Medicine{{RegisterNumber: "1"}},
				lastUpdated: time.Now().Add(-tc.age),
				updating:    tc.updating,
			}
			checker := NewHealthChecker(store)

			status, _, _ := checker.HealthCheck()
			if status != tc.wantStatus {
				t.Errorf("Expected %s, got %s", tc.wantStatus, status)
			}
		})
	}
}

func TestCalculateNextUpdate(t *testing.T) {
	checker := NewHealthChecker(&mockDataStore{})

	next := checker.CalculateNextUpdate()

	if !next.After(time.Now()) {
		t.Error("Expected next update to be in the future")
	}
	if next.Hour() != 6 && next.Hour() != 18 {
		t.Errorf("Expected a 06:00 or 18:00 slot, got hour %d", next.Hour())
	}
}
