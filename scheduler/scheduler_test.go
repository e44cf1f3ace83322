package scheduler

import (
	"fmt"
	"testing"

	"github.com/rxsaudi/formulary-api/catalog/entities"
	"github.com/rxsaudi/formulary-api/data"
	"github.com/rxsaudi/formulary-api/logging"
)

// mockLoader implements interfaces.CatalogLoader with canned data.
type mockLoader struct {
	medicines []entities.Medicine
	cosmetics []entities.Cosmetic
	formulary []entities.InsuranceDrug
	err       error
	calls     int
}

func (m *mockLoader) ParseAll() ([]entities.Medicine, []entities.Cosmetic, []entities.InsuranceDrug, error) {
	m.calls++
	if m.err != nil {
		return nil, nil, nil, m.err
	}
	return m.medicines, m.cosmetics, m.formulary, nil
}

func TestRefreshCatalog_SwapsSnapshot(t *testing.T) {
	logging.InitLogger("")

	dc := data.NewDataContainer()
	loader := &mockLoader{
		medicines: []entities.Medicine{{RegisterNumber: "1", TradeName: "Panadol", ScientificName: "Paracetamol"}},
		cosmetics: []entities.Cosmetic{{ID: "1", SpecificName: "Face Cream"}},
		formulary: []entities.InsuranceDrug{{ScientificName: "Paracetamol", Indication: "Pain"}},
	}

	s := NewScheduler(dc, loader)
	if err := s.refreshCatalog(); err != nil {
		t.Fatalf("refreshCatalog failed: %v", err)
	}

	if len(dc.GetMedicines()) != 1 {
		t.Error("Expected medicines to be swapped in")
	}
	if dc.GetMedicinesByRegister()["1"].TradeName != "Panadol" {
		t.Error("Expected the register index to be built")
	}
	if dc.GetLastUpdated().IsZero() {
		t.Error("Expected the last-updated timestamp to be set")
	}
	if loader.calls != 1 {
		t.Errorf("Expected one loader call, got %d", loader.calls)
	}
}

func TestRefreshCatalog_LoaderFailureKeepsOldData(t *testing.T) {
	logging.InitLogger("")

	dc := data.NewDataContainer()
	dc.UpdateData(
		[]entities.Medicine{{RegisterNumber: "1", TradeName: "Old"}},
		nil, nil, map[string]entities.Medicine{},
	)
	previous := dc.GetLastUpdated()

	s := NewScheduler(dc, &mockLoader{err: fmt.Errorf("download failed")})
	if err := s.refreshCatalog(); err == nil {
		t.Fatal("Expected refresh to propagate the loader error")
	}

	if len(dc.GetMedicines()) != 1 || dc.GetMedicines()[0].TradeName != "Old" {
		t.Error("Expected the previous snapshot to survive a failed refresh")
	}
	if !dc.GetLastUpdated().Equal(previous) {
		t.Error("Expected the last-updated timestamp to be unchanged")
	}
	if dc.IsUpdating() {
		t.Error("Expected the updating flag to be released after failure")
	}
}

func TestRefreshCatalog_SkipsWhenUpdateInProgress(t *testing.T) {
	logging.InitLogger("")

	dc := data.NewDataContainer()
	if !dc.BeginUpdate() {
		t.Fatal("Could not mark update in progress")
	}
	defer dc.EndUpdate()

	loader := &mockLoader{}
	s := NewScheduler(dc, loader)

	if err := s.refreshCatalog(); err != nil {
		t.Errorf("Expected a skipped refresh to return nil, got: %v", err)
	}
	if loader.calls != 0 {
		t.Error("Expected the loader not to run while another update holds the flag")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	logging.InitLogger("")

	dc := data.NewDataContainer()
	loader := &mockLoader{
		medicines: []entities.Medicine{{RegisterNumber: "1", TradeName: "Panadol"}},
	}

	s := NewScheduler(dc, loader)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	if loader.calls != 1 {
		t.Errorf("Expected the initial load to run once, got %d calls", loader.calls)
	}
	if len(dc.GetMedicines()) != 1 {
		t.Error("Expected the initial load to populate the container")
	}
}
