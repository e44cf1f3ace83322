package data

import (
	"sync"
	"testing"
	"time"

	"github.com/rxsaudi/formulary-api/catalog/entities"
	"github.com/rxsaudi/formulary-api/logging"
)

func TestNewDataContainer_StartsEmpty(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()

	if len(dc.GetMedicines()) != 0 {
		t.Error("Expected empty medicine catalog")
	}
	if len(dc.GetCosmetics()) != 0 {
		t.Error("Expected empty cosmetics catalog")
	}
	if len(dc.GetFormulary()) != 0 {
		t.Error("Expected empty formulary")
	}
	if len(dc.GetMedicinesByRegister()) != 0 {
		t.Error("Expected empty register index")
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("Expected zero last-updated time")
	}
	if dc.IsUpdating() {
		t.Error("Expected no update in progress")
	}
}

func TestUpdateData_SwapsAllCollections(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()

	medicines := []entities.Medicine{{RegisterNumber: "1", TradeName: "Panadol"}}
	cosmetics := []entities.Cosmetic{{ID: "1", SpecificName: "Face Cream"}}
	formulary := []entities.InsuranceDrug{{ScientificName: "Paracetamol"}}
	byRegister := map[string]entities.Medicine{"1": medicines[0]}

	before := time.Now()
	dc.UpdateData(medicines, cosmetics, formulary, byRegister)

	if len(dc.GetMedicines()) != 1 {
		t.Error("Expected medicine catalog to be replaced")
	}
	if len(dc.GetCosmetics()) != 1 {
		t.Error("Expected cosmetics catalog to be replaced")
	}
	if len(dc.GetFormulary()) != 1 {
		t.Error("Expected formulary to be replaced")
	}
	if dc.GetMedicinesByRegister()["1"].TradeName != "Panadol" {
		t.Error("Expected register index lookup to work")
	}
	if dc.GetLastUpdated().Before(before) {
		t.Error("Expected last-updated timestamp to advance")
	}
}

func TestBeginUpdate_OnlyOneAtATime(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("Expected first BeginUpdate to succeed")
	}
	if dc.BeginUpdate() {
		t.Error("Expected second BeginUpdate to fail while updating")
	}
	if !dc.IsUpdating() {
		t.Error("Expected IsUpdating true during update")
	}

	dc.EndUpdate()

	if dc.IsUpdating() {
		t.Error("Expected IsUpdating false after EndUpdate")
	}
	if !dc.BeginUpdate() {
		t.Error("Expected BeginUpdate to succeed after EndUpdate")
	}
}

func TestServerStartTime(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()
	start := time.Now()
	dc.SetServerStartTime(start)

	if !dc.GetServerStartTime().Equal(start) {
		t.Error("Expected stored start time to round-trip")
	}
}

func TestDataContainer_ConcurrentReadsDuringUpdate(t *testing.T) {
	logging.InitLogger("")

	dc := NewDataContainer()
	dc.UpdateData(
		[]entities.Medicine{{RegisterNumber: "1", TradeName: "Panadol"}},
		[]entities.Cosmetic{},
		[]entities.InsuranceDrug{},
		map[string]entities.Medicine{},
	)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				meds := dc.GetMedicines()
				if len(meds) == 0 {
					t.Error("Reader observed an empty snapshot")
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			dc.UpdateData(
				[]entities.Medicine{{RegisterNumber: "1", TradeName: "Panadol"}},
				[]entities.Cosmetic{},
				[]entities.InsuranceDrug{},
				map[string]entities.Medicine{},
			)
		}
	}()

	wg.Wait()
}
