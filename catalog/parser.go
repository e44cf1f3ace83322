package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rxsaudi/formulary-api/catalog/entities"
	"github.com/rxsaudi/formulary-api/interfaces"
	"github.com/rxsaudi/formulary-api/logging"
)

// Compile-time check to ensure Parser implements CatalogLoader
var _ interfaces.CatalogLoader = (*Parser)(nil)

// Parser loads the full catalog snapshot from the data directory,
// refreshing from the remote base URL first when one is configured.
type Parser struct {
	dataDir string
	baseURL string
}

// NewParser creates a Parser reading from dataDir. baseURL may be empty, in
// which case only the bundled/cached files are used.
func NewParser(dataDir, baseURL string) *Parser {
	return &Parser{dataDir: dataDir, baseURL: baseURL}
}

// ParseAll produces a complete catalog snapshot: normalized medicines (both
// schemas merged), cosmetics and formulary rows. The supplement file is
// optional; everything else must parse.
func (p *Parser) ParseAll() ([]entities.Medicine, []entities.Cosmetic, []entities.InsuranceDrug, error) {
	if p.baseURL != "" {
		if err := downloadAllSnapshots(p.dataDir, p.baseURL); err != nil {
			// A failed refresh falls back to the cached snapshot on disk.
			logging.Warn("Snapshot refresh failed, using cached files", "error", err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(4)

	var (
		medicines   []entities.Medicine
		supplements []entities.Medicine
		cosmetics   []entities.Cosmetic
		formulary   []entities.InsuranceDrug

		medicinesErr   error
		supplementsErr error
		cosmeticsErr   error
		formularyErr   error
	)

	go func() {
		defer wg.Done()
		medicines, medicinesErr = readMedicineFile(filepath.Join(p.dataDir, medicinesFile))
	}()

	go func() {
		defer wg.Done()
		path := filepath.Join(p.dataDir, supplementsFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return
		}
		supplements, supplementsErr = readMedicineFile(path)
	}()

	go func() {
		defer wg.Done()
		cosmetics, cosmeticsErr = readCosmeticsFile(filepath.Join(p.dataDir, cosmeticsFile))
	}()

	go func() {
		defer wg.Done()
		formulary, formularyErr = readFormularyFile(filepath.Join(p.dataDir, formularyFile))
	}()

	wg.Wait()

	for _, err := range []error{medicinesErr, supplementsErr, cosmeticsErr, formularyErr} {
		if err != nil {
			return nil, nil, nil, fmt.Errorf("catalog parse failed: %w", err)
		}
	}

	medicines = append(medicines, supplements...)

	logging.Info("Catalog snapshot parsed",
		"medicines", len(medicines),
		"cosmetics", len(cosmetics),
		"formulary_rows", len(formulary))

	return medicines, cosmetics, formulary, nil
}

// BuildRegisterIndex builds the register-number lookup map for a medicine
// snapshot. Duplicate register numbers keep the first record and are left
// for the validator to report.
func BuildRegisterIndex(medicines []entities.Medicine) map[string]entities.Medicine {
	index := make(map[string]entities.Medicine, len(medicines))
	for i := range medicines {
		if _, exists := index[medicines[i].RegisterNumber]; !exists {
			index[medicines[i].RegisterNumber] = medicines[i]
		}
	}
	return index
}
