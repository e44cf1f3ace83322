package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxsaudi/formulary-api/catalog/entities"
	"github.com/rxsaudi/formulary-api/logging"
)

// readMedicineFile reads one medicine snapshot (either raw schema) and
// normalizes every record. Records without a trade name are skipped and
// counted rather than failing the whole load.
func readMedicineFile(path string) ([]entities.Medicine, error) {
	raw, err := readJSONFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	medicines := make([]entities.Medicine, 0, len(records))
	skippedUnnamed := 0

	for _, rec := range records {
		med := NormalizeMedicine(rec)
		if med.TradeName == "" {
			skippedUnnamed++
			continue
		}
		medicines = append(medicines, med)
	}

	if skippedUnnamed > 0 {
		logging.Info("Medicine snapshot skip statistics",
			"file", filepath.Base(path),
			"skipped_unnamed", skippedUnnamed,
			"records_parsed", len(medicines))
	}

	return medicines, nil
}

// readCosmeticsFile reads the cosmetics snapshot.
func readCosmeticsFile(path string) ([]entities.Cosmetic, error) {
	raw, err := readJSONFile(path)
	if err != nil {
		return nil, err
	}

	var records []entities.Cosmetic
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cosmetics := make([]entities.Cosmetic, 0, len(records))
	skippedUnnamed := 0

	for _, c := range records {
		if strings.TrimSpace(c.SpecificName) == "" && strings.TrimSpace(c.SpecificNameAr) == "" {
			skippedUnnamed++
			continue
		}
		cosmetics = append(cosmetics, c)
	}

	if skippedUnnamed > 0 {
		logging.Info("Cosmetics snapshot skip statistics",
			"file", filepath.Base(path),
			"skipped_unnamed", skippedUnnamed,
			"records_parsed", len(cosmetics))
	}

	return cosmetics, nil
}

// readFormularyFile reads the insurance formulary snapshot. Rows without a
// scientific name are skipped and counted; rows without an indication are
// kept, the coverage matcher buckets them under Unknown.
func readFormularyFile(path string) ([]entities.InsuranceDrug, error) {
	raw, err := readJSONFile(path)
	if err != nil {
		return nil, err
	}

	var records []entities.InsuranceDrug
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	policies := make([]entities.InsuranceDrug, 0, len(records))
	skippedUnnamed := 0

	for _, pol := range records {
		if strings.TrimSpace(pol.ScientificName) == "" {
			skippedUnnamed++
			continue
		}
		policies = append(policies, pol)
	}

	if skippedUnnamed > 0 {
		logging.Info("Formulary snapshot skip statistics",
			"file", filepath.Base(path),
			"skipped_unnamed", skippedUnnamed,
			"records_parsed", len(policies))
	}

	return policies, nil
}

// readJSONFile reads a snapshot file, guarding against paths escaping the
// data directory.
func readJSONFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return nil, fmt.Errorf("invalid filepath: %s", path)
	}

	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cleanPath, err)
	}
	return raw, nil
}
