package catalog

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rxsaudi/formulary-api/logging"
)

// Snapshot file names, identical locally and on the remote base URL.
const (
	medicinesFile   = "medicines.json"
	supplementsFile = "supplements.json"
	cosmeticsFile   = "cosmetics.json"
	formularyFile   = "formulary.json"
)

var snapshotFiles = []string{medicinesFile, supplementsFile, cosmeticsFile, formularyFile}

// downloadSnapshot fetches one snapshot file into the data directory,
// writing through a temp file so a failed download never clobbers the
// previous snapshot.
func downloadSnapshot(dataDir, baseURL, name string) error {
	url := strings.TrimSuffix(baseURL, "/") + "/" + name

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}
	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", response.StatusCode, url)
	}

	tmpPath := filepath.Join(dataDir, name+".tmp")
	outFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", tmpPath, err)
	}

	if _, err := io.Copy(outFile, response.Body); err != nil {
		outFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, filepath.Join(dataDir, name)); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", name, err)
	}

	logging.Debug(fmt.Sprintf("%s downloaded without errors", name))
	return nil
}

// downloadAllSnapshots fetches every snapshot file concurrently.
func downloadAllSnapshots(dataDir, baseURL string) error {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for _, name := range snapshotFiles {
		wg.Add(1)

		go func(name string) {
			defer wg.Done()
			if err := downloadSnapshot(dataDir, baseURL, name); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()

	if len(errs) > 0 {
		logging.Error("Snapshot download errors occurred", "errors", errs)
		return fmt.Errorf("download errors: %v", errs)
	}

	return nil
}
