// Package scheduler provides automated catalog refresh scheduling and
// staleness monitoring for the formulary API. It coordinates snapshot
// reloads with the data container using dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rxsaudi/formulary-api/catalog"
	"github.com/rxsaudi/formulary-api/interfaces"
	"github.com/rxsaudi/formulary-api/logging"
	"github.com/rxsaudi/formulary-api/metrics"
	"github.com/rxsaudi/formulary-api/validation"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles catalog refreshes and staleness monitoring
type Scheduler struct {
	dataStore interfaces.DataStore
	loader    interfaces.CatalogLoader
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, loader interfaces.CatalogLoader) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		loader:    loader,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial catalog load and schedules the daily refreshes.
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.refreshCatalog(); err != nil {
		logging.Error("Failed to perform initial catalog load", "error", err)
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	// Schedule refreshes at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.refreshCatalog(); err != nil {
			logging.Error("Failed to refresh catalog", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule catalog refreshes", "error", err)
		return fmt.Errorf("failed to schedule catalog refreshes: %w", err)
	}

	s.scheduler.StartAsync()

	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// refreshCatalog loads a new snapshot and swaps it into the container.
func (s *Scheduler) refreshCatalog() error {
	// Prevent concurrent refreshes
	if !s.dataStore.BeginUpdate() {
		logging.Info("Catalog refresh already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info(fmt.Sprintf("Starting catalog refresh at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	medicines, cosmetics, formulary, err := s.loader.ParseAll()
	if err != nil {
		logging.Error("Failed to parse catalog snapshot", "error", err)
		return fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	byRegister := catalog.BuildRegisterIndex(medicines)

	validator := validation.NewDataValidator()
	report := validator.ReportDataQuality(medicines, formulary)
	validation.LogDataQuality(report)

	// Atomic swap (zero downtime replacement)
	s.dataStore.UpdateData(medicines, cosmetics, formulary, byRegister)
	metrics.SetCatalogSizes(len(medicines), len(cosmetics), len(formulary))

	elapsed := time.Since(start)
	logging.Info("Catalog refresh completed",
		"duration", elapsed.String(),
		"medicine_count", len(medicines),
		"cosmetic_count", len(cosmetics),
		"formulary_count", len(formulary))

	return nil
}

// startStalenessMonitoring warns when the catalog has not refreshed in time.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 25*time.Hour {
				logging.Warn("Catalog hasn't been refreshed in over 25 hours")
			}
		}
	}()
}
