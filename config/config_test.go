package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ADDRESS", "ENV", "LOG_LEVEL", "LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE", "MAX_REQUEST_BODY", "MAX_HEADER_SIZE",
		"DATA_DIR", "SNAPSHOT_BASE_URL",
	} {
		// Empty values take the defaults in Load.
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DataDir != "files" {
		t.Errorf("Expected default data directory, got %s", cfg.DataDir)
	}
	if cfg.SnapshotBaseURL != "" {
		t.Errorf("Expected no snapshot base URL by default, got %s", cfg.SnapshotBaseURL)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid port")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "staging-ish")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown environment")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown log level")
	}
}

func TestLoad_EmptyDataDir(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", "   ")

	if _, err := Load(); err == nil {
		t.Error("Expected error for blank data directory")
	}
}

func TestLoad_SnapshotBaseURLMustBeHTTP(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNAPSHOT_BASE_URL", "ftp://example.com/data")

	if _, err := Load(); err == nil {
		t.Error("Expected error for non-HTTP snapshot URL")
	}

	t.Setenv("SNAPSHOT_BASE_URL", "https://example.com/data")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected https URL to be accepted, got: %v", err)
	}
	if cfg.SnapshotBaseURL != "https://example.com/data" {
		t.Errorf("Unexpected snapshot URL %s", cfg.SnapshotBaseURL)
	}
}

func TestValidatePort_Range(t *testing.T) {
	if err := validatePort("0"); err == nil {
		t.Error("Expected error for port 0")
	}
	if err := validatePort("65536"); err == nil {
		t.Error("Expected error for port above range")
	}
	if err := validatePort("8080"); err != nil {
		t.Errorf("Expected port 8080 to be valid, got: %v", err)
	}
}
