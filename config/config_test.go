package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv() {
	envVars := []string{
		"FIINDOSTATS_FIINDO_FIRST_NAME", "FIINDOSTATS_FIINDO_LAST_NAME",
		"FIINDOSTATS_DATABASE_PASSWORD", "FIINDOSTATS_SERVER_PORT",
	}
	for _, e := range envVars {
		os.Unsetenv(e)
	}
}

func TestLoadReturnsDefaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Fiindo defaults
	if cfg.Fiindo.BaseURL != "https://api.test.fiindo.com/api/v1" {
		t.Errorf("Fiindo.BaseURL: got %q", cfg.Fiindo.BaseURL)
	}
	if cfg.Fiindo.RequestsPerSecond != 5 {
		t.Errorf("Fiindo.RequestsPerSecond: got %f, want 5", cfg.Fiindo.RequestsPerSecond)
	}
	if cfg.Fiindo.Burst != 10 {
		t.Errorf("Fiindo.Burst: got %d, want 10", cfg.Fiindo.Burst)
	}
	if cfg.Fiindo.TimeoutSec != 30 {
		t.Errorf("Fiindo.TimeoutSec: got %d, want 30", cfg.Fiindo.TimeoutSec)
	}

	// Pipeline defaults
	if len(cfg.Pipeline.AllowedIndustries) != 3 {
		t.Fatalf("Pipeline.AllowedIndustries: got %d entries, want 3", len(cfg.Pipeline.AllowedIndustries))
	}
	if cfg.Pipeline.AllowedIndustries[0] != "Banks - Diversified" {
		t.Errorf("Pipeline.AllowedIndustries[0]: got %q", cfg.Pipeline.AllowedIndustries[0])
	}
	if cfg.Pipeline.SymbolWorkers != 4 {
		t.Errorf("Pipeline.SymbolWorkers: got %d, want 4", cfg.Pipeline.SymbolWorkers)
	}
	if !cfg.Pipeline.SpeedBoost {
		t.Error("Pipeline.SpeedBoost should be true by default")
	}

	// Database defaults
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host: got %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port: got %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.Name != "fiindostats" {
		t.Errorf("Database.Name: got %q, want %q", cfg.Database.Name, "fiindostats")
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("Database.SSLMode: got %q, want %q", cfg.Database.SSLMode, "disable")
	}

	// Server defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host: got %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port: got %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
fiindo:
  first_name: "Ada"
  last_name: "Lovelace"
  requests_per_second: 2
  burst: 4
pipeline:
  allowed_industries:
    - "Banks - Diversified"
  symbol_workers: 8
  speed_boost: false
database:
  host: "db.internal"
  password: "secret"
server:
  port: 9090
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	clearEnv()

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Fiindo.FirstName != "Ada" || cfg.Fiindo.LastName != "Lovelace" {
		t.Errorf("Fiindo credentials: got %q %q", cfg.Fiindo.FirstName, cfg.Fiindo.LastName)
	}
	if cfg.Fiindo.RequestsPerSecond != 2 {
		t.Errorf("Fiindo.RequestsPerSecond: got %f, want 2", cfg.Fiindo.RequestsPerSecond)
	}
	if cfg.Fiindo.Burst != 4 {
		t.Errorf("Fiindo.Burst: got %d, want 4", cfg.Fiindo.Burst)
	}
	if len(cfg.Pipeline.AllowedIndustries) != 1 {
		t.Errorf("Pipeline.AllowedIndustries: got %v", cfg.Pipeline.AllowedIndustries)
	}
	if cfg.Pipeline.SymbolWorkers != 8 {
		t.Errorf("Pipeline.SymbolWorkers: got %d, want 8", cfg.Pipeline.SymbolWorkers)
	}
	if cfg.Pipeline.SpeedBoost {
		t.Error("Pipeline.SpeedBoost should be false from file")
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host: got %q", cfg.Database.Host)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("Database.Password: got %q", cfg.Database.Password)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port: got %d, want 9090", cfg.Server.Port)
	}

	// Unspecified values keep their defaults.
	if cfg.Fiindo.TimeoutSec != 30 {
		t.Errorf("Fiindo.TimeoutSec: got %d, want default 30", cfg.Fiindo.TimeoutSec)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port: got %d, want default 5432", cfg.Database.Port)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	clearEnv()
	os.Setenv("FIINDOSTATS_SERVER_PORT", "9999")
	defer os.Unsetenv("FIINDOSTATS_SERVER_PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port: got %d, want env override 9999", cfg.Server.Port)
	}
}

func TestOverrideFromEnv(t *testing.T) {
	cfg := &Config{}

	os.Setenv("FIINDOSTATS_FIINDO_FIRST_NAME", "Grace")
	os.Setenv("FIINDOSTATS_FIINDO_LAST_NAME", "Hopper")
	os.Setenv("FIINDOSTATS_DATABASE_PASSWORD", "hunter2")
	defer func() {
		os.Unsetenv("FIINDOSTATS_FIINDO_FIRST_NAME")
		os.Unsetenv("FIINDOSTATS_FIINDO_LAST_NAME")
		os.Unsetenv("FIINDOSTATS_DATABASE_PASSWORD")
	}()

	overrideFromEnv(cfg)

	if cfg.Fiindo.FirstName != "Grace" {
		t.Errorf("Fiindo.FirstName: got %q", cfg.Fiindo.FirstName)
	}
	if cfg.Fiindo.LastName != "Hopper" {
		t.Errorf("Fiindo.LastName: got %q", cfg.Fiindo.LastName)
	}
	if cfg.Database.Password != "hunter2" {
		t.Errorf("Database.Password: got %q", cfg.Database.Password)
	}
}

func TestOverrideFromEnvNoEnvSet(t *testing.T) {
	clearEnv()

	cfg := &Config{
		Fiindo: FiindoConfig{FirstName: "from-config"},
	}
	overrideFromEnv(cfg)

	if cfg.Fiindo.FirstName != "from-config" {
		t.Errorf("FirstName should stay as 'from-config' when env is unset, got %q", cfg.Fiindo.FirstName)
	}
}

func TestHomeDirReturnsNonEmpty(t *testing.T) {
	h := homeDir()
	if h == "" {
		t.Error("homeDir() should not return empty string")
	}
}
