package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmrzaf/synthgen/internal/domain"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestListLoadsYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "sensors.yaml", `
id: sensors
generator: environmental_sensor
rows: 100
output: sensors.csv
`)
	writeConfig(t, dir, "logs.yml", `
id: logs
generator: job_logs
rows: 50
output: logs.csv
`)
	writeConfig(t, dir, "notes.txt", "not a config")
	writeConfig(t, dir, "broken.yaml", "{{nope")

	repo := NewFileRepository(dir)
	list, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(list))
	}
}

func TestListMissingDirectory(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "nope"))
	list, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestGetByIDOrName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "sensors.yaml", `
id: sensors-daily
name: Daily sensor feed
generator: environmental_sensor
rows: 100
output: sensors.csv
`)

	repo := NewFileRepository(dir)

	cfg, err := repo.Get("sensors-daily")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if cfg.Generator != domain.KindEnvironmentalSensor {
		t.Fatalf("unexpected generator: %s", cfg.Generator)
	}

	if _, err := repo.Get("Daily sensor feed"); err != nil {
		t.Fatalf("get by name failed: %v", err)
	}

	if _, err := repo.Get("missing"); err == nil {
		t.Fatal("expected error for unknown config")
	}
}

func TestGetByPathDefaultsID(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "adhoc.yaml", `
generator: user_profiles
rows: 10
output: users.csv
`)

	repo := NewFileRepository(dir)
	cfg, err := repo.GetByPath(path)
	if err != nil {
		t.Fatalf("get by path failed: %v", err)
	}
	if cfg.ID != "adhoc.yaml" {
		t.Fatalf("expected filename as default id, got %q", cfg.ID)
	}
}

func TestSettingsNodePreserved(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "sensors.yaml", `
generator: environmental_sensor
rows: 10
output: sensors.csv
settings:
  frequency: "1h"
`)

	repo := NewFileRepository(dir)
	cfg, err := repo.GetByPath(path)
	if err != nil {
		t.Fatalf("get by path failed: %v", err)
	}

	var s struct {
		Frequency string `yaml:"frequency"`
	}
	if err := cfg.Settings.Decode(&s); err != nil {
		t.Fatalf("settings decode failed: %v", err)
	}
	if s.Frequency != "1h" {
		t.Fatalf("expected frequency 1h, got %q", s.Frequency)
	}
}
