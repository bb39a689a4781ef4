package app

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/infra/repos/configs"
	"github.com/mmrzaf/synthgen/internal/infra/repos/runs"
	"github.com/mmrzaf/synthgen/internal/logging"
	"github.com/mmrzaf/synthgen/internal/registry"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newService(t *testing.T) (*RunService, runs.Repository) {
	t.Helper()

	runRepo := runs.NewSQLiteRepository(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, runRepo.Init())
	t.Cleanup(func() { _ = runRepo.Close() })

	configRepo := configs.NewFileRepository(t.TempDir())
	logger := logging.NewLoggerWithWriter("error", io.Discard)

	return NewRunService(configRepo, runRepo, registry.Default(), logger), runRepo
}

func loadConfig(t *testing.T, src string) *domain.DatasetConfig {
	t.Helper()
	var cfg domain.DatasetConfig
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	return &cfg
}

func TestGenerateWritesCSVAndRecordsRun(t *testing.T) {
	svc, runRepo := newService(t)

	out := filepath.Join(t.TempDir(), "sensors.csv")
	cfg := loadConfig(t, `
id: sensors-test
generator: environmental_sensor
rows: 25
seed: 42
settings:
  start_date: "2024-01-01"
  frequency: "1h"
`)
	cfg.Output = out

	result, err := svc.Generate(cfg, RunOptions{})
	require.NoError(t, err)
	require.NotNil(t, result.Run)
	require.Equal(t, domain.RunStatusSuccess, result.Run.Status)
	require.Equal(t, int64(42), result.Run.Seed)
	require.Equal(t, out, result.Run.Destination)
	require.NotEmpty(t, result.Run.ConfigHash)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 26)

	stored, err := runRepo.Get(result.Run.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RunStatusSuccess, stored.Status)

	var stats domain.RunStats
	require.NoError(t, json.Unmarshal(stored.Stats, &stats))
	require.Equal(t, 25, stats.RowsGenerated)
	require.Equal(t, 5, stats.ColumnCount)
}

func TestGenerateSeedOverride(t *testing.T) {
	svc, _ := newService(t)

	run := func(seed int64) *domain.Table {
		cfg := loadConfig(t, `
generator: environmental_sensor
rows: 10
seed: 1
settings:
  start_date: "2024-01-01"
`)
		cfg.Output = filepath.Join(t.TempDir(), "out.csv")
		result, err := svc.Generate(cfg, RunOptions{Seed: &seed})
		require.NoError(t, err)
		require.Equal(t, seed, result.Run.Seed)
		return result.Table
	}

	a := run(7)
	b := run(7)
	require.Equal(t, a.Rows, b.Rows)
}

func TestGenerateAppliesColumnNulls(t *testing.T) {
	svc, _ := newService(t)

	cfg := loadConfig(t, `
generator: user_preferences
rows: 2000
seed: 5
columns:
  theme:
    nullable: true
    null_rate: 0.5
`)
	cfg.Output = filepath.Join(t.TempDir(), "prefs.csv")

	result, err := svc.Generate(cfg, RunOptions{})
	require.NoError(t, err)

	nulls := 0
	for _, v := range result.Table.Column("theme") {
		if v == nil {
			nulls++
		}
	}
	require.InDelta(t, 1000, nulls, 200)
}

func TestGenerateLogLines(t *testing.T) {
	svc, _ := newService(t)

	out := filepath.Join(t.TempDir(), "jobs.log")
	cfg := loadConfig(t, `
generator: job_logs
rows: 20
seed: 3
settings:
  start_date: "2024-02-01"
  end_date: "2024-02-10"
  as_lines: true
`)
	cfg.Output = out

	result, err := svc.Generate(cfg, RunOptions{})
	require.NoError(t, err)
	require.Nil(t, result.Table)
	require.Len(t, result.Lines, 20)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 20)
	require.Len(t, strings.Split(lines[0], "|"), 4)
}

func TestGenerateLogLinesScopedToCategory(t *testing.T) {
	svc, _ := newService(t)

	cfg := loadConfig(t, `
generator: job_logs
rows: 50
seed: 11
settings:
  category: "ETL"
  as_lines: true
`)

	result, err := svc.Preview(cfg, RunOptions{}, 0)
	require.NoError(t, err)
	require.Len(t, result.Lines, 50)
	for _, line := range result.Lines {
		job := strings.Split(line, "|")[1]
		require.Contains(t, job, "etl", "job %s outside the ETL category", job)
	}

	bad := loadConfig(t, `
generator: job_logs
rows: 10
settings:
  category: "NotACategory"
  as_lines: true
`)
	_, err = svc.Preview(bad, RunOptions{}, 0)
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestGenerateInvalidConfig(t *testing.T) {
	svc, runRepo := newService(t)

	cfg := loadConfig(t, `
generator: teleportation
rows: 10
output: out.csv
`)
	_, err := svc.Generate(cfg, RunOptions{})
	require.ErrorIs(t, err, domain.ErrUnknownGeneratorKind)

	list, err := runRepo.List(0, "")
	require.NoError(t, err)
	require.Empty(t, list, "invalid configs should fail before a run record exists")
}

func TestGenerateRecordsFailedRun(t *testing.T) {
	svc, runRepo := newService(t)

	cfg := loadConfig(t, `
generator: job_logs
rows: 10
settings:
  category: "Bogus"
`)
	cfg.Output = filepath.Join(t.TempDir(), "jobs.csv")

	_, err := svc.Generate(cfg, RunOptions{})
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	list, err := runRepo.List(0, string(domain.RunStatusFailed))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Contains(t, list[0].Error, "Bogus")
}

func TestPreviewDoesNotPersist(t *testing.T) {
	svc, runRepo := newService(t)

	cfg := loadConfig(t, `
generator: business_customers
rows: 100
seed: 9
`)

	result, err := svc.Preview(cfg, RunOptions{}, 10)
	require.NoError(t, err)
	require.Nil(t, result.Run)
	require.Equal(t, 10, result.Table.Len())

	list, err := runRepo.List(0, "")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPreviewLimitLargerThanRows(t *testing.T) {
	svc, _ := newService(t)

	cfg := loadConfig(t, `
generator: business_customers
rows: 5
seed: 9
`)

	result, err := svc.Preview(cfg, RunOptions{}, 50)
	require.NoError(t, err)
	require.Equal(t, 5, result.Table.Len())
}

func TestGenerateToSQLiteTarget(t *testing.T) {
	svc, _ := newService(t)

	dbPath := filepath.Join(t.TempDir(), "data.db")
	cfg := loadConfig(t, `
generator: user_profiles
rows: 15
seed: 2
`)
	cfg.Target = &domain.TargetConfig{Kind: "sqlite", DSN: dbPath, Table: "profiles"}

	result, err := svc.Generate(cfg, RunOptions{})
	require.NoError(t, err)
	require.Equal(t, "sqlite:"+dbPath+"/profiles", result.Run.Destination)
}
