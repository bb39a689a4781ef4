// Package app wires config loading, validation, generation, sinks and
// run records into the services the CLI and API call.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/generators"
	"github.com/mmrzaf/synthgen/internal/hashing"
	"github.com/mmrzaf/synthgen/internal/infra/repos/configs"
	"github.com/mmrzaf/synthgen/internal/infra/repos/runs"
	"github.com/mmrzaf/synthgen/internal/infra/sinks"
	"github.com/mmrzaf/synthgen/internal/logging"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"github.com/mmrzaf/synthgen/internal/registry"
	"github.com/mmrzaf/synthgen/internal/table"
	"github.com/mmrzaf/synthgen/internal/validation"
)

type RunService struct {
	configRepo configs.Repository
	runRepo    runs.Repository
	registry   *registry.Registry
	validator  *validation.Validator
	logger     *logging.Logger
}

func NewRunService(
	configRepo configs.Repository,
	runRepo runs.Repository,
	genRegistry *registry.Registry,
	logger *logging.Logger,
) *RunService {
	return &RunService{
		configRepo: configRepo,
		runRepo:    runRepo,
		registry:   genRegistry,
		validator:  validation.NewValidator(genRegistry),
		logger:     logger,
	}
}

// RunOptions override config fields for one invocation.
type RunOptions struct {
	Seed   *int64
	Output string
}

// RunResult carries the generated data alongside its run record. Lines
// is set instead of Table when job logs render as text lines.
type RunResult struct {
	Run   *domain.Run
	Table *domain.Table
	Lines []string
}

// Generate runs one dataset config end to end: validate, generate,
// apply column nulls, write the sink and record the run.
func (s *RunService) Generate(cfg *domain.DatasetConfig, opts RunOptions) (*RunResult, error) {
	if opts.Seed != nil {
		cfg.Seed = opts.Seed
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
		cfg.Target = nil
	}

	if err := s.validator.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	configHash, err := hashing.HashConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash config: %w", err)
	}

	src := randutil.New(cfg.Seed)

	run := &domain.Run{
		ConfigID:   cfg.ID,
		Generator:  cfg.Generator,
		Rows:       cfg.Rows,
		Seed:       src.Seed(),
		ConfigHash: configHash,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now(),
	}

	result, err := s.produce(cfg, src)
	if err != nil {
		run.Destination = describeDestination(cfg)
		s.recordFailed(run, err)
		return nil, err
	}

	dest, err := s.persist(cfg, result)
	if err != nil {
		run.Destination = describeDestination(cfg)
		s.recordFailed(run, err)
		return nil, err
	}
	run.Destination = dest

	now := time.Now()
	stats := domain.RunStats{
		RowsGenerated:   resultRows(result),
		DurationSeconds: now.Sub(run.StartedAt).Seconds(),
	}
	if result.Table != nil {
		stats.ColumnCount = len(result.Table.Columns)
	}
	statsJSON, _ := json.Marshal(stats)

	run.Status = domain.RunStatusSuccess
	run.CompletedAt = &now
	run.Stats = statsJSON

	if err := s.runRepo.Create(run); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Info("Run %s completed: generator=%s, rows=%d, seed=%d, destination=%s",
		run.ID, cfg.Generator, stats.RowsGenerated, run.Seed, run.Destination)

	result.Run = run
	return result, nil
}

// Preview generates without writing a sink or a run record, returning
// at most limit rows. Configs without a destination are allowed here.
func (s *RunService) Preview(cfg *domain.DatasetConfig, opts RunOptions, limit int) (*RunResult, error) {
	if opts.Seed != nil {
		cfg.Seed = opts.Seed
	}
	if cfg.Output == "" && cfg.Target == nil {
		cfg.Output = "preview.csv"
	}

	if err := s.validator.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	src := randutil.New(cfg.Seed)
	result, err := s.produce(cfg, src)
	if err != nil {
		return nil, err
	}

	if limit > 0 {
		if result.Table != nil && result.Table.Len() > limit {
			result.Table.Rows = result.Table.Rows[:limit]
		}
		if len(result.Lines) > limit {
			result.Lines = result.Lines[:limit]
		}
	}

	return result, nil
}

// produce runs the generator and applies the config's column null
// rates. Job logs with as_lines set render as strings instead.
func (s *RunService) produce(cfg *domain.DatasetConfig, src *randutil.Source) (*RunResult, error) {
	if cfg.Generator == domain.KindJobLogs {
		p, settings, err := registry.LogParamsFromSettings(cfg.Rows, &cfg.Settings)
		if err != nil {
			return nil, err
		}
		if settings.AsLines {
			logs := generators.NewLogs(src)
			sp := generators.LogStringParams{
				LogParams:       p,
				Separator:       settings.Separator,
				TimestampLayout: settings.TimestampFormat,
			}
			var lines []string
			if settings.Category != "" {
				lines, err = logs.GenerateStringsByCategory(settings.Category, sp)
			} else {
				lines, err = logs.GenerateStrings(sp)
			}
			if err != nil {
				return nil, err
			}
			return &RunResult{Lines: lines}, nil
		}
	}

	runner, err := s.registry.Get(cfg.Generator)
	if err != nil {
		return nil, err
	}

	t, err := runner(src, cfg.Rows, &cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	// fixed column order keeps null placement reproducible per seed
	names := make([]string, 0, len(cfg.Columns))
	for col := range cfg.Columns {
		names = append(names, col)
	}
	sort.Strings(names)
	for _, col := range names {
		if cc := cfg.Columns[col]; cc.Nullable && cc.NullRate > 0 {
			table.ApplyNulls(t, col, cc.NullRate, src)
		}
	}

	return &RunResult{Table: t}, nil
}

func (s *RunService) persist(cfg *domain.DatasetConfig, result *RunResult) (string, error) {
	if result.Lines != nil {
		if cfg.Target != nil {
			return "", fmt.Errorf("line output requires a file destination")
		}
		if err := writeLines(cfg.Output, result.Lines); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		return cfg.Output, nil
	}

	sink, err := sinks.ForConfig(cfg)
	if err != nil {
		return "", err
	}
	if err := sink.Write(result.Table); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	return sink.Destination(), nil
}

func (s *RunService) recordFailed(run *domain.Run, cause error) {
	now := time.Now()
	run.Status = domain.RunStatusFailed
	run.Error = cause.Error()
	run.CompletedAt = &now
	if err := s.runRepo.Create(run); err != nil {
		s.logger.Error("Failed to record run: %v", err)
	}
}

func (s *RunService) GetRun(id string) (*domain.Run, error) {
	return s.runRepo.Get(id)
}

func (s *RunService) ListRuns(limit int, status string) ([]*domain.Run, error) {
	return s.runRepo.List(limit, status)
}

func (s *RunService) ListConfigs() ([]*domain.DatasetConfig, error) {
	return s.configRepo.List()
}

func (s *RunService) GetConfig(id string) (*domain.DatasetConfig, error) {
	return s.configRepo.Get(id)
}

func (s *RunService) LoadConfig(path string) (*domain.DatasetConfig, error) {
	return s.configRepo.GetByPath(path)
}

func resultRows(r *RunResult) int {
	if r.Table != nil {
		return r.Table.Len()
	}
	return len(r.Lines)
}

func describeDestination(cfg *domain.DatasetConfig) string {
	if cfg.Target != nil {
		return cfg.Target.Kind + ":" + cfg.Target.Table
	}
	return cfg.Output
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}
