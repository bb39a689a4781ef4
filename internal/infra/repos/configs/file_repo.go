package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmrzaf/synthgen/internal/domain"
	"gopkg.in/yaml.v3"
)

type Repository interface {
	List() ([]*domain.DatasetConfig, error)
	Get(id string) (*domain.DatasetConfig, error)
	GetByPath(path string) (*domain.DatasetConfig, error)
}

// FileRepository loads dataset configs from YAML files in one directory.
type FileRepository struct {
	baseDir string
}

func NewFileRepository(baseDir string) *FileRepository {
	return &FileRepository{baseDir: baseDir}
}

func (r *FileRepository) List() ([]*domain.DatasetConfig, error) {
	if _, err := os.Stat(r.baseDir); os.IsNotExist(err) {
		return []*domain.DatasetConfig{}, nil
	}

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.DatasetConfig, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		cfg, err := r.load(filepath.Join(r.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		list = append(list, cfg)
	}

	return list, nil
}

func (r *FileRepository) Get(id string) (*domain.DatasetConfig, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, cfg := range list {
		if cfg.ID == id || cfg.Name == id {
			return cfg, nil
		}
	}

	return nil, fmt.Errorf("dataset config not found: %s", id)
}

func (r *FileRepository) GetByPath(path string) (*domain.DatasetConfig, error) {
	return r.load(path)
}

func (r *FileRepository) load(path string) (*domain.DatasetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg domain.DatasetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.ID == "" {
		cfg.ID = filepath.Base(path)
	}

	return &cfg, nil
}
