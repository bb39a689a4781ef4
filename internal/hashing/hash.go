// Package hashing produces a stable fingerprint of a dataset config so
// run records can be traced back to the exact configuration that
// produced them.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/mmrzaf/synthgen/internal/domain"
	"gopkg.in/yaml.v3"
)

// HashConfig hashes a canonical rendering of the config. The seed is
// excluded: two runs of the same config with different seeds share a
// hash.
func HashConfig(cfg *domain.DatasetConfig) (string, error) {
	canonical, err := canonicalize(cfg)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(cfg *domain.DatasetConfig) ([]byte, error) {
	var settings interface{}
	if cfg.Settings.Kind != 0 {
		if err := cfg.Settings.Decode(&settings); err != nil {
			return nil, fmt.Errorf("failed to decode settings: %w", err)
		}
	}

	columns := make([]interface{}, 0, len(cfg.Columns))
	names := make([]string, 0, len(cfg.Columns))
	for name := range cfg.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cc := cfg.Columns[name]
		columns = append(columns, map[string]interface{}{
			"name":      name,
			"nullable":  cc.Nullable,
			"null_rate": cc.NullRate,
		})
	}

	payload := map[string]interface{}{
		"generator": string(cfg.Generator),
		"rows":      cfg.Rows,
		"settings":  settings,
		"columns":   columns,
	}
	if cfg.ID != "" {
		payload["id"] = cfg.ID
	}
	if cfg.Output != "" {
		payload["output"] = cfg.Output
	}
	if cfg.Target != nil {
		payload["target"] = map[string]interface{}{
			"kind":   cfg.Target.Kind,
			"dsn":    cfg.Target.DSN,
			"table":  cfg.Target.Table,
			"schema": cfg.Target.Schema,
		}
	}

	// yaml.Marshal sorts map keys, which makes the rendering canonical
	return yaml.Marshal(payload)
}
