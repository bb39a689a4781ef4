// Package sinks persists generated tables: CSV/JSON files and sqlite or
// postgres tables. The engine hands over a complete table; sinks never
// see partial output.
package sinks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmrzaf/synthgen/internal/domain"
)

type Sink interface {
	Write(t *domain.Table) error
	// Destination names where the data went, for run records and logs.
	Destination() string
}

// ForConfig resolves a sink from a dataset config: a database target if
// one is set, otherwise a file sink by output extension.
func ForConfig(cfg *domain.DatasetConfig) (Sink, error) {
	if cfg.Target != nil {
		switch cfg.Target.Kind {
		case "sqlite":
			return NewSQLiteSink(cfg.Target.DSN, cfg.Target.Table), nil
		case "postgres":
			return NewPostgresSink(cfg.Target.DSN, cfg.Target.Schema, cfg.Target.Table), nil
		default:
			return nil, fmt.Errorf("unsupported target kind: %s", cfg.Target.Kind)
		}
	}

	switch strings.ToLower(filepath.Ext(cfg.Output)) {
	case ".csv":
		return NewCSVSink(cfg.Output), nil
	case ".json":
		return NewJSONSink(cfg.Output), nil
	default:
		return nil, fmt.Errorf("unsupported output extension: %s", cfg.Output)
	}
}
