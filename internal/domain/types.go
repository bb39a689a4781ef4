package domain

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// Table is the unit of output from every generator: an ordered list of
// column names plus rows aligned with that order. A nil cell is a null.
type Table struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of a named column, or nil if the column does
// not exist.
func (t *Table) Column(name string) []interface{} {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Kind identifies a dataset generator.
type Kind string

const (
	KindEnvironmentalSensor  Kind = "environmental_sensor"
	KindSensorFleet          Kind = "sensor_fleet"
	KindBusinessCustomers    Kind = "business_customers"
	KindBusinessTransactions Kind = "business_transactions"
	KindBusinessProducts     Kind = "business_products"
	KindBusinessSales        Kind = "business_sales"
	KindUserProfiles         Kind = "user_profiles"
	KindUserAccounts         Kind = "user_accounts"
	KindUserActivity         Kind = "user_activity"
	KindUserPreferences      Kind = "user_preferences"
	KindJobLogs              Kind = "job_logs"
)

// DatasetConfig is one resolved dataset description as loaded from a YAML
// config file or an API request body. Settings holds the kind-specific
// block and is decoded by the runner registered for that kind.
type DatasetConfig struct {
	ID        string        `yaml:"id,omitempty" json:"id,omitempty"`
	Name      string        `yaml:"name,omitempty" json:"name,omitempty"`
	Generator Kind          `yaml:"generator" json:"generator"`
	Rows      int           `yaml:"rows" json:"rows"`
	Seed      *int64        `yaml:"seed,omitempty" json:"seed,omitempty"`
	Output    string        `yaml:"output,omitempty" json:"output,omitempty"`
	Target    *TargetConfig `yaml:"target,omitempty" json:"target,omitempty"`
	Settings  yaml.Node     `yaml:"settings,omitempty" json:"-"`

	// Columns maps column names to null-injection settings applied as a
	// post-pass over the generated table.
	Columns map[string]ColumnConfig `yaml:"columns,omitempty" json:"columns,omitempty"`
}

type ColumnConfig struct {
	Nullable bool    `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	NullRate float64 `yaml:"null_rate,omitempty" json:"null_rate,omitempty"`
}

// TargetConfig points a dataset at a database sink instead of a file.
type TargetConfig struct {
	Kind   string `yaml:"kind" json:"kind"`
	DSN    string `yaml:"dsn" json:"dsn"`
	Table  string `yaml:"table" json:"table"`
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Run is one recorded generation invocation.
type Run struct {
	ID          string          `json:"id"`
	ConfigID    string          `json:"config_id"`
	Generator   Kind            `json:"generator"`
	Rows        int             `json:"rows"`
	Seed        int64           `json:"seed"`
	ConfigHash  string          `json:"config_hash"`
	Destination string          `json:"destination"`
	Status      RunStatus       `json:"status"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Stats       json.RawMessage `json:"stats,omitempty"`
	Error       string          `json:"error,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type RunStats struct {
	RowsGenerated   int     `json:"rows_generated"`
	ColumnCount     int     `json:"column_count"`
	DurationSeconds float64 `json:"duration_seconds"`
}
