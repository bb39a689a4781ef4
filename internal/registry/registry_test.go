package registry

import (
	"errors"
	"testing"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"gopkg.in/yaml.v3"
)

func seeded(seed int64) *randutil.Source {
	return randutil.New(&seed)
}

func settingsNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(src), &node); err != nil {
		t.Fatalf("bad test yaml: %v", err)
	}
	// Unmarshal wraps the mapping in a document node
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return node.Content[0]
	}
	return &node
}

func TestDefaultCoversAllKinds(t *testing.T) {
	r := Default()

	kinds := []domain.Kind{
		domain.KindEnvironmentalSensor,
		domain.KindSensorFleet,
		domain.KindBusinessCustomers,
		domain.KindBusinessTransactions,
		domain.KindBusinessProducts,
		domain.KindBusinessSales,
		domain.KindUserProfiles,
		domain.KindUserAccounts,
		domain.KindUserActivity,
		domain.KindUserPreferences,
		domain.KindJobLogs,
	}
	for _, kind := range kinds {
		if _, err := r.Get(kind); err != nil {
			t.Fatalf("kind %s not registered: %v", kind, err)
		}
	}
	if got := len(r.Kinds()); got != len(kinds) {
		t.Fatalf("expected %d kinds, got %d", len(kinds), got)
	}
}

func TestGetUnknownKind(t *testing.T) {
	r := Default()
	_, err := r.Get("csv_dump")
	if !errors.Is(err, domain.ErrUnknownGeneratorKind) {
		t.Fatalf("expected ErrUnknownGeneratorKind, got %v", err)
	}
}

func TestKindsSorted(t *testing.T) {
	kinds := Default().Kinds()
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Fatalf("kinds not sorted: %v", kinds)
		}
	}
}

func TestRunSensorWithSettings(t *testing.T) {
	r := Default()
	run, err := r.Get(domain.KindEnvironmentalSensor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node := settingsNode(t, `
start_date: "2024-01-01"
frequency: "1h"
temperature:
  min: 10
  max: 20
anomalies:
  enabled: true
  rate: 0.05
`)

	tbl, err := run(seeded(42), 48, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 48 {
		t.Fatalf("expected 48 rows, got %d", tbl.Len())
	}

	for _, v := range tbl.Column("temperature") {
		temp := v.(float64)
		if temp < 5 || temp > 25 {
			t.Fatalf("temperature %v outside anomaly-widened range", temp)
		}
	}
}

func TestRunSensorNilSettings(t *testing.T) {
	run, err := Default().Get(domain.KindEnvironmentalSensor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tbl, err := run(seeded(1), 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 10 {
		t.Fatalf("expected 10 rows, got %d", tbl.Len())
	}
}

func TestRunSensorFleetSettings(t *testing.T) {
	run, err := Default().Get(domain.KindSensorFleet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node := settingsNode(t, `
n_sensors: 2
readings_per_sensor: 5
`)

	tbl, err := run(seeded(2), 0, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 10 {
		t.Fatalf("expected 10 rows, got %d", tbl.Len())
	}
}

func TestRunTransactionsSettings(t *testing.T) {
	run, err := Default().Get(domain.KindBusinessTransactions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node := settingsNode(t, `
n_customers: 9
include_shipping: false
`)

	tbl, err := run(seeded(3), 20, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx := tbl.ColumnIndex("shipping_cost"); idx != -1 {
		t.Fatal("expected shipping column to be excluded")
	}
	for _, v := range tbl.Column("customer_id") {
		id := v.(string)
		if len(id) != len("CUST_0") {
			t.Fatalf("expected single-digit padded customer id, got %q", id)
		}
	}
}

func TestRunJobLogsCategory(t *testing.T) {
	run, err := Default().Get(domain.KindJobLogs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node := settingsNode(t, `category: "Bogus"`)
	if _, err := run(seeded(4), 10, node); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestDecodeSettingsBadBlock(t *testing.T) {
	node := settingsNode(t, `temperature: "not a mapping"`)
	var s SensorSettings
	if err := DecodeSettings(node, &s); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestDecodeSettingsEmpty(t *testing.T) {
	var s SensorSettings
	if err := DecodeSettings(nil, &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := DecodeSettings(&yaml.Node{}, &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogParamsFromSettings(t *testing.T) {
	node := settingsNode(t, `
duration:
  min: 5
  max: 60
as_lines: true
separator: ";"
`)

	p, s, err := LogParamsFromSettings(100, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Rows != 100 || p.DurationMin != 5 || p.DurationMax != 60 {
		t.Fatalf("unexpected params: %+v", p)
	}
	if !s.AsLines || s.Separator != ";" {
		t.Fatalf("unexpected settings: %+v", s)
	}
}
