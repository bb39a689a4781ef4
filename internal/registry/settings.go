package registry

import (
	"fmt"
	"time"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/timeutil"
	"gopkg.in/yaml.v3"
)

// YAML shapes of the per-kind settings blocks. Dates accept absolute
// layouts or relative offsets ("-30d"); frequencies accept Go durations
// plus d/w suffixes.

type RangeSettings struct {
	Min      *float64 `yaml:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty"`
	Nullable bool     `yaml:"nullable,omitempty"`
	NullRate float64  `yaml:"null_rate,omitempty"`
}

type SensorSpecSettings struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location,omitempty"`
}

type AnomalySettings struct {
	Enabled bool    `yaml:"enabled,omitempty"`
	Rate    float64 `yaml:"rate,omitempty"`
}

type SensorSettings struct {
	StartDate string               `yaml:"start_date,omitempty"`
	Frequency string               `yaml:"frequency,omitempty"`
	Sensors   []SensorSpecSettings `yaml:"sensors,omitempty"`

	Temperature RangeSettings   `yaml:"temperature,omitempty"`
	Humidity    RangeSettings   `yaml:"humidity,omitempty"`
	CO2         RangeSettings   `yaml:"co2_level,omitempty"`
	Anomalies   AnomalySettings `yaml:"anomalies,omitempty"`

	// Fleet mode only.
	NSensors          int `yaml:"n_sensors,omitempty"`
	ReadingsPerSensor int `yaml:"readings_per_sensor,omitempty"`
}

type CustomerSettings struct {
	IncludeAddress    *bool `yaml:"include_address,omitempty"`
	IncludeSignupDate *bool `yaml:"include_signup_date,omitempty"`
}

type TransactionSettings struct {
	NCustomers      int    `yaml:"n_customers,omitempty"`
	StartDate       string `yaml:"start_date,omitempty"`
	EndDate         string `yaml:"end_date,omitempty"`
	IncludeShipping *bool  `yaml:"include_shipping,omitempty"`
}

type ProductSettings struct {
	IncludeInventory *bool `yaml:"include_inventory,omitempty"`
}

type SalesSettings struct {
	StartDate string `yaml:"start_date,omitempty"`
	Frequency string `yaml:"frequency,omitempty"`
}

type ProfileSettings struct {
	IncludeBio    bool `yaml:"include_bio,omitempty"`
	IncludeSocial bool `yaml:"include_social,omitempty"`
}

type AccountSettings struct {
	IncludeSubscription *bool `yaml:"include_subscription,omitempty"`
}

type ActivitySettings struct {
	NUsers    int    `yaml:"n_users,omitempty"`
	StartDate string `yaml:"start_date,omitempty"`
	EndDate   string `yaml:"end_date,omitempty"`
}

type DurationSettings struct {
	Min int `yaml:"min,omitempty"`
	Max int `yaml:"max,omitempty"`
}

type LogSettings struct {
	StartDate          string             `yaml:"start_date,omitempty"`
	EndDate            string             `yaml:"end_date,omitempty"`
	Category           string             `yaml:"category,omitempty"`
	JobNames           []string           `yaml:"job_names,omitempty"`
	StatusDistribution map[string]float64 `yaml:"status_distribution,omitempty"`
	Duration           DurationSettings   `yaml:"duration,omitempty"`
	IncludeErrorMessage bool              `yaml:"include_error_message,omitempty"`
	IncludeSeverity     bool              `yaml:"include_severity,omitempty"`

	// AsLines switches output from a table to rendered log lines.
	AsLines         bool   `yaml:"as_lines,omitempty"`
	Separator       string `yaml:"separator,omitempty"`
	TimestampFormat string `yaml:"timestamp_format,omitempty"`
}

// DecodeSettings unpacks a settings node into the given struct. An empty
// node leaves the struct at its zero value.
func DecodeSettings(node *yaml.Node, out interface{}) error {
	if node == nil || node.Kind == 0 {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("%w: bad settings block: %v", domain.ErrInvalidParameter, err)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := timeutil.ParseRelativeTime(s, time.Now())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
	}
	return t, nil
}

func parseFrequency(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := timeutil.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: frequency must be positive, got %s", domain.ErrInvalidParameter, s)
	}
	return d, nil
}

func orTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}
