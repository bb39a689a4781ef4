// Package validation checks dataset configs before they reach the
// generation engine. The engine still performs its own internal checks;
// this layer exists so a bad config fails before any work happens.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/registry"
	"github.com/mmrzaf/synthgen/internal/timeutil"
)

type Validator struct {
	registry *registry.Registry
}

func NewValidator(r *registry.Registry) *Validator {
	return &Validator{registry: r}
}

// identifier validation: allow simple SQL identifiers only (prevents injection via table/column names).
var (
	identRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reservedWords = map[string]struct{}{
		"add": {}, "all": {}, "alter": {}, "and": {}, "any": {}, "as": {},
		"asc": {}, "between": {}, "by": {}, "case": {}, "check": {},
		"column": {}, "constraint": {}, "create": {}, "cross": {}, "current_date": {},
		"current_time": {}, "current_timestamp": {}, "database": {}, "default": {}, "delete": {},
		"desc": {}, "distinct": {}, "do": {}, "drop": {}, "else": {},
		"end": {}, "except": {}, "exists": {}, "false": {}, "for": {},
		"foreign": {}, "from": {}, "full": {}, "grant": {}, "group": {},
		"having": {}, "in": {}, "index": {}, "inner": {}, "insert": {},
		"intersect": {}, "into": {}, "is": {}, "join": {}, "key": {},
		"left": {}, "like": {}, "limit": {}, "natural": {}, "not": {},
		"null": {}, "offset": {}, "on": {}, "or": {}, "order": {},
		"outer": {}, "primary": {}, "references": {}, "returning": {}, "revoke": {},
		"right": {}, "schema": {}, "select": {}, "set": {}, "table": {},
		"then": {}, "to": {}, "true": {}, "truncate": {}, "union": {},
		"unique": {}, "update": {}, "user": {}, "using": {}, "values": {},
		"view": {}, "when": {}, "where": {}, "with": {},
	}
)

func IsValidIdentifier(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !identRe.MatchString(s) {
		return false
	}
	if _, ok := reservedWords[strings.ToLower(s)]; ok {
		return false
	}
	return true
}

func (v *Validator) ValidateConfig(cfg *domain.DatasetConfig) error {
	if cfg.Generator == "" {
		return errors.New("generator is required")
	}
	if _, err := v.registry.Get(cfg.Generator); err != nil {
		return err
	}

	if cfg.Rows <= 0 {
		return fmt.Errorf("%w: rows must be > 0, got %d", domain.ErrInvalidParameter, cfg.Rows)
	}

	if cfg.Output == "" && cfg.Target == nil {
		return errors.New("either output or target is required")
	}
	if cfg.Output != "" && cfg.Target != nil {
		return errors.New("only one of output or target may be set")
	}
	if cfg.Target != nil {
		if err := v.validateTarget(cfg.Target); err != nil {
			return err
		}
	}

	for col, cc := range cfg.Columns {
		if cc.NullRate < 0 || cc.NullRate > 1 {
			return fmt.Errorf("%w: null_rate for column %q must be in [0, 1], got %v",
				domain.ErrInvalidParameter, col, cc.NullRate)
		}
	}

	return v.validateSettings(cfg)
}

func (v *Validator) validateTarget(t *domain.TargetConfig) error {
	switch t.Kind {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported target kind: %s", t.Kind)
	}
	if t.DSN == "" {
		return errors.New("target dsn is required")
	}
	if t.Table == "" {
		return errors.New("target table is required")
	}
	if !IsValidIdentifier(t.Table) {
		return fmt.Errorf("invalid target table identifier: %s", t.Table)
	}
	if t.Schema != "" && !IsValidIdentifier(t.Schema) {
		return fmt.Errorf("invalid target schema identifier: %s", t.Schema)
	}
	return nil
}

// validateSettings decodes the kind-specific settings block so malformed
// ranges and weights are rejected up front.
func (v *Validator) validateSettings(cfg *domain.DatasetConfig) error {
	switch cfg.Generator {
	case domain.KindEnvironmentalSensor, domain.KindSensorFleet:
		var s registry.SensorSettings
		if err := registry.DecodeSettings(&cfg.Settings, &s); err != nil {
			return err
		}
		for name, r := range map[string]registry.RangeSettings{
			"temperature": s.Temperature,
			"humidity":    s.Humidity,
			"co2_level":   s.CO2,
		} {
			if (r.Min == nil) != (r.Max == nil) {
				return fmt.Errorf("%w: %s range requires both min and max", domain.ErrInvalidParameter, name)
			}
			if r.Min != nil && r.Max != nil && *r.Max <= *r.Min {
				return fmt.Errorf("%w: %s range [%v, %v]", domain.ErrInvalidParameter, name, *r.Min, *r.Max)
			}
			if r.NullRate < 0 || r.NullRate > 1 {
				return fmt.Errorf("%w: %s null_rate %v outside [0, 1]", domain.ErrInvalidParameter, name, r.NullRate)
			}
		}
		if s.Anomalies.Rate < 0 || s.Anomalies.Rate > 1 {
			return fmt.Errorf("%w: anomaly rate %v outside [0, 1]", domain.ErrInvalidParameter, s.Anomalies.Rate)
		}
		if cfg.Generator == domain.KindSensorFleet {
			if s.NSensors < 0 {
				return fmt.Errorf("%w: n_sensors %d", domain.ErrInvalidParameter, s.NSensors)
			}
			// readings_per_sensor unset means each sensor gets rows/n_sensors
			if s.ReadingsPerSensor == 0 {
				nSensors := s.NSensors
				if nSensors == 0 {
					nSensors = 3
				}
				if cfg.Rows%nSensors != 0 {
					return fmt.Errorf("%w: rows %d not divisible by n_sensors %d (set readings_per_sensor)",
						domain.ErrInvalidParameter, cfg.Rows, nSensors)
				}
			}
		}
	case domain.KindJobLogs:
		var s registry.LogSettings
		if err := registry.DecodeSettings(&cfg.Settings, &s); err != nil {
			return err
		}
		if s.Duration.Max != 0 && s.Duration.Max < s.Duration.Min {
			return fmt.Errorf("%w: duration range [%d, %d]", domain.ErrInvalidParameter, s.Duration.Min, s.Duration.Max)
		}
		if err := validateDateWindow(s.StartDate, s.EndDate); err != nil {
			return err
		}
		if s.StatusDistribution != nil {
			total := 0.0
			for status, w := range s.StatusDistribution {
				if w < 0 {
					return fmt.Errorf("%w: negative weight for status %q", domain.ErrInvalidParameter, status)
				}
				total += w
			}
			if total == 0 {
				return fmt.Errorf("%w: status distribution weights sum to zero", domain.ErrInvalidParameter)
			}
		}
	case domain.KindBusinessTransactions:
		var s registry.TransactionSettings
		if err := registry.DecodeSettings(&cfg.Settings, &s); err != nil {
			return err
		}
		if s.NCustomers < 0 {
			return fmt.Errorf("%w: n_customers %d", domain.ErrInvalidParameter, s.NCustomers)
		}
		if err := validateDateWindow(s.StartDate, s.EndDate); err != nil {
			return err
		}
	case domain.KindUserActivity:
		var s registry.ActivitySettings
		if err := registry.DecodeSettings(&cfg.Settings, &s); err != nil {
			return err
		}
		if s.NUsers < 0 {
			return fmt.Errorf("%w: n_users %d", domain.ErrInvalidParameter, s.NUsers)
		}
		if err := validateDateWindow(s.StartDate, s.EndDate); err != nil {
			return err
		}
	}
	return nil
}

// validateDateWindow rejects windows whose end precedes their start.
// Empty values fall back to generator defaults and are always ordered.
func validateDateWindow(startRaw, endRaw string) error {
	if startRaw == "" || endRaw == "" {
		return nil
	}
	now := time.Now()
	start, err := timeutil.ParseRelativeTime(startRaw, now)
	if err != nil {
		return fmt.Errorf("%w: start_date: %v", domain.ErrInvalidParameter, err)
	}
	end, err := timeutil.ParseRelativeTime(endRaw, now)
	if err != nil {
		return fmt.Errorf("%w: end_date: %v", domain.ErrInvalidParameter, err)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date %q precedes start_date %q", domain.ErrInvalidParameter, endRaw, startRaw)
	}
	return nil
}
