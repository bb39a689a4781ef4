package registry

import (
	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/generators"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"gopkg.in/yaml.v3"
)

func sensorParams(rows int, settings *yaml.Node) (generators.SensorParams, error) {
	var s SensorSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return generators.SensorParams{}, err
	}

	start, err := parseDate(s.StartDate)
	if err != nil {
		return generators.SensorParams{}, err
	}
	freq, err := parseFrequency(s.Frequency)
	if err != nil {
		return generators.SensorParams{}, err
	}

	p := generators.SensorParams{
		Rows:         rows,
		StartDate:    start,
		Frequency:    freq,
		AddAnomalies: s.Anomalies.Enabled,
		AnomalyRate:  s.Anomalies.Rate,
		NullRates:    map[string]float64{},
	}

	for _, spec := range s.Sensors {
		p.SensorIDs = append(p.SensorIDs, spec.ID)
		if spec.Location != "" {
			if p.Locations == nil {
				p.Locations = map[string]string{}
			}
			p.Locations[spec.ID] = spec.Location
			p.IncludeLocation = true
		}
	}

	for col, r := range map[string]RangeSettings{
		"temperature": s.Temperature,
		"humidity":    s.Humidity,
		"co2_level":   s.CO2,
	} {
		if r.Nullable && r.NullRate > 0 {
			p.NullRates[col] = r.NullRate
		}
	}
	if s.Temperature.Min != nil && s.Temperature.Max != nil {
		p.TempMin, p.TempMax = *s.Temperature.Min, *s.Temperature.Max
	}
	if s.Humidity.Min != nil && s.Humidity.Max != nil {
		p.HumidityMin, p.HumidityMax = *s.Humidity.Min, *s.Humidity.Max
	}
	if s.CO2.Min != nil && s.CO2.Max != nil {
		p.CO2Min, p.CO2Max = *s.CO2.Min, *s.CO2.Max
	}

	return p, nil
}

func runSensor(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	p, err := sensorParams(rows, settings)
	if err != nil {
		return nil, err
	}
	return generators.NewSensor(src).Generate(p)
}

func runSensorFleet(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s SensorSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	p, err := sensorParams(rows, settings)
	if err != nil {
		return nil, err
	}
	nSensors := s.NSensors
	if nSensors == 0 {
		nSensors = 3
	}
	readings := s.ReadingsPerSensor
	if readings == 0 && rows > 0 && nSensors > 0 {
		readings = rows / nSensors
	}
	return generators.NewSensor(src).GenerateFleet(nSensors, readings, p)
}

func runCustomers(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s CustomerSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	return generators.NewBusiness(src).Customers(generators.CustomerParams{
		Rows:              rows,
		IncludeAddress:    orTrue(s.IncludeAddress),
		IncludeSignupDate: orTrue(s.IncludeSignupDate),
	})
}

func runTransactions(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s TransactionSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	start, err := parseDate(s.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(s.EndDate)
	if err != nil {
		return nil, err
	}
	return generators.NewBusiness(src).Transactions(generators.TransactionParams{
		Rows:            rows,
		NCustomers:      s.NCustomers,
		StartDate:       start,
		EndDate:         end,
		IncludeShipping: orTrue(s.IncludeShipping),
	})
}

func runProducts(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s ProductSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	return generators.NewBusiness(src).Products(generators.ProductParams{
		Rows:             rows,
		IncludeInventory: orTrue(s.IncludeInventory),
	})
}

func runSales(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s SalesSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	start, err := parseDate(s.StartDate)
	if err != nil {
		return nil, err
	}
	freq, err := parseFrequency(s.Frequency)
	if err != nil {
		return nil, err
	}
	return generators.NewBusiness(src).SalesData(generators.SalesParams{
		Rows:      rows,
		StartDate: start,
		Frequency: freq,
	})
}

func runProfiles(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s ProfileSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	return generators.NewUser(src).Profiles(generators.ProfileParams{
		Rows:          rows,
		IncludeBio:    s.IncludeBio,
		IncludeSocial: s.IncludeSocial,
	})
}

func runAccounts(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s AccountSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	return generators.NewUser(src).Accounts(generators.AccountParams{
		Rows:                rows,
		IncludeSubscription: orTrue(s.IncludeSubscription),
	})
}

func runActivity(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	var s ActivitySettings
	if err := DecodeSettings(settings, &s); err != nil {
		return nil, err
	}
	start, err := parseDate(s.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(s.EndDate)
	if err != nil {
		return nil, err
	}
	return generators.NewUser(src).LoginActivity(generators.ActivityParams{
		Rows:      rows,
		NUsers:    s.NUsers,
		StartDate: start,
		EndDate:   end,
	})
}

func runPreferences(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	return generators.NewUser(src).Preferences(generators.PreferenceParams{Rows: rows})
}

// LogParamsFromSettings is shared by the table runner and the log-line
// rendering path in the app layer.
func LogParamsFromSettings(rows int, settings *yaml.Node) (generators.LogParams, *LogSettings, error) {
	var s LogSettings
	if err := DecodeSettings(settings, &s); err != nil {
		return generators.LogParams{}, nil, err
	}
	start, err := parseDate(s.StartDate)
	if err != nil {
		return generators.LogParams{}, nil, err
	}
	end, err := parseDate(s.EndDate)
	if err != nil {
		return generators.LogParams{}, nil, err
	}
	return generators.LogParams{
		Rows:                rows,
		StartDate:           start,
		EndDate:             end,
		JobNames:            s.JobNames,
		StatusWeights:       s.StatusDistribution,
		DurationMin:         s.Duration.Min,
		DurationMax:         s.Duration.Max,
		IncludeErrorMessage: s.IncludeErrorMessage,
		IncludeSeverity:     s.IncludeSeverity,
	}, &s, nil
}

func runJobLogs(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error) {
	p, s, err := LogParamsFromSettings(rows, settings)
	if err != nil {
		return nil, err
	}
	logs := generators.NewLogs(src)
	if s.Category != "" {
		return logs.GenerateByCategory(s.Category, p)
	}
	return logs.Generate(p)
}
