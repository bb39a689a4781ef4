package generators

import (
	"fmt"
	"math"
	"time"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"github.com/mmrzaf/synthgen/internal/table"
	"github.com/mmrzaf/synthgen/internal/timeutil"
)

// Sensor generates environmental telemetry: temperature with a sinusoidal
// daily cycle, humidity inversely correlated with it, hour-bucketed CO2,
// and optional injected anomalies.
type Sensor struct {
	src *randutil.Source
}

func NewSensor(src *randutil.Source) *Sensor {
	return &Sensor{src: src}
}

type SensorParams struct {
	Rows      int
	StartDate time.Time     // zero: 30 days before now
	Frequency time.Duration // zero: 5 minutes
	SensorIDs []string      // empty: single constant sensor
	// Locations overrides the synthesized location for specific sensor
	// IDs when IncludeLocation is set.
	Locations       map[string]string
	IncludeLocation bool

	TempMin, TempMax         float64 // zero pair: 15..30 C
	HumidityMin, HumidityMax float64 // zero pair: 30..80 %
	CO2Min, CO2Max           float64 // zero pair: 400..1200 ppm

	AddAnomalies bool
	AnomalyRate  float64

	// NullRates maps column names to per-column null probabilities,
	// applied after assembly.
	NullRates map[string]float64
}

func (p *SensorParams) withDefaults(now time.Time) {
	if p.StartDate.IsZero() {
		p.StartDate = now.AddDate(0, 0, -30)
	}
	if p.Frequency == 0 {
		p.Frequency = 5 * time.Minute
	}
	if p.TempMin == 0 && p.TempMax == 0 {
		p.TempMin, p.TempMax = 15.0, 30.0
	}
	if p.HumidityMin == 0 && p.HumidityMax == 0 {
		p.HumidityMin, p.HumidityMax = 30.0, 80.0
	}
	if p.CO2Min == 0 && p.CO2Max == 0 {
		p.CO2Min, p.CO2Max = 400, 1200
	}
}

func (p *SensorParams) validate() error {
	if err := checkRows(p.Rows); err != nil {
		return err
	}
	for _, r := range []struct {
		name     string
		min, max float64
	}{
		{"temperature", p.TempMin, p.TempMax},
		{"humidity", p.HumidityMin, p.HumidityMax},
		{"co2_level", p.CO2Min, p.CO2Max},
	} {
		if r.max <= r.min {
			return fmt.Errorf("%w: %s range [%v, %v]", domain.ErrInvalidParameter, r.name, r.min, r.max)
		}
	}
	if p.AnomalyRate < 0 || p.AnomalyRate > 1 {
		return fmt.Errorf("%w: anomaly rate %v outside [0, 1]", domain.ErrInvalidParameter, p.AnomalyRate)
	}
	return nil
}

const defaultSensorID = "SENSOR_001"
const defaultLocation = "Building A - Floor 1"

func (g *Sensor) Generate(p SensorParams) (*domain.Table, error) {
	p.withDefaults(time.Now())
	if err := p.validate(); err != nil {
		return nil, err
	}

	timestamps := timeutil.Sequence(p.StartDate, p.Frequency, p.Rows)

	sensorIDs := make([]string, p.Rows)
	for i := range sensorIDs {
		if len(p.SensorIDs) > 0 {
			sensorIDs[i] = p.SensorIDs[i%len(p.SensorIDs)]
		} else {
			sensorIDs[i] = defaultSensorID
		}
	}

	temperature := g.temperatures(timestamps, p)
	humidity := g.humidities(temperature, p)
	co2 := g.co2Levels(timestamps, p)

	b := table.NewBuilder(p.Rows).
		Add("timestamp", boxTimes(timestamps)).
		AddStrings("sensor_id", sensorIDs).
		Add("temperature", boxFloats(temperature)).
		Add("humidity", boxFloats(humidity)).
		Add("co2_level", boxInts(co2))

	if p.IncludeLocation {
		b.AddStrings("location", g.locations(sensorIDs, p))
	}

	t, err := b.Build()
	if err != nil {
		return nil, err
	}

	for _, col := range t.Columns {
		if rate, ok := p.NullRates[col]; ok {
			table.ApplyNulls(t, col, rate, g.src)
		}
	}
	return t, nil
}

// temperatures follows a sinusoidal daily cycle peaking near 14:00 and
// bottoming near 04:00, with Gaussian noise on top.
func (g *Sensor) temperatures(timestamps []time.Time, p SensorParams) []float64 {
	mean := (p.TempMin + p.TempMax) / 2
	out := make([]float64, len(timestamps))
	for i, ts := range timestamps {
		hour := float64(ts.Hour())
		daily := 0.3 * (p.TempMax - p.TempMin) * math.Sin(2*math.Pi*(hour-4)/24)
		temp := mean + daily + g.src.Normal(0, 0.5)
		temp = randutil.Clip(temp, p.TempMin, p.TempMax)

		if p.AddAnomalies && g.src.Float64() < p.AnomalyRate {
			temp += g.pickSpike(5)
			// anomalies may exceed the nominal range: clip bounds widen by 5
			temp = randutil.Clip(temp, p.TempMin-5, p.TempMax+5)
		}
		out[i] = randutil.Round(temp, 2)
	}
	return out
}

// humidities derive from temperature rather than being drawn
// independently: the temperature is normalized over its nominal range and
// inverted into the humidity range.
func (g *Sensor) humidities(temperature []float64, p SensorParams) []float64 {
	out := make([]float64, len(temperature))
	for i, temp := range temperature {
		normalized := (temp - p.TempMin) / (p.TempMax - p.TempMin)
		hum := p.HumidityMax - normalized*(p.HumidityMax-p.HumidityMin)
		hum += g.src.Normal(0, 5)
		hum = randutil.Clip(hum, p.HumidityMin, p.HumidityMax)

		if p.AddAnomalies && g.src.Float64() < p.AnomalyRate {
			hum += g.pickSpike(15)
			hum = randutil.Clip(hum, 0, 100)
		}
		out[i] = randutil.Round(hum, 2)
	}
	return out
}

// co2Levels bucket by hour of day: work hours (8..18) sit at 60% of the
// range, off hours at 20%.
func (g *Sensor) co2Levels(timestamps []time.Time, p SensorParams) []int {
	out := make([]int, len(timestamps))
	for i, ts := range timestamps {
		hour := ts.Hour()
		var base float64
		if hour >= 8 && hour <= 18 {
			base = p.CO2Min + 0.6*(p.CO2Max-p.CO2Min)
		} else {
			base = p.CO2Min + 0.2*(p.CO2Max-p.CO2Min)
		}
		co2 := base + g.src.Normal(0, 50)
		co2 = randutil.Clip(co2, p.CO2Min, p.CO2Max)

		if p.AddAnomalies && g.src.Float64() < p.AnomalyRate {
			if g.src.Intn(2) == 0 {
				co2 -= 200
			} else {
				co2 += 300
			}
			co2 = randutil.Clip(co2, p.CO2Min-200, p.CO2Max+500)
		}
		out[i] = int(co2)
	}
	return out
}

func (g *Sensor) pickSpike(magnitude float64) float64 {
	if g.src.Intn(2) == 0 {
		return -magnitude
	}
	return magnitude
}

// locations assigns one stable location per sensor ID. Explicitly
// configured locations win; the rest are synthesized.
func (g *Sensor) locations(sensorIDs []string, p SensorParams) []string {
	if len(p.SensorIDs) == 0 {
		out := make([]string, len(sensorIDs))
		for i := range out {
			out[i] = defaultLocation
		}
		return out
	}

	byID := make(map[string]string, len(p.SensorIDs))
	for _, id := range p.SensorIDs {
		if loc, ok := p.Locations[id]; ok {
			byID[id] = loc
			continue
		}
		byID[id] = g.src.Pick(buildingPool) + " - " + g.src.Pick(floorPool) + " - " + g.src.Pick(roomPool)
	}

	out := make([]string, len(sensorIDs))
	for i, id := range sensorIDs {
		out[i] = byID[id]
	}
	return out
}

// GenerateFleet replicates Generate across an auto-named fleet of
// sensors (SENSOR_001, SENSOR_002, ...).
func (g *Sensor) GenerateFleet(nSensors, readingsPerSensor int, p SensorParams) (*domain.Table, error) {
	if nSensors <= 0 || readingsPerSensor <= 0 {
		return nil, fmt.Errorf("%w: fleet size %d x %d readings", domain.ErrInvalidParameter, nSensors, readingsPerSensor)
	}
	ids := make([]string, nSensors)
	for i := range ids {
		ids[i] = fmt.Sprintf("SENSOR_%03d", i+1)
	}
	p.SensorIDs = ids
	p.Rows = nSensors * readingsPerSensor
	return g.Generate(p)
}
