// Package demo synthesizes sensor readings for dashboards that have no live
// data wired up. Every function is total: unknown range tokens and
// non-positive spans fall back to a 24 hour window.
package demo

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

// HistoricalPoints is the fixed size of a historical series
const HistoricalPoints = 100

// DefaultRange is used for unrecognized range tokens
const DefaultRange = "24h"

// RangeTokens lists the known ranges, shortest first
var RangeTokens = []string{"1h", "6h", "12h", "24h", "7d", "30d"}

// RangeHours maps a range token to the span it covers
var RangeHours = map[string]int{
	"1h":  1,
	"6h":  6,
	"12h": 12,
	"24h": 24,
	"7d":  24 * 7,
	"30d": 24 * 30,
}

// Generator produces demo readings. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator builds a generator around a random source and a clock.
// A nil clock means time.Now.
func NewGenerator(src rand.Source, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rand.New(src), now: now}
}

// NewSeededGenerator is a reproducible generator, mostly for tests
func NewSeededGenerator(seed uint64, now func() time.Time) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), now)
}

var defaultGenerator = NewGenerator(rand.NewPCG(rand.Uint64(), rand.Uint64()), nil)

// Default returns the process-wide generator
func Default() *Generator { return defaultGenerator }

// uniform draws from [lo, hi)
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func stamp(t time.Time) string {
	return t.UTC().Format(ghmmodels.TimestampLayout)
}

// DataPoint returns a single reading taken now.
func (g *Generator) DataPoint() ghmmodels.SensorReading {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ghmmodels.NewSensorReading(
		g.uniform(20, 30),
		g.uniform(50, 80),
		stamp(g.now()),
		ghmmodels.SourceDemo,
	)
}

// Historical returns exactly HistoricalPoints readings, evenly spaced over
// the range and ending now.
func (g *Generator) Historical(timeRange string) []ghmmodels.SensorReading {
	hours, ok := RangeHours[timeRange]
	if !ok {
		hours = RangeHours[DefaultRange]
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	end := g.now()
	span := time.Duration(hours) * time.Hour
	step := span / (HistoricalPoints - 1)
	start := end.Add(-span)

	readings := make([]ghmmodels.SensorReading, 0, HistoricalPoints)
	for i := 0; i < HistoricalPoints; i++ {
		ts := start.Add(time.Duration(i) * step)
		if i == HistoricalPoints-1 {
			ts = end
		}

		baseTemp, baseHumidity := 19.0, 65.0
		if h := ts.Hour(); h > 6 && h < 18 {
			baseTemp, baseHumidity = 24.0, 55.0
		}

		readings = append(readings, ghmmodels.NewSensorReading(
			baseTemp+g.uniform(0, 6),
			baseHumidity+g.uniform(0, 15),
			stamp(ts),
			ghmmodels.SourceDemoHistorical,
		))
	}
	return readings
}

// LocalMockInterval is the sampling interval for a span of the given hours
func LocalMockInterval(hours int) time.Duration {
	switch {
	case hours <= 6:
		return 15 * time.Minute
	case hours <= 24:
		return 30 * time.Minute
	default:
		return time.Hour
	}
}

// MaxLocalMockHours caps a local mock series at the longest chart range
var MaxLocalMockHours = RangeHours["30d"]

// LocalMock returns a smooth diurnal series covering the last hours, both
// ends included. Spans longer than MaxLocalMockHours are clamped.
// Temperature peaks mid-afternoon and humidity moves opposite.
func (g *Generator) LocalMock(hours int) []ghmmodels.SensorReading {
	if hours <= 0 {
		hours = RangeHours[DefaultRange]
	}
	if hours > MaxLocalMockHours {
		hours = MaxLocalMockHours
	}
	interval := LocalMockInterval(hours)
	span := time.Duration(hours) * time.Hour
	count := int(span/interval) + 1

	g.mu.Lock()
	defer g.mu.Unlock()

	end := g.now()
	start := end.Add(-span)

	readings := make([]ghmmodels.SensorReading, 0, count)
	for i := 0; i < count; i++ {
		ts := start.Add(time.Duration(i) * interval)
		hourOfDay := float64(ts.Hour()) + float64(ts.Minute())/60
		phase := math.Sin(2 * math.Pi * (hourOfDay - 9) / 24)

		readings = append(readings, ghmmodels.NewSensorReading(
			24+4*phase+g.uniform(-0.5, 0.5),
			65-10*phase+g.uniform(-1, 1),
			stamp(ts),
			ghmmodels.SourceLocalMock,
		))
	}
	return readings
}

// GenerateDemoDataPoint returns one reading from the default generator
func GenerateDemoDataPoint() ghmmodels.SensorReading {
	return defaultGenerator.DataPoint()
}

// GenerateDemoHistoricalData returns a 100 point series from the default generator
func GenerateDemoHistoricalData(timeRange string) []ghmmodels.SensorReading {
	return defaultGenerator.Historical(timeRange)
}

// GenerateLocalMockData returns a diurnal series from the default generator
func GenerateLocalMockData(hours int) []ghmmodels.SensorReading {
	return defaultGenerator.LocalMock(hours)
}
