// Package chart turns timestamped records into axis labels and tick spacing.
// Nothing in here returns an error or panics: bad input degrades to an empty
// label, "Invalid date", or a dropped record.
package chart

import (
	"time"

	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

// InvalidDate is the label for a value that is present but not a date
const InvalidDate = "Invalid date"

const (
	shortLayout = "15:04"
	longLayout  = "Jan 2 15:04"
)

// Record is a loosely typed chart row, as decoded from JSON
type Record = map[string]interface{}

var shortRanges = map[string]bool{
	"1h":  true,
	"6h":  true,
	"12h": true,
	"24h": true,
}

// tickTargets is how many ticks each named range aims for
var tickTargets = map[string]int{
	"1h":  6,
	"6h":  6,
	"12h": 12,
	"24h": 8,
	"7d":  7,
	"30d": 10,
}

// FilterValidChartData keeps the records whose timeKey parses to a date, in order.
func FilterValidChartData(records []Record, timeKey string) []Record {
	return FilterValidBy(records, func(r Record) interface{} { return r[timeKey] })
}

// FilterValidBy is FilterValidChartData for typed rows.
func FilterValidBy[T any](records []T, timeOf func(T) interface{}) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if _, ok := parseTime(timeOf(r)); ok {
			out = append(out, r)
		}
	}
	return out
}

// FormatChartTick formats value in local time. See FormatChartTickIn.
func FormatChartTick(value interface{}, timeRange string) string {
	return FormatChartTickIn(value, timeRange, time.Local)
}

// FormatChartTickIn renders an axis label: "15:04" for ranges up to a day
// (and when no range is given), "Jan 2 15:04" for longer ones.
func FormatChartTickIn(value interface{}, timeRange string, loc *time.Location) (label string) {
	defer func() {
		if recover() != nil {
			label = ""
		}
	}()

	if isFalsy(value) {
		return ""
	}
	t, ok := parseTime(value)
	if !ok {
		return InvalidDate
	}
	if loc != nil {
		t = t.In(loc)
	}
	if timeRange == "" || shortRanges[timeRange] {
		return t.Format(shortLayout)
	}
	return t.Format(longLayout)
}

// CalculateTickInterval returns the stride between rendered ticks, never below 1.
// Named ranges divide by a fixed tick target; anything else falls back to a
// table keyed on the number of points.
func CalculateTickInterval(dataLength int, timeRange string) int {
	if target, ok := tickTargets[timeRange]; ok {
		return atLeastOne(dataLength / target)
	}

	switch {
	case dataLength <= 12:
		return 1
	case dataLength <= 24:
		return 3
	case dataLength <= 48:
		return 6
	case dataLength <= 96:
		return 12
	default:
		return 24
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// BuildChartTicks filters records and labels every stride-th survivor.
func BuildChartTicks(records []Record, timeKey, timeRange string) []ghmmodels.ChartTick {
	valid := FilterValidChartData(records, timeKey)
	return ticks(valid, func(r Record) interface{} { return r[timeKey] }, timeRange)
}

// BuildReadingTicks is BuildChartTicks over sensor readings.
func BuildReadingTicks(readings []ghmmodels.SensorReading, timeRange string) []ghmmodels.ChartTick {
	timeOf := func(r ghmmodels.SensorReading) interface{} { return r.Timestamp }
	return ticks(FilterValidBy(readings, timeOf), timeOf, timeRange)
}

func ticks[T any](valid []T, timeOf func(T) interface{}, timeRange string) []ghmmodels.ChartTick {
	stride := CalculateTickInterval(len(valid), timeRange)
	out := make([]ghmmodels.ChartTick, 0, len(valid)/stride+1)
	for i := 0; i < len(valid); i += stride {
		v := timeOf(valid[i])
		t, _ := parseTime(v)
		out = append(out, ghmmodels.ChartTick{
			Label:     FormatChartTick(v, timeRange),
			Timestamp: t.Format(ghmmodels.TimestampLayout),
		})
	}
	return out
}
