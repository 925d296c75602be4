package ghmmodels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Prediction is the qualitative label attached to a reading
type Prediction string

const (
	PredictionNormal  Prediction = "Normal"
	PredictionWarning Prediction = "Warning"
	PredictionAlert   Prediction = "Alert"
)

// Temperature thresholds in °C, both exclusive
const (
	AlertThreshold   = 28.0
	WarningThreshold = 25.0
)

// Source tags
const (
	SourceDemo           = "demo"
	SourceDemoHistorical = "demo-historical"
	SourceLocalMock      = "local-mock"
)

// TimestampLayout is the ISO-8601 form used for every generated reading
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Classify maps a temperature to its prediction
func Classify(temperature float64) Prediction {
	switch {
	case temperature > AlertThreshold:
		return PredictionAlert
	case temperature > WarningThreshold:
		return PredictionWarning
	default:
		return PredictionNormal
	}
}

// SensorReading is a single temperature/humidity sample as shown on the dashboard
type SensorReading struct {
	ID          *int       `json:"id,omitempty"`
	Temperature Numeric    `json:"temperature"`
	Humidity    Numeric    `json:"humidity"`
	Prediction  Prediction `json:"prediction"`
	Timestamp   string     `json:"timestamp"`
	Source      string     `json:"source"`
	Highlight   bool       `json:"highlight,omitempty"`
}

// NewSensorReading rounds the values to one decimal and classifies the rounded temperature
func NewSensorReading(temperature, humidity float64, timestamp, source string) SensorReading {
	t := Round1(temperature)
	p := Classify(t)
	return SensorReading{
		Temperature: Numeric(t),
		Humidity:    Numeric(Round1(humidity)),
		Prediction:  p,
		Timestamp:   timestamp,
		Source:      source,
		Highlight:   p == PredictionAlert,
	}
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Numeric is a float that also decodes from a numeric JSON string
type Numeric float64

// Float returns the value as float64
func (n Numeric) Float() float64 { return float64(n) }

// UnmarshalJSON accepts 21.5 as well as "21.5"
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("numeric: %q is not a number", s)
		}
		*n = Numeric(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Numeric(v)
	return nil
}
