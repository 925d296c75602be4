package ghmmodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		temp float64
		want Prediction
	}{
		{20, PredictionNormal},
		{25.0, PredictionNormal},
		{25.01, PredictionWarning},
		{28.0, PredictionWarning},
		{28.01, PredictionAlert},
		{35, PredictionAlert},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.temp), "temperature %v", tc.temp)
	}
}

func TestNewSensorReading_ClassifiesRoundedValue(t *testing.T) {
	r := NewSensorReading(28.04, 61.26, "2026-01-01T00:00:00.000Z", SourceDemo)

	assert.Equal(t, 28.0, r.Temperature.Float())
	assert.Equal(t, 61.3, r.Humidity.Float())
	assert.Equal(t, PredictionWarning, r.Prediction)
	assert.False(t, r.Highlight)

	alert := NewSensorReading(29.2, 50, "2026-01-01T00:00:00.000Z", SourceDemo)
	assert.Equal(t, PredictionAlert, alert.Prediction)
	assert.True(t, alert.Highlight)
}

func TestSensorReading_DecodesStringOrNumber(t *testing.T) {
	var r SensorReading
	err := json.Unmarshal([]byte(`{"id":3,"temperature":"26.5","humidity":70,"prediction":"Warning","timestamp":"2026-01-01T00:00:00Z","source":"api"}`), &r)
	require.NoError(t, err)

	require.NotNil(t, r.ID)
	assert.Equal(t, 3, *r.ID)
	assert.Equal(t, 26.5, r.Temperature.Float())
	assert.Equal(t, 70.0, r.Humidity.Float())

	err = json.Unmarshal([]byte(`{"temperature":"warm"}`), &r)
	assert.Error(t, err)
}
