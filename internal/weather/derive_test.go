package weather

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Znerf/headacheFront/internal"
)

func snapshotWithHours(n int) *internal.WeatherSnapshot {
	hourly := &internal.HourlyWeather{}
	for i := 0; i < n; i++ {
		hourly.Time = append(hourly.Time, fmt.Sprintf("2026-01-05T%02d:00", i%24))
		hourly.Temperature2M = append(hourly.Temperature2M, float64(i))
		hourly.RelativeHumidity2M = append(hourly.RelativeHumidity2M, 50)
	}
	return &internal.WeatherSnapshot{
		Weather: &internal.WeatherData{Hourly: hourly},
	}
}

func TestDeriveHourlyCapsAtOneDay(t *testing.T) {
	points := DeriveHourly(snapshotWithHours(30))
	assert.Len(t, points, 24)
	assert.Equal(t, "2026-01-05T00:00", points[0].Time)
	assert.Equal(t, 23.0, points[23].Temperature)
}

func TestDeriveHourlyShortArraysNoPadding(t *testing.T) {
	points := DeriveHourly(snapshotWithHours(5))
	assert.Len(t, points, 5)
}

func TestDeriveHourlyMissingMetricsDefaultToZero(t *testing.T) {
	snap := snapshotWithHours(3)
	// Only time, temperature and humidity are populated; the other seven
	// metric arrays are absent entirely.
	points := DeriveHourly(snap)
	assert.Len(t, points, 3)
	assert.Equal(t, 50.0, points[1].Humidity)
	assert.Zero(t, points[1].WindSpeed)
	assert.Zero(t, points[1].UVIndex)
	assert.Zero(t, points[1].Pressure)
}

func TestDeriveHourlyNilInputs(t *testing.T) {
	assert.Nil(t, DeriveHourly(nil))
	assert.Nil(t, DeriveHourly(&internal.WeatherSnapshot{Message: "no data"}))
	assert.Nil(t, DeriveHourly(&internal.WeatherSnapshot{Weather: &internal.WeatherData{}}))
}

func TestRange(t *testing.T) {
	min, max := Range([]float64{3, -1, 7, 2})
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 7.0, max)

	min, max = Range(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestTemperatures(t *testing.T) {
	points := DeriveHourly(snapshotWithHours(4))
	assert.Equal(t, []float64{0, 1, 2, 3}, Temperatures(points))
}
