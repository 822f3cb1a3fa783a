// Package weather derives chart-ready slices from a raw snapshot. Everything
// here is a pure function so rendering code never touches parallel arrays.
package weather

import "github.com/Znerf/headacheFront/internal"

// MaxHourlyPoints caps the derived slice at one day of hourly entries.
const MaxHourlyPoints = 24

// HourlyPoint pairs one timestamp with its ten indexed metrics.
type HourlyPoint struct {
	Time                string
	Temperature         float64
	ApparentTemperature float64
	Humidity            float64
	Precipitation       float64
	WindSpeed           float64
	UVIndex             float64
	DewPoint            float64
	CloudCover          float64
	Pressure            float64
	Visibility          float64
}

// DeriveHourly flattens the snapshot's parallel hourly arrays into at most
// MaxHourlyPoints entries. Shorter arrays yield a shorter slice, never
// padding; a metric array missing an index contributes zero.
func DeriveHourly(snap *internal.WeatherSnapshot) []HourlyPoint {
	if snap == nil || snap.Weather == nil || snap.Weather.Hourly == nil {
		return nil
	}
	hourly := snap.Weather.Hourly
	n := len(hourly.Time)
	if n == 0 {
		return nil
	}
	if n > MaxHourlyPoints {
		n = MaxHourlyPoints
	}

	points := make([]HourlyPoint, n)
	for i := 0; i < n; i++ {
		points[i] = HourlyPoint{
			Time:                hourly.Time[i],
			Temperature:         at(hourly.Temperature2M, i),
			ApparentTemperature: at(hourly.ApparentTemperature, i),
			Humidity:            at(hourly.RelativeHumidity2M, i),
			Precipitation:       at(hourly.Precipitation, i),
			WindSpeed:           at(hourly.WindSpeed10M, i),
			UVIndex:             at(hourly.UVIndex, i),
			DewPoint:            at(hourly.DewPoint2M, i),
			CloudCover:          at(hourly.CloudCover, i),
			Pressure:            at(hourly.SurfacePressure, i),
			Visibility:          at(hourly.Visibility, i),
		}
	}
	return points
}

func at(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

// Temperatures extracts the temperature series for sparkline rendering.
func Temperatures(points []HourlyPoint) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Temperature
	}
	return vals
}

// Range returns the min and max of a series. An empty series is (0, 0).
func Range(vals []float64) (min, max float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
