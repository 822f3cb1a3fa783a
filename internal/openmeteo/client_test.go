package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Znerf/headacheFront/internal"
)

const forecastBody = `{
	"current": {
		"time": "2026-01-05T12:00",
		"temperature_2m": 21.5,
		"apparent_temperature": 20.1,
		"relative_humidity_2m": 48,
		"precipitation": 0,
		"wind_speed_10m": 7.2,
		"weather_code": 3
	},
	"hourly": {
		"time": ["2026-01-05T00:00", "2026-01-05T01:00"],
		"temperature_2m": [18.2, 17.9],
		"apparent_temperature": [17.0, 16.8],
		"relative_humidity_2m": [55, 57],
		"precipitation": [0, 0.2],
		"wind_speed_10m": [5.1, 4.8],
		"uv_index": [0, 0],
		"dew_point_2m": [9.1, 9.0],
		"cloud_cover": [20, 35],
		"surface_pressure": [1012.3, 1012.1],
		"visibility": [24140, 24140]
	}
}`

func TestForecast_ParsesCurrentAndHourly(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer ts.Close()

	c := New(ts.URL, internal.NewNopLogger())
	data, err := c.Forecast(context.Background(), 27.7172, 85.324)
	require.NoError(t, err)

	assert.Equal(t, "/v1/forecast", gotPath)
	assert.Contains(t, gotQuery, "latitude=27.7172")
	assert.Contains(t, gotQuery, "timezone=auto")

	require.NotNil(t, data.Current)
	assert.Equal(t, 21.5, data.Current.Temperature2M)
	assert.Equal(t, 3, data.Current.WeatherCode)

	require.NotNil(t, data.Hourly)
	require.Len(t, data.Hourly.Time, 2)
	assert.Equal(t, 18.2, data.Hourly.Temperature2M[0])
	assert.Equal(t, 1012.1, data.Hourly.SurfacePressure[1])
}

func TestForecast_NonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason":"out of range"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	c := New(ts.URL, internal.NewNopLogger())
	_, err := c.Forecast(context.Background(), 999, 999)
	assert.Error(t, err)
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c := New("", internal.NewNopLogger())
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
