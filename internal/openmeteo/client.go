// Package openmeteo fetches forecasts from the Open-Meteo API, which needs
// no API key.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Znerf/headacheFront/internal"
)

const (
	DefaultBaseURL = "https://api.open-meteo.com"

	currentFields = "temperature_2m,apparent_temperature,relative_humidity_2m,precipitation,wind_speed_10m,weather_code"
	hourlyFields  = "temperature_2m,apparent_temperature,relative_humidity_2m,precipitation,wind_speed_10m,uv_index,dew_point_2m,cloud_cover,surface_pressure,visibility"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     internal.Logger
}

func New(baseURL string, logger internal.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Forecast fetches current conditions plus the hourly forecast for the
// coordinates. Hourly metrics come back as parallel arrays keyed by time.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*internal.WeatherData, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current", currentFields)
	q.Set("hourly", hourlyFields)
	q.Set("timezone", "auto")
	q.Set("forecast_days", "1")

	reqURL := c.baseURL + "/v1/forecast?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("open-meteo request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warnf("open-meteo returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("openmeteo: unexpected status %d", resp.StatusCode)
	}

	var data internal.WeatherData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
