package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Znerf/headacheFront/internal"
)

// DefaultGeocoderURL is the public BigDataCloud endpoint the resolver looks
// localities up against.
const DefaultGeocoderURL = "https://api.bigdatacloud.net"

// Place is the locality-lookup response. Every field is optional; a partial
// response only fills what it names.
type Place struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// CityName prefers the city field, falling back to the coarser locality.
func (p *Place) CityName() string {
	if p.City != "" {
		return p.City
	}
	return p.Locality
}

// Geocoder reverse-geocodes coordinates into a Place.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	logger     internal.Logger
}

func NewGeocoder(baseURL string, logger internal.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocoderURL
	}
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Reverse looks up the locality for a coordinate pair. Best effort: callers
// treat any error as "fill the locality in manually".
func (g *Geocoder) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("localityLanguage", "en")

	reqURL := g.baseURL + "/data/reverse-geocode-client?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warnf("reverse geocode request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warnf("reverse geocode returned %d", resp.StatusCode)
		return nil, fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var place Place
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, err
	}
	return &place, nil
}
