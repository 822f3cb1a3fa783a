package geo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Znerf/headacheFront/internal"
)

// DefaultIPLocatorURL is the keyless IP-geolocation endpoint the CLI uses as
// its platform position capability.
const DefaultIPLocatorURL = "https://ipapi.co"

// IPLocator approximates the device position from its public IP address.
// It satisfies PositionProvider for platforms without a GPS capability.
type IPLocator struct {
	baseURL    string
	httpClient *http.Client
	logger     internal.Logger
}

func NewIPLocator(baseURL string, logger internal.Logger) *IPLocator {
	if baseURL == "" {
		baseURL = DefaultIPLocatorURL
	}
	return &IPLocator{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (l *IPLocator) CurrentPosition(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/json/", nil)
	if err != nil {
		return Position{}, &PositionError{Code: ErrUnknown, Err: err}
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Position{}, &PositionError{Code: ErrTimeout, Err: err}
		}
		l.logger.Warnf("ip geolocation request failed: %v", err)
		return Position{}, &PositionError{Code: ErrPositionUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return Position{}, &PositionError{Code: ErrPermissionDenied, Err: errors.New("lookup rejected")}
	}
	if resp.StatusCode != http.StatusOK {
		return Position{}, &PositionError{Code: ErrPositionUnavailable, Err: errors.New("lookup unavailable")}
	}

	var body struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, &PositionError{Code: ErrUnknown, Err: err}
	}
	if body.Latitude == nil || body.Longitude == nil {
		return Position{}, &PositionError{Code: ErrPositionUnavailable, Err: errors.New("no coordinates in response")}
	}

	return Position{Latitude: *body.Latitude, Longitude: *body.Longitude}, nil
}
