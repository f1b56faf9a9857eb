package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/platform/obs"
	"kundli-service/internal/ports"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

var _ ports.Geocoder = (*NominatimGeocoder)(nil)

// NominatimGeocoder resolves places through the OpenStreetMap Nominatim search API.
// Nominatim's usage policy requires an identifying User-Agent.
type NominatimGeocoder struct {
	client  *httpClient
	baseURL string
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewNominatimGeocoder(
	baseURL string,
	userAgent string,
	timeout time.Duration,
	maxAttempts int,
) (*NominatimGeocoder, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim user agent is empty")
	}
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}

	return &NominatimGeocoder{
		client:  newHTTPClient(timeout, maxAttempts, map[string]string{"User-Agent": userAgent}),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Geocode returns the first Nominatim match for place.
func (n *NominatimGeocoder) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.nominatim")(&err)

	norm := normalize(place)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: place must be non-empty")
	}

	endpoint := n.baseURL + "/search"

	resp, err := n.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", norm)
		q.Set("format", "jsonv2")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode nominatim response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q: %w", norm, domain.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude %q for %q: %w", decoded[0].Lat, norm, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude %q for %q: %w", decoded[0].Lon, norm, err)
	}

	coord := domain.Coordinates{Lon: lon, Lat: lat}
	if err := coord.Validate(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim result for %q: %w", norm, err)
	}

	return coord, nil
}
