package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"veggiekart-delivery/internal/core/config"
	"veggiekart-delivery/internal/core/httpclient"
	"veggiekart-delivery/internal/core/logger"
	"veggiekart-delivery/internal/features/delivery/domain"

	"go.uber.org/zap"
)

// NominatimAdapter implements the GeocodingProvider port against a
// Nominatim-compatible search endpoint, scoped to a single country.
type NominatimAdapter struct {
	baseURL     string
	country     string
	countryCode string
	client      *http.Client
	logger      *zap.Logger
}

// NewNominatimAdapter creates a geocoding adapter from provider settings.
func NewNominatimAdapter(cfg config.ProviderConfig) *NominatimAdapter {
	return &NominatimAdapter{
		baseURL:     cfg.GeocodingURL,
		country:     cfg.CountryName,
		countryCode: cfg.CountryCode,
		client:      httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		logger:      logger.Get(),
	}
}

// nominatimResult represents one search hit. Nominatim serializes
// coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a pincode to a coordinate using the single best match for
// "<pincode>, <country>". A non-OK status or an empty result set means the
// pincode is unresolvable (domain.ErrNoMatch); transport and decode errors
// surface as-is.
func (a *NominatimAdapter) Geocode(ctx context.Context, pincode string) (domain.GeoCoordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return domain.GeoCoordinate{}, fmt.Errorf("failed to create geocode request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", fmt.Sprintf("%s, %s", pincode, a.country))
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", a.countryCode)
	req.URL.RawQuery = q.Encode()

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.GeoCoordinate{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("Geocoder returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("pincode", pincode),
		)
		return domain.GeoCoordinate{}, domain.ErrNoMatch
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.GeoCoordinate{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return domain.GeoCoordinate{}, domain.ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.GeoCoordinate{}, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.GeoCoordinate{}, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	return domain.GeoCoordinate{Lat: lat, Lng: lng}, nil
}
