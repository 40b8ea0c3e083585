package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"veggiekart-delivery/internal/core/config"
	"veggiekart-delivery/internal/core/httpclient"
	"veggiekart-delivery/internal/core/logger"
	"veggiekart-delivery/internal/features/delivery/domain"

	"go.uber.org/zap"
)

// OSRMAdapter implements the RoutingProvider port against an
// OSRM-compatible route endpoint.
type OSRMAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewOSRMAdapter creates a routing adapter from provider settings.
func NewOSRMAdapter(cfg config.ProviderConfig) *OSRMAdapter {
	return &OSRMAdapter{
		baseURL: cfg.RoutingURL,
		client:  httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		logger:  logger.Get(),
	}
}

// osrmResponse represents the route summary. OSRM reports distance in
// meters and duration in seconds.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route requests a driving route between origin and dest. OSRM expects
// coordinates as lng,lat pairs. A non-OK status, a code other than "Ok" or
// an empty route set means the destination is unroutable (domain.ErrNoRoute);
// transport and decode errors surface as-is.
func (a *OSRMAdapter) Route(ctx context.Context, origin, dest domain.GeoCoordinate) (domain.RouteLeg, error) {
	url := fmt.Sprintf("%s/driving/%v,%v;%v,%v?overview=false",
		a.baseURL, origin.Lng, origin.Lat, dest.Lng, dest.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RouteLeg{}, fmt.Errorf("failed to create route request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.RouteLeg{}, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("Router returned non-OK status", zap.Int("status", resp.StatusCode))
		return domain.RouteLeg{}, domain.ErrNoRoute
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteLeg{}, fmt.Errorf("failed to decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		a.logger.Debug("No route to destination", zap.String("code", decoded.Code))
		return domain.RouteLeg{}, domain.ErrNoRoute
	}

	return domain.RouteLeg{
		DistanceKm:      decoded.Routes[0].Distance / 1000,
		DurationMinutes: decoded.Routes[0].Duration / 60,
		Destination:     dest,
	}, nil
}
