package ports

import (
	"context"

	"veggiekart-delivery/internal/features/delivery/domain"
)

// GeocodingProvider resolves a pincode to a coordinate.
// Implementations return domain.ErrNoMatch when the provider has no result
// for the pincode; any other error is a transport-level failure.
type GeocodingProvider interface {
	Geocode(ctx context.Context, pincode string) (domain.GeoCoordinate, error)
}

// RoutingProvider computes a driving route between two coordinates.
// Implementations return domain.ErrNoRoute when no route exists; any other
// error is a transport-level failure.
type RoutingProvider interface {
	Route(ctx context.Context, origin, dest domain.GeoCoordinate) (domain.RouteLeg, error)
}

// ZoneRepository reads the admin-maintained delivery zone brackets.
type ZoneRepository interface {
	// ListActive returns active zones ordered ascending by min distance.
	ListActive(ctx context.Context) ([]domain.DeliveryZone, error)
}

// RateSource exposes the server-authoritative per-km rate.
type RateSource interface {
	RatePerKm(ctx context.Context) (float64, error)
}
