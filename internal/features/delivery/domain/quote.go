package domain

import "errors"

var (
	// ErrNoMatch is returned when the geocoder cannot resolve a pincode.
	ErrNoMatch = errors.New("pincode could not be located")
	// ErrNoRoute is returned when the router finds no driving route to the destination.
	ErrNoRoute = errors.New("no driving route to destination")
)

// GeoCoordinate is a WGS84 point.
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteLeg is the raw resolver output before pricing is applied.
type RouteLeg struct {
	// DistanceKm is the driving distance from the store to the destination.
	DistanceKm float64
	// DurationMinutes is the estimated driving time.
	DurationMinutes float64
	// Destination is the geocoded coordinate of the delivery pincode.
	Destination GeoCoordinate
}

// DeliveryQuote is the result of a delivery charge calculation and the unit
// of cache storage. DeliveryUnavailable implies DeliveryCharge == 0; an
// available quote always carries Coordinates and a non-negative distance.
type DeliveryQuote struct {
	// DistanceKm is the driving distance, rounded to one decimal place.
	DistanceKm float64 `json:"distance_km"`
	// DeliveryCharge is the charge in whole rupees.
	DeliveryCharge int `json:"delivery_charge"`
	// DurationMinutes is the estimated driving time, rounded to whole minutes.
	DurationMinutes int `json:"duration_minutes,omitempty"`
	// DeliveryUnavailable is true when the destination cannot be served.
	DeliveryUnavailable bool `json:"delivery_unavailable"`
	// Error describes why delivery is unavailable, when it is.
	Error string `json:"error,omitempty"`
	// Coordinates is the geocoded destination, present only on success.
	Coordinates *GeoCoordinate `json:"coordinates,omitempty"`
	// RatePerKm is the rate used for this quote.
	RatePerKm float64 `json:"rate_per_km,omitempty"`
}

// CacheEntry wraps a quote with the time it was calculated. Staleness is
// decided by comparing Timestamp against the cache TTL on every read, so an
// entry copied between tiers keeps its original expiry.
type CacheEntry struct {
	Quote     DeliveryQuote `json:"result"`
	Timestamp int64         `json:"timestamp"` // epoch milliseconds
}
