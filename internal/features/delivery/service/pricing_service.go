package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"veggiekart-delivery/internal/core/config"
	"veggiekart-delivery/internal/core/logger"
	"veggiekart-delivery/internal/features/delivery/adapters"
	"veggiekart-delivery/internal/features/delivery/domain"
	"veggiekart-delivery/internal/features/delivery/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	msgInvalidPincode = "please enter a valid 6-digit pincode"
	msgNetworkFailure = "could not calculate delivery charge right now, please try again"
)

// PricingService is the public entry point for delivery charge quotes. It
// orchestrates validation, request coalescing, the two cache tiers, the
// geocode/route resolution and the charge rule. All outcomes are expressed
// in the returned quote; no error crosses the Quote boundary.
type PricingService struct {
	geocoder ports.GeocodingProvider
	router   ports.RoutingProvider
	rates    ports.RateSource
	zones    ports.ZoneRepository

	fastCache    *adapters.QuoteCache
	durableCache *adapters.QuoteCache

	flight singleflight.Group

	origin        domain.GeoCoordinate
	originPincode string
	maxDistanceKm float64

	mu        sync.RWMutex
	ratePerKm float64

	zonesMu  sync.RWMutex
	zoneList []domain.DeliveryZone

	logger *zap.Logger
}

// NewPricingService wires a coordinator instance. Cache tiers are injected
// so tests can run fully isolated instances.
func NewPricingService(
	cfg config.PricingConfig,
	geocoder ports.GeocodingProvider,
	router ports.RoutingProvider,
	rates ports.RateSource,
	zones ports.ZoneRepository,
	fastCache *adapters.QuoteCache,
	durableCache *adapters.QuoteCache,
) *PricingService {
	return &PricingService{
		geocoder:      geocoder,
		router:        router,
		rates:         rates,
		zones:         zones,
		fastCache:     fastCache,
		durableCache:  durableCache,
		origin:        domain.GeoCoordinate{Lat: cfg.OriginLat, Lng: cfg.OriginLng},
		originPincode: cfg.OriginPincode,
		maxDistanceKm: cfg.MaxDistanceKm,
		ratePerKm:     cfg.DefaultRatePerKm,
		logger:        logger.Get(),
	}
}

// Quote calculates the delivery charge for a pincode. Lookup order: fast
// tier, durable tier (backfilling the fast tier on a hit), then a coalesced
// live resolution. Determinate "unavailable" outcomes are cached like
// successes; transient failures are not, so the next call retries.
func (s *PricingService) Quote(ctx context.Context, rawPincode string) domain.DeliveryQuote {
	pincode := domain.NormalizePincode(rawPincode)
	if !domain.ValidPincode(pincode) {
		return domain.DeliveryQuote{DeliveryUnavailable: true, Error: msgInvalidPincode}
	}

	if entry, ok := s.fastCache.Get(ctx, pincode); ok {
		return entry.Quote
	}

	if entry, ok := s.durableCache.Get(ctx, pincode); ok {
		// Backfill keeps the original timestamp, so both tiers expire together.
		s.fastCache.Put(ctx, pincode, *entry)
		return entry.Quote
	}

	v, err, _ := s.flight.Do(pincode, func() (interface{}, error) {
		// Callers that queued behind a finished resolution find it here.
		if entry, ok := s.fastCache.Get(ctx, pincode); ok {
			return entry.Quote, nil
		}
		return s.resolve(ctx, pincode), nil
	})
	if err != nil {
		return domain.DeliveryQuote{DeliveryUnavailable: true, Error: msgNetworkFailure}
	}

	return v.(domain.DeliveryQuote)
}

// resolve performs the live geocode/route resolution and applies the charge
// rule. Soft failures (no match, no route, out of range) are cached in both
// tiers; hard failures are returned uncached.
func (s *PricingService) resolve(ctx context.Context, pincode string) domain.DeliveryQuote {
	dest, err := s.geocoder.Geocode(ctx, pincode)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatch) {
			return s.cacheQuote(ctx, pincode, domain.DeliveryQuote{
				DeliveryUnavailable: true,
				Error:               fmt.Sprintf("could not locate pincode %s", pincode),
			})
		}
		s.logger.Error("Geocoding failed", zap.String("pincode", pincode), zap.Error(err))
		return domain.DeliveryQuote{DeliveryUnavailable: true, Error: msgNetworkFailure}
	}

	leg, err := s.router.Route(ctx, s.origin, dest)
	if err != nil {
		if errors.Is(err, domain.ErrNoRoute) {
			return s.cacheQuote(ctx, pincode, domain.DeliveryQuote{
				DeliveryUnavailable: true,
				Error:               fmt.Sprintf("no delivery route to pincode %s", pincode),
			})
		}
		s.logger.Error("Routing failed", zap.String("pincode", pincode), zap.Error(err))
		return domain.DeliveryQuote{DeliveryUnavailable: true, Error: msgNetworkFailure}
	}

	s.refreshRate(ctx)

	rule := domain.ChargeRule{
		RatePerKm:     s.RatePerKm(),
		MaxDistanceKm: s.maxDistanceKm,
		StorePincode:  s.originPincode,
	}

	return s.cacheQuote(ctx, pincode, rule.Quote(pincode, leg))
}

// cacheQuote writes a quote into both tiers with a shared timestamp.
func (s *PricingService) cacheQuote(ctx context.Context, pincode string, quote domain.DeliveryQuote) domain.DeliveryQuote {
	entry := domain.CacheEntry{Quote: quote, Timestamp: time.Now().UnixMilli()}
	s.fastCache.Put(ctx, pincode, entry)
	s.durableCache.Put(ctx, pincode, entry)
	return quote
}

// refreshRate pulls the server-authoritative rate on each live resolution.
// Failures keep the current rate; the quote still goes out.
func (s *PricingService) refreshRate(ctx context.Context) {
	if s.rates == nil {
		return
	}

	rate, err := s.rates.RatePerKm(ctx)
	if err != nil {
		s.logger.Warn("Rate refresh failed, keeping current rate", zap.Error(err))
		return
	}
	if rate <= 0 {
		return
	}

	s.mu.Lock()
	s.ratePerKm = rate
	s.mu.Unlock()
}

// RatePerKm returns the rate currently in effect.
func (s *PricingService) RatePerKm() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratePerKm
}

// ClearCache removes one pincode from both tiers, or every quote when the
// pincode is empty.
func (s *PricingService) ClearCache(ctx context.Context, pincode string) error {
	if pincode = domain.NormalizePincode(pincode); pincode != "" {
		if err := s.fastCache.Delete(ctx, pincode); err != nil {
			return fmt.Errorf("failed to clear fast tier: %w", err)
		}
		if err := s.durableCache.Delete(ctx, pincode); err != nil {
			return fmt.Errorf("failed to clear durable tier: %w", err)
		}
		return nil
	}

	if err := s.fastCache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear fast tier: %w", err)
	}
	if err := s.durableCache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear durable tier: %w", err)
	}
	return nil
}

// Zones returns the delivery zone brackets, fetching them on first use.
func (s *PricingService) Zones(ctx context.Context) ([]domain.DeliveryZone, error) {
	s.zonesMu.RLock()
	cached := s.zoneList
	s.zonesMu.RUnlock()

	if cached != nil {
		return cached, nil
	}
	return s.RefreshZones(ctx)
}

// RefreshZones re-reads the zone brackets from the repository.
func (s *PricingService) RefreshZones(ctx context.Context) ([]domain.DeliveryZone, error) {
	if s.zones == nil {
		return nil, errors.New("zone repository not configured")
	}

	zones, err := s.zones.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch delivery zones: %w", err)
	}

	s.zonesMu.Lock()
	s.zoneList = zones
	s.zonesMu.Unlock()

	return zones, nil
}
