package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"veggiekart-delivery/internal/core/cache"
	"veggiekart-delivery/internal/core/config"
	"veggiekart-delivery/internal/features/delivery/adapters"
	"veggiekart-delivery/internal/features/delivery/domain"
	"veggiekart-delivery/internal/features/delivery/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGeocoder is a counting mock implementation of GeocodingProvider.
type mockGeocoder struct {
	mu    sync.Mutex
	calls int
	coord domain.GeoCoordinate
	err   error
	delay time.Duration
}

// Geocode implements GeocodingProvider.
func (m *mockGeocoder) Geocode(ctx context.Context, pincode string) (domain.GeoCoordinate, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return domain.GeoCoordinate{}, m.err
	}
	return m.coord, nil
}

func (m *mockGeocoder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockRouter is a counting mock implementation of RoutingProvider.
type mockRouter struct {
	mu         sync.Mutex
	calls      int
	distanceKm float64
	durationM  float64
	err        error
}

// Route implements RoutingProvider.
func (m *mockRouter) Route(ctx context.Context, origin, dest domain.GeoCoordinate) (domain.RouteLeg, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.err != nil {
		return domain.RouteLeg{}, m.err
	}
	return domain.RouteLeg{
		DistanceKm:      m.distanceKm,
		DurationMinutes: m.durationM,
		Destination:     dest,
	}, nil
}

// mockRateSource is a mock implementation of RateSource.
type mockRateSource struct {
	rate float64
	err  error
}

// RatePerKm implements RateSource.
func (m *mockRateSource) RatePerKm(ctx context.Context) (float64, error) {
	return m.rate, m.err
}

// mockZoneRepo is a counting mock implementation of ZoneRepository.
type mockZoneRepo struct {
	calls int
	zones []domain.DeliveryZone
	err   error
}

// ListActive implements ZoneRepository.
func (m *mockZoneRepo) ListActive(ctx context.Context) ([]domain.DeliveryZone, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.zones, nil
}

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		OriginLat:        21.0919,
		OriginLng:        79.0556,
		OriginPincode:    "440024",
		DefaultRatePerKm: 10,
		MaxDistanceKm:    50,
		CacheTTLMinutes:  30,
	}
}

// testService builds an isolated coordinator with in-process backends for
// both tiers and returns the backends for direct inspection.
func testService(geo *mockGeocoder, rtr *mockRouter, rates *mockRateSource, zones *mockZoneRepo) (*PricingService, *cache.MemoryAdapter, *cache.MemoryAdapter) {
	fastBackend := cache.NewMemoryAdapter()
	durableBackend := cache.NewMemoryAdapter()

	ttl := 30 * time.Minute
	fast := adapters.NewQuoteCache(fastBackend, ttl)
	durable := adapters.NewQuoteCache(durableBackend, ttl)

	// Leave interfaces nil unless a mock was provided; a typed nil pointer
	// would defeat the service's nil checks.
	var rateSrc ports.RateSource
	if rates != nil {
		rateSrc = rates
	}

	var zoneRepo ports.ZoneRepository
	if zones != nil {
		zoneRepo = zones
	}

	svc := NewPricingService(testPricingConfig(), geo, rtr, rateSrc, zoneRepo, fast, durable)
	return svc, fastBackend, durableBackend
}

// seedEntry writes a cache entry with a chosen timestamp straight into a
// backend, bypassing the service.
func seedEntry(t *testing.T, backend *cache.MemoryAdapter, pincode string, quote domain.DeliveryQuote, ts time.Time) {
	t.Helper()

	data, err := json.Marshal(domain.CacheEntry{Quote: quote, Timestamp: ts.UnixMilli()})
	require.NoError(t, err)
	require.NoError(t, backend.Set(context.Background(), adapters.CacheKey(pincode), data, 0))
}

// TestQuote_InvalidPincode verifies that malformed input short-circuits
// before any cache or provider interaction.
func TestQuote_InvalidPincode(t *testing.T) {
	geo := &mockGeocoder{}
	rtr := &mockRouter{}
	svc, fastBackend, durableBackend := testService(geo, rtr, nil, nil)

	for _, input := range []string{"", "44002", "44002a", "4400245", "pincode"} {
		quote := svc.Quote(context.Background(), input)

		assert.True(t, quote.DeliveryUnavailable, "input %q", input)
		assert.Equal(t, 0, quote.DeliveryCharge)
		assert.Contains(t, quote.Error, "valid 6-digit pincode")
	}

	assert.Equal(t, 0, geo.callCount())

	_, err := fastBackend.Get(context.Background(), adapters.CacheKey("44002"))
	assert.ErrorIs(t, err, cache.ErrNotFound)
	_, err = durableBackend.Get(context.Background(), adapters.CacheKey("44002"))
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

// TestQuote_Success verifies a live resolution and the resulting charge.
func TestQuote_Success(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.15, Lng: 79.09}}
	rtr := &mockRouter{distanceKm: 12.3, durationM: 24.6}
	svc, _, _ := testService(geo, rtr, nil, nil)

	quote := svc.Quote(context.Background(), "440001")

	assert.False(t, quote.DeliveryUnavailable)
	assert.Equal(t, 123, quote.DeliveryCharge)
	assert.Equal(t, 12.3, quote.DistanceKm)
	assert.Equal(t, 25, quote.DurationMinutes)
	require.NotNil(t, quote.Coordinates)
	assert.Equal(t, 21.15, quote.Coordinates.Lat)
}

// TestQuote_Idempotent verifies that a second call inside the TTL window
// returns the identical quote without another resolution.
func TestQuote_Idempotent(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.15, Lng: 79.09}}
	rtr := &mockRouter{distanceKm: 12.3}
	svc, _, _ := testService(geo, rtr, nil, nil)

	first := svc.Quote(context.Background(), "440001")
	second := svc.Quote(context.Background(), " 440 001 ")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, geo.callCount())
}

// TestQuote_CoalescesConcurrentCalls verifies that simultaneous callers for
// one pincode share a single resolution.
func TestQuote_CoalescesConcurrentCalls(t *testing.T) {
	geo := &mockGeocoder{
		coord: domain.GeoCoordinate{Lat: 21.15, Lng: 79.09},
		delay: 50 * time.Millisecond,
	}
	rtr := &mockRouter{distanceKm: 8.0}
	svc, _, _ := testService(geo, rtr, nil, nil)

	const callers = 10
	quotes := make([]domain.DeliveryQuote, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			quotes[i] = svc.Quote(context.Background(), "440001")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, geo.callCount())
	for i := 1; i < callers; i++ {
		assert.Equal(t, quotes[0], quotes[i])
	}
}

// TestQuote_DurableHitBackfillsFastTier verifies that a durable-tier hit is
// served without resolution and copied into the fast tier.
func TestQuote_DurableHitBackfillsFastTier(t *testing.T) {
	geo := &mockGeocoder{}
	rtr := &mockRouter{}
	svc, fastBackend, durableBackend := testService(geo, rtr, nil, nil)

	cached := domain.DeliveryQuote{DistanceKm: 5.5, DeliveryCharge: 55, RatePerKm: 10}
	seedEntry(t, durableBackend, "440010", cached, time.Now())

	quote := svc.Quote(context.Background(), "440010")

	assert.Equal(t, cached, quote)
	assert.Equal(t, 0, geo.callCount())

	_, err := fastBackend.Get(context.Background(), adapters.CacheKey("440010"))
	assert.NoError(t, err, "fast tier should have been backfilled")
}

// TestQuote_StaleEntriesTriggerResolution verifies lazy TTL expiry in both
// tiers.
func TestQuote_StaleEntriesTriggerResolution(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.2, Lng: 79.1}}
	rtr := &mockRouter{distanceKm: 9.0}
	svc, fastBackend, durableBackend := testService(geo, rtr, nil, nil)

	stale := domain.DeliveryQuote{DistanceKm: 1.0, DeliveryCharge: 10}
	staleAt := time.Now().Add(-31 * time.Minute)
	seedEntry(t, fastBackend, "440001", stale, staleAt)
	seedEntry(t, durableBackend, "440001", stale, staleAt)

	quote := svc.Quote(context.Background(), "440001")

	assert.Equal(t, 1, geo.callCount())
	assert.Equal(t, 90, quote.DeliveryCharge)
	assert.Equal(t, 9.0, quote.DistanceKm)
}

// TestQuote_SoftFailureCached verifies that an unresolvable pincode is a
// cacheable outcome.
func TestQuote_SoftFailureCached(t *testing.T) {
	geo := &mockGeocoder{err: domain.ErrNoMatch}
	rtr := &mockRouter{}
	svc, _, durableBackend := testService(geo, rtr, nil, nil)

	first := svc.Quote(context.Background(), "999999")

	assert.True(t, first.DeliveryUnavailable)
	assert.Contains(t, first.Error, "999999")

	second := svc.Quote(context.Background(), "999999")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, geo.callCount())

	_, err := durableBackend.Get(context.Background(), adapters.CacheKey("999999"))
	assert.NoError(t, err, "soft failures should populate the durable tier")
}

// TestQuote_NoRouteCached verifies the unroutable-destination outcome.
func TestQuote_NoRouteCached(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 10.0, Lng: 73.0}}
	rtr := &mockRouter{err: domain.ErrNoRoute}
	svc, _, _ := testService(geo, rtr, nil, nil)

	quote := svc.Quote(context.Background(), "682551")

	assert.True(t, quote.DeliveryUnavailable)
	assert.Contains(t, quote.Error, "682551")

	svc.Quote(context.Background(), "682551")
	assert.Equal(t, 1, geo.callCount())
}

// TestQuote_OutOfRangeCached verifies that out-of-range destinations are
// cached like any other determinate outcome.
func TestQuote_OutOfRangeCached(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.5, Lng: 80.0}}
	rtr := &mockRouter{distanceKm: 62.4}
	svc, _, _ := testService(geo, rtr, nil, nil)

	quote := svc.Quote(context.Background(), "442402")

	assert.True(t, quote.DeliveryUnavailable)
	assert.Equal(t, 0, quote.DeliveryCharge)
	assert.Contains(t, quote.Error, "62.4")

	svc.Quote(context.Background(), "442402")
	assert.Equal(t, 1, geo.callCount())
}

// TestQuote_HardFailureNotCached verifies that transient provider failures
// are surfaced generically and retried on the next call.
func TestQuote_HardFailureNotCached(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("connection reset by peer")}
	rtr := &mockRouter{}
	svc, fastBackend, durableBackend := testService(geo, rtr, nil, nil)

	quote := svc.Quote(context.Background(), "440001")

	assert.True(t, quote.DeliveryUnavailable)
	assert.Contains(t, quote.Error, "try again")
	assert.NotContains(t, quote.Error, "connection reset")

	svc.Quote(context.Background(), "440001")
	assert.Equal(t, 2, geo.callCount(), "hard failures must not be cached")

	_, err := fastBackend.Get(context.Background(), adapters.CacheKey("440001"))
	assert.ErrorIs(t, err, cache.ErrNotFound)
	_, err = durableBackend.Get(context.Background(), adapters.CacheKey("440001"))
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

// TestQuote_StorePincodeFree verifies free delivery to the store's own
// pincode.
func TestQuote_StorePincodeFree(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.0919, Lng: 79.0556}}
	rtr := &mockRouter{distanceKm: 3.0}
	svc, _, _ := testService(geo, rtr, nil, nil)

	quote := svc.Quote(context.Background(), "440024")

	assert.False(t, quote.DeliveryUnavailable)
	assert.Equal(t, 0, quote.DeliveryCharge)
	assert.Equal(t, 3.0, quote.DistanceKm)
}

// TestQuote_RateRefresh verifies that a live resolution adopts the
// server-authoritative rate.
func TestQuote_RateRefresh(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.15, Lng: 79.09}}
	rtr := &mockRouter{distanceKm: 12.3}
	rates := &mockRateSource{rate: 12.5}
	svc, _, _ := testService(geo, rtr, rates, nil)

	assert.Equal(t, 10.0, svc.RatePerKm(), "default rate before first resolution")

	quote := svc.Quote(context.Background(), "440001")

	// 12.3 * 12.5 = 153.75, rounded to 154.
	assert.Equal(t, 154, quote.DeliveryCharge)
	assert.Equal(t, 12.5, quote.RatePerKm)
	assert.Equal(t, 12.5, svc.RatePerKm())
}

// TestQuote_RateRefreshFailureKeepsCurrent verifies that a failing rate
// source does not block quoting.
func TestQuote_RateRefreshFailureKeepsCurrent(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.15, Lng: 79.09}}
	rtr := &mockRouter{distanceKm: 12.3}
	rates := &mockRateSource{err: errors.New("db unreachable")}
	svc, _, _ := testService(geo, rtr, rates, nil)

	quote := svc.Quote(context.Background(), "440001")

	assert.False(t, quote.DeliveryUnavailable)
	assert.Equal(t, 123, quote.DeliveryCharge)
	assert.Equal(t, 10.0, svc.RatePerKm())
}

// TestClearCache_SingleKey verifies that clearing one pincode leaves other
// quotes cached in both tiers.
func TestClearCache_SingleKey(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.15, Lng: 79.09}}
	rtr := &mockRouter{distanceKm: 6.0}
	svc, _, _ := testService(geo, rtr, nil, nil)

	ctx := context.Background()
	svc.Quote(ctx, "440001")
	svc.Quote(ctx, "440003")
	require.Equal(t, 2, geo.callCount())

	require.NoError(t, svc.ClearCache(ctx, "440001"))

	svc.Quote(ctx, "440003")
	assert.Equal(t, 2, geo.callCount(), "440003 should still be cached")

	svc.Quote(ctx, "440001")
	assert.Equal(t, 3, geo.callCount(), "440001 should have been evicted")
}

// TestClearCache_All verifies the full flush of both tiers.
func TestClearCache_All(t *testing.T) {
	geo := &mockGeocoder{coord: domain.GeoCoordinate{Lat: 21.15, Lng: 79.09}}
	rtr := &mockRouter{distanceKm: 6.0}
	svc, _, _ := testService(geo, rtr, nil, nil)

	ctx := context.Background()
	svc.Quote(ctx, "440001")
	svc.Quote(ctx, "440003")
	require.Equal(t, 2, geo.callCount())

	require.NoError(t, svc.ClearCache(ctx, ""))

	svc.Quote(ctx, "440001")
	svc.Quote(ctx, "440003")
	assert.Equal(t, 4, geo.callCount())
}

// TestZones verifies fetch-once semantics and explicit refresh.
func TestZones(t *testing.T) {
	repo := &mockZoneRepo{zones: []domain.DeliveryZone{
		{ZoneName: "City", MinDistanceKm: 0, MaxDistanceKm: 10, DeliveryCharge: 40, IsActive: true},
	}}
	svc, _, _ := testService(&mockGeocoder{}, &mockRouter{}, nil, repo)

	ctx := context.Background()

	zones, err := svc.Zones(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "City", zones[0].ZoneName)

	_, err = svc.Zones(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second read should be served from memory")

	_, err = svc.RefreshZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

// TestZones_RepositoryError verifies error propagation from the repository.
func TestZones_RepositoryError(t *testing.T) {
	repo := &mockZoneRepo{err: errors.New("relation does not exist")}
	svc, _, _ := testService(&mockGeocoder{}, &mockRouter{}, nil, repo)

	_, err := svc.Zones(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch delivery zones")
}
