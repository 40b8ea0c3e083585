package adapters

import (
	"context"
	"fmt"

	"veggiekart-delivery/internal/features/delivery/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresZoneRepository reads delivery zone brackets and the authoritative
// per-km rate from the storefront backend database. It implements both the
// ZoneRepository and RateSource ports.
type PostgresZoneRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresZoneRepository creates a repository over an existing pool.
func NewPostgresZoneRepository(pool *pgxpool.Pool) *PostgresZoneRepository {
	return &PostgresZoneRepository{pool: pool}
}

// ListActive returns the active zones ordered ascending by min distance.
func (r *PostgresZoneRepository) ListActive(ctx context.Context) ([]domain.DeliveryZone, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT zone_name, min_distance_km, max_distance_km, delivery_charge, is_active
		FROM delivery_zones
		WHERE is_active
		ORDER BY min_distance_km`)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery zones: %w", err)
	}
	defer rows.Close()

	var zones []domain.DeliveryZone
	for rows.Next() {
		var z domain.DeliveryZone
		if err := rows.Scan(&z.ZoneName, &z.MinDistanceKm, &z.MaxDistanceKm, &z.DeliveryCharge, &z.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan delivery zone: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read delivery zones: %w", err)
	}

	return zones, nil
}

// RatePerKm returns the most recently updated per-km rate.
func (r *PostgresZoneRepository) RatePerKm(ctx context.Context) (float64, error) {
	var rate float64
	err := r.pool.QueryRow(ctx, `
		SELECT rate_per_km
		FROM delivery_settings
		ORDER BY updated_at DESC
		LIMIT 1`).Scan(&rate)
	if err != nil {
		return 0, fmt.Errorf("failed to read rate per km: %w", err)
	}
	return rate, nil
}
