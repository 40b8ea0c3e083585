package domain

// DeliveryZone is a distance bracket with a flat charge, maintained by the
// store admin. Zones are reference data: the live pricing path charges
// linearly per kilometre and only exposes zones for display.
type DeliveryZone struct {
	ZoneName       string  `json:"zone_name"`
	MinDistanceKm  float64 `json:"min_distance_km"`
	MaxDistanceKm  float64 `json:"max_distance_km"`
	DeliveryCharge int     `json:"delivery_charge"`
	IsActive       bool    `json:"is_active"`
}

// ZoneCharge returns the flat charge of the first active zone whose bracket
// contains the distance, and whether one matched. Zones are expected ordered
// ascending by MinDistanceKm.
//
// Deprecated: kept for storefronts still reading bracketed charges. New
// callers get the per-km quote from the pricing service instead.
func ZoneCharge(zones []DeliveryZone, distanceKm float64) (int, bool) {
	for _, z := range zones {
		if z.IsActive && distanceKm >= z.MinDistanceKm && distanceKm <= z.MaxDistanceKm {
			return z.DeliveryCharge, true
		}
	}
	return 0, false
}
