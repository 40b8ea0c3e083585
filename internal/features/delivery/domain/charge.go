package domain

import (
	"fmt"
	"math"
)

// ChargeRule prices a resolved route. Rules apply in order: out-of-range
// destinations are unavailable, the store's own pincode ships free, everything
// else pays the linear per-km rate.
type ChargeRule struct {
	// RatePerKm is the charge per kilometre in rupees.
	RatePerKm float64
	// MaxDistanceKm is the service range limit.
	MaxDistanceKm float64
	// StorePincode is the pincode of the store itself.
	StorePincode string
}

// Quote applies the rule to a route leg. The distance is rounded to one
// decimal place before the rate is applied; the charge is then rounded to the
// nearest whole rupee.
func (r ChargeRule) Quote(pincode string, leg RouteLeg) DeliveryQuote {
	km := math.Round(leg.DistanceKm*10) / 10

	if km > r.MaxDistanceKm {
		return DeliveryQuote{
			DistanceKm:          km,
			DeliveryUnavailable: true,
			Error:               fmt.Sprintf("delivery unavailable: %.1f km is beyond our %.0f km service range", km, r.MaxDistanceKm),
		}
	}

	dest := leg.Destination
	quote := DeliveryQuote{
		DistanceKm:      km,
		DurationMinutes: int(math.Round(leg.DurationMinutes)),
		Coordinates:     &dest,
		RatePerKm:       r.RatePerKm,
	}

	if pincode != r.StorePincode {
		quote.DeliveryCharge = int(math.Round(km * r.RatePerKm))
	}

	return quote
}
