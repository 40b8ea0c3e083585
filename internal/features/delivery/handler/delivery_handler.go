package handler

import (
	"veggiekart-delivery/internal/features/delivery/domain"
	"veggiekart-delivery/internal/features/delivery/service"

	"github.com/gofiber/fiber/v2"
)

// DeliveryHandler handles HTTP requests for delivery pricing operations.
type DeliveryHandler struct {
	pricing *service.PricingService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(pricing *service.PricingService) *DeliveryHandler {
	return &DeliveryHandler{
		pricing: pricing,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// GetDeliveryCharge godoc
// @Summary Calculate the delivery charge for a pincode
// @Description Resolves the pincode to a road distance from the store and prices it. Unserviceable pincodes come back with delivery_unavailable set, never an error status.
// @Tags delivery
// @Accept json
// @Produce json
// @Param pincode path string true "6-digit destination pincode"
// @Success 200 {object} domain.DeliveryQuote
// @Router /delivery/charge/{pincode} [get]
func (h *DeliveryHandler) GetDeliveryCharge(c *fiber.Ctx) error {
	// Validation outcomes ride in the quote body; the endpoint always
	// answers 200 so storefront clients handle one shape.
	quote := h.pricing.Quote(c.Context(), c.Params("pincode"))
	return c.JSON(quote)
}

// ClearCache godoc
// @Summary Clear cached delivery quotes
// @Description Removes one pincode's quote from both cache tiers, or every quote when no pincode is given
// @Tags delivery
// @Produce json
// @Param pincode path string false "6-digit destination pincode"
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /delivery/cache/{pincode} [delete]
func (h *DeliveryHandler) ClearCache(c *fiber.Ctx) error {
	if err := h.pricing.ClearCache(c.Context(), c.Params("pincode")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(fiber.Map{"message": "cache cleared"})
}

// GetZones godoc
// @Summary List delivery zones
// @Description Returns the active delivery zone brackets, ordered by distance
// @Tags delivery
// @Produce json
// @Success 200 {array} domain.DeliveryZone
// @Failure 500 {object} ErrorResponse
// @Router /delivery/zones [get]
func (h *DeliveryHandler) GetZones(c *fiber.Ctx) error {
	zones, err := h.pricing.Zones(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if zones == nil {
		zones = []domain.DeliveryZone{} // never serialize null
	}

	return c.JSON(zones)
}
