package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthhubhq/backend/internal/billing"
	"github.com/healthhubhq/backend/internal/dto"
)

// FeeHandler serves the public fee calculator, so prospective members can
// preview costs before registering.
type FeeHandler struct{}

func NewFeeHandler() *FeeHandler {
	return &FeeHandler{}
}

func (h *FeeHandler) Preview(c *fiber.Ctx) error {
	tier := billing.Tier(c.Query("tier"))
	if !tier.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tier: must be L1, L2 or L3",
		})
	}

	months := c.QueryInt("months", 0)
	if months < 0 || months > 24 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid months: must be between 0 and 24",
		})
	}

	prepay := c.QueryBool("prepay", false)

	addonCount := c.QueryInt("addons", 0)
	if addonCount < 0 || addonCount > 4 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid addons: must be between 0 and 4",
		})
	}
	if addonCount > 0 && tier != billing.TierL3 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Add-ons are only available on the L3 tier",
		})
	}

	breakdown := billing.CalculateFee(tier, prepay, months, billing.AddonFee*float64(addonCount))

	return c.JSON(dto.FeePreviewResponse{
		Tier:      tier,
		Months:    months,
		Prepay:    prepay,
		Breakdown: breakdown,
	})
}
