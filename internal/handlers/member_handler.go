package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/claims"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/services"
)

// MemberHandler serves the logged-in member's own data.
type MemberHandler struct {
	membershipService *services.MembershipService
	trackingService   *services.TrackingService
	ratingService     *services.RatingService
}

func NewMemberHandler(
	membershipService *services.MembershipService,
	trackingService *services.TrackingService,
	ratingService *services.RatingService,
) *MemberHandler {
	return &MemberHandler{
		membershipService: membershipService,
		trackingService:   trackingService,
		ratingService:     ratingService,
	}
}

func (h *MemberHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.membershipService.MemberDashboard(userID)
	if err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	return c.JSON(resp)
}

func (h *MemberHandler) ToggleExercise(c *fiber.Ctx) error {
	exerciseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid exercise id",
		})
	}
	userID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.trackingService.ToggleExercise(userID, exerciseID)
	if err != nil {
		if errors.Is(err, services.ErrExerciseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrNotPlanOwner) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update exercise",
		})
	}

	return c.JSON(resp)
}

func (h *MemberHandler) WorkoutProgress(c *fiber.Ctx) error {
	userID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.trackingService.WorkoutProgress(userID)
	if err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrPlannerTierOnly) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load progress",
		})
	}

	return c.JSON(resp)
}

func (h *MemberHandler) RateTrainer(c *fiber.Ctx) error {
	trainerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid trainer id",
		})
	}
	userID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	rating, err := h.ratingService.Submit(userID, trainerID, &req)
	if err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrRatingTierRequired) || errors.Is(err, services.ErrTrainerNotAssigned) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save rating",
		})
	}

	return c.JSON(rating)
}
