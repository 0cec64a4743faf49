package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/claims"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/services"
)

type TrainerHandler struct {
	trainerService *services.TrainerService
	ratingService  *services.RatingService
}

func NewTrainerHandler(trainerService *services.TrainerService, ratingService *services.RatingService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService, ratingService: ratingService}
}

func (h *TrainerHandler) Dashboard(c *fiber.Ctx) error {
	trainerID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.trainerService.Dashboard(trainerID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Trainer profile not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	return c.JSON(resp)
}

// Directory lists approved trainers. Public, so prospective members can
// choose a trainer before registering.
func (h *TrainerHandler) Directory(c *fiber.Ctx) error {
	resp, err := h.trainerService.Directory()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load trainers",
		})
	}

	return c.JSON(resp)
}

func (h *TrainerHandler) Ratings(c *fiber.Ctx) error {
	trainerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid trainer id",
		})
	}

	resp, err := h.ratingService.Stats(trainerID)
	if err != nil {
		if errors.Is(err, services.ErrRatedTrainerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load ratings",
		})
	}

	return c.JSON(resp)
}
