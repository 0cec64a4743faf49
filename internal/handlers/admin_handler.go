package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/healthhubhq/backend/internal/claims"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/models"
	"github.com/healthhubhq/backend/internal/services"
)

// AdminHandler carries every admin-only operation: trainer approvals,
// payment settlement, user edits and member activity management.
type AdminHandler struct {
	trainerService    *services.TrainerService
	membershipService *services.MembershipService
	trackingService   *services.TrackingService
}

func NewAdminHandler(
	trainerService *services.TrainerService,
	membershipService *services.MembershipService,
	trackingService *services.TrackingService,
) *AdminHandler {
	return &AdminHandler{
		trainerService:    trainerService,
		membershipService: membershipService,
		trackingService:   trackingService,
	}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	pending, err := h.trainerService.Pending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	resp, err := h.membershipService.AdminDashboard(pending)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	return c.JSON(resp)
}

func (h *AdminHandler) ApproveTrainer(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}
	adminID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	profile, err := h.trainerService.Approve(c.Context(), profileID, adminID)
	if err != nil {
		return h.approvalError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":         "Trainer approved successfully",
		"trainer_id":      profile.UserID,
		"approval_status": profile.ApprovalStatus,
	})
}

func (h *AdminHandler) RejectTrainer(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid application id",
		})
	}
	adminID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RejectTrainerRequest
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

	profile, err := h.trainerService.Reject(c.Context(), profileID, adminID, req.Reason)
	if err != nil {
		return h.approvalError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":         "Trainer rejected",
		"trainer_id":      profile.UserID,
		"approval_status": profile.ApprovalStatus,
	})
}

func (h *AdminHandler) approvalError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrApplicationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if errors.Is(err, models.ErrNotPending) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if errors.Is(err, models.ErrReasonRequired) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to update application",
	})
}

func (h *AdminHandler) ConfirmPayment(c *fiber.Ctx) error {
	return h.settlePayment(c, h.membershipService.ConfirmPayment, "Payment confirmed")
}

func (h *AdminHandler) CancelPayment(c *fiber.Ctx) error {
	return h.settlePayment(c, h.membershipService.CancelPayment, "Payment cancelled")
}

func (h *AdminHandler) settlePayment(c *fiber.Ctx, action func(uuid.UUID, uuid.UUID, string) (*models.Membership, error), message string) error {
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid membership id",
		})
	}
	adminID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	// The notes body is optional; a missing or malformed body settles
	// the payment without notes.
	var req dto.PaymentActionRequest
	if err := c.BodyParser(&req); err != nil {
		req = dto.PaymentActionRequest{}
	}

	membership, err := action(membershipID, adminID, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrPaymentNotPending) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update payment",
		})
	}

	return c.JSON(fiber.Map{
		"message":        message,
		"membership_id":  membership.ID,
		"payment_status": membership.PaymentStatus,
	})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	var req dto.UpdateUserRequest
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

	user, err := h.membershipService.UpdateUser(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrFieldNotApplicable) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update user",
		})
	}

	return c.JSON(dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

func (h *AdminHandler) CreateWorkoutPlan(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	var req dto.CreateWorkoutPlanRequest
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

	plans, err := h.trackingService.CreateWorkoutPlan(memberID, &req)
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
		if errors.Is(err, services.ErrPlanExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create workout plan",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Workout plan created",
		"plans":   plans,
	})
}

func (h *AdminHandler) UpsertProteinIntake(c *fiber.Ctx) error {
	adminID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpsertProteinIntakeRequest
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

	intake, err := h.trackingService.UpsertProteinIntake(adminID, &req)
	if err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrProteinNotTracked) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save protein intake",
		})
	}

	return c.JSON(intake)
}

func (h *AdminHandler) AddMedicalCheckup(c *fiber.Ctx) error {
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid membership id",
		})
	}
	adminID, err := claims.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.AddMedicalCheckupRequest
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

	checkup, err := h.trackingService.AddMedicalCheckup(adminID, membershipID, &req)
	if err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save checkup",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(checkup)
}

func (h *AdminHandler) ManagedUserData(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	resp, err := h.trackingService.ManagedUserData(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load user data",
		})
	}

	return c.JSON(resp)
}
