package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/healthhubhq/backend/internal/claims"
	"github.com/healthhubhq/backend/internal/dto"
	"github.com/healthhubhq/backend/internal/models"
)

// RequireRole is the single authorization gate behind JWTProtected. It
// checks the token's role claim against the allowed set, then confirms
// the account still exists and is active so a deactivated user cannot
// ride out their token's lifetime.
func RequireRole(db *gorm.DB, roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		role, err := claims.Role(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient permissions",
			})
		}

		userID, err := claims.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil || !user.Active || user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Account is not active",
			})
		}

		return c.Next()
	}
}
