package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/healthhubhq/backend/internal/config"
	"github.com/healthhubhq/backend/internal/handlers"
	"github.com/healthhubhq/backend/internal/middleware"
	"github.com/healthhubhq/backend/internal/models"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	feeHandler *handlers.FeeHandler,
	adminHandler *handlers.AdminHandler,
	memberHandler *handlers.MemberHandler,
	trainerHandler *handlers.TrainerHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public endpoints. The trainer directory is public so prospective
	// members can pick a trainer before registering.
	api.Get("/health", healthHandler.Check)
	api.Get("/fees/preview", feeHandler.Preview)
	api.Get("/trainers", trainerHandler.Directory)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register/admin", authHandler.RegisterAdmin)
	auth.Post("/register/trainer", authHandler.RegisterTrainer)
	auth.Post("/register/member", authHandler.RegisterMember)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	api.Get("/trainers/:id/ratings", middleware.JWTProtected(cfg), trainerHandler.Ratings)

	// Admin surface
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RequireRole(db, models.RoleAdmin))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Post("/trainers/:id/approve", adminHandler.ApproveTrainer)
	admin.Post("/trainers/:id/reject", adminHandler.RejectTrainer)
	admin.Post("/memberships/:id/payment/confirm", adminHandler.ConfirmPayment)
	admin.Post("/memberships/:id/payment/cancel", adminHandler.CancelPayment)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Get("/users/:id/data", adminHandler.ManagedUserData)
	admin.Post("/users/:id/workout-plans", adminHandler.CreateWorkoutPlan)
	admin.Put("/protein-intakes", adminHandler.UpsertProteinIntake)
	admin.Post("/memberships/:id/checkups", adminHandler.AddMedicalCheckup)

	// Member surface
	member := api.Group("/member", middleware.JWTProtected(cfg), middleware.RequireRole(db, models.RoleMember))
	member.Get("/dashboard", memberHandler.Dashboard)
	member.Put("/exercises/:id/toggle", memberHandler.ToggleExercise)
	member.Get("/workout-progress", memberHandler.WorkoutProgress)
	member.Post("/trainers/:id/rate", memberHandler.RateTrainer)

	// Trainer surface
	trainer := api.Group("/trainer", middleware.JWTProtected(cfg), middleware.RequireRole(db, models.RoleTrainer))
	trainer.Get("/dashboard", trainerHandler.Dashboard)
}
