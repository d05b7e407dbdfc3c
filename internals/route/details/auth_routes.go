package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "leetrack_backend/internals/features/users/auth/controller"
	middlewares "leetrack_backend/internals/middlewares"
	authMiddleware "leetrack_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	controller := authController.NewAuthController(db)

	public := app.Group("/api/auth")
	public.Post("/register", middlewares.RegisterRateLimiter(), controller.Register)
	public.Post("/login", middlewares.LoginRateLimiter(), controller.Login)

	private := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))
	private.Get("/me", controller.Me)
	private.Put("/update-profile", controller.UpdateProfile)
	private.Post("/change-password", controller.ChangePassword)
}
