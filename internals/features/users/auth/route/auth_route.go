package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "ghostclass_backend/internals/features/users/auth/controller"
	"ghostclass_backend/internals/middlewares"
	authMiddleware "ghostclass_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")

	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh-token", ctrl.RefreshToken)

	// logout needs the access token to blacklist it
	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
}
