package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "kursusku_backend/internals/features/users/users/controller"
	"kursusku_backend/internals/middlewares"
)

// AuthRoutes dipasang langsung di app karena login tidak lewat group terproteksi.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}
