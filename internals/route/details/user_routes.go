package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "kursusku_backend/internals/features/users/users/controller"
)

func UserAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserAdminController(db)

	users := router.Group("/users")
	users.Get("/", ctrl.GetAll)
	users.Post("/", ctrl.Create)
	users.Get("/by-email", ctrl.GetByEmail)
	users.Patch("/:id/active", ctrl.SetActive)
}
