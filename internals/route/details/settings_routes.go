package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingsController "kursusku_backend/internals/features/system/settings/controller"
)

func SettingsPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := settingsController.NewSettingsPublicController(db)
	router.Get("/settings", ctrl.GetPublicSettings)
}

// SettingsAdminRoutes: singleton settings + pengelolaan API key.
func SettingsAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := settingsController.NewSettingsAdminController(db)
	keyCtrl := settingsController.NewAPIKeyController(db)

	settings := router.Group("/settings")
	settings.Get("/", ctrl.GetSettings)
	settings.Put("/", ctrl.UpdateSettings)

	keys := settings.Group("/api-keys")
	keys.Get("/", keyCtrl.GetAll)
	keys.Post("/", keyCtrl.Create)
	keys.Post("/:id/regenerate", keyCtrl.Regenerate)
	keys.Delete("/:id", keyCtrl.Delete)
}
