package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/system/settings/dto"
	"kursusku_backend/internals/features/system/settings/service"
	helper "kursusku_backend/internals/helpers"
)

type SettingsPublicController struct {
	Service *service.SettingsService
}

func NewSettingsPublicController(db *gorm.DB) *SettingsPublicController {
	return &SettingsPublicController{Service: service.NewSettingsService(db)}
}

// GetPublicSettings: hanya subset whitelist yang keluar ke frontend publik.
func (ctrl *SettingsPublicController) GetPublicSettings(c *fiber.Ctx) error {
	settings, err := ctrl.Service.GetOrCreate()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil settings")
	}

	resp := dto.PublicSettingsResponse{}
	if v, ok := settings.SettingsGeneral["site_name"].(string); ok {
		resp.SiteName = v
	}
	if v, ok := settings.SettingsGeneral["logo_url"].(string); ok {
		resp.LogoURL = v
	}
	if v, ok := settings.SettingsLocalization["default_language"].(string); ok {
		resp.DefaultLanguage = v
	}
	if v, ok := settings.SettingsLocalization["default_currency"].(string); ok {
		resp.DefaultCurrency = v
	}
	resp.SupportedLanguages = toStringSlice(settings.SettingsLocalization["supported_languages"])

	return helper.JsonOK(c, "", resp)
}
