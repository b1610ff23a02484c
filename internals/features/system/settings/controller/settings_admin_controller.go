package controller

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/system/settings/dto"
	"kursusku_backend/internals/features/system/settings/service"
	helper "kursusku_backend/internals/helpers"
)

type SettingsAdminController struct {
	DB      *gorm.DB
	Service *service.SettingsService
}

func NewSettingsAdminController(db *gorm.DB) *SettingsAdminController {
	return &SettingsAdminController{DB: db, Service: service.NewSettingsService(db)}
}

func (ctrl *SettingsAdminController) GetSettings(c *fiber.Ctx) error {
	settings, err := ctrl.Service.GetOrCreate()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil settings")
	}
	return helper.JsonOK(c, "", settings)
}

func (ctrl *SettingsAdminController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	sections := req.ToSections()
	if len(sections) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada section yang dikirim")
	}

	// ✅ Validasi field per section SEBELUM merge apa pun
	fieldErrors := map[string][]string{}
	if req.General != nil {
		validateGeneral(req.General, fieldErrors)
	}
	if req.Localization != nil {
		if err := ctrl.validateLocalization(req.Localization, fieldErrors); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal validasi localization")
		}
	}
	if req.Notifications != nil {
		validateNotifications(req.Notifications, fieldErrors)
	}
	if req.EmailTemplates != nil {
		validateEmailTemplates(req.EmailTemplates, fieldErrors)
	}
	if len(fieldErrors) > 0 {
		return helper.JsonValidationError(c, fieldErrors)
	}

	var actor *uuid.UUID
	if raw, _ := c.Locals("user_id").(string); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			actor = &id
		}
	}

	settings, err := ctrl.Service.UpdateSections(sections, actor)
	if err != nil {
		if err == service.ErrUnknownSection {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update settings")
	}
	return helper.JsonUpdated(c, "Settings berhasil diupdate", settings)
}

/* =========================================================
   Validasi per section. Pesan selalu menyebut field + constraint.
========================================================= */

func validateGeneral(section map[string]any, out map[string][]string) {
	if v, ok := section["site_name"]; ok {
		s, isStr := v.(string)
		if !isStr || len(strings.TrimSpace(s)) < 3 || len(s) > 100 {
			out["general.site_name"] = append(out["general.site_name"],
				"site_name harus string 3-100 karakter")
		}
	}
	if v, ok := section["site_url"]; ok {
		s, isStr := v.(string)
		if !isStr {
			out["general.site_url"] = append(out["general.site_url"], "site_url harus string URL")
		} else if u, err := url.ParseRequestURI(s); err != nil || u.Scheme == "" || u.Host == "" {
			out["general.site_url"] = append(out["general.site_url"],
				"site_url harus URL absolut yang valid")
		}
	}
	if v, ok := section["contact_email"]; ok {
		s, isStr := v.(string)
		if !isStr {
			out["general.contact_email"] = append(out["general.contact_email"], "contact_email harus string email")
		} else if _, err := mail.ParseAddress(s); err != nil {
			out["general.contact_email"] = append(out["general.contact_email"],
				"contact_email bukan alamat email yang valid")
		}
	}
	if v, ok := section["logo_url"]; ok {
		if _, isStr := v.(string); !isStr {
			out["general.logo_url"] = append(out["general.logo_url"], "logo_url harus string")
		}
	}
}

// validateLocalization butuh cross-check terhadap hasil merge:
// default_language harus anggota supported_languages SETELAH patch diterapkan.
func (ctrl *SettingsAdminController) validateLocalization(section map[string]any, out map[string][]string) error {
	current, err := ctrl.Service.GetOrCreate()
	if err != nil {
		return err
	}

	supported := toStringSlice(current.SettingsLocalization["supported_languages"])
	if v, ok := section["supported_languages"]; ok {
		supported = toStringSlice(v)
		if len(supported) == 0 {
			out["localization.supported_languages"] = append(out["localization.supported_languages"],
				"supported_languages harus array bahasa dan tidak boleh kosong")
		}
	}

	defaultLang := ""
	if v, ok := current.SettingsLocalization["default_language"].(string); ok {
		defaultLang = v
	}
	if v, ok := section["default_language"]; ok {
		if s, isStr := v.(string); isStr && len(s) >= 2 && len(s) <= 5 {
			defaultLang = s
		} else {
			// nilai tidak valid: catat error, skip cross-check, lanjut ke field lain
			out["localization.default_language"] = append(out["localization.default_language"],
				"default_language harus kode bahasa 2-5 karakter")
			defaultLang = ""
		}
	}
	if defaultLang != "" && len(supported) > 0 && !contains(supported, defaultLang) {
		out["localization.default_language"] = append(out["localization.default_language"],
			fmt.Sprintf("default_language %q tidak ada di supported_languages", defaultLang))
	}

	if v, ok := section["default_currency"]; ok {
		s, isStr := v.(string)
		if !isStr || len(s) != 3 {
			out["localization.default_currency"] = append(out["localization.default_currency"],
				"default_currency harus kode ISO 4217 3 huruf")
		}
	}
	return nil
}

func validateNotifications(section map[string]any, out map[string][]string) {
	for key, v := range section {
		if _, isBool := v.(bool); !isBool {
			field := "notifications." + key
			out[field] = append(out[field], key+" harus boolean")
		}
	}
}

// Template email wajib string dan menyertakan placeholder {{name}};
// template sertifikat/pembayaran juga wajib {{course}}.
func validateEmailTemplates(section map[string]any, out map[string][]string) {
	for key, v := range section {
		field := "email_templates." + key
		s, isStr := v.(string)
		if !isStr || strings.TrimSpace(s) == "" {
			out[field] = append(out[field], key+" harus string template non-kosong")
			continue
		}
		if !strings.Contains(s, "{{name}}") {
			out[field] = append(out[field], key+" harus memuat placeholder {{name}}")
		}
		if (key == "certificate_issued" || key == "payment_success") && !strings.Contains(s, "{{course}}") {
			out[field] = append(out[field], key+" harus memuat placeholder {{course}}")
		}
	}
}

func toStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
