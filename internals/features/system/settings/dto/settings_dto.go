package dto

/* =========================================================
   REQUEST DTOs
========================================================= */

// UpdateSettingsRequest: partial update — hanya section yang dikirim
// yang di-merge, sisanya tidak tersentuh.
type UpdateSettingsRequest struct {
	General        map[string]any `json:"general,omitempty"`
	EmailTemplates map[string]any `json:"email_templates,omitempty"`
	Notifications  map[string]any `json:"notifications,omitempty"`
	Localization   map[string]any `json:"localization,omitempty"`
}

// ToSections konversi ke bentuk yang dimakan SettingsService.
func (r UpdateSettingsRequest) ToSections() map[string]map[string]any {
	out := map[string]map[string]any{}
	if r.General != nil {
		out["general"] = r.General
	}
	if r.EmailTemplates != nil {
		out["email_templates"] = r.EmailTemplates
	}
	if r.Notifications != nil {
		out["notifications"] = r.Notifications
	}
	if r.Localization != nil {
		out["localization"] = r.Localization
	}
	return out
}

type CreateAPIKeyRequest struct {
	Name   string   `json:"name" validate:"required,min=3,max=100"`
	Scopes []string `json:"scopes,omitempty" validate:"omitempty,dive,oneof=read write admin"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

// PublicSettingsResponse: subset whitelist untuk frontend publik.
type PublicSettingsResponse struct {
	SiteName           string   `json:"site_name"`
	LogoURL            string   `json:"logo_url"`
	DefaultLanguage    string   `json:"default_language"`
	SupportedLanguages []string `json:"supported_languages"`
	DefaultCurrency    string   `json:"default_currency"`
}
