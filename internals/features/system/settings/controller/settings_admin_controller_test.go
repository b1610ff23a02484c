package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kursusku_backend/internals/features/system/settings/model"
	helper "kursusku_backend/internals/helpers"
)

func setupSettingsApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SystemSettingsModel{}, &model.APIKeyModel{}))

	app := fiber.New()
	settingsCtrl := NewSettingsAdminController(db)
	keyCtrl := NewAPIKeyController(db)
	app.Get("/settings", settingsCtrl.GetSettings)
	app.Put("/settings", settingsCtrl.UpdateSettings)
	app.Post("/settings/api-keys", keyCtrl.Create)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, helper.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env helper.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, env
}

func TestUpdateSettings_InvalidSiteURLRejected(t *testing.T) {
	app := setupSettingsApp(t)

	code, env := doJSON(t, app, "PUT", "/settings",
		`{"general":{"site_url":"bukan-url"}}`)
	assert.Equal(t, 422, code)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.NotEmpty(t, env.Errors["general.site_url"])
}

func TestUpdateSettings_InvalidContactEmailRejected(t *testing.T) {
	app := setupSettingsApp(t)

	code, env := doJSON(t, app, "PUT", "/settings",
		`{"general":{"contact_email":"bukan email"}}`)
	assert.Equal(t, 422, code)
	assert.NotEmpty(t, env.Errors["general.contact_email"])
}

func TestUpdateSettings_DefaultLanguageMustBeSupported(t *testing.T) {
	app := setupSettingsApp(t)

	// "fr" bukan anggota supported_languages default (en/id/ar)
	code, env := doJSON(t, app, "PUT", "/settings",
		`{"localization":{"default_language":"fr"}}`)
	assert.Equal(t, 422, code)
	assert.NotEmpty(t, env.Errors["localization.default_language"])

	// kalau supported_languages ikut dipatch dan memuatnya → lolos
	code, env = doJSON(t, app, "PUT", "/settings",
		`{"localization":{"default_language":"fr","supported_languages":["en","fr"]}}`)
	assert.Equal(t, 200, code)
	assert.True(t, env.Success)
}

func TestUpdateSettings_LocalizationReportsAllInvalidFields(t *testing.T) {
	app := setupSettingsApp(t)

	// default_language rusak TIDAK boleh menelan error default_currency
	code, env := doJSON(t, app, "PUT", "/settings",
		`{"localization":{"default_language":"x","default_currency":"RUPIAH"}}`)
	assert.Equal(t, 422, code)
	assert.NotEmpty(t, env.Errors["localization.default_language"])
	assert.NotEmpty(t, env.Errors["localization.default_currency"])
}

func TestUpdateSettings_TemplateNeedsNamePlaceholder(t *testing.T) {
	app := setupSettingsApp(t)

	code, env := doJSON(t, app, "PUT", "/settings",
		`{"email_templates":{"welcome":"Halo kamu, selamat datang!"}}`)
	assert.Equal(t, 422, code)
	assert.NotEmpty(t, env.Errors["email_templates.welcome"])

	// certificate_issued juga wajib {{course}}
	code, env = doJSON(t, app, "PUT", "/settings",
		`{"email_templates":{"certificate_issued":"Selamat {{name}}, sertifikatmu terbit."}}`)
	assert.Equal(t, 422, code)
	assert.NotEmpty(t, env.Errors["email_templates.certificate_issued"])
}

func TestUpdateSettings_ValidPatchMerges(t *testing.T) {
	app := setupSettingsApp(t)

	code, env := doJSON(t, app, "PUT", "/settings",
		`{"general":{"site_name":"Akademi Baru","site_url":"https://akademi.example.com"}}`)
	assert.Equal(t, 200, code)
	assert.True(t, env.Success)
}

func TestCreateAPIKey_DuplicateNameConflicts(t *testing.T) {
	app := setupSettingsApp(t)

	code, _ := doJSON(t, app, "POST", "/settings/api-keys",
		`{"name":"integrasi-lms"}`)
	require.Equal(t, 201, code)

	code, env := doJSON(t, app, "POST", "/settings/api-keys",
		`{"name":"integrasi-lms"}`)
	assert.Equal(t, 409, code)
	assert.Equal(t, "CONFLICT", env.ErrorCode)
	assert.Equal(t, "Nama API key sudah dipakai", env.Message)
}
