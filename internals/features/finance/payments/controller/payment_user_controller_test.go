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
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
	currencyService "kursusku_backend/internals/features/finance/currency/service"
	"kursusku_backend/internals/features/finance/payments/model"
	userModel "kursusku_backend/internals/features/users/users/model"
	helper "kursusku_backend/internals/helpers"
)

func setupCheckoutApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{}, &courseModel.CourseModel{}, &model.PaymentModel{},
	))

	usr := userModel.UserModel{
		UserName:         "Budi",
		UserEmail:        "budi@example.com",
		UserPasswordHash: "x",
	}
	require.NoError(t, db.Create(&usr).Error)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", usr.UserID.String())
		return c.Next()
	})
	ctrl := NewPaymentUserController(db)
	app.Post("/payments/checkout", ctrl.Checkout)
	return app, db
}

func doCheckout(t *testing.T, app *fiber.App, body string) (int, helper.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/payments/checkout", strings.NewReader(body))
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

func TestCheckout_NonIDRWithoutConverterReturns503(t *testing.T) {
	app, db := setupCheckoutApp(t)

	course := courseModel.CourseModel{
		CourseTitle:       datatypes.JSONMap{"en": "Go Basics"},
		CoursePrice:       49,
		CourseCurrency:    "USD",
		CourseIsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	saved := currencyService.Default
	currencyService.Default = nil
	defer func() { currencyService.Default = saved }()

	code, env := doCheckout(t, app, `{"course_id":"`+course.CourseID.String()+`"}`)
	assert.Equal(t, 503, code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "kurs")

	// tidak boleh ada payment nyangkut
	var count int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckout_UnpublishedCourseNotFound(t *testing.T) {
	app, db := setupCheckoutApp(t)

	course := courseModel.CourseModel{
		CourseTitle:       datatypes.JSONMap{"en": "Draft Course"},
		CoursePrice:       100000,
		CourseCurrency:    "IDR",
		CourseIsPublished: false,
	}
	require.NoError(t, db.Create(&course).Error)

	code, env := doCheckout(t, app, `{"course_id":"`+course.CourseID.String()+`"}`)
	assert.Equal(t, 404, code)
	assert.False(t, env.Success)
}
