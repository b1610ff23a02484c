package controller

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
	currencyService "kursusku_backend/internals/features/finance/currency/service"
	"kursusku_backend/internals/features/finance/payments/dto"
	"kursusku_backend/internals/features/finance/payments/model"
	"kursusku_backend/internals/features/finance/payments/service"
	userModel "kursusku_backend/internals/features/users/users/model"
	helper "kursusku_backend/internals/helpers"
)

type PaymentUserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPaymentUserController(db *gorm.DB) *PaymentUserController {
	return &PaymentUserController{DB: db, Validate: validator.New()}
}

// Checkout: buat payment untuk satu course lalu minta Snap token.
// Harga course dikonversi ke IDR dulu kalau course dipatok mata uang lain
// (Midtrans hanya terima IDR).
func (ctrl *PaymentUserController) Checkout(c *fiber.Ctx) error {
	rawUserID, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var usr userModel.UserModel
	if err := ctrl.DB.First(&usr, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ? AND course_is_published = ?", req.CourseID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil course")
	}

	amount := course.CoursePrice
	if course.CourseCurrency != "IDR" {
		if currencyService.Default == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Layanan kurs belum siap, coba lagi nanti")
		}
		converted, err := currencyService.Default.Convert(c.UserContext(), course.CoursePrice, course.CourseCurrency, "IDR")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Gagal konversi harga ke IDR: "+err.Error())
		}
		amount = math.Ceil(converted)
	}

	orderID := fmt.Sprintf("COURSE-%s-%d", course.CourseID.String()[:8], time.Now().Unix())
	payment := model.PaymentModel{
		PaymentUserID:     userID,
		PaymentCourseID:   course.CourseID,
		PaymentAmount:     amount,
		PaymentCurrency:   "IDR",
		PaymentStatus:     "initiated",
		PaymentExternalID: &orderID,
		PaymentMeta: datatypes.JSONMap{
			"course_currency": course.CourseCurrency,
			"course_price":    course.CoursePrice,
		},
	}
	if err := ctrl.DB.Create(&payment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat payment")
	}

	courseName := helper.ResolveJSONMap(course.CourseTitle, helper.FallbackLanguage)
	token, redirectURL, err := service.GenerateSnapToken(payment, courseName, service.CustomerInput{
		Name:  usr.UserName,
		Email: usr.UserEmail,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi Midtrans")
	}

	if err := ctrl.DB.Model(&payment).Updates(map[string]interface{}{
		"payment_status":       "pending",
		"payment_checkout_url": redirectURL,
		"updated_at":           time.Now(),
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update payment")
	}

	return helper.JsonCreated(c, "Checkout berhasil dibuat", dto.CheckoutResponse{
		PaymentID:   payment.PaymentID,
		OrderID:     orderID,
		SnapToken:   token,
		CheckoutURL: redirectURL,
		Amount:      amount,
		Currency:    "IDR",
	})
}

// UpdateStatus: callback status pembayaran (webhook Midtrans / admin).
func (ctrl *PaymentUserController) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var payment model.PaymentModel
	if err := ctrl.DB.First(&payment, "payment_external_id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil payment")
	}

	updates := map[string]interface{}{
		"payment_status": req.PaymentStatus,
		"updated_at":     time.Now(),
	}
	if req.PaymentStatus == "paid" {
		now := time.Now()
		updates["payment_paid_at"] = now
	}
	if err := ctrl.DB.Model(&payment).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update status payment")
	}
	payment.PaymentStatus = req.PaymentStatus
	return helper.JsonUpdated(c, "Status payment berhasil diupdate", payment)
}

// GetMy: daftar payment milik user login.
func (ctrl *PaymentUserController) GetMy(c *fiber.Ctx) error {
	rawUserID, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var payments []model.PaymentModel
	if err := ctrl.DB.
		Where("payment_user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data payment")
	}
	return helper.JsonOK(c, "", payments)
}
