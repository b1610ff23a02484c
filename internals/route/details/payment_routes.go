package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "kursusku_backend/internals/features/finance/payments/controller"
)

func PaymentUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentUserController(db)

	payments := router.Group("/payments")
	payments.Post("/checkout", ctrl.Checkout)
	payments.Get("/my", ctrl.GetMy)
}

// PaymentPublicRoutes: callback status dari payment gateway (tanpa auth user).
func PaymentPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentUserController(db)
	router.Post("/payments/status", ctrl.UpdateStatus)
}
