package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certController "kursusku_backend/internals/features/certificates/certificates/controller"
	"kursusku_backend/internals/middlewares"
)

// CertificatePublicRoutes: verifikasi publik (scan QR / link email).
func CertificatePublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := certController.NewCertificateVerifyController(db)
	router.Get("/certificates/:number/verify", middlewares.VerifyRateLimiter(), ctrl.Verify)
}

// CertificateAdminRoutes: seluruh lifecycle sertifikat, khusus admin.
func CertificateAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := certController.NewCertificateAdminController(db)

	certs := router.Group("/certificates")
	certs.Get("/", ctrl.GetAll)
	certs.Post("/", ctrl.Create)
	certs.Post("/bulk", ctrl.BulkCreate)
	certs.Get("/export", ctrl.Export)
	certs.Get("/:id", ctrl.GetByID)
	certs.Put("/:id", ctrl.Update)
	certs.Post("/:id/regenerate", ctrl.Regenerate)
	certs.Post("/:id/revoke", ctrl.Revoke)
	certs.Post("/:id/restore", ctrl.Restore)
	certs.Get("/:id/history", ctrl.History)
	certs.Delete("/:id", ctrl.Delete)
}
