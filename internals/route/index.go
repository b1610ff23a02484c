// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "kursusku_backend/internals/middlewares/auth"
	routeDetails "kursusku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE (USER) → wajib JWT
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ADMIN → JWT + role admin
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(db), authMiddleware.IsAdmin())

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Certificate routes...")
	routeDetails.CertificatePublicRoutes(public, db)
	routeDetails.CertificateAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Course routes...")
	routeDetails.CoursePublicRoutes(public, db)
	routeDetails.CourseAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Settings routes...")
	routeDetails.SettingsPublicRoutes(public, db)
	routeDetails.SettingsAdminRoutes(admin, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Payment routes...")
	routeDetails.PaymentUserRoutes(private, db)
	routeDetails.PaymentPublicRoutes(public, db)
}
