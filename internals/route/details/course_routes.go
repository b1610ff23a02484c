package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kursusku_backend/internals/features/courses/courses/controller"
)

func CoursePublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := courseController.NewCoursePublicController(db)

	courses := router.Group("/courses")
	courses.Get("/", ctrl.GetAll)
	courses.Get("/:id", ctrl.GetByID)
}

func CourseAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := courseController.NewCourseAdminController(db)

	courses := router.Group("/courses")
	courses.Get("/", ctrl.GetAll)
	courses.Post("/", ctrl.Create)
	courses.Put("/:id", ctrl.Update)
	courses.Delete("/:id", ctrl.Delete)
}
