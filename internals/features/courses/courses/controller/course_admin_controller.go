package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/courses/dto"
	"kursusku_backend/internals/features/courses/courses/model"
	helper "kursusku_backend/internals/helpers"
)

type CourseAdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseAdminController(db *gorm.DB) *CourseAdminController {
	return &CourseAdminController{DB: db, Validate: validator.New()}
}

func (ctrl *CourseAdminController) GetAll(c *fiber.Ctx) error {
	params := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	var total int64
	if err := ctrl.DB.Model(&model.CourseModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data course")
	}

	var courses []model.CourseModel
	if err := ctrl.DB.Order("created_at DESC").
		Limit(params.Limit()).Offset(params.Offset()).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data course")
	}
	return helper.JsonList(c, "", courses, helper.BuildMeta(total, params))
}

func (ctrl *CourseAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course := model.CourseModel{
		CourseTitle:       helper.Translation(req.CourseTitle).ToJSONMap(),
		CoursePrice:       req.CoursePrice,
		CourseCurrency:    "USD",
		CourseIsPublished: req.CourseIsPublished,
	}
	if req.CourseDescription != nil {
		course.CourseDescription = helper.Translation(req.CourseDescription).ToJSONMap()
	}
	if req.CourseCurrency != "" {
		course.CourseCurrency = req.CourseCurrency
	}

	if err := ctrl.DB.Create(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat course")
	}
	return helper.JsonCreated(c, "Course berhasil dibuat", course)
}

func (ctrl *CourseAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil course")
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.CourseTitle != nil {
		updates["course_title"] = helper.Translation(req.CourseTitle).ToJSONMap()
	}
	if req.CourseDescription != nil {
		updates["course_description"] = helper.Translation(req.CourseDescription).ToJSONMap()
	}
	if req.CoursePrice != nil {
		updates["course_price"] = *req.CoursePrice
	}
	if req.CourseCurrency != nil {
		updates["course_currency"] = *req.CourseCurrency
	}
	if req.CourseIsPublished != nil {
		updates["course_is_published"] = *req.CourseIsPublished
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan data", course)
	}
	updates["updated_at"] = time.Now()

	if err := ctrl.DB.Model(&course).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update course")
	}
	return helper.JsonUpdated(c, "Course berhasil diupdate", course)
}

func (ctrl *CourseAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil course")
	}
	if err := ctrl.DB.Delete(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hapus course")
	}
	return helper.JsonDeleted(c, "Course berhasil dihapus", fiber.Map{"deleted_id": id})
}
