package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/courses/dto"
	"kursusku_backend/internals/features/courses/courses/model"
	currencyService "kursusku_backend/internals/features/finance/currency/service"
	helper "kursusku_backend/internals/helpers"
)

type CoursePublicController struct {
	DB *gorm.DB
}

func NewCoursePublicController(db *gorm.DB) *CoursePublicController {
	return &CoursePublicController{DB: db}
}

func (ctrl *CoursePublicController) GetAll(c *fiber.Ctx) error {
	params := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	lang := c.Query("lang", helper.FallbackLanguage)
	currency := strings.ToUpper(strings.TrimSpace(c.Query("currency")))

	q := ctrl.DB.Model(&model.CourseModel{}).Where("course_is_published = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data course")
	}

	var courses []model.CourseModel
	if err := q.Order("created_at DESC").
		Limit(params.Limit()).Offset(params.Offset()).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data course")
	}

	resp := make([]dto.PublicCourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, buildPublicCourse(c, course, lang, currency))
	}
	return helper.JsonList(c, "", resp, helper.BuildMeta(total, params))
}

func (ctrl *CoursePublicController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ? AND course_is_published = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil course")
	}

	lang := c.Query("lang", helper.FallbackLanguage)
	currency := strings.ToUpper(strings.TrimSpace(c.Query("currency")))
	return helper.JsonOK(c, "", buildPublicCourse(c, course, lang, currency))
}

// buildPublicCourse ratakan judul per bahasa + konversi harga on-demand.
// Konversi gagal tidak menggagalkan request: harga balik apa adanya
// di mata uang asal, cukup dicatat di log.
func buildPublicCourse(c *fiber.Ctx, course model.CourseModel, lang, currency string) dto.PublicCourseResponse {
	resp := dto.PublicCourseResponse{
		CourseID:          course.CourseID,
		CourseTitle:       helper.ResolveJSONMap(course.CourseTitle, lang),
		CourseDescription: helper.ResolveJSONMap(course.CourseDescription, lang),
		CoursePrice:       course.CoursePrice,
		CourseCurrency:    course.CourseCurrency,
		CreatedAt:         course.CreatedAt,
	}

	if currency != "" && currencyService.Default != nil {
		converted, err := currencyService.Default.Convert(c.UserContext(), course.CoursePrice, course.CourseCurrency, currency)
		if err != nil {
			log.Printf("[WARN] konversi %s→%s gagal: %v", course.CourseCurrency, currency, err)
		} else {
			resp.CoursePrice = converted
			resp.CourseCurrency = currency
		}
	}
	return resp
}
