package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

type CreateCourseRequest struct {
	CourseTitle       map[string]string `json:"course_title" validate:"required,min=1"`
	CourseDescription map[string]string `json:"course_description,omitempty"`
	CoursePrice       float64           `json:"course_price" validate:"gte=0"`
	CourseCurrency    string            `json:"course_currency,omitempty" validate:"omitempty,len=3,uppercase"`
	CourseIsPublished bool              `json:"course_is_published"`
}

type UpdateCourseRequest struct {
	CourseTitle       map[string]string `json:"course_title,omitempty"`
	CourseDescription map[string]string `json:"course_description,omitempty"`
	CoursePrice       *float64          `json:"course_price,omitempty" validate:"omitempty,gte=0"`
	CourseCurrency    *string           `json:"course_currency,omitempty" validate:"omitempty,len=3,uppercase"`
	CourseIsPublished *bool             `json:"course_is_published,omitempty"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

// PublicCourseResponse: judul/deskripsi sudah diratakan ke satu bahasa,
// harga sudah dikonversi kalau query ?currency= diminta.
type PublicCourseResponse struct {
	CourseID          uuid.UUID `json:"course_id"`
	CourseTitle       string    `json:"course_title"`
	CourseDescription string    `json:"course_description,omitempty"`
	CoursePrice       float64   `json:"course_price"`
	CourseCurrency    string    `json:"course_currency"`
	CreatedAt         time.Time `json:"created_at"`
}
