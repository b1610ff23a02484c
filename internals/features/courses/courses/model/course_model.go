package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID          uuid.UUID         `json:"course_id" gorm:"column:course_id;type:uuid;primaryKey"`
	CourseTitle       datatypes.JSONMap `json:"course_title" gorm:"column:course_title;type:jsonb;not null"` // kode bahasa → judul
	CourseDescription datatypes.JSONMap `json:"course_description" gorm:"column:course_description;type:jsonb"`
	CoursePrice       float64           `json:"course_price" gorm:"column:course_price;not null;default:0"`
	CourseCurrency    string            `json:"course_currency" gorm:"column:course_currency;not null;default:USD"` // ISO 4217
	CourseIsPublished bool              `json:"course_is_published" gorm:"column:course_is_published;not null;default:false"`
	CreatedAt         time.Time         `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time         `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt    `json:"-" gorm:"column:deleted_at;index"`
}

func (CourseModel) TableName() string {
	return "courses"
}

// BeforeCreate: set ID jika kosong
func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
