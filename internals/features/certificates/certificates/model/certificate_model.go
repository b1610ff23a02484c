package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CertificateModel struct {
	CertificateID       uuid.UUID  `json:"certificate_id" gorm:"column:certificate_id;type:uuid;primaryKey"`
	CertificateNumber   string     `json:"certificate_number" gorm:"column:certificate_number;uniqueIndex;not null"`
	CertificateUserID   *uuid.UUID `json:"certificate_user_id,omitempty" gorm:"column:certificate_user_id;type:uuid;index"`
	CertificateCourseID *uuid.UUID `json:"certificate_course_id,omitempty" gorm:"column:certificate_course_id;type:uuid;index"`

	// Denormalisasi: verifikasi publik tidak perlu join ke users/courses
	CertificateTraineeName string            `json:"certificate_trainee_name" gorm:"column:certificate_trainee_name;not null"`
	CertificateCourseTitle datatypes.JSONMap `json:"certificate_course_title" gorm:"column:certificate_course_title;type:jsonb"` // kode bahasa → judul

	CertificateGrade string   `json:"certificate_grade" gorm:"column:certificate_grade"`
	CertificateScore *float64 `json:"certificate_score,omitempty" gorm:"column:certificate_score"`

	CertificateIssuedAt  time.Time  `json:"certificate_issued_at" gorm:"column:certificate_issued_at;not null"`
	CertificateExpiresAt *time.Time `json:"certificate_expires_at,omitempty" gorm:"column:certificate_expires_at"`

	CertificateIsValid      bool       `json:"certificate_is_valid" gorm:"column:certificate_is_valid;not null;default:true"`
	CertificateIsRevoked    bool       `json:"certificate_is_revoked" gorm:"column:certificate_is_revoked;not null;default:false"`
	CertificateRevokeReason *string    `json:"certificate_revoke_reason,omitempty" gorm:"column:certificate_revoke_reason"`
	CertificateRevokedAt    *time.Time `json:"certificate_revoked_at,omitempty" gorm:"column:certificate_revoked_at"`

	CertificateVerifyToken string `json:"certificate_verify_token" gorm:"column:certificate_verify_token;not null"`
	CertificateVerifyURL   string `json:"certificate_verify_url" gorm:"column:certificate_verify_url;not null"`
	CertificateQRImage     string `json:"certificate_qr_image" gorm:"column:certificate_qr_image;type:text"` // base64 PNG

	CertificateTags pq.StringArray `json:"certificate_tags,omitempty" gorm:"column:certificate_tags;type:text[]"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}

// BeforeCreate: set ID jika kosong
func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}
