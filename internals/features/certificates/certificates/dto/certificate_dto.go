package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// CreateCertificateRequest: terbitkan sertifikat baru.
// User/course opsional; kalau dua-duanya diisi berlaku aturan
// satu sertifikat hidup per pasangan (user, course).
type CreateCertificateRequest struct {
	CertificateUserID   *uuid.UUID `json:"certificate_user_id,omitempty"`
	CertificateCourseID *uuid.UUID `json:"certificate_course_id,omitempty"`

	// Override tampilan; kalau kosong diambil dari user/course terkait
	CertificateTraineeName string            `json:"certificate_trainee_name,omitempty" validate:"omitempty,max=200"`
	CertificateCourseTitle map[string]string `json:"certificate_course_title,omitempty"`

	CertificateGrade string   `json:"certificate_grade,omitempty" validate:"omitempty,max=20"`
	CertificateScore *float64 `json:"certificate_score,omitempty" validate:"omitempty,gte=0,lte=100"`

	CertificateIssuedAt  *time.Time `json:"certificate_issued_at,omitempty"`
	CertificateExpiresAt *time.Time `json:"certificate_expires_at,omitempty"`

	CertificateTags []string `json:"certificate_tags,omitempty" validate:"omitempty,dive,max=50"`
}

// UpdateCertificateRequest: hanya field tampilan/metadata.
// Token verifikasi TIDAK pernah ikut berubah lewat update.
type UpdateCertificateRequest struct {
	CertificateTraineeName *string           `json:"certificate_trainee_name,omitempty" validate:"omitempty,max=200"`
	CertificateCourseTitle map[string]string `json:"certificate_course_title,omitempty"`
	CertificateGrade       *string           `json:"certificate_grade,omitempty" validate:"omitempty,max=20"`
	CertificateScore       *float64          `json:"certificate_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	CertificateExpiresAt   *time.Time        `json:"certificate_expires_at,omitempty"`
	CertificateTags        []string          `json:"certificate_tags,omitempty" validate:"omitempty,dive,max=50"`
}

type RevokeCertificateRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// BulkCertificateItem: satu baris upload massal, diidentifikasi
// email user + id course.
type BulkCertificateItem struct {
	UserEmail string    `json:"user_email" validate:"required,email"`
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
	Grade     string    `json:"grade,omitempty" validate:"omitempty,max=20"`
	Score     *float64  `json:"score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type BulkCertificateRequest struct {
	Items []BulkCertificateItem `json:"items" validate:"required,min=1,dive"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

// BulkFailure: satu item gagal di upload massal (item lain tetap jalan).
type BulkFailure struct {
	Index     int    `json:"index"`
	UserEmail string `json:"user_email"`
	Message   string `json:"message"`
}

type BulkCertificateResult struct {
	CreatedCount int           `json:"created_count"`
	FailedCount  int           `json:"failed_count"`
	CreatedIDs   []uuid.UUID   `json:"created_ids"`
	Failed       []BulkFailure `json:"failed"`
}

// PublicVerifyResponse: satu-satunya bentuk response verifikasi publik.
// Struct tertutup — field khusus admin (rating, komisi, akreditasi, dsb.)
// memang tidak punya tempat di sini, di path mana pun.
type PublicVerifyResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`

	CertificateNumber string     `json:"certificate_number,omitempty"`
	TraineeName       string     `json:"trainee_name,omitempty"`
	CourseTitle       string     `json:"course_title,omitempty"`
	Grade             string     `json:"grade,omitempty"`
	Score             *float64   `json:"score,omitempty"`
	IssuedAt          *time.Time `json:"issued_at,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}
