package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	auditModel "kursusku_backend/internals/features/certificates/audits/model"
	auditService "kursusku_backend/internals/features/certificates/audits/service"
	"kursusku_backend/internals/features/certificates/certificates/dto"
	"kursusku_backend/internals/features/certificates/certificates/model"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	userModel "kursusku_backend/internals/features/users/users/model"
	helper "kursusku_backend/internals/helpers"
)

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrDuplicatePair       = errors.New("certificate for this user and course already exists")
	ErrTraineeNameRequired = errors.New("certificate_trainee_name is required when no user is linked")
)

type CertificateService struct {
	DB    *gorm.DB
	Audit *auditService.AuditRecorder
	now   func() time.Time
}

func NewCertificateService(db *gorm.DB, audit *auditService.AuditRecorder) *CertificateService {
	return &CertificateService{DB: db, Audit: audit, now: time.Now}
}

/* =========================================================
   Create
========================================================= */

func (s *CertificateService) Create(req dto.CreateCertificateRequest, actorID *uuid.UUID, ip string) (*model.CertificateModel, error) {
	// 🔍 Cegah duplikasi pasangan (user, course) sebelum tulis apa pun.
	// Index unik parsial di DB menutup race check-then-write-nya.
	if req.CertificateUserID != nil && req.CertificateCourseID != nil {
		var count int64
		if err := s.DB.Model(&model.CertificateModel{}).
			Where("certificate_user_id = ? AND certificate_course_id = ?", req.CertificateUserID, req.CertificateCourseID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicatePair
		}
	}

	cert := model.CertificateModel{
		CertificateUserID:      req.CertificateUserID,
		CertificateCourseID:    req.CertificateCourseID,
		CertificateTraineeName: strings.TrimSpace(req.CertificateTraineeName),
		CertificateGrade:       req.CertificateGrade,
		CertificateScore:       req.CertificateScore,
		CertificateIsValid:     true,
		CertificateTags:        pq.StringArray(req.CertificateTags),
	}

	// 🔄 Denormalisasi dari user/course kalau override tidak diberikan
	if req.CertificateUserID != nil {
		var usr userModel.UserModel
		if err := s.DB.First(&usr, "user_id = ?", req.CertificateUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if cert.CertificateTraineeName == "" {
			cert.CertificateTraineeName = usr.UserName
		}
	}
	if req.CertificateCourseID != nil {
		var course courseModel.CourseModel
		if err := s.DB.First(&course, "course_id = ?", req.CertificateCourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, err
		}
		if len(req.CertificateCourseTitle) == 0 {
			cert.CertificateCourseTitle = course.CourseTitle
		}
	}
	if len(req.CertificateCourseTitle) > 0 {
		cert.CertificateCourseTitle = helper.Translation(req.CertificateCourseTitle).ToJSONMap()
	}
	if cert.CertificateTraineeName == "" {
		return nil, ErrTraineeNameRequired
	}

	now := s.now()
	cert.CertificateIssuedAt = now
	if req.CertificateIssuedAt != nil {
		cert.CertificateIssuedAt = *req.CertificateIssuedAt
	}
	cert.CertificateExpiresAt = req.CertificateExpiresAt

	number, err := helper.GenerateCertificateNumber(now)
	if err != nil {
		return nil, err
	}
	cert.CertificateNumber = number

	if err := s.refreshVerification(&cert); err != nil {
		return nil, err
	}

	if err := s.DB.Create(&cert).Error; err != nil {
		// race kalah dengan create paralel → index unik yang menang
		if isDuplicateErr(err) {
			return nil, ErrDuplicatePair
		}
		return nil, err
	}

	s.Audit.Record(cert.CertificateID, actorID, auditModel.AuditActionCreate, ip,
		map[string]any{"certificate_number": cert.CertificateNumber})
	return &cert, nil
}

/* =========================================================
   Update (hanya field tampilan/metadata — token tidak disentuh)
========================================================= */

func (s *CertificateService) Update(id uuid.UUID, req dto.UpdateCertificateRequest, actorID *uuid.UUID, ip string) (*model.CertificateModel, error) {
	cert, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CertificateTraineeName != nil {
		updates["certificate_trainee_name"] = strings.TrimSpace(*req.CertificateTraineeName)
	}
	if req.CertificateCourseTitle != nil {
		updates["certificate_course_title"] = helper.Translation(req.CertificateCourseTitle).ToJSONMap()
	}
	if req.CertificateGrade != nil {
		updates["certificate_grade"] = *req.CertificateGrade
	}
	if req.CertificateScore != nil {
		updates["certificate_score"] = *req.CertificateScore
	}
	if req.CertificateExpiresAt != nil {
		updates["certificate_expires_at"] = *req.CertificateExpiresAt
	}
	if req.CertificateTags != nil {
		updates["certificate_tags"] = pq.StringArray(req.CertificateTags)
	}
	if len(updates) == 0 {
		return cert, nil
	}
	updates["updated_at"] = s.now()

	if err := s.DB.Model(cert).Updates(updates).Error; err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	s.Audit.Record(cert.CertificateID, actorID, auditModel.AuditActionUpdate, ip, map[string]any{"fields": fields})
	return cert, nil
}

/* =========================================================
   Regenerate: token baru, URL baru, QR baru — link lama mati
========================================================= */

func (s *CertificateService) Regenerate(id uuid.UUID, actorID *uuid.UUID, ip string) (*model.CertificateModel, error) {
	cert, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.refreshVerification(cert); err != nil {
		return nil, err
	}
	if err := s.DB.Model(cert).Updates(map[string]interface{}{
		"certificate_verify_token": cert.CertificateVerifyToken,
		"certificate_verify_url":   cert.CertificateVerifyURL,
		"certificate_qr_image":     cert.CertificateQRImage,
		"updated_at":               s.now(),
	}).Error; err != nil {
		return nil, err
	}
	s.Audit.Record(cert.CertificateID, actorID, auditModel.AuditActionRegenerate, ip, nil)
	return cert, nil
}

/* =========================================================
   Revoke / Restore: pasangan flag valid + revoked
========================================================= */

func (s *CertificateService) Revoke(id uuid.UUID, reason string, actorID *uuid.UUID, ip string) (*model.CertificateModel, error) {
	cert, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.DB.Model(cert).Updates(map[string]interface{}{
		"certificate_is_valid":      false,
		"certificate_is_revoked":    true,
		"certificate_revoke_reason": reason,
		"certificate_revoked_at":    now,
		"updated_at":                now,
	}).Error; err != nil {
		return nil, err
	}
	cert.CertificateIsValid = false
	cert.CertificateIsRevoked = true
	cert.CertificateRevokeReason = &reason
	cert.CertificateRevokedAt = &now

	s.Audit.Record(cert.CertificateID, actorID, auditModel.AuditActionRevoke, ip, map[string]any{"reason": reason})
	return cert, nil
}

func (s *CertificateService) Restore(id uuid.UUID, actorID *uuid.UUID, ip string) (*model.CertificateModel, error) {
	cert, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(cert).Updates(map[string]interface{}{
		"certificate_is_valid":      true,
		"certificate_is_revoked":    false,
		"certificate_revoke_reason": nil,
		"certificate_revoked_at":    nil,
		"updated_at":                s.now(),
	}).Error; err != nil {
		return nil, err
	}
	cert.CertificateIsValid = true
	cert.CertificateIsRevoked = false
	cert.CertificateRevokeReason = nil
	cert.CertificateRevokedAt = nil

	s.Audit.Record(cert.CertificateID, actorID, auditModel.AuditActionRestore, ip, nil)
	return cert, nil
}

/* =========================================================
   Delete (soft) — tetap diaudit
========================================================= */

func (s *CertificateService) Delete(id uuid.UUID, actorID *uuid.UUID, ip string) error {
	cert, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(cert).Error; err != nil {
		return err
	}
	s.Audit.Record(cert.CertificateID, actorID, auditModel.AuditActionDelete, ip,
		map[string]any{"certificate_number": cert.CertificateNumber})
	return nil
}

/* =========================================================
   Bulk upload: per item terisolasi, gagal satu tidak batalkan batch
========================================================= */

func (s *CertificateService) BulkCreate(req dto.BulkCertificateRequest, actorID *uuid.UUID, ip string) dto.BulkCertificateResult {
	result := dto.BulkCertificateResult{
		CreatedIDs: []uuid.UUID{},
		Failed:     []dto.BulkFailure{},
	}

	for i, item := range req.Items {
		var usr userModel.UserModel
		if err := s.DB.First(&usr, "user_email = ?", strings.ToLower(strings.TrimSpace(item.UserEmail))).Error; err != nil {
			result.Failed = append(result.Failed, dto.BulkFailure{
				Index:     i,
				UserEmail: item.UserEmail,
				Message:   fmt.Sprintf("user with email %s not found", item.UserEmail),
			})
			continue
		}

		var course courseModel.CourseModel
		if err := s.DB.First(&course, "course_id = ?", item.CourseID).Error; err != nil {
			result.Failed = append(result.Failed, dto.BulkFailure{
				Index:     i,
				UserEmail: item.UserEmail,
				Message:   fmt.Sprintf("course %s not found", item.CourseID),
			})
			continue
		}

		userID := usr.UserID
		courseID := course.CourseID
		cert, err := s.Create(dto.CreateCertificateRequest{
			CertificateUserID:   &userID,
			CertificateCourseID: &courseID,
			CertificateGrade:    item.Grade,
			CertificateScore:    item.Score,
		}, actorID, ip)
		if err != nil {
			result.Failed = append(result.Failed, dto.BulkFailure{
				Index:     i,
				UserEmail: item.UserEmail,
				Message:   err.Error(),
			})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, cert.CertificateID)
	}

	result.CreatedCount = len(result.CreatedIDs)
	result.FailedCount = len(result.Failed)
	return result
}

/* =========================================================
   Lookup & list
========================================================= */

func (s *CertificateService) GetByID(id uuid.UUID) (*model.CertificateModel, error) {
	var cert model.CertificateModel
	if err := s.DB.First(&cert, "certificate_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return &cert, nil
}

func (s *CertificateService) GetByNumber(number string) (*model.CertificateModel, error) {
	var cert model.CertificateModel
	if err := s.DB.First(&cert, "certificate_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return &cert, nil
}

// ListFilter: filter admin list/export.
type ListFilter struct {
	Q          string
	IsValid    *bool
	IsRevoked  *bool
	CourseID   *uuid.UUID
	IssuedFrom *time.Time
	IssuedTo   *time.Time
	Params     helper.Params
}

var listSortWhitelist = map[string]string{
	"issued_at":    "certificate_issued_at",
	"created_at":   "created_at",
	"number":       "certificate_number",
	"trainee_name": "certificate_trainee_name",
}

func (s *CertificateService) List(f ListFilter) ([]model.CertificateModel, int64, error) {
	q := s.DB.Model(&model.CertificateModel{})

	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("certificate_number ILIKE ? OR certificate_trainee_name ILIKE ?", like, like)
	}
	if f.IsValid != nil {
		q = q.Where("certificate_is_valid = ?", *f.IsValid)
	}
	if f.IsRevoked != nil {
		q = q.Where("certificate_is_revoked = ?", *f.IsRevoked)
	}
	if f.CourseID != nil {
		q = q.Where("certificate_course_id = ?", f.CourseID)
	}
	if f.IssuedFrom != nil {
		q = q.Where("certificate_issued_at >= ?", f.IssuedFrom)
	}
	if f.IssuedTo != nil {
		q = q.Where("certificate_issued_at <= ?", f.IssuedTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, err := f.Params.SafeOrderClause(listSortWhitelist, "issued_at")
	if err != nil {
		return nil, 0, err
	}

	limit := f.Params.Limit()
	if limit <= 0 {
		limit = helper.DefaultOpts.DefaultPerPage
	}
	offset := f.Params.Offset()
	if offset < 0 {
		offset = 0
	}

	var certs []model.CertificateModel
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&certs).Error; err != nil {
		return nil, 0, err
	}
	return certs, total, nil
}

/* =========================================================
   Verifikasi publik
========================================================= */

const (
	msgVerified      = "Certificate is verified"
	msgNotFound      = "Certificate not found"
	msgOwnerInactive = "Certificate owner account is inactive"
	msgNotActive     = "Certificate is not active"
	msgTokenMismatch = "Verification token mismatch"
)

// Verify: tri-state verifikasi publik. Response-nya struct tertutup,
// jadi field khusus admin tidak mungkin bocor di path mana pun.
func (s *CertificateService) Verify(number, token, lang string) dto.PublicVerifyResponse {
	cert, err := s.GetByNumber(number)
	if err != nil {
		return dto.PublicVerifyResponse{Verified: false, Message: msgNotFound}
	}

	resp := dto.PublicVerifyResponse{
		CertificateNumber: cert.CertificateNumber,
		TraineeName:       cert.CertificateTraineeName,
		CourseTitle:       helper.ResolveJSONMap(cert.CertificateCourseTitle, lang),
		Grade:             cert.CertificateGrade,
		Score:             cert.CertificateScore,
		IssuedAt:          &cert.CertificateIssuedAt,
		ExpiresAt:         cert.CertificateExpiresAt,
	}

	if cert.CertificateUserID != nil {
		var usr userModel.UserModel
		if err := s.DB.Select("user_id", "user_is_active").
			First(&usr, "user_id = ?", cert.CertificateUserID).Error; err != nil || !usr.UserIsActive {
			resp.Message = msgOwnerInactive
			return resp
		}
	}

	if cert.CertificateIsRevoked || !cert.CertificateIsValid {
		resp.Message = msgNotActive
		return resp
	}

	if token != "" && token != cert.CertificateVerifyToken {
		resp.Message = msgTokenMismatch
		return resp
	}

	resp.Verified = true
	resp.Message = msgVerified
	return resp
}

/* =========================================================
   Internal
========================================================= */

// refreshVerification isi ulang token + URL + QR dari nomor sertifikat.
func (s *CertificateService) refreshVerification(cert *model.CertificateModel) error {
	token, err := helper.GenerateVerifyToken()
	if err != nil {
		return err
	}
	cert.CertificateVerifyToken = token
	cert.CertificateVerifyURL = fmt.Sprintf("%s/verify/%s?token=%s",
		strings.TrimRight(configs.PublicBaseURL, "/"), cert.CertificateNumber, token)

	qr, err := helper.EncodeQRBase64(cert.CertificateVerifyURL, 256)
	if err != nil {
		return err
	}
	cert.CertificateQRImage = qr
	return nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "uq_certificates_user_course") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
