package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditModel "kursusku_backend/internals/features/certificates/audits/model"
	auditService "kursusku_backend/internals/features/certificates/audits/service"
	"kursusku_backend/internals/features/certificates/certificates/dto"
	"kursusku_backend/internals/features/certificates/certificates/model"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	userModel "kursusku_backend/internals/features/users/users/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// satu DB in-memory per test, nama unik biar tidak saling lihat
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&model.CertificateModel{},
		&auditModel.CertificateAuditModel{},
	))
	return db
}

func newTestService(t *testing.T) (*CertificateService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewCertificateService(db, auditService.NewAuditRecorder(db))
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) userModel.UserModel {
	t.Helper()
	usr := userModel.UserModel{
		UserName:         name,
		UserEmail:        email,
		UserPasswordHash: "x",
		UserRole:         "trainee",
		UserIsActive:     true,
	}
	require.NoError(t, db.Create(&usr).Error)
	return usr
}

func seedCourse(t *testing.T, db *gorm.DB, title string) courseModel.CourseModel {
	t.Helper()
	course := courseModel.CourseModel{
		CourseTitle:    map[string]interface{}{"en": title, "id": title + " (ID)"},
		CoursePrice:    100,
		CourseCurrency: "USD",
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

/* =========================================================
   Create
========================================================= */

func TestCreate_DenormalizesAndGeneratesVerification(t *testing.T) {
	svc, db := newTestService(t)
	usr := seedUser(t, db, "Budi Santoso", "budi@example.com")
	course := seedCourse(t, db, "Go Fundamentals")

	cert, err := svc.Create(dto.CreateCertificateRequest{
		CertificateUserID:   &usr.UserID,
		CertificateCourseID: &course.CourseID,
		CertificateGrade:    "A",
	}, nil, "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "Budi Santoso", cert.CertificateTraineeName)
	assert.Equal(t, "Go Fundamentals", cert.CertificateCourseTitle["en"])
	assert.True(t, cert.CertificateIsValid)
	assert.False(t, cert.CertificateIsRevoked)
	assert.Regexp(t, `^CERT-\d{8}-[0-9A-F]{6}$`, cert.CertificateNumber)
	assert.Len(t, cert.CertificateVerifyToken, 32)
	assert.Contains(t, cert.CertificateVerifyURL, cert.CertificateNumber)
	assert.Contains(t, cert.CertificateVerifyURL, cert.CertificateVerifyToken)
	assert.NotEmpty(t, cert.CertificateQRImage)
}

func TestCreate_DuplicatePairRejected(t *testing.T) {
	svc, db := newTestService(t)
	usr := seedUser(t, db, "Budi", "budi@example.com")
	course := seedCourse(t, db, "Go Fundamentals")

	req := dto.CreateCertificateRequest{
		CertificateUserID:   &usr.UserID,
		CertificateCourseID: &course.CourseID,
	}
	_, err := svc.Create(req, nil, "")
	require.NoError(t, err)

	_, err = svc.Create(req, nil, "")
	assert.ErrorIs(t, err, ErrDuplicatePair)
}

func TestCreate_SameUserDifferentCourses(t *testing.T) {
	svc, db := newTestService(t)
	usr := seedUser(t, db, "Budi", "budi@example.com")
	c1 := seedCourse(t, db, "Go Fundamentals")
	c2 := seedCourse(t, db, "Advanced Go")

	_, err := svc.Create(dto.CreateCertificateRequest{CertificateUserID: &usr.UserID, CertificateCourseID: &c1.CourseID}, nil, "")
	require.NoError(t, err)
	_, err = svc.Create(dto.CreateCertificateRequest{CertificateUserID: &usr.UserID, CertificateCourseID: &c2.CourseID}, nil, "")
	assert.NoError(t, err)
}

func TestCreate_StandaloneNeedsTraineeName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(dto.CreateCertificateRequest{}, nil, "")
	assert.ErrorIs(t, err, ErrTraineeNameRequired)

	cert, err := svc.Create(dto.CreateCertificateRequest{
		CertificateTraineeName: "Peserta Workshop",
		CertificateCourseTitle: map[string]string{"en": "Offline Workshop"},
	}, nil, "")
	require.NoError(t, err)
	assert.Nil(t, cert.CertificateUserID)
	assert.Equal(t, "Peserta Workshop", cert.CertificateTraineeName)
}

func TestCreate_UnknownUserOrCourse(t *testing.T) {
	svc, db := newTestService(t)
	usr := seedUser(t, db, "Budi", "budi@example.com")

	ghost := uuid.New()
	_, err := svc.Create(dto.CreateCertificateRequest{CertificateUserID: &ghost}, nil, "")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Create(dto.CreateCertificateRequest{CertificateUserID: &usr.UserID, CertificateCourseID: &ghost}, nil, "")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCreate_WritesAuditTrail(t *testing.T) {
	svc, db := newTestService(t)
	actor := seedUser(t, db, "Admin", "admin@example.com")

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, &actor.UserID, "10.0.0.1")
	require.NoError(t, err)

	var audits []auditModel.CertificateAuditModel
	require.NoError(t, db.Where("audit_certificate_id = ?", cert.CertificateID).Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, auditModel.AuditActionCreate, audits[0].AuditAction)
	assert.Equal(t, actor.UserID, *audits[0].AuditActorID)
	assert.Equal(t, "10.0.0.1", audits[0].AuditIP)
}

/* =========================================================
   Update / Regenerate
========================================================= */

func TestUpdate_NeverTouchesToken(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)
	oldToken := cert.CertificateVerifyToken
	oldURL := cert.CertificateVerifyURL

	newName := "Budi Santoso"
	updated, err := svc.Update(cert.CertificateID, dto.UpdateCertificateRequest{
		CertificateTraineeName: &newName,
	}, nil, "")
	require.NoError(t, err)

	reloaded, err := svc.GetByID(updated.CertificateID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", reloaded.CertificateTraineeName)
	assert.Equal(t, oldToken, reloaded.CertificateVerifyToken)
	assert.Equal(t, oldURL, reloaded.CertificateVerifyURL)
}

func TestRegenerate_RotatesTokenURLAndQR(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)
	oldToken := cert.CertificateVerifyToken
	oldURL := cert.CertificateVerifyURL
	oldQR := cert.CertificateQRImage

	regen, err := svc.Regenerate(cert.CertificateID, nil, "")
	require.NoError(t, err)

	assert.NotEqual(t, oldToken, regen.CertificateVerifyToken)
	assert.NotEqual(t, oldURL, regen.CertificateVerifyURL)
	assert.NotEqual(t, oldQR, regen.CertificateQRImage)
	assert.Contains(t, regen.CertificateVerifyURL, regen.CertificateVerifyToken)

	// token lama benar-benar mati
	res := svc.Verify(cert.CertificateNumber, oldToken, "en")
	assert.False(t, res.Verified)
}

/* =========================================================
   Revoke / Restore
========================================================= */

func TestRevokeAndRestore(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)

	revoked, err := svc.Revoke(cert.CertificateID, "data tidak valid", nil, "")
	require.NoError(t, err)
	assert.False(t, revoked.CertificateIsValid)
	assert.True(t, revoked.CertificateIsRevoked)
	require.NotNil(t, revoked.CertificateRevokeReason)
	assert.Equal(t, "data tidak valid", *revoked.CertificateRevokeReason)
	assert.NotNil(t, revoked.CertificateRevokedAt)

	restored, err := svc.Restore(cert.CertificateID, nil, "")
	require.NoError(t, err)
	assert.True(t, restored.CertificateIsValid)
	assert.False(t, restored.CertificateIsRevoked)
	assert.Nil(t, restored.CertificateRevokeReason)
	assert.Nil(t, restored.CertificateRevokedAt)

	reloaded, err := svc.GetByID(cert.CertificateID)
	require.NoError(t, err)
	assert.True(t, reloaded.CertificateIsValid)
	assert.Nil(t, reloaded.CertificateRevokeReason)
}

/* =========================================================
   Bulk upload
========================================================= */

func TestBulkCreate_PartialFailureIsolated(t *testing.T) {
	svc, db := newTestService(t)
	usr := seedUser(t, db, "Budi", "budi@example.com")
	course := seedCourse(t, db, "Go Fundamentals")

	result := svc.BulkCreate(dto.BulkCertificateRequest{Items: []dto.BulkCertificateItem{
		{UserEmail: "budi@example.com", CourseID: course.CourseID, Grade: "A"},
		{UserEmail: "ghost@example.com", CourseID: course.CourseID},
		{UserEmail: "budi@example.com", CourseID: uuid.New()},
	}}, nil, "")

	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Failed, 2)

	assert.Equal(t, 1, result.Failed[0].Index)
	assert.Contains(t, result.Failed[0].Message, "not found")
	assert.Equal(t, 2, result.Failed[1].Index)
	assert.Contains(t, result.Failed[1].Message, "not found")

	// item sukses benar-benar tersimpan
	var count int64
	require.NoError(t, db.Model(&model.CertificateModel{}).
		Where("certificate_user_id = ?", usr.UserID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBulkCreate_DuplicatePairFailsThatItemOnly(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, "Budi", "budi@example.com")
	seedUser(t, db, "Siti", "siti@example.com")
	course := seedCourse(t, db, "Go Fundamentals")

	first := svc.BulkCreate(dto.BulkCertificateRequest{Items: []dto.BulkCertificateItem{
		{UserEmail: "budi@example.com", CourseID: course.CourseID},
	}}, nil, "")
	require.Equal(t, 1, first.CreatedCount)

	second := svc.BulkCreate(dto.BulkCertificateRequest{Items: []dto.BulkCertificateItem{
		{UserEmail: "budi@example.com", CourseID: course.CourseID}, // duplikat
		{UserEmail: "siti@example.com", CourseID: course.CourseID},
	}}, nil, "")

	assert.Equal(t, 1, second.CreatedCount)
	assert.Equal(t, 1, second.FailedCount)
	assert.Equal(t, 0, second.Failed[0].Index)
	assert.Contains(t, second.Failed[0].Message, "already exists")
}

/* =========================================================
   Verifikasi publik
========================================================= */

func TestVerify_HappyPath(t *testing.T) {
	svc, db := newTestService(t)
	usr := seedUser(t, db, "Budi", "budi@example.com")
	course := seedCourse(t, db, "Go Fundamentals")

	cert, err := svc.Create(dto.CreateCertificateRequest{
		CertificateUserID:   &usr.UserID,
		CertificateCourseID: &course.CourseID,
		CertificateGrade:    "A",
	}, nil, "")
	require.NoError(t, err)

	res := svc.Verify(cert.CertificateNumber, cert.CertificateVerifyToken, "id")
	assert.True(t, res.Verified)
	assert.Equal(t, "Certificate is verified", res.Message)
	assert.Equal(t, "Budi", res.TraineeName)
	assert.Equal(t, "Go Fundamentals (ID)", res.CourseTitle)
	assert.Equal(t, "A", res.Grade)
}

func TestVerify_NoTokenStillVerifies(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)

	res := svc.Verify(cert.CertificateNumber, "", "en")
	assert.True(t, res.Verified)
}

func TestVerify_UnknownNumber(t *testing.T) {
	svc, _ := newTestService(t)

	res := svc.Verify("CERT-20260101-ZZZZZZ", "", "en")
	assert.False(t, res.Verified)
	assert.Equal(t, "Certificate not found", res.Message)
	assert.Empty(t, res.TraineeName)
}

func TestVerify_RevokedCertificate(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)
	_, err = svc.Revoke(cert.CertificateID, "dicabut", nil, "")
	require.NoError(t, err)

	res := svc.Verify(cert.CertificateNumber, cert.CertificateVerifyToken, "en")
	assert.False(t, res.Verified)
	assert.Equal(t, "Certificate is not active", res.Message)
	// identitas tetap tampil supaya pemegang tahu sertifikat mana yang dicek
	assert.Equal(t, "Budi", res.TraineeName)
}

func TestVerify_TokenMismatch(t *testing.T) {
	svc, _ := newTestService(t)

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)

	res := svc.Verify(cert.CertificateNumber, "salah-token", "en")
	assert.False(t, res.Verified)
	assert.Equal(t, "Verification token mismatch", res.Message)
}

func TestVerify_InactiveOwner(t *testing.T) {
	svc, db := newTestService(t)
	usr := seedUser(t, db, "Budi", "budi@example.com")
	course := seedCourse(t, db, "Go Fundamentals")

	cert, err := svc.Create(dto.CreateCertificateRequest{
		CertificateUserID:   &usr.UserID,
		CertificateCourseID: &course.CourseID,
	}, nil, "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("user_id = ?", usr.UserID).
		Update("user_is_active", false).Error)

	res := svc.Verify(cert.CertificateNumber, cert.CertificateVerifyToken, "en")
	assert.False(t, res.Verified)
	assert.Equal(t, "Certificate owner account is inactive", res.Message)
}

/* =========================================================
   Delete + list
========================================================= */

func TestDelete_SoftDeleteHidesFromLookup(t *testing.T) {
	svc, db := newTestService(t)

	cert, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(cert.CertificateID, nil, ""))

	_, err = svc.GetByID(cert.CertificateID)
	assert.ErrorIs(t, err, ErrCertificateNotFound)

	// baris masih ada di DB (soft delete)
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.CertificateModel{}).
		Where("certificate_id = ?", cert.CertificateID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestList_FiltersByRevokedFlag(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Budi"}, nil, "")
	require.NoError(t, err)
	_, err = svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Siti"}, nil, "")
	require.NoError(t, err)
	_, err = svc.Revoke(a.CertificateID, "salah input", nil, "")
	require.NoError(t, err)

	revoked := true
	certs, total, err := svc.List(ListFilter{IsRevoked: &revoked})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, certs, 1)
	assert.Equal(t, "Budi", certs[0].CertificateTraineeName)
}

func TestList_IssuedDateRange(t *testing.T) {
	svc, _ := newTestService(t)

	past := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(dto.CreateCertificateRequest{
		CertificateTraineeName: "Lama",
		CertificateIssuedAt:    &past,
	}, nil, "")
	require.NoError(t, err)
	_, err = svc.Create(dto.CreateCertificateRequest{CertificateTraineeName: "Baru"}, nil, "")
	require.NoError(t, err)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	certs, total, err := svc.List(ListFilter{IssuedFrom: &from})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, certs, 1)
	assert.Equal(t, "Baru", certs[0].CertificateTraineeName)
}
