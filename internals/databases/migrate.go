package database

import (
	"log"

	"gorm.io/gorm"

	auditModel "kursusku_backend/internals/features/certificates/audits/model"
	certModel "kursusku_backend/internals/features/certificates/certificates/model"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	paymentModel "kursusku_backend/internals/features/finance/payments/model"
	settingsModel "kursusku_backend/internals/features/system/settings/model"
	userModel "kursusku_backend/internals/features/users/users/model"
)

// Migrate menjalankan auto-migrate semua model + index unik tambahan.
func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&certModel.CertificateModel{},
		&auditModel.CertificateAuditModel{},
		&paymentModel.PaymentModel{},
		&settingsModel.SystemSettingsModel{},
		&settingsModel.APIKeyModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrate: %v", err)
	}

	// 🔒 Cegah race duplikasi pasangan (user, course) di level DB.
	// Partial unique index: hanya saat keduanya terisi & belum soft-delete.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_certificates_user_course
		ON certificates (certificate_user_id, certificate_course_id)
		WHERE certificate_user_id IS NOT NULL
		  AND certificate_course_id IS NOT NULL
		  AND deleted_at IS NULL
	`).Error; err != nil {
		log.Printf("[WARN] index uq_certificates_user_course: %v", err)
	}

	// 🔒 Nama API key unik selama belum soft-delete.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_api_keys_name
		ON api_keys (api_key_name)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		log.Printf("[WARN] index uq_api_keys_name: %v", err)
	}

	log.Println("✅ Migrasi selesai.")
}
