package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/certificates/audits/model"
)

// AuditRecorder mencatat setiap mutasi sertifikat.
// Best-effort: gagal tulis audit hanya di-log, mutasi utama tetap jalan.
type AuditRecorder struct {
	DB *gorm.DB
}

func NewAuditRecorder(db *gorm.DB) *AuditRecorder {
	return &AuditRecorder{DB: db}
}

func (r *AuditRecorder) Record(certID uuid.UUID, actorID *uuid.UUID, action, ip string, detail map[string]any) {
	entry := model.CertificateAuditModel{
		AuditCertificateID: certID,
		AuditActorID:       actorID,
		AuditAction:        action,
		AuditIP:            ip,
	}
	if detail != nil {
		entry.AuditDetail = datatypes.JSONMap(detail)
	}
	if err := r.DB.Create(&entry).Error; err != nil {
		log.Printf("[ERROR] Gagal tulis audit %s untuk sertifikat %s: %v", action, certID, err)
	}
}

// History mengembalikan audit trail satu sertifikat (terbaru dulu).
func (r *AuditRecorder) History(certID uuid.UUID) ([]model.CertificateAuditModel, error) {
	var entries []model.CertificateAuditModel
	err := r.DB.
		Where("audit_certificate_id = ?", certID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// PruneOlderThan menghapus entri audit yang lebih tua dari retensi (hari).
// Dipanggil scheduler harian.
func (r *AuditRecorder) PruneOlderThan(days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	res := r.DB.Exec(
		"DELETE FROM certificate_audits WHERE created_at < NOW() - (? || ' days')::interval",
		days,
	)
	return res.RowsAffected, res.Error
}
