package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Aksi yang dicatat di audit trail sertifikat.
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionRegenerate = "regenerate"
	AuditActionRevoke     = "revoke"
	AuditActionRestore    = "restore"
	AuditActionDelete     = "delete"
)

type CertificateAuditModel struct {
	AuditID            uuid.UUID         `json:"audit_id" gorm:"column:audit_id;type:uuid;primaryKey"`
	AuditCertificateID uuid.UUID         `json:"audit_certificate_id" gorm:"column:audit_certificate_id;type:uuid;index;not null"`
	AuditActorID       *uuid.UUID        `json:"audit_actor_id,omitempty" gorm:"column:audit_actor_id;type:uuid"`
	AuditAction        string            `json:"audit_action" gorm:"column:audit_action;not null"`
	AuditDetail        datatypes.JSONMap `json:"audit_detail,omitempty" gorm:"column:audit_detail;type:jsonb"`
	AuditIP            string            `json:"audit_ip" gorm:"column:audit_ip"`
	CreatedAt          time.Time         `json:"created_at" gorm:"column:created_at"`
}

func (CertificateAuditModel) TableName() string {
	return "certificate_audits"
}

// BeforeCreate: set ID jika kosong
func (m *CertificateAuditModel) BeforeCreate(tx *gorm.DB) error {
	if m.AuditID == uuid.Nil {
		m.AuditID = uuid.New()
	}
	return nil
}
