package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SystemSettingsModel: dokumen konfigurasi situs. Singleton — selalu
// diakses lewat get-or-create, tidak pernah dibuat row kedua.
type SystemSettingsModel struct {
	SettingsID uuid.UUID `json:"settings_id" gorm:"column:settings_id;type:uuid;primaryKey"`

	SettingsGeneral        datatypes.JSONMap `json:"settings_general" gorm:"column:settings_general;type:jsonb"`
	SettingsEmailTemplates datatypes.JSONMap `json:"settings_email_templates" gorm:"column:settings_email_templates;type:jsonb"`
	SettingsNotifications  datatypes.JSONMap `json:"settings_notifications" gorm:"column:settings_notifications;type:jsonb"`
	SettingsLocalization   datatypes.JSONMap `json:"settings_localization" gorm:"column:settings_localization;type:jsonb"`

	SettingsUpdatedBy *uuid.UUID `json:"settings_updated_by,omitempty" gorm:"column:settings_updated_by;type:uuid"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (SystemSettingsModel) TableName() string {
	return "system_settings"
}

// BeforeCreate: set ID jika kosong
func (m *SystemSettingsModel) BeforeCreate(tx *gorm.DB) error {
	if m.SettingsID == uuid.Nil {
		m.SettingsID = uuid.New()
	}
	return nil
}
