package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type APIKeyModel struct {
	APIKeyID       uuid.UUID      `json:"api_key_id" gorm:"column:api_key_id;type:uuid;primaryKey"`
	APIKeyName     string         `json:"api_key_name" gorm:"column:api_key_name;not null"`
	APIKeyValue    string         `json:"api_key_value" gorm:"column:api_key_value;not null"`
	APIKeyScopes   pq.StringArray `json:"api_key_scopes,omitempty" gorm:"column:api_key_scopes;type:text[]"`
	APIKeyIsActive bool           `json:"api_key_is_active" gorm:"column:api_key_is_active;not null;default:true"`
	CreatedAt      time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (APIKeyModel) TableName() string {
	return "api_keys"
}

// BeforeCreate: set ID jika kosong
func (m *APIKeyModel) BeforeCreate(tx *gorm.DB) error {
	if m.APIKeyID == uuid.Nil {
		m.APIKeyID = uuid.New()
	}
	return nil
}
