package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID           uuid.UUID      `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserName         string         `json:"user_name" gorm:"column:user_name;not null"`
	UserEmail        string         `json:"user_email" gorm:"column:user_email;uniqueIndex;not null"`
	UserPasswordHash string         `json:"-" gorm:"column:user_password_hash;not null"`
	UserRole         string         `json:"user_role" gorm:"column:user_role;not null;default:trainee"` // admin | trainee
	UserIsActive     bool           `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`
	CreatedAt        time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate: set ID jika kosong
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
