package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentModel struct {
	PaymentID       uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;primaryKey"`
	PaymentUserID   uuid.UUID `json:"payment_user_id" gorm:"column:payment_user_id;type:uuid;index;not null"`
	PaymentCourseID uuid.UUID `json:"payment_course_id" gorm:"column:payment_course_id;type:uuid;index;not null"`

	PaymentAmount   float64 `json:"payment_amount" gorm:"column:payment_amount;not null"`
	PaymentCurrency string  `json:"payment_currency" gorm:"column:payment_currency;not null;default:IDR"`

	PaymentStatus string `json:"payment_status" gorm:"column:payment_status;not null;default:initiated"` // initiated|pending|paid|failed|canceled|expired

	PaymentExternalID  *string `json:"payment_external_id,omitempty" gorm:"column:payment_external_id;uniqueIndex"`
	PaymentCheckoutURL *string `json:"payment_checkout_url,omitempty" gorm:"column:payment_checkout_url"`

	PaymentMeta datatypes.JSONMap `json:"payment_meta,omitempty" gorm:"column:payment_meta;type:jsonb"`

	PaymentPaidAt *time.Time `json:"payment_paid_at,omitempty" gorm:"column:payment_paid_at"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// BeforeCreate: set ID jika kosong
func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}
