package dto

import (
	"github.com/google/uuid"
)

type CheckoutRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

type CheckoutResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	SnapToken   string    `json:"snap_token"`
	CheckoutURL string    `json:"checkout_url"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
}

// UpdatePaymentStatusRequest: webhook/admin update status.
type UpdatePaymentStatusRequest struct {
	OrderID       string `json:"order_id" validate:"required"`
	PaymentStatus string `json:"payment_status" validate:"required,oneof=initiated pending paid failed canceled expired"`
}
