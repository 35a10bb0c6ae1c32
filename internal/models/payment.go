package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

type Payment struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Reference       string        `gorm:"size:36;uniqueIndex;not null" json:"reference"` // uuid
	CustomRequestID *uint         `gorm:"index" json:"custom_request_id"`
	PayerName       string        `gorm:"size:150;not null" json:"payer_name"`
	Amount          float64       `gorm:"not null" json:"amount"`
	Method          string        `gorm:"size:50" json:"method"` // transfer, qris, dll.
	Status          PaymentStatus `gorm:"size:20;not null;default:pending" json:"status"`
	ProofURL        string        `gorm:"size:255" json:"proof_url"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
