package models

import "time"

// CurrentStock adalah saldo berjalan (denormalisasi). Hanya boleh ditulis
// oleh ledger engine atau recalculate, jangan di-update dari handler lain.
type Product struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Code         string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name         string `gorm:"size:150;not null" json:"name"`
	Category     string `gorm:"size:100;index" json:"category"`
	Brand        string `gorm:"size:100" json:"brand"`
	BarcodeID    string `gorm:"size:100" json:"barcode_id"`
	InitialStock int    `gorm:"not null;default:0" json:"initial_stock"`
	CurrentStock int    `gorm:"not null;default:0" json:"current_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
