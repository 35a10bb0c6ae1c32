package models

import "time"

// Jejak aktivitas, append-only. Tidak pernah di-update atau dihapus.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	UserName  string    `gorm:"size:100" json:"user_name"` // denormalisasi
	Action    string    `gorm:"size:50;index" json:"action"`
	Details   string    `gorm:"size:255" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
