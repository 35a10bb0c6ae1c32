package models

import "time"

type UserRole string

const (
	RoleManager UserRole = "manager" // back office penuh + perbaikan stok
	RoleStaff   UserRole = "staff"   // input barang masuk/keluar
	RoleAdmin   UserRole = "admin"   // admin console wedding
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
