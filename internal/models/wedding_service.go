package models

import "time"

type WeddingService struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Slug        string        `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Name        string        `gorm:"size:150;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Price       float64       `gorm:"not null;default:0" json:"price"`
	ImageURL    string        `gorm:"size:255" json:"image_url"`
	IsActive    bool          `gorm:"not null;default:true" json:"is_active"`
	Items       []ServiceItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type ServiceItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	WeddingServiceID uint      `gorm:"index;not null" json:"wedding_service_id"`
	Name             string    `gorm:"size:150;not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	Price            float64   `gorm:"not null;default:0" json:"price"`
	ImageURL         string    `gorm:"size:255" json:"image_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
