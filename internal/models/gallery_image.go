package models

import "time"

type GalleryImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150" json:"title"`
	Category  string    `gorm:"size:100;index" json:"category"`
	ImagePath string    `gorm:"size:255;not null" json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}
