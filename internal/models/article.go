package models

import "time"

type Article struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	CoverURL    string    `gorm:"size:255" json:"cover_url"`
	IsPublished bool      `gorm:"not null;default:false" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
