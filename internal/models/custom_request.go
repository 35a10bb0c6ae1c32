package models

import "time"

type CustomRequestStatus string

const (
	RequestStatusNew      CustomRequestStatus = "new"
	RequestStatusReviewed CustomRequestStatus = "reviewed"
	RequestStatusQuoted   CustomRequestStatus = "quoted"
	RequestStatusClosed   CustomRequestStatus = "closed"
)

// Permintaan paket custom dari calon pengantin (form publik).
type CustomRequest struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Name      string              `gorm:"size:150;not null" json:"name"`
	Email     string              `gorm:"size:150" json:"email"`
	Phone     string              `gorm:"size:30" json:"phone"`
	EventDate *time.Time          `json:"event_date"`
	Budget    float64             `json:"budget"`
	Details   string              `gorm:"type:text" json:"details"`
	Status    CustomRequestStatus `gorm:"size:20;not null;default:new" json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
